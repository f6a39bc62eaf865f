package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/go-drift/gauge/pkg/animation"
	"github.com/go-drift/gauge/pkg/gauge"
	"github.com/go-drift/gauge/pkg/surface"
	"github.com/go-drift/gauge/pkg/viewport"
)

// surfaceID names the surface every CLI gauge draws into.
const surfaceID = "gauge"

type renderOptions struct {
	gaugeFlags
	out string
}

func newRenderCommand(global *globalOptions) *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one gauge frame to PNG",
		Long: `Render a single gauge frame and write it as PNG.

The surface is a square of min(0.8 x viewport width, 200) pixels.

Examples:
  gauge render --value 40
  gauge render --input "7x5" --label --out progress.png
  gauge render --value 100 --viewport-width 150 --rotation 0.5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, global, opts)
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output PNG path (default from config, else gauge.png)")
	return cmd
}

func runRender(cmd *cobra.Command, global *globalOptions, opts *renderOptions) error {
	res, err := resolveConfig(global)
	if err != nil {
		return err
	}
	if err := opts.apply(cmd, res); err != nil {
		return err
	}
	out := res.OutFile
	if cmd.Flags().Changed("out") {
		out = opts.out
	}
	// A single frame never animates.
	res.Settings.Animate = false

	doc := surface.NewDocument()
	surf, err := doc.Create(surfaceID, 1, 1)
	if err != nil {
		return err
	}
	defer surf.Close()

	w, err := gauge.New(surfaceID, gauge.Host{
		Document: doc,
		Viewport: viewport.New(res.Viewport),
		Frames:   animation.NewManualScheduler(),
	}, gauge.WithSettings(res.Settings))
	if err != nil {
		return err
	}
	defer w.Destroy()

	if err := writePNG(surf, out); err != nil {
		return err
	}
	gauge.Logger().Debug("frame written", slog.String("path", out), slog.Int("value", w.Value()))
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d, value %d)\n", out, int(surf.Size().Width), int(surf.Size().Height), w.Value())
	return nil
}

func writePNG(surf *surface.Surface, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := surf.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
