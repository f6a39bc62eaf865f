package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-drift/gauge/pkg/animation"
	"github.com/go-drift/gauge/pkg/gauge"
	"github.com/go-drift/gauge/pkg/input"
	"github.com/go-drift/gauge/pkg/surface"
	"github.com/go-drift/gauge/pkg/viewport"
)

// FinalFrameName is the file holding the frame drawn after the animation
// stops.
const FinalFrameName = "final.png"

type animateOptions struct {
	gaugeFlags
	frames   int
	interval time.Duration
	outDir   string
}

func newAnimateCommand(global *globalOptions) *cobra.Command {
	opts := &animateOptions{}
	cmd := &cobra.Command{
		Use:   "animate",
		Short: "Render the spinning animation as a PNG sequence",
		Long: `Start the rotation animation and write one PNG per animation tick.

Each tick advances the arc by 0.02 radians. After --frames ticks the
animation is stopped and the resulting unrotated frame is written as
final.png.

Examples:
  gauge animate --value 30 --frames 90
  gauge animate --frames 10 --interval 33ms --out-dir /tmp/spin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnimate(cmd, global, opts)
		},
	}
	opts.register(cmd)
	cmd.Flags().IntVarP(&opts.frames, "frames", "n", 0, "Number of ticks to capture (default from config, else 60)")
	cmd.Flags().DurationVar(&opts.interval, "interval", 0, "Time between ticks (default from config, else 16ms)")
	cmd.Flags().StringVar(&opts.outDir, "out-dir", "", "Directory for the frames (default from config, else frames)")
	return cmd
}

// FrameName returns the file name of the n-th captured tick, counting from 1.
func FrameName(n int) string {
	return fmt.Sprintf("frame_%04d.png", n)
}

// captureScheduler runs after once every frame callback it schedules has
// returned, so the surface holds the freshly drawn tick.
type captureScheduler struct {
	frames animation.FrameScheduler
	after  func()
}

func (c *captureScheduler) RequestFrame(cb animation.FrameCallback) animation.FrameHandle {
	return c.frames.RequestFrame(func(now time.Time) {
		cb(now)
		c.after()
	})
}

func (c *captureScheduler) CancelFrame(h animation.FrameHandle) bool {
	return c.frames.CancelFrame(h)
}

func runAnimate(cmd *cobra.Command, global *globalOptions, opts *animateOptions) error {
	res, err := resolveConfig(global)
	if err != nil {
		return err
	}
	if err := opts.apply(cmd, res); err != nil {
		return err
	}
	fl := cmd.Flags()
	if fl.Changed("frames") {
		if opts.frames <= 0 {
			return fmt.Errorf("--frames must be positive, got %d", opts.frames)
		}
		res.Frames = opts.frames
	}
	if fl.Changed("interval") {
		if opts.interval <= 0 {
			return fmt.Errorf("--interval must be positive, got %s", opts.interval)
		}
		res.Interval = opts.interval
	}
	if fl.Changed("out-dir") {
		res.OutDir = opts.outDir
	}
	settings := res.Settings
	// Started through the controls below once the widget exists.
	settings.Animate = false

	doc := surface.NewDocument()
	surf, err := doc.Create(surfaceID, 1, 1)
	if err != nil {
		return err
	}
	defer surf.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	loop := animation.NewLoop(res.Interval)

	var (
		w        *gauge.Widget
		controls *input.Controls
		captured int
		once     sync.Once
		done     = make(chan error, 1)
	)
	finish := func(err error) {
		once.Do(func() { done <- err })
	}

	loop.OnPanic = func(r any) {
		finish(fmt.Errorf("animation frame panicked: %v", r))
	}
	runErr := make(chan error, 1)
	go func() { runErr <- loop.Run(ctx) }()

	sched := &captureScheduler{frames: loop}
	sched.after = func() {
		if captured >= res.Frames {
			return
		}
		captured++
		if err := writePNG(surf, filepath.Join(res.OutDir, FrameName(captured))); err != nil {
			finish(err)
			return
		}
		gauge.Logger().Debug("tick captured", slog.Int("frame", captured), slog.Float64("rotation", w.Rotation()))
		if captured < res.Frames {
			return
		}
		if err := controls.Dispatch(input.AnimateToggled{Checked: false}); err != nil {
			finish(err)
			return
		}
		finish(writePNG(surf, filepath.Join(res.OutDir, FinalFrameName)))
	}

	var createErr error
	err = loop.Do(ctx, func() {
		w, createErr = gauge.New(surfaceID, gauge.Host{
			Document: doc,
			Viewport: viewport.New(res.Viewport),
			Frames:   sched,
		}, gauge.WithSettings(settings))
		if createErr != nil {
			return
		}
		controls = input.NewControls(w)
		createErr = controls.Dispatch(input.AnimateToggled{Checked: true})
	})
	if err == nil {
		err = createErr
	}
	if err == nil {
		select {
		case err = <-done:
		case <-ctx.Done():
			err = ctx.Err()
		}
	}

	cancel()
	<-runErr
	// The loop has exited, so the widget is only touched from here on.
	if w != nil {
		w.Destroy()
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d frames and %s to %s\n", captured, FinalFrameName, res.OutDir)
	return nil
}
