package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-drift/gauge/cmd/gauge/internal/config"
	"github.com/go-drift/gauge/pkg/gauge"
	"github.com/go-drift/gauge/pkg/graphics"
	"github.com/go-drift/gauge/pkg/input"
)

// gaugeFlags are the widget flags shared by render and animate. A flag only
// overrides the configuration when it was set on the command line.
type gaugeFlags struct {
	value         int
	input         string
	hidden        bool
	label         bool
	rotation      float64
	viewportWidth float64
	color         string
	track         string
	strokeWidth   float64
}

func (f *gaugeFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.IntVar(&f.value, "value", 0, "Gauge value, clamped to 0-100")
	fl.StringVar(&f.input, "input", "", "Raw value text, filtered to digits like a text field")
	fl.BoolVar(&f.hidden, "hidden", false, "Hide the gauge (writes a transparent image)")
	fl.BoolVar(&f.label, "label", false, "Draw the percentage in the center")
	fl.Float64Var(&f.rotation, "rotation", 0, "Initial arc rotation in radians")
	fl.Float64Var(&f.viewportWidth, "viewport-width", 0, "Viewport width the gauge is sized against")
	fl.StringVar(&f.color, "color", "", "Arc color as #RRGGBB or #RRGGBBAA")
	fl.StringVar(&f.track, "track", "", "Track ring color as #RRGGBB or #RRGGBBAA")
	fl.Float64Var(&f.strokeWidth, "stroke-width", 0, "Ring and arc thickness in pixels")
	cmd.MarkFlagsMutuallyExclusive("value", "input")
}

// apply overrides res with the flags that were set.
func (f *gaugeFlags) apply(cmd *cobra.Command, res *config.Resolved) error {
	fl := cmd.Flags()
	s := &res.Settings
	if fl.Changed("value") {
		s.Value = gauge.Clamp(f.value)
	}
	if fl.Changed("input") {
		s.Value = input.SanitizeValue(f.input)
	}
	if fl.Changed("hidden") {
		s.Hidden = f.hidden
	}
	if fl.Changed("label") {
		s.ShowLabel = f.label
	}
	if fl.Changed("rotation") {
		s.Rotation = f.rotation
	}
	if fl.Changed("viewport-width") {
		if f.viewportWidth < 0 {
			return fmt.Errorf("--viewport-width must not be negative, got %v", f.viewportWidth)
		}
		res.Viewport.Width = f.viewportWidth
	}
	if fl.Changed("color") {
		c, err := graphics.ParseHex(f.color)
		if err != nil {
			return fmt.Errorf("--color: %w", err)
		}
		s.Color = c
	}
	if fl.Changed("track") {
		c, err := graphics.ParseHex(f.track)
		if err != nil {
			return fmt.Errorf("--track: %w", err)
		}
		s.TrackColor = c
	}
	if fl.Changed("stroke-width") {
		if f.strokeWidth <= 0 {
			return fmt.Errorf("--stroke-width must be positive, got %v", f.strokeWidth)
		}
		s.StrokeWidth = f.strokeWidth
	}
	return nil
}

func resolveConfig(opts *globalOptions) (*config.Resolved, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	res, err := config.LoadAndResolve(opts.configPath, dir)
	if err != nil {
		return nil, err
	}
	gauge.Logger().Debug("config resolved", slog.String("path", res.Path))
	return res, nil
}
