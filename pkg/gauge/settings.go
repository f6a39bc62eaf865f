package gauge

import (
	"log/slog"

	"github.com/go-drift/gauge/pkg/graphics"
	"github.com/go-drift/gauge/pkg/surface"
)

const (
	// MinValue and MaxValue bound the gauge value.
	MinValue = 0
	MaxValue = 100

	// DefaultStrokeWidth is the ring and arc thickness in pixels.
	DefaultStrokeWidth = 10

	// MaxEdge caps the surface edge length in pixels.
	MaxEdge = 200

	// EdgeRatio is the share of the viewport width the surface may take.
	EdgeRatio = 0.8

	// RadiusDivisor scales the shortest side down to the ring's outer extent.
	RadiusDivisor = 2.5
)

// Settings is the widget state. The zero value is not useful; start from
// DefaultSettings.
type Settings struct {
	// Value is the progress in percent, always within [MinValue, MaxValue].
	Value int
	// Animate is true while the rotation animation runs.
	Animate bool
	// Hidden suppresses drawing and hides the surface.
	Hidden bool
	// Rotation is the current arc rotation in radians. It is 0 whenever the
	// animation is idle, except for a construction-time override that has not
	// been consumed by an animation yet.
	Rotation float64

	// Color paints the progress arc.
	Color graphics.Color
	// TrackColor paints the background ring.
	TrackColor graphics.Color
	// LabelColor paints the percentage label.
	LabelColor graphics.Color
	// StrokeWidth is the ring and arc thickness. It also insets the radius.
	StrokeWidth float64
	// ShowLabel draws a centered "NN%" label.
	ShowLabel bool
}

// DefaultSettings returns the settings every widget starts from.
func DefaultSettings() Settings {
	return Settings{
		Value:       0,
		Animate:     false,
		Hidden:      false,
		Rotation:    0,
		Color:       graphics.ColorGreen,
		TrackColor:  graphics.ColorGray,
		LabelColor:  graphics.ColorBlack,
		StrokeWidth: DefaultStrokeWidth,
	}
}

type config struct {
	settings Settings
	surface  *surface.Surface
	canvas   graphics.Canvas
	logger   *slog.Logger
}

// Option overrides part of the defaults at construction.
type Option func(*config)

// WithValue sets the initial value. It is clamped like SetValue.
func WithValue(v int) Option {
	return func(c *config) { c.settings.Value = Clamp(v) }
}

// WithAnimate starts the animation right after construction when true.
func WithAnimate(animate bool) Option {
	return func(c *config) { c.settings.Animate = animate }
}

// WithHidden creates the widget hidden.
func WithHidden(hidden bool) Option {
	return func(c *config) { c.settings.Hidden = hidden }
}

// WithRotation sets the initial rotation in radians. The value is used as
// given: it rotates the first frames and seeds the first animation, and it is
// not normalized.
func WithRotation(rad float64) Option {
	return func(c *config) { c.settings.Rotation = rad }
}

// WithColors sets the arc and ring colors.
func WithColors(arc, track graphics.Color) Option {
	return func(c *config) {
		c.settings.Color = arc
		c.settings.TrackColor = track
	}
}

// WithStrokeWidth sets the ring and arc thickness. Non-positive widths are
// ignored.
func WithStrokeWidth(w float64) Option {
	return func(c *config) {
		if w > 0 {
			c.settings.StrokeWidth = w
		}
	}
}

// WithLabel enables the percentage label in the given color.
func WithLabel(show bool, color graphics.Color) Option {
	return func(c *config) {
		c.settings.ShowLabel = show
		c.settings.LabelColor = color
	}
}

// WithSettings replaces every setting at once. Value is clamped.
func WithSettings(s Settings) Option {
	return func(c *config) {
		s.Value = Clamp(s.Value)
		if s.StrokeWidth <= 0 {
			s.StrokeWidth = DefaultStrokeWidth
		}
		c.settings = s
	}
}

// WithSurface injects the surface to draw into instead of resolving the id.
func WithSurface(s *surface.Surface) Option {
	return func(c *config) { c.surface = s }
}

// WithCanvas injects a canvas to draw into, wrapped in a headless surface
// named after the widget id. The canvas is used when no surface is injected.
func WithCanvas(canvas graphics.Canvas) Option {
	return func(c *config) { c.canvas = canvas }
}

// WithLogger sets the widget logger. Defaults to the package Logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}
