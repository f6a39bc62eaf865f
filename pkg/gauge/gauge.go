// Package gauge implements a circular progress gauge drawn on a raster
// surface.
//
// A [Widget] owns its surface, its [Settings] and an optional rotation
// animation. It is driven by SetValue, SetAnimate and SetHidden, redraws
// itself whenever the viewport is resized, and is torn down with Destroy.
//
// # Threading
//
// A Widget is not safe for concurrent use. Every method, the frame callbacks
// of its scheduler and the viewport notifications must happen on one
// goroutine. With an [animation.Loop] that means calling widget methods from
// inside loop.Post or loop.Do.
//
// # Usage
//
//	doc := surface.NewDocument()
//	doc.Create("progress", 1, 1)
//
//	w, err := gauge.New("progress", gauge.Host{
//	    Document: doc,
//	    Viewport: viewport.New(graphics.Size{Width: 1000, Height: 800}),
//	    Frames:   loop,
//	}, gauge.WithValue(40))
//	if err != nil {
//	    return err
//	}
//	defer w.Destroy()
//
//	w.SetValue(75)
//	w.SetAnimate(true)
package gauge

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/go-drift/gauge/pkg/animation"
	"github.com/go-drift/gauge/pkg/errors"
	"github.com/go-drift/gauge/pkg/graphics"
	"github.com/go-drift/gauge/pkg/surface"
	"github.com/go-drift/gauge/pkg/viewport"
)

// Host bundles the environment a widget lives in.
type Host struct {
	// Document resolves the widget's surface by id. It may be nil when the
	// surface or canvas is injected with WithSurface or WithCanvas.
	Document surface.Resolver
	// Viewport supplies the width used for sizing and resize notifications.
	Viewport *viewport.Viewport
	// Frames schedules animation frames.
	Frames animation.FrameScheduler
}

// Widget is a circular progress gauge.
type Widget struct {
	id       string
	settings Settings
	surface  *surface.Surface
	viewport *viewport.Viewport
	spinner  *animation.Spinner
	sub      *viewport.Subscription
	log      *slog.Logger

	edge      float64
	destroyed bool
}

// New resolves the surface named id, applies opts over DefaultSettings,
// sizes the surface to the viewport, renders once and subscribes to viewport
// resizes. When the resulting settings ask for animation, it starts right
// away.
//
// An id that resolves to nothing yields an error matching errors.ErrNotFound.
func New(id string, host Host, opts ...Option) (*Widget, error) {
	cfg := config{settings: DefaultSettings()}
	for _, opt := range opts {
		opt(&cfg)
	}

	if host.Viewport == nil {
		return nil, &errors.GaugeError{Op: "gauge.New", Kind: errors.KindConfig, Err: fmt.Errorf("host has no viewport")}
	}
	if host.Frames == nil {
		return nil, &errors.GaugeError{Op: "gauge.New", Kind: errors.KindConfig, Err: fmt.Errorf("host has no frame scheduler")}
	}

	surf, err := resolveSurface(id, host, cfg)
	if err != nil {
		return nil, err
	}

	log := cfg.logger
	if log == nil {
		log = Logger()
	}

	w := &Widget{
		id:       id,
		settings: cfg.settings,
		surface:  surf,
		viewport: host.Viewport,
		log:      log.With(slog.String("gauge", id)),
	}
	w.spinner = animation.NewSpinner(host.Frames, w.onTick, w.onStop)
	w.surface.SetVisible(!w.settings.Hidden)

	w.Resize()
	w.sub = host.Viewport.Subscribe(func(graphics.Size) { w.Resize() })

	if w.settings.Animate {
		w.spinner.StartFrom(w.settings.Rotation)
	}

	w.log.Info("gauge created",
		slog.Int("value", w.settings.Value),
		slog.Bool("animate", w.settings.Animate),
		slog.Bool("hidden", w.settings.Hidden),
		slog.Float64("edge", w.edge),
	)
	return w, nil
}

func resolveSurface(id string, host Host, cfg config) (*surface.Surface, error) {
	switch {
	case cfg.surface != nil:
		return cfg.surface, nil
	case cfg.canvas != nil:
		return surface.NewHeadless(id, cfg.canvas), nil
	case host.Document == nil:
		return nil, &errors.GaugeError{Op: "gauge.New", Kind: errors.KindConfig, Err: fmt.Errorf("host has no document to resolve %q", id)}
	}
	surf, err := host.Document.Resolve(id)
	if err != nil {
		return nil, &errors.GaugeError{Op: "gauge.New", Kind: errors.KindNotFound, Err: err}
	}
	return surf, nil
}

// ID returns the identifier the widget was created with.
func (w *Widget) ID() string {
	return w.id
}

// Value returns the current value.
func (w *Widget) Value() int {
	return w.settings.Value
}

// Animating reports whether the rotation animation is running.
func (w *Widget) Animating() bool {
	return w.spinner.Spinning()
}

// Hidden reports whether drawing is suppressed.
func (w *Widget) Hidden() bool {
	return w.settings.Hidden
}

// Rotation returns the current rotation in radians.
func (w *Widget) Rotation() float64 {
	return w.settings.Rotation
}

// Edge returns the edge length computed by the last resize.
func (w *Widget) Edge() float64 {
	return w.edge
}

// Settings returns a copy of the current settings.
func (w *Widget) Settings() Settings {
	return w.settings
}

// Surface returns the surface the widget draws into, or nil once destroyed.
func (w *Widget) Surface() *surface.Surface {
	return w.surface
}

// Destroyed reports whether Destroy has run.
func (w *Widget) Destroyed() bool {
	return w.destroyed
}

// Resize sizes the surface to a square of EdgeFor(viewport width) and
// redraws. Raster surfaces are sized to whole pixels, at least one.
func (w *Widget) Resize() {
	if w.destroyed {
		w.log.Debug("resize on destroyed gauge ignored")
		return
	}
	w.edge = EdgeFor(w.viewport.Width())
	px := max(1, int(math.Floor(w.edge)))
	if err := w.surface.Resize(px, px); err != nil {
		errors.Report(&errors.GaugeError{Op: "gauge.Resize", Kind: errors.KindResize, Err: err})
	}
	w.log.Debug("gauge resized", slog.Float64("edge", w.edge), slog.Int("pixels", px))
	w.Render(w.settings.Rotation)
}

// SetValue clamps v to [MinValue, MaxValue], stores it and redraws without
// rotation.
func (w *Widget) SetValue(v int) {
	if w.destroyed {
		w.log.Debug("SetValue on destroyed gauge ignored", slog.Int("value", v))
		return
	}
	w.settings.Value = Clamp(v)
	w.log.Debug("gauge value set", slog.Int("requested", v), slog.Int("value", w.settings.Value))
	w.Render(0)
}

// SetAnimate starts or stops the rotation animation.
func (w *Widget) SetAnimate(animate bool) {
	if w.destroyed {
		w.log.Debug("SetAnimate on destroyed gauge ignored", slog.Bool("animate", animate))
		return
	}
	w.settings.Animate = animate
	if animate {
		if w.spinner.StartFrom(w.settings.Rotation) {
			w.log.Debug("gauge animation started", slog.Float64("rotation", w.settings.Rotation))
		}
		return
	}
	if w.spinner.Stop() {
		w.log.Debug("gauge animation stopped")
		return
	}
	// Idle already: drop a leftover construction-time rotation.
	if w.settings.Rotation != 0 {
		w.settings.Rotation = 0
		w.Render(0)
	}
}

// SetHidden hides or shows the gauge. The surface stays in its document.
func (w *Widget) SetHidden(hidden bool) {
	if w.destroyed {
		w.log.Debug("SetHidden on destroyed gauge ignored", slog.Bool("hidden", hidden))
		return
	}
	w.settings.Hidden = hidden
	w.surface.SetVisible(!hidden)
	w.log.Debug("gauge visibility set", slog.Bool("hidden", hidden))
	if !hidden {
		w.Render(w.settings.Rotation)
	}
}

// Render clears the surface and draws the background ring and the progress
// arc rotated by rotationOffset radians. It does nothing while hidden. Parts
// whose color is fully transparent are not drawn.
func (w *Widget) Render(rotationOffset float64) {
	if w.destroyed || w.settings.Hidden {
		return
	}
	canvas := w.surface.Canvas()
	size := canvas.Size()
	canvas.Clear(graphics.ColorTransparent)

	s := w.settings
	radius := RadiusFor(size, s.StrokeWidth)
	if radius <= 0 {
		return
	}
	center := size.Center()

	// Fully transparent parts are skipped.
	if s.TrackColor.Alpha() > 0 {
		canvas.DrawCircle(center, radius, graphics.StrokePaint(s.TrackColor, s.StrokeWidth))
	}
	if sweep := SweepFor(s.Value); sweep > 0 && s.Color.Alpha() > 0 {
		canvas.DrawArc(center, radius, StartAngle+rotationOffset, sweep, graphics.StrokePaint(s.Color, s.StrokeWidth))
	}
	if s.ShowLabel && s.LabelColor.Alpha() > 0 {
		canvas.DrawText(FormatPercent(s.Value), center, s.LabelColor)
	}
}

// Destroy stops the animation, releases the resize subscription, clears the
// surface and detaches it from its document. Calling Destroy again does
// nothing.
func (w *Widget) Destroy() {
	if w.destroyed {
		return
	}
	w.spinner.Stop()
	w.settings.Animate = false
	w.settings.Rotation = 0

	if w.sub != nil {
		w.sub.Cancel()
		w.sub = nil
	}
	w.surface.Clear()
	w.surface.Detach()

	w.destroyed = true
	w.surface = nil
	w.viewport = nil
	w.log.Info("gauge destroyed")
}

func (w *Widget) onTick(angle float64) {
	w.settings.Rotation = angle
	w.Render(angle)
}

func (w *Widget) onStop() {
	w.settings.Rotation = 0
	w.Render(0)
}
