package gauge

import (
	"bytes"
	stderrors "errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/go-drift/gauge/pkg/animation"
	"github.com/go-drift/gauge/pkg/errors"
	"github.com/go-drift/gauge/pkg/graphics"
	"github.com/go-drift/gauge/pkg/surface"
	"github.com/go-drift/gauge/pkg/viewport"
)

const eps = 1e-9

type harness struct {
	rec    *graphics.Recorder
	vp     *viewport.Viewport
	frames *animation.ManualScheduler
	w      *Widget
}

func newHarness(t *testing.T, viewportWidth float64, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		rec:    graphics.NewRecorder(graphics.Size{Width: 1, Height: 1}),
		vp:     viewport.New(graphics.Size{Width: viewportWidth, Height: 600}),
		frames: animation.NewManualScheduler(),
	}
	opts = append([]Option{WithCanvas(h.rec)}, opts...)
	w, err := New("gauge", Host{Viewport: h.vp, Frames: h.frames}, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.w = w
	return h
}

func TestNewSizesAndRenders(t *testing.T) {
	h := newHarness(t, 1000)

	if h.w.Edge() != 200 {
		t.Errorf("Edge() = %v, want 200", h.w.Edge())
	}
	if got := h.rec.Size(); got != (graphics.Size{Width: 200, Height: 200}) {
		t.Errorf("surface size = %v, want 200x200", got)
	}
	if h.rec.Count(graphics.OpClear) != 1 {
		t.Errorf("initial renders = %d, want 1", h.rec.Count(graphics.OpClear))
	}
	if h.vp.Listeners() != 1 {
		t.Errorf("viewport listeners = %d, want 1", h.vp.Listeners())
	}
}

func TestNewUnknownSurface(t *testing.T) {
	doc := surface.NewDocument()
	_, err := New("missing", Host{
		Document: doc,
		Viewport: viewport.New(graphics.Size{Width: 100}),
		Frames:   animation.NewManualScheduler(),
	})
	if err == nil {
		t.Fatal("expected error for unknown surface")
	}
	if !stderrors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	var ge *errors.GaugeError
	if !stderrors.As(err, &ge) || ge.Kind != errors.KindNotFound {
		t.Errorf("expected GaugeError with KindNotFound, got %v", err)
	}
}

func TestNewRequiresHost(t *testing.T) {
	rec := graphics.NewRecorder(graphics.Size{})
	tests := []struct {
		name string
		host Host
		opts []Option
	}{
		{"no viewport", Host{Frames: animation.NewManualScheduler()}, []Option{WithCanvas(rec)}},
		{"no frames", Host{Viewport: viewport.New(graphics.Size{})}, []Option{WithCanvas(rec)}},
		{"no document", Host{Viewport: viewport.New(graphics.Size{}), Frames: animation.NewManualScheduler()}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("g", tt.host, tt.opts...)
			var ge *errors.GaugeError
			if !stderrors.As(err, &ge) || ge.Kind != errors.KindConfig {
				t.Errorf("expected config error, got %v", err)
			}
		})
	}
}

func TestSetValueClamps(t *testing.T) {
	h := newHarness(t, 1000)
	tests := []struct {
		in, want int
	}{
		{50, 50},
		{0, 0},
		{100, 100},
		{150, 100},
		{-5, 0},
		{math.MaxInt, 100},
		{math.MinInt, 0},
	}
	for _, tt := range tests {
		h.w.SetValue(tt.in)
		if got := h.w.Value(); got != tt.want {
			t.Errorf("SetValue(%d): Value() = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestWithValueClamps(t *testing.T) {
	h := newHarness(t, 1000, WithValue(400))
	if h.w.Value() != 100 {
		t.Errorf("Value() = %d, want 100", h.w.Value())
	}
}

func TestRenderDrawsRingAndArc(t *testing.T) {
	h := newHarness(t, 1000)
	h.rec.Reset()
	h.w.SetValue(25)

	ops := h.rec.Ops()
	if len(ops) != 3 {
		t.Fatalf("ops = %+v, want clear, circle, arc", ops)
	}
	if ops[0].Kind != graphics.OpClear || ops[0].Color != graphics.ColorTransparent {
		t.Errorf("first op = %+v, want transparent clear", ops[0])
	}

	wantRadius := 200/2.5 - 10
	ring := ops[1]
	if ring.Kind != graphics.OpCircle {
		t.Fatalf("second op = %v, want circle", ring.Kind)
	}
	if ring.Radius != wantRadius || ring.Center != (graphics.Offset{X: 100, Y: 100}) {
		t.Errorf("ring = %+v, want radius %v at (100,100)", ring, wantRadius)
	}
	if ring.Paint.StrokeWidth != 10 || ring.Paint.Color != graphics.ColorGray || ring.Paint.Style != graphics.PaintStyleStroke {
		t.Errorf("ring paint = %+v", ring.Paint)
	}

	arc := ops[2]
	if arc.Kind != graphics.OpArc {
		t.Fatalf("third op = %v, want arc", arc.Kind)
	}
	if arc.Radius != wantRadius {
		t.Errorf("arc radius = %v, want %v", arc.Radius, wantRadius)
	}
	if math.Abs(arc.Start-(-math.Pi/2)) > eps {
		t.Errorf("arc start = %v, want -π/2", arc.Start)
	}
	if math.Abs(arc.Sweep-math.Pi/2) > eps {
		t.Errorf("arc sweep = %v, want π/2", arc.Sweep)
	}
	if arc.Paint.StrokeWidth != 10 || arc.Paint.Color != graphics.ColorGreen {
		t.Errorf("arc paint = %+v", arc.Paint)
	}
}

func TestSweepBounds(t *testing.T) {
	if SweepFor(0) != 0 {
		t.Errorf("SweepFor(0) = %v, want 0", SweepFor(0))
	}
	if SweepFor(100) != 2*math.Pi {
		t.Errorf("SweepFor(100) = %v, want 2π", SweepFor(100))
	}
	for v := 0; v <= 100; v++ {
		want := float64(v) / 100 * 2 * math.Pi
		if math.Abs(SweepFor(v)-want) > eps {
			t.Fatalf("SweepFor(%d) = %v, want %v", v, SweepFor(v), want)
		}
	}
}

func TestRenderValueZeroSkipsArc(t *testing.T) {
	h := newHarness(t, 1000)
	h.rec.Reset()
	h.w.SetValue(0)
	if h.rec.Count(graphics.OpArc) != 0 {
		t.Error("value 0 should draw no arc")
	}
	if h.rec.Count(graphics.OpCircle) != 1 {
		t.Error("value 0 should still draw the ring")
	}
}

func TestRenderValueFullCircle(t *testing.T) {
	h := newHarness(t, 1000)
	h.rec.Reset()
	h.w.SetValue(100)
	ops := h.rec.Ops()
	arc := ops[len(ops)-1]
	if arc.Kind != graphics.OpArc || arc.Sweep != 2*math.Pi {
		t.Errorf("last op = %+v, want full arc", arc)
	}
}

func TestRenderHiddenDrawsNothing(t *testing.T) {
	h := newHarness(t, 1000, WithValue(40))
	h.w.SetHidden(true)
	h.rec.Reset()

	h.w.Render(0)
	h.w.Render(1.5)
	h.w.SetValue(70)
	h.vp.SetSize(graphics.Size{Width: 500, Height: 600})

	if n := len(h.rec.Ops()); n != 0 {
		t.Errorf("hidden gauge recorded %d ops, want 0", n)
	}
	if h.w.Value() != 70 {
		t.Errorf("value should still update while hidden, got %d", h.w.Value())
	}
}

func TestSetHiddenTogglesVisibility(t *testing.T) {
	h := newHarness(t, 1000)
	surf := h.w.Surface()

	h.w.SetHidden(true)
	if surf.Visible() || !h.w.Hidden() {
		t.Error("expected hidden surface")
	}
	h.rec.Reset()
	h.w.SetHidden(false)
	if !surf.Visible() || h.w.Hidden() {
		t.Error("expected visible surface")
	}
	if h.rec.Count(graphics.OpClear) != 1 {
		t.Error("unhiding should redraw once")
	}
}

func TestWithHiddenSkipsInitialRender(t *testing.T) {
	h := newHarness(t, 1000, WithHidden(true))
	if len(h.rec.Ops()) != 0 {
		t.Errorf("hidden widget drew %d ops at construction", len(h.rec.Ops()))
	}
	if h.w.Surface().Visible() {
		t.Error("surface should start hidden")
	}
}

func TestResizeEdge(t *testing.T) {
	h := newHarness(t, 1000)
	tests := []struct {
		width    float64
		wantEdge float64
		wantPx   float64
	}{
		{1000, 200, 200},
		{250, 200, 200},
		{200, 160, 160},
		{100, 80, 80},
		{333, 266.4, 266},
		{0, 0, 1},
	}
	for _, tt := range tests {
		h.vp.SetSize(graphics.Size{Width: tt.width, Height: 123})
		if math.Abs(h.w.Edge()-tt.wantEdge) > 1e-9 {
			t.Errorf("width %v: Edge() = %v, want %v", tt.width, h.w.Edge(), tt.wantEdge)
		}
		size := h.rec.Size()
		if size.Width != size.Height {
			t.Errorf("width %v: surface %v is not square", tt.width, size)
		}
		if size.Width != tt.wantPx {
			t.Errorf("width %v: surface edge = %v, want %v", tt.width, size.Width, tt.wantPx)
		}
	}
}

func TestResizeRedraws(t *testing.T) {
	h := newHarness(t, 1000, WithValue(10))
	h.rec.Reset()
	h.vp.SetSize(graphics.Size{Width: 100, Height: 100})

	ops := h.rec.Ops()
	if len(ops) != 3 || ops[0].Kind != graphics.OpClear {
		t.Fatalf("ops after resize = %+v", ops)
	}
	if want := 80/2.5 - 10; ops[1].Radius != want {
		t.Errorf("radius = %v, want %v", ops[1].Radius, want)
	}
}

func TestTinySurfaceOnlyClears(t *testing.T) {
	h := newHarness(t, 20, WithValue(50))
	ops := h.rec.Ops()
	if len(ops) != 1 || ops[0].Kind != graphics.OpClear {
		t.Errorf("ops = %+v, want a single clear", ops)
	}
}

func TestAnimationTicks(t *testing.T) {
	h := newHarness(t, 1000, WithValue(30))
	h.w.SetAnimate(true)
	if !h.w.Animating() {
		t.Fatal("expected animation to be running")
	}
	if h.frames.Pending() != 1 {
		t.Fatalf("pending frames = %d, want 1", h.frames.Pending())
	}

	prev := h.w.Rotation()
	for i := 1; i <= 5; i++ {
		h.rec.Reset()
		h.frames.Pump()
		got := h.w.Rotation()
		if math.Abs(got-prev-0.02) > eps {
			t.Fatalf("tick %d: rotation %v, previous %v, want +0.02", i, got, prev)
		}
		prev = got

		arc := h.rec.Ops()[2]
		if math.Abs(arc.Start-(StartAngle+got)) > eps {
			t.Errorf("tick %d: arc start %v, want %v", i, arc.Start, StartAngle+got)
		}
		if h.frames.Pending() != 1 {
			t.Errorf("tick %d: pending = %d, want exactly 1", i, h.frames.Pending())
		}
	}
}

func TestStopAnimationResetsRotation(t *testing.T) {
	h := newHarness(t, 1000, WithValue(30))
	h.w.SetAnimate(true)
	h.frames.PumpN(4)

	h.rec.Reset()
	h.w.SetAnimate(false)

	if h.w.Rotation() != 0 {
		t.Errorf("rotation = %v, want exactly 0", h.w.Rotation())
	}
	if h.w.Animating() {
		t.Error("animation should be stopped")
	}
	if n := h.rec.Count(graphics.OpClear); n != 1 {
		t.Errorf("final renders = %d, want exactly 1", n)
	}
	arc := h.rec.Ops()[2]
	if arc.Start != StartAngle {
		t.Errorf("final arc start = %v, want %v", arc.Start, StartAngle)
	}
	if h.frames.Pump() != 0 {
		t.Error("no ticks should run after stopping")
	}
}

func TestSetAnimateTwiceKeepsOneFrame(t *testing.T) {
	h := newHarness(t, 1000)
	h.w.SetAnimate(true)
	h.w.SetAnimate(true)
	if h.frames.Pending() != 1 {
		t.Errorf("pending = %d, want 1", h.frames.Pending())
	}
}

func TestSetValueWhileAnimating(t *testing.T) {
	h := newHarness(t, 1000)
	h.w.SetAnimate(true)
	h.frames.PumpN(3)

	h.rec.Reset()
	h.w.SetValue(60)
	if arc := h.rec.Ops()[2]; arc.Start != StartAngle {
		t.Errorf("SetValue should draw unrotated, start = %v", arc.Start)
	}

	h.rec.Reset()
	h.frames.Pump()
	if math.Abs(h.w.Rotation()-0.08) > eps {
		t.Errorf("rotation = %v, want 0.08", h.w.Rotation())
	}
}

func TestScenario(t *testing.T) {
	h := newHarness(t, 1000)
	if h.w.Edge() != 200 {
		t.Errorf("edge = %v, want 200", h.w.Edge())
	}
	h.w.SetValue(150)
	if h.w.Value() != 100 {
		t.Errorf("value = %d, want 100", h.w.Value())
	}
	h.w.SetValue(-5)
	if h.w.Value() != 0 {
		t.Errorf("value = %d, want 0", h.w.Value())
	}
	h.w.SetAnimate(true)
	h.w.SetAnimate(false)
	if h.w.Rotation() != 0 {
		t.Errorf("rotation = %v, want 0", h.w.Rotation())
	}
	if h.frames.Cancelled() != 1 {
		t.Errorf("cancelled ticks = %d, want 1", h.frames.Cancelled())
	}
}

func TestWithAnimateStartsAtConstruction(t *testing.T) {
	h := newHarness(t, 1000, WithAnimate(true), WithRotation(1))
	if !h.w.Animating() {
		t.Fatal("expected animation to start at construction")
	}
	if h.w.Rotation() != 1 {
		t.Errorf("rotation = %v, want the override 1", h.w.Rotation())
	}
	h.frames.Pump()
	if math.Abs(h.w.Rotation()-1.02) > eps {
		t.Errorf("rotation = %v, want 1.02", h.w.Rotation())
	}
}

func TestRotationOverrideUsedAsGiven(t *testing.T) {
	h := newHarness(t, 1000, WithRotation(-7.5), WithValue(10))
	ops := h.rec.Ops()
	arc := ops[len(ops)-1]
	if math.Abs(arc.Start-(StartAngle-7.5)) > eps {
		t.Errorf("initial arc start = %v, want %v", arc.Start, StartAngle-7.5)
	}

	h.rec.Reset()
	h.w.SetAnimate(false)
	if h.w.Rotation() != 0 {
		t.Errorf("rotation = %v, want 0 after stop", h.w.Rotation())
	}
	if h.rec.Count(graphics.OpClear) != 1 {
		t.Error("dropping the override should redraw once")
	}
}

func TestDestroy(t *testing.T) {
	doc := surface.NewDocument()
	rec := graphics.NewRecorder(graphics.Size{})
	surf := surface.NewHeadless("gauge", rec)
	if err := doc.Add(surf); err != nil {
		t.Fatal(err)
	}
	vp := viewport.New(graphics.Size{Width: 1000})
	frames := animation.NewManualScheduler()

	w, err := New("gauge", Host{Document: doc, Viewport: vp, Frames: frames}, WithValue(50))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w.SetAnimate(true)
	frames.Pump()

	rec.Reset()
	w.Destroy()

	if !w.Destroyed() {
		t.Error("Destroyed() should be true")
	}
	if w.Animating() || w.Rotation() != 0 {
		t.Error("animation should be stopped and reset")
	}
	if frames.Pending() != 0 || frames.Cancelled() != 1 {
		t.Errorf("pending=%d cancelled=%d, want 0 and 1", frames.Pending(), frames.Cancelled())
	}
	if vp.Listeners() != 0 {
		t.Errorf("viewport listeners = %d, want 0", vp.Listeners())
	}
	if surf.Attached() {
		t.Error("surface should be detached")
	}
	if _, err := doc.Resolve("gauge"); err == nil {
		t.Error("destroyed gauge's surface should not resolve")
	}
	ops := rec.Ops()
	if last := ops[len(ops)-1]; last.Kind != graphics.OpClear {
		t.Errorf("last op = %v, want clear", last.Kind)
	}
	if w.Surface() != nil {
		t.Error("Surface() should be nil after Destroy")
	}

	// Everything after Destroy is inert.
	before := w.Settings()
	rec.Reset()
	w.Destroy()
	w.SetValue(10)
	w.SetAnimate(true)
	w.SetHidden(true)
	w.Render(0)
	vp.SetSize(graphics.Size{Width: 10})
	frames.Pump()

	if w.Settings() != before {
		t.Errorf("settings changed after destroy: %+v vs %+v", w.Settings(), before)
	}
	if len(rec.Ops()) != 0 {
		t.Errorf("destroyed gauge drew %d ops", len(rec.Ops()))
	}
	if frames.Pending() != 0 {
		t.Error("destroyed gauge scheduled a frame")
	}
}

func TestLabel(t *testing.T) {
	h := newHarness(t, 1000, WithValue(42), WithLabel(true, graphics.ColorWhite))
	ops := h.rec.Ops()
	last := ops[len(ops)-1]
	if last.Kind != graphics.OpText || last.Text != "42%" || last.Color != graphics.ColorWhite {
		t.Errorf("last op = %+v, want label 42%%", last)
	}
	if last.Center != (graphics.Offset{X: 100, Y: 100}) {
		t.Errorf("label center = %v", last.Center)
	}
}

func TestStyleOptions(t *testing.T) {
	h := newHarness(t, 1000,
		WithValue(50),
		WithColors(graphics.ColorBlack, graphics.ColorWhite),
		WithStrokeWidth(4),
		WithStrokeWidth(-1),
	)
	ops := h.rec.Ops()
	ring, arc := ops[1], ops[2]
	if ring.Paint.Color != graphics.ColorWhite || arc.Paint.Color != graphics.ColorBlack {
		t.Errorf("colors = %v / %v", ring.Paint.Color, arc.Paint.Color)
	}
	if ring.Paint.StrokeWidth != 4 {
		t.Errorf("stroke width = %v, want 4", ring.Paint.StrokeWidth)
	}
	if want := 200/2.5 - 4; ring.Radius != want {
		t.Errorf("radius = %v, want %v", ring.Radius, want)
	}
}

func TestTransparentPartsSkipped(t *testing.T) {
	h := newHarness(t, 1000,
		WithValue(50),
		WithColors(graphics.ColorTransparent, graphics.ColorGray),
		WithLabel(true, graphics.ColorTransparent),
	)
	ops := h.rec.Ops()
	if len(ops) != 2 || ops[0].Kind != graphics.OpClear || ops[1].Kind != graphics.OpCircle {
		t.Fatalf("ops = %+v, want clear and track only", ops)
	}

	h.rec.Reset()
	h.w.settings.TrackColor = graphics.ColorTransparent
	h.w.settings.Color = graphics.ColorGreen
	h.w.Render(0)
	ops = h.rec.Ops()
	if len(ops) != 2 || ops[1].Kind != graphics.OpArc {
		t.Errorf("ops = %+v, want clear and arc only", ops)
	}
}

func TestWithSettings(t *testing.T) {
	s := DefaultSettings()
	s.Value = 999
	s.StrokeWidth = 0
	h := newHarness(t, 1000, WithSettings(s))
	got := h.w.Settings()
	if got.Value != 100 || got.StrokeWidth != DefaultStrokeWidth {
		t.Errorf("settings = %+v", got)
	}
}

func TestWidgetLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := newHarness(t, 1000, WithLogger(logger))
	h.w.SetValue(120)
	h.w.Destroy()
	h.w.SetValue(1)

	out := buf.String()
	for _, want := range []string{"gauge created", "gauge=gauge", "value=100", "gauge destroyed", "destroyed gauge ignored"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0%"},
		{7, "7%"},
		{100, "100%"},
		{250, "100%"},
		{-3, "0%"},
	}
	for _, tt := range tests {
		if got := FormatPercent(tt.in); got != tt.want {
			t.Errorf("FormatPercent(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEdgeFor(t *testing.T) {
	tests := []struct {
		width, want float64
	}{
		{1000, 200},
		{250, 200},
		{100, 80},
		{0, 0},
		{-50, 0},
	}
	for _, tt := range tests {
		if got := EdgeFor(tt.width); math.Abs(got-tt.want) > eps {
			t.Errorf("EdgeFor(%v) = %v, want %v", tt.width, got, tt.want)
		}
	}
}
