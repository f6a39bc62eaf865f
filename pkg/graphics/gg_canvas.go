package graphics

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/go-drift/gauge/pkg/errors"
)

// ggCanvas implements Canvas on top of a gogpu/gg drawing context.
type ggCanvas struct {
	dc *gg.Context
}

// NewRasterCanvas returns a Canvas that rasterizes into dc.
// The canvas tracks dc across dc.Resize calls.
func NewRasterCanvas(dc *gg.Context) Canvas {
	return &ggCanvas{dc: dc}
}

func (c *ggCanvas) Clear(color Color) {
	r, g, b, a := color.RGBAF()
	c.dc.ClearWithColor(gg.RGBA{R: r, G: g, B: b, A: a})
}

func (c *ggCanvas) DrawCircle(center Offset, radius float64, paint Paint) {
	if radius <= 0 {
		return
	}
	c.dc.ClearPath()
	c.dc.DrawCircle(center.X, center.Y, radius)
	c.finish("graphics.DrawCircle", paint)
}

func (c *ggCanvas) DrawArc(center Offset, radius, startAngle, sweepAngle float64, paint Paint) {
	if radius <= 0 || sweepAngle == 0 {
		return
	}
	if math.Abs(sweepAngle) >= 2*math.Pi {
		c.DrawCircle(center, radius, paint)
		return
	}
	a1, a2 := startAngle, startAngle+sweepAngle
	if sweepAngle < 0 {
		a1, a2 = a2, a1
	}
	c.dc.ClearPath()
	c.dc.DrawArc(center.X, center.Y, radius, a1, a2)
	c.finish("graphics.DrawArc", paint)
}

func (c *ggCanvas) DrawText(text string, center Offset, color Color) {
	img := rasterizeLabel(text, color)
	if img == nil {
		return
	}
	b := img.Bounds()
	x := math.Round(center.X - float64(b.Dx())/2)
	y := math.Round(center.Y - float64(b.Dy())/2)
	c.dc.DrawImage(gg.ImageBufFromImage(img), x, y)
}

func (c *ggCanvas) Size() Size {
	return Size{Width: float64(c.dc.Width()), Height: float64(c.dc.Height())}
}

// finish applies paint to the current path and fills or strokes it.
func (c *ggCanvas) finish(op string, paint Paint) {
	c.dc.SetColor(paint.Color.NRGBA())
	var err error
	switch paint.Style {
	case PaintStyleStroke:
		c.dc.SetLineWidth(paint.StrokeWidth)
		if paint.StrokeCap == CapRound {
			c.dc.SetLineCap(gg.LineCapRound)
		} else {
			c.dc.SetLineCap(gg.LineCapButt)
		}
		err = c.dc.Stroke()
	default:
		err = c.dc.Fill()
	}
	if err != nil {
		errors.Report(&errors.GaugeError{Op: op, Kind: errors.KindRender, Err: err})
	}
}
