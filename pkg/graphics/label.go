package graphics

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// labelFace is the bitmap face used for gauge labels.
var labelFace font.Face = basicfont.Face7x13

// MeasureLabel returns the pixel size of text rendered in the label face.
func MeasureLabel(text string) Size {
	if text == "" {
		return Size{}
	}
	d := font.Drawer{Face: labelFace}
	m := labelFace.Metrics()
	return Size{
		Width:  float64(d.MeasureString(text).Ceil()),
		Height: float64((m.Ascent + m.Descent).Ceil()),
	}
}

// rasterizeLabel draws text onto a transparent image just large enough to hold it.
// Returns nil for empty text.
func rasterizeLabel(text string, color Color) *image.RGBA {
	size := MeasureLabel(text)
	if size.IsEmpty() {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, int(size.Width), int(size.Height)))
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.NRGBA()),
		Face: labelFace,
		Dot:  fixed.P(0, labelFace.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
	return img
}
