// Package graphics provides colors, paints and the Canvas abstraction that
// gauges draw through, with a raster implementation backed by gogpu/gg and a
// recording implementation for inspection.
package graphics

// Canvas records or renders drawing commands.
type Canvas interface {
	// Clear fills the entire canvas with the given color.
	Clear(color Color)

	// DrawCircle draws a circle with the provided paint.
	DrawCircle(center Offset, radius float64, paint Paint)

	// DrawArc draws a circular arc starting at startAngle radians and sweeping
	// sweepAngle radians clockwise (in y-down screen space). A zero sweep draws
	// nothing; a sweep of 2π or more draws the full circle.
	DrawArc(center Offset, radius, startAngle, sweepAngle float64, paint Paint)

	// DrawText draws a single line of text centered on the given point.
	DrawText(text string, center Offset, color Color)

	// Size returns the size of the canvas in pixels.
	Size() Size
}
