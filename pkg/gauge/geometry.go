package gauge

import (
	"math"
	"strconv"

	"github.com/go-drift/gauge/pkg/graphics"
)

// StartAngle is 12 o'clock in y-down screen space.
const StartAngle = -math.Pi / 2

// Clamp limits v to [MinValue, MaxValue].
func Clamp(v int) int {
	return min(max(v, MinValue), MaxValue)
}

// EdgeFor returns the square edge length for a viewport of the given width:
// min(EdgeRatio × width, MaxEdge). Negative widths give 0.
func EdgeFor(viewportWidth float64) float64 {
	return max(0, min(EdgeRatio*viewportWidth, MaxEdge))
}

// RadiusFor returns the ring radius for a region: shortest side divided by
// RadiusDivisor, less the stroke width. It may be zero or negative for tiny
// regions, in which case nothing is drawn.
func RadiusFor(size graphics.Size, strokeWidth float64) float64 {
	return size.ShortestSide()/RadiusDivisor - strokeWidth
}

// SweepFor returns the arc sweep for a value: (value/100) × 2π, with the value
// clamped first.
func SweepFor(value int) float64 {
	return float64(Clamp(value)) / MaxValue * 2 * math.Pi
}

// FormatPercent formats a value as "NN%".
func FormatPercent(value int) string {
	return strconv.Itoa(Clamp(value)) + "%"
}
