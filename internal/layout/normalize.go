package layout

import "math"

// NormalizePoint converts a pixel position on a width x height canvas to
// percentage coordinates, rounded to two decimals and clamped to
// [0, 100]. A zero canvas dimension yields the centered value 50 on
// that axis instead of dividing. Pure and total.
func NormalizePoint(x, y, width, height int) (xPercent, yPercent float64) {
	xPercent = 50
	if width > 0 {
		xPercent = roundTo2(float64(x) / float64(width) * 100)
	}
	yPercent = 50
	if height > 0 {
		yPercent = roundTo2(float64(y) / float64(height) * 100)
	}
	return clampPercent(xPercent, 0, 100), clampPercent(yPercent, 0, 100)
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampPercent(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
