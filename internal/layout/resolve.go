package layout

import "math"

// Button footprint and spacing used by the overlap test, in percentage
// units of the rendered image.
const (
	ButtonWidth  = 15.0
	ButtonHeight = 8.0
	MinSpacing   = 2.0

	// maxAttempts bounds the nudge loop per button; residual overlap
	// after the budget is accepted rather than escalated.
	maxAttempts = 20
)

// ResolveOverlaps spaces buttons apart so no two sit closer than the
// button footprint plus minimum spacing on both axes at once. Buttons
// are processed in input order against the already-placed list: each
// conflicting button moves 10 points away from the first conflict along
// the axis with the smaller gap, clamped to [5, 95], retrying up to
// maxAttempts times. Greedy and order-dependent but fully deterministic;
// the result is best-effort, not an optimal packing.
func ResolveOverlaps(buttons []Button) []Button {
	placed := make([]Button, 0, len(buttons))

	for _, button := range buttons {
		x := button.XPercent
		y := button.YPercent

		for attempt := 0; attempt < maxAttempts; attempt++ {
			conflict, ok := firstConflict(placed, x, y)
			if !ok {
				break
			}

			dx := math.Abs(x - conflict.XPercent)
			dy := math.Abs(y - conflict.YPercent)
			if dx < dy {
				if x < conflict.XPercent {
					x = math.Max(5, x-10)
				} else {
					x = math.Min(95, x+10)
				}
			} else {
				if y < conflict.YPercent {
					y = math.Max(5, y-10)
				} else {
					y = math.Min(95, y+10)
				}
			}
		}

		button.XPercent = roundTo2(x)
		button.YPercent = roundTo2(y)
		placed = append(placed, button)
	}
	return placed
}

// firstConflict returns the first placed button overlapping position
// (x, y) under the axis-aligned separation test.
func firstConflict(placed []Button, x, y float64) (Button, bool) {
	for _, p := range placed {
		if math.Abs(x-p.XPercent) < ButtonWidth+MinSpacing &&
			math.Abs(y-p.YPercent) < ButtonHeight+MinSpacing {
			return p, true
		}
	}
	return Button{}, false
}
