package layout

import (
	"github.com/floorsight/floorplan-api/internal/floorplan"
)

// Button is a derived UI anchor point for one room: a percentage
// position on the rendered image plus the full room record it belongs
// to. Exactly one button exists per eligible room in a final layout.
type Button struct {
	XPercent float64        `json:"x_percent"`
	YPercent float64        `json:"y_percent"`
	Room     floorplan.Room `json:"room_data"`
}

// DeriveButtons runs the full pipeline: filter rooms, match detections,
// normalize coordinates, gap-fill missed rooms, and resolve overlaps.
// Uses the default filter options; see DeriveButtonsWithOptions.
func DeriveButtons(rooms []floorplan.Room, detections []LabelDetection, width, height int) []Button {
	return DeriveButtonsWithOptions(rooms, detections, width, height, DefaultFilterOptions())
}

// DeriveButtonsWithOptions is DeriveButtons with explicit eligibility
// rules. Total and side-effect-free: degraded input degrades the
// result, never fails it. An empty detection list selects the grid
// fallback; an empty eligible set yields an empty (non-nil) layout.
func DeriveButtonsWithOptions(rooms []floorplan.Room, detections []LabelDetection, width, height int, opts FilterOptions) []Button {
	eligible := FilterRooms(rooms, opts)
	if len(eligible) == 0 {
		return []Button{}
	}

	if len(detections) == 0 {
		return ResolveOverlaps(FallbackGrid(eligible))
	}

	matches := MatchDetections(detections, eligible)

	buttons := make([]Button, 0, len(eligible))
	covered := make(map[int]bool, len(matches))
	for _, m := range matches {
		xp, yp := NormalizePoint(m.X, m.Y, width, height)
		buttons = append(buttons, Button{XPercent: xp, YPercent: yp, Room: eligible[m.RoomIndex]})
		covered[m.RoomIndex] = true
	}

	for i, room := range eligible {
		if covered[i] {
			continue
		}
		xp, yp := EstimatePosition(room)
		buttons = append(buttons, Button{XPercent: xp, YPercent: yp, Room: room})
	}

	return ResolveOverlaps(buttons)
}
