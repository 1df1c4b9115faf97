package layout

import (
	"github.com/floorsight/floorplan-api/internal/floorplan"
)

// largeBedroomSqft splits master-sized bedrooms from secondary ones in
// the position heuristic.
const largeBedroomSqft = 150

// EstimatePosition returns a synthetic button position for a room the
// detector missed, keyed on room type and size. Bathrooms sit in the
// upper middle, kitchens top-left, dining rooms next to them, bedrooms
// to the right with master-sized ones lower, living rooms center-left.
// Deterministic: the same room always gets the same position.
func EstimatePosition(room floorplan.Room) (xPercent, yPercent float64) {
	switch room.Type {
	case floorplan.TypeBathroom:
		return 50, 20
	case floorplan.TypeKitchen:
		return 15, 15
	case floorplan.TypeDiningRoom:
		return 40, 15
	case floorplan.TypeBedroom:
		if room.AreaSqft > largeBedroomSqft {
			return 65, 65
		}
		return 75, 15
	case floorplan.TypeLivingRoom:
		return 30, 50
	default:
		return 50, 50
	}
}

// FallbackGrid lays every room out on a deterministic row-major grid,
// three columns wide, for use when the label detector is entirely
// unavailable. Positions are percentages independent of canvas size,
// clamped to [0, 100] for very long room lists.
func FallbackGrid(rooms []floorplan.Room) []Button {
	buttons := make([]Button, 0, len(rooms))
	for i, room := range rooms {
		col := i % 3
		row := i / 3
		buttons = append(buttons, Button{
			XPercent: clampPercent(float64(20+col*30), 0, 100),
			YPercent: clampPercent(float64(20+row*25), 0, 100),
			Room:     room,
		})
	}
	return buttons
}
