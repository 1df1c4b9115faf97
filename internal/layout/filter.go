package layout

import (
	"github.com/floorsight/floorplan-api/internal/floorplan"
)

// FilterOptions controls which rooms are eligible for a button.
type FilterOptions struct {
	// MinAreaSqft is the smallest area that qualifies a room on size alone.
	MinAreaSqft float64
	// ExcludedTypes never receive buttons, regardless of area.
	ExcludedTypes map[floorplan.RoomType]bool
	// AlwaysIncludeTypes qualify even below the area threshold.
	AlwaysIncludeTypes map[floorplan.RoomType]bool
}

// DefaultFilterOptions returns the standard eligibility rules: rooms of
// at least 30 sq ft, closets and storage excluded, and the main living
// spaces always included.
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		MinAreaSqft: 30,
		ExcludedTypes: map[floorplan.RoomType]bool{
			floorplan.TypeCloset:  true,
			floorplan.TypeStorage: true,
		},
		AlwaysIncludeTypes: map[floorplan.RoomType]bool{
			floorplan.TypeBathroom:   true,
			floorplan.TypeKitchen:    true,
			floorplan.TypeBedroom:    true,
			floorplan.TypeLivingRoom: true,
			floorplan.TypeDiningRoom: true,
		},
	}
}

// FilterRooms returns the rooms eligible for buttons, preserving input
// order. A room qualifies when it meets the area threshold or its type
// is always included, and its type is not excluded.
func FilterRooms(rooms []floorplan.Room, opts FilterOptions) []floorplan.Room {
	eligible := make([]floorplan.Room, 0, len(rooms))
	for _, room := range rooms {
		if opts.ExcludedTypes[room.Type] {
			continue
		}
		if room.AreaSqft >= opts.MinAreaSqft || opts.AlwaysIncludeTypes[room.Type] {
			eligible = append(eligible, room)
		}
	}
	return eligible
}
