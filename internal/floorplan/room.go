// Package floorplan defines the room schema produced by vision analysis
// and the tolerant JSON decoding used at that boundary.
//
// Vision models return loosely structured JSON: numeric fields arrive as
// numbers or quoted strings, optional fields go missing, and room types
// drift outside the known category set. DecodeRooms absorbs all of that
// into a strict schema with explicit defaults so downstream code never
// deals with partially-typed data.
package floorplan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RoomType categorizes a detected space.
type RoomType string

// Room type categories recognized by the service. Anything else is
// sanitized to TypeOther during decoding.
const (
	TypeBedroom    RoomType = "bedroom"
	TypeBathroom   RoomType = "bathroom"
	TypeKitchen    RoomType = "kitchen"
	TypeLivingRoom RoomType = "living_room"
	TypeDiningRoom RoomType = "dining_room"
	TypeOffice     RoomType = "office"
	TypeEntrance   RoomType = "entrance"
	TypeHallway    RoomType = "hallway"
	TypeCloset     RoomType = "closet"
	TypeStorage    RoomType = "storage"
	TypeUtility    RoomType = "utility"
	TypeGarage     RoomType = "garage"
	TypeBalcony    RoomType = "balcony"
	TypeOther      RoomType = "other"
)

var validTypes = map[RoomType]bool{
	TypeBedroom:    true,
	TypeBathroom:   true,
	TypeKitchen:    true,
	TypeLivingRoom: true,
	TypeDiningRoom: true,
	TypeOffice:     true,
	TypeEntrance:   true,
	TypeHallway:    true,
	TypeCloset:     true,
	TypeStorage:    true,
	TypeUtility:    true,
	TypeGarage:     true,
	TypeBalcony:    true,
	TypeOther:      true,
}

// Valid reports whether t is one of the recognized categories.
func (t RoomType) Valid() bool {
	return validTypes[t]
}

// ParseRoomType normalizes a raw type string ("Living Room", "LIVING_ROOM")
// to a RoomType, returning TypeOther for anything outside the known set.
func ParseRoomType(s string) RoomType {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = strings.ReplaceAll(normalized, "-", "_")
	t := RoomType(normalized)
	if t.Valid() {
		return t
	}
	return TypeOther
}

// Dimensions holds a room's reported measurements. Length and Width are
// the human-readable imperial strings read off the plan; the metric
// fields are numeric.
type Dimensions struct {
	Length  string  `json:"length,omitempty"`
	Width   string  `json:"width,omitempty"`
	LengthM float64 `json:"length_m,omitempty"`
	WidthM  float64 `json:"width_m,omitempty"`
}

// Door describes one doorway of a room.
type Door struct {
	Position   string `json:"position,omitempty"`
	Type       string `json:"type,omitempty"`
	ConnectsTo string `json:"connects_to,omitempty"`
}

// Window describes one window group of a room.
type Window struct {
	Position string `json:"position,omitempty"`
	Count    int    `json:"count,omitempty"`
	Type     string `json:"type,omitempty"`
}

// Room is a detected architectural space. Immutable input to the button
// derivation pipeline; room Name is the natural but not guaranteed-unique
// key within one analysis.
type Room struct {
	Name          string     `json:"name"`
	Type          RoomType   `json:"type"`
	AreaSqft      float64    `json:"area_sqft"`
	AreaSqm       float64    `json:"area_sqm"`
	Dimensions    Dimensions `json:"dimensions"`
	Fixtures      []string   `json:"fixtures,omitempty"`
	Doors         []Door     `json:"doors,omitempty"`
	Windows       []Window   `json:"windows,omitempty"`
	AdjacentRooms []string   `json:"adjacent_rooms,omitempty"`
}

const sqmPerSqft = 0.092903

// flexFloat decodes a JSON number, a numeric string, or null. Anything
// unparseable defaults to zero instead of failing the whole payload.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}

type dimensionsWire struct {
	Length  string    `json:"length"`
	Width   string    `json:"width"`
	LengthM flexFloat `json:"length_m"`
	WidthM  flexFloat `json:"width_m"`
}

type windowWire struct {
	Position string    `json:"position"`
	Count    flexFloat `json:"count"`
	Type     string    `json:"type"`
}

type roomWire struct {
	Name          string         `json:"name"`
	Type          string         `json:"type"`
	AreaSqft      flexFloat      `json:"area_sqft"`
	AreaSqm       flexFloat      `json:"area_sqm"`
	Dimensions    dimensionsWire `json:"dimensions"`
	Fixtures      []string       `json:"fixtures"`
	Doors         []Door         `json:"doors"`
	Windows       []windowWire   `json:"windows"`
	AdjacentRooms []string       `json:"adjacent_rooms"`
}

// DecodeRooms parses a vision response of the form {"rooms": [...]} into
// typed Rooms. Unknown room types become TypeOther, numeric strings are
// accepted, and whichever of area_sqft/area_sqm is missing is derived
// from the other.
func DecodeRooms(data []byte) ([]Room, error) {
	var payload struct {
		Rooms []roomWire `json:"rooms"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse rooms payload: %w", err)
	}

	rooms := make([]Room, 0, len(payload.Rooms))
	for _, w := range payload.Rooms {
		room := Room{
			Name:     strings.TrimSpace(w.Name),
			Type:     ParseRoomType(w.Type),
			AreaSqft: float64(w.AreaSqft),
			AreaSqm:  float64(w.AreaSqm),
			Dimensions: Dimensions{
				Length:  strings.TrimSpace(w.Dimensions.Length),
				Width:   strings.TrimSpace(w.Dimensions.Width),
				LengthM: float64(w.Dimensions.LengthM),
				WidthM:  float64(w.Dimensions.WidthM),
			},
			Fixtures:      w.Fixtures,
			Doors:         w.Doors,
			AdjacentRooms: w.AdjacentRooms,
		}
		for _, win := range w.Windows {
			room.Windows = append(room.Windows, Window{
				Position: win.Position,
				Count:    int(win.Count),
				Type:     win.Type,
			})
		}
		room.fillAreas()
		rooms = append(rooms, room)
	}
	return rooms, nil
}

// fillAreas derives the missing area unit from the reported one.
func (r *Room) fillAreas() {
	if r.AreaSqft > 0 && r.AreaSqm == 0 {
		r.AreaSqm = roundTo(r.AreaSqft*sqmPerSqft, 2)
	} else if r.AreaSqm > 0 && r.AreaSqft == 0 {
		r.AreaSqft = roundTo(r.AreaSqm/sqmPerSqft, 2)
	}
}

// TotalArea sums area_sqft across rooms.
func TotalArea(rooms []Room) float64 {
	var total float64
	for _, r := range rooms {
		total += r.AreaSqft
	}
	return roundTo(total, 2)
}

func roundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
