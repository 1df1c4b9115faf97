package floorplan

import (
	"math"
	"testing"
)

func floatEquals(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestParseRoomType(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  RoomType
	}{
		{"exact lowercase", "bedroom", TypeBedroom},
		{"uppercase", "KITCHEN", TypeKitchen},
		{"mixed case with spaces", "Living Room", TypeLivingRoom},
		{"hyphenated", "dining-room", TypeDiningRoom},
		{"underscored", "living_room", TypeLivingRoom},
		{"padded", "  bathroom  ", TypeBathroom},
		{"unknown sanitized", "conservatory", TypeOther},
		{"empty sanitized", "", TypeOther},
		{"garage", "garage", TypeGarage},
		{"balcony", "Balcony", TypeBalcony},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseRoomType(tt.input); got != tt.want {
				t.Errorf("ParseRoomType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecodeRoomsFullSchema(t *testing.T) {
	payload := `{"rooms": [
		{
			"name": "Living Room",
			"type": "living_room",
			"area_sqft": 208,
			"area_sqm": 19.3,
			"dimensions": {"length": "15'4\"", "width": "13'6\"", "length_m": 4.7, "width_m": 4.1},
			"fixtures": ["window", "door"],
			"doors": [{"position": "south", "type": "standard", "connects_to": "entrance"}],
			"windows": [{"position": "north", "count": 2, "type": "standard"}],
			"adjacent_rooms": ["kitchen", "entrance"]
		}
	]}`

	rooms, err := DecodeRooms([]byte(payload))
	if err != nil {
		t.Fatalf("DecodeRooms failed: %v", err)
	}
	if len(rooms) != 1 {
		t.Fatalf("expected 1 room, got %d", len(rooms))
	}

	r := rooms[0]
	if r.Name != "Living Room" {
		t.Errorf("Name = %q", r.Name)
	}
	if r.Type != TypeLivingRoom {
		t.Errorf("Type = %q", r.Type)
	}
	if r.AreaSqft != 208 {
		t.Errorf("AreaSqft = %v", r.AreaSqft)
	}
	if r.AreaSqm != 19.3 {
		t.Errorf("AreaSqm = %v", r.AreaSqm)
	}
	if r.Dimensions.Length != "15'4\"" || r.Dimensions.WidthM != 4.1 {
		t.Errorf("Dimensions = %+v", r.Dimensions)
	}
	if len(r.Doors) != 1 || r.Doors[0].ConnectsTo != "entrance" {
		t.Errorf("Doors = %+v", r.Doors)
	}
	if len(r.Windows) != 1 || r.Windows[0].Count != 2 {
		t.Errorf("Windows = %+v", r.Windows)
	}
	if len(r.AdjacentRooms) != 2 {
		t.Errorf("AdjacentRooms = %+v", r.AdjacentRooms)
	}
}

func TestDecodeRoomsTolerantNumerics(t *testing.T) {
	payload := `{"rooms": [
		{"name": "Bedroom", "type": "bedroom", "area_sqft": "150", "windows": [{"position": "east", "count": "1"}]},
		{"name": "Bath", "type": "bathroom", "area_sqft": "not a number"}
	]}`

	rooms, err := DecodeRooms([]byte(payload))
	if err != nil {
		t.Fatalf("DecodeRooms failed: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(rooms))
	}
	if rooms[0].AreaSqft != 150 {
		t.Errorf("quoted number not accepted: AreaSqft = %v", rooms[0].AreaSqft)
	}
	if rooms[0].Windows[0].Count != 1 {
		t.Errorf("quoted window count not accepted: %d", rooms[0].Windows[0].Count)
	}
	if rooms[1].AreaSqft != 0 {
		t.Errorf("unparseable number should default to 0, got %v", rooms[1].AreaSqft)
	}
}

func TestDecodeRoomsSanitizesUnknownType(t *testing.T) {
	payload := `{"rooms": [{"name": "Sunroom", "type": "sunroom", "area_sqft": 90}]}`

	rooms, err := DecodeRooms([]byte(payload))
	if err != nil {
		t.Fatalf("DecodeRooms failed: %v", err)
	}
	if rooms[0].Type != TypeOther {
		t.Errorf("unknown type should sanitize to other, got %q", rooms[0].Type)
	}
}

func TestDecodeRoomsMissingFieldsDefault(t *testing.T) {
	payload := `{"rooms": [{"name": "Hall"}]}`

	rooms, err := DecodeRooms([]byte(payload))
	if err != nil {
		t.Fatalf("DecodeRooms failed: %v", err)
	}
	r := rooms[0]
	if r.Type != TypeOther {
		t.Errorf("missing type should default to other, got %q", r.Type)
	}
	if r.AreaSqft != 0 || r.AreaSqm != 0 {
		t.Errorf("missing areas should be zero, got %v / %v", r.AreaSqft, r.AreaSqm)
	}
	if r.Fixtures != nil || r.Doors != nil || r.Windows != nil {
		t.Errorf("missing lists should stay nil: %+v", r)
	}
}

func TestDecodeRoomsFillsMissingAreaUnit(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		wantSqft float64
		wantSqm  float64
	}{
		{
			"sqm derived from sqft",
			`{"rooms": [{"name": "A", "type": "bedroom", "area_sqft": 100}]}`,
			100, 9.29,
		},
		{
			"sqft derived from sqm",
			`{"rooms": [{"name": "B", "type": "bedroom", "area_sqm": 10}]}`,
			107.64, 10,
		},
		{
			"both present untouched",
			`{"rooms": [{"name": "C", "type": "bedroom", "area_sqft": 100, "area_sqm": 9.5}]}`,
			100, 9.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rooms, err := DecodeRooms([]byte(tt.payload))
			if err != nil {
				t.Fatalf("DecodeRooms failed: %v", err)
			}
			if !floatEquals(rooms[0].AreaSqft, tt.wantSqft, 0.01) {
				t.Errorf("AreaSqft = %v, want %v", rooms[0].AreaSqft, tt.wantSqft)
			}
			if !floatEquals(rooms[0].AreaSqm, tt.wantSqm, 0.01) {
				t.Errorf("AreaSqm = %v, want %v", rooms[0].AreaSqm, tt.wantSqm)
			}
		})
	}
}

func TestDecodeRoomsInvalidPayload(t *testing.T) {
	if _, err := DecodeRooms([]byte("not json at all")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestDecodeRoomsEmptyList(t *testing.T) {
	rooms, err := DecodeRooms([]byte(`{"rooms": []}`))
	if err != nil {
		t.Fatalf("DecodeRooms failed: %v", err)
	}
	if len(rooms) != 0 {
		t.Errorf("expected empty room list, got %d", len(rooms))
	}
}

func TestTotalArea(t *testing.T) {
	rooms := []Room{
		{Name: "A", AreaSqft: 120.5},
		{Name: "B", AreaSqft: 79.25},
		{Name: "C"},
	}
	if got := TotalArea(rooms); !floatEquals(got, 199.75, 0.001) {
		t.Errorf("TotalArea = %v, want 199.75", got)
	}
	if got := TotalArea(nil); got != 0 {
		t.Errorf("TotalArea(nil) = %v, want 0", got)
	}
}
