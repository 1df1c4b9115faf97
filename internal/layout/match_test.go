package layout

import (
	"testing"

	"github.com/floorsight/floorplan-api/internal/floorplan"
)

func TestFindMatchingRoom(t *testing.T) {
	eligible := []floorplan.Room{
		room("Living Room", floorplan.TypeLivingRoom, 208),
		room("Kitchen", floorplan.TypeKitchen, 96),
		room("Bedroom", floorplan.TypeBedroom, 140),
		room("Bathroom", floorplan.TypeBathroom, 40),
	}

	tests := []struct {
		name      string
		label     string
		wantIndex int
		wantOK    bool
	}{
		{"exact match", "Kitchen", 1, true},
		{"exact match case-insensitive", "KITCHEN", 1, true},
		{"exact match trimmed", "  Bathroom  ", 3, true},
		{"substring: label contains room name", "MASTER BEDROOM", 2, true},
		{"substring: room name contains label", "LIVING", 0, true},
		{"keyword MASTER resolves to first bedroom", "MASTER SUITE", 2, true},
		{"keyword BATH", "HALF BATH", 3, true},
		{"no match", "POOL", 0, false},
		{"keyword for type not present", "GARAGE", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := findMatchingRoom(tt.label, eligible)
			if ok != tt.wantOK {
				t.Fatalf("findMatchingRoom(%q) ok = %v, want %v", tt.label, ok, tt.wantOK)
			}
			if ok && idx != tt.wantIndex {
				t.Errorf("findMatchingRoom(%q) index = %d, want %d", tt.label, idx, tt.wantIndex)
			}
		})
	}
}

func TestFindMatchingRoomExactBeforeSubstring(t *testing.T) {
	eligible := []floorplan.Room{
		room("Bedroom", floorplan.TypeBedroom, 100),
		room("Master Bedroom", floorplan.TypeBedroom, 170),
	}

	// "MASTER BEDROOM" is a substring relative of "Bedroom" too, but the
	// exact rule must win first.
	idx, ok := findMatchingRoom("MASTER BEDROOM", eligible)
	if !ok || idx != 1 {
		t.Errorf("expected exact match at index 1, got %d (ok=%v)", idx, ok)
	}
}

func TestMatchDetectionsOrderAndCoordinates(t *testing.T) {
	eligible := []floorplan.Room{
		room("Living Room", floorplan.TypeLivingRoom, 208),
		room("Kitchen", floorplan.TypeKitchen, 96),
	}
	detections := []LabelDetection{
		{RoomName: "KITCHEN", X: 150, Y: 150},
		{RoomName: "LIVING ROOM", X: 350, Y: 400},
	}

	matches := MatchDetections(detections, eligible)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].RoomIndex != 1 || matches[0].X != 150 || matches[0].Y != 150 {
		t.Errorf("first match = %+v, want kitchen at (150,150)", matches[0])
	}
	if matches[1].RoomIndex != 0 || matches[1].X != 350 {
		t.Errorf("second match = %+v, want living room at (350,400)", matches[1])
	}
}

func TestMatchDetectionsFirstMatchWinsPerRoom(t *testing.T) {
	eligible := []floorplan.Room{
		room("Bedroom", floorplan.TypeBedroom, 140),
	}
	detections := []LabelDetection{
		{RoomName: "BEDROOM", X: 100, Y: 100},
		{RoomName: "MASTER BEDROOM", X: 500, Y: 500},
	}

	matches := MatchDetections(detections, eligible)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match after dedup, got %d", len(matches))
	}
	if matches[0].X != 100 || matches[0].Y != 100 {
		t.Errorf("kept match = %+v, want the first detection's coordinates", matches[0])
	}
}

func TestMatchDetectionsDiscardsUnmatched(t *testing.T) {
	eligible := []floorplan.Room{
		room("Kitchen", floorplan.TypeKitchen, 96),
	}
	detections := []LabelDetection{
		{RoomName: "CLOSET", X: 10, Y: 10},
		{RoomName: "POOL HOUSE", X: 20, Y: 20},
		{RoomName: "KITCHEN", X: 150, Y: 150},
	}

	matches := MatchDetections(detections, eligible)
	if len(matches) != 1 {
		t.Fatalf("expected only the kitchen match, got %d matches", len(matches))
	}
	if matches[0].RoomIndex != 0 {
		t.Errorf("match index = %d, want 0", matches[0].RoomIndex)
	}
}

func TestMatchDetectionsEmptyInputs(t *testing.T) {
	if got := MatchDetections(nil, []floorplan.Room{room("Kitchen", floorplan.TypeKitchen, 96)}); len(got) != 0 {
		t.Errorf("nil detections should match nothing, got %d", len(got))
	}
	if got := MatchDetections([]LabelDetection{{RoomName: "KITCHEN", X: 1, Y: 1}}, nil); len(got) != 0 {
		t.Errorf("no eligible rooms should match nothing, got %d", len(got))
	}
}
