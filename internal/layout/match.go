package layout

import (
	"strings"

	"github.com/floorsight/floorplan-api/internal/floorplan"
)

// LabelDetection is a raw label position reported by the detector: the
// label text and the pixel center of where it appears on the image.
// Detections may reference rooms that were filtered out or do not exist.
type LabelDetection struct {
	RoomName string `json:"room_name"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

// Match binds one detection to an eligible room by index.
type Match struct {
	RoomIndex int
	X         int
	Y         int
}

// roomKeywords maps label fragments to room types, checked in order.
// Order matters: MASTER must be reachable after BEDROOM so that either
// fragment lands on a bedroom deterministically.
var roomKeywords = []struct {
	keyword  string
	roomType floorplan.RoomType
}{
	{"LIVING", floorplan.TypeLivingRoom},
	{"BEDROOM", floorplan.TypeBedroom},
	{"MASTER", floorplan.TypeBedroom},
	{"KITCHEN", floorplan.TypeKitchen},
	{"DINING", floorplan.TypeDiningRoom},
	{"BATH", floorplan.TypeBathroom},
	{"CLOSET", floorplan.TypeCloset},
	{"OFFICE", floorplan.TypeOffice},
	{"GARAGE", floorplan.TypeGarage},
	{"HALLWAY", floorplan.TypeHallway},
	{"ENTRANCE", floorplan.TypeEntrance},
}

// MatchDetections resolves each detection, in input order, to at most
// one eligible room. A detection whose room already has an earlier
// match is discarded (first match wins), as is any detection that
// matches nothing, so labels for rooms outside the eligible set are
// silently dropped.
func MatchDetections(detections []LabelDetection, eligible []floorplan.Room) []Match {
	matches := make([]Match, 0, len(detections))
	claimed := make(map[int]bool, len(eligible))

	for _, det := range detections {
		idx, ok := findMatchingRoom(det.RoomName, eligible)
		if !ok || claimed[idx] {
			continue
		}
		claimed[idx] = true
		matches = append(matches, Match{RoomIndex: idx, X: det.X, Y: det.Y})
	}
	return matches
}

// findMatchingRoom locates the eligible room a label refers to, trying
// exact name equality, then substring containment in either direction,
// then the keyword table. All comparisons are case-insensitive on
// trimmed names.
func findMatchingRoom(name string, eligible []floorplan.Room) (int, bool) {
	target := strings.ToUpper(strings.TrimSpace(name))

	for i, room := range eligible {
		if strings.ToUpper(strings.TrimSpace(room.Name)) == target {
			return i, true
		}
	}

	for i, room := range eligible {
		stored := strings.ToUpper(strings.TrimSpace(room.Name))
		if stored == "" {
			continue
		}
		if strings.Contains(stored, target) || strings.Contains(target, stored) {
			return i, true
		}
	}

	for _, kw := range roomKeywords {
		if !strings.Contains(target, kw.keyword) {
			continue
		}
		for i, room := range eligible {
			if room.Type == kw.roomType {
				return i, true
			}
		}
	}

	return 0, false
}
