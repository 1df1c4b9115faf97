package vision

import (
	"context"
	"fmt"

	"github.com/floorsight/floorplan-api/internal/floorplan"
)

const roomPrompt = `Analyze this floor plan image (%dx%d pixels).%s

Extract information about EVERY room/space in the floor plan.

For each room provide:
1. name: Room name (read from labels or infer from fixtures)
2. type: Category (bedroom, bathroom, kitchen, living_room, dining_room, office, entrance, hallway, closet, storage, utility, garage, balcony, other)
3. area_sqft: Area in square feet (read or estimate)
4. area_sqm: Area in square meters
5. dimensions: Object with length, width (imperial and metric)
6. fixtures: List of fixtures/furniture visible
7. doors: List of doors with position and connection
8. windows: List of windows with position and count
9. adjacent_rooms: List of connected room names

Return ONLY valid JSON (no markdown, no explanation):

{"rooms": [
  {
    "name": "Living Room",
    "type": "living_room",
    "area_sqft": 208,
    "area_sqm": 19.3,
    "dimensions": {
      "length": "15'4\"",
      "width": "13'6\"",
      "length_m": 4.7,
      "width_m": 4.1
    },
    "fixtures": ["window", "door"],
    "doors": [{"position": "south", "type": "standard", "connects_to": "entrance"}],
    "windows": [{"position": "north", "count": 2, "type": "standard"}],
    "adjacent_rooms": ["kitchen", "entrance"]
  }
]}

Include ALL rooms. Be precise with dimensions shown in the plan.`

// ExtractRooms asks the vision model to read every room out of a floor
// plan image.
//
// contextHint optionally describes the building kind ("residential
// apartment", "office") and is folded into the prompt when non-empty.
// The room list order follows the model's output. An empty list is a
// valid result, not an error.
func (c *Client) ExtractRooms(ctx context.Context, image []byte, width, height int, contextHint string) ([]floorplan.Room, error) {
	hint := ""
	if contextHint != "" {
		hint = fmt.Sprintf("\nContext: This is a %s.", contextHint)
	}
	prompt := fmt.Sprintf(roomPrompt, width, height, hint)

	text, err := c.CompleteWithImage(ctx, prompt, image, 4096)
	if err != nil {
		return nil, err
	}

	rooms, err := floorplan.DecodeRooms([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("parse room extraction: %w", err)
	}
	return rooms, nil
}
