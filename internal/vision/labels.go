package vision

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/floorsight/floorplan-api/internal/layout"
)

const labelPrompt = `Analyze this annotated floor plan image (%dx%d pixels).

The image shows colored room overlays with room names/labels written on them.

Expected room names: %s

IMPORTANT: Look for ALL room labels including small text labels. Some rooms like bathrooms may have smaller or less prominent labels - make sure to include them.

For EACH visible room label/name text in the image, identify:
1. room_name: The exact text of the room label as it appears (e.g., "LIVING ROOM", "BEDROOM", "KITCHEN", "BATHROOM")
2. x: Center X coordinate of where the label text is positioned (0 to %d pixels)
3. y: Center Y coordinate of where the label text is positioned (0 to %d pixels)

The coordinates should point to the CENTER of each room's label text.

Return ONLY valid JSON (no markdown, no explanation):

{
  "buttons": [
    {"room_name": "LIVING ROOM", "x": 350, "y": 400},
    {"room_name": "BEDROOM", "x": 800, "y": 250},
    {"room_name": "KITCHEN", "x": 150, "y": 150},
    {"room_name": "BATHROOM", "x": 600, "y": 200}
  ]
}

Include ALL room labels you can see in the image, even if the text is small or faint. Match the names exactly as they appear.
Do NOT skip rooms - if you see a colored room area, look carefully for its label.`

// DetectLabels asks the vision model where each room's label text sits
// in an annotated floor plan.
//
// roomNames hints the expected labels; empty names are skipped. The
// returned detections carry pixel coordinates (fractional model output
// is rounded) and keep the model's order. Missing labels are simply
// absent; the caller decides how to fill the gaps.
func (c *Client) DetectLabels(ctx context.Context, annotated []byte, width, height int, roomNames []string) ([]layout.LabelDetection, error) {
	quoted := make([]string, 0, len(roomNames))
	for _, name := range roomNames {
		if name != "" {
			quoted = append(quoted, fmt.Sprintf("%q", name))
		}
	}
	prompt := fmt.Sprintf(labelPrompt, width, height, strings.Join(quoted, ", "), width, height)

	text, err := c.CompleteWithImage(ctx, prompt, annotated, 2048)
	if err != nil {
		return nil, err
	}

	var wire struct {
		Buttons []struct {
			RoomName string  `json:"room_name"`
			X        float64 `json:"x"`
			Y        float64 `json:"y"`
		} `json:"buttons"`
	}
	if err := json.Unmarshal([]byte(text), &wire); err != nil {
		return nil, fmt.Errorf("parse label detection: %w", err)
	}

	detections := make([]layout.LabelDetection, 0, len(wire.Buttons))
	for _, b := range wire.Buttons {
		detections = append(detections, layout.LabelDetection{
			RoomName: b.RoomName,
			X:        int(math.Round(b.X)),
			Y:        int(math.Round(b.Y)),
		})
	}
	return detections, nil
}
