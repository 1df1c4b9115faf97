package vision

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/floorsight/floorplan-api/internal/furniture"
	"github.com/floorsight/floorplan-api/internal/imaging"
)

const furniturePrompt = `Analyze this room design/interior image (%dx%d pixels).

Identify ONLY the MAIN furniture pieces (max 5-6 items). Focus on:
- Large furniture: sofas, beds, tables, chairs, cabinets, desks
- Skip small items: candles, books, small plants, decorative bowls, throw pillows

For each main object provide:
1. name: Object name (e.g., "Sofa", "Coffee Table", "Bed")
2. category: Type (bed, sofa, chair, table, desk, lamp, rug, cabinet, shelf)
3. primary_color: Main color as hex code (e.g., "#8B4513")
4. style_tags: Style descriptors (modern, vintage, minimalist, rustic, industrial, scandinavian, bohemian)
5. material_tags: Materials (wood, metal, fabric, leather, glass)
6. description: Brief visual description for shopping search

Also provide:
- overall_style: The overall room style
- color_palette: Top 3 dominant colors

Return ONLY valid JSON:

{
  "objects": [
    {
      "name": "Three-Seat Sofa",
      "category": "sofa",
      "primary_color": "#A0937D",
      "style_tags": ["rustic", "traditional"],
      "material_tags": ["fabric"],
      "description": "Beige fabric three-seat sofa with rolled arms"
    }
  ],
  "overall_style": "Rustic Traditional",
  "color_palette": [
    {"color": "#A0937D", "name": "Warm Grey"},
    {"color": "#8B4513", "name": "Brown"}
  ]
}

Only include 5-6 main furniture pieces, not small decor.`

// IdentifyFurniture asks the vision model to pick out the main
// furniture pieces in a room design image.
//
// The result is verified: objects whose category and name match no
// known furniture kind, or that lack a primary color, are dropped.
func (c *Client) IdentifyFurniture(ctx context.Context, image []byte) (*furniture.Analysis, error) {
	img, _, err := imaging.Decode(image)
	if err != nil {
		return nil, fmt.Errorf("decode furniture image: %w", err)
	}
	bounds := img.Bounds()
	prompt := fmt.Sprintf(furniturePrompt, bounds.Dx(), bounds.Dy())

	text, err := c.CompleteWithImage(ctx, prompt, image, 4096)
	if err != nil {
		return nil, err
	}

	var analysis furniture.Analysis
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		return nil, fmt.Errorf("parse furniture analysis: %w", err)
	}

	analysis.Objects = furniture.Verify(analysis.Objects)
	if analysis.ColorPalette == nil {
		analysis.ColorPalette = []furniture.PaletteColor{}
	}
	return &analysis, nil
}
