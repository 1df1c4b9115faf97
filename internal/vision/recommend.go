package vision

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/floorsight/floorplan-api/internal/furniture"
	"github.com/floorsight/floorplan-api/internal/imaging"
)

// recommendPrompt asks for short shopping queries for one furniture
// item. Long queries return poor results from retailer search pages,
// so the prompt insists on 2-4 words.
const recommendPrompt = `Create 3 SHORT search queries (2-4 words max) to find this furniture:

**Item:** %s
- Category: %s
- Color: %s
- Style: %s

For each, provide:
1. search_query: SHORT search (2-4 words only, e.g. "gray fabric sofa" or "wood coffee table")
2. store: Retailer (IKEA, Wayfair, Amazon, Target)
3. price_range: Price estimate

Return ONLY valid JSON:

{
  "recommendations": [
    {"search_query": "gray fabric sofa", "store": "Wayfair", "price_range": "$500-$900"},
    {"search_query": "grey couch", "store": "Amazon", "price_range": "$400-$800"},
    {"search_query": "fabric sofa", "store": "IKEA", "price_range": "$300-$600"}
  ]
}

IMPORTANT: Keep search queries SHORT (2-4 words). No long phrases.`

// Recommend asks the model for up to three shopping recommendations
// for a furniture item. The returned entries carry no retailer URL;
// the search layer resolves those.
func (c *Client) Recommend(ctx context.Context, item furniture.Item) ([]furniture.Recommendation, error) {
	name := item.Name
	if name == "" {
		name = "Unknown"
	}
	category := item.Category
	if category == "" {
		category = "furniture"
	}
	color := ""
	if item.PrimaryColor != "" {
		color = imaging.ColorName(item.PrimaryColor)
	}
	if color == "" {
		color = "neutral"
	}
	style := ""
	if len(item.StyleTags) > 0 {
		style = item.StyleTags[0]
	}

	text, err := c.Complete(ctx, fmt.Sprintf(recommendPrompt, name, category, color, style), 2048)
	if err != nil {
		return nil, err
	}

	var wire struct {
		Recommendations []furniture.Recommendation `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(text), &wire); err != nil {
		return nil, fmt.Errorf("parse recommendations: %w", err)
	}
	return wire.Recommendations, nil
}
