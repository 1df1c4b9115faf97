// Package furniture defines the domain types for furniture identified
// in room design images, shared by the vision analysis and product
// search layers.
package furniture

import "strings"

// Item describes a single furniture piece identified in a room image.
type Item struct {
	// Name is the human-readable object name, e.g. "Three-Seat Sofa".
	Name string `json:"name"`

	// Category is the furniture kind, e.g. "sofa", "table", "bed".
	Category string `json:"category"`

	// PrimaryColor is the dominant color as a hex code, e.g. "#8B4513".
	PrimaryColor string `json:"primary_color"`

	// SecondaryColors lists additional prominent colors as hex codes.
	SecondaryColors []string `json:"secondary_colors,omitempty"`

	// StyleTags are style descriptors such as "modern" or "rustic".
	StyleTags []string `json:"style_tags,omitempty"`

	// MaterialTags are materials such as "wood" or "fabric".
	MaterialTags []string `json:"material_tags,omitempty"`

	// Description is a brief visual description used for shopping search.
	Description string `json:"description,omitempty"`
}

// PaletteColor pairs a hex color with its human-readable name.
type PaletteColor struct {
	Color string `json:"color"`
	Name  string `json:"name"`
}

// Analysis is the result of identifying furniture in a room image.
type Analysis struct {
	// Objects are the verified furniture pieces, main items only.
	Objects []Item `json:"objects"`

	// OverallStyle is the room's genre, e.g. "Rustic Traditional".
	OverallStyle string `json:"overall_style,omitempty"`

	// ColorPalette holds the room's dominant colors.
	ColorPalette []PaletteColor `json:"color_palette"`
}

// Recommendation is a single shopping suggestion for a furniture item:
// a short search query, a retailer to run it against, and an expected
// price range.
type Recommendation struct {
	SearchQuery string `json:"search_query"`
	Store       string `json:"store"`
	PriceRange  string `json:"price_range"`

	// URL is the retailer search link built from Store and SearchQuery.
	URL string `json:"url,omitempty"`
}

// validCategories lists the furniture kinds considered real, shoppable
// pieces. Identified objects matching none of them are discarded.
var validCategories = []string{
	"sofa", "couch", "chair", "armchair", "table", "desk", "bed",
	"lamp", "rug", "cabinet", "shelf", "dresser", "nightstand",
	"bookshelf", "ottoman", "bench", "stool", "wardrobe", "mirror",
}

// Verify filters identified objects down to real furniture items.
//
// An item passes when its category or name mentions a known furniture
// kind (case-insensitive substring) and it carries a primary color.
// Abstract regions, unclear objects, and small decor misreads are
// dropped. The input slice is not modified.
func Verify(items []Item) []Item {
	verified := make([]Item, 0, len(items))
	for _, item := range items {
		category := strings.ToLower(item.Category)
		name := strings.ToLower(item.Name)

		valid := false
		for _, kind := range validCategories {
			if strings.Contains(category, kind) || strings.Contains(name, kind) {
				valid = true
				break
			}
		}

		if valid && item.PrimaryColor != "" {
			verified = append(verified, item)
		}
	}
	return verified
}
