package search

import (
	"strings"

	"github.com/floorsight/floorplan-api/internal/furniture"
	"github.com/floorsight/floorplan-api/internal/imaging"
)

// storeGoogleShopping is the fallback retailer for recommendations
// naming a store without a known search URL.
const storeGoogleShopping = "Google Shopping"

// storeURLs maps retailer names to their query-parameter search URLs.
var storeURLs = map[string]string{
	"IKEA":              "https://www.ikea.com/us/en/search/?q=",
	"Wayfair":           "https://www.wayfair.com/keyword.html?keyword=",
	"Amazon":            "https://www.amazon.com/s?k=",
	"Target":            "https://www.target.com/s?searchTerm=",
	"West Elm":          "https://www.westelm.com/search/?q=",
	"Walmart":           "https://www.walmart.com/search?q=",
	storeGoogleShopping: "https://www.google.com/search?tbm=shop&q=",
}

// StoreLink builds a retailer search URL for a query. Unknown stores
// fall back to Google Shopping.
func StoreLink(store, query string) string {
	base, ok := storeURLs[store]
	if !ok {
		base = storeURLs[storeGoogleShopping]
	}
	return base + encodeQuery(query)
}

// encodeQuery is the minimal encoding retailer search URLs need.
func encodeQuery(query string) string {
	return strings.ReplaceAll(query, " ", "+")
}

// Queries composes deduplicated product search strings from a
// furniture item's attributes: the item name, its style, color and
// material variants, and a full descriptive combination. Blank
// attributes drop out of the composition rather than leaving gaps.
func Queries(item furniture.Item) []string {
	category := strings.TrimSpace(item.Category)

	color := ""
	if item.PrimaryColor != "" {
		color = imaging.ColorName(item.PrimaryColor)
	}
	style := ""
	if len(item.StyleTags) > 0 {
		style = strings.TrimSpace(item.StyleTags[0])
	}
	material := ""
	if len(item.MaterialTags) > 0 {
		material = strings.TrimSpace(item.MaterialTags[0])
	}

	var queries []string
	seen := make(map[string]bool)
	add := func(parts ...string) {
		kept := make([]string, 0, len(parts))
		for _, part := range parts {
			if part = strings.TrimSpace(part); part != "" {
				kept = append(kept, part)
			}
		}
		query := strings.Join(kept, " ")
		if query == "" || seen[query] {
			return
		}
		seen[query] = true
		queries = append(queries, query)
	}

	add(item.Name, category)
	if style != "" {
		add(style, category)
	}
	if color != "" && style != "" {
		add(color, style, category)
	}
	if material != "" {
		add(material, category)
	}
	add(color, style, material, category)

	return queries
}
