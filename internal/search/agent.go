package search

import (
	"context"
	"strings"

	"github.com/floorsight/floorplan-api/internal/furniture"
	"github.com/floorsight/floorplan-api/internal/imaging"
)

// maxRecommendations caps how many LLM suggestions a report carries.
const maxRecommendations = 3

// Recommender produces shopping recommendations for a furniture item.
// The vision client implements it.
type Recommender interface {
	Recommend(ctx context.Context, item furniture.Item) ([]furniture.Recommendation, error)
}

// Agent turns identified furniture into product search material:
// search queries and shopping recommendations with retailer links.
//
// The Recommender is optional. Without one, or when it fails, the
// agent falls back to a single deterministic recommendation built from
// the item's attributes.
type Agent struct {
	llm Recommender
}

// NewAgent creates an Agent. llm may be nil.
func NewAgent(llm Recommender) *Agent {
	return &Agent{llm: llm}
}

// Report is the product search outcome for one furniture item.
type Report struct {
	// Status is "success" for a completed report.
	Status string `json:"status"`

	// Object is the furniture item's name.
	Object string `json:"object"`

	// SearchQueries are the generated product search strings.
	SearchQueries []string `json:"search_queries"`

	// Recommendations are shopping suggestions with retailer links.
	Recommendations []furniture.Recommendation `json:"recommendations"`
}

// Search builds the product search report for one furniture item.
func (a *Agent) Search(ctx context.Context, item furniture.Item) Report {
	queries := Queries(item)
	if queries == nil {
		queries = []string{}
	}

	recs := a.recommendations(ctx, item)
	for i := range recs {
		recs[i].URL = StoreLink(recs[i].Store, recs[i].SearchQuery)
	}

	name := item.Name
	if name == "" {
		name = "Unknown"
	}
	return Report{
		Status:          "success",
		Object:          name,
		SearchQueries:   queries,
		Recommendations: recs,
	}
}

// SearchAll builds reports for every item, in order.
func (a *Agent) SearchAll(ctx context.Context, items []furniture.Item) []Report {
	reports := make([]Report, 0, len(items))
	for _, item := range items {
		reports = append(reports, a.Search(ctx, item))
	}
	return reports
}

func (a *Agent) recommendations(ctx context.Context, item furniture.Item) []furniture.Recommendation {
	if a.llm != nil {
		recs, err := a.llm.Recommend(ctx, item)
		if err == nil && len(recs) > 0 {
			if len(recs) > maxRecommendations {
				recs = recs[:maxRecommendations]
			}
			return recs
		}
	}
	return []furniture.Recommendation{fallbackRecommendation(item)}
}

// fallbackRecommendation builds the deterministic stand-in used when
// no language model is available: the item's fullest attribute
// description, searched on Google Shopping.
func fallbackRecommendation(item furniture.Item) furniture.Recommendation {
	category := strings.TrimSpace(item.Category)
	if category == "" {
		category = "furniture"
	}

	var parts []string
	if item.PrimaryColor != "" {
		if color := imaging.ColorName(item.PrimaryColor); color != "" {
			parts = append(parts, color)
		}
	}
	if len(item.StyleTags) > 0 && strings.TrimSpace(item.StyleTags[0]) != "" {
		parts = append(parts, strings.TrimSpace(item.StyleTags[0]))
	}
	if len(item.MaterialTags) > 0 && strings.TrimSpace(item.MaterialTags[0]) != "" {
		parts = append(parts, strings.TrimSpace(item.MaterialTags[0]))
	}
	parts = append(parts, category)

	return furniture.Recommendation{
		SearchQuery: strings.Join(parts, " "),
		Store:       storeGoogleShopping,
		PriceRange:  "Varies by retailer",
	}
}
