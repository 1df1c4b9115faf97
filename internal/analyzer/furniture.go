package analyzer

import (
	"context"
	"errors"
	"fmt"

	"github.com/floorsight/floorplan-api/internal/furniture"
	"github.com/floorsight/floorplan-api/internal/imaging"
	"github.com/floorsight/floorplan-api/internal/logger"
	"github.com/floorsight/floorplan-api/internal/search"
)

// ErrVisionUnavailable is returned by furniture flows when no vision
// collaborator is wired in. Unlike floor plan analysis, furniture
// identification has nothing useful to return without one.
var ErrVisionUnavailable = errors.New("furniture analysis requires the vision collaborator")

// localPaletteSize is how many dominant colors the fallback palette
// carries, matching the count the vision prompt asks for.
const localPaletteSize = 5

// AnalyzeFurniture identifies furniture in a room photo. When the
// model returns no color palette, one is computed locally from the
// photo's dominant colors.
func (a *Analyzer) AnalyzeFurniture(ctx context.Context, imageData []byte) (*furniture.Analysis, error) {
	if a.vision == nil || !a.vision.Configured() {
		return nil, ErrVisionUnavailable
	}

	analysis, err := a.vision.IdentifyFurniture(ctx, imageData)
	if err != nil {
		a.metrics.VisionErrors.Add(1)
		return nil, fmt.Errorf("identify furniture: %w", err)
	}
	a.metrics.FurnitureItems.Add(uint64(len(analysis.Objects)))

	if len(analysis.ColorPalette) == 0 {
		analysis.ColorPalette = localPalette(imageData)
	}
	return analysis, nil
}

// localPalette names the dominant colors of the photo itself.
func localPalette(imageData []byte) []furniture.PaletteColor {
	img, _, err := imaging.Decode(imageData)
	if err != nil {
		return []furniture.PaletteColor{}
	}
	hexes := imaging.PaletteHex(img, localPaletteSize)
	palette := make([]furniture.PaletteColor, 0, len(hexes))
	for _, hex := range hexes {
		palette = append(palette, furniture.PaletteColor{
			Color: hex,
			Name:  imaging.ColorName(hex),
		})
	}
	return palette
}

// ShoppedItem is a furniture item joined with its best product match.
// Product stays null when no search collaborator is available or the
// lookup found nothing.
type ShoppedItem struct {
	furniture.Item
	Product *search.Product `json:"product"`
}

// ShopResult combines a furniture analysis with per-item product
// matches.
type ShopResult struct {
	Status       string                   `json:"status"`
	ObjectNames  []string                 `json:"object_names"`
	Objects      []ShoppedItem            `json:"objects"`
	OverallStyle string                   `json:"overall_style"`
	ColorPalette []furniture.PaletteColor `json:"color_palette"`
}

// AnalyzeAndShop identifies furniture and finds a purchasable product
// for every item in one pass. Product lookups that fail leave the
// item's product empty instead of failing the whole request.
func (a *Analyzer) AnalyzeAndShop(ctx context.Context, imageData []byte) (*ShopResult, error) {
	analysis, err := a.AnalyzeFurniture(ctx, imageData)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(analysis.Objects))
	objects := make([]ShoppedItem, 0, len(analysis.Objects))
	for _, item := range analysis.Objects {
		names = append(names, item.Name)
		objects = append(objects, ShoppedItem{
			Item:    item,
			Product: a.findProduct(ctx, analysis.OverallStyle, item),
		})
	}

	return &ShopResult{
		Status:       "success",
		ObjectNames:  names,
		Objects:      objects,
		OverallStyle: analysis.OverallStyle,
		ColorPalette: analysis.ColorPalette,
	}, nil
}

// findProduct searches for one item, qualifying the query with the
// room's overall style when known.
func (a *Analyzer) findProduct(ctx context.Context, style string, item furniture.Item) *search.Product {
	if a.finder == nil || !a.finder.Configured() {
		return nil
	}

	query := item.Category
	if style != "" {
		query = style + " " + item.Category
	}

	a.metrics.ProductSearches.Add(1)
	product, err := a.finder.SearchProducts(ctx, query)
	if err != nil {
		a.metrics.SearchErrors.Add(1)
		logger.Warn(module, "product search for %q failed: %v", query, err)
		return nil
	}
	return product
}
