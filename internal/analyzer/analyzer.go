// Package analyzer orchestrates floor plan and room photo analysis:
// it fans out to the vision and raster collaborators, composites the
// annotated plan, derives room buttons through the layout pipeline,
// and joins furniture analysis with product search.
//
// Collaborators are interfaces so tests can substitute fakes; the
// production wiring passes the vision, raster, and search clients.
// Each collaborator is optional. Missing ones degrade the result (no
// overlay, no rooms, no products) instead of failing a request that
// can still return something useful.
package analyzer

import (
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/floorsight/floorplan-api/internal/annotate"
	"github.com/floorsight/floorplan-api/internal/floorplan"
	"github.com/floorsight/floorplan-api/internal/furniture"
	"github.com/floorsight/floorplan-api/internal/imaging"
	"github.com/floorsight/floorplan-api/internal/layout"
	"github.com/floorsight/floorplan-api/internal/logger"
	"github.com/floorsight/floorplan-api/internal/metrics"
	"github.com/floorsight/floorplan-api/internal/ocr"
	"github.com/floorsight/floorplan-api/internal/search"
)

const module = "analyzer"

// Tesseract hooks, swapped out in tests.
var (
	ocrAvailable    = ocr.Available
	ocrDetectLabels = ocr.DetectLabels
)

// VisionAPI is the subset of the vision client the analyzer calls.
type VisionAPI interface {
	Configured() bool
	ExtractRooms(ctx context.Context, image []byte, width, height int, contextHint string) ([]floorplan.Room, error)
	DetectLabels(ctx context.Context, annotated []byte, width, height int, roomNames []string) ([]layout.LabelDetection, error)
	IdentifyFurniture(ctx context.Context, image []byte) (*furniture.Analysis, error)
}

// Vectorizer produces a colored room overlay for a floor plan.
type Vectorizer interface {
	Configured() bool
	Vectorize(ctx context.Context, imageData []byte) (image.Image, error)
}

// ProductFinder runs text product searches.
type ProductFinder interface {
	Configured() bool
	SearchProducts(ctx context.Context, query string) (*search.Product, error)
}

// Options configure an Analyzer. Any collaborator may be nil.
type Options struct {
	Vision       VisionAPI
	Raster       Vectorizer
	Finder       ProductFinder
	Metrics      *metrics.Metrics
	OverlayAlpha uint8 // 0 selects the default overlay opacity
}

// Analyzer runs the analysis flows behind the HTTP API.
//
// Analyzer is safe for concurrent use.
type Analyzer struct {
	vision  VisionAPI
	raster  Vectorizer
	finder  ProductFinder
	metrics *metrics.Metrics
	alpha   uint8
}

// New creates an Analyzer.
func New(opts Options) *Analyzer {
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	if opts.OverlayAlpha == 0 {
		opts.OverlayAlpha = annotate.DefaultOverlayAlpha
	}
	return &Analyzer{
		vision:  opts.Vision,
		raster:  opts.Raster,
		finder:  opts.Finder,
		metrics: opts.Metrics,
		alpha:   opts.OverlayAlpha,
	}
}

// Dimensions is a width/height pair in pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Result is the full floor plan analysis returned to API clients.
type Result struct {
	// Status is "success" for a completed analysis.
	Status string `json:"status"`

	// Rooms are the extracted rooms, in collaborator order.
	Rooms []floorplan.Room `json:"rooms"`

	// AnnotatedImage is the overlay-composited plan as base64 PNG.
	AnnotatedImage string `json:"annotated_image_base64"`

	// TotalAreaSqft sums the area of every extracted room.
	TotalAreaSqft float64 `json:"total_area_sqft"`

	// RoomCount is the number of extracted rooms.
	RoomCount int `json:"room_count"`

	// RoomButtons are the derived interactive button positions.
	RoomButtons []layout.Button `json:"room_buttons"`

	// ImageDimensions is the uploaded plan's pixel size.
	ImageDimensions Dimensions `json:"image_dimensions"`
}

// AnnotatedPNG decodes the annotated image back to raw PNG bytes.
func (r *Result) AnnotatedPNG() ([]byte, error) {
	return base64.StdEncoding.DecodeString(r.AnnotatedImage)
}

// Analyze runs the floor plan pipeline over an uploaded image: room
// extraction and the vector overlay are fetched concurrently, the
// overlay is composited onto the plan, and room buttons are derived
// from label detections over the annotated image.
//
// A failed overlay annotates the plain plan; failed label detection
// falls back to local OCR and then to estimated positions. A vision
// room-extraction failure fails the request, except when the vision
// collaborator is absent altogether, which yields an empty analysis.
func (a *Analyzer) Analyze(ctx context.Context, imageData []byte, contextHint string) (*Result, error) {
	start := time.Now()

	base, _, err := imaging.Decode(imageData)
	if err != nil {
		return nil, fmt.Errorf("decode floor plan: %w", err)
	}
	width := base.Bounds().Dx()
	height := base.Bounds().Dy()

	var (
		wg      sync.WaitGroup
		rooms   []floorplan.Room
		roomErr error
		overlay image.Image
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		rooms, roomErr = a.extractRooms(ctx, imageData, width, height, contextHint)
	}()
	go func() {
		defer wg.Done()
		overlay = a.fetchOverlay(ctx, imageData)
	}()
	wg.Wait()

	if roomErr != nil {
		a.metrics.AnalyzeFailures.Add(1)
		return nil, roomErr
	}
	if rooms == nil {
		rooms = []floorplan.Room{}
	}

	annotated := annotate.Compose(base, overlay, a.alpha)
	annotatedPNG, err := imaging.EncodePNG(annotated)
	if err != nil {
		a.metrics.AnalyzeFailures.Add(1)
		return nil, fmt.Errorf("encode annotated image: %w", err)
	}

	buttons := a.deriveButtons(ctx, annotatedPNG, annotated, rooms, width, height)
	if buttons == nil {
		buttons = []layout.Button{}
	}

	a.metrics.ObserveAnalyze(start, len(rooms), len(buttons))
	return &Result{
		Status:          "success",
		Rooms:           rooms,
		AnnotatedImage:  base64.StdEncoding.EncodeToString(annotatedPNG),
		TotalAreaSqft:   floorplan.TotalArea(rooms),
		RoomCount:       len(rooms),
		RoomButtons:     buttons,
		ImageDimensions: Dimensions{Width: width, Height: height},
	}, nil
}

func (a *Analyzer) extractRooms(ctx context.Context, imageData []byte, width, height int, hint string) ([]floorplan.Room, error) {
	if a.vision == nil || !a.vision.Configured() {
		logger.Warn(module, "vision unavailable; returning empty room analysis")
		return nil, nil
	}
	rooms, err := a.vision.ExtractRooms(ctx, imageData, width, height, hint)
	if err != nil {
		a.metrics.VisionErrors.Add(1)
		return nil, fmt.Errorf("extract rooms: %w", err)
	}
	return rooms, nil
}

func (a *Analyzer) fetchOverlay(ctx context.Context, imageData []byte) image.Image {
	if a.raster == nil || !a.raster.Configured() {
		a.metrics.OverlayMisses.Add(1)
		return nil
	}
	overlay, err := a.raster.Vectorize(ctx, imageData)
	if err != nil {
		a.metrics.RasterErrors.Add(1)
		a.metrics.OverlayMisses.Add(1)
		logger.Warn(module, "vector overlay unavailable: %v", err)
		return nil
	}
	return overlay
}

// deriveButtons turns the annotated plan into button positions. Label
// detection prefers the vision collaborator, falls back to local OCR,
// and finally leaves the layout pipeline to estimate positions from
// room metadata.
func (a *Analyzer) deriveButtons(ctx context.Context, annotatedPNG []byte, annotated image.Image, rooms []floorplan.Room, width, height int) []layout.Button {
	if len(rooms) == 0 {
		return nil
	}
	detections := a.detectLabels(ctx, annotatedPNG, annotated, rooms, width, height)
	return layout.DeriveButtons(rooms, detections, width, height)
}

func (a *Analyzer) detectLabels(ctx context.Context, annotatedPNG []byte, annotated image.Image, rooms []floorplan.Room, width, height int) []layout.LabelDetection {
	eligible := layout.FilterRooms(rooms, layout.DefaultFilterOptions())
	names := make([]string, 0, len(eligible))
	for _, room := range eligible {
		names = append(names, room.Name)
	}

	if a.vision != nil && a.vision.Configured() {
		detections, err := a.vision.DetectLabels(ctx, annotatedPNG, width, height, names)
		if err == nil {
			return detections
		}
		a.metrics.VisionErrors.Add(1)
		logger.Warn(module, "vision label detection failed: %v", err)
	}

	a.metrics.LabelFallbacks.Add(1)
	if ocrAvailable() {
		detections, err := ocrDetectLabels(annotated)
		if err != nil {
			logger.Warn(module, "ocr label detection failed: %v", err)
			return nil
		}
		return detections
	}
	return nil
}
