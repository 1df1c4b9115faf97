//go:build !cgo || !linux

package ocr

import (
	"image"

	"github.com/floorsight/floorplan-api/internal/layout"
)

// Available reports whether the Tesseract runtime can be used.
func Available() bool { return false }

// DetectLabels always returns ErrUnavailable in builds without
// Tesseract support.
func DetectLabels(image.Image) ([]layout.LabelDetection, error) {
	return nil, ErrUnavailable
}
