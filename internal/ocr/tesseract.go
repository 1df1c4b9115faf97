//go:build cgo && linux

package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	"github.com/floorsight/floorplan-api/internal/layout"
)

// minLineConfidence drops text lines Tesseract itself is unsure about.
const minLineConfidence = 0.3

// upscaleBelow is the plan width under which the image is doubled
// before recognition. Label text on small plans is usually too thin
// for Tesseract to read reliably.
const upscaleBelow = 600

// Available reports whether the Tesseract runtime can be used.
func Available() bool {
	client := gosseract.NewClient()
	defer client.Close()
	return client.Version() != ""
}

// DetectLabels runs OCR over a floor plan image and returns one
// detection per recognized text line, positioned at the line's center.
//
// Line-level boxes keep multi-word labels such as "LIVING ROOM"
// together so they can match a room as a unit. Coordinates are
// reported in the original image's pixel space even when the plan was
// upscaled for recognition.
func DetectLabels(img image.Image) ([]layout.LabelDetection, error) {
	prepared, scale := prepare(img)

	var buf bytes.Buffer
	if err := png.Encode(&buf, prepared); err != nil {
		return nil, fmt.Errorf("encode ocr input: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if prefix := os.Getenv("TESSDATA_PREFIX"); prefix != "" {
		if err := client.SetTessdataPrefix(prefix); err != nil {
			return nil, fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	if err := client.SetLanguage("eng"); err != nil {
		return nil, fmt.Errorf("set ocr language: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("set ocr image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("ocr bounding boxes: %w", err)
	}

	detections := make([]layout.LabelDetection, 0, len(boxes))
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" || box.Confidence/100.0 < minLineConfidence {
			continue
		}
		detections = append(detections, layout.LabelDetection{
			RoomName: text,
			X:        (box.Box.Min.X + box.Box.Max.X) / 2 / scale,
			Y:        (box.Box.Min.Y + box.Box.Max.Y) / 2 / scale,
		})
	}
	return detections, nil
}

// prepare grayscales the plan and doubles small ones for recognition.
// It returns the prepared image and the scale factor that was applied.
func prepare(img image.Image) (image.Image, int) {
	gray := imaging.Grayscale(img)
	width := gray.Bounds().Dx()
	if width == 0 || width >= upscaleBelow {
		return gray, 1
	}
	return imaging.Resize(gray, width*2, gray.Bounds().Dy()*2, imaging.Lanczos), 2
}
