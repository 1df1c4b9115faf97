// Package ocr recovers room label positions from floor plan images
// with Tesseract. It serves as a local fallback for label detection
// when the vision model cannot place labels on an annotated plan.
//
// The working implementation needs CGO and a system Tesseract
// installation, so it is only compiled on Linux with CGO enabled.
// Other builds get a stub whose DetectLabels returns ErrUnavailable,
// which callers treat as "no detections, fall back further". Training
// data is resolved through the TESSDATA_PREFIX environment variable
// when set.
package ocr
