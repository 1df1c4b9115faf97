package ocr

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// drawText renders text onto the image with the basic 7x13 face.
func drawText(img *image.RGBA, x, y int, text string, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// labelImage draws the given lines on a white canvas and scales the
// result up by pixel blocks. The basic face is too small for reliable
// recognition at its native size.
func labelImage(t *testing.T, lines []string, scale int) *image.RGBA {
	t.Helper()

	maxLen := 0
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}
	smallW := maxLen*7 + 40
	smallH := len(lines)*20 + 30

	small := image.NewRGBA(image.Rect(0, 0, smallW, smallH))
	draw.Draw(small, small.Bounds(), image.White, image.Point{}, draw.Src)
	for i, line := range lines {
		drawText(small, 20, 25+i*20, line, color.Black)
	}

	img := image.NewRGBA(image.Rect(0, 0, smallW*scale, smallH*scale))
	for y := 0; y < smallH; y++ {
		for x := 0; x < smallW; x++ {
			c := small.At(x, y)
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.Set(x*scale+dx, y*scale+dy, c)
				}
			}
		}
	}
	return img
}

// skipWithoutOCR skips the test when the error indicates Tesseract is
// not usable in this environment.
func skipWithoutOCR(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		return
	}
	if errors.Is(err, ErrUnavailable) || strings.Contains(err.Error(), "tesseract") {
		t.Skip("Tesseract not available")
	}
	t.Fatalf("DetectLabels failed: %v", err)
}

func TestDetectLabels_UnavailableStub(t *testing.T) {
	if Available() {
		t.Skip("Tesseract available; stub path not in effect")
	}

	_, err := DetectLabels(labelImage(t, []string{"KITCHEN"}, 1))
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error: got %v, want ErrUnavailable", err)
	}
}

func TestDetectLabels_RecognizesLabel(t *testing.T) {
	img := labelImage(t, []string{"KITCHEN"}, 4)

	detections, err := DetectLabels(img)
	skipWithoutOCR(t, err)

	t.Logf("detections: %+v", detections)
	for _, det := range detections {
		if !strings.Contains(strings.ToUpper(det.RoomName), "KITCHEN") {
			continue
		}
		// The label is drawn starting at (20, 25) in pre-scale
		// coordinates; its center must land inside that region.
		bounds := img.Bounds()
		if det.X < 0 || det.X > bounds.Dx() || det.Y < 0 || det.Y > bounds.Dy() {
			t.Errorf("center (%d, %d) outside image %v", det.X, det.Y, bounds)
		}
		if det.Y < 4*10 || det.Y > 4*35 {
			t.Errorf("center y: got %d, want near the drawn baseline", det.Y)
		}
		return
	}
	t.Log("Warning: label not recognized - may need larger scale or different font")
}

func TestDetectLabels_MultipleLines(t *testing.T) {
	img := labelImage(t, []string{"LIVING ROOM", "BEDROOM"}, 4)

	detections, err := DetectLabels(img)
	skipWithoutOCR(t, err)

	t.Logf("detections: %+v", detections)
	if len(detections) >= 2 && detections[0].Y >= detections[1].Y {
		// Tesseract reports lines top to bottom.
		t.Errorf("line order: first y %d, second y %d", detections[0].Y, detections[1].Y)
	}
}

func TestDetectLabels_BlankImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	detections, err := DetectLabels(img)
	skipWithoutOCR(t, err)

	if len(detections) != 0 {
		t.Errorf("detections on blank image: got %+v, want none", detections)
	}
}
