package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"strings"
	"testing"
)

// encodeTestPNG builds a small solid-color image and returns its PNG bytes.
func encodeTestPNG(t *testing.T, width, height int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	data, err := EncodePNG(img)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	return data
}

func TestDecode_PNG(t *testing.T) {
	data := encodeTestPNG(t, 4, 6, color.NRGBA{200, 10, 10, 255})

	img, format, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if format != "png" {
		t.Errorf("Format: got %s, want png", format)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 4 || bounds.Dy() != 6 {
		t.Errorf("Bounds: got %dx%d, want 4x6", bounds.Dx(), bounds.Dy())
	}
}

func TestDecode_JPEG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("jpeg encode failed: %v", err)
	}

	_, format, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("Format: got %s, want jpeg", format)
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"garbage", []byte("not an image at all")},
		{"truncated header", []byte{0x89, 0x50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Decode(tt.data); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestDecodeBase64(t *testing.T) {
	data := encodeTestPNG(t, 5, 5, color.NRGBA{0, 0, 255, 255})
	encoded := base64.StdEncoding.EncodeToString(data)

	img, format, err := DecodeBase64(encoded)
	if err != nil {
		t.Fatalf("DecodeBase64 failed: %v", err)
	}
	if format != "png" {
		t.Errorf("Format: got %s, want png", format)
	}
	if img.Bounds().Dx() != 5 {
		t.Errorf("Width: got %d, want 5", img.Bounds().Dx())
	}
}

func TestDecodeBase64_DataURI(t *testing.T) {
	data := encodeTestPNG(t, 3, 3, color.NRGBA{10, 20, 30, 255})
	encoded := "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)

	_, format, err := DecodeBase64(encoded)
	if err != nil {
		t.Fatalf("DecodeBase64 failed: %v", err)
	}
	if format != "png" {
		t.Errorf("Format: got %s, want png", format)
	}
}

func TestDecodeBase64_MissingPadding(t *testing.T) {
	data := encodeTestPNG(t, 3, 3, color.NRGBA{10, 20, 30, 255})
	encoded := strings.TrimRight(base64.StdEncoding.EncodeToString(data), "=")

	if _, _, err := DecodeBase64(encoded); err != nil {
		t.Fatalf("DecodeBase64 with stripped padding failed: %v", err)
	}
}

func TestDecodeBase64_Invalid(t *testing.T) {
	if _, _, err := DecodeBase64("!!!definitely not base64!!!"); err == nil {
		t.Error("expected error, got nil")
	}
}

func TestMediaType(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   string
	}{
		{"png", "png", "image/png"},
		{"uppercase", "PNG", "image/png"},
		{"jpeg", "jpeg", "image/jpeg"},
		{"jpg normalized", "jpg", "image/jpeg"},
		{"extension with dot", ".jpg", "image/jpeg"},
		{"gif", "gif", "image/gif"},
		{"webp", "webp", "image/webp"},
		{"empty defaults to png", "", "image/png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MediaType(tt.format); got != tt.want {
				t.Errorf("MediaType(%q): got %s, want %s", tt.format, got, tt.want)
			}
		})
	}
}

func TestInspect(t *testing.T) {
	data := encodeTestPNG(t, 12, 7, color.NRGBA{1, 2, 3, 255})

	info, err := Inspect(data)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if info.Width != 12 || info.Height != 7 {
		t.Errorf("Dimensions: got %dx%d, want 12x7", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if info.MediaType != "image/png" {
		t.Errorf("MediaType: got %s, want image/png", info.MediaType)
	}
	if !info.HasAlpha {
		t.Error("HasAlpha: got false, want true for NRGBA PNG")
	}
	if info.SizeBytes != len(data) {
		t.Errorf("SizeBytes: got %d, want %d", info.SizeBytes, len(data))
	}
}

func TestInspect_JPEGHasNoAlpha(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("jpeg encode failed: %v", err)
	}

	info, err := Inspect(buf.Bytes())
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if info.HasAlpha {
		t.Error("HasAlpha: got true, want false for JPEG")
	}
	if info.MediaType != "image/jpeg" {
		t.Errorf("MediaType: got %s, want image/jpeg", info.MediaType)
	}
}

func TestEncodePNGBase64_RoundTrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 9, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 9; x++ {
			src.Set(x, y, color.NRGBA{uint8(x * 20), uint8(y * 50), 128, 255})
		}
	}

	encoded, err := EncodePNGBase64(src)
	if err != nil {
		t.Fatalf("EncodePNGBase64 failed: %v", err)
	}
	if strings.Contains(encoded, ",") {
		t.Error("encoded output should not contain a data URI prefix")
	}

	img, format, err := DecodeBase64(encoded)
	if err != nil {
		t.Fatalf("DecodeBase64 failed: %v", err)
	}
	if format != "png" {
		t.Errorf("Format: got %s, want png", format)
	}
	if img.Bounds().Dx() != 9 || img.Bounds().Dy() != 4 {
		t.Errorf("Bounds: got %dx%d, want 9x4", img.Bounds().Dx(), img.Bounds().Dy())
	}
}
