package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	"image/png"
	"strings"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Decode parses raw image bytes into an image.Image.
//
// Supported formats are PNG, JPEG, GIF, WebP, and BMP. The returned
// format string is the decoder name ("png", "jpeg", "gif", "webp",
// "bmp") as reported by the registered decoder, not the file extension.
//
// Returns an error if the bytes are empty or not a valid image in any
// registered format.
func Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty image data")
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	return img, format, nil
}

// DecodeBase64 decodes a base64-encoded image string.
//
// The input may carry a data URI prefix ("data:image/png;base64,...");
// everything up to and including the first comma is stripped. Missing
// base64 padding is tolerated and repaired before decoding, since some
// upstream services return unpadded payloads.
func DecodeBase64(encoded string) (image.Image, string, error) {
	if _, after, found := strings.Cut(encoded, ","); found {
		encoded = after
	}
	encoded = strings.TrimSpace(encoded)

	if pad := len(encoded) % 4; pad != 0 {
		encoded += strings.Repeat("=", 4-pad)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode base64 image: %w", err)
	}

	return Decode(data)
}

// ImageInfo contains metadata about a decoded image.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the detected image format: "png", "jpeg", "gif",
	// "webp", or "bmp". Detection is based on the image contents,
	// not a file extension.
	Format string `json:"format"`

	// MediaType is the MIME type for the detected format,
	// e.g. "image/png".
	MediaType string `json:"media_type"`

	// HasAlpha indicates whether the image has an alpha (transparency) channel.
	HasAlpha bool `json:"has_alpha"`

	// SizeBytes is the size of the encoded image in bytes.
	SizeBytes int `json:"size_bytes"`
}

// Inspect decodes image bytes and returns metadata about them.
//
// The decoded pixels are discarded; only dimensions, format, alpha
// presence, and encoded size are reported.
func Inspect(data []byte) (*ImageInfo, error) {
	img, format, err := Decode(data)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()

	hasAlpha := false
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
	}

	return &ImageInfo{
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		Format:    format,
		MediaType: MediaType(format),
		HasAlpha:  hasAlpha,
		SizeBytes: len(data),
	}, nil
}

// MediaType maps an image format name or file extension to its MIME type.
//
// The input is lowercased and any leading dot is stripped, so "PNG",
// "png", and ".png" all map to "image/png". "jpg" is normalized to
// "image/jpeg". An empty input defaults to "image/png".
func MediaType(format string) string {
	f := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
	if f == "" {
		f = "png"
	}
	if f == "jpg" {
		f = "jpeg"
	}
	return "image/" + f
}

// EncodePNG encodes an image to PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodePNGBase64 encodes an image to PNG and returns it as a standard
// base64 string without a data URI prefix.
func EncodePNGBase64(img image.Image) (string, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
