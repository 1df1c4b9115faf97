package imaging

import (
	"fmt"
	"image"
	"sort"
)

// RGBColor represents an RGB color with 8-bit components.
//
// Each component ranges from 0 to 255, where:
//   - 0 represents no intensity (black for all components)
//   - 255 represents full intensity (white for all components)
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// ColorFrequency represents a color and its occurrence frequency in an image.
type ColorFrequency struct {
	Hex        string   `json:"hex"`        // Hex color "#RRGGBB" (quantized)
	Percentage float64  `json:"percentage"` // Percentage of pixels with this color (0-100)
	RGB        RGBColor `json:"rgb"`        // RGB components (quantized)
}

// DominantColors extracts the N most common colors from an image.
//
// Colors are sorted by frequency in descending order (most common
// first). If the image has fewer distinct colors after quantization,
// fewer results are returned. A nil image or non-positive count yields
// an empty slice.
//
// # Color Quantization
//
// To group similar colors, each RGB component is quantized by dividing
// by 16 and rounding down:
//
//	quantized = (original / 16) * 16
//
// so colors within 16 units of each other per component are counted
// together. For example, #F0F0F0 and #FAFAFA both quantize to #F0F0F0.
func DominantColors(img image.Image, count int) []ColorFrequency {
	if img == nil || count <= 0 {
		return []ColorFrequency{}
	}

	bounds := img.Bounds()
	colorCounts := make(map[string]int)
	totalPixels := 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// Quantize to reduce color space (group similar colors)
			r8 := uint8((r >> 8) / 16 * 16)
			g8 := uint8((g >> 8) / 16 * 16)
			b8 := uint8((b >> 8) / 16 * 16)
			key := fmt.Sprintf("#%02X%02X%02X", r8, g8, b8)
			colorCounts[key]++
			totalPixels++
		}
	}

	if totalPixels == 0 {
		return []ColorFrequency{}
	}

	colors := make([]ColorFrequency, 0, len(colorCounts))
	for hex, cnt := range colorCounts {
		var r, g, b uint8
		_, _ = fmt.Sscanf(hex, "#%02X%02X%02X", &r, &g, &b)

		colors = append(colors, ColorFrequency{
			Hex:        hex,
			Percentage: float64(cnt) / float64(totalPixels) * 100,
			RGB:        RGBColor{R: r, G: g, B: b},
		})
	}

	// Sort by frequency, breaking ties by hex for deterministic output.
	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Percentage != colors[j].Percentage {
			return colors[i].Percentage > colors[j].Percentage
		}
		return colors[i].Hex < colors[j].Hex
	})

	if len(colors) > count {
		colors = colors[:count]
	}

	return colors
}

// PaletteHex returns the hex codes of the N most common colors in an
// image, most common first.
func PaletteHex(img image.Image, count int) []string {
	colors := DominantColors(img, count)
	palette := make([]string, 0, len(colors))
	for _, c := range colors {
		palette = append(palette, c.Hex)
	}
	return palette
}
