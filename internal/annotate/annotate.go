// Package annotate composites the vectorized room overlay onto the
// original floor plan to produce the annotated output image.
package annotate

import (
	"image"

	"github.com/anthonynsimon/bild/blend"
	"github.com/disintegration/imaging"
)

// DefaultOverlayAlpha is the opacity applied to overlay room fills.
const DefaultOverlayAlpha = 140

// Compose draws the room overlay onto the base floor plan.
//
// The overlay is resized to the base dimensions when they differ
// (Lanczos). Near-white overlay pixels (background) and near-black
// ones (wall lines) become fully transparent; every other pixel gets
// the given alpha so the room fills show through as translucent tints.
// The keyed overlay is then alpha-composited over the base.
//
// A nil overlay returns a copy of the base unchanged, so callers can
// feed the result straight to encoding regardless of whether
// vectorization succeeded.
func Compose(base image.Image, overlay image.Image, alpha uint8) image.Image {
	if overlay == nil {
		return imaging.Clone(base)
	}

	bounds := base.Bounds()
	var keyed *image.NRGBA
	if overlay.Bounds().Dx() != bounds.Dx() || overlay.Bounds().Dy() != bounds.Dy() {
		keyed = imaging.Resize(overlay, bounds.Dx(), bounds.Dy(), imaging.Lanczos)
	} else {
		keyed = imaging.Clone(overlay)
	}
	applyTransparency(keyed, alpha)

	return blend.Normal(base, keyed)
}

// applyTransparency rewrites the overlay's alpha channel in place:
// background and wall-line pixels are keyed out, everything else is
// set to the overlay opacity.
func applyTransparency(img *image.NRGBA, alpha uint8) {
	width := img.Bounds().Dx()
	height := img.Bounds().Dy()

	for y := 0; y < height; y++ {
		i := y * img.Stride
		for x := 0; x < width; x++ {
			r, g, b := img.Pix[i], img.Pix[i+1], img.Pix[i+2]
			switch {
			case r > 240 && g > 240 && b > 240:
				img.Pix[i+3] = 0
			case r < 50 && g < 50 && b < 50:
				img.Pix[i+3] = 0
			default:
				img.Pix[i+3] = alpha
			}
			i += 4
		}
	}
}
