package annotate

import (
	"image"
	"image/color"
	"testing"
)

// solid builds a width x height image filled with one color.
func solid(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// rgbAt returns the 8-bit color at (x, y).
func rgbAt(img image.Image, x, y int) (r, g, b uint8) {
	r16, g16, b16, _ := img.At(x, y).RGBA()
	return uint8(r16 >> 8), uint8(g16 >> 8), uint8(b16 >> 8)
}

// within reports whether got is within tolerance of want.
func within(got, want uint8, tolerance int) bool {
	d := int(got) - int(want)
	if d < 0 {
		d = -d
	}
	return d <= tolerance
}

func TestCompose_NilOverlay(t *testing.T) {
	base := solid(20, 10, color.NRGBA{0, 0, 255, 255})

	out := Compose(base, nil, DefaultOverlayAlpha)
	if out.Bounds().Dx() != 20 || out.Bounds().Dy() != 10 {
		t.Fatalf("bounds: got %v", out.Bounds())
	}
	r, g, b := rgbAt(out, 5, 5)
	if r != 0 || g != 0 || b != 255 {
		t.Errorf("pixel: got (%d,%d,%d), want base blue", r, g, b)
	}
}

func TestCompose_KeysOutBackgroundAndWalls(t *testing.T) {
	base := solid(3, 1, color.NRGBA{0, 0, 255, 255})

	overlay := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	overlay.SetNRGBA(0, 0, color.NRGBA{250, 250, 250, 255}) // near-white background
	overlay.SetNRGBA(1, 0, color.NRGBA{10, 10, 10, 255})    // near-black wall line
	overlay.SetNRGBA(2, 0, color.NRGBA{200, 30, 30, 255})   // room fill

	out := Compose(base, overlay, DefaultOverlayAlpha)

	// Keyed-out pixels show the untouched base.
	for x := 0; x < 2; x++ {
		r, g, b := rgbAt(out, x, 0)
		if r != 0 || g != 0 || b != 255 {
			t.Errorf("pixel %d: got (%d,%d,%d), want base blue", x, r, g, b)
		}
	}

	// The room fill blends at alpha 140: out = fill*a + base*(1-a).
	r, g, b := rgbAt(out, 2, 0)
	if !within(r, 110, 3) || !within(g, 16, 3) || !within(b, 131, 3) {
		t.Errorf("blended pixel: got (%d,%d,%d), want about (110,16,131)", r, g, b)
	}
}

func TestCompose_ZeroAlphaHidesOverlay(t *testing.T) {
	base := solid(4, 4, color.NRGBA{0, 255, 0, 255})
	overlay := solid(4, 4, color.NRGBA{200, 30, 30, 255})

	out := Compose(base, overlay, 0)
	r, g, b := rgbAt(out, 2, 2)
	if r != 0 || g != 255 || b != 0 {
		t.Errorf("pixel: got (%d,%d,%d), want base green", r, g, b)
	}
}

func TestCompose_ResizesOverlayToBase(t *testing.T) {
	base := solid(100, 60, color.NRGBA{0, 0, 255, 255})
	overlay := solid(50, 30, color.NRGBA{200, 30, 30, 255})

	out := Compose(base, overlay, DefaultOverlayAlpha)
	if out.Bounds().Dx() != 100 || out.Bounds().Dy() != 60 {
		t.Fatalf("bounds: got %v, want 100x60", out.Bounds())
	}

	// Away from resampling edges the fill still blends over the base.
	r, _, b := rgbAt(out, 50, 30)
	if !within(r, 110, 5) || !within(b, 131, 5) {
		t.Errorf("center pixel: got r=%d b=%d, want about r=110 b=131", r, b)
	}
}

func TestCompose_SameSizeOverlayKeepsDimensions(t *testing.T) {
	base := solid(8, 8, color.NRGBA{255, 255, 255, 255})
	overlay := solid(8, 8, color.NRGBA{100, 150, 200, 255})

	out := Compose(base, overlay, DefaultOverlayAlpha)
	if out.Bounds().Dx() != 8 || out.Bounds().Dy() != 8 {
		t.Fatalf("bounds: got %v, want 8x8", out.Bounds())
	}
}
