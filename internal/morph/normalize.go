package morph

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Normalize scales img to cover an n×n frame, keeping its aspect ratio, and
// crops the overflow around the centre. Transparent areas are flattened onto
// black.
func Normalize(img image.Image, n int) (*image.NRGBA, error) {
	if n <= 0 {
		return nil, ErrInvalidParams
	}
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	filled := imaging.Fill(img, n, n, imaging.Center, imaging.Lanczos)
	bg := imaging.New(n, n, color.NRGBA{A: 255})
	return imaging.Overlay(bg, filled, image.Pt(0, 0), 1.0), nil
}
