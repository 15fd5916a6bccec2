package morph

import (
	"image"
	"image/color"
	"image/draw"
)

// Surface is a raster target for hard-edged square cells.
type Surface interface {
	Clear(c color.RGBA)
	FillCell(x, y, size int, c color.RGBA)
}

// ImageSurface paints onto an in-memory RGBA image.
type ImageSurface struct {
	Img *image.RGBA
}

func NewImageSurface(size int) *ImageSurface {
	return &ImageSurface{Img: image.NewRGBA(image.Rect(0, 0, size, size))}
}

func (s *ImageSurface) Clear(c color.RGBA) {
	draw.Draw(s.Img, s.Img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// FillCell paints a size×size square; parts outside the image are clipped.
func (s *ImageSurface) FillCell(x, y, size int, c color.RGBA) {
	r := image.Rect(x, y, x+size, y+size).Intersect(s.Img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(s.Img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}
