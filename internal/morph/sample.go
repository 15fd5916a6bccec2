package morph

import (
	"image"
	"image/color"
)

// Luma is the ITU-R BT.601 weighted brightness of an RGB triple.
func Luma(r, g, b uint8) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}

// SampleImage returns one Sample per pixel of img in row-major order.
// Coordinates are relative to the image origin.
func SampleImage(img image.Image) []Sample {
	b := img.Bounds()
	out := make([]Sample, 0, b.Dx()*b.Dy())

	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			off := nrgba.PixOffset(b.Min.X, b.Min.Y+y)
			for x := 0; x < b.Dx(); x++ {
				i := off + x*4
				out = append(out, newSample(x, y, nrgba.Pix[i], nrgba.Pix[i+1], nrgba.Pix[i+2]))
			}
		}
		return out
	}

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			out = append(out, newSample(x, y, c.R, c.G, c.B))
		}
	}
	return out
}

func newSample(x, y int, r, g, b uint8) Sample {
	return Sample{X: x, Y: y, R: r, G: g, B: b, Brightness: Luma(r, g, b)}
}
