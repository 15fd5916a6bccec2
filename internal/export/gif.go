// Package export writes rendered frames to disk.
package export

import (
	"bufio"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"math"
	"os"

	"github.com/disintegration/imaging"
	"github.com/ericpauley/go-quantize/quantize"
)

// LoopForever makes the animation repeat indefinitely.
const LoopForever = 0

var ErrNoFrames = errors.New("export: no frames captured")

// GIFRecorder collects frames and encodes them as one animated GIF. Each
// frame gets its own median-cut palette of up to 256 colours.
type GIFRecorder struct {
	delay     int
	frames    []*image.Paletted
	quantizer draw.Quantizer
}

// NewGIFRecorder sizes the frame delay for frames captured every `every`
// ticks of a loop running at fps.
func NewGIFRecorder(fps float64, every int) *GIFRecorder {
	if every < 1 {
		every = 1
	}
	// gif delays are in hundredths of a second
	delay := int(math.Round(100 * float64(every) / fps))
	if delay < 2 {
		delay = 2
	}
	return &GIFRecorder{delay: delay, quantizer: quantize.MedianCutQuantizer{}}
}

// Capture quantizes img and appends it. Pixels are mapped to the nearest
// palette entry without dithering so cell edges stay hard.
func (r *GIFRecorder) Capture(img image.Image) {
	b := img.Bounds()
	palette := r.quantizer.Quantize(make(color.Palette, 0, 256), img)
	frame := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette)
	draw.Draw(frame, frame.Bounds(), img, b.Min, draw.Src)
	r.frames = append(r.frames, frame)
}

func (r *GIFRecorder) Len() int   { return len(r.frames) }
func (r *GIFRecorder) Delay() int { return r.delay }

func (r *GIFRecorder) Reset() { r.frames = nil }

func (r *GIFRecorder) Encode(w io.Writer) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: LoopForever}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.delay)
	}
	return gif.EncodeAll(w, &anim)
}

func (r *GIFRecorder) WriteFile(path string) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	bw := bufio.NewWriter(f)
	if err := r.Encode(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return f.Close()
}

// WritePNG saves a single frame; the format follows the file extension.
func WritePNG(path string, img image.Image) error {
	return imaging.Save(img, path)
}
