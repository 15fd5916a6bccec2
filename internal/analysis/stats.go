package analysis

import (
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pixmorph/internal/morph"
)

// Histogram counts samples into bins equal-width brightness buckets over
// [0, 255].
func Histogram(samples []morph.Sample, bins int) []float64 {
	if bins <= 0 {
		return nil
	}
	h := make([]float64, bins)
	for _, s := range samples {
		i := int(s.Brightness / 256 * float64(bins))
		if i >= bins {
			i = bins - 1
		}
		if i < 0 {
			i = 0
		}
		h[i]++
	}
	return h
}

// TravelStats describes how far points move between start and end.
type TravelStats struct {
	Count      int
	Mean       float64
	Max        float64
	Stationary int
}

func Travel(points []morph.Point) TravelStats {
	st := TravelStats{Count: len(points)}
	if len(points) == 0 {
		return st
	}
	sum := 0.0
	for _, p := range points {
		d := math.Hypot(float64(p.EndX-p.StartX), float64(p.EndY-p.StartY))
		sum += d
		if d > st.Max {
			st.Max = d
		}
		if d == 0 {
			st.Stationary++
		}
	}
	st.Mean = sum / float64(len(points))
	return st
}

// EaseCurve samples the eased progress at n evenly spaced points in [0, 1].
func EaseCurve(n int) []float64 {
	if n < 2 {
		return []float64{morph.Ease(0)}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = morph.Ease(float64(i) / float64(n-1))
	}
	return out
}

func PlotHistogram(hist []float64, caption string) string {
	if len(hist) == 0 {
		return ""
	}
	return asciigraph.Plot(hist,
		asciigraph.Height(10),
		asciigraph.Width(64),
		asciigraph.Caption(caption),
	)
}

func PlotCurve(values []float64, width, height int, caption string) string {
	if len(values) == 0 {
		return ""
	}
	return asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
