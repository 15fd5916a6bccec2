package morph

import (
	"image/color"
	"math"
)

var Background = color.RGBA{A: 255}

// Renderer maps points to cell positions for a given animation state.
// It holds no state of its own, so equal inputs give equal output.
type Renderer struct {
	Params Params
}

// Position is the point's location in working-buffer units: eased
// interpolation between start and end plus an elliptical wobble.
func (r Renderer) Position(p Point, st State) (x, y float64) {
	eased := Ease(st.T)
	baseX := Lerp(float64(p.StartX), float64(p.EndX), eased)
	baseY := Lerp(float64(p.StartY), float64(p.EndY), eased)

	wt := r.WobbleTime(st.Tick)
	wx := math.Sin(wt+p.PhaseX) * r.Params.WobbleAmplitude
	wy := math.Cos(wt+p.PhaseY) * r.Params.WobbleAmplitude
	return baseX + wx, baseY + wy
}

// WobbleTime converts a tick count to the wobble clock.
func (r Renderer) WobbleTime(tick int) float64 {
	return float64(tick) / r.Params.RefreshRate * r.Params.WobbleSpeed
}

// Cell is the pixel-aligned top-left corner of the point's cell.
func (r Renderer) Cell(p Point, st State) (int, int) {
	x, y := r.Position(p, st)
	cs := float64(r.Params.CellSize)
	return int(math.Floor(x * cs)), int(math.Floor(y * cs))
}

// Render redraws the whole frame. A nil surface is skipped.
func (r Renderer) Render(s Surface, st State, points []Point) {
	if s == nil {
		return
	}
	s.Clear(Background)
	for _, p := range points {
		x, y := r.Cell(p, st)
		s.FillCell(x, y, r.Params.CellSize, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
	}
}

// RenderSamples draws samples at their own grid positions without motion.
func (r Renderer) RenderSamples(s Surface, samples []Sample) {
	if s == nil {
		return
	}
	s.Clear(Background)
	cs := r.Params.CellSize
	for _, sm := range samples {
		s.FillCell(sm.X*cs, sm.Y*cs, cs, color.RGBA{R: sm.R, G: sm.G, B: sm.B, A: 255})
	}
}
