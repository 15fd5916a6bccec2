package morph

import (
	"fmt"
	"math"
)

const (
	DefaultResolution      = 200
	DefaultCellSize        = 3
	DefaultStep            = 0.001
	DefaultWobbleAmplitude = 1.2
	DefaultWobbleSpeed     = 4.0
	DefaultRefreshRate     = 60.0
)

// Sample is one grid cell of a normalized image.
type Sample struct {
	X, Y       int
	R, G, B    uint8
	Brightness float64
}

// Point is one source cell travelling to its paired target cell.
// Colour always comes from the source.
type Point struct {
	StartX, StartY int
	EndX, EndY     int
	R, G, B        uint8
	PhaseX, PhaseY float64
}

// Params holds the fixed constants of a morph run.
type Params struct {
	// Resolution is the side length of the working buffer in pixels.
	Resolution int
	// CellSize is the on-screen size of one working pixel.
	CellSize int
	// Step is the progress added per frame.
	Step float64
	// WobbleAmplitude is the maximum wobble offset in working pixels.
	WobbleAmplitude float64
	// WobbleSpeed multiplies the wobble frequency.
	WobbleSpeed float64
	// RefreshRate converts ticks into seconds for the wobble clock.
	RefreshRate float64
}

func DefaultParams() Params {
	return Params{
		Resolution:      DefaultResolution,
		CellSize:        DefaultCellSize,
		Step:            DefaultStep,
		WobbleAmplitude: DefaultWobbleAmplitude,
		WobbleSpeed:     DefaultWobbleSpeed,
		RefreshRate:     DefaultRefreshRate,
	}
}

func (p Params) Validate() error {
	switch {
	case p.Resolution <= 0:
		return fmt.Errorf("%w: resolution %d", ErrInvalidParams, p.Resolution)
	case p.CellSize <= 0:
		return fmt.Errorf("%w: cell size %d", ErrInvalidParams, p.CellSize)
	case !finite(p.Step, p.WobbleAmplitude, p.WobbleSpeed, p.RefreshRate):
		return fmt.Errorf("%w: non-finite value in %+v", ErrInvalidParams, p)
	case p.Step <= 0 || p.Step > 1:
		return fmt.Errorf("%w: step %g not in (0, 1]", ErrInvalidParams, p.Step)
	case p.WobbleAmplitude < 0:
		return fmt.Errorf("%w: wobble amplitude %g", ErrInvalidParams, p.WobbleAmplitude)
	case p.RefreshRate <= 0:
		return fmt.Errorf("%w: refresh rate %g", ErrInvalidParams, p.RefreshRate)
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// CanvasSize is the side length of the rendered surface.
func (p Params) CanvasSize() int {
	return p.Resolution * p.CellSize
}
