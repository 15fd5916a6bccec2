package morph

import (
	"cmp"
	"fmt"
	"math"
	"math/rand"
	"slices"
	"time"
)

// BuildCorrespondence pairs src and tgt by brightness rank. Both inputs are
// copied and stably sorted ascending; the i-th darkest source cell travels to
// the i-th darkest target cell. Each pair gets independent wobble phases in
// [0, 2π) drawn from rng. A nil rng is seeded from the clock.
//
// Sets of different length are a caller defect and yield ErrLengthMismatch.
func BuildCorrespondence(src, tgt []Sample, rng *rand.Rand) ([]Point, error) {
	if len(src) != len(tgt) {
		return nil, fmt.Errorf("%w: source %d, target %d", ErrLengthMismatch, len(src), len(tgt))
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	srcSorted := sortedByBrightness(src)
	tgtSorted := sortedByBrightness(tgt)

	points := make([]Point, len(srcSorted))
	for i := range srcSorted {
		sp, tp := srcSorted[i], tgtSorted[i]
		points[i] = Point{
			StartX: sp.X,
			StartY: sp.Y,
			EndX:   tp.X,
			EndY:   tp.Y,
			R:      sp.R,
			G:      sp.G,
			B:      sp.B,
			PhaseX: rng.Float64() * 2 * math.Pi,
			PhaseY: rng.Float64() * 2 * math.Pi,
		}
	}
	return points, nil
}

func sortedByBrightness(s []Sample) []Sample {
	c := slices.Clone(s)
	slices.SortStableFunc(c, func(a, b Sample) int {
		return cmp.Compare(a.Brightness, b.Brightness)
	})
	return c
}
