package morph

import (
	"fmt"
	"math"
)

// Phase is the lifecycle stage of a Driver.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseComplete:
		return "complete"
	default:
		return "idle"
	}
}

// State is the snapshot the Renderer reads each frame.
type State struct {
	T       float64
	Tick    int
	Running bool
}

// Driver advances progress and the wobble tick once per frame.
//
// Progress is derived from an integer step count, so t hits exactly 1 after
// StepsToComplete(step) advances with no float accumulation.
type Driver struct {
	step   float64
	total  int
	steps  int
	tick   int
	phase  Phase
	points []Point
}

// StepsToComplete is the number of advances needed for t to reach 1.
func StepsToComplete(step float64) int {
	return int(math.Ceil(1/step - 1e-9))
}

func NewDriver(step float64) (*Driver, error) {
	if step <= 0 || step > 1 || math.IsNaN(step) {
		return nil, fmt.Errorf("%w: step %g not in (0, 1]", ErrInvalidParams, step)
	}
	return &Driver{step: step, total: StepsToComplete(step)}, nil
}

// Reset replaces the correspondence set, rewinds t and tick to zero and
// enters the running phase. It is used for both the first start and replays.
func (d *Driver) Reset(points []Point) {
	d.points = points
	d.steps = 0
	d.tick = 0
	d.phase = PhaseRunning
}

// Stop returns the driver to idle and drops its correspondence set.
func (d *Driver) Stop() {
	d.points = nil
	d.steps = 0
	d.tick = 0
	d.phase = PhaseIdle
}

// Advance performs one frame of work. It reports true only on the frame in
// which progress reaches 1. The tick keeps counting after completion.
func (d *Driver) Advance() bool {
	if d.phase == PhaseIdle {
		return false
	}
	d.tick++
	if d.phase != PhaseRunning {
		return false
	}
	d.steps++
	if d.steps >= d.total {
		d.steps = d.total
		d.phase = PhaseComplete
		return true
	}
	return false
}

func (d *Driver) T() float64 {
	if d.steps >= d.total {
		return 1
	}
	return math.Min(float64(d.steps)*d.step, 1)
}

func (d *Driver) State() State {
	return State{T: d.T(), Tick: d.tick, Running: d.phase == PhaseRunning}
}

func (d *Driver) Phase() Phase   { return d.phase }
func (d *Driver) Points() []Point { return d.points }
func (d *Driver) TotalSteps() int { return d.total }
