package morph

import (
	"image"
	"math/rand"
	"time"

	"github.com/san-kum/pixmorph/internal/imageio"
	"github.com/sirupsen/logrus"
)

// Status is the short human-readable state shown next to the surface.
type Status string

const (
	StatusWaitingTarget Status = "waiting for target"
	StatusTargetReady   Status = "target ready, waiting for source"
	StatusSourceReady   Status = "source ready"
	StatusRunning       Status = "running"
	StatusFinished      Status = "finished"
	StatusTargetError   Status = "error: target image could not be loaded"
	StatusSourceError   Status = "error: source image could not be loaded"
)

// Session ties the loaded images to a Driver and a Renderer. It starts the
// animation automatically the first time both images are present; later
// starts need an explicit Replay.
type Session struct {
	params   Params
	renderer Renderer
	driver   *Driver
	rng      *rand.Rand
	log      logrus.FieldLogger

	target     []Sample
	source     []Sample
	sourceHash uint64
	hasHash    bool

	status        Status
	targetErr     error
	started       bool
	sourceChanged bool
}

// Option configures a Session.
type Option func(*Session)

// WithRand injects the generator used for wobble phases.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithSeed seeds the wobble phase generator.
func WithSeed(seed int64) Option {
	return func(s *Session) { s.rng = rand.New(rand.NewSource(seed)) }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Session) { s.log = l }
}

func NewSession(p Params, opts ...Option) (*Session, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	d, err := NewDriver(p.Step)
	if err != nil {
		return nil, err
	}
	s := &Session{
		params:   p,
		renderer: Renderer{Params: p},
		driver:   d,
		status:   StatusWaitingTarget,
		log:      logrus.StandardLogger(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s, nil
}

// LoadTarget normalizes and samples the target portrait. A failure leaves
// the session in the terminal target error status.
func (s *Session) LoadTarget(img image.Image) error {
	samples, err := s.prepare(img)
	if err != nil {
		lerr := &LoadError{Role: "target", Wrapped: err}
		s.FailTarget(lerr)
		return lerr
	}
	s.target = samples
	s.targetErr = nil
	s.log.WithField("cells", len(samples)).Info("target loaded")
	if s.source == nil {
		s.status = StatusTargetReady
	} else {
		s.status = StatusSourceReady
	}
	return s.autoStart()
}

func (s *Session) LoadTargetFile(path string) error {
	in, err := imageio.Load(path)
	if err != nil {
		lerr := &LoadError{Role: "target", Path: path, Wrapped: err}
		s.FailTarget(lerr)
		return lerr
	}
	return s.LoadTarget(in.Img)
}

// FailTarget records a target load failure reported by the host.
func (s *Session) FailTarget(err error) {
	s.targetErr = err
	s.target = nil
	s.status = StatusTargetError
	s.log.WithError(err).Error("target failed to load")
}

// LoadSource normalizes and samples a user image. On failure the previous
// source and animation are left untouched.
func (s *Session) LoadSource(img image.Image) error {
	samples, err := s.prepare(img)
	if err != nil {
		return s.FailSource(&LoadError{Role: "source", Wrapped: err})
	}
	s.source = samples
	s.hasHash = false
	s.sourceLoaded()
	return s.autoStart()
}

// LoadSourceBytes decodes data as the source image. Bytes identical to the
// current source are ignored.
func (s *Session) LoadSourceBytes(data []byte) error {
	h := imageio.ContentHash(data)
	if s.hasHash && h == s.sourceHash && s.source != nil {
		s.log.WithField("hash", imageio.HashString(h, 8)).Debug("source unchanged")
		s.sourceUnchanged()
		return nil
	}
	in, err := imageio.DecodeBytes(data)
	if err != nil {
		return s.FailSource(&LoadError{Role: "source", Wrapped: err})
	}
	samples, err := s.prepare(in.Img)
	if err != nil {
		return s.FailSource(&LoadError{Role: "source", Wrapped: err})
	}
	s.source = samples
	s.sourceHash, s.hasHash = h, true
	s.sourceLoaded()
	return s.autoStart()
}

func (s *Session) LoadSourceFile(path string) error {
	in, err := imageio.Load(path)
	if err != nil {
		return s.FailSource(&LoadError{Role: "source", Path: path, Wrapped: err})
	}
	if s.hasHash && in.Hash == s.sourceHash && s.source != nil {
		s.log.WithField("path", path).Debug("source unchanged")
		s.sourceUnchanged()
		return nil
	}
	samples, err := s.prepare(in.Img)
	if err != nil {
		return s.FailSource(&LoadError{Role: "source", Path: path, Wrapped: err})
	}
	s.source = samples
	s.sourceHash, s.hasHash = in.Hash, true
	s.sourceLoaded()
	return s.autoStart()
}

func (s *Session) sourceLoaded() {
	s.log.WithField("cells", len(s.source)).Info("source loaded")
	if s.started {
		s.sourceChanged = true
	}
	if s.targetErr == nil {
		s.status = StatusSourceReady
	}
}

// sourceUnchanged clears a source error left by a failed load once the
// current source is offered again.
func (s *Session) sourceUnchanged() {
	if s.status == StatusSourceError {
		s.status = s.settledStatus()
	}
}

// settledStatus is the status implied by the driver and the loaded images.
func (s *Session) settledStatus() Status {
	switch {
	case s.targetErr != nil:
		return StatusTargetError
	case s.sourceChanged:
		return StatusSourceReady
	case s.driver.Phase() == PhaseRunning:
		return StatusRunning
	case s.driver.Phase() == PhaseComplete:
		return StatusFinished
	case s.Ready():
		return StatusSourceReady
	case s.target != nil:
		return StatusTargetReady
	}
	return StatusWaitingTarget
}

// FailSource records a source load failure. The previous source and animation
// are kept.
func (s *Session) FailSource(err error) error {
	if s.targetErr == nil {
		s.status = StatusSourceError
	}
	s.log.WithError(err).Warn("source failed to load")
	return err
}

func (s *Session) prepare(img image.Image) ([]Sample, error) {
	n, err := Normalize(img, s.params.Resolution)
	if err != nil {
		return nil, err
	}
	return SampleImage(n), nil
}

func (s *Session) autoStart() error {
	if s.started || !s.Ready() {
		return nil
	}
	return s.Replay()
}

// Ready reports whether both images are loaded.
func (s *Session) Ready() bool {
	return s.targetErr == nil && s.target != nil && s.source != nil
}

// Replay rebuilds the correspondence set with fresh phases and restarts the
// driver from t=0. While an animation runs it is refused unless the source
// was replaced since that animation started.
func (s *Session) Replay() error {
	if !s.Ready() {
		return ErrNotReady
	}
	if s.driver.Phase() == PhaseRunning && !s.sourceChanged {
		return ErrAnimating
	}
	points, err := BuildCorrespondence(s.source, s.target, s.rng)
	if err != nil {
		return err
	}
	s.driver.Reset(points)
	s.started = true
	s.sourceChanged = false
	s.status = StatusRunning
	s.log.WithFields(logrus.Fields{
		"points": len(points),
		"frames": s.driver.TotalSteps(),
	}).Info("animation started")
	return nil
}

// Frame advances the animation by one frame and reports whether it
// finished on this frame.
func (s *Session) Frame() bool {
	if !s.driver.Advance() {
		return false
	}
	s.status = StatusFinished
	s.log.WithField("tick", s.driver.State().Tick).Info("animation finished")
	return true
}

// Render draws the current frame. Before the first start the normalized
// source is shown in place. A nil surface is a no-op.
func (s *Session) Render(surface Surface) {
	if surface == nil {
		return
	}
	if points := s.driver.Points(); points != nil {
		s.renderer.Render(surface, s.driver.State(), points)
		return
	}
	if s.source != nil {
		s.renderer.RenderSamples(surface, s.source)
		return
	}
	surface.Clear(Background)
}

// Stop halts the animation and discards the correspondence set.
func (s *Session) Stop() {
	s.driver.Stop()
	s.started = false
	s.sourceChanged = false
	if s.Ready() {
		s.status = StatusSourceReady
	}
}

func (s *Session) Status() Status          { return s.status }
func (s *Session) State() State            { return s.driver.State() }
func (s *Session) Phase() Phase            { return s.driver.Phase() }
func (s *Session) Points() []Point         { return s.driver.Points() }
func (s *Session) Params() Params          { return s.params }
func (s *Session) TargetSamples() []Sample { return s.target }
func (s *Session) SourceSamples() []Sample { return s.source }
func (s *Session) TotalFrames() int        { return s.driver.TotalSteps() }
