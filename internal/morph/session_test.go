package morph_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"math/rand"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	"github.com/san-kum/pixmorph/internal/morph"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func encodePNG(img image.Image) []byte {
	var buf bytes.Buffer
	Expect(png.Encode(&buf, img)).To(Succeed())
	return buf.Bytes()
}

var _ = Describe("Session", func() {
	var (
		s      *morph.Session
		params morph.Params
		black  = color.NRGBA{A: 255}
		white  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	)

	BeforeEach(func() {
		params = morph.DefaultParams()
		params.Resolution = 4
		params.CellSize = 2
		params.Step = 0.25

		logger := logrus.New()
		logger.SetOutput(io.Discard)

		var err error
		s, err = morph.NewSession(params, morph.WithRand(rand.New(rand.NewSource(1))), morph.WithLogger(logger))
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects invalid params", func() {
		params.Resolution = 0
		_, err := morph.NewSession(params)
		Expect(err).To(MatchError(morph.ErrInvalidParams))
	})

	It("walks through the status sequence", func() {
		Expect(s.Status()).To(Equal(morph.StatusWaitingTarget))

		Expect(s.LoadTarget(solid(8, 8, white))).To(Succeed())
		Expect(s.Status()).To(Equal(morph.StatusTargetReady))
		Expect(s.Phase()).To(Equal(morph.PhaseIdle))

		Expect(s.LoadSource(solid(6, 3, black))).To(Succeed())
		Expect(s.Status()).To(Equal(morph.StatusRunning))
		Expect(s.Points()).To(HaveLen(16))

		finished := false
		for i := 0; i < 4; i++ {
			finished = s.Frame()
		}
		Expect(finished).To(BeTrue())
		Expect(s.Status()).To(Equal(morph.StatusFinished))
		Expect(s.State().T).To(Equal(1.0))
	})

	It("carries source colours to target positions", func() {
		Expect(s.LoadTarget(solid(4, 4, white))).To(Succeed())
		Expect(s.LoadSource(solid(4, 4, black))).To(Succeed())
		for _, p := range s.Points() {
			Expect([]uint8{p.R, p.G, p.B}).To(Equal([]uint8{0, 0, 0}))
		}
	})

	It("does not restart on a later source load", func() {
		Expect(s.LoadTarget(solid(4, 4, white))).To(Succeed())
		Expect(s.LoadSource(solid(4, 4, black))).To(Succeed())
		first := s.Points()
		s.Frame()

		Expect(s.LoadSource(solid(4, 4, white))).To(Succeed())
		Expect(s.Status()).To(Equal(morph.StatusSourceReady))
		Expect(s.State().Tick).To(Equal(1))
		Expect(s.Points()).To(Equal(first))

		Expect(s.Replay()).To(Succeed())
		Expect(s.State().Tick).To(Equal(0))
		Expect(s.Points()[0].R).To(Equal(uint8(255)))
	})

	It("draws fresh phases on replay", func() {
		Expect(s.LoadTarget(solid(4, 4, white))).To(Succeed())
		Expect(s.LoadSource(solid(4, 4, black))).To(Succeed())
		before := s.Points()
		for !s.Frame() {
		}
		Expect(s.Replay()).To(Succeed())
		Expect(s.Status()).To(Equal(morph.StatusRunning))
		after := s.Points()
		Expect(after).To(HaveLen(len(before)))
		Expect(after[0].StartX).To(Equal(before[0].StartX))
		Expect(after[0].PhaseX).NotTo(Equal(before[0].PhaseX))
	})

	It("refuses replay while the animation runs", func() {
		Expect(s.LoadTarget(solid(4, 4, white))).To(Succeed())
		Expect(s.LoadSource(solid(4, 4, black))).To(Succeed())
		s.Frame()
		Expect(s.Replay()).To(MatchError(morph.ErrAnimating))
		Expect(s.State().Tick).To(Equal(1))

		s.Frame()
		s.Frame()
		Expect(s.Frame()).To(BeTrue())
		Expect(s.Replay()).To(Succeed())
		Expect(s.Phase()).To(Equal(morph.PhaseRunning))
	})

	It("refuses replay before both images are loaded", func() {
		Expect(s.Replay()).To(MatchError(morph.ErrNotReady))
		Expect(s.LoadTarget(solid(4, 4, white))).To(Succeed())
		Expect(s.Replay()).To(MatchError(morph.ErrNotReady))
	})

	It("keeps prior state when the source fails", func() {
		Expect(s.LoadTarget(solid(4, 4, white))).To(Succeed())
		Expect(s.LoadSource(solid(4, 4, black))).To(Succeed())
		points := s.Points()

		err := s.LoadSourceBytes([]byte("not an image"))
		var lerr *morph.LoadError
		Expect(err).To(BeAssignableToTypeOf(lerr))
		Expect(s.Status()).To(Equal(morph.StatusSourceError))
		Expect(s.Points()).To(Equal(points))
		Expect(s.SourceSamples()).To(HaveLen(16))
	})

	It("recovers from a source error when the current source is loaded again", func() {
		good := encodePNG(solid(4, 4, black))
		Expect(s.LoadTarget(solid(4, 4, white))).To(Succeed())
		Expect(s.LoadSourceBytes(good)).To(Succeed())
		Expect(s.Status()).To(Equal(morph.StatusRunning))

		Expect(s.LoadSourceBytes([]byte("junk"))).NotTo(Succeed())
		Expect(s.Status()).To(Equal(morph.StatusSourceError))

		Expect(s.LoadSourceBytes(good)).To(Succeed())
		Expect(s.Status()).To(Equal(morph.StatusRunning))

		for !s.Frame() {
		}
		Expect(s.LoadSourceBytes([]byte("junk"))).NotTo(Succeed())
		Expect(s.LoadSourceBytes(good)).To(Succeed())
		Expect(s.Status()).To(Equal(morph.StatusFinished))
	})

	It("recovers from a source error when the current file is loaded again", func() {
		dir := GinkgoT().TempDir()
		good := filepath.Join(dir, "good.png")
		bad := filepath.Join(dir, "bad.png")
		Expect(os.WriteFile(good, encodePNG(solid(4, 4, black)), 0o644)).To(Succeed())
		Expect(os.WriteFile(bad, []byte("junk"), 0o644)).To(Succeed())

		Expect(s.LoadTarget(solid(4, 4, white))).To(Succeed())
		Expect(s.LoadSourceFile(good)).To(Succeed())
		Expect(s.LoadSourceFile(bad)).NotTo(Succeed())
		Expect(s.Status()).To(Equal(morph.StatusSourceError))
		Expect(s.LoadSourceFile(good)).To(Succeed())
		Expect(s.Status()).To(Equal(morph.StatusRunning))
	})

	It("treats a target failure as terminal", func() {
		err := s.LoadTargetFile(filepath.Join(GinkgoT().TempDir(), "missing.jpg"))
		Expect(err).To(HaveOccurred())
		Expect(s.Status()).To(Equal(morph.StatusTargetError))

		Expect(s.LoadSource(solid(4, 4, black))).To(Succeed())
		Expect(s.Status()).To(Equal(morph.StatusTargetError))
		Expect(s.Phase()).To(Equal(morph.PhaseIdle))
	})

	It("loads files and skips unchanged source bytes", func() {
		dir := GinkgoT().TempDir()
		tgtPath := filepath.Join(dir, "target.png")
		srcPath := filepath.Join(dir, "source.png")
		Expect(os.WriteFile(tgtPath, encodePNG(solid(5, 5, white)), 0o644)).To(Succeed())
		Expect(os.WriteFile(srcPath, encodePNG(solid(5, 5, black)), 0o644)).To(Succeed())

		Expect(s.LoadTargetFile(tgtPath)).To(Succeed())
		Expect(s.LoadSourceFile(srcPath)).To(Succeed())
		s.Frame()
		s.Frame()
		Expect(s.State().Tick).To(Equal(2))

		Expect(s.LoadSourceFile(srcPath)).To(Succeed())
		Expect(s.Status()).To(Equal(morph.StatusRunning))

		data, err := os.ReadFile(srcPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.LoadSourceBytes(data)).To(Succeed())
		Expect(s.Status()).To(Equal(morph.StatusRunning))
	})

	It("previews the source before the first start", func() {
		Expect(s.LoadSource(solid(4, 4, color.NRGBA{R: 200, A: 255}))).To(Succeed())
		surface := morph.NewImageSurface(params.CanvasSize())
		s.Render(surface)
		Expect(surface.Img.RGBAAt(7, 7)).To(Equal(color.RGBA{R: 200, A: 255}))
	})

	It("ignores a missing surface", func() {
		Expect(s.LoadTarget(solid(4, 4, white))).To(Succeed())
		Expect(s.LoadSource(solid(4, 4, black))).To(Succeed())
		Expect(func() { s.Render(nil) }).NotTo(Panic())
	})

	It("returns to source ready when stopped", func() {
		Expect(s.LoadTarget(solid(4, 4, white))).To(Succeed())
		Expect(s.LoadSource(solid(4, 4, black))).To(Succeed())
		s.Stop()
		Expect(s.Phase()).To(Equal(morph.PhaseIdle))
		Expect(s.Status()).To(Equal(morph.StatusSourceReady))
		Expect(s.Points()).To(BeNil())
	})
})
