package morph_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pixmorph/internal/morph"
)

var _ = Describe("Driver", func() {
	var d *morph.Driver

	BeforeEach(func() {
		var err error
		d, err = morph.NewDriver(0.3)
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects steps outside (0, 1]", func() {
		for _, step := range []float64{0, -0.1, 1.5, math.NaN()} {
			_, err := morph.NewDriver(step)
			Expect(err).To(MatchError(morph.ErrInvalidParams))
		}
	})

	It("stays idle until reset", func() {
		Expect(d.Phase()).To(Equal(morph.PhaseIdle))
		Expect(d.Advance()).To(BeFalse())
		Expect(d.State()).To(Equal(morph.State{}))
	})

	It("reaches exactly 1 after ceil(1/step) advances", func() {
		d.Reset([]morph.Point{{}})
		Expect(d.TotalSteps()).To(Equal(4))

		prev := 0.0
		for i := 1; i <= 3; i++ {
			Expect(d.Advance()).To(BeFalse())
			Expect(d.State().T).To(BeNumerically(">", prev))
			Expect(d.State().T).To(BeNumerically("<", 1))
			prev = d.State().T
		}
		Expect(d.Advance()).To(BeTrue())
		Expect(d.State().T).To(Equal(1.0))
		Expect(d.Phase()).To(Equal(morph.PhaseComplete))
	})

	It("keeps ticking after completion without moving t", func() {
		d.Reset(nil)
		for i := 1; i <= 20; i++ {
			d.Advance()
			Expect(d.State().Tick).To(Equal(i))
			Expect(d.State().T).To(BeNumerically("<=", 1))
		}
		Expect(d.State().T).To(Equal(1.0))
		Expect(d.State().Running).To(BeFalse())
	})

	It("signals completion only once", func() {
		d.Reset(nil)
		signals := 0
		for i := 0; i < 50; i++ {
			if d.Advance() {
				signals++
			}
		}
		Expect(signals).To(Equal(1))
	})

	It("rewinds on reset and swaps the correspondence set", func() {
		first := []morph.Point{{StartX: 1}}
		second := []morph.Point{{StartX: 2}, {StartX: 3}}
		d.Reset(first)
		for i := 0; i < 10; i++ {
			d.Advance()
		}
		d.Reset(second)
		Expect(d.State()).To(Equal(morph.State{T: 0, Tick: 0, Running: true}))
		Expect(d.Points()).To(Equal(second))
	})

	It("drops its points when stopped", func() {
		d.Reset([]morph.Point{{}})
		d.Stop()
		Expect(d.Phase()).To(Equal(morph.PhaseIdle))
		Expect(d.Points()).To(BeNil())
		Expect(d.Advance()).To(BeFalse())
	})

	DescribeTable("step counts",
		func(step float64, want int) {
			drv, err := morph.NewDriver(step)
			Expect(err).NotTo(HaveOccurred())
			drv.Reset(nil)
			n := 0
			for drv.State().T < 1 {
				drv.Advance()
				n++
			}
			Expect(n).To(Equal(want))
			Expect(drv.TotalSteps()).To(Equal(want))
		},
		Entry("quarter", 0.25, 4),
		Entry("tenth", 0.1, 10),
		Entry("default", morph.DefaultStep, 1000),
		Entry("whole", 1.0, 1),
	)
})
