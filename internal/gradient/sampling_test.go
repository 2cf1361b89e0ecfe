package gradient_test

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/prism/internal/gradient"
)

var (
	red   = colorful.Color{R: 1}
	green = colorful.Color{G: 1}
	blue  = colorful.Color{B: 1}
)

func threeStops() []gradient.Stop {
	return []gradient.Stop{
		{Color: red},
		{Color: green},
		{Color: blue},
	}
}

func closeTo(c colorful.Color) OmegaMatcher {
	return SatisfyAll(
		WithTransform(func(x colorful.Color) float64 { return x.R }, BeNumerically("~", c.R, 1e-9)),
		WithTransform(func(x colorful.Color) float64 { return x.G }, BeNumerically("~", c.G, 1e-9)),
		WithTransform(func(x colorful.Color) float64 { return x.B }, BeNumerically("~", c.B, 1e-9)),
	)
}

var _ = Describe("Gradient", func() {
	Describe("endpoints with no repeat", func() {
		var entries []TableEntry
		for _, d := range []gradient.Distribution{gradient.Even, gradient.Front, gradient.Back, gradient.Center, gradient.Alt} {
			for _, e := range []gradient.Easing{gradient.Linear, gradient.Smooth, gradient.Smoother, gradient.Sine, gradient.Exp, gradient.Elastic} {
				entries = append(entries, Entry(fmt.Sprintf("%s/%s", d, e), d, e))
			}
		}

		DescribeTable("returns the first and last stop colors",
			func(d gradient.Distribution, e gradient.Easing) {
				g, err := gradient.Compile(gradient.Spec{Stops: threeStops(), Dist: d, Ease: e})
				Expect(err).NotTo(HaveOccurred())

				for _, elapsed := range []float64{0, 1.5, 100} {
					Expect(g.ColorAt(0, elapsed)).To(Equal(red))
					Expect(g.ColorAt(1, elapsed)).To(Equal(blue))
					Expect(g.ColorAt(-3, elapsed)).To(Equal(red))
					Expect(g.ColorAt(7, elapsed)).To(Equal(blue))
				}
			},
			entries,
		)
	})

	It("blends red and blue linearly at the midpoint", func() {
		g := gradient.MustCompile(gradient.Spec{
			Stops: []gradient.Stop{gradient.Stop{Color: red}.At(0), gradient.Stop{Color: blue}.At(1)},
		})
		Expect(g.ColorAt(0.5, 0)).To(Equal(colorful.Color{R: 0.5, G: 0, B: 0.5}))
	})

	DescribeTable("mirror is symmetric around 1",
		func(elapsed float64) {
			g := gradient.MustCompile(gradient.Spec{
				Stops:  threeStops(),
				Repeat: gradient.Repeat{Mode: gradient.Mirror},
				Ease:   gradient.Smooth,
			})
			for i := 0; i <= 200; i++ {
				t := float64(i) / 100
				Expect(g.ColorAt(t, elapsed)).To(closeTo(g.ColorAt(2-t, elapsed)), "t=%f", t)
			}
		},
		Entry("at rest", 0.0),
		Entry("while animating", 12.25),
	)

	It("tiles with repeat", func() {
		g := gradient.MustCompile(gradient.Spec{
			Stops:  threeStops(),
			Repeat: gradient.Repeat{Mode: gradient.Tile},
		})
		Expect(g.ColorAt(1.25, 0)).To(closeTo(g.ColorAt(0.25, 0)))
		Expect(g.ColorAt(-0.75, 0)).To(closeTo(g.ColorAt(0.25, 0)))
		Expect(g.ColorAt(1, 0)).To(Equal(blue))
	})

	It("rotates with elapsed time and speed", func() {
		g := gradient.MustCompile(gradient.Spec{
			Stops:  threeStops(),
			Repeat: gradient.Repeat{Mode: gradient.Rotate, Rate: 0.5},
			Speed:  2,
		})
		Expect(g.ColorAt(0.1, 0.25)).To(closeTo(g.ColorAt(0.35, 0)))
	})

	It("pulses around the sampled position", func() {
		g := gradient.MustCompile(gradient.Spec{
			Stops:  threeStops(),
			Repeat: gradient.Repeat{Mode: gradient.Pulse, Rate: 1},
		})
		Expect(g.ColorAt(0.3, 0)).To(closeTo(g.ColorAt(0.3, 2)))
		Expect(g.ColorAt(0.3, 0.5)).NotTo(closeTo(g.ColorAt(0.3, 0)))
	})

	It("is deterministic for equal inputs", func() {
		g := gradient.MustCompile(gradient.Spec{
			Stops:  threeStops(),
			Repeat: gradient.Repeat{Mode: gradient.Pulse, Rate: 3},
			Ease:   gradient.Elastic,
		})
		for i := 0; i < 50; i++ {
			t, e := float64(i)*0.037, float64(i)*0.71
			Expect(g.ColorAt(t, e)).To(Equal(g.ColorAt(t, e)))
		}
	})

	It("picks the first stop when positions coincide", func() {
		g := gradient.MustCompile(gradient.Spec{
			Stops: []gradient.Stop{
				gradient.Stop{Color: red}.At(0),
				gradient.Stop{Color: green}.At(0.5),
				gradient.Stop{Color: blue}.At(0.5),
				gradient.Stop{Color: red}.At(1),
			},
		})
		Expect(g.ColorAt(0.5, 0)).To(Equal(green))
		Expect(g.ColorAt(0.5000001, 0).B).To(BeNumerically(">", 0.99))
	})

	It("never returns non-finite channels", func() {
		g := gradient.MustCompile(gradient.Spec{Stops: threeStops(), Ease: gradient.Elastic})
		for _, t := range []float64{0.01, 0.2, 0.49, 0.77} {
			c := g.ColorAt(t, 0)
			Expect(c.IsValid()).To(BeTrue(), "t=%f gave %v", t, c)
		}
	})

	Describe("Compile", func() {
		It("rejects a single stop", func() {
			_, err := gradient.Compile(gradient.Spec{Stops: []gradient.Stop{{Color: red}}})
			Expect(err).To(MatchError(gradient.ErrTooFewStops))
		})

		It("reports the offending stop for bad channels", func() {
			_, err := gradient.Compile(gradient.Spec{Stops: []gradient.Stop{
				{Color: red},
				{Color: colorful.Color{R: 1.5}},
			}})
			var se *gradient.StopError
			Expect(errors.As(err, &se)).To(BeTrue())
			Expect(se.Index).To(Equal(1))
			Expect(err).To(MatchError(gradient.ErrInvalidChannel))
		})

		It("rejects positions outside [0,1]", func() {
			_, err := gradient.Compile(gradient.Spec{Stops: []gradient.Stop{
				gradient.Stop{Color: red}.At(-0.1),
				{Color: blue},
			}})
			Expect(err).To(MatchError(gradient.ErrInvalidPosition))
		})

		It("falls back to speed 1", func() {
			g := gradient.MustCompile(gradient.Spec{Stops: threeStops(), Speed: -4})
			Expect(g.Speed()).To(Equal(1.0))
		})
	})
})
