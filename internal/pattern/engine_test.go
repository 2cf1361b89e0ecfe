package pattern

import (
	"math"
	"testing"

	"github.com/san-kum/prism/internal/mathx"
)

func TestClockThirtyTicks(t *testing.T) {
	e := NewEngine(nil, Options{Speed: 1})
	for i := 0; i < 30; i++ {
		e.Update(1.0 / 30.0)
	}
	if math.Abs(e.Time()-1.0) > 1e-9 {
		t.Errorf("expected time 1.0, got %.12f", e.Time())
	}
}

func TestClockPausedAndSpeed(t *testing.T) {
	e := NewEngine(nil, Options{Speed: 2})
	e.Update(0.5)
	if e.Time() != 1.0 {
		t.Errorf("expected time 1.0 at speed 2, got %f", e.Time())
	}

	e.SetPaused(true)
	e.Update(10)
	if e.Time() != 1.0 {
		t.Errorf("expected paused clock to hold, got %f", e.Time())
	}

	e.SetPaused(false)
	e.Update(math.NaN())
	e.Update(-1)
	if e.Time() != 1.0 {
		t.Errorf("expected invalid dt to be ignored, got %f", e.Time())
	}

	e.SetSpeed(0)
	if e.Clock().Speed != 2 {
		t.Errorf("expected non-positive speed to be ignored, got %f", e.Clock().Speed)
	}

	e.Reset()
	if e.Time() != 0 {
		t.Errorf("expected reset clock, got %f", e.Time())
	}
}

func TestValueAtInRangeForAllPatterns(t *testing.T) {
	times := []float64{0, 0.37, 1, 12.5, 300}

	for _, info := range List() {
		t.Run(info.ID, func(t *testing.T) {
			e := NewEngine(Defaults(info.Kind), Options{Seed: 9, CorrectAspect: true})
			e.Resize(40, 20)
			for _, tm := range times {
				e.SetTime(tm)
				s := e.Sampler()
				for y := 0; y < 20; y++ {
					for x := 0; x < 40; x++ {
						v := s.ValueAt(x, y)
						if math.IsNaN(v) || v < 0 || v > 1 {
							t.Fatalf("value %f out of range at (%d,%d) t=%f", v, x, y, tm)
						}
					}
				}
			}
		})
	}
}

func TestValueAtInRangeAtParamBounds(t *testing.T) {
	for _, info := range List() {
		for _, bound := range []string{"min", "max"} {
			t.Run(info.ID+"/"+bound, func(t *testing.T) {
				p := Defaults(info.Kind)
				for _, f := range Fields(info.Kind) {
					v := f.Min
					if bound == "max" {
						v = f.Max
					}
					var err error
					if p, err = Set(p, f.Name, v); err != nil {
						t.Fatal(err)
					}
				}
				e := NewEngine(p, Options{Seed: 1})
				e.Resize(24, 12)
				e.SetTime(3.3)
				for y := 0; y < 12; y++ {
					for x := 0; x < 24; x++ {
						if v := e.ValueAt(x, y); !(v >= 0 && v <= 1) {
							t.Fatalf("value %f out of range at (%d,%d)", v, x, y)
						}
					}
				}
			})
		}
	}
}

func TestNonFiniteFallsBackToMidpoint(t *testing.T) {
	s := Sampler{
		params: &PerlinParams{Octaves: 0, Scale: 1},
		width:  10,
		height: 10,
		tb:     tables{trig: mathx.DefaultTrigTable, noise: mathx.NewNoise(1)},
	}
	if v := s.ValueAt(3, 3); v != 0.5 {
		t.Errorf("expected 0.5 fallback, got %f", v)
	}
}

func TestSameSeedSameField(t *testing.T) {
	for _, k := range []Kind{Perlin, Fire, Aurora, PixelRain} {
		t.Run(k.String(), func(t *testing.T) {
			a := NewEngine(Defaults(k), Options{Seed: 1234})
			b := NewEngine(Defaults(k), Options{Seed: 1234})
			a.Resize(30, 15)
			b.Resize(30, 15)
			a.SetTime(2.5)
			b.SetTime(2.5)
			for y := 0; y < 15; y++ {
				for x := 0; x < 30; x++ {
					if a.ValueAt(x, y) != b.ValueAt(x, y) {
						t.Fatalf("fields differ at (%d,%d)", x, y)
					}
				}
			}
		})
	}
}

func TestSetParamsCopiesInput(t *testing.T) {
	p := &DiagonalParams{Angle: 30, Frequency: 1}
	e := NewEngine(p, Options{})
	p.Angle = 90

	got := e.Params().(*DiagonalParams)
	if got.Angle != 30 {
		t.Errorf("expected engine to keep its own copy, got angle %f", got.Angle)
	}
}

func TestSetParamsClamps(t *testing.T) {
	e := NewEngine(&PlasmaParams{Complexity: 50, Scale: -1, Frequency: math.Inf(1)}, Options{})
	got := e.Params().(*PlasmaParams)

	if got.Complexity != 10 {
		t.Errorf("expected complexity 10, got %f", got.Complexity)
	}
	if got.Scale != 0.1 {
		t.Errorf("expected scale 0.1, got %f", got.Scale)
	}
	if got.Frequency != 1 {
		t.Errorf("expected non-finite frequency to reset to default 1, got %f", got.Frequency)
	}
}

func TestSamplerIsSnapshot(t *testing.T) {
	e := NewEngine(Defaults(Horizontal), Options{})
	e.Resize(10, 1)
	s := e.Sampler()
	before := s.ValueAt(3, 0)

	e.Update(0.4)
	if err := e.SetPattern(Ripple); err != nil {
		t.Fatal(err)
	}
	if after := s.ValueAt(3, 0); after != before {
		t.Errorf("expected sampler to be unaffected by engine changes, %f != %f", before, after)
	}
}

func TestHorizontalMatchesPosition(t *testing.T) {
	e := NewEngine(Defaults(Horizontal), Options{})
	e.Resize(10, 1)
	if v := e.ValueAt(5, 0); math.Abs(v-0.5) > 1e-12 {
		t.Errorf("expected 0.5 at center column, got %f", v)
	}
	e.Update(1)
	if v := e.ValueAt(5, 0); math.Abs(v-0.0) > 1e-12 {
		t.Errorf("expected wrap to 0 after one second, got %f", v)
	}
}

func TestNormalize(t *testing.T) {
	c := Normalize(0, 0, 80, 24, false, 0.5)
	if c.X != -0.5 || c.Y != -0.5 {
		t.Errorf("expected (-0.5,-0.5), got %+v", c)
	}

	c = Normalize(40, 12, 80, 24, true, 0.5)
	if c.X != 0 || c.Y != 0 {
		t.Errorf("expected center (0,0), got %+v", c)
	}

	c = Normalize(0, 0, 80, 24, true, 0.5)
	if c.X != -0.25 {
		t.Errorf("expected aspect-corrected x -0.25, got %f", c.X)
	}

	c = Normalize(0, 0, 0, 0, false, 0.5)
	if math.IsNaN(c.X) || math.IsNaN(c.Y) {
		t.Error("expected zero-sized grid to normalize without NaN")
	}
}

func BenchmarkPlasma(b *testing.B) {
	e := NewEngine(Defaults(Plasma), Options{})
	e.Resize(200, 60)
	s := e.Sampler()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.ValueAt(i%200, (i/200)%60)
	}
}

func BenchmarkFire(b *testing.B) {
	e := NewEngine(Defaults(Fire), Options{})
	e.Resize(200, 60)
	s := e.Sampler()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.ValueAt(i%200, (i/200)%60)
	}
}
