package gradient

import (
	"errors"
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestResolvePositions(t *testing.T) {
	tests := []struct {
		name  string
		stops []Stop
		want  []float64
	}{
		{
			name:  "uniform",
			stops: []Stop{RGB(0, 0, 0), RGB(0, 0, 0), RGB(0, 0, 0), RGB(0, 0, 0), RGB(0, 0, 0)},
			want:  []float64{0, 0.25, 0.5, 0.75, 1},
		},
		{
			name:  "explicit",
			stops: []Stop{RGB(0, 0, 0).At(0), RGB(0, 0, 0).At(0.2), RGB(0, 0, 0).At(1)},
			want:  []float64{0, 0.2, 1},
		},
		{
			name:  "rescaled",
			stops: []Stop{RGB(0, 0, 0).At(0.2), RGB(0, 0, 0).At(0.4), RGB(0, 0, 0).At(0.6)},
			want:  []float64{0, 0.5, 1},
		},
		{
			name:  "mixed",
			stops: []Stop{RGB(0, 0, 0), RGB(0, 0, 0).At(0.6), RGB(0, 0, 0), RGB(0, 0, 0)},
			want:  []float64{0, 0.6, 0.8, 1},
		},
		{
			name:  "decreasing",
			stops: []Stop{RGB(0, 0, 0).At(0), RGB(0, 0, 0).At(0.7), RGB(0, 0, 0).At(0.3), RGB(0, 0, 0).At(1)},
			want:  []float64{0, 0.7, 0.7, 1},
		},
		{
			name:  "collapsed",
			stops: []Stop{RGB(0, 0, 0).At(0.5), RGB(0, 0, 0).At(0.5), RGB(0, 0, 0).At(0.5)},
			want:  []float64{0, 0.5, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolvePositions(tt.stops)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d positions, got %d", len(tt.want), len(got))
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-12 {
					t.Errorf("position %d: expected %f, got %f", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestDistributionsAreMonotonic(t *testing.T) {
	for _, d := range []Distribution{Even, Front, Back, Center, Alt} {
		if math.Abs(d.remap(0)) > 1e-12 {
			t.Errorf("%s: expected remap(0)=0, got %g", d, d.remap(0))
		}
		if math.Abs(d.remap(1)-1) > 1e-12 {
			t.Errorf("%s: expected remap(1)=1, got %g", d, d.remap(1))
		}
		prev := d.remap(0)
		for i := 1; i <= 1000; i++ {
			v := d.remap(float64(i) / 1000)
			if v < prev {
				t.Fatalf("%s: not monotonic at %d", d, i)
			}
			prev = v
		}
	}
}

func TestDistributionBias(t *testing.T) {
	stops := []Stop{RGB(1, 0, 0), RGB(0, 1, 0), RGB(0, 0, 1)}

	tests := []struct {
		dist Distribution
		cmp  func(mid float64) bool
	}{
		{Even, func(m float64) bool { return m == 0.5 }},
		{Front, func(m float64) bool { return m < 0.5 }},
		{Back, func(m float64) bool { return m > 0.5 }},
		{Center, func(m float64) bool { return math.Abs(m-0.5) < 1e-12 }},
	}

	for _, tt := range tests {
		t.Run(tt.dist.String(), func(t *testing.T) {
			g, err := Compile(Spec{Stops: stops, Dist: tt.dist})
			if err != nil {
				t.Fatal(err)
			}
			if mid := g.Positions()[1]; !tt.cmp(mid) {
				t.Errorf("unexpected middle stop position %f", mid)
			}
		})
	}
}

func TestParseRepeat(t *testing.T) {
	tests := []struct {
		in      string
		want    Repeat
		wantErr error
	}{
		{"", Repeat{Mode: None}, nil},
		{"mirror", Repeat{Mode: Mirror}, nil},
		{"Repeat", Repeat{Mode: Tile}, nil},
		{"pulse", Repeat{Mode: Pulse, Rate: 1}, nil},
		{"pulse(2.5)", Repeat{Mode: Pulse, Rate: 2.5}, nil},
		{"rotate( 0.25 )", Repeat{Mode: Rotate, Rate: 0.25}, nil},
		{"mirror(2)", Repeat{}, ErrInvalidRepeatArg},
		{"rotate(x)", Repeat{}, ErrInvalidRepeatArg},
		{"rotate(1", Repeat{}, ErrInvalidRepeatArg},
		{"bounce", Repeat{}, ErrUnknownPolicy},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRepeat(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestRepeatStringRoundTrip(t *testing.T) {
	for _, r := range []Repeat{{Mode: None}, {Mode: Mirror}, {Mode: Tile}, {Mode: Pulse, Rate: 0.5}, {Mode: Rotate, Rate: 2}} {
		got, err := ParseRepeat(r.String())
		if err != nil {
			t.Fatalf("%s: %v", r, err)
		}
		if got != r {
			t.Errorf("expected %+v, got %+v", r, got)
		}
	}
}

func TestParsePolicies(t *testing.T) {
	if d, err := ParseDistribution("CENTER"); err != nil || d != Center {
		t.Errorf("expected center, got %v %v", d, err)
	}
	if _, err := ParseDistribution("middle"); !errors.Is(err, ErrUnknownPolicy) {
		t.Errorf("expected ErrUnknownPolicy, got %v", err)
	}
	if e, err := ParseEasing("elastic"); err != nil || e != Elastic {
		t.Errorf("expected elastic, got %v %v", e, err)
	}
	if _, err := ParseEasing("bounce"); !errors.Is(err, ErrUnknownPolicy) {
		t.Errorf("expected ErrUnknownPolicy, got %v", err)
	}
}

func TestEasingsStayNearUnitRange(t *testing.T) {
	for _, e := range []Easing{Linear, Smooth, Smoother, Sine, Exp, Elastic} {
		for i := 1; i < 100; i++ {
			v := e.apply(float64(i) / 100)
			if math.IsNaN(v) || v < -0.5 || v > 1.5 {
				t.Fatalf("%s: apply(%f) = %f", e, float64(i)/100, v)
			}
		}
	}
}

func TestColorAtNonFiniteInput(t *testing.T) {
	g := MustCompile(Spec{Stops: []Stop{RGB(1, 0, 0), RGB(0, 0, 1)}})
	if c := g.ColorAt(math.NaN(), math.Inf(1)); c != (colorful.Color{R: 1}) {
		t.Errorf("expected first stop for NaN input, got %v", c)
	}
}

func TestRGB8(t *testing.T) {
	g := MustCompile(Spec{Stops: []Stop{RGB(0, 0, 0), RGB(1, 1, 1)}})
	if got := g.RGB8(1, 0); got != [3]uint8{255, 255, 255} {
		t.Errorf("expected white, got %v", got)
	}
	if got := g.RGB8(0, 0); got != [3]uint8{0, 0, 0} {
		t.Errorf("expected black, got %v", got)
	}
}

func TestSample(t *testing.T) {
	g := MustCompile(Spec{Stops: []Stop{RGB(1, 0, 0), RGB(0, 0, 1)}})
	s := g.Sample(5, 0)
	if len(s) != 5 {
		t.Fatalf("expected 5 samples, got %d", len(s))
	}
	if s[0] != (colorful.Color{R: 1}) || s[4] != (colorful.Color{B: 1}) {
		t.Errorf("unexpected endpoints %v %v", s[0], s[4])
	}
	if g.Sample(0, 0) != nil {
		t.Error("expected nil for zero samples")
	}
}

func BenchmarkColorAt(b *testing.B) {
	g := MustCompile(Spec{
		Stops:  []Stop{RGB(1, 0, 0), RGB(1, 1, 0), RGB(0, 1, 0), RGB(0, 1, 1), RGB(0, 0, 1)},
		Repeat: Repeat{Mode: Rotate, Rate: 0.2},
		Ease:   Smooth,
	})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.ColorAt(float64(i%1000)/1000, 3.5)
	}
}
