package mathx

import (
	"math"
	"testing"
)

func TestTrigTableAccuracy(t *testing.T) {
	table := NewTrigTable(DefaultSamples)

	for i := 0; i < 1000; i++ {
		x := float64(i) * 0.0137
		if got, want := table.Sin(x), math.Sin(x); math.Abs(got-want) > 1e-4 {
			t.Errorf("sin(%f): expected %f, got %f", x, want, got)
		}
		if got, want := table.Cos(x), math.Cos(x); math.Abs(got-want) > 1e-4 {
			t.Errorf("cos(%f): expected %f, got %f", x, want, got)
		}
	}
}

func TestTrigTableSamplePoints(t *testing.T) {
	table := NewTrigTable(DefaultSamples)

	for deg := 0; deg < 360; deg += 15 {
		x := float64(deg) * math.Pi / 180
		if got, want := table.Sin(x), math.Sin(x); math.Abs(got-want) > 1e-9 {
			t.Errorf("sin at %d deg: expected %f, got %f", deg, want, got)
		}
	}
}

func TestTrigTableWraps(t *testing.T) {
	table := NewTrigTable(DefaultSamples)

	tests := []struct {
		name string
		a, b float64
	}{
		{"negative", -1.0, 2*math.Pi - 1.0},
		{"multiple turns", 7 * math.Pi, math.Pi},
		{"large", 1000.25, math.Mod(1000.25, 2*math.Pi)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(table.Sin(tt.a)-table.Sin(tt.b)) > 1e-9 {
				t.Errorf("expected sin(%f) == sin(%f)", tt.a, tt.b)
			}
		})
	}
}

func TestTrigTableNonFinite(t *testing.T) {
	table := NewTrigTable(DefaultSamples)

	for _, x := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		s, c := table.SinCos(x)
		if !Finite(s) || !Finite(c) {
			t.Errorf("expected finite output for %f, got %f %f", x, s, c)
		}
	}
}

func TestSinCosMatchesSeparateCalls(t *testing.T) {
	table := NewTrigTable(DefaultSamples)
	x := 2.345
	s, c := table.SinCos(x)
	if s != table.Sin(x) || c != table.Cos(x) {
		t.Errorf("SinCos mismatch: %f %f vs %f %f", s, c, table.Sin(x), table.Cos(x))
	}
}

func BenchmarkTrigTableSin(b *testing.B) {
	table := NewTrigTable(DefaultSamples)
	sum := 0.0
	for i := 0; i < b.N; i++ {
		sum += table.Sin(float64(i) * 0.001)
	}
	_ = sum
}
