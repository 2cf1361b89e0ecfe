package mathx

import "testing"

func TestNoiseSameSeedSameField(t *testing.T) {
	a := NewNoise(42)
	b := NewNoise(42)

	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			fx, fy := float64(x)*0.37, float64(y)*0.53
			if a.Noise2D(fx, fy) != b.Noise2D(fx, fy) {
				t.Fatalf("noise differs at (%f, %f)", fx, fy)
			}
		}
	}
}

func TestNoiseSeedsDiffer(t *testing.T) {
	a := NewNoise(1)
	b := NewNoise(2)

	same := true
	for i := 0; i < 50; i++ {
		x := float64(i) * 0.71
		if a.Noise2D(x, x*0.3) != b.Noise2D(x, x*0.3) {
			same = false
			break
		}
	}
	if same {
		t.Error("expected different seeds to produce different fields")
	}
}

func TestPermutationIsBijection(t *testing.T) {
	n := NewNoise(7)
	seen := make(map[uint8]bool)
	for i := 0; i < 256; i++ {
		seen[n.perm[i]] = true
	}
	if len(seen) != 256 {
		t.Errorf("expected 256 distinct entries, got %d", len(seen))
	}
	for i := 0; i < 256; i++ {
		if n.perm[i] != n.perm[i+256] {
			t.Fatalf("expected doubled table at %d", i)
		}
	}
}

func TestNoiseZeroAtLattice(t *testing.T) {
	n := NewNoise(3)
	for i := -5; i < 5; i++ {
		if v := n.Noise2D(float64(i), float64(i*2)); v != 0 {
			t.Errorf("expected 0 at lattice point %d, got %f", i, v)
		}
	}
}

func TestFbmRange(t *testing.T) {
	n := NewNoise(11)
	for y := 0; y < 30; y++ {
		for x := 0; x < 30; x++ {
			v := n.Fbm(float64(x)*0.21, float64(y)*0.17, 6, 0.5)
			if v < 0 || v > 1 {
				t.Fatalf("fbm out of range at (%d,%d): %f", x, y, v)
			}
		}
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, 0},
		{0.25, 0.25},
		{3, 1},
	}
	for _, tt := range tests {
		if got := Clamp01(tt.in); got != tt.want {
			t.Errorf("Clamp01(%f): expected %f, got %f", tt.in, tt.want, got)
		}
	}
}

func TestFract(t *testing.T) {
	if got := Fract(-0.25); got != 0.75 {
		t.Errorf("expected 0.75, got %f", got)
	}
	if got := Fract(2.5); got != 0.5 {
		t.Errorf("expected 0.5, got %f", got)
	}
}
