package mathx

import "math"

// DefaultSamples is the table resolution: one sample per degree.
const DefaultSamples = 360

const twoPi = 2 * math.Pi

// TrigTable holds precomputed sin/cos values over one full cycle.
type TrigTable struct {
	sin []float64
	cos []float64
	n   int
}

// NewTrigTable builds a table with n samples covering [0, 2π).
func NewTrigTable(n int) *TrigTable {
	if n < 4 {
		n = DefaultSamples
	}
	t := &TrigTable{
		sin: make([]float64, n),
		cos: make([]float64, n),
		n:   n,
	}
	for i := 0; i < n; i++ {
		angle := float64(i) * twoPi / float64(n)
		t.sin[i] = math.Sin(angle)
		t.cos[i] = math.Cos(angle)
	}
	return t
}

// DefaultTrigTable is shared read-only by all patterns.
var DefaultTrigTable = NewTrigTable(DefaultSamples)

// Samples returns the table resolution.
func (t *TrigTable) Samples() int { return t.n }

// index maps an angle to the lower sample and the fraction towards the next one.
func (t *TrigTable) index(x float64) (i0, i1 int, frac float64) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, 0, 0
	}
	x = math.Mod(x, twoPi)
	if x < 0 {
		x += twoPi
	}

	idx := x * float64(t.n) / twoPi
	i := int(idx)
	frac = idx - float64(i)

	i0 = i % t.n
	i1 = (i + 1) % t.n
	return i0, i1, frac
}

// Sin returns an interpolated sine of x (radians).
func (t *TrigTable) Sin(x float64) float64 {
	i0, i1, frac := t.index(x)
	return t.sin[i0]*(1-frac) + t.sin[i1]*frac
}

// Cos returns an interpolated cosine of x (radians).
func (t *TrigTable) Cos(x float64) float64 {
	i0, i1, frac := t.index(x)
	return t.cos[i0]*(1-frac) + t.cos[i1]*frac
}

// SinCos returns both values from a single index computation.
func (t *TrigTable) SinCos(x float64) (sin, cos float64) {
	i0, i1, frac := t.index(x)
	sin = t.sin[i0]*(1-frac) + t.sin[i1]*frac
	cos = t.cos[i0]*(1-frac) + t.cos[i1]*frac
	return
}
