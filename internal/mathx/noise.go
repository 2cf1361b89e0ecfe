package mathx

import "math"

// Noise is a seeded 2D gradient noise source.
// The permutation is doubled so lookups never need to wrap.
type Noise struct {
	perm [512]uint8
	seed uint32
}

// NewNoise builds the permutation for seed with a Fisher-Yates shuffle
// driven by the LCG x' = x*48271 + 1 (mod 2^32).
func NewNoise(seed uint32) *Noise {
	n := &Noise{seed: seed}
	var p [256]uint8
	for i := range p {
		p[i] = uint8(i)
	}
	rng := seed
	for i := 255; i > 0; i-- {
		rng = rng*48271 + 1
		j := int(rng % uint32(i+1))
		p[i], p[j] = p[j], p[i]
	}
	for i := 0; i < 512; i++ {
		n.perm[i] = p[i&255]
	}
	return n
}

func (n *Noise) Seed() uint32 { return n.seed }

// Hash returns the permutation value for an integer lattice point.
func (n *Noise) Hash(x, y int) uint8 {
	return n.perm[int(n.perm[x&255])+(y&255)]
}

// Hash01 is Hash scaled to [0,1].
func (n *Noise) Hash01(x, y int) float64 {
	return float64(n.Hash(x, y)) / 255
}

func gradDot(h uint8, dx, dy float64) float64 {
	switch h & 3 {
	case 0:
		return dx + dy
	case 1:
		return -dx + dy
	case 2:
		return dx - dy
	default:
		return -dx - dy
	}
}

// Noise2D returns gradient noise in roughly [-1,1].
func (n *Noise) Noise2D(x, y float64) float64 {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return 0
	}
	fx, fy := math.Floor(x), math.Floor(y)
	x0, y0 := int(fx), int(fy)
	dx, dy := x-fx, y-fy

	sx, sy := Smoothstep(dx), Smoothstep(dy)

	n00 := gradDot(n.Hash(x0, y0), dx, dy)
	n10 := gradDot(n.Hash(x0+1, y0), dx-1, dy)
	n01 := gradDot(n.Hash(x0, y0+1), dx, dy-1)
	n11 := gradDot(n.Hash(x0+1, y0+1), dx-1, dy-1)

	nx0 := Lerp(n00, n10, sx)
	nx1 := Lerp(n01, n11, sx)
	return Lerp(nx0, nx1, sy)
}

// Fbm sums octaves of Noise2D and rescales the result to [0,1].
func (n *Noise) Fbm(x, y float64, octaves int, persistence float64) float64 {
	if octaves < 1 {
		octaves = 1
	}
	total, amp, freq, maxAmp := 0.0, 1.0, 1.0, 0.0
	for i := 0; i < octaves; i++ {
		total += n.Noise2D(x*freq, y*freq) * amp
		maxAmp += amp
		amp *= persistence
		freq *= 2
	}
	if maxAmp == 0 {
		return 0.5
	}
	return Clamp01((total/maxAmp + 1) * 0.5)
}
