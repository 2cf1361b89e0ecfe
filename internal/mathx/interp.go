package mathx

import "math"

func Lerp(a, b, t float64) float64 { return a + t*(b-a) }

// Smoothstep is the cubic Hermite t²(3-2t) without clamping.
func Smoothstep(t float64) float64 { return t * t * (3 - 2*t) }

// Clamp01 clamps v to [0,1]. NaN maps to 0.5.
func Clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0.5
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Fract returns the positive fractional part of v.
func Fract(v float64) float64 {
	f := v - math.Floor(v)
	if f >= 1 {
		return 0
	}
	return f
}

// Finite reports whether v is neither NaN nor ±Inf.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
