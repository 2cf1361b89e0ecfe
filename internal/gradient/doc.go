// Package gradient compiles color stops plus distribution, repeat and
// easing policies into a pure sampling function.
//
// A compiled Gradient is immutable and safe to share between goroutines.
// ColorAt never fails: positions outside [0,1] are folded by the repeat
// policy and anything left over is clamped.
package gradient
