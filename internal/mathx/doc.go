// Package mathx provides the numeric primitives shared by every pattern.
//
// Everything here is built once and never mutated afterwards, so a single
// instance may be read concurrently by any number of row workers:
//
//   - [TrigTable]: sine/cosine lookup with linear interpolation
//   - [Noise]: seeded permutation table and 2D gradient noise
//   - [ParallelFor]: row-chunked fan-out for the per-cell compute step
//
// # Determinism
//
// [NewNoise] derives its permutation from a fixed linear congruential
// sequence, so the same seed yields the same field on every platform.
package mathx
