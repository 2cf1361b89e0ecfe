// Package pattern implements the scalar fields behind every animation.
//
// A pattern is a pure function of a normalized cell coordinate, the
// animation time and a parameter record. The set is closed: [Kind]
// enumerates every pattern and [Sampler.ValueAt] dispatches with a single
// switch.
//
// # Engine and Sampler
//
// [Engine] owns the animation clock and the active configuration. Once per
// tick the renderer takes a [Sampler], an immutable snapshot of clock time,
// params and lookup tables, and hands it to any number of row workers.
//
// # Parameters
//
// Each pattern has a typed record ([PlasmaParams], [FireParams], ...).
// Records are never mutated once handed to an engine; [Set] returns a
// modified copy. Out-of-range values are clamped, never rejected.
package pattern
