// Package renderer drives the frame loop: it advances the pattern clock,
// resolves every visible cell through the active gradient into the frame
// buffer and flushes the diff to the terminal at a paced rate.
package renderer
