package pattern

import "errors"

var (
	// ErrUnknownPattern indicates a pattern id outside the closed set.
	ErrUnknownPattern = errors.New("pattern: unknown pattern")

	// ErrUnknownParam indicates a parameter name the pattern does not have.
	ErrUnknownParam = errors.New("pattern: unknown parameter")

	// ErrKindMismatch indicates params belonging to a different pattern.
	ErrKindMismatch = errors.New("pattern: params do not match pattern")
)
