package gradient

import (
	"errors"
	"fmt"
)

// Validation errors for gradient construction.
var (
	// ErrTooFewStops indicates a gradient with fewer than two stops.
	ErrTooFewStops = errors.New("gradient: at least 2 color stops required")

	// ErrInvalidChannel indicates a red, green or blue value outside [0,1].
	ErrInvalidChannel = errors.New("gradient: color channel outside [0,1]")

	// ErrInvalidPosition indicates an explicit stop position outside [0,1].
	ErrInvalidPosition = errors.New("gradient: stop position outside [0,1]")

	// ErrUnknownPolicy indicates an unrecognised distribution, repeat or easing name.
	ErrUnknownPolicy = errors.New("gradient: unknown policy")

	// ErrInvalidRepeatArg indicates a malformed rate, or a rate on a mode that takes none.
	ErrInvalidRepeatArg = errors.New("gradient: invalid repeat rate")
)

// StopError reports which stop failed validation.
type StopError struct {
	Index int
	Err   error
}

func (e *StopError) Error() string {
	return fmt.Sprintf("stop %d: %v", e.Index, e.Err)
}

func (e *StopError) Unwrap() error { return e.Err }
