package terminal

import (
	"errors"
	"fmt"
)

var (
	ErrNotTerminal = errors.New("terminal: not a terminal")
	ErrUnsupported = errors.New("terminal: unsupported platform")
)

// StateError is a failure entering or leaving raw mode or the alternate
// screen. Op names the step.
type StateError struct {
	Op  string
	Err error
}

func (e *StateError) Error() string { return fmt.Sprintf("terminal: %s: %v", e.Op, e.Err) }
func (e *StateError) Unwrap() error { return e.Err }
