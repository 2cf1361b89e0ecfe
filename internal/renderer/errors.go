package renderer

import (
	"errors"
	"fmt"
)

// Lifecycle errors.
var (
	// ErrNotRunning is returned by operations that need a Running or Paused renderer.
	ErrNotRunning = errors.New("renderer: not running")

	// ErrInvalidState indicates a transition the state machine does not allow.
	ErrInvalidState = errors.New("renderer: invalid state transition")

	// ErrInvalidSize indicates a width or height below 1.
	ErrInvalidSize = errors.New("renderer: invalid size")
)

// RenderError reports a failed frame. The buffer keeps its dirty cells so
// the same diff can be retried.
type RenderError struct {
	Frame uint64
	Op    string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("renderer: frame %d: %s: %v", e.Frame, e.Op, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
