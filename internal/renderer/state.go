package renderer

import "fmt"

// State is the lifecycle state of a Renderer.
type State uint8

const (
	Uninitialized State = iota
	Running
	Paused
	Terminating
)

var stateNames = [...]string{"uninitialized", "running", "paused", "terminating"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", s)
}

// Active reports whether frames may be rendered in s.
func (s State) Active() bool { return s == Running || s == Paused }

// transition returns the state reached from s by moving to next, or false
// when the move is not allowed. Terminating is reachable from every state
// and is final.
func (s State) transition(next State) (State, bool) {
	switch {
	case s == Terminating:
		return s, next == Terminating
	case next == Terminating:
		return next, true
	case s == Uninitialized:
		return next, next == Running
	case next == Running || next == Paused:
		return next, s.Active()
	}
	return s, false
}
