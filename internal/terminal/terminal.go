package terminal

import (
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/san-kum/prism/internal/logging"
)

// Size is a terminal size in cells.
type Size struct {
	Width, Height int
}

// DefaultSize is reported when the window size cannot be queried.
var DefaultSize = Size{Width: 80, Height: 24}

// Terminal is a scoped raw-mode session on a tty. Open acquires it and
// Restore releases it; both are safe to call more than once.
type Terminal struct {
	in, out *os.File

	mu     sync.Mutex
	opened bool
	state  rawState

	resizeCh chan Size
	stopCh   chan struct{}
	doneCh   chan struct{}

	// pending holds an unfinished sequence from the previous Poll.
	pending []byte
}

// maxPending bounds how much of an unfinished sequence is carried over.
const maxPending = 64

// New wraps the given input and output files. Nothing is changed on the
// terminal until Open.
func New(in, out *os.File) *Terminal {
	return &Terminal{
		in:       in,
		out:      out,
		resizeCh: make(chan Size, 1),
	}
}

// Stdio is New(os.Stdin, os.Stdout).
func Stdio() *Terminal { return New(os.Stdin, os.Stdout) }

// Writer is where frames are flushed.
func (t *Terminal) Writer() io.Writer { return t.out }

// Resizes delivers the latest window size after SIGWINCH. Only the most
// recent size is kept.
func (t *Terminal) Resizes() <-chan Size { return t.resizeCh }

// Open enters raw mode and the alternate screen, hides the cursor and
// disables auto-wrap. On failure everything already applied is undone.
func (t *Terminal) Open() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.opened {
		return nil
	}

	if err := t.makeRaw(); err != nil {
		return &StateError{Op: "enter raw mode", Err: err}
	}
	if _, err := io.WriteString(t.out, seqAltScreenEnter+seqCursorHide+seqAutoWrapOff+seqClear); err != nil {
		rerr := t.restoreRaw()
		return errors.Join(&StateError{Op: "enter alternate screen", Err: err}, rerr)
	}

	t.stopCh = make(chan struct{})
	t.doneCh = make(chan struct{})
	t.watchResize(t.stopCh, t.doneCh)

	t.opened = true
	logging.Logger().Debug("terminal opened")
	return nil
}

// Restore undoes Open. Every step is attempted even if earlier ones fail;
// failures are returned joined.
func (t *Terminal) Restore() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.opened {
		return nil
	}
	t.opened = false

	if t.stopCh != nil {
		close(t.stopCh)
		<-t.doneCh
		t.stopCh = nil
	}

	var errs []error
	if _, err := io.WriteString(t.out, seqReset+seqCursorShow+seqAltScreenExit+seqAutoWrapOn); err != nil {
		errs = append(errs, &StateError{Op: "leave alternate screen", Err: err})
	}
	if err := t.restoreRaw(); err != nil {
		errs = append(errs, err)
	}

	err := errors.Join(errs...)
	if err != nil {
		logging.Logger().Error("terminal restore failed", "err", err)
	} else {
		logging.Logger().Debug("terminal restored")
	}
	return err
}

// Guard is meant to be deferred right after Open. If the goroutine is
// panicking it restores the terminal and re-panics so the trace is printed
// on a usable screen.
func (t *Terminal) Guard() {
	if r := recover(); r != nil {
		if err := t.Restore(); err != nil {
			EmergencyReset(t.out)
		}
		panic(r)
	}
}

// Size returns the current window size, or DefaultSize when it cannot be
// determined.
func (t *Terminal) Size() Size {
	if s, ok := t.querySize(); ok {
		return s
	}
	return DefaultSize
}

// Poll waits at most timeout for input and returns the decoded keys.
// A zero timeout checks without blocking. A sequence split across reads is
// held until the rest arrives; if a poll brings nothing new, the held bytes
// are decoded as they are, so a lone ESC still reports KeyEscape.
func (t *Terminal) Poll(timeout time.Duration) ([]Key, error) {
	b, err := t.read(timeout)
	if err != nil {
		return nil, err
	}
	return t.feed(b), nil
}

func (t *Terminal) feed(b []byte) []Key {
	if len(b) == 0 {
		if len(t.pending) == 0 {
			return nil
		}
		keys := Decode(t.pending)
		t.pending = nil
		return keys
	}
	if len(t.pending) > 0 {
		b = append(t.pending, b...)
	}
	keys, rest := DecodePartial(b)
	if len(rest) > maxPending {
		rest = nil
	}
	t.pending = append([]byte(nil), rest...)
	return keys
}

func (t *Terminal) sendResize(s Size) {
	select {
	case t.resizeCh <- s:
	default:
		select {
		case <-t.resizeCh:
		default:
		}
		select {
		case t.resizeCh <- s:
		default:
		}
	}
}
