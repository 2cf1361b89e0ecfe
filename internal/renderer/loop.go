package renderer

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/san-kum/prism/internal/logging"
	"github.com/san-kum/prism/internal/terminal"
	"golang.org/x/time/rate"
)

// Screen is the terminal the frame loop runs on. *terminal.Terminal
// satisfies it.
type Screen interface {
	Open() error
	Restore() error
	Guard()
	Size() terminal.Size
	Resizes() <-chan terminal.Size
	Poll(timeout time.Duration) ([]terminal.Key, error)
	Writer() io.Writer
}

// MaxFlushRetries is how many consecutive failed frames Run tolerates.
const MaxFlushRetries = 3

var pollLog = &rate.Sometimes{First: 1, Interval: 5 * time.Second}

// Post queues an event for the frame loop. It is safe to call from any
// goroutine and reports false when the queue is full.
func (r *Renderer) Post(ev Event) bool {
	select {
	case r.events <- ev:
		return true
	default:
		return false
	}
}

// Run opens s, renders content until a quit key, ctx cancellation or a
// persistent flush failure, and always restores the terminal. A failure to
// restore is joined to the returned error.
func (r *Renderer) Run(ctx context.Context, s Screen, content *Content) (err error) {
	if err := s.Open(); err != nil {
		return err
	}
	defer func() {
		r.Stop()
		if rerr := s.Restore(); rerr != nil {
			err = errors.Join(err, rerr)
		}
	}()
	defer s.Guard()

	r.SetOutput(s.Writer())
	size := s.Size()
	if err := r.Start(size.Width, size.Height); err != nil {
		return err
	}

	budget := time.Second / time.Duration(r.cfg.FPS)
	timer := time.NewTimer(budget)
	defer timer.Stop()

	last := time.Now()
	failures := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		r.drain(s)
		if r.state == Terminating {
			return nil
		}

		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now

		if ferr := r.RenderFrame(content, dt); ferr != nil {
			if !errors.Is(ferr, ErrNotRunning) {
				failures++
			}
			logging.Logger().Warn("frame failed", "err", ferr, "attempt", failures)
			if failures >= MaxFlushRetries || errors.Is(ferr, ErrNotRunning) {
				return ferr
			}
		} else {
			failures = 0
		}

		wait := budget - time.Since(now)
		if wait <= 0 {
			continue
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(wait)
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
	}
}

// drain applies pending resizes, keys and posted events without blocking.
func (r *Renderer) drain(s Screen) {
	for {
		select {
		case sz := <-s.Resizes():
			if err := r.Handle(Resize{Width: sz.Width, Height: sz.Height}); err != nil {
				logging.Logger().Warn("resize failed", "err", err)
			}
			continue
		case ev := <-r.events:
			r.handleLogged(ev)
			continue
		default:
		}
		break
	}

	keys, err := s.Poll(0)
	if err != nil {
		pollLog.Do(func() { logging.Logger().Warn("input poll failed", "err", err) })
	}
	for _, k := range keys {
		if ev, ok := r.keys.Event(k); ok {
			r.handleLogged(ev)
		}
	}
}

func (r *Renderer) handleLogged(ev Event) {
	if err := r.Handle(ev); err != nil {
		logging.Logger().Warn("event failed", "event", ev, "err", err)
	}
}
