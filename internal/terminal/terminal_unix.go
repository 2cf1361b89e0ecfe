//go:build unix

package terminal

import (
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

type rawState struct {
	old *term.State
}

func (t *Terminal) makeRaw() error {
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return ErrNotTerminal
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	t.state.old = old
	return nil
}

func (t *Terminal) restoreRaw() error {
	if t.state.old == nil {
		return nil
	}
	err := term.Restore(int(t.in.Fd()), t.state.old)
	if err != nil {
		return &StateError{Op: "restore termios", Err: err}
	}
	t.state.old = nil
	return nil
}

func (t *Terminal) querySize() (Size, bool) {
	ws, err := unix.IoctlGetWinsize(int(t.out.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return Size{}, false
	}
	return Size{Width: int(ws.Col), Height: int(ws.Row)}, true
}

func (t *Terminal) watchResize(stop <-chan struct{}, done chan<- struct{}) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)
	go func() {
		defer close(done)
		defer signal.Stop(sigCh)
		for {
			select {
			case <-stop:
				return
			case <-sigCh:
				if s, ok := t.querySize(); ok {
					t.sendResize(s)
				}
			}
		}
	}()
}

func (t *Terminal) read(timeout time.Duration) ([]byte, error) {
	fd := int(t.in.Fd())
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	ms := int(timeout / time.Millisecond)
	if ms < 0 {
		ms = 0
	}
	for {
		n, err := unix.Poll(fds, ms)
		if errors.Is(err, unix.EINTR) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if n == 0 || fds[0].Revents&unix.POLLIN == 0 {
			return nil, nil
		}
		buf := make([]byte, 256)
		rn, err := unix.Read(fd, buf)
		if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return buf[:rn], nil
	}
}
