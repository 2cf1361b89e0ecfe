//go:build !unix

package terminal

import "time"

type rawState struct{}

func (t *Terminal) makeRaw() error                                         { return ErrUnsupported }
func (t *Terminal) restoreRaw() error                                      { return nil }
func (t *Terminal) querySize() (Size, bool)                                { return Size{}, false }
func (t *Terminal) watchResize(stop <-chan struct{}, done chan<- struct{}) { close(done) }
func (t *Terminal) read(time.Duration) ([]byte, error)                     { return nil, ErrUnsupported }
