package mathx

import (
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ParallelFor splits [0, n) into contiguous chunks of at least minChunk and
// runs fn on each chunk. Chunks never overlap, so fn may write to the rows it
// owns without locking. workers <= 0 uses GOMAXPROCS.
//
// A panic in fn is re-raised on the calling goroutine once every chunk has
// finished, so deferred recovery in the caller still runs.
func ParallelFor(n, minChunk, workers int, fn func(start, end int)) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if minChunk < 1 {
		minChunk = 1
	}
	if n <= minChunk || workers <= 1 {
		fn(0, n)
		return
	}
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var (
		g         errgroup.Group
		panicOnce sync.Once
		panicked  *WorkerPanic
	)
	g.SetLimit(workers)
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					panicOnce.Do(func() {
						panicked = &WorkerPanic{Start: start, End: end, Value: r}
					})
				}
			}()
			fn(start, end)
			return nil
		})
	}
	_ = g.Wait()
	if panicked != nil {
		panic(panicked)
	}
}

// WorkerPanic carries a panic raised by one ParallelFor chunk.
type WorkerPanic struct {
	Start, End int
	Value      any
}

func (p *WorkerPanic) Error() string {
	return fmt.Sprintf("mathx: worker panic in rows [%d,%d): %v", p.Start, p.End, p.Value)
}
