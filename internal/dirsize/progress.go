package dirsize

import (
	"context"
	"sync/atomic"
	"time"
)

// ProgressFunc receives the number of children sized so far, the number of
// children in the scanned directory, and the bytes accounted for so far.
type ProgressFunc func(done, total int, bytes int64)

// progress holds the counters read by the reporter while a scan runs.
type progress struct {
	total int
	done  atomic.Int64
	bytes atomic.Int64
}

// record accounts for one finished child.
func (p *progress) record(size int64) {
	p.done.Add(1)
	p.bytes.Add(size)
}

// startProgressReporter invokes hook on each tick until ctx is done.
// The returned channel is closed once hook will no longer be called.
func startProgressReporter(ctx context.Context, p *progress, hook ProgressFunc, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})

	if hook == nil {
		close(done)

		return done
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer close(done)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(int(p.done.Load()), p.total, p.bytes.Load())
			case <-ctx.Done():
				return
			}
		}
	}()

	return done
}
