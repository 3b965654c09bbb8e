package app

import (
	"context"
	"sync/atomic"
	"time"
)

// Loop calls a frame function until it is stopped.
type Loop struct {
	interval time.Duration
	stopped  atomic.Bool
}

// NewLoop creates a loop that runs a frame every interval. A zero interval
// runs frames back to back, leaving pacing to the frame itself.
func NewLoop(interval time.Duration) *Loop {
	return &Loop{interval: interval}
}

// Stop ends the loop after the current frame. It is safe to call from any
// goroutine, including from inside the frame.
func (l *Loop) Stop() { l.stopped.Store(true) }

func (l *Loop) Stopped() bool { return l.stopped.Load() }

// Run calls frame until Stop is called, ctx is done or frame returns an error.
func (l *Loop) Run(ctx context.Context, frame func(now time.Time) error) error {
	var ticks <-chan time.Time
	if l.interval > 0 {
		ticker := time.NewTicker(l.interval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	for !l.stopped.Load() {
		if err := ctx.Err(); err != nil {
			return err
		}
		now := time.Now()
		if ticks != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case now = <-ticks:
			}
		}
		if err := frame(now); err != nil {
			return err
		}
	}
	return nil
}
