package internal

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrStopped is returned by FrameLoop once Stop has been called.
var ErrStopped = errors.New("frame loop stopped")

// FrameLoop runs frames until stopped. Frames must all be driven from a single goroutine (the
// display thread or Run), but Stop may be called from anywhere.
type FrameLoop struct {
	clock    *Clock
	stopOnce sync.Once
	done     chan struct{}
}

// NewFrameLoop builds a loop that measures frame deltas with clock.
func NewFrameLoop(clock *Clock) *FrameLoop {
	return &FrameLoop{clock: clock, done: make(chan struct{})}
}

// Frame runs a single frame with the time elapsed since the previous one.
func (l *FrameLoop) Frame(frame func(dt float64) error) error {
	select {
	case <-l.done:
		return ErrStopped
	default:
	}
	return frame(l.clock.Delta())
}

// Stop ends the loop: no frame starts after it returns. Calling it again does nothing.
func (l *FrameLoop) Stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

// Done is closed once the loop is stopped.
func (l *FrameLoop) Done() <-chan struct{} {
	return l.done
}

// Run drives frames every period until the context is done, the loop is stopped or a frame fails.
// Stopping (by either means) returns nil.
func (l *FrameLoop) Run(ctx context.Context, period time.Duration, frame func(dt float64) error) error {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	l.clock.Restart()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-l.done:
			return nil
		case <-ticker.C:
			if err := l.Frame(frame); err != nil {
				if errors.Is(err, ErrStopped) {
					return nil
				}
				return err
			}
		}
	}
}
