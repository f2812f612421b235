package internal

import (
	"math"
	"time"
)

// Clock measures the time elapsed between consecutive Delta calls.
type Clock struct {
	now      func() time.Time
	last     time.Time
	maxDelta float64 // seconds, 0 disables the cap
}

// NewClock starts a clock on the given time source (time.Now if nil). maxDelta caps every
// returned delta (in seconds) when positive, hiding long pauses such as a minimized window.
func NewClock(now func() time.Time, maxDelta float64) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now, last: now(), maxDelta: maxDelta}
}

// Delta returns the seconds elapsed since the previous call (or since construction).
// The result is never negative nor NaN.
func (c *Clock) Delta() float64 {
	t := c.now()
	dt := t.Sub(c.last).Seconds()
	c.last = t
	if dt < 0 || math.IsNaN(dt) {
		return 0
	}
	if c.maxDelta > 0 && dt > c.maxDelta {
		return c.maxDelta
	}
	return dt
}

// Restart forgets the time spent since the previous call.
func (c *Clock) Restart() {
	c.last = c.now()
}
