package shared

import "time"

// Clock stamps profile updates, export documents and price snapshots
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to Clock
type ClockFunc func() time.Time

// Now calls f
func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock reports wall time in UTC
var SystemClock Clock = ClockFunc(func() time.Time {
	return time.Now().UTC()
})

// ClockOrSystem returns clock, or SystemClock when clock is nil
func ClockOrSystem(clock Clock) Clock {
	if clock == nil {
		return SystemClock
	}
	return clock
}

// FixedClock always reports the same instant
type FixedClock struct {
	At time.Time
}

// NewFixedClock creates a clock frozen at t
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{At: t}
}

// Now returns the frozen instant
func (c *FixedClock) Now() time.Time {
	return c.At
}
