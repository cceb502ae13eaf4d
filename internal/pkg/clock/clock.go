package clock

import "time"

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func NewRealClock() Clock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock returns a settable time for deterministic tests.
type FixedClock struct {
	currentTime time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{currentTime: t}
}

func (c *FixedClock) Now() time.Time {
	return c.currentTime
}

func (c *FixedClock) Advance(d time.Duration) {
	c.currentTime = c.currentTime.Add(d)
}
