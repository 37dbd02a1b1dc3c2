package systems

import "time"

// Clock is the timing source a ParticlePool reads once per Update.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the monotonic wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// StepClock is a manually advanced clock for headless runs and tests.
type StepClock struct {
	now time.Time
}

// NewStepClock creates a clock starting at the given instant.
func NewStepClock(start time.Time) *StepClock {
	return &StepClock{now: start}
}

// Now returns the current simulated instant.
func (c *StepClock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward by d.
func (c *StepClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// PausableClock wraps a clock and stops time while paused. Time spent paused
// is never observed, so a pool resumes with a normal frame delta.
type PausableClock struct {
	base     Clock
	paused   bool
	pausedAt time.Time
	offset   time.Duration
}

// NewPausableClock wraps base.
func NewPausableClock(base Clock) *PausableClock {
	return &PausableClock{base: base}
}

// Now returns the base time minus all paused spans.
func (c *PausableClock) Now() time.Time {
	if c.paused {
		return c.pausedAt.Add(-c.offset)
	}
	return c.base.Now().Add(-c.offset)
}

// SetPaused stops or resumes the clock.
func (c *PausableClock) SetPaused(paused bool) {
	if paused == c.paused {
		return
	}
	now := c.base.Now()
	if paused {
		c.pausedAt = now
	} else {
		c.offset += now.Sub(c.pausedAt)
	}
	c.paused = paused
}

// Paused reports whether the clock is stopped.
func (c *PausableClock) Paused() bool {
	return c.paused
}
