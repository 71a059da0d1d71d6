package session

import "time"

// Clock measures elapsed session time with pause support. Elapsed time
// is accumulated monotonically across pause boundaries, so paused
// wall-clock time never counts against in-flight timers.
type Clock struct {
	now         func() time.Time
	resumedAt   time.Time
	accumulated time.Duration
	paused      bool
}

// NewClock returns a running clock starting at zero.
func NewClock() *Clock {
	c := &Clock{now: time.Now}
	c.resumedAt = c.now()
	return c
}

// Now returns the session time: total unpaused duration since start.
func (c *Clock) Now() time.Duration {
	if c.paused {
		return c.accumulated
	}
	return c.accumulated + c.now().Sub(c.resumedAt)
}

// Pause freezes session time. Pausing twice is a no-op.
func (c *Clock) Pause() {
	if c.paused {
		return
	}
	c.accumulated += c.now().Sub(c.resumedAt)
	c.paused = true
}

// Resume continues session time after a pause.
func (c *Clock) Resume() {
	if !c.paused {
		return
	}
	c.resumedAt = c.now()
	c.paused = false
}

// Paused reports whether the clock is paused.
func (c *Clock) Paused() bool {
	return c.paused
}
