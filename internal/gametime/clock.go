package gametime

import "time"

// Clock is the simulation time source. It is advanced only by the tick
// loop; every other component reads it.
type Clock struct {
	now  Time
	dt   float64
	tick uint64
}

// NewClock creates a clock at time zero with the given fixed tick duration.
func NewClock(tickDuration time.Duration) *Clock {
	return &Clock{dt: tickDuration.Seconds()}
}

// Now returns the current simulation time.
func (c *Clock) Now() Time {
	return c.now
}

// Dt returns the duration of the last tick in seconds.
func (c *Clock) Dt() float64 {
	return c.dt
}

// Tick returns how many times the clock has been advanced.
func (c *Clock) Tick() uint64 {
	return c.tick
}

// Advance moves the clock forward by one fixed tick.
func (c *Clock) Advance() {
	c.now = c.now.AddSeconds(c.dt)
	c.tick++
}

// AdvanceBy moves the clock forward by an explicit delta, which becomes the
// new Dt. Non-positive deltas are ignored.
func (c *Clock) AdvanceBy(seconds float64) {
	if seconds <= 0 {
		return
	}
	c.dt = seconds
	c.now = c.now.AddSeconds(seconds)
	c.tick++
}
