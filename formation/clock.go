package formation

import "time"

// Clock paces formation steps
// The step interval is Unit times the live invader count, so the formation
// speeds up as invaders die. After a step fires the target time becomes the
// new reference, so frame jitter never accumulates into drift.
type Clock struct {
	Unit time.Duration

	last    time.Duration // reference time of the previous step
	elapsed time.Duration // time accumulated since last
}

func NewClock(unit time.Duration) *Clock {
	return &Clock{Unit: unit}
}

// Advance accumulates dt and reports whether the next step is due
// The interval uses the current live count, a kill between steps shortens the very next one
func (c *Clock) Advance(dt time.Duration, live int) bool {
	c.elapsed += dt
	next := c.last + c.Unit*time.Duration(live)
	current := c.last + c.elapsed
	if current < next {
		return false
	}

	c.last = next
	c.elapsed = current - c.last
	return true
}

// Reset rewinds the cadence to a fresh level start
func (c *Clock) Reset() {
	c.last = 0
	c.elapsed = 0
}

// State returns the reference time and the accumulator
func (c *Clock) State() (last, elapsed time.Duration) {
	return c.last, c.elapsed
}

// Restore replaces the reference time and the accumulator
func (c *Clock) Restore(last, elapsed time.Duration) {
	c.last = last
	c.elapsed = elapsed
}
