package engine

import (
	"time"

	"github.com/lixenwraith/space-invasion/parameter"
)

// ClampDelta replaces an oversized frame delta with the nominal frame time
// A backgrounded process must not teleport the formation or storm the cadence
func ClampDelta(dt time.Duration) time.Duration {
	if dt > parameter.MaxFrameDelta {
		return parameter.NominalFrame
	}
	if dt < 0 {
		return 0
	}
	return dt
}

// FrameClock turns pausable game time into per-frame deltas
type FrameClock struct {
	clock *PausableClock
	last  time.Duration
	frame uint64
}

// NewFrameClock creates a frame clock over a pausable clock
func NewFrameClock(clock *PausableClock) *FrameClock {
	return &FrameClock{clock: clock, last: clock.Elapsed()}
}

// Tick returns the clamped game time since the previous tick, zero while paused
func (fc *FrameClock) Tick() time.Duration {
	now := fc.clock.Elapsed()
	dt := now - fc.last
	fc.last = now
	fc.frame++
	return ClampDelta(dt)
}

// Frame returns the number of ticks taken
func (fc *FrameClock) Frame() uint64 {
	return fc.frame
}

// Pause freezes game time
func (fc *FrameClock) Pause() {
	fc.clock.Pause()
}

// Resume restarts game time without producing a catch-up delta
func (fc *FrameClock) Resume() {
	fc.clock.Resume()
	fc.last = fc.clock.Elapsed()
}
