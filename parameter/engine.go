package parameter

import "time"

// Frame Timing
const (
	// NominalFrame replaces a frame delta that exceeds MaxFrameDelta
	NominalFrame = time.Second / 60

	// MaxFrameDelta is the largest delta fed to movement and cadence as-is
	MaxFrameDelta = 500 * time.Millisecond

	// FrameUpdateInterval is the terminal driver tick
	FrameUpdateInterval = 16 * time.Millisecond
)

// Event Queue
const (
	// EventQueueSize must be power of 2
	EventQueueSize  = 256
	EventBufferMask = EventQueueSize - 1
)

// Spectator
const (
	// SpectateFrameEvery broadcasts one frame every N updates
	SpectateFrameEvery = 4

	SpectateClientBuffer = 16
	SpectateWriteTimeout = time.Second
)

// Collision
const (
	// CollisionCellSize is the spatial hash cell edge of the contact detector
	CollisionCellSize = 32
)
