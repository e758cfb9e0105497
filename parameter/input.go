package parameter

import "time"

// Input
const (
	// InputHoldWindow keeps a direction held after its last key event
	// Terminals report presses and auto-repeat, never releases
	InputHoldWindow = 180 * time.Millisecond

	// InputFireWindow keeps fire held long enough for one update to see it
	InputFireWindow = 50 * time.Millisecond
)
