package input

// IntentType discriminates what a key asks for
type IntentType uint8

const (
	IntentNone IntentType = iota

	// Controls, folded into held state
	IntentMoveLeft
	IntentMoveRight
	IntentFire

	// System-level intents, handed to the driver
	IntentQuit
	IntentPause
	IntentRestart
	IntentToggleMute
	IntentToggleDebug
)

var intentNames = [...]string{
	IntentNone:        "none",
	IntentMoveLeft:    "move_left",
	IntentMoveRight:   "move_right",
	IntentFire:        "fire",
	IntentQuit:        "quit",
	IntentPause:       "pause",
	IntentRestart:     "restart",
	IntentToggleMute:  "toggle_mute",
	IntentToggleDebug: "toggle_debug",
}

func (i IntentType) String() string {
	if int(i) < len(intentNames) {
		return intentNames[i]
	}
	return "unknown"
}

// IsControl reports whether the intent drives the ship
func (i IntentType) IsControl() bool {
	return i >= IntentMoveLeft && i <= IntentFire
}
