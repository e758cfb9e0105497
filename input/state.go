package input

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/space-invasion/engine"
	"github.com/lixenwraith/space-invasion/parameter"
)

// KeyState turns key presses into held controls
// A control stays pressed for a hold window after its last key event,
// auto-repeat keeps extending it while the key is down
// Safe for use from the input goroutine and the update goroutine
type KeyState struct {
	mu    sync.Mutex
	table *KeyTable
	time  engine.TimeProvider

	hold     time.Duration
	fireHold time.Duration

	leftUntil  time.Time
	rightUntil time.Time
	fireUntil  time.Time
}

// NewKeyState creates a key state, nil arguments select the defaults
func NewKeyState(table *KeyTable, tp engine.TimeProvider) *KeyState {
	if table == nil {
		table = DefaultKeyTable()
	}
	if tp == nil {
		tp = engine.NewMonotonicTimeProvider()
	}
	return &KeyState{
		table:    table,
		time:     tp,
		hold:     parameter.InputHoldWindow,
		fireHold: parameter.InputFireWindow,
	}
}

// HandleKey records a key event and returns its intent
// Control intents are folded into held state, the rest are for the caller
func (k *KeyState) HandleKey(ev *tcell.EventKey) IntentType {
	intent := k.table.Lookup(ev)
	if !intent.IsControl() {
		return intent
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.time.Now()
	switch intent {
	case IntentMoveLeft:
		k.leftUntil = now.Add(k.hold)
		k.rightUntil = time.Time{}
	case IntentMoveRight:
		k.rightUntil = now.Add(k.hold)
		k.leftUntil = time.Time{}
	case IntentFire:
		k.fireUntil = now.Add(k.fireHold)
	}
	return intent
}

// Release drops every held control
func (k *KeyState) Release() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.leftUntil, k.rightUntil, k.fireUntil = time.Time{}, time.Time{}, time.Time{}
}

func (k *KeyState) held(until *time.Time) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.time.Now().Before(*until)
}

func (k *KeyState) MoveLeftPressed() bool  { return k.held(&k.leftUntil) }
func (k *KeyState) MoveRightPressed() bool { return k.held(&k.rightUntil) }
func (k *KeyState) FirePressed() bool      { return k.held(&k.fireUntil) }
