package input

import "github.com/gdamore/tcell/v2"

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, Enter)
	SpecialKeys map[tcell.Key]IntentType

	// Printable rune bindings
	Runes map[rune]IntentType
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]IntentType{
			tcell.KeyCtrlC:  IntentQuit,
			tcell.KeyCtrlQ:  IntentQuit,
			tcell.KeyEscape: IntentPause,
			tcell.KeyLeft:   IntentMoveLeft,
			tcell.KeyRight:  IntentMoveRight,
			tcell.KeyUp:     IntentFire,
			tcell.KeyEnter:  IntentRestart,
			tcell.KeyCtrlS:  IntentToggleMute,
			tcell.KeyCtrlD:  IntentToggleDebug,
		},
		Runes: map[rune]IntentType{
			'h': IntentMoveLeft,
			'a': IntentMoveLeft,
			'l': IntentMoveRight,
			'd': IntentMoveRight,
			' ': IntentFire,
			'k': IntentFire,
			'p': IntentPause,
			'q': IntentQuit,
			'm': IntentToggleMute,
		},
	}
}

// Lookup resolves a key event, unbound keys map to IntentNone
func (t *KeyTable) Lookup(ev *tcell.EventKey) IntentType {
	if ev.Key() == tcell.KeyRune {
		return t.Runes[ev.Rune()]
	}
	return t.SpecialKeys[ev.Key()]
}
