package audio

import (
	"testing"

	"github.com/lixenwraith/space-invasion/event"
)

// TestSoundManagerGracefulDegradation verifies audio operations don't panic when not initialized
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager(nil)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()

	sm.Play(SoundFire)
	sm.StartUfo()
	sm.StopUfo()
	sm.Suspend(true)
	sm.HandleEvents([]event.Event{{Type: event.EventInvadersStepped}, {Type: event.EventUfoSpawned}})
	sm.Cleanup()

	if sm.mixer.Len() != 0 {
		t.Errorf("Expected empty mixer, got %d streamers", sm.mixer.Len())
	}
}

// TestSoundManagerDisabled verifies a disabled config never opens the speaker
func TestSoundManagerDisabled(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.Enabled = false
	sm := NewSoundManager(cfg)

	if err := sm.Initialize(); err != nil {
		t.Fatalf("Disabled audio should not fail: %v", err)
	}
	if sm.initialized {
		t.Error("Disabled audio should stay uninitialized")
	}
}

// TestSoundManagerInitialization verifies sound manager can be initialized and cleaned up
func TestSoundManagerInitialization(t *testing.T) {
	sm := NewSoundManager(nil)

	// Speaker initialization may fail in CI/test environments without audio devices
	if err := sm.Initialize(); err != nil {
		t.Logf("Sound initialization failed (expected in test environment): %v", err)
		return
	}

	// Second initialization is a no-op
	if err := sm.Initialize(); err != nil {
		t.Errorf("Second initialization should succeed as no-op, got error: %v", err)
	}
	sm.Cleanup()
}

// TestHandleEventsQueuesEffects verifies events reach the mixer
func TestHandleEventsQueuesEffects(t *testing.T) {
	sm := NewSoundManager(nil)
	sm.activate()

	sm.HandleEvents([]event.Event{
		{Type: event.EventInvadersStepped, Value: 2},
		{Type: event.EventMissileFired},
		{Type: event.EventLevelStarted},
	})
	if got := sm.mixer.Len(); got != 2 {
		t.Errorf("Expected 2 queued effects, got %d", got)
	}
}

// TestUfoLoopLifecycle verifies the warble starts once and stops on every Ufo exit
func TestUfoLoopLifecycle(t *testing.T) {
	exits := []event.EventType{event.EventUfoDestroyed, event.EventUfoEscaped, event.EventGameOver}
	for _, exit := range exits {
		sm := NewSoundManager(nil)
		sm.activate()

		sm.HandleEvents([]event.Event{{Type: event.EventUfoSpawned}, {Type: event.EventUfoSpawned}})
		if sm.ufoStreamer == nil {
			t.Fatalf("%s: expected warble running", exit)
		}
		if sm.mixer.Len() != 1 {
			t.Errorf("%s: expected one warble, got %d streamers", exit, sm.mixer.Len())
		}

		loop := sm.ufoStreamer
		sm.HandleEvents([]event.Event{{Type: exit}})
		if sm.ufoStreamer != nil {
			t.Errorf("%s: expected warble stopped", exit)
		}
		if !loop.Paused || loop.Streamer != nil {
			t.Errorf("%s: expected stopped loop to drain", exit)
		}
	}
}

// TestSuspendMutesEffects verifies paused play adds nothing and holds the warble
func TestSuspendMutesEffects(t *testing.T) {
	sm := NewSoundManager(nil)
	sm.activate()
	sm.StartUfo()

	sm.Suspend(true)
	sm.Play(SoundFire)
	if sm.mixer.Len() != 1 {
		t.Errorf("Expected only the warble, got %d streamers", sm.mixer.Len())
	}
	if !sm.ufoStreamer.Paused {
		t.Error("Expected warble paused")
	}

	sm.Suspend(false)
	if sm.ufoStreamer.Paused {
		t.Error("Expected warble resumed")
	}
}

// TestSoundFor verifies event to effect mapping
func TestSoundFor(t *testing.T) {
	tests := []struct {
		ev   event.Event
		want SoundType
		ok   bool
	}{
		{event.Event{Type: event.EventInvadersStepped, Value: 0}, SoundMarch0, true},
		{event.Event{Type: event.EventInvadersStepped, Value: 3}, SoundMarch3, true},
		{event.Event{Type: event.EventInvadersStepped, Value: 5}, SoundMarch1, true},
		{event.Event{Type: event.EventMissileFired}, SoundFire, true},
		{event.Event{Type: event.EventInvaderDestroyed}, SoundInvaderKilled, true},
		{event.Event{Type: event.EventShipDestroyed}, SoundShipExplosion, true},
		{event.Event{Type: event.EventUfoDestroyed}, SoundUfoHit, true},
		{event.Event{Type: event.EventBombDropped}, 0, false},
	}
	for _, tt := range tests {
		got, ok := soundFor(tt.ev)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("%s value %d: got %s/%v, want %s/%v", tt.ev.Type, tt.ev.Value, got, ok, tt.want, tt.ok)
		}
	}
}
