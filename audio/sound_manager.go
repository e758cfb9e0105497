package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/space-invasion/event"
	"github.com/lixenwraith/space-invasion/parameter"
)

// SoundManager plays simulation events through a beep mixer
// All methods are safe to call before Initialize and after Cleanup
type SoundManager struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	mixer       *beep.Mixer
	ufoStreamer *beep.Ctrl
	suspended   bool
	initialized bool
}

// NewSoundManager creates a sound manager, nil selects the default mix
func NewSoundManager(cfg *AudioConfig) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	return &SoundManager{
		cfg:   cfg,
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker, a disabled config stays silent
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.activate()
	return nil
}

// activate accepts sounds into the mixer
func (sm *SoundManager) activate() {
	sm.initialized = true
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	if sm.ufoStreamer != nil {
		sm.ufoStreamer.Paused = true
		sm.ufoStreamer = nil
	}
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Play starts a one-shot effect
func (sm *SoundManager) Play(st SoundType) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.play(st)
}

func (sm *SoundManager) play(st SoundType) {
	if !sm.initialized || sm.suspended {
		return
	}
	if s := GetSoundEffect(st, sm.cfg); s != nil {
		sm.add(s)
	}
}

// add hands a streamer to the mixer, under the speaker lock once the speaker runs
func (sm *SoundManager) add(s beep.Streamer) {
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// StartUfo begins the looping Ufo warble, no-op while it plays
func (sm *SoundManager) StartUfo() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.startUfo()
}

func (sm *SoundManager) startUfo() {
	if !sm.initialized || sm.ufoStreamer != nil {
		return
	}
	ctrl := &beep.Ctrl{Streamer: newVolume(newUfoWarble(beep.SampleRate(sm.cfg.SampleRate)), sm.cfg.MasterVolume), Paused: sm.suspended}
	sm.ufoStreamer = ctrl
	sm.add(ctrl)
}

// StopUfo silences the Ufo warble
func (sm *SoundManager) StopUfo() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.stopUfo()
}

func (sm *SoundManager) stopUfo() {
	if sm.ufoStreamer == nil {
		return
	}
	speaker.Lock()
	sm.ufoStreamer.Paused = true
	// a paused Ctrl still streams silence, drop it from the mixer
	sm.ufoStreamer.Streamer = nil
	speaker.Unlock()
	sm.ufoStreamer = nil
}

// Suspend mutes new effects and holds the Ufo loop while the game is paused
func (sm *SoundManager) Suspend(paused bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.suspended = paused
	if sm.ufoStreamer != nil {
		speaker.Lock()
		sm.ufoStreamer.Paused = paused
		speaker.Unlock()
	}
}

// HandleEvents voices a batch of drained simulation events
func (sm *SoundManager) HandleEvents(events []event.Event) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	for _, ev := range events {
		switch ev.Type {
		case event.EventUfoSpawned:
			sm.startUfo()
		case event.EventUfoDestroyed, event.EventUfoEscaped, event.EventLevelStarted, event.EventGameOver:
			sm.stopUfo()
		}
		if st, ok := soundFor(ev); ok {
			sm.play(st)
		}
	}
}

// soundFor maps an event to its one-shot effect
func soundFor(ev event.Event) (SoundType, bool) {
	switch ev.Type {
	case event.EventInvadersStepped:
		return marchSound(ev.Value), true
	case event.EventMissileFired:
		return SoundFire, true
	case event.EventInvaderDestroyed:
		return SoundInvaderKilled, true
	case event.EventShipDestroyed:
		return SoundShipExplosion, true
	case event.EventUfoDestroyed:
		return SoundUfoHit, true
	default:
		return 0, false
	}
}
