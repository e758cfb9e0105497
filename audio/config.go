package audio

import "github.com/lixenwraith/space-invasion/parameter"

// AudioConfig holds output settings and per-effect gain
type AudioConfig struct {
	Enabled       bool
	SampleRate    int
	MasterVolume  float64
	EffectVolumes [soundTypeCount]float64
}

// DefaultAudioConfig returns the stock mix
func DefaultAudioConfig() *AudioConfig {
	cfg := &AudioConfig{
		Enabled:      true,
		SampleRate:   parameter.AudioSampleRate,
		MasterVolume: parameter.AudioMasterVolume,
	}
	for i := range cfg.EffectVolumes {
		cfg.EffectVolumes[i] = 1.0
	}
	// march tones sit under the effects
	for s := SoundMarch0; s <= SoundMarch3; s++ {
		cfg.EffectVolumes[s] = 0.7
	}
	cfg.EffectVolumes[SoundFire] = 0.4
	return cfg
}
