package parameter

import "time"

// Audio output
const (
	AudioSampleRate     = 44100
	AudioBufferDuration = 100 * time.Millisecond
	AudioMasterVolume   = 0.6
)

// March tones, one per formation step, descending
var MarchToneFrequencies = [MarchSoundCount]float64{98.0, 87.31, 77.78, 73.42}

const (
	MarchToneDuration = 90 * time.Millisecond
	MarchToneAttack   = 4 * time.Millisecond
	MarchToneRelease  = 50 * time.Millisecond

	// FireSound sweeps down from FireSoundStartHz to FireSoundEndHz
	FireSoundDuration = 180 * time.Millisecond
	FireSoundAttack   = 2 * time.Millisecond
	FireSoundRelease  = 120 * time.Millisecond
	FireSoundStartHz  = 1400.0
	FireSoundEndHz    = 300.0

	InvaderKilledDuration = 220 * time.Millisecond
	InvaderKilledAttack   = 2 * time.Millisecond
	InvaderKilledRelease  = 160 * time.Millisecond

	ShipExplosionSoundDuration = 900 * time.Millisecond
	ShipExplosionSoundAttack   = 5 * time.Millisecond
	ShipExplosionSoundRelease  = 700 * time.Millisecond

	UfoHitSoundDuration = 500 * time.Millisecond
	UfoHitSoundAttack   = 5 * time.Millisecond
	UfoHitSoundRelease  = 300 * time.Millisecond

	// Ufo warble: a sine around UfoToneHz wobbled by UfoWarbleDepthHz at UfoWarbleRateHz
	UfoToneHz        = 560.0
	UfoWarbleDepthHz = 180.0
	UfoWarbleRateHz  = 7.0
	UfoToneVolume    = 0.25
)
