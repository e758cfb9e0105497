package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/space-invasion/parameter"
	"github.com/lixenwraith/space-invasion/vmath"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// noiseSeed keeps noise bursts reproducible
const noiseSeed = 0x5eed

// oscillator generates raw audio waves, sweeping linearly from freq to endFreq
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	noise    *vmath.FastRand
}

// NewOscillator creates a fixed-pitch oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding from one pitch to another over its duration
func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     from,
		endFreq:  to,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		noise:    vmath.NewFastRand(noiseSeed),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.noise.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		freq := o.freq
		if o.endFreq != o.freq && o.duration > 0 {
			freq += (o.endFreq - o.freq) * float64(o.position) / float64(o.duration)
		}
		o.phase += freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps a stream with linear gain, zero gain is silent
// math.Log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// ufoWarble is an endless sine wobbling around the Ufo tone
type ufoWarble struct {
	rate  beep.SampleRate
	pos   int
	phase float64
}

func newUfoWarble(rate beep.SampleRate) *ufoWarble {
	return &ufoWarble{rate: rate}
}

func (g *ufoWarble) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.rate)
		freq := parameter.UfoToneHz + parameter.UfoWarbleDepthHz*math.Sin(2*math.Pi*parameter.UfoWarbleRateHz*t)

		sample := parameter.UfoToneVolume * math.Sin(2*math.Pi*g.phase)
		samples[i][0] = sample
		samples[i][1] = sample

		g.phase += freq / float64(g.rate)
		g.phase -= math.Floor(g.phase)
		g.pos++
	}
	return len(samples), true
}

func (g *ufoWarble) Err() error { return nil }

// Sound effect generators

// CreateMarchSound generates one of the four descending formation step tones
func CreateMarchSound(index int, cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	st := marchSound(index)
	freq := parameter.MarchToneFrequencies[st-SoundMarch0]

	osc := NewOscillator(freq, parameter.MarchToneDuration, WaveSquare, rate)
	shaped := NewEnvelope(osc, parameter.MarchToneDuration, parameter.MarchToneAttack, parameter.MarchToneRelease, rate)

	return newVolume(shaped, cfg.EffectVolumes[st]*cfg.MasterVolume)
}

// CreateFireSound generates a falling zap for a missile launch
func CreateFireSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	sweep := NewSweep(parameter.FireSoundStartHz, parameter.FireSoundEndHz, parameter.FireSoundDuration, WaveSaw, rate)
	shaped := NewEnvelope(sweep, parameter.FireSoundDuration, parameter.FireSoundAttack, parameter.FireSoundRelease, rate)

	return newVolume(shaped, cfg.EffectVolumes[SoundFire]*cfg.MasterVolume)
}

// CreateInvaderKilledSound generates a short noise crunch over a falling square
func CreateInvaderKilledSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := parameter.InvaderKilledDuration

	noise := NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, parameter.InvaderKilledAttack, parameter.InvaderKilledRelease, rate)
	body := NewEnvelope(NewSweep(400, 120, d, WaveSquare, rate), d, parameter.InvaderKilledAttack, parameter.InvaderKilledRelease, rate)

	mixed := beep.Mix(
		newVolume(noise, 0.6),
		newVolume(body, 0.4),
	)
	return newVolume(mixed, cfg.EffectVolumes[SoundInvaderKilled]*cfg.MasterVolume)
}

// CreateShipExplosionSound generates a long noise burst with a low rumble
func CreateShipExplosionSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := parameter.ShipExplosionSoundDuration

	noise := NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, parameter.ShipExplosionSoundAttack, parameter.ShipExplosionSoundRelease, rate)
	rumble := NewEnvelope(NewSweep(90, 40, d, WaveSine, rate), d, parameter.ShipExplosionSoundAttack, parameter.ShipExplosionSoundRelease, rate)

	mixed := beep.Mix(
		newVolume(noise, 0.7),
		newVolume(rumble, 0.5),
	)
	return newVolume(mixed, cfg.EffectVolumes[SoundShipExplosion]*cfg.MasterVolume)
}

// CreateUfoHitSound generates a two-step falling chime
func CreateUfoHitSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	half := parameter.UfoHitSoundDuration / 2

	n1 := NewEnvelope(NewSweep(1200, 800, half, WaveSquare, rate), half, parameter.UfoHitSoundAttack, half/2, rate)
	n2 := NewEnvelope(NewSweep(800, 300, half, WaveSquare, rate), half, parameter.UfoHitSoundAttack, parameter.UfoHitSoundRelease/2, rate)

	return newVolume(beep.Seq(n1, n2), cfg.EffectVolumes[SoundUfoHit]*cfg.MasterVolume*0.5)
}

// GetSoundEffect returns the streamer for a sound type, nil when unknown
func GetSoundEffect(soundType SoundType, cfg *AudioConfig) beep.Streamer {
	switch soundType {
	case SoundMarch0, SoundMarch1, SoundMarch2, SoundMarch3:
		return CreateMarchSound(int(soundType-SoundMarch0), cfg)
	case SoundFire:
		return CreateFireSound(cfg)
	case SoundInvaderKilled:
		return CreateInvaderKilledSound(cfg)
	case SoundShipExplosion:
		return CreateShipExplosionSound(cfg)
	case SoundUfoHit:
		return CreateUfoHitSound(cfg)
	default:
		return nil
	}
}
