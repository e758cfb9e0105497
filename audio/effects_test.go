package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/space-invasion/parameter"
)

// drain streams s to exhaustion and returns the sample count and peak amplitude
func drain(t *testing.T, s beep.Streamer, limit int) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatalf("stream did not finish within %d samples", limit)
	return total, peak
}

// TestOscillatorSine verifies sine wave generation
func TestOscillatorSine(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(440.0, 100*time.Millisecond, WaveSine, rate)

	samples := make([][2]float64, 100)
	n, ok := osc.Stream(samples)
	if !ok || n != 100 {
		t.Fatalf("Expected 100 samples, got %d ok=%v", n, ok)
	}
	for i := 0; i < n; i++ {
		if samples[i][0] < -1.0 || samples[i][0] > 1.0 {
			t.Errorf("Sample %d out of range: %f", i, samples[i][0])
		}
		if samples[i][0] != samples[i][1] {
			t.Errorf("Sample %d not mono: %f vs %f", i, samples[i][0], samples[i][1])
		}
	}
	if osc.Err() != nil {
		t.Errorf("Expected no error, got: %v", osc.Err())
	}
}

// TestOscillatorSquare verifies square wave only produces full-scale values
func TestOscillatorSquare(t *testing.T) {
	osc := NewOscillator(220.0, 50*time.Millisecond, WaveSquare, beep.SampleRate(44100))

	samples := make([][2]float64, 50)
	n, _ := osc.Stream(samples)
	for i := 0; i < n; i++ {
		if samples[i][0] != 1.0 && samples[i][0] != -1.0 {
			t.Errorf("Square sample %d should be +/-1, got %f", i, samples[i][0])
		}
	}
}

// TestOscillatorNoiseDeterministic verifies two noise bursts match sample for sample
func TestOscillatorNoiseDeterministic(t *testing.T) {
	rate := beep.SampleRate(8000)
	a := NewOscillator(0, 10*time.Millisecond, WaveNoise, rate)
	b := NewOscillator(0, 10*time.Millisecond, WaveNoise, rate)

	sa := make([][2]float64, 80)
	sb := make([][2]float64, 80)
	a.Stream(sa)
	b.Stream(sb)
	for i := range sa {
		if sa[i] != sb[i] {
			t.Fatalf("Noise diverged at sample %d", i)
		}
	}
}

// TestOscillatorDuration verifies the stream ends after its duration
func TestOscillatorDuration(t *testing.T) {
	rate := beep.SampleRate(44100)
	d := 20 * time.Millisecond
	n, _ := drain(t, NewOscillator(440, d, WaveSaw, rate), rate.N(time.Second))
	if n != rate.N(d) {
		t.Errorf("Expected %d samples, got %d", rate.N(d), n)
	}
}

// TestSweepChangesPitch verifies a downward sweep lengthens the wave period
func TestSweepChangesPitch(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewSweep(2000, 200, time.Second, WaveSquare, rate)

	samples := make([][2]float64, rate.N(time.Second))
	osc.Stream(samples)

	crossings := func(from, to int) int {
		c := 0
		for i := from + 1; i < to; i++ {
			if samples[i][0] != samples[i-1][0] {
				c++
			}
		}
		return c
	}
	tenth := len(samples) / 10
	early := crossings(0, tenth)
	late := crossings(len(samples)-tenth, len(samples))
	if early <= late*2 {
		t.Errorf("Expected many more transitions early (%d) than late (%d)", early, late)
	}
}

// TestEnvelopeShape verifies attack ramps from silence and release ends near silence
func TestEnvelopeShape(t *testing.T) {
	rate := beep.SampleRate(1000)
	d := 100 * time.Millisecond
	env := NewEnvelope(NewOscillator(0, d, WaveSquare, rate), d, 10*time.Millisecond, 10*time.Millisecond, rate)

	samples := make([][2]float64, 100)
	n, _ := env.Stream(samples)
	if n != 100 {
		t.Fatalf("Expected 100 samples, got %d", n)
	}
	if samples[0][0] != 0 {
		t.Errorf("Expected silent first sample, got %f", samples[0][0])
	}
	if math.Abs(samples[50][0]) != 1.0 {
		t.Errorf("Expected full scale sustain, got %f", samples[50][0])
	}
	if math.Abs(samples[99][0]) > 0.11 {
		t.Errorf("Expected release near silence, got %f", samples[99][0])
	}
}

// TestSoundEffectsFinite verifies every one-shot effect ends and stays in range
func TestSoundEffectsFinite(t *testing.T) {
	cfg := DefaultAudioConfig()
	rate := beep.SampleRate(cfg.SampleRate)

	for st := SoundType(0); st < soundTypeCount; st++ {
		s := GetSoundEffect(st, cfg)
		if s == nil {
			t.Errorf("%s: no streamer", st)
			continue
		}
		n, peak := drain(t, s, rate.N(2*time.Second))
		if n == 0 {
			t.Errorf("%s: produced no samples", st)
		}
		if peak == 0 || peak > 1.0 {
			t.Errorf("%s: peak %f outside (0, 1]", st, peak)
		}
	}

	if GetSoundEffect(soundTypeCount, cfg) != nil {
		t.Error("Expected nil streamer for unknown sound")
	}
}

// TestMarchToneLength verifies each march tone lasts its configured duration
func TestMarchToneLength(t *testing.T) {
	cfg := DefaultAudioConfig()
	rate := beep.SampleRate(cfg.SampleRate)
	for i := 0; i < parameter.MarchSoundCount; i++ {
		n, _ := drain(t, CreateMarchSound(i, cfg), rate.N(time.Second))
		if n != rate.N(parameter.MarchToneDuration) {
			t.Errorf("march %d: expected %d samples, got %d", i, rate.N(parameter.MarchToneDuration), n)
		}
	}
}

// TestZeroVolumeIsSilent verifies a muted effect streams silence
func TestZeroVolumeIsSilent(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.MasterVolume = 0

	_, peak := drain(t, CreateFireSound(cfg), beep.SampleRate(cfg.SampleRate).N(time.Second))
	if peak != 0 {
		t.Errorf("Expected silence, got peak %f", peak)
	}
}

// TestUfoWarbleEndless verifies the Ufo loop never drains
func TestUfoWarbleEndless(t *testing.T) {
	g := newUfoWarble(beep.SampleRate(8000))
	buf := make([][2]float64, 4000)
	for i := 0; i < 10; i++ {
		n, ok := g.Stream(buf)
		if !ok || n != len(buf) {
			t.Fatalf("Warble stopped after %d buffers", i)
		}
	}
}
