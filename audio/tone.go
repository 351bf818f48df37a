package audio

import (
	"math"
)

// Tone is a synthetic Puller producing a pure sine wave. It stands in for a
// microphone when there is no input device and drives the end-to-end tests.
type Tone struct {
	Frequency  float64 // [Hz]
	Amplitude  float64 // peak sample value, at most SampleMax
	SampleRate float64
	// Size is the number of samples handed out by each Pull.
	Size int

	phase float64
}

// NewTone creates a Tone at full scale.
func NewTone(freq float64, cfg *Config, size int) *Tone {
	return &Tone{
		Frequency:  freq,
		Amplitude:  SampleMax,
		SampleRate: cfg.SampleRate,
		Size:       size,
	}
}

// Pull returns the next Size samples of the wave. The phase carries over between
// calls so consecutive buffers are continuous.
func (t *Tone) Pull() []int16 {
	if t.Size <= 0 {
		return nil
	}
	out := make([]int16, t.Size)
	step := 2 * math.Pi * t.Frequency / t.SampleRate
	for i := range out {
		out[i] = int16(math.Round(t.Amplitude * math.Sin(t.phase)))
		t.phase += step
	}
	t.phase = math.Mod(t.phase, 2*math.Pi)
	return out
}
