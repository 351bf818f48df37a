package fft

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
)

// ErrNoSamples is returned by Extract when it is given an empty buffer. It means
// there is nothing to draw this frame.
var ErrNoSamples = errors.New("no samples")

// Features are the scalar reductions computed for each frame.
type Features struct {
	// DominantFrequency is the absolute frequency [Hz] of the strongest bin.
	DominantFrequency float64
	// PeakAmplitude is the largest raw sample value. It is signed: a buffer with
	// only negative samples has a negative peak.
	PeakAmplitude float64
}

// Frame is the result of analyzing one buffer of samples.
type Frame struct {
	// Spectrum holds the magnitude of bins 0..N/2 of the transform.
	Spectrum []float64
	// Frequencies holds the frequency [Hz] of each entry in Spectrum.
	Frequencies []float64
	Features

	// Samples is the length N of the analyzed buffer.
	Samples    int
	SampleRate float64
}

// BinWidth is the spacing [Hz] between adjacent spectrum bins.
func (f *Frame) BinWidth() float64 {
	return f.SampleRate / float64(f.Samples)
}

// Extract computes the magnitude spectrum of a buffer of PCM samples along
// with its frequency axis and the frame's features.
func Extract(samples []int16, sampleRate float64) (*Frame, error) {
	n := len(samples)
	if n == 0 {
		return nil, ErrNoSamples
	}

	x := make([]float64, n)
	for i, s := range samples {
		x[i] = float64(s)
	}

	Fx := fft.FFTReal(x)
	spectrum := make([]float64, n/2+1)
	for i := range spectrum {
		spectrum[i] = cmplx.Abs(Fx[i])
	}
	freqs := Frequencies(n, sampleRate)[:len(spectrum)]

	// MaxIdx returns the first index holding the max, so ties go to the lowest bin.
	peak := floats.MaxIdx(spectrum)

	return &Frame{
		Spectrum:    spectrum,
		Frequencies: freqs,
		Features: Features{
			DominantFrequency: math.Abs(freqs[peak]),
			PeakAmplitude:     floats.Max(x),
		},
		Samples:    n,
		SampleRate: sampleRate,
	}, nil
}

// Frequencies returns the sample frequencies [Hz] of each bin of an n point
// transform, in the usual FFT order: zero, the positive frequencies, then the
// negative frequencies. For even n the Nyquist bin is reported as negative.
func Frequencies(n int, sampleRate float64) []float64 {
	freqs := make([]float64, n)
	d := sampleRate / float64(n)
	pos := (n-1)/2 + 1
	for i := 0; i < pos; i++ {
		freqs[i] = float64(i) * d
	}
	for i := pos; i < n; i++ {
		freqs[i] = float64(i-n) * d
	}
	return freqs
}
