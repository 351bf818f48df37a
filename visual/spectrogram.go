package visual

import (
	"errors"
	"image"
	"image/color"
	"math"

	"github.com/peragwin/linevis/audio/fft"
	"github.com/peragwin/linevis/audio/util"
)

// SpectrogramBins is the number of bars the spectrum is averaged into.
const SpectrogramBins = 200

// MinSpectrogramSamples is the shortest buffer whose spectrum has at least one
// value per bar.
const MinSpectrogramSamples = 2*SpectrogramBins - 2

// ErrShortSpectrum is returned when a spectrum has fewer entries than there
// are bars. The frame should be skipped.
var ErrShortSpectrum = errors.New("spectrum shorter than the number of bars")

var white = color.RGBA{255, 255, 255, 255}

// Spectrogram draws the spectrum as white bars anchored to the bottom of the
// canvas. The palette and band settings do not apply to it.
type Spectrogram struct {
	bucketer *util.Bucketer
}

// NewSpectrogram creates a Spectrogram renderer.
func NewSpectrogram() *Spectrogram {
	return &Spectrogram{bucketer: util.NewBucketer(SpectrogramBins)}
}

// Bars returns the averaged magnitude for each bar.
func (s *Spectrogram) Bars(spectrum []float64) ([]float64, error) {
	bins, err := s.bucketer.Bucket(spectrum)
	if err == util.ErrShortFrame {
		return nil, ErrShortSpectrum
	}
	return bins, err
}

// Generate draws the frame.
func (s *Spectrogram) Generate(f *fft.Frame, _ *State, size image.Point) (*image.RGBA, error) {
	bins, err := s.Bars(f.Spectrum)
	if err != nil {
		return nil, err
	}

	img := newCanvas(size)
	width := float64(size.X) / float64(len(bins))
	for i, b := range bins {
		// the /10 is a display scale tuned by eye
		height := float64(size.Y) * b / fullScale / 10
		x0 := int(math.Round(float64(i) * width))
		x1 := int(math.Round(float64(i+1) * width))
		y0 := size.Y - int(math.Round(height))
		fillRect(img, x0, y0, x1-x0, size.Y-y0, white)
	}
	return img, nil
}
