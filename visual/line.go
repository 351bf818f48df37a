package visual

import (
	"image"
	"math"
	"math/rand"

	"github.com/peragwin/linevis/audio/fft"
)

// DefaultFreqCap is the dominant frequency [Hz] at which the line rectangles
// reach the full canvas height.
const DefaultFreqCap = 10000.0

// LineRenderer displays equally sized rectangles alternating between black
// and the brush color. The dominant frequency sets the height of the
// rectangles and the peak amplitude sets how many of them are painted.
type LineRenderer struct {
	// FreqCap maps linearly to the canvas height. Frequencies at or above the
	// cap fill the whole height.
	FreqCap float64

	rnd *rand.Rand
}

// NewLineRenderer creates a LineRenderer whose per-cell flicker is drawn from a
// random source seeded with seed.
func NewLineRenderer(seed int64) *LineRenderer {
	return &LineRenderer{
		FreqCap: DefaultFreqCap,
		rnd:     rand.New(rand.NewSource(seed)),
	}
}

// RectSize returns the size of each rectangle for the given features, state
// and canvas size. A zero dimension means nothing is drawn.
func (l *LineRenderer) RectSize(feat fft.Features, st *State, size image.Point) image.Point {
	w := size.X / (st.Columns * 2)

	var h int
	if feat.DominantFrequency >= l.FreqCap {
		h = size.Y
	} else {
		h = int(float64(size.Y) * feat.DominantFrequency / l.FreqCap)
	}
	return image.Pt(w, h)
}

// Odds returns k for a peak amplitude: each cell is skipped with probability
// 1/(k+1). Quiet or negative peaks give k <= 0 and no cell is painted.
func Odds(peak float64) int {
	return int(math.Round(peak / fullScale * 10))
}

// Generate draws the frame.
func (l *LineRenderer) Generate(f *fft.Frame, st *State, size image.Point) (*image.RGBA, error) {
	img := newCanvas(size)

	rs := l.RectSize(f.Features, st, size)
	w, h := rs.X, rs.Y
	k := Odds(f.PeakAmplitude)
	if w < 1 || h < 1 || k <= 0 {
		return img, nil
	}

	c := st.Color()
	for x := 0; x < size.X-w; x += 2 * w {
		for y := 0; y < size.Y; y += 2 * h {
			if l.rnd.Intn(k+1) == 0 {
				continue
			}
			if st.Evens {
				fillRect(img, x, y, w, h, c)
			}
			if st.Odds {
				fillRect(img, x+w, size.Y-y-h, w, h, c)
			}
		}
	}

	return img, nil
}
