package visual

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/peragwin/linevis/audio/fft"
)

// Renderer draws one frame of the visualization. Implementations hold no
// image state between calls: every call returns a freshly allocated canvas.
type Renderer interface {
	Generate(f *fft.Frame, st *State, size image.Point) (*image.RGBA, error)
}

// fullScale is the scale used to normalize sample and magnitude values.
const fullScale = 32768.0

// newCanvas allocates a canvas of the given size cleared to opaque black.
func newCanvas(size image.Point) *image.RGBA {
	img := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(img, img.Rect, image.Black, image.Point{}, draw.Src)
	return img
}

// fillRect paints a w x h rectangle with its top left corner at (x, y). Parts
// that fall outside the canvas are clipped.
func fillRect(img *image.RGBA, x, y, w, h int, c color.RGBA) {
	r := image.Rect(x, y, x+w, y+h)
	draw.Draw(img, r, &image.Uniform{c}, image.Point{}, draw.Src)
}
