package visual

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette is the list of brushes the line renderer can paint with.
type Palette []colorful.Color

// RGBA converts entry i to an opaque color.RGBA.
func (p Palette) RGBA(i int) color.RGBA {
	r, g, b := p[i].RGB255()
	return color.RGBA{r, g, b, 255}
}

func mustParseHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("MustParseHex: " + err.Error())
	}
	return c
}

// DefaultPalette is selected with the keys Q through Y.
var DefaultPalette = Palette{
	mustParseHex("#ffffff"), // white
	mustParseHex("#ff0000"), // red
	mustParseHex("#00f000"), // green
	mustParseHex("#0000ff"), // blue
	mustParseHex("#ffff00"), // yellow
	mustParseHex("#00ffff"), // teal
}
