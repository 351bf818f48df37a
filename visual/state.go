package visual

import (
	"fmt"
	"image/color"
	"strings"
)

// Key identifies a key press. Printable keys use their upper case ASCII code.
type Key rune

// KeyEscape toggles fullscreen.
const KeyEscape Key = 0x1b

// ParseKey converts a key name, either a single character or "esc"/"escape",
// into a Key.
func ParseKey(s string) (Key, error) {
	switch strings.ToLower(s) {
	case "esc", "escape":
		return KeyEscape, nil
	}
	r := []rune(strings.ToUpper(s))
	if len(r) != 1 {
		return 0, fmt.Errorf("unknown key %q", s)
	}
	return Key(r[0]), nil
}

func (k Key) String() string {
	if k == KeyEscape {
		return "Escape"
	}
	return string(rune(k))
}

// paletteKeys maps a key to the palette entry it selects, by position.
const paletteKeys = "QWERTYU"

// Column limits.
const (
	MinColumns = 1
	MaxColumns = 10
)

// State holds the display settings that persist between frames. It is owned
// by the render loop and changed only through HandleKey.
type State struct {
	Columns    int  `json:"columns"`
	Brush      int  `json:"brush"`
	Evens      bool `json:"evens"`
	Odds       bool `json:"odds"`
	Fullscreen bool `json:"fullscreen"`

	Palette Palette `json:"-"`
}

// NewState returns the initial state: the given column count, a white brush and
// both bands displayed.
func NewState(columns int) *State {
	if columns < MinColumns {
		columns = MinColumns
	} else if columns > MaxColumns {
		columns = MaxColumns
	}
	return &State{
		Columns: columns,
		Evens:   true,
		Odds:    true,
		Palette: DefaultPalette,
	}
}

// HandleKey applies a key press and reports whether anything changed.
func (s *State) HandleKey(k Key) bool {
	prev := *s

	switch {
	case k == 'I':
		s.Evens, s.Odds = true, true
	case k == 'O':
		s.Evens, s.Odds = true, false
	case k == 'P':
		s.Evens, s.Odds = false, true
	case k == KeyEscape:
		s.Fullscreen = !s.Fullscreen
	case k == '0':
		s.Columns = 10
	case k >= '1' && k <= '9':
		s.Columns = int(k - '0')
	default:
		// U names a seventh brush the palette does not have
		if i := strings.IndexRune(paletteKeys, rune(k)); i >= 0 && i < len(s.Palette) {
			s.Brush = i
		}
	}

	return prev.Columns != s.Columns || prev.Brush != s.Brush ||
		prev.Evens != s.Evens || prev.Odds != s.Odds ||
		prev.Fullscreen != s.Fullscreen
}

// Color is the active brush color.
func (s *State) Color() color.RGBA {
	return s.Palette.RGBA(s.Brush)
}

// Snapshot returns a copy of the state that is safe to hand to another goroutine.
func (s *State) Snapshot() State {
	return *s
}
