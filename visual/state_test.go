package visual

import (
	"image/color"
	"testing"
)

func TestNewState(t *testing.T) {
	s := NewState(1)
	if s.Columns != 1 || !s.Evens || !s.Odds || s.Fullscreen || s.Brush != 0 {
		t.Fatalf("unexpected initial state %+v", s)
	}
	if c := s.Color(); c != (color.RGBA{255, 255, 255, 255}) {
		t.Fatal("expected a white brush, got", c)
	}
	if s := NewState(0); s.Columns != MinColumns {
		t.Fatal("expected columns clamped to", MinColumns, "got", s.Columns)
	}
	if s := NewState(42); s.Columns != MaxColumns {
		t.Fatal("expected columns clamped to", MaxColumns, "got", s.Columns)
	}
}

func TestHandleKeyColumns(t *testing.T) {
	s := NewState(1)
	for k := Key('1'); k <= '9'; k++ {
		s.HandleKey(k)
		if s.Columns != int(k-'0') {
			t.Fatalf("key %v: expected %d columns, got %d", k, k-'0', s.Columns)
		}
	}
	s.HandleKey('0')
	if s.Columns != 10 {
		t.Fatal("expected 0 to select 10 columns, got", s.Columns)
	}
}

func TestHandleKeyBrush(t *testing.T) {
	s := NewState(1)
	exp := []color.RGBA{
		{255, 255, 255, 255},
		{255, 0, 0, 255},
		{0, 240, 0, 255},
		{0, 0, 255, 255},
		{255, 255, 0, 255},
		{0, 255, 255, 255},
	}
	for i, k := range "QWERTY" {
		if !s.HandleKey(Key(k)) && i != 0 {
			t.Fatalf("key %c: expected a change", k)
		}
		if c := s.Color(); c != exp[i] {
			t.Fatalf("key %c: expected %v, got %v", k, exp[i], c)
		}
	}

	// U has no brush behind it
	s.HandleKey('W')
	if s.HandleKey('U') {
		t.Fatal("expected U to leave the state alone")
	}
	if s.Brush != 1 {
		t.Fatal("expected brush to stay red, got", s.Brush)
	}
}

func TestHandleKeyBands(t *testing.T) {
	s := NewState(1)
	s.HandleKey('O')
	if !s.Evens || s.Odds {
		t.Fatalf("O: expected evens only, got %+v", s)
	}
	s.HandleKey('P')
	if s.Evens || !s.Odds {
		t.Fatalf("P: expected odds only, got %+v", s)
	}
	s.HandleKey('I')
	if !s.Evens || !s.Odds {
		t.Fatalf("I: expected both bands, got %+v", s)
	}
	if s.HandleKey('I') {
		t.Fatal("expected repeating I to report no change")
	}
}

func TestHandleKeyFullscreen(t *testing.T) {
	s := NewState(1)
	s.HandleKey(KeyEscape)
	if !s.Fullscreen {
		t.Fatal("expected fullscreen after Escape")
	}
	s.HandleKey(KeyEscape)
	if s.Fullscreen {
		t.Fatal("expected windowed after a second Escape")
	}
}

func TestHandleKeyUnknown(t *testing.T) {
	s := NewState(3)
	before := s.Snapshot()
	if s.HandleKey('Z') || s.HandleKey('-') {
		t.Fatal("expected unknown keys to be ignored")
	}
	after := s.Snapshot()
	if before.Columns != after.Columns || before.Brush != after.Brush ||
		before.Evens != after.Evens || before.Odds != after.Odds {
		t.Fatalf("state changed: %+v -> %+v", before, after)
	}
}

func TestParseKey(t *testing.T) {
	for in, exp := range map[string]Key{
		"q":      'Q',
		"Q":      'Q',
		"0":      '0',
		"esc":    KeyEscape,
		"Escape": KeyEscape,
	} {
		k, err := ParseKey(in)
		if err != nil {
			t.Fatal(in, err)
		}
		if k != exp {
			t.Fatalf("%q: expected %v, got %v", in, exp, k)
		}
	}
	if _, err := ParseKey("QW"); err == nil {
		t.Fatal("expected an error for a multi character key")
	}
	if _, err := ParseKey(""); err == nil {
		t.Fatal("expected an error for an empty key")
	}
}
