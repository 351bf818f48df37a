package main

import (
	"testing"

	"github.com/peragwin/linevis/visual"
)

func TestNewRenderer(t *testing.T) {
	r, err := newRenderer("line")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := r.(*visual.LineRenderer); !ok {
		t.Fatalf("expected a line renderer, got %T", r)
	}

	r, err = newRenderer("spectrogram")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := r.(*visual.Spectrogram); !ok {
		t.Fatalf("expected a spectrogram, got %T", r)
	}

	if _, err := newRenderer("waveform"); err == nil {
		t.Fatal("expected an error for an unknown renderer")
	}
}
