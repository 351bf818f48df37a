package audio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gordonklaus/portaudio"
)

func TestNewSourceRejectsSampleSize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SampleSize = 24

	src, errc := NewSource(context.Background(), cfg)
	select {
	case err := <-errc:
		if !errors.Is(err, ErrUnsupportedSampleSize) {
			t.Fatal("expected ErrUnsupportedSampleSize, got", err)
		}
	case <-time.After(time.Second):
		t.Fatal("expected the config to be rejected")
	}
	if s := src.Pull(); s != nil {
		t.Fatal("expected no samples from a rejected source")
	}
}

func TestNewSource(t *testing.T) {
	if paErr != nil {
		t.Skip("portaudio unavailable:", paErr)
	}
	if _, err := portaudio.DefaultInputDevice(); err != nil {
		t.Skip("no default input device:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	cfg := DefaultConfig()
	cfg.BlockSize = 256
	src, errc := NewSource(ctx, cfg)

	n := 0
	ticker := time.NewTicker(33 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case err := <-errc:
			t.Fatal(err)
		case <-ticker.C:
			if s := src.Pull(); s != nil {
				if len(s) > cfg.BufferSize {
					t.Fatalf("pulled %d samples, more than the buffer size %d",
						len(s), cfg.BufferSize)
				}
				n++
			}
			continue
		case <-ctx.Done():
		}
		break
	}

	if n < 5 {
		t.Fatal("Expected at least 5 pulls with data from source, got", n)
	}
}
