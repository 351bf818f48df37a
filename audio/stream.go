package audio

import (
	"context"
	"fmt"

	"github.com/golang/glog"
	"github.com/gordonklaus/portaudio"

	"github.com/peragwin/linevis/audio/util"
)

// Puller is anything that can hand over the samples captured since the last
// call. A nil return means there is no data yet.
type Puller interface {
	Pull() []int16
}

// PullFunc adapts a function to the Puller interface.
type PullFunc func() []int16

// Pull calls f.
func (f PullFunc) Pull() []int16 { return f() }

// Source captures mono 16-bit PCM from the default input device into a ring
// buffer which the render loop drains with Pull.
type Source struct {
	cfg    *Config
	buffer *util.RingBuffer
}

// NewSource validates the config and starts capturing from the default input
// device with portaudio. Capture stops when ctx is done. Any error opening or
// reading from the stream is sent on the returned channel, after which capture
// stops.
func NewSource(ctx context.Context, cfg *Config) (*Source, <-chan error) {
	errc := make(chan error, 1)
	src := &Source{cfg: cfg}
	if err := cfg.Validate(); err != nil {
		errc <- err
		return src, errc
	}
	src.buffer = util.NewRingBuffer(cfg.BufferSize)

	go func() {
		if err := portaudio.Initialize(); err != nil {
			errc <- fmt.Errorf("error initializing portaudio: %w", err)
			return
		}
		defer portaudio.Terminate()

		in := make([]int16, cfg.BlockSize)
		stream, err := portaudio.OpenDefaultStream(
			cfg.Channels, 0, cfg.SampleRate, cfg.BlockSize, in)
		if err != nil {
			errc <- fmt.Errorf("error opening stream: %w", err)
			return
		}
		defer stream.Close()
		if err := stream.Start(); err != nil {
			errc <- fmt.Errorf("error starting stream: %w", err)
			return
		}
		defer stream.Stop()
		glog.Infof("capturing %v Hz, %d-bit mono in blocks of %d",
			cfg.SampleRate, cfg.SampleSize, cfg.BlockSize)

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			if err := stream.Read(); err != nil {
				if err == portaudio.InputOverflowed {
					glog.Warning("input overflowed, samples were lost")
					continue
				}
				errc <- fmt.Errorf("error reading from stream: %w", err)
				return
			}
			src.buffer.Push(in)
		}
	}()

	return src, errc
}

// Pull returns every sample captured since the previous call, at most
// Config.BufferSize of them, or nil if nothing new has arrived.
func (s *Source) Pull() []int16 {
	if s.buffer == nil {
		return nil
	}
	if d := s.buffer.Dropped(); d > 0 && glog.V(1) {
		glog.Infof("render loop fell behind, %d samples were overwritten", d)
	}
	return s.buffer.Drain()
}
