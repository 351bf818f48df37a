package visual

import (
	"context"
	"errors"
	"image"
	"time"

	"github.com/golang/glog"

	"github.com/peragwin/linevis/audio"
	"github.com/peragwin/linevis/audio/fft"
)

// DefaultInterval is the target time between frames, about 30 fps.
const DefaultInterval = 33 * time.Millisecond

// Scheduler decides how long to wait before the next frame so that frames
// start at a roughly constant interval.
type Scheduler struct {
	Interval time.Duration
}

// Next returns the delay before the next frame. A frame that was drawn has
// its processing time taken off the interval. A skipped frame waits the full
// interval.
func (s Scheduler) Next(elapsed time.Duration, drew bool) time.Duration {
	if !drew {
		return s.Interval
	}
	d := s.Interval - elapsed
	if d < 0 {
		d = 0
	}
	return d
}

// Pipeline ties a sample source, the feature extractor and a renderer
// together. It owns State: everything that touches it runs on the goroutine
// driving the pipeline.
type Pipeline struct {
	Source     audio.Puller
	Renderer   Renderer
	State      *State
	Size       image.Point
	SampleRate float64
	Scheduler  Scheduler

	// Keys delivers key presses from other goroutines. They are applied
	// between frames.
	Keys <-chan Key
	// OnState, if set, is called with a copy of the state after every change.
	OnState func(State)

	frameCount int
}

// HandleKey applies a key press to the state.
func (p *Pipeline) HandleKey(k Key) bool {
	if !p.State.HandleKey(k) {
		return false
	}
	if glog.V(1) {
		glog.Infof("key %v: %+v", k, p.State.Snapshot())
	}
	if p.OnState != nil {
		p.OnState(p.State.Snapshot())
	}
	return true
}

// DrainKeys applies every key press waiting on Keys without blocking.
func (p *Pipeline) DrainKeys() {
	for {
		select {
		case k := <-p.Keys:
			p.HandleKey(k)
		default:
			return
		}
	}
}

// Frame pulls the next buffer and renders it. ok is false when the frame
// should be skipped because there was nothing to draw.
func (p *Pipeline) Frame() (img *image.RGBA, frame *fft.Frame, ok bool) {
	samples := p.Source.Pull()
	if len(samples) == 0 {
		return nil, nil, false
	}

	frame, err := fft.Extract(samples, p.SampleRate)
	if err != nil {
		return nil, nil, false
	}

	img, err = p.Renderer.Generate(frame, p.State, p.Size)
	if errors.Is(err, ErrShortSpectrum) {
		glog.V(2).Infof("skipping frame of %d samples: %v", len(samples), err)
		return nil, frame, false
	} else if err != nil {
		glog.Warningf("skipping frame: %v", err)
		return nil, frame, false
	}

	p.frameCount++
	if glog.V(2) {
		glog.Infof("frame %d: %d samples, dominant %.1f Hz, peak %.0f",
			p.frameCount, frame.Samples, frame.DominantFrequency, frame.PeakAmplitude)
	}
	return img, frame, true
}

// Run drives the pipeline without a window until ctx is done, handing every
// drawn frame to present.
func (p *Pipeline) Run(ctx context.Context, present func(*image.RGBA)) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case k := <-p.Keys:
			p.HandleKey(k)
		case <-timer.C:
			start := time.Now()
			img, _, ok := p.Frame()
			if ok && present != nil {
				present(img)
			}
			timer.Reset(p.Scheduler.Next(time.Since(start), ok))
		}
	}
}
