// Linevis listens to the microphone and draws its dominant frequency and
// loudness as a field of flickering rectangles.
//
// Keys: 1-9 and 0 set the number of columns, Q W E R T Y pick the color,
// I shows both bands, O only the upper band, P only the lower band, and
// Escape toggles fullscreen.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/golang/glog"

	"github.com/peragwin/linevis/audio"
	"github.com/peragwin/linevis/audio/fft"
	"github.com/peragwin/linevis/gfx"
	"github.com/peragwin/linevis/remote"
	"github.com/peragwin/linevis/visual"
)

var (
	width  = flag.Int("width", 400, "width of the canvas")
	height = flag.Int("height", 400, "height of the canvas")

	columns  = flag.Int("columns", 1, "initial number of columns (1-10)")
	renderer = flag.String("renderer", "line", "which visualization: line or spectrogram")
	seed     = flag.Int64("seed", 0, "seed for the flicker effect, 0 picks one from the clock")
	interval = flag.Duration("interval", visual.DefaultInterval, "target time between frames")

	sampleRate = flag.Float64("sample-rate", audio.DefaultSampleRate, "input sample rate [Hz]")
	sampleSize = flag.Int("sample-size", audio.DefaultSampleSize, "input sample size [bit], only 16 is supported")
	blockSize  = flag.Int("block-size", audio.DefaultBlockSize, "frames read from the device at a time")
	bufferSize = flag.Int("buffer-size", audio.DefaultBufferSize, "most samples analyzed per frame")

	tone     = flag.Float64("tone", 0, "use a sine wave of this frequency [Hz] instead of the microphone")
	devices  = flag.Bool("devices", false, "list audio devices and exit")
	plotFile = flag.String("plot", "", "plot the spectrum of one buffer to this file and exit")
	headless = flag.Bool("headless", false, "run without initializing OpenGL display")
	remoteAt = flag.String("remote", "", "address to serve the graphql remote control on, e.g. :8080")
)

func init() {
	// OpenGL requires that rendering functions be called from the main thread
	runtime.LockOSThread()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	if *devices {
		if err := audio.PrintDevices(); err != nil {
			glog.Fatal(err)
		}
		return
	}

	cfg := &audio.Config{
		SampleRate: *sampleRate,
		SampleSize: *sampleSize,
		Channels:   1,
		BlockSize:  *blockSize,
		BufferSize: *bufferSize,
	}
	if err := cfg.Validate(); err != nil {
		glog.Fatalf("invalid audio config: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	src := openSource(ctx, cfg)

	if *plotFile != "" {
		if err := plotOnce(ctx, src, cfg); err != nil {
			glog.Fatal(err)
		}
		return
	}

	rndr, err := newRenderer(*renderer)
	if err != nil {
		glog.Fatal(err)
	}

	keys := make(chan visual.Key, 16)
	p := &visual.Pipeline{
		Source:     src,
		Renderer:   rndr,
		State:      visual.NewState(*columns),
		Size:       image.Pt(*width, *height),
		SampleRate: cfg.SampleRate,
		Scheduler:  visual.Scheduler{Interval: *interval},
		Keys:       keys,
	}

	if *remoteAt != "" {
		ctl, err := remote.NewController(keys, p.State.Snapshot())
		if err != nil {
			glog.Fatal(err)
		}
		p.OnState = ctl.Publish
		go func() {
			glog.Infof("serving remote control on %s", *remoteAt)
			if err := http.ListenAndServe(*remoteAt, ctl.Handler()); err != nil {
				glog.Errorf("remote control stopped: %v", err)
			}
		}()
	}

	if *headless {
		err = p.Run(ctx, nil)
	} else {
		var d *gfx.Display
		d, err = gfx.NewDisplay(&gfx.Config{
			Width: *width, Height: *height,
			Title:       "Line Visualizer",
			Canvas:      p.Size,
			TextureMode: gl.NEAREST,
		})
		if err != nil {
			glog.Fatal("error creating display: ", err)
		}
		defer d.Terminate()
		err = d.Run(ctx, p)
	}
	if err != nil && err != context.Canceled {
		glog.Error(err)
	}
}

// openSource starts the microphone, or a synthetic tone when -tone is set.
// Stream errors are fatal.
func openSource(ctx context.Context, cfg *audio.Config) audio.Puller {
	if *tone > 0 {
		glog.Infof("using a %v Hz tone instead of the microphone", *tone)
		return audio.NewTone(*tone, cfg, cfg.BufferSize)
	}

	src, errc := audio.NewSource(ctx, cfg)
	go func() {
		select {
		case err := <-errc:
			glog.Fatal(err)
		case <-ctx.Done():
		}
	}()
	return src
}

func newRenderer(name string) (visual.Renderer, error) {
	switch name {
	case "line":
		s := *seed
		if s == 0 {
			s = time.Now().UnixNano()
		}
		return visual.NewLineRenderer(s), nil
	case "spectrogram":
		return visual.NewSpectrogram(), nil
	}
	return nil, fmt.Errorf("unknown renderer %q", name)
}

// plotOnce waits for the first buffer from src and plots its spectrum.
func plotOnce(ctx context.Context, src audio.Puller, cfg *audio.Config) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("no audio captured: %w", ctx.Err())
		case <-ticker.C:
		}
		samples := src.Pull()
		if len(samples) == 0 {
			continue
		}
		frame, err := fft.Extract(samples, cfg.SampleRate)
		if err != nil {
			return err
		}
		glog.Infof("%d samples, dominant %.1f Hz, peak %.0f",
			frame.Samples, frame.DominantFrequency, frame.PeakAmplitude)
		return fft.PlotSpectrum(frame, *plotFile)
	}
}
