package fft

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotSpectrum writes a line plot of the frame's magnitude spectrum against
// its frequency axis. The image format is taken from the file extension.
func PlotSpectrum(f *Frame, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Spectrum (%d samples, peak %.0f Hz)",
		f.Samples, f.DominantFrequency)
	p.X.Label.Text = "Frequency [Hz]"
	p.Y.Label.Text = "Magnitude"

	pts := make(plotter.XYs, len(f.Spectrum))
	for i := range pts {
		pts[i].X = f.Frequencies[i]
		pts[i].Y = f.Spectrum[i]
	}
	// the Nyquist entry of an even transform carries a negative frequency
	if f.Samples%2 == 0 && len(pts) > 1 {
		pts[len(pts)-1].X = -pts[len(pts)-1].X
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(line, plotter.NewGrid())

	return p.Save(12*vg.Inch, 6*vg.Inch, path)
}
