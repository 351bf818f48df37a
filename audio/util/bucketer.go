package util

import (
	"errors"

	"gonum.org/v1/gonum/floats"
)

// ErrShortFrame is returned when a frame has fewer values than there are buckets.
var ErrShortFrame = errors.New("frame is shorter than the number of buckets")

// Bucketer averages a spectrum into N windows of equal stride. Window i starts
// at index i, not i*stride: it covers frame[i : i+stride] where
// stride = len(frame) / N. The windows overlap and only the lowest
// N-1+stride values of a frame are ever averaged.
type Bucketer struct {
	Buckets int
}

// NewBucketer returns a Bucketer producing the given number of buckets.
func NewBucketer(buckets int) *Bucketer {
	if buckets < 1 {
		panic("bucketer needs at least one bucket")
	}
	return &Bucketer{Buckets: buckets}
}

// Stride returns how many values of a frame of the given size fall in each window.
func (b *Bucketer) Stride(size int) int {
	return size / b.Buckets
}

// Bucket computes the mean of each bucket.
func (b *Bucketer) Bucket(frame []float64) ([]float64, error) {
	stride := b.Stride(len(frame))
	if stride < 1 {
		return nil, ErrShortFrame
	}
	buckets := make([]float64, b.Buckets)
	for i := range buckets {
		start := i
		stop := i + stride
		if stop > len(frame) {
			stop = len(frame)
		}
		buckets[i] = floats.Sum(frame[start:stop]) / float64(stop-start)
	}
	return buckets, nil
}
