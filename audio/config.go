package audio

import (
	"errors"
	"fmt"
)

// Stream defaults.
const (
	DefaultSampleRate = 44100 // [Hz]
	DefaultSampleSize = 16    // [bit]
	DefaultChannels   = 1
	DefaultBlockSize  = 512
	DefaultBufferSize = 5000

	// SampleMax is the largest value a 16-bit sample can take.
	SampleMax = 32767
)

var (
	// ErrUnsupportedSampleSize is returned when the requested sample width is
	// anything other than 16 bits. Everything downstream of the source assumes int16.
	ErrUnsupportedSampleSize = errors.New("16-bit sample size not supported")
	// ErrUnsupportedChannels is returned for anything other than a mono stream.
	ErrUnsupportedChannels = errors.New("only mono input is supported")
)

// Config represents a config that is used to open a new Source.
type Config struct {
	// SampleRate is the sample rate (Fs).
	SampleRate float64
	// SampleSize is the sample width in bits.
	SampleSize int
	// Channels is the number of input channels
	Channels int
	// BlockSize refers to the number of frames read from the device at a time
	BlockSize int
	// BufferSize is the most samples a single Pull can return. Older samples
	// are overwritten when the consumer falls behind.
	BufferSize int
}

// DefaultConfig returns the stream configuration the visualizer is tuned for.
func DefaultConfig() *Config {
	return &Config{
		SampleRate: DefaultSampleRate,
		SampleSize: DefaultSampleSize,
		Channels:   DefaultChannels,
		BlockSize:  DefaultBlockSize,
		BufferSize: DefaultBufferSize,
	}
}

// Validate checks that the config describes a stream we can process.
func (c *Config) Validate() error {
	if c.SampleSize != 16 {
		return fmt.Errorf("sample size %d: %w", c.SampleSize, ErrUnsupportedSampleSize)
	}
	if c.Channels != 1 {
		return fmt.Errorf("%d channels: %w", c.Channels, ErrUnsupportedChannels)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate %v", c.SampleRate)
	}
	if c.BlockSize <= 0 {
		return fmt.Errorf("invalid block size %d", c.BlockSize)
	}
	if c.BufferSize < c.BlockSize {
		return fmt.Errorf("buffer size %d must be at least the block size %d",
			c.BufferSize, c.BlockSize)
	}
	return nil
}
