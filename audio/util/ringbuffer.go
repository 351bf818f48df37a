package util

import (
	"sync"
)

// RingBuffer implements a circular buffer of PCM samples. Writers push blocks
// as they arrive from the device and a reader drains whatever has accumulated
// since its last read.
type RingBuffer struct {
	sync.Mutex
	buf     []int16
	index   int
	unread  int
	dropped int
}

// NewRingBuffer creates a new ring buffer with the given size.
func NewRingBuffer(size int) *RingBuffer {
	return &RingBuffer{buf: make([]int16, size)}
}

// Size is the capacity of the buffer.
func (r *RingBuffer) Size() int {
	return len(r.buf)
}

// Push data onto the ring buffer. Samples that were never drained are
// overwritten once the buffer wraps.
func (r *RingBuffer) Push(data []int16) {
	if len(data) > len(r.buf) {
		panic("cant push data longer than size of buffer")
	}

	r.Lock()
	defer r.Unlock()

	wrap := false
	en := r.index + len(data)
	if en > len(r.buf) {
		en = len(r.buf)
		wrap = true
	}
	copy(r.buf[r.index:en], data)
	if wrap {
		os := len(r.buf) - r.index
		copy(r.buf, data[os:])
	}

	r.index = (r.index + len(data)) % len(r.buf)
	r.unread += len(data)
	if r.unread > len(r.buf) {
		r.dropped += r.unread - len(r.buf)
		r.unread = len(r.buf)
	}
}

// Drain returns every sample pushed since the previous Drain, oldest first,
// or nil if there are none.
func (r *RingBuffer) Drain() []int16 {
	r.Lock()
	defer r.Unlock()

	if r.unread == 0 {
		return nil
	}
	ret := r.last(r.unread)
	r.unread = 0
	return ret
}

// Get the most recent N samples from the buffer without consuming them.
func (r *RingBuffer) Get(size int) []int16 {
	if size > len(r.buf) {
		panic("cant get size greater than size of buffer")
	}

	r.Lock()
	defer r.Unlock()
	return r.last(size)
}

// Dropped returns how many samples were overwritten before being drained and
// resets the counter.
func (r *RingBuffer) Dropped() int {
	r.Lock()
	defer r.Unlock()
	d := r.dropped
	r.dropped = 0
	return d
}

func (r *RingBuffer) last(size int) []int16 {
	ret := make([]int16, size)

	st := r.index - size
	if st >= 0 {
		copy(ret, r.buf[st:r.index])
		return ret
	}
	st += len(r.buf)
	n := copy(ret, r.buf[st:])
	copy(ret[n:], r.buf[:r.index])
	return ret
}
