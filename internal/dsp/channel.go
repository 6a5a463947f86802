package dsp

import (
	"errors"
	"sync"
)

// ErrFrameChannelClosed is returned by Send once the consumer has gone away.
var ErrFrameChannelClosed = errors.New("frame channel closed")

// FrameChannel is the bounded handoff of spectral frames from the analyzer
// (decode callback goroutine) to the render loop. Single producer, single
// consumer, FIFO, lossless: Send blocks when the channel is full rather than
// dropping frames, so a stalled renderer backpressures the decode engine.
type FrameChannel struct {
	frames    chan []float64
	done      chan struct{}
	closeOnce sync.Once
}

// NewFrameChannel creates a channel buffering up to capacity frames.
func NewFrameChannel(capacity int) *FrameChannel {
	if capacity < 1 {
		capacity = 1
	}
	return &FrameChannel{
		frames: make(chan []float64, capacity),
		done:   make(chan struct{}),
	}
}

// Send enqueues a frame, blocking while the channel is at capacity. Once the
// channel is closed, Send (including one already blocked) returns
// ErrFrameChannelClosed instead of waiting on a consumer that will never
// come back.
func (c *FrameChannel) Send(frame []float64) error {
	select {
	case <-c.done:
		return ErrFrameChannelClosed
	default:
	}
	select {
	case c.frames <- frame:
		return nil
	case <-c.done:
		return ErrFrameChannelClosed
	}
}

// TryReceive returns the oldest unconsumed frame without blocking.
// The second return value is false when no frame is pending.
func (c *FrameChannel) TryReceive() ([]float64, bool) {
	select {
	case frame := <-c.frames:
		return frame, true
	default:
		return nil, false
	}
}

// Len reports the number of frames currently buffered.
func (c *FrameChannel) Len() int {
	return len(c.frames)
}

// Close releases any blocked producer. Frames already buffered remain
// readable through TryReceive. Safe to call more than once.
func (c *FrameChannel) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}
