package pipeline

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"cascade/internal/config"
)

// Recorder is a SampleSink tee: it forwards every sample to the wrapped
// sink and also writes the mono stream to a WAV file. Ingest runs on the
// pipeline's delivery goroutine; Close may be called from the main
// goroutine, so the closed flag is atomic.
type Recorder struct {
	next    SampleSink
	file    *os.File
	encoder *wav.Encoder
	buf     *audio.IntBuffer
	fill    int
	closed  atomic.Bool
}

// NewRecorder opens filename for writing and returns the tee. The WAV is
// mono 16-bit at the analysis sample rate.
func NewRecorder(filename string, next SampleSink, sampleRate int) (*Recorder, error) {
	if next == nil {
		return nil, fmt.Errorf("recorder requires a downstream sink")
	}

	file, err := os.Create(filename)
	if err != nil {
		return nil, err
	}

	return &Recorder{
		next:    next,
		file:    file,
		encoder: wav.NewEncoder(file, sampleRate, 16, 1, 1),
		buf: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: 1,
				SampleRate:  sampleRate,
			},
			Data: make([]int, config.WindowSize),
		},
	}, nil
}

// Ingest buffers the sample for the encoder and forwards it downstream.
// Encoder errors are reported through the return value only after the
// downstream sink has seen the sample; recording never steals data from the
// analyzer.
func (r *Recorder) Ingest(sample int16) error {
	err := r.next.Ingest(sample)

	if !r.closed.Load() {
		r.buf.Data[r.fill] = int(sample)
		r.fill++
		if r.fill == len(r.buf.Data) {
			r.fill = 0
			if werr := r.encoder.Write(r.buf); werr != nil && err == nil {
				err = fmt.Errorf("wav write: %w", werr)
			}
		}
	}
	return err
}

// Close flushes any partial buffer and finalizes the WAV file. Safe to call
// once; later Ingest calls still forward but no longer record.
func (r *Recorder) Close() error {
	if r.closed.Swap(true) {
		return nil
	}

	var err error
	if r.fill > 0 {
		partial := &audio.IntBuffer{
			Format: r.buf.Format,
			Data:   r.buf.Data[:r.fill],
		}
		err = r.encoder.Write(partial)
		r.fill = 0
	}
	if cerr := r.encoder.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if cerr := r.file.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
