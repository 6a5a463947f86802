// Package pipeline implements the decode/capture engines that feed the
// spectral analyzer. A pipeline owns its source (file decoder or input
// device) and pushes every mono 16-bit sample into a SampleSink from its own
// delivery goroutine; the rest of the program only sees the Pipeline
// lifecycle interface.
package pipeline

import (
	"errors"
	"fmt"
)

// errAlreadyStopped marks lifecycle calls on a pipeline whose Stop already
// ran; the controller should have dropped the handle by then.
var errAlreadyStopped = errors.New("pipeline already stopped")

// SampleSink receives decoded mono samples, one call per sample, on the
// pipeline's delivery goroutine. A returned error tells the pipeline to stop
// delivering (the consumer is gone); playback itself is unaffected.
type SampleSink interface {
	Ingest(sample int16) error
}

// Pipeline is the lifecycle handle the playback controller drives. All
// methods are called from the render/main goroutine.
type Pipeline interface {
	Play() error
	Pause() error
	Stop() error
}

// MissingElementError reports that a stage required to construct a pipeline
// is unavailable on this host or for this source.
type MissingElementError struct {
	Element string
}

func (e *MissingElementError) Error() string {
	return fmt.Sprintf("missing element %s", e.Element)
}

// StateError reports a failed lifecycle operation on an otherwise
// constructed pipeline. The controller treats the handle as unusable after
// seeing one.
type StateError struct {
	Op  string
	Err error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("pipeline %s failed: %v", e.Op, e.Err)
}

func (e *StateError) Unwrap() error {
	return e.Err
}
