package pipeline

import (
	"github.com/gordonklaus/portaudio"

	applog "cascade/internal/log"
)

const captureFramesPerBuffer = 512

// CapturePipeline visualizes a live input device instead of a decoded file.
// It opens a mono input stream at the analysis rate and forwards every
// captured sample to the SampleSink from the capture callback. Pause stops
// the stream without closing it, so resume keeps the same device.
type CapturePipeline struct {
	stream  *portaudio.Stream
	sink    SampleSink
	buffer  []int32
	running bool
	stopped bool
}

// NewCapturePipeline opens deviceID (or the default input for -1) for
// capture at analysisRate Hz. The capture subsystem must already be
// initialized. Missing stages are reported as MissingElementError.
func NewCapturePipeline(deviceID int, sink SampleSink, analysisRate int) (*CapturePipeline, error) {
	device, err := inputDevice(deviceID)
	if err != nil {
		applog.Errorf("Pipeline: no usable input device: %v", err)
		return nil, &MissingElementError{Element: "input device"}
	}

	p := &CapturePipeline{
		sink:   sink,
		buffer: make([]int32, captureFramesPerBuffer),
	}

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Channels: 1,
			Device:   device,
			Latency:  device.DefaultHighInputLatency,
		},
		FramesPerBuffer: captureFramesPerBuffer,
		SampleRate:      float64(analysisRate),
	}

	stream, err := portaudio.OpenStream(params, p.processInput)
	if err != nil {
		applog.Errorf("Pipeline: could not open capture stream on %q: %v", device.Name, err)
		return nil, &MissingElementError{Element: "capture stream"}
	}
	p.stream = stream

	applog.Infof("Pipeline: capturing %q at %d Hz", device.Name, analysisRate)
	return p, nil
}

// processInput is the capture callback. It reduces each int32 sample to the
// analyzer's 16-bit domain and forwards it; delivery stops permanently once
// the sink reports its consumer gone.
func (p *CapturePipeline) processInput(in []int32) {
	if p.stopped {
		return
	}
	copy(p.buffer, in)
	for _, s := range p.buffer[:len(in)] {
		if err := p.sink.Ingest(int16(s >> 16)); err != nil {
			p.stopped = true
			return
		}
	}
}

// Play starts (or resumes) the capture stream.
func (p *CapturePipeline) Play() error {
	if p.stream == nil {
		return &StateError{Op: "play", Err: errAlreadyStopped}
	}
	if p.running {
		return nil
	}
	if err := p.stream.Start(); err != nil {
		return &StateError{Op: "play", Err: err}
	}
	p.running = true
	return nil
}

// Pause suspends capture without releasing the device.
func (p *CapturePipeline) Pause() error {
	if p.stream == nil {
		return &StateError{Op: "pause", Err: errAlreadyStopped}
	}
	if !p.running {
		return nil
	}
	if err := p.stream.Stop(); err != nil {
		return &StateError{Op: "pause", Err: err}
	}
	p.running = false
	return nil
}

// Stop releases the stream and the device.
func (p *CapturePipeline) Stop() error {
	if p.stream == nil {
		return nil
	}
	if p.running {
		if err := p.stream.Stop(); err != nil {
			applog.Warnf("Pipeline: capture stream stop: %v", err)
		}
		p.running = false
	}
	err := p.stream.Close()
	p.stream = nil
	if err != nil {
		return &StateError{Op: "stop", Err: err}
	}
	return nil
}
