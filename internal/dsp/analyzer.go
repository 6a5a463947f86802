// Package dsp implements the spectral analysis path: per-sample ingestion
// into a fixed window, forward FFT on fill, magnitude normalization, and the
// bounded handoff of finished frames to the render loop.
//
// Thread model: the Analyzer is owned by the decode engine's callback
// goroutine and uses no locks; the only shared state is the FrameChannel.
// All buffers are pre-allocated, the per-sample path does not allocate.
package dsp

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"cascade/internal/config"
)

// Analyzer accumulates mono 16-bit samples into a fixed window and emits one
// normalized spectral frame per full window.
//
// Each magnitude v is mapped to 1 + log10(v/W), clamped to zero when
// negative, otherwise scaled by 1/5. Silence lands at 0 and full-scale
// sinusoids land near 1, unclamped above.
//
// The frame carries the upper half of the symmetric spectrum (full-length
// output indices [W/2, W)). The real-input FFT only produces W/2+1
// coefficients, so the upper half is read mirrored: frame[i] = |coeff[W/2-i]|.
// Which half is displayed only flips the frequency axis direction, and a
// render option flips it back.
type Analyzer struct {
	out        *FrameChannel
	fft        *fourier.FFT
	sampleRate int

	input   []float64    // Current sample window, sample values as float64.
	scratch []float64    // Windowed copy handed to the FFT.
	coeffs  []complex128 // FFT output, W/2+1 coefficients.
	window  []float64    // Window function coefficients.
	pos     int          // Write cursor into input, [0, W).
}

// NewAnalyzer creates an analyzer emitting into out. The window size is
// fixed at config.WindowSize; sampleRate only affects BinFrequency.
func NewAnalyzer(out *FrameChannel, fn WindowFunc, sampleRate int) (*Analyzer, error) {
	if out == nil {
		return nil, fmt.Errorf("analyzer requires an output channel")
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}

	const size = config.WindowSize
	return &Analyzer{
		out:        out,
		fft:        fourier.NewFFT(size),
		sampleRate: sampleRate,
		input:      make([]float64, size),
		scratch:    make([]float64, size),
		coeffs:     make([]complex128, size/2+1),
		window:     windowCoefficients(fn, size),
	}, nil
}

// Ingest appends one sample to the current window. When the append fills the
// window, the window is analyzed, one spectral frame is emitted (blocking if
// the frame channel is full), and the cursor resets. Returns
// ErrFrameChannelClosed once the consumer is gone; the caller should stop
// delivering samples.
func (a *Analyzer) Ingest(sample int16) error {
	a.input[a.pos] = float64(sample)
	a.pos++
	if a.pos == len(a.input) {
		a.pos = 0
		return a.emit()
	}
	return nil
}

// emit analyzes the full window and sends the resulting frame.
func (a *Analyzer) emit() error {
	for i, v := range a.input {
		a.scratch[i] = v * a.window[i]
	}
	a.fft.Coefficients(a.coeffs, a.scratch)

	const size = config.WindowSize
	frame := make([]float64, config.BinCount)
	for i := range frame {
		mag := cmplx.Abs(a.coeffs[config.BinCount-i])
		x := 1 + math.Log10(mag/size)
		if x < 0 {
			frame[i] = 0
		} else {
			frame[i] = x / 5
		}
	}
	return a.out.Send(frame)
}

// BinFrequency returns the source frequency in Hz represented by frame bin
// i. Bins mirror the lower spectrum: bin 0 is the Nyquist frequency and the
// last bin is one frequency step above DC.
func (a *Analyzer) BinFrequency(i int) float64 {
	if i < 0 || i >= config.BinCount {
		return 0
	}
	return float64(config.BinCount-i) * float64(a.sampleRate) / float64(config.WindowSize)
}

// SampleRate returns the analysis sample rate in Hz.
func (a *Analyzer) SampleRate() int {
	return a.sampleRate
}
