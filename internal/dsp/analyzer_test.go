package dsp

import (
	"math"
	"testing"

	"cascade/internal/config"
	"cascade/pkg/siggen"
)

const testSampleRate = config.DefaultSampleRate

func newTestAnalyzer(t *testing.T, capacity int) (*Analyzer, *FrameChannel) {
	t.Helper()
	ch := NewFrameChannel(capacity)
	a, err := NewAnalyzer(ch, Rectangular, testSampleRate)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	return a, ch
}

func ingestAll(t *testing.T, a *Analyzer, samples []int16) {
	t.Helper()
	for _, s := range samples {
		if err := a.Ingest(s); err != nil {
			t.Fatalf("Ingest: %v", err)
		}
	}
}

func drain(ch *FrameChannel) [][]float64 {
	var frames [][]float64
	for {
		frame, ok := ch.TryReceive()
		if !ok {
			return frames
		}
		frames = append(frames, frame)
	}
}

func TestEmissionCountPerWindow(t *testing.T) {
	tests := []struct {
		samples int
		frames  int
	}{
		{0, 0},
		{1, 0},
		{config.WindowSize - 1, 0},
		{config.WindowSize, 1},
		{config.WindowSize + 1, 1},
		{2 * config.WindowSize, 2},
		{5*config.WindowSize + 37, 5},
	}

	for _, tt := range tests {
		a, ch := newTestAnalyzer(t, 16)
		ingestAll(t, a, make([]int16, tt.samples))
		if got := len(drain(ch)); got != tt.frames {
			t.Errorf("%d samples: emitted %d frames, want %d", tt.samples, got, tt.frames)
		}
	}
}

func TestFrameShape(t *testing.T) {
	a, ch := newTestAnalyzer(t, 4)
	ingestAll(t, a, siggen.ComplexWave(2*config.WindowSize, testSampleRate))

	frames := drain(ch)
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	for n, frame := range frames {
		if len(frame) != config.BinCount {
			t.Errorf("frame %d has %d bins, want %d", n, len(frame), config.BinCount)
		}
		for i, v := range frame {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				t.Errorf("frame %d bin %d is %f, want finite and >= 0", n, i, v)
			}
		}
	}
}

func TestSilenceNormalizesToZero(t *testing.T) {
	a, ch := newTestAnalyzer(t, 1)
	ingestAll(t, a, make([]int16, config.WindowSize))

	frames := drain(ch)
	if len(frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(frames))
	}
	for i, v := range frames[0] {
		if v != 0 {
			t.Fatalf("silence bin %d is %f, want 0", i, v)
		}
	}
}

// Bin k of the lower spectrum shows up mirrored at frame index BinCount-k.
func TestSinusoidPeakBin(t *testing.T) {
	const k = 100
	frequency := float64(k) * testSampleRate / config.WindowSize // Exact bin, no leakage.
	expectedBin := config.BinCount - k

	a, ch := newTestAnalyzer(t, 4)
	ingestAll(t, a, siggen.SineWave(2*config.WindowSize, testSampleRate, frequency))

	frames := drain(ch)
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	for n, frame := range frames {
		peak := siggen.PeakBin(frame, 0, len(frame)-1)
		if peak != expectedBin {
			t.Errorf("frame %d: peak at bin %d, want %d", n, peak, expectedBin)
		}
		for _, neighbor := range []int{expectedBin - 2, expectedBin + 2} {
			if frame[expectedBin] < frame[neighbor]+0.3 {
				t.Errorf("frame %d: peak %.3f not materially above bin %d (%.3f)",
					n, frame[expectedBin], neighbor, frame[neighbor])
			}
		}
	}
}

func TestExtremeSamplesDoNotPanic(t *testing.T) {
	a, ch := newTestAnalyzer(t, 4)

	samples := make([]int16, 2*config.WindowSize)
	for i := range samples {
		if i%2 == 0 {
			samples[i] = math.MaxInt16
		} else {
			samples[i] = math.MinInt16
		}
	}
	ingestAll(t, a, samples)

	for _, frame := range drain(ch) {
		for i, v := range frame {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("bin %d is %f for extreme input", i, v)
			}
		}
	}
}

func TestBinFrequency(t *testing.T) {
	a, _ := newTestAnalyzer(t, 1)

	step := float64(testSampleRate) / config.WindowSize
	if got := a.BinFrequency(0); math.Abs(got-float64(testSampleRate)/2) > 1e-9 {
		t.Errorf("bin 0 should be Nyquist, got %f", got)
	}
	if got := a.BinFrequency(config.BinCount - 1); math.Abs(got-step) > 1e-9 {
		t.Errorf("last bin should be one step above DC, got %f", got)
	}
	if got := a.BinFrequency(-1); got != 0 {
		t.Errorf("out of range bin should be 0, got %f", got)
	}
	if got := a.BinFrequency(config.BinCount); got != 0 {
		t.Errorf("out of range bin should be 0, got %f", got)
	}
}

// The per-sample path between emissions must not allocate; the decode
// callback calls it for every sample.
func TestIngestHotPathAllocs(t *testing.T) {
	a, _ := newTestAnalyzer(t, 1)

	allocs := testing.AllocsPerRun(1000, func() {
		a.pos = 0 // Hold the window open so no emission occurs.
		if err := a.Ingest(12345); err != nil {
			t.Fatalf("Ingest: %v", err)
		}
	})
	if allocs > 0 {
		t.Errorf("expected zero allocations per sample, got %.1f", allocs)
	}
}

func BenchmarkIngestWindow(b *testing.B) {
	ch := NewFrameChannel(4)
	a, err := NewAnalyzer(ch, Rectangular, testSampleRate)
	if err != nil {
		b.Fatal(err)
	}
	samples := siggen.ComplexWave(config.WindowSize, testSampleRate)

	b.ReportAllocs()
	for b.Loop() {
		for _, s := range samples {
			_ = a.Ingest(s)
		}
		ch.TryReceive()
	}
}

func TestParseWindowFunc(t *testing.T) {
	tests := []struct {
		name     string
		expected WindowFunc
		wantErr  bool
	}{
		{"rectangular", Rectangular, false},
		{"", Rectangular, false},
		{"Hann", Hann, false},
		{"HAMMING", Hamming, false},
		{"blackman", Blackman, false},
		{"nuttall", Nuttall, false},
		{"kaiser", Rectangular, true},
	}

	for _, tt := range tests {
		got, err := ParseWindowFunc(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseWindowFunc(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if got != tt.expected {
			t.Errorf("ParseWindowFunc(%q) = %v, want %v", tt.name, got, tt.expected)
		}
	}
}
