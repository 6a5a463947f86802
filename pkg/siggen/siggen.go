// Package siggen generates deterministic 16-bit test signals and provides
// small helpers for inspecting spectral frames. It exists for tests; nothing
// in the runtime path imports it.
package siggen

import "math"

// SineWave returns size samples of a pure sinusoid at frequency Hz,
// sampled at sampleRate, at 90% of full scale.
func SineWave(size int, sampleRate, frequency float64) []int16 {
	buffer := make([]int16, size)
	for i := range buffer {
		t := float64(i) / sampleRate
		buffer[i] = int16(math.Sin(2*math.Pi*frequency*t) * math.MaxInt16 * 0.9)
	}
	return buffer
}

// ComplexWave returns size samples of a 440Hz fundamental plus two
// harmonics, a rough stand-in for musical content.
func ComplexWave(size int, sampleRate float64) []int16 {
	buffer := make([]int16, size)
	for i := range buffer {
		t := float64(i) / sampleRate
		signal := math.Sin(2*math.Pi*440*t)*0.5 +
			math.Sin(2*math.Pi*880*t)*0.3 +
			math.Sin(2*math.Pi*1320*t)*0.2
		buffer[i] = int16(signal * math.MaxInt16 * 0.9)
	}
	return buffer
}

// PeakBin returns the index of the largest value in frame within
// [startBin, endBin], clamping the range to the frame bounds.
func PeakBin(frame []float64, startBin, endBin int) int {
	if len(frame) == 0 {
		return 0
	}
	if startBin < 0 {
		startBin = 0
	}
	if endBin >= len(frame) {
		endBin = len(frame) - 1
	}

	peakBin := startBin
	peakValue := frame[startBin]
	for bin := startBin + 1; bin <= endBin; bin++ {
		if frame[bin] > peakValue {
			peakValue = frame[bin]
			peakBin = bin
		}
	}
	return peakBin
}
