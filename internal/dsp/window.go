package dsp

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/dsp/window"
)

// WindowFunc selects the window function applied before the FFT.
type WindowFunc int

const (
	// Rectangular applies no shaping. It is the default: the magnitude
	// normalization constants are tuned for an unwindowed transform.
	Rectangular WindowFunc = iota
	Hann
	Hamming
	Blackman
	Nuttall
)

// ParseWindowFunc converts a name (case-insensitive) to a WindowFunc.
// Returns Rectangular and an error if the name is unknown.
func ParseWindowFunc(name string) (WindowFunc, error) {
	switch strings.ToLower(name) {
	case "rectangular", "none", "":
		return Rectangular, nil
	case "hann", "hanning":
		return Hann, nil
	case "hamming":
		return Hamming, nil
	case "blackman":
		return Blackman, nil
	case "nuttall":
		return Nuttall, nil
	default:
		return Rectangular, fmt.Errorf("unknown FFT window function name: %q", name)
	}
}

// windowCoefficients returns the coefficient slice for the given window
// function and size. Rectangular yields all ones.
func windowCoefficients(fn WindowFunc, size int) []float64 {
	coeffs := make([]float64, size)
	for i := range coeffs {
		coeffs[i] = 1.0
	}
	switch fn {
	case Rectangular:
		// All ones.
	case Hann:
		window.Hann(coeffs)
	case Hamming:
		window.Hamming(coeffs)
	case Blackman:
		window.Blackman(coeffs)
	case Nuttall:
		window.Nuttall(coeffs)
	}
	return coeffs
}
