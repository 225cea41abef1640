package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum is the one-sided amplitude spectrum of a sampled signal.
type Spectrum struct {
	Freqs []float64 // cycles per hour
	Power []float64
}

// PowerSpectrum computes the spectrum of samples taken dt hours apart.
// The signal is mean-centered and truncated to the largest power-of-two
// length before transforming. Fewer than four samples yield an empty
// spectrum.
func PowerSpectrum(samples []float64, dt float64) Spectrum {
	n := 1
	for n*2 <= len(samples) {
		n *= 2
	}
	if n < 4 || dt <= 0 {
		return Spectrum{}
	}

	mean := 0.0
	for _, v := range samples[:n] {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range samples[:n] {
		centered[i] = v - mean
	}

	coeffs := fft.FFTReal(centered)
	window := float64(n) * dt

	s := Spectrum{
		Freqs: make([]float64, n/2),
		Power: make([]float64, n/2),
	}
	for k := 0; k < n/2; k++ {
		s.Freqs[k] = float64(k) / window
		s.Power[k] = cmplx.Abs(coeffs[k])
	}
	return s
}

// DominantPeriod returns the period of the strongest nonzero-frequency
// component, or 0 when the signal has no oscillation.
func (s Spectrum) DominantPeriod() float64 {
	best := 0
	for k := 1; k < len(s.Power); k++ {
		if s.Power[k] > s.Power[best] {
			best = k
		}
	}
	if best == 0 || s.Power[best] <= 1e-9 {
		return 0
	}
	return 1 / s.Freqs[best]
}
