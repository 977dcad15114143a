package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum is the one-sided power spectrum of a uniformly sampled
// series. Power is normalized so a pure cosine of amplitude A shows A²
// in its bin.
type Spectrum struct {
	Freqs []float64 // Hz
	Power []float64
}

// PowerSpectrum transforms a sampled series recorded at rate samples per
// second. The series length need not be a power of two.
func PowerSpectrum(data []float64, rate float64) *Spectrum {
	n := len(data)
	if n < 2 || rate <= 0 {
		return &Spectrum{}
	}

	coeffs := fft.FFTReal(data)
	half := n / 2

	s := &Spectrum{
		Freqs: make([]float64, half),
		Power: make([]float64, half),
	}
	for k := 0; k < half; k++ {
		amp := 2 * cmplx.Abs(coeffs[k]) / float64(n)
		s.Freqs[k] = float64(k) * rate / float64(n)
		s.Power[k] = amp * amp
	}
	return s
}

// Dominant returns the strongest non-DC component.
func (s *Spectrum) Dominant() (freq, power float64) {
	for k := 1; k < len(s.Power); k++ {
		if s.Power[k] > power {
			power = s.Power[k]
			freq = s.Freqs[k]
		}
	}
	return freq, power
}
