package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/railsim/internal/shot"
)

// Spectrum is a one-sided amplitude spectrum.
type Spectrum struct {
	Freq  []float64 // Hz
	Power []float64
}

// CurrentSpectrum transforms the discharge current of res after removing
// its mean. The sample spacing is taken from the time step of the shot.
func CurrentSpectrum(res *shot.Result) *Spectrum {
	return SpectrumOf(res.Current, res.Params.TimeStep)
}

// SpectrumOf transforms ys sampled every dt seconds.
func SpectrumOf(ys []float64, dt float64) *Spectrum {
	n := len(ys)
	if n < 2 || dt <= 0 {
		return &Spectrum{}
	}

	centered := make([]float64, n)
	copy(centered, ys)
	floats.AddConst(-floats.Sum(ys)/float64(n), centered)

	coeffs := fft.FFTReal(centered)
	half := n / 2
	s := &Spectrum{Freq: make([]float64, half), Power: make([]float64, half)}
	for k := 0; k < half; k++ {
		s.Freq[k] = float64(k) / (float64(n) * dt)
		s.Power[k] = cmplx.Abs(coeffs[k])
	}
	return s
}

// Dominant returns the frequency of the strongest non-DC component.
func (s *Spectrum) Dominant() (float64, bool) {
	if len(s.Power) < 2 {
		return 0, false
	}
	k := floats.MaxIdx(s.Power[1:]) + 1
	if s.Power[k] == 0 {
		return 0, false
	}
	return s.Freq[k], true
}
