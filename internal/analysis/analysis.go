// Package analysis post-processes recorded trajectories: frequency content
// of a coordinate and step-response measures for tracked joints.
package analysis

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// PowerSpectrum returns the magnitude spectrum of the series up to the
// Nyquist frequency. The input is zero-padded to the next power of two.
func PowerSpectrum(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, padded)

	ps := make([]float64, len(coeffs))
	for i, c := range coeffs {
		ps[i] = cmplx.Abs(c)
	}
	return ps
}

// DominantFrequency returns the strongest nonzero frequency in hz and its
// magnitude, given the sample interval dt.
func DominantFrequency(data []float64, dt float64) (float64, float64) {
	if len(data) < 2 || dt <= 0 {
		return 0, 0
	}
	ps := PowerSpectrum(data)

	maxIdx, maxPower := 0, 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}

	n := 2 * (len(ps) - 1)
	freq := float64(maxIdx) / (float64(n) * dt)
	return freq, maxPower
}

// SettlingTime returns the first time after which the series stays within
// tol of target. Returns -1 if it never settles.
func SettlingTime(times, series []float64, target, tol float64) float64 {
	settled := -1.0
	for i := range series {
		if math.Abs(series[i]-target) > tol {
			settled = -1.0
		} else if settled < 0 {
			settled = times[i]
		}
	}
	return settled
}

// Overshoot returns the peak excursion past the target relative to the
// step size from the initial value, as a fraction. Zero when the response
// never crosses the target.
func Overshoot(series []float64, target float64) float64 {
	if len(series) == 0 {
		return 0
	}
	step := target - series[0]
	if step == 0 {
		return 0
	}

	peak := 0.0
	for _, v := range series {
		// Excursion past the target, signed along the step direction.
		over := (v - target) / step
		if over > peak {
			peak = over
		}
	}
	return peak
}
