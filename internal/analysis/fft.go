package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform with the radix-2 split.
// Input length must be a power of two; use PowerSpectrum for arbitrary
// lengths, which pads with zeros.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)

	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

// PowerSpectrum returns magnitudes of the positive-frequency bins, padding
// the input with zeros up to the next power of two.
func PowerSpectrum(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)

	fft := FFT(padded)
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}
	return ps
}

// DominantFrequency estimates the strongest oscillation frequency (in Hz) of
// a uniformly sampled signal, ignoring the DC bin. sampleRate is samples per
// unit time. For an underdamped oscillator trajectory this should land near
// its damped natural frequency over 2π.
func DominantFrequency(data []float64, sampleRate float64) float64 {
	ps := PowerSpectrum(data)
	if len(ps) < 2 {
		return 0
	}

	best, bestMag := 1, ps[1]
	for i := 2; i < len(ps); i++ {
		if ps[i] > bestMag {
			best, bestMag = i, ps[i]
		}
	}

	n := 1
	for n < len(data) {
		n *= 2
	}
	return float64(best) * sampleRate / float64(n)
}
