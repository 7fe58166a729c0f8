package nums

import (
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/dsp/fourier"
)

type Peak struct {
	Frequency float64
	Amplitude float64
}

// Spectrum returns the one-sided amplitude spectrum of values sampled
// every step units. The DC component is dropped.
func Spectrum(values []float64, step float64) []Peak {
	n := len(values)
	if n < 2 || step <= 0 {
		return nil
	}
	fft := fourier.NewFFT(n)
	amplifier := func(v float64) float64 {
		return v * 2.0 / float64(n)
	}
	coeff := fft.Coefficients(nil, values)
	ret := make([]Peak, 0, len(coeff))
	for i, c := range coeff {
		freq := fft.Freq(i) / step
		if freq == 0 {
			continue
		}
		ret = append(ret, Peak{Frequency: freq, Amplitude: amplifier(cmplx.Abs(c))})
	}
	return ret
}

// DominantPeaks returns the n peaks with the largest amplitude, strongest first.
func DominantPeaks(peaks []Peak, n int) []Peak {
	sorted := make([]Peak, len(peaks))
	copy(sorted, peaks)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Amplitude > sorted[j].Amplitude })
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
