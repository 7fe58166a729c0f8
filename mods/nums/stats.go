package nums

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

type Summary struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
	P50    float64
	P90    float64
	P99    float64
}

// Summarize computes the descriptive statistics of values.
// The slice is not modified.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	ret := Summary{
		Count: len(sorted),
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
	}
	ret.Mean, ret.StdDev = stat.MeanStdDev(sorted, nil)
	if math.IsNaN(ret.StdDev) {
		ret.StdDev = 0
	}
	ret.P50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	ret.P90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	ret.P99 = stat.Quantile(0.99, stat.Empirical, sorted, nil)
	return ret
}

func Float64s(values []float32) []float64 {
	ret := make([]float64, len(values))
	for i, v := range values {
		ret[i] = float64(v)
	}
	return ret
}
