package cells

import (
	"github.com/machbase/neo-noise/mods/curves"
	"github.com/machbase/neo-noise/mods/noise"
	"github.com/machbase/neo-noise/mods/nums"
	"github.com/machbase/neo-noise/mods/rng"
)

// Interpolate evaluates f at every corner of cell and blends the results
// one axis at a time, weighting each axis by curve.
func Interpolate[V nums.Vector, T nums.Value](cell InterpolatableCell[V], seed rng.NoiseRng, f func(Point[V]) T, curve curves.Curve) T {
	corners := cell.Corners(seed)
	frac := cell.Fraction()
	values := make([]T, len(corners))
	for i, p := range corners {
		values[i] = f(p)
	}
	n := len(values)
	for axis := 0; n > 1; axis++ {
		t := curve.Sample(frac[axis])
		n /= 2
		for i := 0; i < n; i++ {
			values[i] = nums.Lerp(values[2*i], values[2*i+1], t)
		}
	}
	return values[0]
}

// InterpolateWithGradient is Interpolate for scalar corner values, and
// also returns the derivative of the blend along every axis.
//
// The gradient only accounts for the interpolation weights. When the
// corner values themselves vary with the sample location, as gradient
// dot products do, their own derivative has to be added by the caller.
func InterpolateWithGradient[V nums.Vector](cell InterpolatableCell[V], seed rng.NoiseRng, f func(Point[V]) float32, curve curves.Differentiable) noise.WithGradient[V] {
	corners := cell.Corners(seed)
	frac := cell.Fraction()
	values := make([]float32, len(corners))
	grads := make([]V, len(corners))
	for i, p := range corners {
		values[i] = f(p)
	}
	n := len(values)
	for axis := 0; n > 1; axis++ {
		t, dt := curve.SampleWithDerivative(frac[axis])
		n /= 2
		for i := 0; i < n; i++ {
			lo, hi := values[2*i], values[2*i+1]
			g := nums.Lerp(grads[2*i], grads[2*i+1], t)
			g[axis] += (hi - lo) * dt
			values[i] = lo + (hi-lo)*t
			grads[i] = g
		}
	}
	return noise.WithGradient[V]{Value: values[0], Gradient: grads[0]}
}
