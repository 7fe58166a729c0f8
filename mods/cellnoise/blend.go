package cellnoise

import (
	"github.com/machbase/neo-noise/mods/nums"
)

// BlendKernel weighs a lattice point by its offset from the sample.
// Weights fall to zero at a finite radius so that far points do not
// contribute.
type BlendKernel[V nums.Vector] interface {
	Weigh(offset V) float32
	// WeighWithGradient also returns the derivative of the weight with
	// respect to the sample location.
	WeighWithGradient(offset V) (float32, V)
	// Counteract is the factor that scales a sum of weighted gradient dot
	// products back to roughly [-1, 1].
	Counteract() float32
}

// SimplecticBlend is the quartic falloff of simplex noise,
// (r² - |offset|²)⁴.
type SimplecticBlend[V nums.Vector] struct{}

// radius² and counteract factor per dimension. The factor is the
// reciprocal of the largest kernel weighted dot sum reachable with the
// QuickGradients tables, so its output peaks just under 1.
var simplecticParams = [5][2]float32{
	2: {0.5, 102.3},
	3: {0.6, 65.3},
	4: {0.6, 81.6},
}

func (SimplecticBlend[V]) Weigh(offset V) float32 {
	t := simplecticParams[len(offset)][0] - nums.LengthSquared(offset)
	if t <= 0 {
		return 0
	}
	t *= t
	return t * t
}

func (SimplecticBlend[V]) WeighWithGradient(offset V) (float32, V) {
	var zero V
	t := simplecticParams[len(offset)][0] - nums.LengthSquared(offset)
	if t <= 0 {
		return 0, zero
	}
	t2 := t * t
	// d/dx (r² - o·o)⁴ = 4t³ · (-2o)
	return t2 * t2, nums.VecScale(offset, -8*t2*t)
}

func (SimplecticBlend[V]) Counteract() float32 {
	return simplecticParams[nums.Dim[V]()][1]
}

// DistanceBlend is a smooth (1 - |offset|²/R²)³ falloff of the given
// radius. A zero Radius means 1.
type DistanceBlend[V nums.Vector] struct {
	Radius float32
}

func (d DistanceBlend[V]) radius2() float32 {
	if d.Radius <= 0 {
		return 1
	}
	return d.Radius * d.Radius
}

func (d DistanceBlend[V]) Weigh(offset V) float32 {
	t := 1 - nums.LengthSquared(offset)/d.radius2()
	if t <= 0 {
		return 0
	}
	return t * t * t
}

func (d DistanceBlend[V]) WeighWithGradient(offset V) (float32, V) {
	var zero V
	r2 := d.radius2()
	t := 1 - nums.LengthSquared(offset)/r2
	if t <= 0 {
		return 0, zero
	}
	// d/dx (1 - o·o/r²)³ = 3t² · (-2o/r²)
	return t * t * t, nums.VecScale(offset, -6*t*t/r2)
}

func (DistanceBlend[V]) Counteract() float32 { return 1 }
