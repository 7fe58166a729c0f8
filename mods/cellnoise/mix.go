package cellnoise

import (
	"github.com/machbase/neo-noise/mods/cells"
	"github.com/machbase/neo-noise/mods/curves"
	"github.com/machbase/neo-noise/mods/noise"
	"github.com/machbase/neo-noise/mods/nums"
	"github.com/machbase/neo-noise/mods/rng"
)

// A nil Curve in the types below means curves.Smoothstep.

func curveOrDefault(c curves.Curve) curves.Curve {
	if c == nil {
		return curves.Smoothstep{}
	}
	return c
}

func differentiableOrDefault(c curves.Differentiable) curves.Differentiable {
	if c == nil {
		return curves.Smoothstep{}
	}
	return c
}

func gradientsOrDefault[V nums.Vector](g GradientGenerator[V]) GradientGenerator[V] {
	if g == nil {
		return QuickGradients[V]{}
	}
	return g
}

// MixCellValues interpolates the values of the corners of the cell, which
// is value noise on an orthogonal grid.
type MixCellValues[V nums.Vector, T nums.Value] struct {
	Cells cells.GridPartitioner[V]
	Curve curves.Curve
	Noise noise.Function[uint32, T]
}

func (m MixCellValues[V, T]) Evaluate(loc V, seeds *rng.Context) T {
	cell := m.Cells.PartitionGrid(loc)
	curve := curveOrDefault(m.Curve)
	if pre, ok := m.Noise.(rng.PreMixer[T]); ok {
		mixed := cells.Interpolate(cell, seeds.Rng(), func(p cells.Point[V]) T {
			return pre.PreMix(p.RoughID, seeds)
		}, curve)
		return pre.PostMix(mixed)
	}
	return cells.Interpolate(cell, seeds.Rng(), func(p cells.Point[V]) T {
		return m.Noise.Evaluate(p.RoughID, seeds)
	}, curve)
}

// MixCellValuesWithGradient is MixCellValues for scalar values that also
// reports the gradient.
type MixCellValuesWithGradient[V nums.Vector] struct {
	Cells cells.GridPartitioner[V]
	Curve curves.Differentiable
	Noise noise.Function[uint32, float32]
}

func (m MixCellValuesWithGradient[V]) Evaluate(loc V, seeds *rng.Context) noise.WithGradient[V] {
	cell := m.Cells.PartitionGrid(loc)
	return cells.InterpolateWithGradient(cell, seeds.Rng(), func(p cells.Point[V]) float32 {
		return m.Noise.Evaluate(p.RoughID, seeds)
	}, differentiableOrDefault(m.Curve))
}

// MixCellGradients interpolates the dot products of the corner gradients
// with the corner offsets. On an orthogonal grid this is perlin noise,
// in (-1, 1).
type MixCellGradients[V nums.Vector] struct {
	Cells     cells.GridPartitioner[V]
	Curve     curves.Curve
	Gradients GradientGenerator[V]
}

func (m MixCellGradients[V]) Evaluate(loc V, seeds *rng.Context) float32 {
	cell := m.Cells.PartitionGrid(loc)
	gradients := gradientsOrDefault(m.Gradients)
	return cells.Interpolate(cell, seeds.Rng(), func(p cells.Point[V]) float32 {
		return gradients.GradientDot(p.RoughID, p.Offset)
	}, curveOrDefault(m.Curve))
}

type MixCellGradientsWithGradient[V nums.Vector] struct {
	Cells     cells.GridPartitioner[V]
	Curve     curves.Differentiable
	Gradients GradientGenerator[V]
}

func (m MixCellGradientsWithGradient[V]) Evaluate(loc V, seeds *rng.Context) noise.WithGradient[V] {
	cell := m.Cells.PartitionGrid(loc)
	gradients := gradientsOrDefault(m.Gradients)
	curve := differentiableOrDefault(m.Curve)
	// the dot product at a corner changes with the sample by the corner's
	// gradient, so the blended gradients add to the derivative of the blend.
	blended := cells.Interpolate(cell, seeds.Rng(), func(p cells.Point[V]) V {
		return gradients.Gradient(p.RoughID)
	}, curve)
	ret := cells.InterpolateWithGradient(cell, seeds.Rng(), func(p cells.Point[V]) float32 {
		return gradients.GradientDot(p.RoughID, p.Offset)
	}, curve)
	ret.Gradient = nums.VecAdd(ret.Gradient, blended)
	return ret
}
