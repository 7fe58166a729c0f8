package cellnoise

import (
	"github.com/machbase/neo-noise/mods/cells"
	"github.com/machbase/neo-noise/mods/noise"
	"github.com/machbase/neo-noise/mods/nums"
	"github.com/machbase/neo-noise/mods/rng"
)

// A nil Blend in the types below means SimplecticBlend.

func blendOrDefault[V nums.Vector](b BlendKernel[V]) BlendKernel[V] {
	if b == nil {
		return SimplecticBlend[V]{}
	}
	return b
}

// BlendCellValues is the kernel weighted average of the values of every
// point of the cell. A sample that no point reaches is zero.
type BlendCellValues[V nums.Vector, T nums.Value] struct {
	Cells cells.Partitioner[V]
	Blend BlendKernel[V]
	Noise noise.Function[uint32, T]
}

func (b BlendCellValues[V, T]) Evaluate(loc V, seeds *rng.Context) T {
	blend := blendOrDefault(b.Blend)
	var sum T
	var total float32
	for _, p := range b.Cells.Partition(loc).Points(seeds.Rng()) {
		w := blend.Weigh(p.Offset)
		if w == 0 {
			continue
		}
		sum = nums.Add(sum, nums.Scale(b.Noise.Evaluate(p.RoughID, seeds), w))
		total += w
	}
	if total == 0 {
		return sum
	}
	return nums.Scale(sum, 1/total)
}

// BlendCellGradients sums kernel weighted gradient dot products. On a
// simplex grid this is simplex noise, in (-1, 1).
type BlendCellGradients[V nums.Vector] struct {
	Cells     cells.Partitioner[V]
	Blend     BlendKernel[V]
	Gradients GradientGenerator[V]
}

func (b BlendCellGradients[V]) Evaluate(loc V, seeds *rng.Context) float32 {
	blend := blendOrDefault(b.Blend)
	gradients := gradientsOrDefault(b.Gradients)
	var sum float32
	for _, p := range b.Cells.Partition(loc).Points(seeds.Rng()) {
		w := blend.Weigh(p.Offset)
		if w == 0 {
			continue
		}
		sum += w * gradients.GradientDot(p.RoughID, p.Offset)
	}
	return sum * blend.Counteract()
}

type BlendCellGradientsWithGradient[V nums.Vector] struct {
	Cells     cells.Partitioner[V]
	Blend     BlendKernel[V]
	Gradients GradientGenerator[V]
}

func (b BlendCellGradientsWithGradient[V]) Evaluate(loc V, seeds *rng.Context) noise.WithGradient[V] {
	blend := blendOrDefault(b.Blend)
	gradients := gradientsOrDefault(b.Gradients)
	var sum float32
	var grad V
	for _, p := range b.Cells.Partition(loc).Points(seeds.Rng()) {
		w, dw := blend.WeighWithGradient(p.Offset)
		if w == 0 {
			continue
		}
		g := gradients.Gradient(p.RoughID)
		dot := nums.Dot(g, p.Offset)
		sum += w * dot
		// product rule, the offset moves one to one with the sample
		grad = nums.VecAdd(grad, nums.VecAdd(nums.VecScale(dw, dot), nums.VecScale(g, w)))
	}
	c := blend.Counteract()
	return noise.WithGradient[V]{Value: sum * c, Gradient: nums.VecScale(grad, c)}
}
