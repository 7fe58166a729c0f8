package layering

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/machbase/neo-noise/mods/noise"
	"github.com/machbase/neo-noise/mods/nums"
	"github.com/machbase/neo-noise/mods/rng"
)

// Normed finishes to the weighted average of the included values.
// A sample with no total weight finishes to zero.
type Normed[T nums.Value] struct {
	total float32
}

var _ ResultContext[float32, float32] = (*Normed[float32])(nil)

func (n *Normed[T]) Clone() ResultContext[T, T] { return &Normed[T]{} }

func (n *Normed[T]) ExpectWeight(weight float32) { n.total += weight }

// TotalWeight is the weight announced by the prepare walk.
func (n *Normed[T]) TotalWeight() float32 { return n.total }

func (n *Normed[T]) StartResult() Result[T, T] {
	return &normedResult[T]{total: n.total}
}

type normedResult[T nums.Value] struct {
	total float32
	sum   T
}

func (r *normedResult[T]) Include(value T, weight float32) {
	r.sum = nums.Add(r.sum, nums.Scale(value, weight))
}

func (r *normedResult[T]) AddUnexpectedWeight(weight float32) { r.total += weight }

func (r *normedResult[T]) Finish(*rng.Context) T {
	if r.total == 0 {
		var zero T
		return zero
	}
	return nums.Scale(r.sum, 1/r.total)
}

// DerivativeContribution maps the length of the accumulated derivative
// to a factor in (0, 1] applied to the next layer.
type DerivativeContribution interface {
	Contribution(derivative float32) float32
}

// PeakDerivativeContribution is 1 / (1 + l²). Steep areas fade fast and
// the result looks eroded.
type PeakDerivativeContribution struct{}

func (PeakDerivativeContribution) Contribution(l float32) float32 { return 1 / (1 + l*l) }

// SmoothDerivativeContribution is 1 / (1 + l).
type SmoothDerivativeContribution struct{}

func (SmoothDerivativeContribution) Contribution(l float32) float32 { return 1 / (1 + l) }

const DefaultDerivativeFalloff = float32(0.25)

// NormedByDerivative is Normed for layers that report their gradient.
// Each layer adds its gradient times Falloff to a running derivative, and
// its weight is scaled by the Contribution of that derivative's length.
// Normalization still divides by the full expected weight, so steep areas
// come out flatter.
//
// A nil Contribution means PeakDerivativeContribution and a zero Falloff
// means DefaultDerivativeFalloff.
type NormedByDerivative[V nums.Vector] struct {
	Contribution DerivativeContribution
	Falloff      float32
	total        float32
}

var _ ResultContext[noise.WithGradient[mgl32.Vec2], float32] = (*NormedByDerivative[mgl32.Vec2])(nil)

func (n *NormedByDerivative[V]) Clone() ResultContext[noise.WithGradient[V], float32] {
	return &NormedByDerivative[V]{Contribution: n.Contribution, Falloff: n.Falloff}
}

func (n *NormedByDerivative[V]) ExpectWeight(weight float32) { n.total += weight }

func (n *NormedByDerivative[V]) TotalWeight() float32 { return n.total }

func (n *NormedByDerivative[V]) StartResult() Result[noise.WithGradient[V], float32] {
	contribution := n.Contribution
	if contribution == nil {
		contribution = PeakDerivativeContribution{}
	}
	falloff := n.Falloff
	if falloff == 0 {
		falloff = DefaultDerivativeFalloff
	}
	return &derivativeResult[V]{
		contribution: contribution,
		falloff:      falloff,
		total:        n.total,
	}
}

type derivativeResult[V nums.Vector] struct {
	contribution DerivativeContribution
	falloff      float32
	total        float32
	sum          float32
	derivative   V
}

func (r *derivativeResult[V]) Include(value noise.WithGradient[V], weight float32) {
	r.derivative = nums.VecAdd(r.derivative, nums.VecScale(value.Gradient, r.falloff))
	r.sum += value.Value * weight * r.contribution.Contribution(nums.Length(r.derivative))
}

func (r *derivativeResult[V]) AddUnexpectedWeight(weight float32) { r.total += weight }

func (r *derivativeResult[V]) Finish(*rng.Context) float32 {
	if r.total == 0 {
		return 0
	}
	return r.sum / r.total
}
