// Package noise defines the contract shared by every noise function and
// the Noise wrapper that samples them.
package noise

import (
	"github.com/machbase/neo-noise/mods/nums"
	"github.com/machbase/neo-noise/mods/rng"
)

// Function deterministically maps an input to an output.
//
// All randomness comes from seeds, so evaluating the same input with a
// context in the same state always gives the same result.
type Function[I, O any] interface {
	Evaluate(input I, seeds *rng.Context) O
}

// Func adapts a plain function to a Function.
type Func[I, O any] func(input I, seeds *rng.Context) O

func (f Func[I, O]) Evaluate(input I, seeds *rng.Context) O {
	return f(input, seeds)
}

// Chain feeds the output of First into Second.
type Chain[I, M, O any] struct {
	First  Function[I, M]
	Second Function[M, O]
}

func (c Chain[I, M, O]) Evaluate(input I, seeds *rng.Context) O {
	return c.Second.Evaluate(c.First.Evaluate(input, seeds), seeds)
}

// Then builds a two step pipeline. Longer pipelines nest,
// Then(Then(a, b), c).
func Then[I, M, O any](first Function[I, M], second Function[M, O]) Chain[I, M, O] {
	return Chain[I, M, O]{First: first, Second: second}
}

// WithGradient is a scalar result together with its derivative along
// every input axis.
type WithGradient[V nums.Vector] struct {
	Value    float32
	Gradient V
}

// ValueOf drops the gradient.
type ValueOf[V nums.Vector] struct{}

func (ValueOf[V]) Evaluate(input WithGradient[V], _ *rng.Context) float32 {
	return input.Value
}

// GradientOf drops the value.
type GradientOf[V nums.Vector] struct{}

func (GradientOf[V]) Evaluate(input WithGradient[V], _ *rng.Context) V {
	return input.Gradient
}
