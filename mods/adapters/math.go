// Package adapters holds pointwise transforms that are chained after a
// noise function, and small combinators that build noise out of other
// noise.
package adapters

import (
	"math"

	"github.com/machbase/neo-noise/mods/nums"
	"github.com/machbase/neo-noise/mods/rng"
)

// All adapters in this file map every component of a value on its own
// and ignore the random state.

type SNormToUNorm[T nums.Value] struct{}

func (SNormToUNorm[T]) Evaluate(v T, _ *rng.Context) T { return nums.Map(v, rng.SNormToUNorm) }

type UNormToSNorm[T nums.Value] struct{}

func (UNormToSNorm[T]) Evaluate(v T, _ *rng.Context) T { return nums.Map(v, rng.UNormToSNorm) }

type Pow2[T nums.Value] struct{}

func (Pow2[T]) Evaluate(v T, _ *rng.Context) T {
	return nums.Map(v, func(x float32) float32 { return x * x })
}

type Pow3[T nums.Value] struct{}

func (Pow3[T]) Evaluate(v T, _ *rng.Context) T {
	return nums.Map(v, func(x float32) float32 { return x * x * x })
}

type Pow4[T nums.Value] struct{}

func (Pow4[T]) Evaluate(v T, _ *rng.Context) T {
	return nums.Map(v, func(x float32) float32 {
		x2 := x * x
		return x2 * x2
	})
}

// PowF raises to an arbitrary Exponent. Negative bases with a fractional
// exponent give NaN.
type PowF[T nums.Value] struct {
	Exponent float32
}

func (p PowF[T]) Evaluate(v T, _ *rng.Context) T {
	return nums.Map(v, func(x float32) float32 {
		return float32(math.Pow(float64(x), float64(p.Exponent)))
	})
}

// PositiveApproachZero is 1/(x+1). It maps [0, inf) into (0, 1].
type PositiveApproachZero[T nums.Value] struct{}

func (PositiveApproachZero[T]) Evaluate(v T, _ *rng.Context) T {
	return nums.Map(v, func(x float32) float32 { return 1 / (x + 1) })
}

type Abs[T nums.Value] struct{}

func (Abs[T]) Evaluate(v T, _ *rng.Context) T {
	return nums.Map(v, func(x float32) float32 { return float32(math.Abs(float64(x))) })
}

// Inverse is 1/x.
type Inverse[T nums.Value] struct{}

func (Inverse[T]) Evaluate(v T, _ *rng.Context) T {
	return nums.Map(v, func(x float32) float32 { return 1 / x })
}

// ReverseUNorm is 1-x.
type ReverseUNorm[T nums.Value] struct{}

func (ReverseUNorm[T]) Evaluate(v T, _ *rng.Context) T {
	return nums.Map(v, func(x float32) float32 { return 1 - x })
}

type Negate[T nums.Value] struct{}

func (Negate[T]) Evaluate(v T, _ *rng.Context) T {
	return nums.Map(v, func(x float32) float32 { return -x })
}

// PingPong folds snorm values into a triangle wave in [0, 1]. Strength
// sets how many times the wave turns over the snorm range, a zero
// Strength means 1.
type PingPong struct {
	Strength float32
}

func (p PingPong) Evaluate(v float32, _ *rng.Context) float32 {
	s := p.Strength
	if s == 0 {
		s = 1
	}
	t := (v + 1) * s
	t -= float32(math.Trunc(float64(t*0.5))) * 2
	if t < 1 {
		return t
	}
	return 2 - t
}

// Billow folds snorm values to their absolute value and maps the result
// back to snorm, giving rounded hills with sharp valleys.
type Billow[T nums.Value] struct{}

func (Billow[T]) Evaluate(v T, _ *rng.Context) T {
	return nums.Map(v, func(x float32) float32 {
		return float32(math.Abs(float64(x)))*2 - 1
	})
}
