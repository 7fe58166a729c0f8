package adapters

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/machbase/neo-noise/mods/curves"
	"github.com/machbase/neo-noise/mods/noise"
	"github.com/machbase/neo-noise/mods/nums"
	"github.com/machbase/neo-noise/mods/rng"
)

var (
	_ noise.Function[float32, float32]       = NoiseCurve[float32]{}
	_ noise.Function[mgl32.Vec2, mgl32.Vec2] = RandomElements[mgl32.Vec2]{}
	_ noise.Function[mgl32.Vec2, float32]    = Masked[mgl32.Vec2, float32]{}
)

// NoiseCurve runs every component through Curve without clamping.
type NoiseCurve[T nums.Value] struct {
	Curve curves.Curve
}

func (n NoiseCurve[T]) Evaluate(v T, _ *rng.Context) T {
	return nums.Map(v, n.Curve.Sample)
}

// NoiseCurveClamped clamps every component into the curve's domain first.
type NoiseCurveClamped[T nums.Value] struct {
	Curve curves.Curve
}

func (n NoiseCurveClamped[T]) Evaluate(v T, _ *rng.Context) T {
	return nums.Map(v, func(x float32) float32 { return curves.SampleClamped(n.Curve, x) })
}

// Constant ignores its input.
type Constant[I, T any] struct {
	Value T
}

func (c Constant[I, T]) Evaluate(I, *rng.Context) T { return c.Value }

// Masked multiplies Noise by Mask, both evaluated at the same input.
// The seeds are advanced between the two so they are independent.
type Masked[I any, T nums.Value] struct {
	Noise noise.Function[I, T]
	Mask  noise.Function[I, T]
}

func (m Masked[I, T]) Evaluate(input I, seeds *rng.Context) T {
	a := m.Noise.Evaluate(input, seeds)
	seeds.ReSeed()
	b := m.Mask.Evaluate(input, seeds)
	return nums.Zip(a, b, func(x, y float32) float32 { return x * y })
}

// Translated adds By.
type Translated[T nums.Value] struct {
	By T
}

func (t Translated[T]) Evaluate(v T, _ *rng.Context) T { return nums.Add(v, t.By) }

// Scaled multiplies by By.
type Scaled[T nums.Value] struct {
	By float32
}

func (s Scaled[T]) Evaluate(v T, _ *rng.Context) T { return nums.Scale(v, s.By) }

// Offset displaces a location by Offsetter times Strength, then reseeds.
// It is a domain warp outside of a layered noise. A zero Strength returns
// the location unchanged.
type Offset[V nums.Vector] struct {
	Offsetter noise.Function[V, V]
	Strength  float32
}

func (o Offset[V]) Evaluate(loc V, seeds *rng.Context) V {
	if o.Strength == 0 {
		seeds.ReSeed()
		return loc
	}
	d := o.Offsetter.Evaluate(loc, seeds)
	seeds.ReSeed()
	return nums.VecAdd(loc, nums.VecScale(d, o.Strength))
}

// RandomElements builds a vector from independent evaluations of a
// scalar noise, one per component, reseeding after each. It is the usual
// way to get a displacement for a domain warp.
type RandomElements[V nums.Vector] struct {
	Noise noise.Function[V, float32]
}

func (r RandomElements[V]) Evaluate(loc V, seeds *rng.Context) V {
	var ret V
	for i := 0; i < len(ret); i++ {
		ret[i] = r.Noise.Evaluate(loc, seeds)
		seeds.ReSeed()
	}
	return ret
}
