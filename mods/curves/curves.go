// Package curves contains scalar remapping functions used to shape
// interpolation weights and noise output.
package curves

import "math"

// Interval is a closed range of curve parameters.
type Interval struct {
	Start float32
	End   float32
}

var (
	Everywhere = Interval{Start: float32(math.Inf(-1)), End: float32(math.Inf(1))}
	Unit       = Interval{Start: 0, End: 1}
)

func (i Interval) Clamp(t float32) float32 {
	if t < i.Start {
		return i.Start
	}
	if t > i.End {
		return i.End
	}
	return t
}

func (i Interval) Contains(t float32) bool {
	return t >= i.Start && t <= i.End
}

type Curve interface {
	Sample(t float32) float32
	Domain() Interval
}

// Differentiable curves also know their slope.
type Differentiable interface {
	Curve
	SampleWithDerivative(t float32) (value float32, derivative float32)
}

// SampleClamped samples c after clamping t into its domain.
func SampleClamped(c Curve, t float32) float32 {
	return c.Sample(c.Domain().Clamp(t))
}

// Linear is the identity.
type Linear struct{}

func (Linear) Domain() Interval { return Everywhere }

func (Linear) Sample(t float32) float32 { return t }

func (Linear) SampleWithDerivative(t float32) (float32, float32) {
	return t, 1
}

// Smoothstep is 3t²-2t³, flat at both ends of the unit interval.
type Smoothstep struct{}

func (Smoothstep) Domain() Interval { return Unit }

func (Smoothstep) Sample(t float32) float32 {
	return t * t * (t*(-2.0) + 3.0)
}

func (Smoothstep) SampleWithDerivative(t float32) (float32, float32) {
	return t * t * (t*(-2.0) + 3.0), 6 * t * (1 - t)
}

// Smootherstep is 6t⁵-15t⁴+10t³, flat in both the first and the
// second derivative at the ends.
type Smootherstep struct{}

func (Smootherstep) Domain() Interval { return Unit }

func (Smootherstep) Sample(t float32) float32 {
	return t * t * t * (t*(t*6-15) + 10)
}

func (Smootherstep) SampleWithDerivative(t float32) (float32, float32) {
	return t * t * t * (t*(t*6-15) + 10), 30 * t * t * (t*(t-2) + 1)
}

// DoubleSmoothstep applies smoothstep twice for a sharper transition.
type DoubleSmoothstep struct{}

func (DoubleSmoothstep) Domain() Interval { return Unit }

func (DoubleSmoothstep) Sample(t float32) float32 {
	return Smoothstep{}.Sample(Smoothstep{}.Sample(t))
}

func (DoubleSmoothstep) SampleWithDerivative(t float32) (float32, float32) {
	inner, dInner := Smoothstep{}.SampleWithDerivative(t)
	outer, dOuter := Smoothstep{}.SampleWithDerivative(inner)
	return outer, dOuter * dInner
}

// SmoothMin blends the minimum of two values near where they are equal.
type SmoothMin interface {
	SMin(a, b, radius float32) float32
}

// CubicSMin equals min(a, b) once |a-b| >= 4*radius and bends it into a
// parabola closer than that. The result never drops more than radius
// below min(a, b).
type CubicSMin struct{}

func (CubicSMin) SMin(a, b, radius float32) float32 {
	if radius <= 0 {
		return min(a, b)
	}
	k := 4 * radius
	h := max(k-abs32(a-b), 0) / k
	return min(a, b) - h*h*radius
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
