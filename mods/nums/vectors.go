package nums

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vector is the set of sample locations noise can be evaluated at.
type Vector interface {
	mgl32.Vec2 | mgl32.Vec3 | mgl32.Vec4
}

// Value is the set of results a noise function can interpolate and average.
type Value interface {
	float32 | mgl32.Vec2 | mgl32.Vec3 | mgl32.Vec4
}

// Dim returns the number of components of V.
func Dim[V Vector]() int {
	var v V
	return len(v)
}

func Splat[V Vector](s float32) V {
	var v V
	for i := 0; i < len(v); i++ {
		v[i] = s
	}
	return v
}

// Unit returns the vector with 1 on the given axis and 0 elsewhere.
func Unit[V Vector](axis int) V {
	var v V
	v[axis] = 1
	return v
}

// VecAdd, VecSub, VecScale and Dot are the Vector only forms of the mgl32
// vector methods, for code that is generic over the location type.

func VecAdd[V Vector](a, b V) V { return Add(a, b) }

func VecSub[V Vector](a, b V) V { return Sub(a, b) }

func VecScale[V Vector](a V, s float32) V { return Scale(a, s) }

// VecMul multiplies a and b component by component. mgl32 has no method
// for it.
func VecMul[V Vector](a, b V) V {
	return Zip(a, b, func(x, y float32) float32 { return x * y })
}

func Dot[V Vector](a, b V) float32 {
	switch x := any(a).(type) {
	case mgl32.Vec2:
		return x.Dot(any(b).(mgl32.Vec2))
	case mgl32.Vec3:
		return x.Dot(any(b).(mgl32.Vec3))
	case mgl32.Vec4:
		return x.Dot(any(b).(mgl32.Vec4))
	}
	panic(fmt.Sprintf("invalid type: %T", a))
}

func LengthSquared[V Vector](a V) float32 {
	return Dot(a, a)
}

func Length[V Vector](a V) float32 {
	switch x := any(a).(type) {
	case mgl32.Vec2:
		return x.Len()
	case mgl32.Vec3:
		return x.Len()
	case mgl32.Vec4:
		return x.Len()
	}
	panic(fmt.Sprintf("invalid type: %T", a))
}

// TryNormalize returns the unit vector of a, false if a has zero length.
func TryNormalize[V Vector](a V) (V, bool) {
	l := Length(a)
	if l == 0 || math.IsNaN(float64(l)) || math.IsInf(float64(l), 0) {
		return a, false
	}
	return VecScale(a, 1/l), true
}

// Floor splits a into its integer lattice coordinate and the fractional remainder.
func Floor[V Vector](a V) ([4]int32, V) {
	var cell [4]int32
	var frac V
	for i := 0; i < len(a); i++ {
		f := float32(math.Floor(float64(a[i])))
		cell[i] = int32(f)
		frac[i] = a[i] - f
	}
	return cell, frac
}

func Components[V Vector](a V) [4]float32 {
	var ret [4]float32
	for i := 0; i < len(a); i++ {
		ret[i] = a[i]
	}
	return ret
}

func FromComponents[V Vector](c [4]float32) V {
	var v V
	for i := 0; i < len(v); i++ {
		v[i] = c[i]
	}
	return v
}

func Add[T Value](a, b T) T {
	switch x := any(a).(type) {
	case float32:
		return any(x + any(b).(float32)).(T)
	case mgl32.Vec2:
		return any(x.Add(any(b).(mgl32.Vec2))).(T)
	case mgl32.Vec3:
		return any(x.Add(any(b).(mgl32.Vec3))).(T)
	case mgl32.Vec4:
		return any(x.Add(any(b).(mgl32.Vec4))).(T)
	}
	panic(fmt.Sprintf("invalid type: %T", a))
}

func Sub[T Value](a, b T) T {
	switch x := any(a).(type) {
	case float32:
		return any(x - any(b).(float32)).(T)
	case mgl32.Vec2:
		return any(x.Sub(any(b).(mgl32.Vec2))).(T)
	case mgl32.Vec3:
		return any(x.Sub(any(b).(mgl32.Vec3))).(T)
	case mgl32.Vec4:
		return any(x.Sub(any(b).(mgl32.Vec4))).(T)
	}
	panic(fmt.Sprintf("invalid type: %T", a))
}

func Scale[T Value](a T, s float32) T {
	switch x := any(a).(type) {
	case float32:
		return any(x * s).(T)
	case mgl32.Vec2:
		return any(x.Mul(s)).(T)
	case mgl32.Vec3:
		return any(x.Mul(s)).(T)
	case mgl32.Vec4:
		return any(x.Mul(s)).(T)
	}
	panic(fmt.Sprintf("invalid type: %T", a))
}

// Lerp blends a toward b by t, a + (b-a)*t.
func Lerp[T Value](a, b T, t float32) T {
	return Add(a, Scale(Sub(b, a), t))
}

// Map applies fn to every component of a.
func Map[T Value](a T, fn func(float32) float32) T {
	switch x := any(a).(type) {
	case float32:
		return any(fn(x)).(T)
	case mgl32.Vec2:
		return any(mgl32.Vec2{fn(x[0]), fn(x[1])}).(T)
	case mgl32.Vec3:
		return any(mgl32.Vec3{fn(x[0]), fn(x[1]), fn(x[2])}).(T)
	case mgl32.Vec4:
		return any(mgl32.Vec4{fn(x[0]), fn(x[1]), fn(x[2]), fn(x[3])}).(T)
	}
	panic(fmt.Sprintf("invalid type: %T", a))
}

// Zip applies fn to the matching components of a and b.
func Zip[T Value](a, b T, fn func(float32, float32) float32) T {
	switch x := any(a).(type) {
	case float32:
		return any(fn(x, any(b).(float32))).(T)
	case mgl32.Vec2:
		y := any(b).(mgl32.Vec2)
		return any(mgl32.Vec2{fn(x[0], y[0]), fn(x[1], y[1])}).(T)
	case mgl32.Vec3:
		y := any(b).(mgl32.Vec3)
		return any(mgl32.Vec3{fn(x[0], y[0]), fn(x[1], y[1]), fn(x[2], y[2])}).(T)
	case mgl32.Vec4:
		y := any(b).(mgl32.Vec4)
		return any(mgl32.Vec4{fn(x[0], y[0]), fn(x[1], y[1]), fn(x[2], y[2]), fn(x[3], y[3])}).(T)
	}
	panic(fmt.Sprintf("invalid type: %T", a))
}

// ValueDim returns the number of float components a Value of type T carries.
func ValueDim[T Value]() int {
	var zero T
	switch any(zero).(type) {
	case mgl32.Vec2:
		return 2
	case mgl32.Vec3:
		return 3
	case mgl32.Vec4:
		return 4
	}
	return 1
}

// SetComponent returns a with its i-th component replaced by s.
func SetComponent[T Value](a T, i int, s float32) T {
	switch x := any(a).(type) {
	case float32:
		return any(s).(T)
	case mgl32.Vec2:
		x[i] = s
		return any(x).(T)
	case mgl32.Vec3:
		x[i] = s
		return any(x).(T)
	case mgl32.Vec4:
		x[i] = s
		return any(x).(T)
	}
	panic(fmt.Sprintf("invalid type: %T", a))
}
