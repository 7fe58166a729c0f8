// Package cellnoise builds noise functions out of a cell partitioner, a
// way to blend between lattice points and a per point generator.
package cellnoise

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/machbase/neo-noise/mods/nums"
	"github.com/machbase/neo-noise/mods/rng"
)

// GradientGenerator maps a lattice point id to a gradient vector.
//
// Implementations keep the sum of the absolute components of every
// gradient at or below 1. The dot product with an offset whose components
// lie in (-1, 1) then lies in (-1, 1) as well.
type GradientGenerator[V nums.Vector] interface {
	Gradient(seed uint32) V
	GradientDot(seed uint32, offset V) float32
}

// QuickGradients picks from a small table of hand picked directions.
type QuickGradients[V nums.Vector] struct{}

var (
	quickGradients2 = [8]mgl32.Vec2{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{0.5, 0.5}, {-0.5, 0.5}, {0.5, -0.5}, {-0.5, -0.5},
	}
	quickGradients3 = [16]mgl32.Vec3{
		{0.5, 0.5, 0}, {-0.5, 0.5, 0}, {0.5, -0.5, 0}, {-0.5, -0.5, 0},
		{0.5, 0, 0.5}, {-0.5, 0, 0.5}, {0.5, 0, -0.5}, {-0.5, 0, -0.5},
		{0, 0.5, 0.5}, {0, -0.5, 0.5}, {0, 0.5, -0.5}, {0, -0.5, -0.5},
		{0.5, 0.5, 0}, {-0.5, 0.5, 0}, {0, -0.5, 0.5}, {0, -0.5, -0.5},
	}
	quickGradients4 [32]mgl32.Vec4
)

func init() {
	// every direction with one zero component and three components of ±1/3
	const c = float32(1.0 / 3.0)
	n := 0
	for zero := 0; zero < 4; zero++ {
		for signs := 0; signs < 8; signs++ {
			var g mgl32.Vec4
			bit := 0
			for axis := 0; axis < 4; axis++ {
				if axis == zero {
					continue
				}
				if signs&(1<<bit) != 0 {
					g[axis] = -c
				} else {
					g[axis] = c
				}
				bit++
			}
			quickGradients4[n] = g
			n++
		}
	}
}

func (QuickGradients[V]) Gradient(seed uint32) V {
	var ret V
	switch len(ret) {
	case 2:
		g := quickGradients2[rng.TableIndex(seed, 3)]
		ret[0], ret[1] = g[0], g[1]
	case 3:
		g := quickGradients3[rng.TableIndex(seed, 4)]
		for i := 0; i < 3; i++ {
			ret[i] = g[i]
		}
	default:
		g := quickGradients4[rng.TableIndex(seed, 5)]
		for i := 0; i < len(ret); i++ {
			ret[i] = g[i]
		}
	}
	return ret
}

func (q QuickGradients[V]) GradientDot(seed uint32, offset V) float32 {
	return nums.Dot(q.Gradient(seed), offset)
}

// ElementGradients builds each component from one byte of the id.
// Cheap, but the directions bunch up toward the diagonals.
type ElementGradients[V nums.Vector] struct{}

func (ElementGradients[V]) Gradient(seed uint32) V {
	return elementGradient[V](seed, func(b uint8) float32 {
		return float32(int8(b)) * (1.0 / 128.0)
	})
}

func (e ElementGradients[V]) GradientDot(seed uint32, offset V) float32 {
	return nums.Dot(e.Gradient(seed), offset)
}

// ApproximateUniformGradients is ElementGradients with each component
// pushed toward ±0.5, which spreads the directions more evenly.
type ApproximateUniformGradients[V nums.Vector] struct{}

func (ApproximateUniformGradients[V]) Gradient(seed uint32) V {
	return elementGradient[V](seed, func(b uint8) float32 {
		unorm := float32(b>>1) * (1.0 / 128.0)
		snorm := unorm*2 - 1
		corrected := snorm*snorm*snorm*0.5 + 0.5
		sign := uint32(b&1) << 31
		return math.Float32frombits(math.Float32bits(corrected) ^ sign)
	})
}

func (a ApproximateUniformGradients[V]) GradientDot(seed uint32, offset V) float32 {
	return nums.Dot(a.Gradient(seed), offset)
}

func elementGradient[V nums.Vector](seed uint32, element func(uint8) float32) V {
	var ret V
	scale := 1 / float32(len(ret))
	for i := 0; i < len(ret); i++ {
		ret[i] = element(uint8(seed>>(24-8*i))) * scale
	}
	return ret
}

// QualityGradients spreads directions uniformly over the circle or the
// sphere. There is no 4D version.
type QualityGradients[V mgl32.Vec2 | mgl32.Vec3] struct{}

func (QualityGradients[V]) Gradient(seed uint32) V {
	var ret V
	r := rng.NoiseRng(seed)
	switch len(ret) {
	case 2:
		angle := float64(rng.UNorm(seed)) * 2 * math.Pi
		s, c := math.Sincos(angle)
		ret[0] = float32(c) * math.Sqrt2 / 2
		ret[1] = float32(s) * math.Sqrt2 / 2
	default:
		z := float64(r.RandSNorm(0))
		phi := float64(r.RandUNorm(1)) * 2 * math.Pi
		rad := math.Sqrt(1 - z*z)
		s, c := math.Sincos(phi)
		scale := 1 / math.Sqrt(3)
		comps := [3]float64{rad * c, rad * s, z}
		for i := 0; i < len(ret); i++ {
			ret[i] = float32(comps[i] * scale)
		}
	}
	return ret
}

func (q QualityGradients[V]) GradientDot(seed uint32, offset V) float32 {
	var g, o [3]float32
	gv := q.Gradient(seed)
	for i := 0; i < len(gv); i++ {
		g[i], o[i] = gv[i], offset[i]
	}
	return g[0]*o[0] + g[1]*o[1] + g[2]*o[2]
}
