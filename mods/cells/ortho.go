package cells

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/machbase/neo-noise/mods/nums"
	"github.com/machbase/neo-noise/mods/rng"
)

// OrthoGrid splits space into unit hypercubes at integer coordinates.
type OrthoGrid[V nums.Vector] struct{}

var _ GridPartitioner[mgl32.Vec2] = OrthoGrid[mgl32.Vec2]{}

func (g OrthoGrid[V]) Partition(loc V) Cell[V] {
	return g.PartitionGrid(loc)
}

func (OrthoGrid[V]) PartitionGrid(loc V) InterpolatableCell[V] {
	lattice, frac := nums.Floor(loc)
	return &OrthoCell[V]{lattice: lattice, frac: frac}
}

func (OrthoGrid[V]) MaxNearestOffset() float32       { return 0.5 }
func (OrthoGrid[V]) MaxSecondNearestOffset() float32 { return 1.0 }

type OrthoCell[V nums.Vector] struct {
	lattice [4]int32
	frac    V
}

func (c *OrthoCell[V]) RoughID(seed rng.NoiseRng) uint32 {
	return pointID(seed, c.lattice, len(c.frac))
}

func (c *OrthoCell[V]) Fraction() V { return c.frac }

func (c *OrthoCell[V]) Points(seed rng.NoiseRng) []Point[V] {
	return c.Corners(seed)
}

func (c *OrthoCell[V]) Corners(seed rng.NoiseRng) []Point[V] {
	dim := len(c.frac)
	ret := make([]Point[V], 1<<dim)
	for i := range ret {
		lattice := c.lattice
		offset := c.frac
		for axis := 0; axis < dim; axis++ {
			if i&(1<<axis) != 0 {
				lattice[axis]++
				offset[axis] -= 1
			}
		}
		ret[i] = Point[V]{RoughID: pointID(seed, lattice, dim), Offset: offset}
	}
	return ret
}
