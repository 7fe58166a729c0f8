package cellnoise

import (
	"github.com/machbase/neo-noise/mods/cells"
	"github.com/machbase/neo-noise/mods/noise"
	"github.com/machbase/neo-noise/mods/nums"
	"github.com/machbase/neo-noise/mods/rng"
)

// PerCell gives every cell one value, with hard edges between cells.
type PerCell[V nums.Vector, T any] struct {
	Cells cells.Partitioner[V]
	Noise noise.Function[uint32, T]
}

func (p PerCell[V, T]) Evaluate(loc V, seeds *rng.Context) T {
	id := p.Cells.Partition(loc).RoughID(seeds.Rng())
	return p.Noise.Evaluate(id, seeds)
}

// PerNearestPoint gives every sample the value of its nearest lattice
// point. On a Voronoi grid this is cellular noise, on a simplex grid it
// is hexagonal. A nil Length means euclidean.
type PerNearestPoint[V nums.Vector, T any] struct {
	Cells  cells.Partitioner[V]
	Length nums.LengthMetric
	Noise  noise.Function[uint32, T]
}

func (p PerNearestPoint[V, T]) Evaluate(loc V, seeds *rng.Context) T {
	length := lengthOrDefault(p.Length)
	var nearest uint32
	best := float32(-1)
	for _, pt := range p.Cells.Partition(loc).Points(seeds.Rng()) {
		o := nums.OrderingOf(length, pt.Offset)
		if best < 0 || o < best {
			best, nearest = o, pt.RoughID
		}
	}
	return p.Noise.Evaluate(nearest, seeds)
}

func lengthOrDefault(l nums.LengthMetric) nums.LengthMetric {
	if l == nil {
		return nums.EuclideanLength{}
	}
	return l
}
