// Package cells partitions continuous space into cells of nearby lattice
// points.
//
// A lattice point's id depends only on its integer lattice coordinate and
// the seed, never on the cell it was reached from. Two neighbouring cells
// therefore agree on their shared points, which keeps interpolation
// continuous across cell borders.
package cells

import (
	"github.com/machbase/neo-noise/mods/nums"
	"github.com/machbase/neo-noise/mods/rng"
)

// Point is a lattice point near a sample.
type Point[V nums.Vector] struct {
	RoughID uint32
	// Offset is the sample location minus the lattice point.
	Offset V
}

type Cell[V nums.Vector] interface {
	// RoughID identifies the cell, stable for a given location and seed.
	RoughID(seed rng.NoiseRng) uint32
	// Points lists the lattice points relevant to the cell. The count is
	// fixed per partitioner.
	Points(seed rng.NoiseRng) []Point[V]
}

// InterpolatableCell is a cell whose points are the corners of a box
// that the sample lies in.
type InterpolatableCell[V nums.Vector] interface {
	Cell[V]
	// Corners returns the 2^d corners. Bit i of the index selects the
	// upper neighbour along axis i.
	Corners(seed rng.NoiseRng) []Point[V]
	// Fraction is the position of the sample inside the box, in [0, 1).
	Fraction() V
}

type Partitioner[V nums.Vector] interface {
	Partition(loc V) Cell[V]
	// MaxNearestOffset bounds any single component of the offset to the
	// nearest point.
	MaxNearestOffset() float32
	// MaxSecondNearestOffset bounds any single component of the offset to
	// the second nearest point.
	MaxSecondNearestOffset() float32
}

// GridPartitioner is a Partitioner whose cells can be interpolated.
type GridPartitioner[V nums.Vector] interface {
	Partitioner[V]
	PartitionGrid(loc V) InterpolatableCell[V]
}

func pointID(seed rng.NoiseRng, lattice [4]int32, dim int) uint32 {
	return seed.RandU32(rng.CollapseN(lattice, dim))
}
