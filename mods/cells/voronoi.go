package cells

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/machbase/neo-noise/mods/nums"
	"github.com/machbase/neo-noise/mods/rng"
)

// Voronoi places one jittered point in every unit cell of an
// orthogonal grid.
//
// Regularity pulls the points toward the cell centers. The zero value
// jitters points across their whole cell; 1 places every point in the
// center of its cell.
//
// When Fast is set only the 3^d surrounding cells are searched, which can
// miss the true second nearest point at high jitter. Otherwise the search
// covers every cell that can hold one of the two nearest points under the
// euclidean or chebyshev metric, see SearchRadius.
type Voronoi[V nums.Vector] struct {
	Regularity float32
	Fast       bool
}

var _ Partitioner[mgl32.Vec2] = Voronoi[mgl32.Vec2]{}

func (v Voronoi[V]) jitter() float32 {
	return 1 - nums.Clamp(v.Regularity, 0, 1)
}

func (v Voronoi[V]) MaxNearestOffset() float32 {
	return 0.5 + 0.5*v.jitter()
}

func (v Voronoi[V]) MaxSecondNearestOffset() float32 {
	return 1 + 0.5*v.jitter()
}

// SearchRadius is how many cells around the sample's own cell are
// searched along every axis.
//
// A sample in cell c always has its second nearest point within
// B = sqrt((1+j/2)² + (d-1)(1/2+j/2)²) for jitter j. The closest a point
// in ring k can get is k - 1/2 - j/2 along one axis, so rings beyond
// ceil(B - 1/2 + j/2) can not contribute. At full jitter that is 2 in 2D
// (a 5×5 block) and 3 in 3D and 4D. Without jitter it is 1 everywhere.
func (v Voronoi[V]) SearchRadius() int {
	if v.Fast {
		return 1
	}
	j := float64(v.jitter())
	d := float64(nums.Dim[V]())
	b := math.Sqrt((1+0.5*j)*(1+0.5*j) + (d-1)*(0.5+0.5*j)*(0.5+0.5*j))
	r := int(math.Ceil(b - 0.5 + 0.5*j - 1e-6))
	return max(r, 1)
}

func (v Voronoi[V]) Partition(loc V) Cell[V] {
	lattice, frac := nums.Floor(loc)
	return &VoronoiCell[V]{
		lattice: lattice,
		frac:    frac,
		jitter:  v.jitter(),
		radius:  v.SearchRadius(),
	}
}

type VoronoiCell[V nums.Vector] struct {
	lattice [4]int32
	frac    V
	jitter  float32
	radius  int
}

func (c *VoronoiCell[V]) RoughID(seed rng.NoiseRng) uint32 {
	return pointID(seed, c.lattice, len(c.frac))
}

// Points lists the jittered points of all cells within the search radius.
func (c *VoronoiCell[V]) Points(seed rng.NoiseRng) []Point[V] {
	dim := len(c.frac)
	side := 2*c.radius + 1
	count := 1
	for i := 0; i < dim; i++ {
		count *= side
	}
	ret := make([]Point[V], count)
	for n := range ret {
		lattice := c.lattice
		var rel V
		idx := n
		for axis := 0; axis < dim; axis++ {
			step := idx%side - c.radius
			idx /= side
			lattice[axis] += int32(step)
			rel[axis] = float32(step)
		}
		id := pointID(seed, lattice, dim)
		ret[n] = Point[V]{RoughID: id, Offset: nums.VecSub(c.frac, c.place(id, rel))}
	}
	return ret
}

// place returns where the point with the given id sits, relative to the
// origin of the sample's cell.
func (c *VoronoiCell[V]) place(id uint32, rel V) V {
	r := rng.NoiseRng(id)
	for axis := 0; axis < len(rel); axis++ {
		u := r.RandUNorm(uint32(axis))
		rel[axis] += 0.5 + (u-0.5)*c.jitter
	}
	return rel
}
