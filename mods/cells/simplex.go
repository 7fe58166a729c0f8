package cells

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/machbase/neo-noise/mods/nums"
	"github.com/machbase/neo-noise/mods/rng"
)

// SimplexGrid splits space into simplices, triangles in 2D and
// tetrahedra in 3D, found by skewing the grid along its main diagonal.
type SimplexGrid[V nums.Vector] struct{}

var _ Partitioner[mgl32.Vec3] = SimplexGrid[mgl32.Vec3]{}

// skew and unskew factors, indexed by dimension.
//
//	F = (sqrt(d+1) - 1) / d
//	G = (1 - 1/sqrt(d+1)) / d
var (
	skewFactor   [5]float32
	unskewFactor [5]float32
)

func init() {
	for d := 2; d <= 4; d++ {
		s := math.Sqrt(float64(d + 1))
		skewFactor[d] = float32((s - 1) / float64(d))
		unskewFactor[d] = float32((1 - 1/s) / float64(d))
	}
}

func (SimplexGrid[V]) Partition(loc V) Cell[V] {
	dim := len(loc)
	f, g := skewFactor[dim], unskewFactor[dim]

	var sum float32
	for i := 0; i < dim; i++ {
		sum += loc[i]
	}
	skew := sum * f
	var base [4]int32
	var baseSum float32
	for i := 0; i < dim; i++ {
		b := float32(math.Floor(float64(loc[i] + skew)))
		base[i] = int32(b)
		baseSum += b
	}
	unskew := baseSum * g
	var origin V
	for i := 0; i < dim; i++ {
		origin[i] = loc[i] - (float32(base[i]) - unskew)
	}

	// walk the axes from the largest offset to the smallest
	order := [4]int{0, 1, 2, 3}
	sort.SliceStable(order[:dim], func(a, b int) bool {
		return origin[order[a]] > origin[order[b]]
	})
	return &SimplexCell[V]{base: base, origin: origin, order: order}
}

// Largest offsets to the nearest and second nearest corner of a simplex,
// per dimension.
var simplexMaxOffsets = [5][2]float32{
	2: {0.4714, 0.8165},
	3: {0.6124, 0.8660},
	4: {0.7071, 1.0},
}

func (SimplexGrid[V]) MaxNearestOffset() float32 {
	return simplexMaxOffsets[nums.Dim[V]()][0]
}

func (SimplexGrid[V]) MaxSecondNearestOffset() float32 {
	return simplexMaxOffsets[nums.Dim[V]()][1]
}

type SimplexCell[V nums.Vector] struct {
	base   [4]int32
	origin V
	order  [4]int
}

func (c *SimplexCell[V]) RoughID(seed rng.NoiseRng) uint32 {
	dim := len(c.origin)
	h := rng.CollapseN(c.base, dim)
	for i := 0; i < dim; i++ {
		h = h*31 + uint32(c.order[i])
	}
	return seed.RandU32(h)
}

// Points returns the d+1 corners of the simplex.
func (c *SimplexCell[V]) Points(seed rng.NoiseRng) []Point[V] {
	dim := len(c.origin)
	g := unskewFactor[dim]
	ret := make([]Point[V], dim+1)
	lattice := c.base
	offset := c.origin
	ret[0] = Point[V]{RoughID: pointID(seed, lattice, dim), Offset: offset}
	for k := 1; k <= dim; k++ {
		axis := c.order[k-1]
		lattice[axis]++
		offset[axis] -= 1
		corner := offset
		for i := 0; i < dim; i++ {
			corner[i] += float32(k) * g
		}
		ret[k] = Point[V]{RoughID: pointID(seed, lattice, dim), Offset: corner}
	}
	return ret
}
