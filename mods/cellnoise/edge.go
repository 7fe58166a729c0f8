package cellnoise

import (
	"math"

	"github.com/machbase/neo-noise/mods/cells"
	"github.com/machbase/neo-noise/mods/nums"
	"github.com/machbase/neo-noise/mods/rng"
)

// DistanceToEdge is the euclidean distance from the sample to the border
// of its Voronoi cell, scaled into [0, 1] by the second nearest bound.
//
// The exact form measures the distance to every bisector between the
// nearest point and another point. Approximate uses (f2 - f1) / 2, which
// is exact only where the border is perpendicular to the line between
// the two nearest points.
type DistanceToEdge[V nums.Vector] struct {
	Cells       cells.Partitioner[V]
	Approximate bool
}

func (d DistanceToEdge[V]) Evaluate(loc V, seeds *rng.Context) float32 {
	points := d.Cells.Partition(loc).Points(seeds.Rng())
	bound := nums.EuclideanLength{}.MaxForElementMax(d.Cells.MaxSecondNearestOffset(), nums.Dim[V]())
	if len(points) < 2 {
		return 0
	}

	nearest, second := -1, -1
	for i, p := range points {
		l := nums.LengthSquared(p.Offset)
		if nearest < 0 || l < nums.LengthSquared(points[nearest].Offset) {
			nearest, second = i, nearest
		} else if second < 0 || l < nums.LengthSquared(points[second].Offset) {
			second = i
		}
	}
	o1 := points[nearest].Offset
	l1 := nums.LengthSquared(o1)

	if d.Approximate {
		f1 := float32(math.Sqrt(float64(l1)))
		f2 := nums.Length(points[second].Offset)
		return nums.Clamp((f2-f1)/2/bound, 0, 1)
	}

	best := float32(math.MaxFloat32)
	for i, p := range points {
		if i == nearest {
			continue
		}
		// distance from the sample to the bisector of the two points,
		// measured along the line joining them
		dir, ok := nums.TryNormalize(nums.VecSub(p.Offset, o1))
		if !ok {
			continue
		}
		mid := nums.VecScale(nums.VecAdd(o1, p.Offset), 0.5)
		best = min(best, nums.Dot(mid, dir))
	}
	if best == math.MaxFloat32 {
		return 0
	}
	return nums.Clamp(best/bound, 0, 1)
}
