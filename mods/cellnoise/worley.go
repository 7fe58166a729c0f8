package cellnoise

import (
	"math"

	"github.com/machbase/neo-noise/mods/cells"
	"github.com/machbase/neo-noise/mods/curves"
	"github.com/machbase/neo-noise/mods/nums"
	"github.com/machbase/neo-noise/mods/rng"
)

// WorleyMode turns the distances to the nearest (f1) and second nearest
// (f2) points into a result in [0, 1]. max1 and max2 are the largest
// values f1 and f2 can take.
type WorleyMode interface {
	Combine(f1, f2, max1, max2 float32) float32
}

type WorleyPointDistance struct{}

func (WorleyPointDistance) Combine(f1, _, max1, _ float32) float32 { return f1 / max1 }

type WorleySecondPointDistance struct{}

func (WorleySecondPointDistance) Combine(_, f2, _, max2 float32) float32 { return f2 / max2 }

type WorleyDifference struct{}

func (WorleyDifference) Combine(f1, f2, _, max2 float32) float32 { return (f2 - f1) / max2 }

type WorleyAverage struct{}

func (WorleyAverage) Combine(f1, f2, max1, max2 float32) float32 {
	return (f1 + f2) / (max1 + max2)
}

type WorleyProduct struct{}

func (WorleyProduct) Combine(f1, f2, max1, max2 float32) float32 {
	return (f1 * f2) / (max1 * max2)
}

// WorleyRatio is f1/f2. Points of a jittered lattice never coincide,
// so f2 is never zero.
type WorleyRatio struct{}

func (WorleyRatio) Combine(f1, f2, _, _ float32) float32 { return f1 / f2 }

// WorleySmoothMin rounds the creases where two cells meet.
type WorleySmoothMin struct {
	Radius float32
}

func (w WorleySmoothMin) Combine(f1, f2, max1, _ float32) float32 {
	r := max(w.Radius, 0)
	return (curves.CubicSMin{}.SMin(f1, f2, r) + r) / (max1 + r)
}

// PerCellPointDistances is worley noise: the distances from the sample
// to its two nearest points, combined by Mode. Nil Length and Mode mean
// euclidean and WorleyPointDistance.
type PerCellPointDistances[V nums.Vector] struct {
	Cells  cells.Partitioner[V]
	Length nums.LengthMetric
	Mode   WorleyMode
}

func (w PerCellPointDistances[V]) Evaluate(loc V, seeds *rng.Context) float32 {
	length := lengthOrDefault(w.Length)
	mode := w.Mode
	if mode == nil {
		mode = WorleyPointDistance{}
	}
	o1, o2 := float32(math.MaxFloat32), float32(math.MaxFloat32)
	for _, p := range w.Cells.Partition(loc).Points(seeds.Rng()) {
		o := nums.OrderingOf(length, p.Offset)
		if o < o1 {
			o1, o2 = o, o1
		} else if o < o2 {
			o2 = o
		}
	}
	dim := nums.Dim[V]()
	max1 := length.MaxForElementMax(w.Cells.MaxNearestOffset(), dim)
	max2 := length.MaxForElementMax(w.Cells.MaxSecondNearestOffset(), dim)
	return mode.Combine(length.Length(o1), length.Length(o2), max1, max2)
}
