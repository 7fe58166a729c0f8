package cellnoise

import (
	"math"

	"github.com/machbase/neo-noise/mods/cells"
	"github.com/machbase/neo-noise/mods/noise"
	"github.com/machbase/neo-noise/mods/nums"
	"github.com/machbase/neo-noise/mods/rng"
)

// Merger reduces the lattice points of a cell to a single value.
type Merger[V nums.Vector, O any] interface {
	Merge(points []cells.Point[V], seeds *rng.Context) O
}

// Merged runs Merger over the points of the cell holding the sample.
type Merged[V nums.Vector, O any] struct {
	Cells  cells.Partitioner[V]
	Merger Merger[V, O]
}

func (m Merged[V, O]) Evaluate(loc V, seeds *rng.Context) O {
	return m.Merger.Merge(m.Cells.Partition(loc).Points(seeds.Rng()), seeds)
}

// Orderer ranks lattice points. Order only has to be monotonic, Relative
// turns an order into the reported value.
type Orderer[V nums.Vector] interface {
	Order(p cells.Point[V], seeds *rng.Context) float32
	Relative(order float32) float32
}

// PointDistance orders points by the length of their offset and reports
// that length divided by MaxExpected. A nil Length means euclidean and a
// zero MaxExpected means 1.
type PointDistance[V nums.Vector] struct {
	Length      nums.LengthMetric
	MaxExpected float32
}

func (d PointDistance[V]) Order(p cells.Point[V], _ *rng.Context) float32 {
	return nums.OrderingOf(lengthOrDefault(d.Length), p.Offset)
}

func (d PointDistance[V]) Relative(order float32) float32 {
	l := lengthOrDefault(d.Length).Length(order)
	if d.MaxExpected == 0 {
		return l
	}
	return l / d.MaxExpected
}

// PointValue orders points by Noise evaluated at their id.
type PointValue[V nums.Vector] struct {
	Noise noise.Function[uint32, float32]
}

func (v PointValue[V]) Order(p cells.Point[V], seeds *rng.Context) float32 {
	return v.Noise.Evaluate(p.RoughID, seeds)
}

func (PointValue[V]) Relative(order float32) float32 { return order }

// MinPoint evaluates Noise at the id of the lowest ordered point.
type MinPoint[V nums.Vector, T any] struct {
	Orderer Orderer[V]
	Noise   noise.Function[uint32, T]
}

func (m MinPoint[V, T]) Merge(points []cells.Point[V], seeds *rng.Context) T {
	i := pick(points, m.Orderer, seeds, func(a, b float32) bool { return a < b })
	if i < 0 {
		var zero T
		return zero
	}
	return m.Noise.Evaluate(points[i].RoughID, seeds)
}

// MaxPoint evaluates Noise at the id of the highest ordered point.
type MaxPoint[V nums.Vector, T any] struct {
	Orderer Orderer[V]
	Noise   noise.Function[uint32, T]
}

func (m MaxPoint[V, T]) Merge(points []cells.Point[V], seeds *rng.Context) T {
	i := pick(points, m.Orderer, seeds, func(a, b float32) bool { return a > b })
	if i < 0 {
		var zero T
		return zero
	}
	return m.Noise.Evaluate(points[i].RoughID, seeds)
}

// MinOrder reports the lowest order among the points.
type MinOrder[V nums.Vector] struct {
	Orderer Orderer[V]
}

func (m MinOrder[V]) Merge(points []cells.Point[V], seeds *rng.Context) float32 {
	return orderOf(points, m.Orderer, seeds, func(a, b float32) bool { return a < b })
}

// MaxOrder reports the highest order among the points.
type MaxOrder[V nums.Vector] struct {
	Orderer Orderer[V]
}

func (m MaxOrder[V]) Merge(points []cells.Point[V], seeds *rng.Context) float32 {
	return orderOf(points, m.Orderer, seeds, func(a, b float32) bool { return a > b })
}

func pick[V nums.Vector](points []cells.Point[V], o Orderer[V], seeds *rng.Context, better func(a, b float32) bool) int {
	best := -1
	var bestOrder float32
	for i, p := range points {
		order := o.Order(p, seeds)
		if best < 0 || better(order, bestOrder) {
			best, bestOrder = i, order
		}
	}
	return best
}

func orderOf[V nums.Vector](points []cells.Point[V], o Orderer[V], seeds *rng.Context, better func(a, b float32) bool) float32 {
	i := pick(points, o, seeds, better)
	if i < 0 {
		return 0
	}
	return o.Relative(o.Order(points[i], seeds))
}

// Weigher gives a lattice point a non negative weight.
type Weigher[V nums.Vector] interface {
	Weight(p cells.Point[V], seeds *rng.Context) float32
}

// InverseDistance weighs a point by 1 / length^Power, which makes
// Weighted an inverse distance (Shepard) interpolation. A nil Length
// means euclidean and a zero Power means 2.
type InverseDistance[V nums.Vector] struct {
	Length nums.LengthMetric
	Power  float32
}

// keeps a sample that sits on a lattice point finite
const inverseDistanceEpsilon = 1e-6

func (d InverseDistance[V]) Weight(p cells.Point[V], _ *rng.Context) float32 {
	power := d.Power
	if power == 0 {
		power = 2
	}
	l := nums.LengthOf(lengthOrDefault(d.Length), p.Offset)
	return 1 / (float32(math.Pow(float64(l), float64(power))) + inverseDistanceEpsilon)
}

// Weighted averages Noise at every point id by the point weights. Points
// with no total weight merge to zero.
type Weighted[V nums.Vector, T nums.Value] struct {
	Weigher Weigher[V]
	Noise   noise.Function[uint32, T]
}

func (w Weighted[V, T]) Merge(points []cells.Point[V], seeds *rng.Context) T {
	var sum T
	var total float32
	for _, p := range points {
		weight := w.Weigher.Weight(p, seeds)
		if weight == 0 {
			continue
		}
		sum = nums.Add(sum, nums.Scale(w.Noise.Evaluate(p.RoughID, seeds), weight))
		total += weight
	}
	if total == 0 {
		var zero T
		return zero
	}
	return nums.Scale(sum, 1/total)
}
