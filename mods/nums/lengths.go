package nums

import "math"

// LengthMetric measures offsets between a sample and a lattice point.
//
// Ordering is a cheap monotonic stand-in for the length, good enough to
// pick the nearest points. Length turns an ordering back into a distance.
type LengthMetric interface {
	Ordering(offset [4]float32, dim int) float32
	Length(ordering float32) float32
	// MaxForElementMax is the largest length an offset can have when
	// none of its components exceeds max in magnitude.
	MaxForElementMax(max float32, dim int) float32
}

// OrderingOf returns the ordering of a vector offset under m.
func OrderingOf[V Vector](m LengthMetric, offset V) float32 {
	return m.Ordering(Components(offset), len(offset))
}

// LengthOf returns the length of a vector offset under m.
func LengthOf[V Vector](m LengthMetric, offset V) float32 {
	return m.Length(OrderingOf(m, offset))
}

type EuclideanLength struct{}

func (EuclideanLength) Ordering(o [4]float32, dim int) float32 {
	var r float32
	for i := 0; i < dim; i++ {
		r += o[i] * o[i]
	}
	return r
}

func (EuclideanLength) Length(ordering float32) float32 {
	return float32(math.Sqrt(float64(ordering)))
}

func (EuclideanLength) MaxForElementMax(max float32, dim int) float32 {
	return max * float32(math.Sqrt(float64(dim)))
}

type ManhattanLength struct{}

func (ManhattanLength) Ordering(o [4]float32, dim int) float32 {
	var r float32
	for i := 0; i < dim; i++ {
		r += abs32(o[i])
	}
	return r
}

func (ManhattanLength) Length(ordering float32) float32 { return ordering }

func (ManhattanLength) MaxForElementMax(max float32, dim int) float32 {
	return max * float32(dim)
}

type ChebyshevLength struct{}

func (ChebyshevLength) Ordering(o [4]float32, dim int) float32 {
	var r float32
	for i := 0; i < dim; i++ {
		r = max(r, abs32(o[i]))
	}
	return r
}

func (ChebyshevLength) Length(ordering float32) float32 { return ordering }

func (ChebyshevLength) MaxForElementMax(max float32, dim int) float32 { return max }

// HybridLength sums the squared euclidean and the manhattan length,
// producing rounded diamond shaped cells.
type HybridLength struct{}

func (HybridLength) Ordering(o [4]float32, dim int) float32 {
	return EuclideanLength{}.Ordering(o, dim) + ManhattanLength{}.Ordering(o, dim)
}

func (HybridLength) Length(ordering float32) float32 { return ordering }

func (HybridLength) MaxForElementMax(max float32, dim int) float32 {
	return max*max*float32(dim) + max*float32(dim)
}

// MinkowskiLength is the p-norm. P of 1 is manhattan, 2 is euclidean.
// A P less than or equal to zero is treated as 2.
type MinkowskiLength struct {
	P float32
}

func (m MinkowskiLength) p() float64 {
	if m.P <= 0 {
		return 2
	}
	return float64(m.P)
}

func (m MinkowskiLength) Ordering(o [4]float32, dim int) float32 {
	p := m.p()
	var r float64
	for i := 0; i < dim; i++ {
		r += math.Pow(math.Abs(float64(o[i])), p)
	}
	return float32(r)
}

func (m MinkowskiLength) Length(ordering float32) float32 {
	return float32(math.Pow(float64(ordering), 1/m.p()))
}

func (m MinkowskiLength) MaxForElementMax(max float32, dim int) float32 {
	return max * float32(math.Pow(float64(dim), 1/m.p()))
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
