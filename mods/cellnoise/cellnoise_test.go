package cellnoise_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/machbase/neo-noise/mods/cellnoise"
	"github.com/machbase/neo-noise/mods/cells"
	"github.com/machbase/neo-noise/mods/curves"
	"github.com/machbase/neo-noise/mods/noise"
	"github.com/machbase/neo-noise/mods/nums"
	"github.com/machbase/neo-noise/mods/rng"
	"github.com/stretchr/testify/require"
)

func randomOffset[V nums.Vector](r *rand.Rand) V {
	var v V
	for i := 0; i < len(v); i++ {
		// (-1, 1)
		v[i] = float32(r.Float64()*1.999999 - 0.9999995)
	}
	return v
}

func checkGradientBounds[V nums.Vector](t *testing.T, name string, gen cellnoise.GradientGenerator[V]) {
	t.Helper()
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 20000; i++ {
		seed := r.Uint32()
		g := gen.Gradient(seed)
		var l1 float32
		for k := 0; k < len(g); k++ {
			l1 += float32(math.Abs(float64(g[k])))
		}
		require.LessOrEqual(t, l1, float32(1.0001), name)

		dot := gen.GradientDot(seed, randomOffset[V](r))
		require.Greater(t, dot, float32(-1), name)
		require.Less(t, dot, float32(1), name)
	}
}

func TestGradientBounds(t *testing.T) {
	checkGradientBounds(t, "quick2", cellnoise.QuickGradients[mgl32.Vec2]{})
	checkGradientBounds(t, "quick3", cellnoise.QuickGradients[mgl32.Vec3]{})
	checkGradientBounds(t, "quick4", cellnoise.QuickGradients[mgl32.Vec4]{})
	checkGradientBounds(t, "element2", cellnoise.ElementGradients[mgl32.Vec2]{})
	checkGradientBounds(t, "element4", cellnoise.ElementGradients[mgl32.Vec4]{})
	checkGradientBounds(t, "uniform3", cellnoise.ApproximateUniformGradients[mgl32.Vec3]{})
	checkGradientBounds(t, "uniform4", cellnoise.ApproximateUniformGradients[mgl32.Vec4]{})
	checkGradientBounds(t, "quality2", cellnoise.QualityGradients[mgl32.Vec2]{})
	checkGradientBounds(t, "quality3", cellnoise.QualityGradients[mgl32.Vec3]{})
}

func TestQualityGradientsAreUniformLength(t *testing.T) {
	for seed := uint32(0); seed < 1000; seed++ {
		g2 := cellnoise.QualityGradients[mgl32.Vec2]{}.Gradient(seed * 7919)
		require.InDelta(t, math.Sqrt2/2, g2.Len(), 1e-5)
		g3 := cellnoise.QualityGradients[mgl32.Vec3]{}.Gradient(seed * 7919)
		require.InDelta(t, 1/math.Sqrt(3), g3.Len(), 1e-5)
	}
}

func TestQuickGradientsUseWholeTable(t *testing.T) {
	seen := map[mgl32.Vec4]bool{}
	for i := uint32(0); i < 32; i++ {
		seen[cellnoise.QuickGradients[mgl32.Vec4]{}.Gradient(i<<27)] = true
	}
	require.Len(t, seen, 32)
}

func valueNoise() *noise.Noise[mgl32.Vec2, float32] {
	n := noise.New[mgl32.Vec2, float32](cellnoise.MixCellValues[mgl32.Vec2, float32]{
		Cells: cells.OrthoGrid[mgl32.Vec2]{},
		Noise: rng.UNormValue[float32]{},
	})
	n.SetPeriod(32)
	return n
}

func TestValueNoiseMidpoint(t *testing.T) {
	n := valueNoise()
	require.Equal(t, uint32(0), n.Seed())
	require.Equal(t, float32(1.0/32), n.Frequency())

	seeds := rng.NewContext(0)
	cell := cells.OrthoGrid[mgl32.Vec2]{}.PartitionGrid(mgl32.Vec2{0.5, 0.5})
	var corners [4]float32
	for i, p := range cell.Corners(seeds.Rng()) {
		corners[i] = rng.UNormValue[float32]{}.Evaluate(p.RoughID, &seeds)
	}
	w := curves.Smoothstep{}.Sample(0.5)
	require.Equal(t, float32(0.5), w)
	bottom := corners[0] + (corners[1]-corners[0])*w
	top := corners[2] + (corners[3]-corners[2])*w
	expect := bottom + (top-bottom)*w

	require.InDelta(t, expect, n.Sample(mgl32.Vec2{16, 16}), 1e-6)
}

func TestPreMixedValuesMatch(t *testing.T) {
	pre := noise.New[mgl32.Vec2, float32](cellnoise.MixCellValues[mgl32.Vec2, float32]{
		Cells: cells.OrthoGrid[mgl32.Vec2]{},
		Noise: rng.SNormValue[float32]{},
	})
	plain := noise.New[mgl32.Vec2, float32](cellnoise.MixCellValues[mgl32.Vec2, float32]{
		Cells: cells.OrthoGrid[mgl32.Vec2]{},
		Noise: noise.Func[uint32, float32](rng.SNormValue[float32]{}.Evaluate),
	})
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		loc := mgl32.Vec2{r.Float32() * 100, r.Float32() * 100}
		require.InDelta(t, plain.Sample(loc), pre.Sample(loc), 1e-5)
	}
}

func TestContinuityAcrossCells(t *testing.T) {
	perlin := noise.New[mgl32.Vec2, float32](cellnoise.MixCellGradients[mgl32.Vec2]{
		Cells: cells.OrthoGrid[mgl32.Vec2]{},
	})
	perlin.SetPeriod(32)
	perlin.SetSeed(7)
	values := valueNoise()
	values.SetSeed(7)

	for _, n := range []*noise.Noise[mgl32.Vec2, float32]{perlin, values} {
		a := n.Sample(mgl32.Vec2{31.9999, 10})
		b := n.Sample(mgl32.Vec2{32.0001, 10})
		require.InDelta(t, a, b, 1e-3)
	}

	simplex := noise.New[mgl32.Vec2, float32](cellnoise.BlendCellGradients[mgl32.Vec2]{
		Cells: cells.SimplexGrid[mgl32.Vec2]{},
	})
	r := rand.New(rand.NewSource(5))
	for i := 0; i < 1000; i++ {
		loc := mgl32.Vec2{r.Float32() * 50, r.Float32() * 50}
		d := mgl32.Vec2{1e-4, 1e-4}
		require.InDelta(t, simplex.Sample(loc), simplex.Sample(loc.Add(d)), 1e-2)
	}
}

func TestUNormBounds(t *testing.T) {
	unorm := func(fn noise.Function[mgl32.Vec2, float32]) noise.Function[mgl32.Vec2, float32] {
		return noise.Then[mgl32.Vec2, float32, float32](fn, noise.Func[float32, float32](func(v float32, _ *rng.Context) float32 {
			return rng.SNormToUNorm(v)
		}))
	}
	voronoi := cells.Voronoi[mgl32.Vec2]{}
	list := map[string]noise.Function[mgl32.Vec2, float32]{
		"simplex": unorm(cellnoise.BlendCellGradients[mgl32.Vec2]{Cells: cells.SimplexGrid[mgl32.Vec2]{}}),
		"perlin":  unorm(cellnoise.MixCellGradients[mgl32.Vec2]{Cells: cells.OrthoGrid[mgl32.Vec2]{}}),
		"value": cellnoise.MixCellValues[mgl32.Vec2, float32]{
			Cells: cells.OrthoGrid[mgl32.Vec2]{}, Noise: rng.UNormValue[float32]{},
		},
		"simplex-value": cellnoise.BlendCellValues[mgl32.Vec2, float32]{
			Cells: cells.SimplexGrid[mgl32.Vec2]{}, Noise: rng.UNormValue[float32]{},
		},
		"worley":      cellnoise.PerCellPointDistances[mgl32.Vec2]{Cells: voronoi},
		"worley-f2":   cellnoise.PerCellPointDistances[mgl32.Vec2]{Cells: voronoi, Mode: cellnoise.WorleySecondPointDistance{}},
		"worley-diff": cellnoise.PerCellPointDistances[mgl32.Vec2]{Cells: voronoi, Mode: cellnoise.WorleyDifference{}},
		"worley-avg":  cellnoise.PerCellPointDistances[mgl32.Vec2]{Cells: voronoi, Mode: cellnoise.WorleyAverage{}},
		"worley-prod": cellnoise.PerCellPointDistances[mgl32.Vec2]{Cells: voronoi, Mode: cellnoise.WorleyProduct{}},
		"worley-ratio": cellnoise.PerCellPointDistances[mgl32.Vec2]{Cells: voronoi, Mode: cellnoise.WorleyRatio{}},
		"worley-smooth": cellnoise.PerCellPointDistances[mgl32.Vec2]{
			Cells: voronoi, Mode: cellnoise.WorleySmoothMin{Radius: 0.1},
		},
		"worley-manhattan": cellnoise.PerCellPointDistances[mgl32.Vec2]{
			Cells: voronoi, Length: nums.ManhattanLength{},
		},
		"worley-chebyshev": cellnoise.PerCellPointDistances[mgl32.Vec2]{
			Cells: voronoi, Length: nums.ChebyshevLength{}, Mode: cellnoise.WorleySecondPointDistance{},
		},
		"edge":        cellnoise.DistanceToEdge[mgl32.Vec2]{Cells: voronoi},
		"edge-approx": cellnoise.DistanceToEdge[mgl32.Vec2]{Cells: voronoi, Approximate: true},
	}
	r := rand.New(rand.NewSource(42))
	for name, fn := range list {
		n := noise.New(fn)
		n.SetSeed(42)
		for i := 0; i < 100000; i++ {
			loc := mgl32.Vec2{r.Float32()*2000 - 1000, r.Float32()*2000 - 1000}
			v := n.Sample(loc)
			require.GreaterOrEqual(t, v, float32(0), name)
			require.LessOrEqual(t, v, float32(1), name)
		}
	}
}

func simplexExtent[V nums.Vector](r *rand.Rand) float32 {
	fn := cellnoise.BlendCellGradients[V]{Cells: cells.SimplexGrid[V]{}}
	seeds := rng.NewContext(7)
	var peak float32
	for i := 0; i < 100000; i++ {
		var loc V
		for k := 0; k < len(loc); k++ {
			loc[k] = r.Float32()*200 - 100
		}
		v := float32(math.Abs(float64(fn.Evaluate(loc, &seeds))))
		if v > peak {
			peak = v
		}
	}
	return peak
}

func TestSimplexExtent(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for name, peak := range map[string]float32{
		"2d": simplexExtent[mgl32.Vec2](r),
		"3d": simplexExtent[mgl32.Vec3](r),
		"4d": simplexExtent[mgl32.Vec4](r),
	} {
		require.Greater(t, peak, float32(0.8), name)
		require.LessOrEqual(t, peak, float32(1), name)
	}
}

func TestWorleyMonotonic(t *testing.T) {
	voronoi := cells.Voronoi[mgl32.Vec2]{}
	worley := cellnoise.PerCellPointDistances[mgl32.Vec2]{Cells: voronoi}
	seed := uint32(1234)

	nearest := func(loc mgl32.Vec2) cells.Point[mgl32.Vec2] {
		ctx := rng.NewContext(seed)
		points := voronoi.Partition(loc).Points(ctx.Rng())
		best := points[0]
		for _, p := range points[1:] {
			if nums.LengthSquared(p.Offset) < nums.LengthSquared(best.Offset) {
				best = p
			}
		}
		return best
	}

	r := rand.New(rand.NewSource(6))
	for trial := 0; trial < 100; trial++ {
		start := mgl32.Vec2{r.Float32() * 100, r.Float32() * 100}
		p := nearest(start)
		feature := start.Sub(p.Offset)
		dir, ok := nums.TryNormalize(p.Offset)
		if !ok {
			continue
		}
		prev := float32(-1)
		for k := 1; k <= 10; k++ {
			loc := feature.Add(dir.Mul(0.05 * float32(k)))
			if nearest(loc).RoughID != p.RoughID {
				break
			}
			ctx := rng.NewContext(seed)
			v := worley.Evaluate(loc, &ctx)
			require.GreaterOrEqual(t, v, prev)
			prev = v
		}
	}
}

func TestDistanceToEdge(t *testing.T) {
	grid := cells.Voronoi[mgl32.Vec2]{Regularity: 1}
	bound := float32(math.Sqrt2)
	ctx := rng.NewContext(0)
	exact := cellnoise.DistanceToEdge[mgl32.Vec2]{Cells: grid}
	approx := cellnoise.DistanceToEdge[mgl32.Vec2]{Cells: grid, Approximate: true}

	loc := mgl32.Vec2{3.9, 7.5}
	require.InDelta(t, 0.1/bound, exact.Evaluate(loc, &ctx), 1e-5)
	require.InDelta(t, 0.1/bound, approx.Evaluate(loc, &ctx), 1e-5)

	// at a corner both neighbours are equally close
	require.InDelta(t, 0.0, exact.Evaluate(mgl32.Vec2{4, 8}, &ctx), 1e-5)
	// the center is half a cell from every border
	require.InDelta(t, 0.5/bound, exact.Evaluate(mgl32.Vec2{3.5, 7.5}, &ctx), 1e-5)
}

type fixedCell struct {
	points []cells.Point[mgl32.Vec2]
}

func (c fixedCell) RoughID(rng.NoiseRng) uint32                   { return 0 }
func (c fixedCell) Points(rng.NoiseRng) []cells.Point[mgl32.Vec2] { return c.points }

type fixedCells struct {
	cell fixedCell
}

func (f fixedCells) Partition(mgl32.Vec2) cells.Cell[mgl32.Vec2] { return f.cell }
func (f fixedCells) MaxNearestOffset() float32                   { return 0.5 }
func (f fixedCells) MaxSecondNearestOffset() float32             { return float32(math.Sqrt2 / 2) }

func TestDistanceToEdgeCoincidentPoints(t *testing.T) {
	grid := fixedCells{cell: fixedCell{points: []cells.Point[mgl32.Vec2]{
		{RoughID: 1, Offset: mgl32.Vec2{0.2, 0}},
		{RoughID: 2, Offset: mgl32.Vec2{0.2, 0}},
		{RoughID: 3, Offset: mgl32.Vec2{-0.8, 0}},
	}}}
	ctx := rng.NewContext(0)
	v := cellnoise.DistanceToEdge[mgl32.Vec2]{Cells: grid}.Evaluate(mgl32.Vec2{}, &ctx)
	require.InDelta(t, 0.3, v, 1e-5)

	// nothing but coincident points has no border
	grid.cell.points = grid.cell.points[:2]
	v = cellnoise.DistanceToEdge[mgl32.Vec2]{Cells: grid}.Evaluate(mgl32.Vec2{}, &ctx)
	require.Equal(t, float32(0), v)
}

func TestPerCell(t *testing.T) {
	per := cellnoise.PerCell[mgl32.Vec2, uint32]{Cells: cells.OrthoGrid[mgl32.Vec2]{}, Noise: rng.Bits{}}
	ctx := rng.NewContext(3)
	a := per.Evaluate(mgl32.Vec2{2.1, 5.1}, &ctx)
	require.Equal(t, a, per.Evaluate(mgl32.Vec2{2.9, 5.9}, &ctx))
	require.NotEqual(t, a, per.Evaluate(mgl32.Vec2{3.1, 5.1}, &ctx))

	nearest := cellnoise.PerNearestPoint[mgl32.Vec2, uint32]{
		Cells: cells.Voronoi[mgl32.Vec2]{Regularity: 1}, Noise: rng.Bits{},
	}
	// the nearest center of (2.9, 5.1) is that of the cell at (2, 5)
	require.Equal(t, a, nearest.Evaluate(mgl32.Vec2{2.9, 5.1}, &ctx))
	require.NotEqual(t, a, nearest.Evaluate(mgl32.Vec2{3.1, 5.1}, &ctx))
}

func finiteDifference[V nums.Vector](fn func(V) float32, loc V, axis int) float32 {
	const h = 1e-3
	d := nums.VecScale(nums.Unit[V](axis), h)
	return (fn(nums.VecAdd(loc, d)) - fn(nums.VecSub(loc, d))) / (2 * h)
}

func TestGradientsMatchFiniteDifference(t *testing.T) {
	type pair struct {
		value    noise.Function[mgl32.Vec2, float32]
		gradient noise.Function[mgl32.Vec2, noise.WithGradient[mgl32.Vec2]]
	}
	ortho := cells.OrthoGrid[mgl32.Vec2]{}
	simplex := cells.SimplexGrid[mgl32.Vec2]{}
	list := map[string]pair{
		"perlin": {
			cellnoise.MixCellGradients[mgl32.Vec2]{Cells: ortho},
			cellnoise.MixCellGradientsWithGradient[mgl32.Vec2]{Cells: ortho},
		},
		"value": {
			cellnoise.MixCellValues[mgl32.Vec2, float32]{Cells: ortho, Noise: rng.SNormValue[float32]{}},
			cellnoise.MixCellValuesWithGradient[mgl32.Vec2]{Cells: ortho, Noise: rng.SNormValue[float32]{}},
		},
		"simplex": {
			cellnoise.BlendCellGradients[mgl32.Vec2]{Cells: simplex},
			cellnoise.BlendCellGradientsWithGradient[mgl32.Vec2]{Cells: simplex},
		},
		"simplex-distance": {
			cellnoise.BlendCellGradients[mgl32.Vec2]{Cells: simplex, Blend: cellnoise.DistanceBlend[mgl32.Vec2]{Radius: 0.7}},
			cellnoise.BlendCellGradientsWithGradient[mgl32.Vec2]{Cells: simplex, Blend: cellnoise.DistanceBlend[mgl32.Vec2]{Radius: 0.7}},
		},
	}
	r := rand.New(rand.NewSource(11))
	for name, p := range list {
		sample := func(loc mgl32.Vec2) float32 {
			ctx := rng.NewContext(99)
			return p.value.Evaluate(loc, &ctx)
		}
		checked := 0
		for checked < 200 {
			loc := mgl32.Vec2{r.Float32() * 16, r.Float32() * 16}
			// skip samples too close to a cell border for the difference to stay inside
			frac := loc.Sub(mgl32.Vec2{float32(math.Floor(float64(loc[0]))), float32(math.Floor(float64(loc[1])))})
			if frac[0] < 0.01 || frac[0] > 0.99 || frac[1] < 0.01 || frac[1] > 0.99 {
				continue
			}
			checked++
			ctx := rng.NewContext(99)
			g := p.gradient.Evaluate(loc, &ctx)
			require.InDelta(t, sample(loc), g.Value, 1e-5, name)
			for axis := 0; axis < 2; axis++ {
				require.InDelta(t, finiteDifference(sample, loc, axis), g.Gradient[axis], 5e-2, "%s axis %d at %v", name, axis, loc)
			}
		}
	}
}

func TestMergers(t *testing.T) {
	id := noise.Func[uint32, float32](func(id uint32, _ *rng.Context) float32 { return float32(id) })
	points := []cells.Point[mgl32.Vec2]{
		{RoughID: 0, Offset: mgl32.Vec2{1, 0}},
		{RoughID: 10, Offset: mgl32.Vec2{0, -2}},
		{RoughID: 4, Offset: mgl32.Vec2{1.5, 0}},
	}
	ctx := rng.NewContext(0)
	distance := cellnoise.PointDistance[mgl32.Vec2]{MaxExpected: 4}

	tests := []struct {
		name   string
		merger cellnoise.Merger[mgl32.Vec2, float32]
		expect float32
	}{
		{"min-point", cellnoise.MinPoint[mgl32.Vec2, float32]{Orderer: distance, Noise: id}, 0},
		{"max-point", cellnoise.MaxPoint[mgl32.Vec2, float32]{Orderer: distance, Noise: id}, 10},
		{"min-order", cellnoise.MinOrder[mgl32.Vec2]{Orderer: distance}, 0.25},
		{"max-order", cellnoise.MaxOrder[mgl32.Vec2]{Orderer: distance}, 0.5},
		{"max-value", cellnoise.MaxOrder[mgl32.Vec2]{Orderer: cellnoise.PointValue[mgl32.Vec2]{Noise: id}}, 10},
		{"manhattan", cellnoise.MaxOrder[mgl32.Vec2]{Orderer: cellnoise.PointDistance[mgl32.Vec2]{Length: nums.ManhattanLength{}}}, 2},
		// (0*1 + 10/2 + 4/1.5) / (1 + 1/2 + 1/1.5)
		{"inverse-distance", cellnoise.Weighted[mgl32.Vec2, float32]{Weigher: cellnoise.InverseDistance[mgl32.Vec2]{Power: 1}, Noise: id}, (5 + 4/1.5) / (1 + 0.5 + 1/1.5)},
	}
	for _, tt := range tests {
		require.InDelta(t, tt.expect, tt.merger.Merge(points, &ctx), 1e-4, tt.name)
		require.Equal(t, float32(0), tt.merger.Merge(nil, &ctx), tt.name)
	}
}

func TestMergedVoronoi(t *testing.T) {
	voronoi := cells.Voronoi[mgl32.Vec2]{}
	merged := func(m cellnoise.Merger[mgl32.Vec2, float32]) *noise.Noise[mgl32.Vec2, float32] {
		return noise.New[mgl32.Vec2, float32](cellnoise.Merged[mgl32.Vec2, float32]{Cells: voronoi, Merger: m})
	}
	values := rng.UNormValue[float32]{}
	nearest := noise.New[mgl32.Vec2, float32](cellnoise.PerNearestPoint[mgl32.Vec2, float32]{Cells: voronoi, Noise: values})
	minPoint := merged(cellnoise.MinPoint[mgl32.Vec2, float32]{Orderer: cellnoise.PointDistance[mgl32.Vec2]{}, Noise: values})
	lowest := merged(cellnoise.MinOrder[mgl32.Vec2]{Orderer: cellnoise.PointValue[mgl32.Vec2]{Noise: values}})
	highest := merged(cellnoise.MaxOrder[mgl32.Vec2]{Orderer: cellnoise.PointValue[mgl32.Vec2]{Noise: values}})
	shepard := merged(cellnoise.Weighted[mgl32.Vec2, float32]{Weigher: cellnoise.InverseDistance[mgl32.Vec2]{Power: 3}, Noise: values})
	f1 := merged(cellnoise.MinOrder[mgl32.Vec2]{Orderer: cellnoise.PointDistance[mgl32.Vec2]{}})

	r := rand.New(rand.NewSource(9))
	for i := 0; i < 2000; i++ {
		loc := mgl32.Vec2{r.Float32()*200 - 100, r.Float32()*200 - 100}
		require.Equal(t, nearest.Sample(loc), minPoint.Sample(loc))

		lo, hi, s := lowest.Sample(loc), highest.Sample(loc), shepard.Sample(loc)
		require.GreaterOrEqual(t, lo, float32(0))
		require.LessOrEqual(t, hi, float32(1))
		require.GreaterOrEqual(t, s, lo-1e-5)
		require.LessOrEqual(t, s, hi+1e-5)

		ctx := rng.NewContext(0)
		want := float32(math.MaxFloat32)
		for _, p := range voronoi.Partition(loc).Points(ctx.Rng()) {
			want = min(want, p.Offset.Len())
		}
		require.InDelta(t, want, f1.Sample(loc), 1e-5)
	}
}
