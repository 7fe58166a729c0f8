package adapters_test

import (
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/machbase/neo-noise/mods/adapters"
	"github.com/machbase/neo-noise/mods/cellnoise"
	"github.com/machbase/neo-noise/mods/cells"
	"github.com/machbase/neo-noise/mods/curves"
	"github.com/machbase/neo-noise/mods/noise"
	"github.com/machbase/neo-noise/mods/rng"
	"github.com/stretchr/testify/require"
)

func eval[I, O any](fn noise.Function[I, O], v I) O {
	ctx := rng.NewContext(0)
	return fn.Evaluate(v, &ctx)
}

func TestPointwise(t *testing.T) {
	tests := []struct {
		name   string
		fn     noise.Function[float32, float32]
		input  float32
		expect float32
	}{
		{"snorm-to-unorm", adapters.SNormToUNorm[float32]{}, -1, 0},
		{"snorm-to-unorm", adapters.SNormToUNorm[float32]{}, 0, 0.5},
		{"unorm-to-snorm", adapters.UNormToSNorm[float32]{}, 0.75, 0.5},
		{"pow2", adapters.Pow2[float32]{}, -3, 9},
		{"pow3", adapters.Pow3[float32]{}, -2, -8},
		{"pow4", adapters.Pow4[float32]{}, 2, 16},
		{"powf", adapters.PowF[float32]{Exponent: 0.5}, 16, 4},
		{"approach-zero", adapters.PositiveApproachZero[float32]{}, 3, 0.25},
		{"abs", adapters.Abs[float32]{}, -0.5, 0.5},
		{"inverse", adapters.Inverse[float32]{}, 4, 0.25},
		{"reverse", adapters.ReverseUNorm[float32]{}, 0.25, 0.75},
		{"negate", adapters.Negate[float32]{}, 0.25, -0.25},
		{"billow", adapters.Billow[float32]{}, -0.75, 0.5},
		{"billow", adapters.Billow[float32]{}, 0, -1},
		{"curve", adapters.NoiseCurve[float32]{Curve: curves.Smoothstep{}}, 0.5, 0.5},
		{"curve-clamped", adapters.NoiseCurveClamped[float32]{Curve: curves.Smoothstep{}}, 2, 1},
		{"translated", adapters.Translated[float32]{By: 2}, 1, 3},
		{"scaled", adapters.Scaled[float32]{By: 3}, 2, 6},
	}
	for _, tt := range tests {
		require.InDelta(t, tt.expect, eval(tt.fn, tt.input), 1e-6, tt.name)
	}
}

func TestPointwiseVectors(t *testing.T) {
	require.Equal(t, mgl32.Vec3{0, 0.5, 1}, eval[mgl32.Vec3, mgl32.Vec3](adapters.SNormToUNorm[mgl32.Vec3]{}, mgl32.Vec3{-1, 0, 1}))
	require.Equal(t, mgl32.Vec2{4, 1}, eval[mgl32.Vec2, mgl32.Vec2](adapters.Pow2[mgl32.Vec2]{}, mgl32.Vec2{-2, 1}))
	require.Equal(t, mgl32.Vec4{1, 2, 3, 4}, eval[mgl32.Vec4, mgl32.Vec4](adapters.Abs[mgl32.Vec4]{}, mgl32.Vec4{-1, 2, -3, 4}))
	require.Equal(t, mgl32.Vec2{2, 3}, eval[mgl32.Vec2, mgl32.Vec2](adapters.Translated[mgl32.Vec2]{By: mgl32.Vec2{1, 1}}, mgl32.Vec2{1, 2}))
}

func TestPingPong(t *testing.T) {
	pp := adapters.PingPong{}
	for _, x := range []float32{-1, -0.3, 0, 0.2, 0.9, 1} {
		v := eval[float32, float32](pp, x)
		require.GreaterOrEqual(t, v, float32(0))
		require.LessOrEqual(t, v, float32(1))
	}
	require.InDelta(t, 0, eval[float32, float32](adapters.PingPong{Strength: 2}, 0), 1e-6)
	require.InDelta(t, 1, eval[float32, float32](adapters.PingPong{Strength: 2}, -0.5), 1e-6)
}

func TestConstant(t *testing.T) {
	c := adapters.Constant[mgl32.Vec2, float32]{Value: 0.3}
	require.Equal(t, float32(0.3), eval[mgl32.Vec2, float32](c, mgl32.Vec2{5, 5}))
}

func TestMasked(t *testing.T) {
	m := adapters.Masked[mgl32.Vec2, float32]{
		Noise: adapters.Constant[mgl32.Vec2, float32]{Value: 0.5},
		Mask:  adapters.Constant[mgl32.Vec2, float32]{Value: -0.5},
	}
	require.Equal(t, float32(-0.25), eval[mgl32.Vec2, float32](m, mgl32.Vec2{}))

	// the mask sees different seeds than the noise
	var seen []rng.NoiseRng
	spy := noise.Func[mgl32.Vec2, float32](func(_ mgl32.Vec2, seeds *rng.Context) float32 {
		seen = append(seen, seeds.Rng())
		return 1
	})
	eval[mgl32.Vec2, float32](adapters.Masked[mgl32.Vec2, float32]{Noise: spy, Mask: spy}, mgl32.Vec2{})
	require.Len(t, seen, 2)
	require.NotEqual(t, seen[0], seen[1])
}

func TestRandomElements(t *testing.T) {
	perlin := cellnoise.MixCellGradients[mgl32.Vec3]{Cells: cells.OrthoGrid[mgl32.Vec3]{}}
	re := noise.New[mgl32.Vec3, mgl32.Vec3](adapters.RandomElements[mgl32.Vec3]{Noise: perlin})
	re.SetSeed(17)
	loc := mgl32.Vec3{1.3, 2.6, 3.1}
	v := re.Sample(loc)
	require.Equal(t, v, re.Sample(loc))
	require.NotEqual(t, v[0], v[1])
	require.NotEqual(t, v[1], v[2])
	for i := 0; i < 3; i++ {
		require.Greater(t, v[i], float32(-1))
		require.Less(t, v[i], float32(1))
	}

	_, left := re.SampleRaw(loc)
	start := rng.NewContext(17)
	require.NotEqual(t, start.Rng(), left.Rng())
}

func TestOffset(t *testing.T) {
	shift := adapters.Constant[mgl32.Vec2, mgl32.Vec2]{Value: mgl32.Vec2{1, -1}}
	warp := noise.Then[mgl32.Vec2, mgl32.Vec2, mgl32.Vec2](
		adapters.Offset[mgl32.Vec2]{Offsetter: shift, Strength: 2},
		adapters.Translated[mgl32.Vec2]{By: mgl32.Vec2{0.5, 0.5}},
	)
	require.Equal(t, mgl32.Vec2{3.5, 0.5}, eval[mgl32.Vec2, mgl32.Vec2](warp, mgl32.Vec2{1, 2}))

	unit := adapters.Offset[mgl32.Vec2]{Offsetter: shift, Strength: 1}
	require.Equal(t, mgl32.Vec2{2, 1}, eval[mgl32.Vec2, mgl32.Vec2](unit, mgl32.Vec2{1, 2}))

	off := adapters.Offset[mgl32.Vec2]{Offsetter: shift}
	require.Equal(t, mgl32.Vec2{1, 2}, eval[mgl32.Vec2, mgl32.Vec2](off, mgl32.Vec2{1, 2}))
}

func ExamplePingPong() {
	pp := adapters.PingPong{}
	ctx := rng.NewContext(0)
	for _, x := range []float32{-1, -0.5, 0, 0.5, 1} {
		fmt.Printf("%.2f ", pp.Evaluate(x, &ctx))
	}
	fmt.Println()

	// Output:
	// 0.00 0.50 1.00 0.50 0.00
}
