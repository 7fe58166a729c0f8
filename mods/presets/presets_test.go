package presets_test

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/machbase/neo-noise/mods/presets"
	"github.com/stretchr/testify/require"
)

func recipe(kind string) presets.Recipe {
	r := presets.DefaultRecipe()
	r.Name = kind
	r.Kind = kind
	r.Period = 8
	return r
}

func TestKindsInRange(t *testing.T) {
	// blended voronoi gradients are not bounded
	unbounded := map[string]bool{"blend-voronoi-gradient": true}

	for _, k := range presets.Kinds() {
		t.Run(k.Name, func(t *testing.T) {
			n, err := presets.Build(recipe(k.Name))
			require.NoError(t, err)
			lo, hi := float32(math.MaxFloat32), float32(-math.MaxFloat32)
			for y := 0; y < 48; y++ {
				for x := 0; x < 48; x++ {
					v := n.Sample(mgl32.Vec2{float32(x) * 1.73, float32(y) * 1.31})
					require.False(t, math.IsNaN(float64(v)), "NaN at %d,%d", x, y)
					lo, hi = min(lo, v), max(hi, v)
				}
			}
			require.Less(t, lo, hi, "constant output")
			if !unbounded[k.Name] {
				require.GreaterOrEqual(t, lo, float32(-1e-4))
				require.LessOrEqual(t, hi, float32(1+1e-4))
			}
		})
	}
}

func TestLookupKind(t *testing.T) {
	k, err := presets.LookupKind("worley")
	require.NoError(t, err)
	require.Equal(t, "worley", k.Name)
	require.NotEmpty(t, k.Description)

	_, err = presets.LookupKind("plaid")
	require.True(t, errors.Is(err, presets.ErrUnknownKind))

	seen := map[string]bool{}
	for _, k := range presets.Kinds() {
		require.False(t, seen[k.Name], "duplicate kind %s", k.Name)
		seen[k.Name] = true
	}
}

func TestBuildSeedAndPeriod(t *testing.T) {
	r := recipe("fractal-simplex")
	r.Seed = 7
	a, err := presets.Build(r)
	require.NoError(t, err)
	b, err := presets.Build(r)
	require.NoError(t, err)
	require.Equal(t, uint32(7), a.Seed())
	require.InDelta(t, 8, a.Period(), 1e-5)

	loc := mgl32.Vec2{3.3, 9.1}
	require.Equal(t, a.Sample(loc), b.Sample(loc))

	b.SetSeed(8)
	require.NotEqual(t, a.Sample(loc), b.Sample(loc))
}

func TestWarpStrength(t *testing.T) {
	for _, kind := range []string{"warped-perlin", "warped-fractal-simplex"} {
		r := recipe(kind)
		r.WarpStrength = 0
		still, err := presets.Build(r)
		require.NoError(t, err)
		r.WarpStrength = 1
		warped, err := presets.Build(r)
		require.NoError(t, err)

		differ := 0
		for _, loc := range []mgl32.Vec2{{0.5, 0.5}, {3.1, 7.7}, {-12, 40.25}, {100.3, -7.9}} {
			if still.Sample(loc) != warped.Sample(loc) {
				differ++
			}
		}
		require.Greater(t, differ, 0, kind)
	}
}

func TestSNorm(t *testing.T) {
	r := recipe("perlin")
	u, err := presets.Build(r)
	require.NoError(t, err)
	r.SNorm = true
	s, err := presets.Build(r)
	require.NoError(t, err)
	for _, loc := range []mgl32.Vec2{{0.5, 0.5}, {3.1, 7.7}, {-12, 40.25}} {
		require.InDelta(t, u.Sample(loc)*2-1, s.Sample(loc), 1e-6)
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, presets.DefaultRecipe().Validate())

	tests := []struct {
		name   string
		modify func(r *presets.Recipe)
	}{
		{"unknown kind", func(r *presets.Recipe) { r.Kind = "plaid" }},
		{"zero period", func(r *presets.Recipe) { r.Period = 0 }},
		{"negative period", func(r *presets.Recipe) { r.Period = -4 }},
		{"too many octaves", func(r *presets.Recipe) { r.Octaves = presets.MaxOctaves + 1 }},
		{"negative octaves", func(r *presets.Recipe) { r.Octaves = -1 }},
		{"negative persistence", func(r *presets.Recipe) { r.Persistence = -0.5 }},
		{"regularity", func(r *presets.Recipe) { r.Regularity = 1.5 }},
	}
	for _, tt := range tests {
		r := presets.DefaultRecipe()
		tt.modify(&r)
		require.Error(t, r.Validate(), tt.name)
		_, err := presets.Build(r)
		require.Error(t, err, tt.name)
	}
}

func TestParseYAML(t *testing.T) {
	recipes, err := presets.ParseYAML([]byte(`
recipes:
  - name: hills
    kind: fractal-perlin
    period: 64
    octaves: 5
  - name: cells
    kind: worley
    seed: 3
    snorm: true
`))
	require.NoError(t, err)
	require.Len(t, recipes, 2)

	hills, err := presets.Find(recipes, "hills")
	require.NoError(t, err)
	require.Equal(t, float32(64), hills.Period)
	require.Equal(t, 5, hills.Octaves)
	require.Equal(t, float32(presets.DefaultPersistence), hills.Persistence)
	require.Equal(t, float32(presets.DefaultLacunarity), hills.Lacunarity)

	cells, err := presets.Find(recipes, "cells")
	require.NoError(t, err)
	require.Equal(t, uint32(3), cells.Seed)
	require.True(t, cells.SNorm)
	require.Equal(t, float32(presets.DefaultPeriod), cells.Period)

	_, err = presets.Find(recipes, "dunes")
	require.True(t, errors.Is(err, presets.ErrUnknownRecipe))

	_, err = presets.ParseYAML([]byte("recipes:\n  - name: x\n    kind: plaid\n"))
	require.True(t, errors.Is(err, presets.ErrUnknownKind))
}

func TestParseHCL(t *testing.T) {
	recipes, err := presets.ParseHCL([]byte(`
define "base" {
  period  = 16
  octaves = 6
}

recipe "hills" {
  kind    = "fractal-simplex"
  period  = base_period * 4
  octaves = min(base_octaves, 4)
  seed    = seedOf("hills")
}

recipe "edges" {
  kind       = "worley-edge"
  regularity = 0.25
  snorm      = true
}
`), "test.hcl")
	require.NoError(t, err)
	require.Len(t, recipes, 2)

	hills := recipes[0]
	require.Equal(t, "hills", hills.Name)
	require.Equal(t, "fractal-simplex", hills.Kind)
	require.Equal(t, float32(64), hills.Period)
	require.Equal(t, 4, hills.Octaves)
	require.NotZero(t, hills.Seed)
	require.Equal(t, float32(presets.DefaultPersistence), hills.Persistence)

	edges := recipes[1]
	require.Equal(t, float32(0.25), edges.Regularity)
	require.True(t, edges.SNorm)

	// the same name always gives the same seed
	again, err := presets.ParseHCL([]byte(`recipe "x" {
  kind = "perlin"
  seed = seedOf("hills")
}`), "again.hcl")
	require.NoError(t, err)
	require.Equal(t, hills.Seed, again[0].Seed)
}

func TestParseHCLErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", `recipe "x" {`},
		{"missing kind", `recipe "x" { period = 3 }`},
		{"unknown attribute", `recipe "x" {
  kind  = "perlin"
  color = "red"
}`},
		{"wrong type", `recipe "x" {
  kind    = "perlin"
  octaves = "many"
}`},
		{"undefined variable", `recipe "x" {
  kind   = "perlin"
  period = nowhere_period
}`},
		{"unknown kind", `recipe "x" { kind = "plaid" }`},
	}
	for _, tt := range tests {
		_, err := presets.ParseHCL([]byte(tt.content), tt.name+".hcl")
		require.Error(t, err, tt.name)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yml := filepath.Join(dir, "noise.yml")
	require.NoError(t, os.WriteFile(yml, []byte("recipes:\n  - name: a\n    kind: simplex\n"), 0o644))
	recipes, err := presets.LoadFile(yml)
	require.NoError(t, err)
	require.Equal(t, "simplex", recipes[0].Kind)

	hcl := filepath.Join(dir, "noise.hcl")
	require.NoError(t, os.WriteFile(hcl, []byte(`recipe "b" { kind = "value" }`), 0o644))
	recipes, err = presets.LoadFile(hcl)
	require.NoError(t, err)
	require.Equal(t, "value", recipes[0].Kind)

	txt := filepath.Join(dir, "noise.txt")
	require.NoError(t, os.WriteFile(txt, nil, 0o644))
	_, err = presets.LoadFile(txt)
	require.Error(t, err)

	_, err = presets.LoadFile(filepath.Join(dir, "missing.yml"))
	require.Error(t, err)
}

func BenchmarkKinds(b *testing.B) {
	for _, k := range presets.Kinds() {
		n, err := presets.Build(recipe(k.Name))
		require.NoError(b, err)
		b.Run(k.Name, func(b *testing.B) {
			var sink float32
			for i := 0; i < b.N; i++ {
				sink += n.Sample(mgl32.Vec2{float32(i%256) * 0.37, float32(i/256%256) * 0.37})
			}
			_ = sink
		})
	}
}

func ExampleBuild() {
	r := presets.DefaultRecipe()
	r.Kind = "worley-edge"
	r.Regularity = 1
	r.Period = 1

	n, err := presets.Build(r)
	if err != nil {
		panic(err)
	}
	// regular points sit in the cell centers, the border is 0.1 away
	fmt.Printf("%.3f\n", n.Sample(mgl32.Vec2{3.9, 7.5}))

	// Output:
	// 0.071
}
