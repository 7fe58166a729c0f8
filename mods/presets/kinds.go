// Package presets names ready made 2D noise configurations so that the
// kind of noise can be chosen at run time, from flags or recipe files.
package presets

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/machbase/neo-noise/mods/adapters"
	"github.com/machbase/neo-noise/mods/cellnoise"
	"github.com/machbase/neo-noise/mods/cells"
	"github.com/machbase/neo-noise/mods/curves"
	"github.com/machbase/neo-noise/mods/layering"
	"github.com/machbase/neo-noise/mods/noise"
	"github.com/machbase/neo-noise/mods/nums"
	"github.com/machbase/neo-noise/mods/rng"
)

var (
	ErrUnknownKind   = errors.New("unknown noise kind")
	ErrUnknownRecipe = errors.New("unknown recipe")
)

type (
	vec  = mgl32.Vec2
	fn2d = noise.Function[vec, float32]
)

type Kind struct {
	Name        string
	Description string
	build       func(r Recipe) fn2d
}

// Kinds lists every preset in a stable order.
func Kinds() []Kind {
	return kinds
}

func LookupKind(name string) (Kind, error) {
	for _, k := range kinds {
		if k.Name == name {
			return k, nil
		}
	}
	return Kind{}, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

var kinds = []Kind{
	{"white", "one random value per grid cell", func(Recipe) fn2d {
		return cellnoise.PerCell[vec, float32]{Cells: cells.OrthoGrid[vec]{}, Noise: rng.UNormValue[float32]{}}
	}},
	{"simplex-white", "one random value per simplex", func(Recipe) fn2d {
		return cellnoise.PerCell[vec, float32]{Cells: cells.SimplexGrid[vec]{}, Noise: rng.UNormValue[float32]{}}
	}},
	{"hexagonal", "value of the nearest simplex corner", func(Recipe) fn2d {
		return cellnoise.PerNearestPoint[vec, float32]{Cells: cells.SimplexGrid[vec]{}, Noise: rng.UNormValue[float32]{}}
	}},
	{"value", "linearly interpolated value noise", func(Recipe) fn2d {
		return cellnoise.MixCellValues[vec, float32]{Cells: cells.OrthoGrid[vec]{}, Curve: curves.Linear{}, Noise: rng.UNormValue[float32]{}}
	}},
	{"smooth-value", "smoothstep interpolated value noise", func(Recipe) fn2d {
		return cellnoise.MixCellValues[vec, float32]{Cells: cells.OrthoGrid[vec]{}, Noise: rng.UNormValue[float32]{}}
	}},
	{"simplex-value", "simplex blended value noise", func(Recipe) fn2d {
		return cellnoise.BlendCellValues[vec, float32]{Cells: cells.SimplexGrid[vec]{}, Noise: rng.UNormValue[float32]{}}
	}},
	{"perlin", "perlin noise", func(Recipe) fn2d {
		return unorm(perlin())
	}},
	{"perlin-quality", "perlin noise with uniformly spread gradients", func(Recipe) fn2d {
		return unorm(cellnoise.MixCellGradients[vec]{Cells: cells.OrthoGrid[vec]{}, Gradients: cellnoise.QualityGradients[vec]{}})
	}},
	{"simplex", "simplex noise", func(Recipe) fn2d {
		return unorm(simplex())
	}},
	{"fractal-perlin", "fractal sum of perlin octaves", func(r Recipe) fn2d {
		return unorm(fractal(r, perlin()))
	}},
	{"fractal-simplex", "fractal sum of simplex octaves", func(r Recipe) fn2d {
		return unorm(fractal(r, simplex()))
	}},
	{"warped-fractal-perlin", "fractal perlin, every octave domain warped", func(r Recipe) fn2d {
		return unorm(warpedFractal(r, perlin()))
	}},
	{"warped-fractal-simplex", "fractal simplex, every octave domain warped", func(r Recipe) fn2d {
		return unorm(warpedFractal(r, simplex()))
	}},
	{"warped-perlin", "perlin noise sampled at a simplex displaced location", func(r Recipe) fn2d {
		offset := adapters.Offset[vec]{Offsetter: adapters.RandomElements[vec]{Noise: simplex()}, Strength: r.WarpStrength}
		return unorm(noise.Then[vec, vec, float32](offset, perlin()))
	}},
	{"billow", "billowed fractal simplex", func(r Recipe) fn2d {
		return adapters.NewPipeline[vec, float32](fractal(r, simplex())).
			Then(adapters.Billow[float32]{}).
			UNorm().
			Function()
	}},
	{"ridged", "ping pong folded fractal perlin", func(r Recipe) fn2d {
		return noise.Then[vec, float32, float32](fractal(r, perlin()), adapters.PingPong{Strength: 2})
	}},
	{"eroded-perlin", "fractal perlin attenuated by its derivative", func(r Recipe) fn2d {
		fn := layering.NewDerivativeBuilder[vec](r.Persistence).
			Fractal(cellnoise.MixCellGradientsWithGradient[vec]{Cells: cells.OrthoGrid[vec]{}}, r.Lacunarity, r.Octaves).
			Build()
		return unorm(fn)
	}},
	{"fast-cellular", "value of the nearest voronoi point, 3x3 search", func(r Recipe) fn2d {
		return cellnoise.PerNearestPoint[vec, float32]{Cells: voronoi(r, true), Noise: rng.UNormValue[float32]{}}
	}},
	{"full-cellular", "value of the nearest voronoi point", func(r Recipe) fn2d {
		return cellnoise.PerNearestPoint[vec, float32]{Cells: voronoi(r, false), Noise: rng.UNormValue[float32]{}}
	}},
	{"worley", "distance to the nearest voronoi point", func(r Recipe) fn2d {
		return cellnoise.PerCellPointDistances[vec]{Cells: voronoi(r, false)}
	}},
	{"smooth-worley", "worley with rounded creases", func(r Recipe) fn2d {
		return cellnoise.PerCellPointDistances[vec]{Cells: voronoi(r, false), Mode: cellnoise.WorleySmoothMin{Radius: 0.25}}
	}},
	{"worley-difference", "second minus first voronoi distance", func(r Recipe) fn2d {
		return cellnoise.PerCellPointDistances[vec]{Cells: voronoi(r, false), Mode: cellnoise.WorleyDifference{}}
	}},
	{"worley-ratio", "first over second voronoi distance", func(r Recipe) fn2d {
		return cellnoise.PerCellPointDistances[vec]{Cells: voronoi(r, false), Mode: cellnoise.WorleyRatio{}}
	}},
	{"worley-edge", "distance to the voronoi cell border", func(r Recipe) fn2d {
		return cellnoise.DistanceToEdge[vec]{Cells: voronoi(r, false)}
	}},
	{"wacky-worley", "chebyshev worley, average of two distances", func(r Recipe) fn2d {
		return cellnoise.PerCellPointDistances[vec]{Cells: voronoi(r, false), Length: nums.ChebyshevLength{}, Mode: cellnoise.WorleyAverage{}}
	}},
	{"masked-worley", "worley masked by perlin", func(r Recipe) fn2d {
		return adapters.NewPipeline[vec, float32](cellnoise.PerCellPointDistances[vec]{Cells: voronoi(r, false)}).
			Mask(unorm(perlin())).
			Function()
	}},
	{"blend-voronoi", "voronoi values blended by the simplectic kernel", func(r Recipe) fn2d {
		return cellnoise.BlendCellValues[vec, float32]{Cells: voronoi(r, false), Noise: rng.UNormValue[float32]{}}
	}},
	{"blend-voronoi-distance", "voronoi values blended by distance", func(r Recipe) fn2d {
		return cellnoise.BlendCellValues[vec, float32]{Cells: voronoi(r, false), Blend: cellnoise.DistanceBlend[vec]{Radius: 1}, Noise: rng.UNormValue[float32]{}}
	}},
	{"blend-voronoi-gradient", "voronoi gradients blended by the simplectic kernel", func(r Recipe) fn2d {
		return unorm(cellnoise.BlendCellGradients[vec]{Cells: voronoi(r, false)})
	}},
	{"shepard-voronoi", "voronoi values by inverse distance weighting", func(r Recipe) fn2d {
		return cellnoise.Merged[vec, float32]{
			Cells: voronoi(r, false),
			Merger: cellnoise.Weighted[vec, float32]{
				Weigher: cellnoise.InverseDistance[vec]{Power: 3},
				Noise:   rng.UNormValue[float32]{},
			},
		}
	}},
	{"voronoi-peak", "highest value among the nearby voronoi points", func(r Recipe) fn2d {
		return cellnoise.Merged[vec, float32]{
			Cells:  voronoi(r, true),
			Merger: cellnoise.MaxOrder[vec]{Orderer: cellnoise.PointValue[vec]{Noise: rng.UNormValue[float32]{}}},
		}
	}},
}

func unorm(fn fn2d) fn2d {
	return adapters.NewPipeline[vec, float32](fn).UNorm().Function()
}

func perlin() fn2d {
	return cellnoise.MixCellGradients[vec]{Cells: cells.OrthoGrid[vec]{}}
}

func simplex() fn2d {
	return cellnoise.BlendCellGradients[vec]{Cells: cells.SimplexGrid[vec]{}}
}

func voronoi(r Recipe, fast bool) cells.Voronoi[vec] {
	return cells.Voronoi[vec]{Regularity: r.Regularity, Fast: fast}
}

func fractal(r Recipe, octave fn2d) fn2d {
	return layering.NewNormedBuilder[vec, float32](r.Persistence).
		Fractal(octave, r.Lacunarity, r.Octaves).
		Build()
}

func warpedFractal(r Recipe, octave fn2d) fn2d {
	step := layering.Sequence[vec, float32, float32]{
		layering.DomainWarp[vec, float32, float32]{
			Warper:   adapters.RandomElements[vec]{Noise: octave},
			Strength: r.WarpStrength,
		},
		layering.Octave[vec, float32, float32]{Noise: octave},
	}
	return layering.NewNormedBuilder[vec, float32](r.Persistence).
		Add(layering.FractalOctaves[vec, float32, float32]{Octave: step, Lacunarity: r.Lacunarity, Octaves: r.Octaves}).
		Build()
}
