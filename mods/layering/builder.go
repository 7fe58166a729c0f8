package layering

import (
	"github.com/machbase/neo-noise/mods/noise"
	"github.com/machbase/neo-noise/mods/nums"
)

// Builder collects operations for a LayeredNoise.
//
//	fn := layering.NewNormedBuilder[mgl32.Vec2, float32](0.5).
//		Fractal(perlin, 2, 8).
//		Build()
type Builder[I nums.Vector, T, O any] struct {
	result  ResultContext[T, O]
	weights WeightSettings
	ops     []Operation[I, T, O]
}

func NewBuilder[I nums.Vector, T, O any](result ResultContext[T, O], weights WeightSettings) *Builder[I, T, O] {
	return &Builder[I, T, O]{result: result, weights: weights}
}

// NewNormedBuilder averages layers weighted by persistence.
func NewNormedBuilder[I nums.Vector, T nums.Value](persistence float32) *Builder[I, T, T] {
	return NewBuilder[I, T, T](&Normed[T]{}, Persistence(persistence))
}

// NewDerivativeBuilder averages layers weighted by persistence and
// attenuated by their peak derivative.
func NewDerivativeBuilder[V nums.Vector](persistence float32) *Builder[V, noise.WithGradient[V], float32] {
	return NewBuilder[V, noise.WithGradient[V], float32](&NormedByDerivative[V]{}, Persistence(persistence))
}

func (b *Builder[I, T, O]) Add(op Operation[I, T, O]) *Builder[I, T, O] {
	b.ops = append(b.ops, op)
	return b
}

func (b *Builder[I, T, O]) Octave(fn noise.Function[I, T]) *Builder[I, T, O] {
	return b.Add(Octave[I, T, O]{Noise: fn})
}

func (b *Builder[I, T, O]) Fractal(fn noise.Function[I, T], lacunarity float32, octaves int) *Builder[I, T, O] {
	return b.Add(FractalOctaves[I, T, O]{
		Octave:     Octave[I, T, O]{Noise: fn},
		Lacunarity: lacunarity,
		Octaves:    octaves,
	})
}

func (b *Builder[I, T, O]) Warp(warper noise.Function[I, I], strength float32) *Builder[I, T, O] {
	return b.Add(DomainWarp[I, T, O]{Warper: warper, Strength: strength})
}

// Build prepares the collected operations. Every call returns an
// independent noise, and the Builder may keep collecting afterwards.
func (b *Builder[I, T, O]) Build() *LayeredNoise[I, T, O] {
	return New(b.result, b.weights, b.ops...)
}
