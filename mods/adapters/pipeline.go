package adapters

import (
	"github.com/machbase/neo-noise/mods/noise"
	"github.com/machbase/neo-noise/mods/nums"
)

// Pipeline composes a noise function one step at a time.
//
//	n := adapters.NewPipeline[mgl32.Vec2, float32](simplex).
//		Scale(0.5).
//		UNorm().
//		Noise(7, 1.0/32)
//
// Every step returns a new Pipeline, so a partial pipeline can be shared
// as the base of several others.
type Pipeline[I nums.Vector, T nums.Value] struct {
	fn noise.Function[I, T]
}

func NewPipeline[I nums.Vector, T nums.Value](fn noise.Function[I, T]) *Pipeline[I, T] {
	return &Pipeline[I, T]{fn: fn}
}

// Pipe appends a step that changes the value type. It is a function
// because methods cannot introduce the new type.
func Pipe[I nums.Vector, T, U nums.Value](p *Pipeline[I, T], next noise.Function[T, U]) *Pipeline[I, U] {
	return &Pipeline[I, U]{fn: noise.Then[I, T, U](p.fn, next)}
}

func (p *Pipeline[I, T]) Then(next noise.Function[T, T]) *Pipeline[I, T] {
	return Pipe(p, next)
}

// Mask multiplies the pipeline so far by mask, evaluated at the same
// location with the following seed.
func (p *Pipeline[I, T]) Mask(mask noise.Function[I, T]) *Pipeline[I, T] {
	return &Pipeline[I, T]{fn: Masked[I, T]{Noise: p.fn, Mask: mask}}
}

func (p *Pipeline[I, T]) Scale(by float32) *Pipeline[I, T] {
	return p.Then(Scaled[T]{By: by})
}

// UNorm maps snorm output to [0, 1].
func (p *Pipeline[I, T]) UNorm() *Pipeline[I, T] {
	return p.Then(SNormToUNorm[T]{})
}

// SNorm maps unorm output to [-1, 1].
func (p *Pipeline[I, T]) SNorm() *Pipeline[I, T] {
	return p.Then(UNormToSNorm[T]{})
}

func (p *Pipeline[I, T]) Function() noise.Function[I, T] { return p.fn }

// Noise returns a sampler of the pipeline with the given seed and
// frequency.
func (p *Pipeline[I, T]) Noise(seed uint32, frequency float32) *noise.Noise[I, T] {
	n := noise.New[I, T](p.fn)
	n.SetSeed(seed)
	n.SetFrequency(frequency)
	return n
}
