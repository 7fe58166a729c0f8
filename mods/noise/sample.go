package noise

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/machbase/neo-noise/mods/nums"
	"github.com/machbase/neo-noise/mods/rng"
)

// Configurable is the runtime configuration surface shared by every
// top level noise.
type Configurable interface {
	Seed() uint32
	SetSeed(seed uint32)
	Frequency() float32
	SetFrequency(frequency float32)
	Period() float32
	SetPeriod(period float32)
}

type Sampler[I nums.Vector, O any] interface {
	// Sample evaluates the noise at loc.
	Sample(loc I) O
	// SampleRaw also returns the random state left after the evaluation,
	// for callers that keep composing on top of the result.
	SampleRaw(loc I) (O, rng.Context)
}

// Dynamic is the interface form of a noise, for callers that pick
// the kind of noise at run time.
type Dynamic[I nums.Vector, O any] interface {
	Configurable
	Sampler[I, O]
}

// Noise owns a noise function together with its seed and frequency.
//
// Sampling never modifies the Noise, so a Noise may be sampled from many
// goroutines as long as nobody calls a setter at the same time.
type Noise[I nums.Vector, O any] struct {
	fn        Function[I, O]
	seed      uint32
	frequency float32
}

var _ Dynamic[mgl32.Vec2, float32] = (*Noise[mgl32.Vec2, float32])(nil)

// New wraps fn with seed 0 and frequency 1.
func New[I nums.Vector, O any](fn Function[I, O]) *Noise[I, O] {
	return &Noise[I, O]{fn: fn, frequency: 1}
}

func (n *Noise[I, O]) Function() Function[I, O] { return n.fn }

func (n *Noise[I, O]) Seed() uint32 { return n.seed }

func (n *Noise[I, O]) SetSeed(seed uint32) { n.seed = seed }

func (n *Noise[I, O]) Frequency() float32 { return n.frequency }

func (n *Noise[I, O]) SetFrequency(frequency float32) { n.frequency = frequency }

// Period is the reciprocal of the frequency.
func (n *Noise[I, O]) Period() float32 { return 1 / n.frequency }

func (n *Noise[I, O]) SetPeriod(period float32) { n.frequency = 1 / period }

func (n *Noise[I, O]) SampleRaw(loc I) (O, rng.Context) {
	seeds := rng.NewContext(n.seed)
	ret := n.fn.Evaluate(nums.VecScale(loc, n.frequency), &seeds)
	return ret, seeds
}

func (n *Noise[I, O]) Sample(loc I) O {
	ret, _ := n.SampleRaw(loc)
	return ret
}

// Adaptive finishes the result of a Noise with an adapter that continues
// from the random state the noise left behind.
type Adaptive[I nums.Vector, O any] struct {
	Noise   *Noise[I, O]
	Adapter Function[O, O]
}

var _ Dynamic[mgl32.Vec2, float32] = (*Adaptive[mgl32.Vec2, float32])(nil)

func NewAdaptive[I nums.Vector, O any](fn Function[I, O], adapter Function[O, O]) *Adaptive[I, O] {
	return &Adaptive[I, O]{Noise: New(fn), Adapter: adapter}
}

func (a *Adaptive[I, O]) Seed() uint32                   { return a.Noise.Seed() }
func (a *Adaptive[I, O]) SetSeed(seed uint32)            { a.Noise.SetSeed(seed) }
func (a *Adaptive[I, O]) Frequency() float32             { return a.Noise.Frequency() }
func (a *Adaptive[I, O]) SetFrequency(frequency float32) { a.Noise.SetFrequency(frequency) }
func (a *Adaptive[I, O]) Period() float32                { return a.Noise.Period() }
func (a *Adaptive[I, O]) SetPeriod(period float32)       { a.Noise.SetPeriod(period) }

// SampleRaw returns the result before the adapter runs.
func (a *Adaptive[I, O]) SampleRaw(loc I) (O, rng.Context) {
	return a.Noise.SampleRaw(loc)
}

func (a *Adaptive[I, O]) Sample(loc I) O {
	ret, seeds := a.Noise.SampleRaw(loc)
	return a.Adapter.Evaluate(ret, &seeds)
}
