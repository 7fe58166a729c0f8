// Package layering stacks noise functions into fractal layers.
//
// A LayeredNoise walks its operations twice. New walks them once to let
// every operation announce the weight it will contribute, so the result
// knows the total weight before the first sample. Evaluate walks them
// again for every sample, consuming weights in the same order.
package layering

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/machbase/neo-noise/mods/logging"
	"github.com/machbase/neo-noise/mods/noise"
	"github.com/machbase/neo-noise/mods/nums"
	"github.com/machbase/neo-noise/mods/rng"
)

// Weights yields the weight of each successive layer.
type Weights interface {
	NextWeight() float32
}

// WeightSettings starts a fresh Weights for one walk over the layers.
type WeightSettings interface {
	StartWeights() Weights
}

// Persistence weighs every layer by the previous weight times itself.
// Below 1 early layers dominate, above 1 late layers do, and 1 weighs all
// layers equally.
type Persistence float32

const (
	DefaultPersistence = Persistence(0.5)
	DefaultLacunarity  = float32(2.0)

	// weights start high so that long sums keep their precision
	persistenceStart = float32(1000)
)

func (p Persistence) StartWeights() Weights {
	return &persistenceWeights{persistence: float32(p), next: persistenceStart}
}

type persistenceWeights struct {
	persistence float32
	next        float32
}

func (w *persistenceWeights) NextWeight() float32 {
	ret := w.next
	w.next *= w.persistence
	return ret
}

// ResultContext collects the weights announced by the prepare walk and
// starts the per sample results.
type ResultContext[T, O any] interface {
	// Clone returns a context with the same settings and no announced
	// weight. New prepares a clone, so one context can seed many noises.
	Clone() ResultContext[T, O]
	ExpectWeight(weight float32)
	StartResult() Result[T, O]
}

// Result accumulates the layers of one sample.
type Result[T, O any] interface {
	// Include adds value at weight. A weight that was not announced
	// to the context must be reported with AddUnexpectedWeight as well.
	Include(value T, weight float32)
	AddUnexpectedWeight(weight float32)
	Finish(seeds *rng.Context) O
}

// Operation is one step of a layered noise.
type Operation[I nums.Vector, T, O any] interface {
	// Prepare announces the weights Apply will consume.
	Prepare(ctx ResultContext[T, O], weights Weights)
	// Apply performs the step on the working location loc, adding any
	// output to result.
	Apply(seeds *rng.Context, loc *I, result Result[T, O], weights Weights)
}

// Octave adds the value of Noise at the working location, then reseeds
// so the next layer is independent.
type Octave[I nums.Vector, T, O any] struct {
	Noise noise.Function[I, T]
}

func (o Octave[I, T, O]) Prepare(ctx ResultContext[T, O], weights Weights) {
	ctx.ExpectWeight(weights.NextWeight())
}

func (o Octave[I, T, O]) Apply(seeds *rng.Context, loc *I, result Result[T, O], weights Weights) {
	value := o.Noise.Evaluate(*loc, seeds)
	result.Include(value, weights.NextWeight())
	seeds.ReSeed()
}

// FractalOctaves repeats Octave, multiplying the working location by
// Lacunarity between repetitions. A zero Lacunarity means
// DefaultLacunarity.
type FractalOctaves[I nums.Vector, T, O any] struct {
	Octave     Operation[I, T, O]
	Lacunarity float32
	Octaves    int
}

func (f FractalOctaves[I, T, O]) Prepare(ctx ResultContext[T, O], weights Weights) {
	for i := 0; i < f.Octaves; i++ {
		f.Octave.Prepare(ctx, weights)
	}
}

func (f FractalOctaves[I, T, O]) Apply(seeds *rng.Context, loc *I, result Result[T, O], weights Weights) {
	lacunarity := f.Lacunarity
	if lacunarity == 0 {
		lacunarity = DefaultLacunarity
	}
	for i := 0; i < f.Octaves; i++ {
		if i > 0 {
			*loc = nums.VecScale(*loc, lacunarity)
		}
		f.Octave.Apply(seeds, loc, result, weights)
	}
}

// DomainWarp displaces the working location by Warper times Strength for
// every following operation. It contributes no weight. A zero Strength
// leaves the location in place but still reseeds, so the layers after it
// keep their seeds.
type DomainWarp[I nums.Vector, T, O any] struct {
	Warper   noise.Function[I, I]
	Strength float32
}

func (d DomainWarp[I, T, O]) Prepare(ResultContext[T, O], Weights) {}

func (d DomainWarp[I, T, O]) Apply(seeds *rng.Context, loc *I, _ Result[T, O], _ Weights) {
	if d.Strength != 0 {
		offset := d.Warper.Evaluate(*loc, seeds)
		*loc = nums.VecAdd(*loc, nums.VecScale(offset, d.Strength))
	}
	seeds.ReSeed()
}

// Sequence runs its operations in order. An empty Sequence does nothing.
type Sequence[I nums.Vector, T, O any] []Operation[I, T, O]

func (s Sequence[I, T, O]) Prepare(ctx ResultContext[T, O], weights Weights) {
	for _, op := range s {
		op.Prepare(ctx, weights)
	}
}

func (s Sequence[I, T, O]) Apply(seeds *rng.Context, loc *I, result Result[T, O], weights Weights) {
	for _, op := range s {
		op.Apply(seeds, loc, result, weights)
	}
}

// LayeredNoise is a noise function built from layered operations.
type LayeredNoise[I nums.Vector, T, O any] struct {
	result  ResultContext[T, O]
	weights WeightSettings
	ops     Sequence[I, T, O]
}

var _ noise.Function[mgl32.Vec2, float32] = (*LayeredNoise[mgl32.Vec2, float32, float32])(nil)

// New prepares a clone of result for ops. Neither result nor ops are
// modified afterwards.
func New[I nums.Vector, T, O any](result ResultContext[T, O], weights WeightSettings, ops ...Operation[I, T, O]) *LayeredNoise[I, T, O] {
	ret := &LayeredNoise[I, T, O]{
		result:  result.Clone(),
		weights: weights,
		ops:     Sequence[I, T, O](slices.Clone(ops)),
	}
	ret.ops.Prepare(ret.result, ret.weights.StartWeights())

	log := logging.GetLog("layering")
	if log.DebugEnabled() {
		log.Debugf("prepared %d operation(s) with %T weights", len(ops), weights)
	}
	return ret
}

// Context is the prepared result context.
func (l *LayeredNoise[I, T, O]) Context() ResultContext[T, O] { return l.result }

func (l *LayeredNoise[I, T, O]) Evaluate(loc I, seeds *rng.Context) O {
	weights := l.weights.StartWeights()
	result := l.result.StartResult()
	l.ops.Apply(seeds, &loc, result, weights)
	return result.Finish(seeds)
}
