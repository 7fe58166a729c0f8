package rng

import "github.com/machbase/neo-noise/mods/nums"

// White value generators turn a lattice point id into a random value.
// They are noise functions from uint32 to T.

// UNormValue yields a T with every component in [0, 1).
type UNormValue[T nums.Value] struct{}

func (UNormValue[T]) Evaluate(seed uint32, seeds *Context) T {
	return randomValue[T](seeds.Rng(), seed, NoiseRng.RandUNorm)
}

// SNormValue yields a T with every component in [-1, 1).
type SNormValue[T nums.Value] struct{}

func (SNormValue[T]) Evaluate(seed uint32, seeds *Context) T {
	return randomValue[T](seeds.Rng(), seed, NoiseRng.RandSNorm)
}

// PreMix yields the unorm value that SNormValue remaps.
// Interpolating pre mixed values and calling PostMix once gives the same
// result as interpolating the finished values.
func (SNormValue[T]) PreMix(seed uint32, seeds *Context) T {
	return randomValue[T](seeds.Rng(), seed, NoiseRng.RandUNorm)
}

func (SNormValue[T]) PostMix(v T) T {
	return nums.Map(v, UNormToSNorm)
}

// PreMixer is implemented by generators that can be interpolated in a
// cheaper intermediate form.
type PreMixer[T nums.Value] interface {
	PreMix(seed uint32, seeds *Context) T
	PostMix(v T) T
}

// Bits yields the raw hash.
type Bits struct{}

func (Bits) Evaluate(seed uint32, seeds *Context) uint32 {
	return seeds.Rng().RandU32(seed)
}

func randomValue[T nums.Value](r NoiseRng, seed uint32, gen func(NoiseRng, uint32) float32) T {
	var ret T
	n := nums.ValueDim[T]()
	for i := 0; i < n; i++ {
		ret = nums.SetComponent(ret, i, gen(r, seed^axes[i]))
	}
	return ret
}
