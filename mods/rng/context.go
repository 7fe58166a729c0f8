package rng

// Context is the random state threaded through one evaluation.
//
// It is created from the stored seed at the start of every sample and is
// never shared between samples.
type Context struct {
	rng     NoiseRng
	counter uint32
}

func NewContext(seed uint32) Context {
	return Context{rng: NoiseRng(seed)}
}

// Rng returns the current seed.
func (c *Context) Rng() NoiseRng {
	return c.rng
}

// ReSeed moves to a new seed derived only from the current state.
func (c *Context) ReSeed() {
	c.counter++
	c.rng = NoiseRng(NoiseRng(c.counter).RandU32(uint32(c.rng)))
}

// Branch returns an independent context for a sub evaluation and
// advances the receiver, so that neither repeats the other's randomness.
func (c *Context) Branch() Context {
	child := Context{
		rng:     NoiseRng(c.rng.RandU32(0x5bd1e995)),
		counter: c.counter ^ 0x68e31da4,
	}
	c.ReSeed()
	return child
}
