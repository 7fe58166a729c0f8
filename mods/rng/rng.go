// Package rng hashes lattice coordinates into decorrelated random bits.
//
// It is not a general purpose PRNG. Every function is a pure function of
// the seed and the input, so two evaluations at the same place always agree.
package rng

import "math"

// NoiseRng is a seed. The zero value is a valid seed.
type NoiseRng uint32

// key is a large, nearly prime number with an even bit distribution.
const key uint32 = 104_395_403

// mix is a murmur style finalizer, every input bit affects every output bit.
func mix(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

// RandU32 returns the hash of input salted with the seed.
func (r NoiseRng) RandU32(input uint32) uint32 {
	return mix((input ^ uint32(r)) * key)
}

// RandUNormWithEntropy returns a float in [0, 1) and a byte of bits
// that did not go into the float.
func (r NoiseRng) RandUNormWithEntropy(input uint32) (float32, uint8) {
	h := r.RandU32(input)
	return UNorm(h), uint8(h)
}

// RandSNormWithEntropy returns a float in [-1, 1) and a byte of spare bits.
func (r NoiseRng) RandSNormWithEntropy(input uint32) (float32, uint8) {
	u, e := r.RandUNormWithEntropy(input)
	return UNormToSNorm(u), e
}

func (r NoiseRng) RandUNorm(input uint32) float32 {
	return UNorm(r.RandU32(input))
}

func (r NoiseRng) RandSNorm(input uint32) float32 {
	return UNormToSNorm(UNorm(r.RandU32(input)))
}

const (
	fractionBits = 23
	precision    = fractionBits + 1
	unormScale   = float32(1.0 / (1 << precision))
)

// UNorm maps the high 24 bits of a hash onto [0, 1).
// 24 bits is exactly what a float32 mantissa can hold without rounding.
func UNorm(hash uint32) float32 {
	return float32(hash>>(32-precision)) * unormScale
}

// SNormWithSign maps a hash onto (-1, 1) by taking the magnitude from
// the high bits and the sign from the lowest bit.
func SNormWithSign(hash uint32) float32 {
	mag := UNorm(hash)
	sign := (hash & 1) << 31
	return math.Float32frombits(math.Float32bits(mag) ^ sign)
}

func UNormToSNorm(x float32) float32 {
	return (x - 0.5) * 2.0
}

func SNormToUNorm(x float32) float32 {
	return x*0.5 + 0.5
}

// TableIndex picks one of 1<<bits table entries from the high bits of hash.
// The result is always less than 1<<bits.
func TableIndex(hash uint32, bits uint) int {
	if bits == 0 {
		return 0
	}
	return int(hash >> (32 - bits))
}
