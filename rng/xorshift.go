// Package rng provides a small deterministic xorshift generator whose state is
// owned and threaded explicitly by the caller.
package rng

import "math"

// ZeroReplacement is substituted for a zero state before mixing.
// Zero is a fixed point of xorshift and must never persist.
const ZeroReplacement uint64 = 0x9E3779B97F4A7C15

// maxBelowOne is the largest float32 strictly less than 1.
var maxBelowOne = math.Nextafter32(1, 0)

// Next advances state and returns the new 64-bit value.
func Next(state *uint64) uint64 {
	x := *state
	if x == 0 {
		x = ZeroReplacement
	}
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	*state = x
	return x
}

// Float32 draws a uniform sample in [0, 1).
func Float32(state *uint64) float32 {
	return unit(uint32(Next(state) >> 11))
}

// unit maps v onto [0, 1).
func unit(v uint32) float32 {
	f := float32(float64(v) / float64(math.MaxUint32))
	// float32 rounding maps the top of the range onto 1.0
	if f >= 1 {
		return maxBelowOne
	}
	return f
}

// Intn draws a uniform index in [0, n). Returns 0 when n <= 0.
func Intn(state *uint64, n int) int {
	if n <= 0 {
		return 0
	}
	i := int(Float32(state) * float32(n))
	if i >= n {
		i = n - 1
	}
	return i
}
