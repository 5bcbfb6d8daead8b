// Package testkit generates synthetic numeric sequences with known
// structure, used by the test suite and the demo endpoints.
package testkit

import (
	"math/rand"
)

// Uniform returns n pseudo-random values in [0,1) from a seeded
// generator, so callers get reproducible sequences.
func Uniform(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.Float64()
	}
	return out
}

// Alternating returns a strictly alternating low/high sequence. It has
// the maximum possible number of runs, so runs tests reject it.
func Alternating(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		if i%2 == 0 {
			out[i] = 0.1
		} else {
			out[i] = 0.9
		}
	}
	return out
}

// Trending returns a strictly increasing sequence: a single ascending
// run and a heavily skewed distribution.
func Trending(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

// Constant returns n copies of v.
func Constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
