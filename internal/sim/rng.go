package sim

import (
	"math"
	"math/rand/v2"
)

// RNG is the random source every draw goes through. *rand.Rand satisfies it;
// tests substitute scripted sources.
type RNG interface {
	Float64() float64
	IntN(n int) int
	NormFloat64() float64
}

// NewRNG returns a PCG-backed generator. Distinct streams under the same seed
// are statistically independent.
func NewRNG(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

func uniform(r RNG, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// intRange draws uniformly from [lo, hi] inclusive.
func intRange(r RNG, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}

func normal(r RNG, mean, stddev float64) float64 {
	return mean + stddev*r.NormFloat64()
}

func bernoulli(r RNG, p float64) bool {
	return r.Float64() < p
}

// weightedIndex picks an index with probability proportional to its weight.
// Weights need not be normalized but must have a positive sum.
func weightedIndex(r RNG, weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	x := r.Float64() * total
	var acc float64
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		last = i
		if x < acc {
			return i
		}
	}
	return last
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
