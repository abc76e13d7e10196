package sim

import (
	"fmt"

	"github.com/refset/ticketsim/internal/simconfig"
)

// SampleComplexities draws n document complexities. Each document first gets
// a tier from dist (raw weights), then a value uniform within that tier's
// range, rounded to 2 decimals.
func SampleComplexities(r RNG, dist map[string]float64, n int, ranges map[string]simconfig.Range) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: document count %d", simconfig.ErrInvalidValue, n)
	}
	out := make([]float64, 0, n)
	if n == 0 {
		return out, nil
	}

	tiers := simconfig.SortedKeys(dist)
	weights := make([]float64, len(tiers))
	var total float64
	for i, tier := range tiers {
		if _, ok := ranges[tier]; !ok {
			return nil, fmt.Errorf("%w: complexity_ranges.%s", simconfig.ErrMissingKey, tier)
		}
		weights[i] = dist[tier]
		total += weights[i]
	}
	if !(total > 0) {
		return nil, fmt.Errorf("%w: complexity weights sum to %v", simconfig.ErrInvalidValue, total)
	}

	for range n {
		rg := ranges[tiers[weightedIndex(r, weights)]]
		out = append(out, round2(uniform(r, rg.Min, rg.Max)))
	}
	return out, nil
}

// Mean returns the arithmetic mean of xs, or 0 when xs is empty.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
