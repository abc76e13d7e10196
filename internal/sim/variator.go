package sim

import "github.com/refset/ticketsim/internal/simconfig"

const jitter = 0.05

func jitterFactor(r RNG) float64 {
	return uniform(r, 1-jitter, 1+jitter)
}

// Vary returns an independent copy of cfg with environment noise applied:
// the general timing/speed parameters, the fatigue factors and the source
// probabilities are each scaled by their own factor in [0.95, 1.05], and the
// probabilities are renormalized. cfg itself is left untouched.
func Vary(cfg *simconfig.Config, r RNG) *simconfig.Config {
	out := cfg.Clone()

	g := &out.General
	for _, p := range []*float64{
		&g.AvgClicksToFindDoc,
		&g.AvgNavTimePerClickSec,
		&g.AvgDocOpenTimeSec,
		&g.AvgReadSpeedWordsPerSec,
		&g.AvgCognitiveProcessingSec,
		&g.AvgWritingSpeedWordsPerSec,
	} {
		*p *= jitterFactor(r)
	}

	if f := out.Fatigue; f != nil {
		for _, p := range []*float64{
			&f.NavSpeedFactor,
			&f.ReadSpeedFactor,
			&f.ProcessingDelayFactor,
			&f.ErrorRateFactor,
			&f.RetriesFactor,
		} {
			*p *= jitterFactor(r)
		}
	}

	names := out.SourceNames()
	var total float64
	for _, name := range names {
		src := out.DocumentSources[name]
		src.Probability *= jitterFactor(r)
		total += src.Probability
		out.DocumentSources[name] = src
	}
	for _, name := range names {
		src := out.DocumentSources[name]
		src.Probability /= total
		out.DocumentSources[name] = src
	}

	return out
}
