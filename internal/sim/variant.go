package sim

import "github.com/refset/ticketsim/internal/simconfig"

// Variant is the coefficient table that distinguishes the worker models.
// Both run the same per-document algorithm in Agent.
type Variant struct {
	Name string
	Kind simconfig.Kind

	// Perceived complexity is max(ComplexityFloor, avg * MitigationFactor).
	MitigationFactor float64
	ComplexityFloor  float64

	// OverloadPenalty multiplies the load when complexity * pages exceeds
	// the short-term memory capacity.
	OverloadPenalty float64

	ClickStdDev float64

	// FixedFatigue, when set, replaces the configured fatigue block with one
	// multiplier for every channel. Nil uses the config.
	FixedFatigue *float64

	// Assisted variants pay retrieval and generation latency per document
	// and can hallucinate.
	Assisted bool
}

var (
	Human = Variant{
		Name:             "human",
		Kind:             simconfig.KindHuman,
		MitigationFactor: 1,
		OverloadPenalty:  1.5,
		ClickStdDev:      1,
	}
	AI = Variant{
		Name:             "ai",
		Kind:             simconfig.KindAI,
		MitigationFactor: 0.7,
		ComplexityFloor:  1,
		OverloadPenalty:  1.2,
		ClickStdDev:      0.5,
		FixedFatigue:     ptr(1.05),
		Assisted:         true,
	}
)

func (v Variant) perceivedComplexity(avg float64) float64 {
	return max(v.ComplexityFloor, avg*v.MitigationFactor)
}

func (v Variant) fatigue(cfg *simconfig.Config) simconfig.Fatigue {
	if v.FixedFatigue != nil {
		f := *v.FixedFatigue
		return simconfig.Fatigue{
			NavSpeedFactor:        f,
			ReadSpeedFactor:       f,
			ProcessingDelayFactor: f,
			ErrorRateFactor:       f,
			RetriesFactor:         f,
		}
	}
	if cfg.Fatigue != nil {
		return *cfg.Fatigue
	}
	return simconfig.Fatigue{
		NavSpeedFactor:        1,
		ReadSpeedFactor:       1,
		ProcessingDelayFactor: 1,
		ErrorRateFactor:       1,
		RetriesFactor:         1,
	}
}
