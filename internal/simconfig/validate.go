package simconfig

import (
	"errors"
	"fmt"
	"math"
)

// MinComplexity is the lowest document complexity a tier range may contain.
// The assisted variant floors perceived complexity here, so lower values
// would make it harder than the unassisted one.
const MinComplexity = 1

type validator struct {
	errs []error
}

func (v *validator) failf(format string, args ...any) {
	v.errs = append(v.errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidValue}, args...)...))
}

func (v *validator) positive(name string, x float64) {
	if !(x > 0) {
		v.failf("%s must be > 0, got %v", name, x)
	}
}

func (v *validator) nonNegative(name string, x float64) {
	if !(x >= 0) {
		v.failf("%s must be >= 0, got %v", name, x)
	}
}

func (v *validator) probability(name string, x float64) {
	if !(x >= 0 && x <= 1) {
		v.failf("%s must be within [0, 1], got %v", name, x)
	}
}

// Validate checks every value range the simulation relies on and reports all
// problems at once.
func (c *Config) Validate() error {
	v := &validator{}

	g := c.General
	v.nonNegative("general_parameters.avg_clicks_to_find_doc", g.AvgClicksToFindDoc)
	v.nonNegative("general_parameters.avg_nav_time_per_click_sec", g.AvgNavTimePerClickSec)
	v.nonNegative("general_parameters.avg_doc_open_time_sec", g.AvgDocOpenTimeSec)
	v.positive("general_parameters.avg_read_speed_words_per_sec", g.AvgReadSpeedWordsPerSec)
	v.nonNegative("general_parameters.avg_cognitive_processing_sec", g.AvgCognitiveProcessingSec)
	v.positive("general_parameters.avg_writing_speed_words_per_sec", g.AvgWritingSpeedWordsPerSec)
	if g.MinDocumentsPerOperation < 0 {
		v.failf("general_parameters.min_documents_per_operation must be >= 0, got %d", g.MinDocumentsPerOperation)
	}
	if g.MaxDocumentsPerOperation < g.MinDocumentsPerOperation {
		v.failf("general_parameters: max_documents_per_operation (%d) < min_documents_per_operation (%d)",
			g.MaxDocumentsPerOperation, g.MinDocumentsPerOperation)
	}

	switch c.Kind {
	case KindHuman:
		for _, name := range Profiles {
			p, ok := c.Profiles[name]
			if !ok {
				v.errs = append(v.errs, fmt.Errorf("%w: profiles.%s", ErrMissingKey, name))
				continue
			}
			prefix := "profiles." + name + "."
			v.nonNegative(prefix+"hourly_rate", p.HourlyRate)
			v.probability(prefix+"error_rate", p.ErrorRate)
			v.probability(prefix+"confidence", p.Confidence)
			v.nonNegative(prefix+"stress_tolerance", p.StressTolerance)
			v.nonNegative(prefix+"short_term_memory_capacity", p.ShortTermMemoryCapacity)
			if !(p.ContextKnowledgeFactor > -1) {
				v.failf("%scontext_knowledge_factor must be > -1, got %v", prefix, p.ContextKnowledgeFactor)
			}
		}
	case KindAI:
		a := c.AIAgent
		if a == nil {
			v.errs = append(v.errs, fmt.Errorf("%w: ai_agent", ErrMissingKey))
			break
		}
		v.probability("ai_agent.error_rate", a.ErrorRate)
		v.probability("ai_agent.hallucination_rate", a.HallucinationRate)
		v.probability("ai_agent.confidence", a.Confidence)
		v.nonNegative("ai_agent.stress_tolerance", a.StressTolerance)
		v.nonNegative("ai_agent.short_term_memory_capacity", a.ShortTermMemoryCapacity)
		v.nonNegative("ai_agent.retrieval_latency_sec", a.RetrievalLatencySec)
		v.nonNegative("ai_agent.generation_latency_sec", a.GenerationLatencySec)
		if !(a.ContextKnowledgeFactor > -1) {
			v.failf("ai_agent.context_knowledge_factor must be > -1, got %v", a.ContextKnowledgeFactor)
		}
	}

	if len(c.DocumentSources) == 0 {
		v.errs = append(v.errs, fmt.Errorf("%w: document_sources is empty", ErrMissingKey))
	}
	var total float64
	for _, name := range c.SourceNames() {
		src := c.DocumentSources[name]
		prefix := "document_sources." + name + "."
		v.nonNegative(prefix+"probability", src.Probability)
		total += src.Probability
		if src.PagesRange.Min < 0 || src.PagesRange.Max < src.PagesRange.Min {
			v.failf("%spages_range [%d, %d] is not a valid range", prefix, src.PagesRange.Min, src.PagesRange.Max)
		}
	}
	if len(c.DocumentSources) > 0 && !(total > 0) {
		v.failf("document_sources probabilities sum to %v", total)
	}

	for _, name := range SortedKeys(c.WaitTimes) {
		w := c.WaitTimes[name]
		if w.Min < 0 || w.Max < w.Min {
			v.failf("wait_times_sec.%s [%v, %v] is not a valid range", name, w.Min, w.Max)
		}
	}

	if f := c.Fatigue; f != nil {
		v.positive("fatigue.nav_speed_factor", f.NavSpeedFactor)
		v.positive("fatigue.read_speed_factor", f.ReadSpeedFactor)
		v.positive("fatigue.processing_delay_factor", f.ProcessingDelayFactor)
		v.positive("fatigue.error_rate_factor", f.ErrorRateFactor)
		v.positive("fatigue.retries_factor", f.RetriesFactor)
	}

	var weights float64
	for _, tier := range SortedKeys(c.Task.ComplexityDistribution) {
		w := c.Task.ComplexityDistribution[tier]
		v.nonNegative("task.complexity_distribution."+tier, w)
		weights += w
		if _, ok := c.ComplexityRanges[tier]; !ok {
			v.errs = append(v.errs, fmt.Errorf("%w: complexity_ranges.%s", ErrMissingKey, tier))
		}
	}
	if len(c.Task.ComplexityDistribution) > 0 && !(weights > 0) {
		v.failf("task.complexity_distribution weights sum to %v", weights)
	}
	if c.Kind == KindHuman && len(c.Task.ComplexityDistribution) == 0 {
		v.errs = append(v.errs, fmt.Errorf("%w: task.complexity_distribution is empty", ErrMissingKey))
	}
	for _, tier := range SortedKeys(c.ComplexityRanges) {
		r := c.ComplexityRanges[tier]
		switch {
		case !(r.Min >= MinComplexity) || math.IsInf(r.Max, 0):
			v.failf("complexity_ranges.%s [%v, %v] must lie within [%v, +Inf)", tier, r.Min, r.Max, MinComplexity)
		case !(r.Max >= r.Min):
			v.failf("complexity_ranges.%s [%v, %v] is not a valid range", tier, r.Min, r.Max)
		}
	}

	if c.Kind == KindHuman && c.ProfileAssignment.MidMax < c.ProfileAssignment.JuniorMax {
		v.failf("profile_assignment.mid_max (%v) < junior_max (%v)",
			c.ProfileAssignment.MidMax, c.ProfileAssignment.JuniorMax)
	}

	return errors.Join(v.errs...)
}
