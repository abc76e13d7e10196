package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/refset/ticketsim/internal/simconfig"
)

// Below this confidence a worker always re-checks the document once.
const confidenceThreshold = 0.6

// ErrInvalidSituation is returned for a ticket context outside its domain.
var ErrInvalidSituation = errors.New("invalid ticket situation")

// Situation is the per-ticket context shared by both worker variants.
type Situation struct {
	IsLate        bool
	Stress        float64
	AvgComplexity float64
	ResponseWords int
}

func (s Situation) validate() error {
	switch {
	case !(s.Stress >= 0 && s.Stress <= 1):
		return fmt.Errorf("%w: stress %v not in [0, 1]", ErrInvalidSituation, s.Stress)
	case !(s.AvgComplexity >= 0):
		return fmt.Errorf("%w: average complexity %v", ErrInvalidSituation, s.AvgComplexity)
	case s.ResponseWords < 0:
		return fmt.Errorf("%w: response words %d", ErrInvalidSituation, s.ResponseWords)
	}
	return nil
}

// Agent simulates one worker resolving one ticket.
type Agent struct {
	variant    Variant
	profile    string
	cfg        *simconfig.Config
	capability simconfig.Capability
	situation  Situation

	// Lateness-adjusted rates.
	clicks        float64
	navPerClick   float64
	openSec       float64
	readSpeed     float64
	processingSec float64
	errorRate     float64

	sources []string
	weights []float64
}

// NewAgent binds a variant to its config, profile and ticket situation. The
// lateness adjustment is applied here, once.
func NewAgent(v Variant, cfg *simconfig.Config, profile string, s Situation) (*Agent, error) {
	if cfg.Kind != v.Kind {
		return nil, fmt.Errorf("%s agent needs a %s config, got %q", v.Name, v.Kind, cfg.Kind)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	c, err := simconfig.CapabilityFor(cfg, profile)
	if err != nil {
		return nil, err
	}

	g := cfg.General
	a := &Agent{
		variant:       v,
		profile:       profile,
		cfg:           cfg,
		capability:    c,
		situation:     s,
		clicks:        g.AvgClicksToFindDoc,
		navPerClick:   g.AvgNavTimePerClickSec,
		openSec:       g.AvgDocOpenTimeSec,
		readSpeed:     g.AvgReadSpeedWordsPerSec,
		processingSec: g.AvgCognitiveProcessingSec,
		errorRate:     c.ErrorRate(),
		sources:       cfg.SourceNames(),
	}
	a.weights = make([]float64, len(a.sources))
	for i, name := range a.sources {
		a.weights[i] = cfg.DocumentSources[name].Probability
	}

	if s.IsLate {
		f := v.fatigue(cfg)
		a.navPerClick *= f.NavSpeedFactor
		a.readSpeed /= f.ReadSpeedFactor
		a.processingSec *= f.ProcessingDelayFactor
		a.errorRate *= f.ErrorRateFactor
		a.clicks *= f.RetriesFactor
	}
	return a, nil
}

// Simulate runs the ticket and returns its result record. All randomness
// comes from r.
func (a *Agent) Simulate(r RNG) TicketResult {
	g := a.cfg.General
	n := intRange(r, g.MinDocumentsPerOperation, g.MaxDocumentsPerOperation)

	var (
		waitSec, navSec, openSec, readSec, procSec float64
		errorsTotal, hallucinations                int
		complexitySum                              float64
	)
	details := make([]DocumentVisit, 0, n)

	stressExcess := max(0, a.situation.Stress-a.capability.StressTolerance())
	effectiveErrorRate := min(a.errorRate+stressExcess, 1)
	effectiveReadSpeed := a.readSpeed * (1 + a.capability.ContextKnowledgeFactor())
	latency := 0.0
	if a.variant.Assisted {
		latency = a.capability.RetrievalLatencySec() + a.capability.GenerationLatencySec()
	}

	for i := range n {
		source := a.sources[weightedIndex(r, a.weights)]
		sc := a.cfg.DocumentSources[source]

		original := a.situation.AvgComplexity
		complexity := a.variant.perceivedComplexity(original)

		pages := intRange(r, sc.PagesRange.Min, sc.PagesRange.Max)
		words := pages * WordsPerPage

		wait := 0.0
		if w, ok := a.cfg.WaitTimes[source]; ok && a.cfg.IsAsync(source) {
			wait = uniform(r, w.Min, w.Max)
		}

		repeats := 1
		if bernoulli(r, effectiveErrorRate) {
			repeats++
		}
		if a.capability.Confidence() < confidenceThreshold {
			repeats++
		}
		rep := float64(repeats)

		clicks := math.Max(0, normal(r, a.clicks, a.variant.ClickStdDev))
		nav := clicks * a.navPerClick * rep
		open := a.openSec * rep

		load := 1 + complexity/10
		overload := complexity*float64(pages) > a.capability.ShortTermMemoryCapacity()
		if overload {
			load *= a.variant.OverloadPenalty
		}

		read := float64(words) / effectiveReadSpeed * rep * load
		proc := a.processingSec * rep * load

		waitSec += wait + latency
		navSec += nav
		openSec += open
		readSec += read
		procSec += proc

		docErrors := 0
		if repeats > 1 {
			docErrors = 1
			errorsTotal++
		}

		visit := DocumentVisit{
			DocNumber:         i + 1,
			DocumentSource:    source,
			Complexity:        round2(complexity),
			NumPages:          pages,
			DocWords:          words,
			WaitTimeMin:       round2(wait / 60),
			NavigationTimeMin: round2(nav / 60),
			OpenDocTimeMin:    round2(open / 60),
			ReadDocTimeMin:    round2(read / 60),
			ProcessingTimeMin: round2(proc / 60),
			Errors:            docErrors,
			MemoryOverload:    overload,
		}
		if a.variant.Assisted {
			hallucinated := 0
			if bernoulli(r, a.capability.HallucinationRate()) {
				hallucinated = 1
				hallucinations++
			}
			visit.OriginalComplexity = ptr(round2(original))
			visit.RetrievalTimeSec = ptr(a.capability.RetrievalLatencySec())
			visit.GenerationTimeSec = ptr(a.capability.GenerationLatencySec())
			visit.Hallucination = ptr(hallucinated)
		}
		complexitySum += visit.Complexity
		details = append(details, visit)
	}

	writeSec := float64(a.situation.ResponseWords) / g.AvgWritingSpeedWordsPerSec
	totalSec := waitSec + navSec + openSec + readSec + procSec + writeSec

	avgComplexity := 0.0
	if n > 0 {
		avgComplexity = round2(complexitySum / float64(n))
	}

	res := TicketResult{
		Variant:               a.variant.Name,
		Profile:               a.profile,
		NumDocumentsConsulted: n,
		TotalTimeMin:          round2(totalSec / 60),
		TotalCostEUR:          round2(totalSec / 3600 * a.capability.HourlyRate()),
		TotalErrors:           errorsTotal,
		AvgDocComplexity:      avgComplexity,
		TimeWriteResponseMin:  round2(writeSec / 60),
		DocumentsDetails:      details,
	}
	if a.variant.Assisted {
		res.TotalHallucinations = ptr(hallucinations)
	}
	return res
}

// Simulate builds an agent for one ticket and runs it.
func Simulate(r RNG, v Variant, cfg *simconfig.Config, profile string, s Situation) (TicketResult, error) {
	a, err := NewAgent(v, cfg, profile, s)
	if err != nil {
		return TicketResult{}, err
	}
	return a.Simulate(r), nil
}
