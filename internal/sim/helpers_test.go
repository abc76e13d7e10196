package sim

import "github.com/refset/ticketsim/internal/simconfig"

// fixedRNG returns the same value for every draw: Float64 gives f, IntN gives
// the lowest value and NormFloat64 gives z.
type fixedRNG struct {
	f float64
	z float64
}

func (r fixedRNG) Float64() float64     { return r.f }
func (r fixedRNG) IntN(int) int         { return 0 }
func (r fixedRNG) NormFloat64() float64 { return r.z }

func testProfiles() map[string]simconfig.Profile {
	return map[string]simconfig.Profile{
		simconfig.ProfileJunior: {
			HourlyRate: 24, ContextKnowledgeFactor: 0.1, ErrorRate: 0.2,
			ShortTermMemoryCapacity: 20, Confidence: 0.5, StressTolerance: 0.3,
		},
		simconfig.ProfileMid: {
			HourlyRate: 36, ContextKnowledgeFactor: 0.25, ErrorRate: 0.1,
			ShortTermMemoryCapacity: 40, Confidence: 0.7, StressTolerance: 0.5,
		},
		simconfig.ProfileSenior: {
			HourlyRate: 60, ContextKnowledgeFactor: 0.5, ErrorRate: 0.05,
			ShortTermMemoryCapacity: 60, Confidence: 0.9, StressTolerance: 0.7,
		},
	}
}

func testGeneral() simconfig.GeneralParameters {
	return simconfig.GeneralParameters{
		AvgClicksToFindDoc:         4,
		AvgNavTimePerClickSec:      3,
		AvgDocOpenTimeSec:          5,
		AvgReadSpeedWordsPerSec:    4,
		AvgCognitiveProcessingSec:  24,
		AvgWritingSpeedWordsPerSec: 0.5,
		MinDocumentsPerOperation:   2,
		MaxDocumentsPerOperation:   2,
	}
}

// wikiOnly has a single synchronous source of exactly 10 pages.
func wikiOnly() map[string]simconfig.DocumentSource {
	return map[string]simconfig.DocumentSource{
		"wiki": {Probability: 1, PagesRange: simconfig.IntRange{Min: 10, Max: 10}},
	}
}

func humanConfig() *simconfig.Config {
	return &simconfig.Config{
		Kind:            simconfig.KindHuman,
		General:         testGeneral(),
		Profiles:        testProfiles(),
		DocumentSources: wikiOnly(),
		Task: simconfig.Task{ComplexityDistribution: map[string]float64{
			"low": 2, "medium": 2, "high": 1,
		}},
		ComplexityRanges: map[string]simconfig.Range{
			"low":    {Min: 1, Max: 3},
			"medium": {Min: 3.01, Max: 7},
			"high":   {Min: 7.01, Max: 10},
		},
		ProfileAssignment: simconfig.ProfileAssignment{JuniorMax: 3, MidMax: 7},
	}
}

func aiConfig() *simconfig.Config {
	return &simconfig.Config{
		Kind:    simconfig.KindAI,
		General: testGeneral(),
		AIAgent: &simconfig.AIAgent{
			ContextKnowledgeFactor:  0.25,
			ErrorRate:               0.1,
			HallucinationRate:       0.6,
			ShortTermMemoryCapacity: 40,
			Confidence:              0.7,
			StressTolerance:         0.5,
			RetrievalLatencySec:     2,
			GenerationLatencySec:    4,
		},
		DocumentSources: wikiOnly(),
	}
}

// mixedSources adds asynchronous channels with waits to cfg.
func mixedSources(cfg *simconfig.Config) *simconfig.Config {
	cfg.DocumentSources = map[string]simconfig.DocumentSource{
		"confluence": {Probability: 0.4, PagesRange: simconfig.IntRange{Min: 1, Max: 20}},
		"jira":       {Probability: 0.3, PagesRange: simconfig.IntRange{Min: 1, Max: 5}},
		"teams":      {Probability: 0.2, PagesRange: simconfig.IntRange{Min: 1, Max: 2}},
		"email":      {Probability: 0.1, PagesRange: simconfig.IntRange{Min: 1, Max: 3}},
	}
	cfg.WaitTimes = map[string]simconfig.Range{
		"teams": {Min: 60, Max: 600},
		"email": {Min: 300, Max: 3600},
	}
	cfg.General.MinDocumentsPerOperation = 1
	cfg.General.MaxDocumentsPerOperation = 10
	return cfg
}
