// Package simconfig holds the typed simulation configuration for the human
// and AI-assisted workflows. A Config is built once by Load, validated, and
// never mutated afterwards; variants are derived with Clone.
package simconfig

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Kind selects which capability block a Config must carry.
type Kind string

const (
	KindHuman Kind = "human"
	KindAI    Kind = "ai"
)

// Worker profiles.
const (
	ProfileJunior = "junior"
	ProfileMid    = "mid"
	ProfileSenior = "senior"
)

// Profiles lists the skill tiers in ascending order.
var Profiles = []string{ProfileJunior, ProfileMid, ProfileSenior}

// DefaultAsyncSources are the channels that incur a wait before the
// document is available.
var DefaultAsyncSources = []string{"teams", "email"}

type Config struct {
	Kind Kind `yaml:"-"`

	General           GeneralParameters         `yaml:"general_parameters"`
	Profiles          map[string]Profile        `yaml:"profiles"`
	AIAgent           *AIAgent                  `yaml:"ai_agent"`
	DocumentSources   map[string]DocumentSource `yaml:"document_sources"`
	WaitTimes         map[string]Range          `yaml:"wait_times_sec"`
	AsyncSources      []string                  `yaml:"async_sources"`
	Fatigue           *Fatigue                  `yaml:"fatigue"`
	Task              Task                      `yaml:"task"`
	ComplexityRanges  map[string]Range          `yaml:"complexity_ranges"`
	ProfileAssignment ProfileAssignment         `yaml:"profile_assignment"`
}

type GeneralParameters struct {
	AvgClicksToFindDoc         float64 `yaml:"avg_clicks_to_find_doc"`
	AvgNavTimePerClickSec      float64 `yaml:"avg_nav_time_per_click_sec"`
	AvgDocOpenTimeSec          float64 `yaml:"avg_doc_open_time_sec"`
	AvgReadSpeedWordsPerSec    float64 `yaml:"avg_read_speed_words_per_sec"`
	AvgCognitiveProcessingSec  float64 `yaml:"avg_cognitive_processing_sec"`
	AvgWritingSpeedWordsPerSec float64 `yaml:"avg_writing_speed_words_per_sec"`
	DocTypeCount               int     `yaml:"doc_type_count"`
	MinDocumentsPerOperation   int     `yaml:"min_documents_per_operation"`
	MaxDocumentsPerOperation   int     `yaml:"max_documents_per_operation"`
}

// Profile is the behavioral parameter block of one human skill tier.
type Profile struct {
	HourlyRate              float64 `yaml:"hourly_rate"`
	ContextKnowledgeFactor  float64 `yaml:"context_knowledge_factor"`
	ErrorRate               float64 `yaml:"error_rate"`
	CognitiveLoadTolerance  float64 `yaml:"cognitive_load_tolerance"`
	ShortTermMemoryCapacity float64 `yaml:"short_term_memory_capacity"`
	Confidence              float64 `yaml:"confidence"`
	StressTolerance         float64 `yaml:"stress_tolerance"`
}

// AIAgent is the shared capability block of the AI-assisted worker.
type AIAgent struct {
	ContextKnowledgeFactor  float64 `yaml:"context_knowledge_factor"`
	ErrorRate               float64 `yaml:"error_rate"`
	HallucinationRate       float64 `yaml:"hallucination_rate"`
	CognitiveLoadTolerance  float64 `yaml:"cognitive_load_tolerance"`
	ShortTermMemoryCapacity float64 `yaml:"short_term_memory_capacity"`
	Confidence              float64 `yaml:"confidence"`
	StressTolerance         float64 `yaml:"stress_tolerance"`
	RetrievalLatencySec     float64 `yaml:"retrieval_latency_sec"`
	GenerationLatencySec    float64 `yaml:"generation_latency_sec"`
}

type DocumentSource struct {
	Probability float64  `yaml:"probability"`
	PagesRange  IntRange `yaml:"pages_range"`
}

// Fatigue multipliers applied to a late human worker.
type Fatigue struct {
	NavSpeedFactor        float64 `yaml:"nav_speed_factor"`
	ReadSpeedFactor       float64 `yaml:"read_speed_factor"`
	ProcessingDelayFactor float64 `yaml:"processing_delay_factor"`
	ErrorRateFactor       float64 `yaml:"error_rate_factor"`
	RetriesFactor         float64 `yaml:"retries_factor"`
}

type Task struct {
	ComplexityDistribution map[string]float64 `yaml:"complexity_distribution"`
}

type ProfileAssignment struct {
	JuniorMax float64 `yaml:"junior_max"`
	MidMax    float64 `yaml:"mid_max"`
}

// Range is an inclusive float interval. In YAML it is written either as
// [min, max] or as {min: .., max: ..}.
type Range struct {
	Min float64
	Max float64
}

// IntRange is an inclusive integer interval with the same YAML forms as Range.
type IntRange struct {
	Min int
	Max int
}

func (r *Range) UnmarshalYAML(node *yaml.Node) error {
	var bounds [2]float64
	if err := decodeBounds(node, &bounds); err != nil {
		return err
	}
	r.Min, r.Max = bounds[0], bounds[1]
	return nil
}

func (r *IntRange) UnmarshalYAML(node *yaml.Node) error {
	var bounds [2]int
	if err := decodeBounds(node, &bounds); err != nil {
		return err
	}
	r.Min, r.Max = bounds[0], bounds[1]
	return nil
}

func decodeBounds[T int | float64](node *yaml.Node, out *[2]T) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var seq []T
		if err := node.Decode(&seq); err != nil {
			return err
		}
		if len(seq) != 2 {
			return fmt.Errorf("line %d: range must have exactly 2 elements, got %d", node.Line, len(seq))
		}
		out[0], out[1] = seq[0], seq[1]
		return nil
	case yaml.MappingNode:
		var m struct {
			Min *T `yaml:"min"`
			Max *T `yaml:"max"`
		}
		if err := node.Decode(&m); err != nil {
			return err
		}
		if m.Min == nil || m.Max == nil {
			return fmt.Errorf("line %d: range needs both min and max", node.Line)
		}
		out[0], out[1] = *m.Min, *m.Max
		return nil
	default:
		return fmt.Errorf("line %d: range must be [min, max] or {min, max}", node.Line)
	}
}

// SourceNames returns the document source names in sorted order.
func (c *Config) SourceNames() []string {
	return SortedKeys(c.DocumentSources)
}

// IsAsync reports whether documents from source must be waited for.
func (c *Config) IsAsync(source string) bool {
	async := c.AsyncSources
	if async == nil {
		async = DefaultAsyncSources
	}
	for _, s := range async {
		if s == source {
			return true
		}
	}
	return false
}

// SortedKeys returns the keys of m in sorted order. Every draw that walks a
// map goes through it so a seeded run is reproducible.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
