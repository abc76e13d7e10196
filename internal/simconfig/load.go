package simconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingKey is wrapped by every error about an absent required key.
	ErrMissingKey = errors.New("missing required key")
	// ErrInvalidValue is wrapped by every error about an out-of-range value.
	ErrInvalidValue = errors.New("invalid value")
)

// Defaults applied to an AI config that omits the navigation timings.
const (
	DefaultAINavTimePerClickSec = 1.0
	DefaultAIDocOpenTimeSec     = 2.0
)

var generalKeys = []string{
	"avg_clicks_to_find_doc",
	"avg_read_speed_words_per_sec",
	"avg_cognitive_processing_sec",
	"avg_writing_speed_words_per_sec",
	"min_documents_per_operation",
	"max_documents_per_operation",
}

var profileKeys = []string{
	"hourly_rate",
	"context_knowledge_factor",
	"error_rate",
	"cognitive_load_tolerance",
	"short_term_memory_capacity",
	"confidence",
	"stress_tolerance",
}

var aiAgentKeys = []string{
	"context_knowledge_factor",
	"error_rate",
	"hallucination_rate",
	"cognitive_load_tolerance",
	"short_term_memory_capacity",
	"confidence",
	"stress_tolerance",
	"retrieval_latency_sec",
	"generation_latency_sec",
}

// Load reads the simulation config at path and validates it as kind.
func Load(path string, kind Kind) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s config: %w", kind, err)
	}
	cfg, err := Parse(data, kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a simulation config. The returned Config has
// its document-source probabilities normalized to sum to 1.
func Parse(data []byte, kind Kind) (*Config, error) {
	if kind != KindHuman && kind != KindAI {
		return nil, fmt.Errorf("%w: unknown config kind %q", ErrInvalidValue, kind)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s config: %w", kind, err)
	}
	if err := checkRequired(raw, kind); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s config: %w", kind, err)
	}
	cfg.Kind = kind

	if kind == KindAI {
		if !hasKey(raw, "general_parameters.avg_nav_time_per_click_sec") {
			cfg.General.AvgNavTimePerClickSec = DefaultAINavTimePerClickSec
		}
		if !hasKey(raw, "general_parameters.avg_doc_open_time_sec") {
			cfg.General.AvgDocOpenTimeSec = DefaultAIDocOpenTimeSec
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.normalizeSources()
	return cfg, nil
}

func checkRequired(raw map[string]any, kind Kind) error {
	var required []string
	for _, k := range generalKeys {
		required = append(required, "general_parameters."+k)
	}
	if kind == KindHuman {
		required = append(required,
			"general_parameters.avg_nav_time_per_click_sec",
			"general_parameters.avg_doc_open_time_sec",
		)
		for _, p := range Profiles {
			for _, k := range profileKeys {
				required = append(required, "profiles."+p+"."+k)
			}
		}
		required = append(required,
			"task.complexity_distribution",
			"complexity_ranges",
			"profile_assignment.junior_max",
			"profile_assignment.mid_max",
		)
	} else {
		for _, k := range aiAgentKeys {
			required = append(required, "ai_agent."+k)
		}
	}
	required = append(required, "document_sources")

	var errs []error
	for _, key := range required {
		if !hasKey(raw, key) {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingKey, key))
		}
	}

	if sources, ok := raw["document_sources"].(map[string]any); ok {
		for _, name := range SortedKeys(sources) {
			for _, k := range []string{"probability", "pages_range"} {
				key := "document_sources." + name + "." + k
				if !hasKey(raw, key) {
					errs = append(errs, fmt.Errorf("%w: %s", ErrMissingKey, key))
				}
			}
		}
	}
	return errors.Join(errs...)
}

// hasKey reports whether the dotted path exists in the decoded document.
func hasKey(doc map[string]any, path string) bool {
	var cur any = doc
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return false
		}
		cur, ok = m[part]
		if !ok || cur == nil {
			return false
		}
	}
	return true
}

func (c *Config) normalizeSources() {
	names := c.SourceNames()
	var total float64
	for _, name := range names {
		total += c.DocumentSources[name].Probability
	}
	for _, name := range names {
		src := c.DocumentSources[name]
		src.Probability /= total
		c.DocumentSources[name] = src
	}
}
