package simconfig_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/refset/ticketsim/internal/simconfig"
)

func TestLoad_SampleConfigs(t *testing.T) {
	human, err := simconfig.Load("testdata/human.yaml", simconfig.KindHuman)
	if err != nil {
		t.Fatalf("Load human: %v", err)
	}
	if human.Kind != simconfig.KindHuman {
		t.Errorf("Kind = %q", human.Kind)
	}
	if got := human.Profiles[simconfig.ProfileSenior].HourlyRate; got != 50 {
		t.Errorf("senior hourly rate = %v, want 50", got)
	}
	if got, want := human.DocumentSources["confluence"].PagesRange, (simconfig.IntRange{Min: 2, Max: 15}); got != want {
		t.Errorf("confluence pages = %+v, want %+v", got, want)
	}
	if got, want := human.WaitTimes["email"], (simconfig.Range{Min: 300, Max: 3600}); got != want {
		t.Errorf("email wait = %+v, want %+v", got, want)
	}
	if got, want := human.ComplexityRanges["medium"], (simconfig.Range{Min: 3.01, Max: 7}); got != want {
		t.Errorf("medium range = %+v, want %+v", got, want)
	}
	if human.Fatigue == nil || human.Fatigue.ErrorRateFactor != 1.25 {
		t.Errorf("fatigue = %+v", human.Fatigue)
	}
	want := []string{"confluence", "email", "jira", "sharepoint", "teams"}
	if diff := cmp.Diff(want, human.SourceNames()); diff != "" {
		t.Errorf("SourceNames mismatch:\n%s", diff)
	}

	ai, err := simconfig.Load("testdata/ai.yaml", simconfig.KindAI)
	if err != nil {
		t.Fatalf("Load ai: %v", err)
	}
	if ai.AIAgent == nil || ai.AIAgent.HallucinationRate != 0.08 {
		t.Errorf("ai_agent = %+v", ai.AIAgent)
	}
	if ai.Fatigue != nil {
		t.Errorf("ai fatigue = %+v, want nil", ai.Fatigue)
	}
}

const minimalAI = `
general_parameters:
  avg_clicks_to_find_doc: 2
  avg_read_speed_words_per_sec: 4
  avg_cognitive_processing_sec: 20
  avg_writing_speed_words_per_sec: 1.5
  min_documents_per_operation: 1
  max_documents_per_operation: 3
ai_agent:
  context_knowledge_factor: 0.8
  error_rate: 0.05
  hallucination_rate: 0.1
  cognitive_load_tolerance: 0.8
  short_term_memory_capacity: 60
  confidence: 0.8
  stress_tolerance: 0.7
  retrieval_latency_sec: 2
  generation_latency_sec: 5
document_sources:
  wiki:
    probability: 3
    pages_range: {min: 1, max: 4}
  email:
    probability: 1
    pages_range: [1, 1]
`

func TestParse_AIDefaultsAndNormalization(t *testing.T) {
	cfg, err := simconfig.Parse([]byte(minimalAI), simconfig.KindAI)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.General.AvgNavTimePerClickSec != simconfig.DefaultAINavTimePerClickSec {
		t.Errorf("nav default = %v", cfg.General.AvgNavTimePerClickSec)
	}
	if cfg.General.AvgDocOpenTimeSec != simconfig.DefaultAIDocOpenTimeSec {
		t.Errorf("open default = %v", cfg.General.AvgDocOpenTimeSec)
	}
	if got := cfg.DocumentSources["wiki"].Probability; math.Abs(got-0.75) > 1e-12 {
		t.Errorf("wiki probability = %v, want 0.75", got)
	}
	if got := cfg.DocumentSources["wiki"].PagesRange; got != (simconfig.IntRange{Min: 1, Max: 4}) {
		t.Errorf("wiki pages = %+v", got)
	}
}

func TestParse_MissingKeys(t *testing.T) {
	doc := strings.Replace(minimalAI, "  hallucination_rate: 0.1\n", "", 1)
	doc = strings.Replace(doc, "  avg_writing_speed_words_per_sec: 1.5\n", "", 1)

	_, err := simconfig.Parse([]byte(doc), simconfig.KindAI)
	if !errors.Is(err, simconfig.ErrMissingKey) {
		t.Fatalf("error = %v, want ErrMissingKey", err)
	}
	for _, key := range []string{"ai_agent.hallucination_rate", "general_parameters.avg_writing_speed_words_per_sec"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error %q does not name %s", err, key)
		}
	}
}

func TestParse_HumanNeedsProfilesAndThresholds(t *testing.T) {
	_, err := simconfig.Parse([]byte(minimalAI), simconfig.KindHuman)
	if !errors.Is(err, simconfig.ErrMissingKey) {
		t.Fatalf("error = %v, want ErrMissingKey", err)
	}
	for _, key := range []string{
		"profiles.junior.hourly_rate",
		"general_parameters.avg_nav_time_per_click_sec",
		"profile_assignment.mid_max",
		"complexity_ranges",
	} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error does not name %s", key)
		}
	}
}

func TestParse_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		wantMsg string
	}{
		{"inverted pages", "pages_range: {min: 1, max: 4}", "pages_range: {min: 5, max: 4}", "document_sources.wiki.pages_range"},
		{"inverted documents", "max_documents_per_operation: 3", "max_documents_per_operation: 0", "max_documents_per_operation"},
		{"zero reading speed", "avg_read_speed_words_per_sec: 4", "avg_read_speed_words_per_sec: 0", "avg_read_speed_words_per_sec"},
		{"error rate above 1", "error_rate: 0.05", "error_rate: 1.5", "ai_agent.error_rate"},
		{"negative probability", "probability: 3", "probability: -3", "document_sources.wiki.probability"},
		{"range arity", "pages_range: [1, 1]", "pages_range: [1, 1, 1]", "exactly 2 elements"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := strings.Replace(minimalAI, tt.from, tt.to, 1)
			_, err := simconfig.Parse([]byte(doc), simconfig.KindAI)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestParse_ComplexityRangeBounds(t *testing.T) {
	tests := []struct {
		name    string
		low     string
		wantErr bool
	}{
		{"valid", "[1, 3]", false},
		{"negative", "[-9, -5]", true},
		{"below floor", "[0.5, 3]", true},
		{"not a number", "[.nan, 3]", true},
		{"unbounded", "[1, .inf]", true},
		{"inverted", "[4, 2]", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := minimalAI + "task:\n  complexity_distribution:\n    low: 1\ncomplexity_ranges:\n  low: " + tt.low + "\n"
			_, err := simconfig.Parse([]byte(doc), simconfig.KindAI)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Parse: %v", err)
				}
				return
			}
			if !errors.Is(err, simconfig.ErrInvalidValue) {
				t.Fatalf("error = %v, want ErrInvalidValue", err)
			}
			if !strings.Contains(err.Error(), "complexity_ranges.low") {
				t.Errorf("error %q does not name complexity_ranges.low", err)
			}
		})
	}
}

func TestParse_ProbabilitiesSumToZero(t *testing.T) {
	doc := strings.Replace(minimalAI, "probability: 3", "probability: 0", 1)
	doc = strings.Replace(doc, "probability: 1", "probability: 0", 1)
	_, err := simconfig.Parse([]byte(doc), simconfig.KindAI)
	if !errors.Is(err, simconfig.ErrInvalidValue) {
		t.Fatalf("error = %v, want ErrInvalidValue", err)
	}
}

func TestValidate_HumanRanges(t *testing.T) {
	cfg, err := simconfig.Load("testdata/human.yaml", simconfig.KindHuman)
	if err != nil {
		t.Fatal(err)
	}

	bad := cfg.Clone()
	bad.ProfileAssignment = simconfig.ProfileAssignment{JuniorMax: 5, MidMax: 4}
	bad.ComplexityRanges["high"] = simconfig.Range{Min: 10, Max: 7}
	bad.Task.ComplexityDistribution["epic"] = 1
	bad.Fatigue.ReadSpeedFactor = 0

	err = bad.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, msg := range []string{
		"profile_assignment.mid_max",
		"complexity_ranges.high",
		"complexity_ranges.epic",
		"fatigue.read_speed_factor",
	} {
		if !strings.Contains(err.Error(), msg) {
			t.Errorf("error does not mention %s:\n%v", msg, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("original config no longer valid: %v", err)
	}
}

func TestClone_Independent(t *testing.T) {
	cfg, err := simconfig.Load("testdata/human.yaml", simconfig.KindHuman)
	if err != nil {
		t.Fatal(err)
	}
	c := cfg.Clone()
	if diff := cmp.Diff(cfg, c); diff != "" {
		t.Fatalf("clone differs:\n%s", diff)
	}
	c.DocumentSources["jira"] = simconfig.DocumentSource{}
	c.Profiles[simconfig.ProfileMid] = simconfig.Profile{}
	c.WaitTimes["teams"] = simconfig.Range{}
	c.ComplexityRanges["low"] = simconfig.Range{}
	c.Task.ComplexityDistribution["low"] = 0
	c.Fatigue.NavSpeedFactor = 9
	if cfg.DocumentSources["jira"].Probability == 0 ||
		cfg.Profiles[simconfig.ProfileMid].HourlyRate == 0 ||
		cfg.WaitTimes["teams"].Max == 0 ||
		cfg.ComplexityRanges["low"].Max == 0 ||
		cfg.Task.ComplexityDistribution["low"] == 0 ||
		cfg.Fatigue.NavSpeedFactor == 9 {
		t.Error("clone shares state with the original")
	}
}

func TestCapabilityFor(t *testing.T) {
	human, err := simconfig.Load("testdata/human.yaml", simconfig.KindHuman)
	if err != nil {
		t.Fatal(err)
	}
	ai, err := simconfig.Load("testdata/ai.yaml", simconfig.KindAI)
	if err != nil {
		t.Fatal(err)
	}

	junior, err := simconfig.CapabilityFor(human, simconfig.ProfileJunior)
	if err != nil {
		t.Fatal(err)
	}
	if junior.HourlyRate() != 25 || junior.Confidence() != 0.55 || junior.HallucinationRate() != 0 {
		t.Errorf("junior capability: rate %v confidence %v hallucination %v",
			junior.HourlyRate(), junior.Confidence(), junior.HallucinationRate())
	}

	for _, p := range simconfig.Profiles {
		c, err := simconfig.CapabilityFor(ai, p)
		if err != nil {
			t.Fatal(err)
		}
		if c.HourlyRate() != simconfig.AIHourlyRate || c.RetrievalLatencySec() != 2.5 {
			t.Errorf("%s: ai capability rate %v latency %v", p, c.HourlyRate(), c.RetrievalLatencySec())
		}
	}

	if _, err := simconfig.CapabilityFor(human, "principal"); !errors.Is(err, simconfig.ErrMissingKey) {
		t.Errorf("unknown profile error = %v", err)
	}
}

func TestIsAsync(t *testing.T) {
	cfg := &simconfig.Config{}
	if !cfg.IsAsync("teams") || !cfg.IsAsync("email") || cfg.IsAsync("jira") {
		t.Error("default async sources wrong")
	}
	cfg.AsyncSources = []string{"jira"}
	if cfg.IsAsync("teams") || !cfg.IsAsync("jira") {
		t.Error("configured async sources ignored")
	}
}
