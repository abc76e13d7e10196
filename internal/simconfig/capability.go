package simconfig

import "fmt"

// AIHourlyRate is the blended hourly cost of an analyst working with the
// retrieval-augmented assistant.
const AIHourlyRate = 35.0

// Capability is the worker-specific parameter surface the agent model reads.
// Human configs resolve it per profile; AI configs share one block across
// profiles.
type Capability interface {
	HourlyRate() float64
	ContextKnowledgeFactor() float64
	ErrorRate() float64
	Confidence() float64
	StressTolerance() float64
	ShortTermMemoryCapacity() float64
	HallucinationRate() float64
	RetrievalLatencySec() float64
	GenerationLatencySec() float64
}

// ProfileCapability adapts one entry of the human profiles block.
type ProfileCapability struct {
	p Profile
}

// NewProfileCapability resolves profile against the human config.
func NewProfileCapability(cfg *Config, profile string) (*ProfileCapability, error) {
	p, ok := cfg.Profiles[profile]
	if !ok {
		return nil, fmt.Errorf("%w: profiles.%s", ErrMissingKey, profile)
	}
	return &ProfileCapability{p: p}, nil
}

func (c *ProfileCapability) HourlyRate() float64              { return c.p.HourlyRate }
func (c *ProfileCapability) ContextKnowledgeFactor() float64  { return c.p.ContextKnowledgeFactor }
func (c *ProfileCapability) ErrorRate() float64               { return c.p.ErrorRate }
func (c *ProfileCapability) Confidence() float64              { return c.p.Confidence }
func (c *ProfileCapability) StressTolerance() float64         { return c.p.StressTolerance }
func (c *ProfileCapability) ShortTermMemoryCapacity() float64 { return c.p.ShortTermMemoryCapacity }
func (c *ProfileCapability) HallucinationRate() float64       { return 0 }
func (c *ProfileCapability) RetrievalLatencySec() float64     { return 0 }
func (c *ProfileCapability) GenerationLatencySec() float64    { return 0 }

// AgentCapability adapts the flat ai_agent block. The profile only labels
// the result.
type AgentCapability struct {
	a AIAgent
}

// NewAgentCapability resolves the AI block of cfg.
func NewAgentCapability(cfg *Config) (*AgentCapability, error) {
	if cfg.AIAgent == nil {
		return nil, fmt.Errorf("%w: ai_agent", ErrMissingKey)
	}
	return &AgentCapability{a: *cfg.AIAgent}, nil
}

func (c *AgentCapability) HourlyRate() float64              { return AIHourlyRate }
func (c *AgentCapability) ContextKnowledgeFactor() float64  { return c.a.ContextKnowledgeFactor }
func (c *AgentCapability) ErrorRate() float64               { return c.a.ErrorRate }
func (c *AgentCapability) Confidence() float64              { return c.a.Confidence }
func (c *AgentCapability) StressTolerance() float64         { return c.a.StressTolerance }
func (c *AgentCapability) ShortTermMemoryCapacity() float64 { return c.a.ShortTermMemoryCapacity }
func (c *AgentCapability) HallucinationRate() float64       { return c.a.HallucinationRate }
func (c *AgentCapability) RetrievalLatencySec() float64     { return c.a.RetrievalLatencySec }
func (c *AgentCapability) GenerationLatencySec() float64    { return c.a.GenerationLatencySec }

// CapabilityFor picks the adapter matching the config kind.
func CapabilityFor(cfg *Config, profile string) (Capability, error) {
	switch cfg.Kind {
	case KindHuman:
		return NewProfileCapability(cfg, profile)
	case KindAI:
		return NewAgentCapability(cfg)
	default:
		return nil, fmt.Errorf("%w: unknown config kind %q", ErrInvalidValue, cfg.Kind)
	}
}
