package simconfig

import "maps"

// Clone returns a deep copy of c that shares no mutable state with it.
func (c *Config) Clone() *Config {
	out := *c
	out.Profiles = maps.Clone(c.Profiles)
	out.DocumentSources = maps.Clone(c.DocumentSources)
	out.WaitTimes = maps.Clone(c.WaitTimes)
	out.ComplexityRanges = maps.Clone(c.ComplexityRanges)
	out.Task.ComplexityDistribution = maps.Clone(c.Task.ComplexityDistribution)
	if c.AsyncSources != nil {
		out.AsyncSources = append([]string(nil), c.AsyncSources...)
	}
	if c.AIAgent != nil {
		ai := *c.AIAgent
		out.AIAgent = &ai
	}
	if c.Fatigue != nil {
		f := *c.Fatigue
		out.Fatigue = &f
	}
	return &out
}
