package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/refset/ticketsim/internal/config"
	"github.com/refset/ticketsim/internal/kafka"
	"github.com/refset/ticketsim/internal/output"
	"github.com/refset/ticketsim/internal/sim"
	"github.com/refset/ticketsim/internal/simconfig"
	"github.com/refset/ticketsim/internal/store"
)

// Sink receives a finished batch.
type Sink interface {
	Name() string
	Write(ctx context.Context, b *sim.Batch) error
	Close() error
}

// Pipeline runs one batch and hands it to the configured sinks
type Pipeline struct {
	cfg   *config.Config
	human *simconfig.Config
	ai    *simconfig.Config
	sinks []Sink
	log   *slog.Logger
}

// LoadConfigs reads and validates the human and AI simulation configs named
// by cfg. Problems in both files are reported together.
func LoadConfigs(cfg *config.Config) (human, ai *simconfig.Config, err error) {
	human, herr := simconfig.Load(cfg.Simulation.HumanConfig, simconfig.KindHuman)
	ai, aerr := simconfig.Load(cfg.Simulation.AIConfig, simconfig.KindAI)
	if err := errors.Join(herr, aerr); err != nil {
		return nil, nil, err
	}
	return human, ai, nil
}

// New loads both simulation configs and builds the sinks. The JSON file sink
// is always present; Kafka and the store are added when configured.
func New(ctx context.Context, cfg *config.Config) (*Pipeline, error) {
	human, ai, err := LoadConfigs(cfg)
	if err != nil {
		return nil, err
	}

	sinks := []Sink{output.NewJSONFiles(cfg.Output.HumanFile, cfg.Output.AIFile)}
	if len(cfg.Kafka.Brokers) > 0 {
		sinks = append(sinks, kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.HumanTopic, cfg.Kafka.AITopic))
	}
	if cfg.Store.ConnString != "" {
		c, err := store.NewClientFromConnString(ctx, cfg.Store.ConnString, cfg.Store.Table)
		if err != nil {
			closeAll(sinks)
			return nil, err
		}
		sinks = append(sinks, c)
	}

	return NewWithSinks(cfg, human, ai, sinks...), nil
}

// NewWithSinks builds a pipeline from already loaded configs.
func NewWithSinks(cfg *config.Config, human, ai *simconfig.Config, sinks ...Sink) *Pipeline {
	return &Pipeline{
		cfg:   cfg,
		human: human,
		ai:    ai,
		sinks: sinks,
		log:   slog.Default(),
	}
}

// Run simulates the batch, writes it to every sink in order and closes the
// sinks. The first sink error stops the remaining writes.
func (p *Pipeline) Run(ctx context.Context) (*sim.Batch, error) {
	defer closeAll(p.sinks)

	names := make([]string, len(p.sinks))
	for i, s := range p.sinks {
		names[i] = s.Name()
	}
	p.log.Info("starting ticket simulation",
		slog.String("human_config", p.cfg.Simulation.HumanConfig),
		slog.String("ai_config", p.cfg.Simulation.AIConfig),
		slog.Any("sinks", names))

	batch, err := sim.RunBatch(ctx, p.human, p.ai, p.options())
	if err != nil {
		return nil, fmt.Errorf("simulate: %w", err)
	}

	for _, s := range p.sinks {
		if err := ctx.Err(); err != nil {
			return batch, err
		}
		if err := s.Write(ctx, batch); err != nil {
			return batch, fmt.Errorf("%s sink: %w", s.Name(), err)
		}
		p.log.Debug("sink written", slog.String("sink", s.Name()))
	}

	p.log.Info("simulation results saved",
		slog.String("run_id", batch.RunID),
		slog.String("human_file", p.cfg.Output.HumanFile),
		slog.String("ai_file", p.cfg.Output.AIFile))
	return batch, nil
}

func (p *Pipeline) options() sim.Options {
	s := p.cfg.Simulation
	return sim.Options{
		Tickets:         s.Tickets,
		Workers:         s.Workers,
		Seed:            s.Seed,
		LateProbability: s.LateProbability,
		ResponseWords:   simconfig.IntRange{Min: s.MinResponseWords, Max: s.MaxResponseWords},
		Logger:          p.log,
	}
}

func closeAll(sinks []Sink) {
	for _, s := range sinks {
		if err := s.Close(); err != nil {
			slog.Warn("close sink", slog.String("sink", s.Name()), slog.Any("error", err))
		}
	}
}
