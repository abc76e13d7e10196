package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/refset/ticketsim/internal/simconfig"
)

// Options controls a batch run.
type Options struct {
	Tickets int
	// Workers > 1 simulates tickets concurrently. Results do not depend on it.
	Workers int
	// Seed 0 picks a random seed, reported in Batch.Seed.
	Seed            uint64
	LateProbability float64
	ResponseWords   simconfig.IntRange
	Logger          *slog.Logger
}

// DefaultOptions returns the situational distributions of the reference
// workload: 30% late tickets and 500 to 1000 word responses.
func DefaultOptions() Options {
	return Options{
		Tickets:         1000,
		Workers:         1,
		LateProbability: 0.3,
		ResponseWords:   simconfig.IntRange{Min: 500, Max: 1000},
	}
}

func (o Options) validate() error {
	switch {
	case o.Tickets < 0:
		return fmt.Errorf("%w: tickets %d", simconfig.ErrInvalidValue, o.Tickets)
	case !(o.LateProbability >= 0 && o.LateProbability <= 1):
		return fmt.Errorf("%w: late probability %v", simconfig.ErrInvalidValue, o.LateProbability)
	case o.ResponseWords.Min < 0 || o.ResponseWords.Max < o.ResponseWords.Min:
		return fmt.Errorf("%w: response words [%d, %d]", simconfig.ErrInvalidValue, o.ResponseWords.Min, o.ResponseWords.Max)
	}
	return nil
}

// Batch holds the two index-aligned result collections of a run: Human[i]
// and AI[i] describe the same ticket.
type Batch struct {
	RunID string
	Seed  uint64
	Human []TicketResult
	AI    []TicketResult
}

// RunBatch simulates opts.Tickets tickets with both worker variants. Each
// ticket draws from its own generator derived from (seed, index), so the
// output is identical for any worker count. The first error aborts the run.
func RunBatch(ctx context.Context, human, ai *simconfig.Config, opts Options) (*Batch, error) {
	if human.Kind != simconfig.KindHuman {
		return nil, fmt.Errorf("human config has kind %q", human.Kind)
	}
	if ai.Kind != simconfig.KindAI {
		return nil, fmt.Errorf("ai config has kind %q", ai.Kind)
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	seed := opts.Seed
	for seed == 0 {
		seed = rand.Uint64()
	}
	b := &Batch{
		RunID: uuid.NewString(),
		Seed:  seed,
		Human: make([]TicketResult, opts.Tickets),
		AI:    make([]TicketResult, opts.Tickets),
	}

	log.Info("starting batch",
		slog.String("run_id", b.RunID),
		slog.Int("tickets", opts.Tickets),
		slog.Int("workers", max(opts.Workers, 1)),
		slog.Uint64("seed", seed))
	start := time.Now()

	runTicket := func(ctx context.Context, i int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		h, a, err := simulateTicket(NewRNG(seed, uint64(i)), human, ai, opts, i)
		if err != nil {
			return fmt.Errorf("ticket %d: %w", i+1, err)
		}
		b.Human[i], b.AI[i] = h, a
		log.Debug("ticket simulated",
			slog.String("ticket_id", h.TicketID),
			slog.String("profile", h.Profile),
			slog.Float64("human_min", h.TotalTimeMin),
			slog.Float64("ai_min", a.TotalTimeMin))
		return nil
	}

	if opts.Workers > 1 {
		g, gCtx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Workers)
		for i := range opts.Tickets {
			g.Go(func() error {
				return runTicket(gCtx, i)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range opts.Tickets {
			if err := runTicket(ctx, i); err != nil {
				return nil, err
			}
		}
	}

	log.Info("batch complete",
		slog.String("run_id", b.RunID),
		slog.Int("tickets", opts.Tickets),
		slog.Duration("elapsed", time.Since(start)))
	return b, nil
}

// TicketID formats the identifier of the i-th (zero-based) ticket.
func TicketID(i int) string {
	return fmt.Sprintf("TKT-%05d", i+1)
}

func simulateTicket(r RNG, human, ai *simconfig.Config, opts Options, i int) (TicketResult, TicketResult, error) {
	hc := Vary(human, r)
	ac := Vary(ai, r)

	isLate := bernoulli(r, opts.LateProbability)
	stress := round2(r.Float64())
	words := intRange(r, opts.ResponseWords.Min, opts.ResponseWords.Max)

	g := hc.General
	n := intRange(r, g.MinDocumentsPerOperation, g.MaxDocumentsPerOperation)
	complexities, err := SampleComplexities(r, hc.Task.ComplexityDistribution, n, hc.ComplexityRanges)
	if err != nil {
		return TicketResult{}, TicketResult{}, err
	}
	avg := Mean(complexities)
	profile := ClassifyProfile(avg, hc.ProfileAssignment)

	s := Situation{
		IsLate:        isLate,
		Stress:        stress,
		AvgComplexity: avg,
		ResponseWords: words,
	}
	h, err := Simulate(r, Human, hc, profile, s)
	if err != nil {
		return TicketResult{}, TicketResult{}, fmt.Errorf("human: %w", err)
	}
	a, err := Simulate(r, AI, ac, profile, s)
	if err != nil {
		return TicketResult{}, TicketResult{}, fmt.Errorf("ai: %w", err)
	}

	id := TicketID(i)
	for _, res := range []*TicketResult{&h, &a} {
		res.TicketID = id
		res.IsLate = isLate
		res.CurrentStress = stress
		res.ResponseWords = words
	}
	return h, a, nil
}
