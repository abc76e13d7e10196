package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refset/ticketsim/internal/config"
	"github.com/refset/ticketsim/internal/pipeline"
)

var simulateFlags struct {
	tickets     int
	workers     int
	seed        uint64
	humanConfig string
	aiConfig    string
	outHuman    string
	outAI       string
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a ticket batch and write the human and AI results",
	Args:  cobra.NoArgs,
	RunE:  runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.IntVar(&simulateFlags.tickets, "tickets", 0, "Number of tickets to simulate")
	f.IntVar(&simulateFlags.workers, "workers", 0, "Tickets simulated concurrently")
	f.Uint64Var(&simulateFlags.seed, "seed", 0, "Random seed (0 picks one)")
	f.StringVar(&simulateFlags.humanConfig, "human-config", "", "Human worker simulation config")
	f.StringVar(&simulateFlags.aiConfig, "ai-config", "", "AI-assisted worker simulation config")
	f.StringVar(&simulateFlags.outHuman, "out-human", "", "Human results JSON file")
	f.StringVar(&simulateFlags.outAI, "out-ai", "", "AI results JSON file")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applySimulateFlags(cmd, cfg)

	ctx, cancel := signalContext()
	defer cancel()

	p, err := pipeline.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}
	batch, err := p.Run(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run:     %s (seed %d)\n", batch.RunID, batch.Seed)
	fmt.Fprintf(out, "Tickets: %d\n", len(batch.Human))
	fmt.Fprintf(out, "Human:   %s\n", cfg.Output.HumanFile)
	fmt.Fprintf(out, "AI:      %s\n", cfg.Output.AIFile)
	return nil
}

// applySimulateFlags overrides cfg with the flags set on the command line.
func applySimulateFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("tickets") {
		cfg.Simulation.Tickets = simulateFlags.tickets
	}
	if f.Changed("workers") {
		cfg.Simulation.Workers = simulateFlags.workers
	}
	if f.Changed("seed") {
		cfg.Simulation.Seed = simulateFlags.seed
	}
	if f.Changed("human-config") {
		cfg.Simulation.HumanConfig = simulateFlags.humanConfig
	}
	if f.Changed("ai-config") {
		cfg.Simulation.AIConfig = simulateFlags.aiConfig
	}
	if f.Changed("out-human") {
		cfg.Output.HumanFile = simulateFlags.outHuman
	}
	if f.Changed("out-ai") {
		cfg.Output.AIFile = simulateFlags.outAI
	}
}
