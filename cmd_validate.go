package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refset/ticketsim/internal/pipeline"
)

var validateFlags struct {
	humanConfig string
	aiConfig    string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the human and AI simulation configs",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

func init() {
	f := validateCmd.Flags()
	f.StringVar(&validateFlags.humanConfig, "human-config", "", "Human worker simulation config")
	f.StringVar(&validateFlags.aiConfig, "ai-config", "", "AI-assisted worker simulation config")
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("human-config") {
		cfg.Simulation.HumanConfig = validateFlags.humanConfig
	}
	if cmd.Flags().Changed("ai-config") {
		cfg.Simulation.AIConfig = validateFlags.aiConfig
	}

	human, ai, err := pipeline.LoadConfigs(cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: ok (%d document sources)\n", cfg.Simulation.HumanConfig, len(human.DocumentSources))
	fmt.Fprintf(out, "%s: ok (%d document sources)\n", cfg.Simulation.AIConfig, len(ai.DocumentSources))
	return nil
}
