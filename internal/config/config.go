package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given. A missing file is not
// an error.
const DefaultPath = "ticketsim.yaml"

type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Output     OutputConfig     `yaml:"output"`
	Kafka      KafkaConfig      `yaml:"kafka"`
	Store      StoreConfig      `yaml:"store"`
	LogLevel   string           `yaml:"log_level"`
}

type SimulationConfig struct {
	HumanConfig      string  `yaml:"human_config"`
	AIConfig         string  `yaml:"ai_config"`
	Tickets          int     `yaml:"tickets"`
	Workers          int     `yaml:"workers"`
	Seed             uint64  `yaml:"seed"`
	LateProbability  float64 `yaml:"late_probability"`
	MinResponseWords int     `yaml:"min_response_words"`
	MaxResponseWords int     `yaml:"max_response_words"`
}

type OutputConfig struct {
	HumanFile string `yaml:"human_file"`
	AIFile    string `yaml:"ai_file"`
}

type KafkaConfig struct {
	Brokers    []string `yaml:"brokers"`
	HumanTopic string   `yaml:"human_topic"`
	AITopic    string   `yaml:"ai_topic"`
}

type StoreConfig struct {
	ConnString string `yaml:"conn_string"`
	Table      string `yaml:"table"`
}

// Load returns the defaults, overlaid with the YAML file at path (if it
// exists) and then with environment variables.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Simulation: SimulationConfig{
			HumanConfig:      "config.yaml",
			AIConfig:         "config-ai.yaml",
			Tickets:          10000,
			Workers:          1,
			LateProbability:  0.3,
			MinResponseWords: 500,
			MaxResponseWords: 1000,
		},
		Output: OutputConfig{
			HumanFile: "simulation_results-human.json",
			AIFile:    "simulation_results-ai.json",
		},
		Kafka: KafkaConfig{
			HumanTopic: "ticketsim-human",
			AITopic:    "ticketsim-ai",
		},
		Store: StoreConfig{
			Table: "ticket_results",
		},
		LogLevel: "info",
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	// Override from environment
	if v := os.Getenv("TICKETSIM_HUMAN_CONFIG"); v != "" {
		cfg.Simulation.HumanConfig = v
	}
	if v := os.Getenv("TICKETSIM_AI_CONFIG"); v != "" {
		cfg.Simulation.AIConfig = v
	}
	if v := os.Getenv("TICKETSIM_TICKETS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("TICKETSIM_TICKETS: %w", err)
		}
		cfg.Simulation.Tickets = n
	}
	if v := os.Getenv("TICKETSIM_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TICKETSIM_SEED: %w", err)
		}
		cfg.Simulation.Seed = n
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("STORE_CONN_STRING"); v != "" {
		cfg.Store.ConnString = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	return cfg, nil
}

// Level maps LogLevel onto a slog level.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}
