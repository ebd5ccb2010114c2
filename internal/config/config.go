// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads and validates the sweep YAML configuration.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

var (
	// ErrInvalidYaml is returned when the configuration cannot be parsed.
	ErrInvalidYaml = errors.New("invalid YAML")
	// ErrInvalidConfig is returned when a parsed configuration fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// APIKeyEnv overrides the configured backend API key when set.
const APIKeyEnv = "SWEEP_API_KEY"

const (
	defaultOutputDir      = "sweep-results"
	defaultPromptsDir     = "prompts"
	defaultBackendKind    = "openai"
	defaultBaseURL        = "http://localhost:1234/v1"
	defaultTemperature    = 0.7
	defaultMaxTokens      = 2048
	defaultTimeoutSeconds = 300
	defaultBatchSize      = 1

	maxBatchSize   = 50
	maxTemperature = 2.0
)

// Backend holds the LLM backend settings.
type Backend struct {
	Kind           string  `yaml:"kind"`            // "openai" or "exec"
	BaseURL        string  `yaml:"base_url"`        // OpenAI-compatible API root
	APIKey         string  `yaml:"api_key"`         // Bearer token; SWEEP_API_KEY takes precedence
	Command        string  `yaml:"command"`         // CLI executable for the exec backend
	Model          string  `yaml:"model"`           // Preferred model; empty means select at run time
	Temperature    float64 `yaml:"temperature"`     //
	MaxTokens      int     `yaml:"max_tokens"`      //
	TimeoutSeconds int     `yaml:"timeout_seconds"` // Per-request timeout for the openai backend
}

// TaskDef is a configured built-in task.
type TaskDef struct {
	Name        string `yaml:"name"`
	Command     string `yaml:"command"`
	Template    string `yaml:"template"`
	Description string `yaml:"description"`
}

// ScheduleDef is an unattended batch run fired on a cron expression.
type ScheduleDef struct {
	Name      string   `yaml:"name"`
	Cron      string   `yaml:"cron"`
	Kind      string   `yaml:"kind"` // "task" or "prompt"
	Operation string   `yaml:"operation"`
	Patterns  []string `yaml:"patterns"`
	BatchSize int      `yaml:"batch_size"`
}

// Config is the root configuration structure.
type Config struct {
	Workspace  string        `yaml:"workspace"`
	OutputDir  string        `yaml:"output_dir"`
	PromptsDir string        `yaml:"prompts_dir"`
	BatchSize  int           `yaml:"batch_size"`
	Backend    Backend       `yaml:"backend"`
	Tasks      []TaskDef     `yaml:"tasks"`
	Schedules  []ScheduleDef `yaml:"schedules"`
}

// Load parses yamlData into a Config, applies defaults and the
// SWEEP_API_KEY environment override, and validates the result.
func Load(yamlData []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(yamlData, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYaml, err)
	}

	cfg.applyDefaults()

	if key := os.Getenv(APIKeyEnv); key != "" {
		cfg.Backend.APIKey = key
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DefaultFileName is the config file looked for in the working directory
// when no URL is given.
const DefaultFileName = "sweep.yaml"

// Resolve loads configuration for a command invocation. A non-empty url is
// fetched with go-getter. Otherwise sweep.yaml in the working directory is
// used when present, and built-in defaults when not.
func Resolve(ctx context.Context, url string) (*Config, error) {
	if url != "" {
		data, err := Fetch(ctx, url)
		if err != nil {
			return nil, err
		}

		return Load(data)
	}

	data, err := os.ReadFile(DefaultFileName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("%w: %w", ErrGetConfigFile, err)
	}

	return Load(data)
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()

	if key := os.Getenv(APIKeyEnv); key != "" {
		cfg.Backend.APIKey = key
	}

	return cfg
}

func (c *Config) applyDefaults() {
	if c.Workspace == "" {
		if wd, err := os.Getwd(); err == nil {
			c.Workspace = wd
		}
	}

	if c.OutputDir == "" {
		c.OutputDir = defaultOutputDir
	}

	if c.PromptsDir == "" {
		c.PromptsDir = defaultPromptsDir
	}

	if c.BatchSize == 0 {
		c.BatchSize = defaultBatchSize
	}

	if c.Backend.Kind == "" {
		c.Backend.Kind = defaultBackendKind
	}

	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = defaultBaseURL
	}

	if c.Backend.Temperature == 0 {
		c.Backend.Temperature = defaultTemperature
	}

	if c.Backend.MaxTokens == 0 {
		c.Backend.MaxTokens = defaultMaxTokens
	}

	if c.Backend.TimeoutSeconds == 0 {
		c.Backend.TimeoutSeconds = defaultTimeoutSeconds
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	switch c.Backend.Kind {
	case "openai":
		if c.Backend.BaseURL == "" {
			return fmt.Errorf("%w: backend.base_url is required for the openai backend", ErrInvalidConfig)
		}
	case "exec":
		if c.Backend.Command == "" {
			return fmt.Errorf("%w: backend.command is required for the exec backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown backend kind %q", ErrInvalidConfig, c.Backend.Kind)
	}

	if c.Backend.Temperature < 0 || c.Backend.Temperature > maxTemperature {
		return fmt.Errorf("%w: backend.temperature must be between 0 and %g", ErrInvalidConfig, maxTemperature)
	}

	if c.BatchSize < 1 || c.BatchSize > maxBatchSize {
		return fmt.Errorf("%w: batch_size must be between 1 and %d", ErrInvalidConfig, maxBatchSize)
	}

	for _, t := range c.Tasks {
		if t.Name == "" || t.Command == "" {
			return fmt.Errorf("%w: every task needs a name and a command", ErrInvalidConfig)
		}
	}

	for _, s := range c.Schedules {
		if s.Name == "" || s.Cron == "" || s.Operation == "" {
			return fmt.Errorf("%w: schedule %q needs a name, a cron expression and an operation", ErrInvalidConfig, s.Name)
		}

		if s.Kind != "task" && s.Kind != "prompt" {
			return fmt.Errorf("%w: schedule %q has unknown kind %q", ErrInvalidConfig, s.Name, s.Kind)
		}

		if len(s.Patterns) == 0 {
			return fmt.Errorf("%w: schedule %q needs at least one file pattern", ErrInvalidConfig, s.Name)
		}

		if s.BatchSize < 0 || s.BatchSize > maxBatchSize {
			return fmt.Errorf("%w: schedule %q batch_size must be between 1 and %d", ErrInvalidConfig, s.Name, maxBatchSize)
		}
	}

	return nil
}
