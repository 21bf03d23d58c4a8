package app

import (
	"errors"
	"fmt"
)

// Model names selectable via the -model flag.
const (
	ModelCPM      = "cpm"
	ModelMakespan = "makespan"
	ModelNPV      = "npv"
	ModelCrashing = "crashing"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ProjectPath string // hcl files
	Model       string // which analysis/model to run

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and fills defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProjectPath == "" {
		return nil, errors.New("ProjectPath is a required configuration field and cannot be empty")
	}
	if cfg.Model == "" {
		cfg.Model = ModelCPM
	}
	switch cfg.Model {
	case ModelCPM, ModelMakespan, ModelNPV, ModelCrashing:
	default:
		return nil, fmt.Errorf("unknown model %q", cfg.Model)
	}
	return &cfg, nil
}
