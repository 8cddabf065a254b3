package app

import (
	"errors"
	"fmt"

	"github.com/vk/prodgraph/internal/graph"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	PresetPath   string // preset file or directory
	PresetFormat string // "hcl", "yaml" or "" to detect
	SavePath     string // save file to load

	OutPath   string // report destination, stdout when empty
	WritePath string // re-encode the loaded graph here when set
	RateUnit  string // overrides the save file's unit when set

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.PresetPath == "" {
		return nil, errors.New("PresetPath is a required configuration field and cannot be empty")
	}
	if cfg.SavePath == "" {
		return nil, errors.New("SavePath is a required configuration field and cannot be empty")
	}
	switch cfg.PresetFormat {
	case "", "hcl", "yaml":
	default:
		return nil, fmt.Errorf("unknown preset format %q (want hcl or yaml)", cfg.PresetFormat)
	}
	if cfg.RateUnit != "" {
		if _, err := graph.ParseRateUnit(cfg.RateUnit); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}
