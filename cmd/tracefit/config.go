package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Fit FitConfig `toml:"fit"`
}

// FitConfig maps fitter tuning settings. Nil fields were absent from
// the file and leave the flag or built-in default in effect.
type FitConfig struct {
	Cut          *float64 `toml:"cut"`
	FETLookahead *int     `toml:"fet-lookahead"`
	MaxIter      *int     `toml:"max-iter"`
	Tau          *float64 `toml:"tau"`
	GradTol      *float64 `toml:"grad-tol"`
	StepTol      *float64 `toml:"step-tol"`
	ObjectiveTol *float64 `toml:"objective-tol"`
}

// loadConfig reads a TOML config from the given path. A missing file
// is not an error.
func loadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

func applyIntConfig(target *int, value *int) {
	if value != nil {
		*target = *value
	}
}

func applyFloatConfig(target *float64, value *float64) {
	if value != nil {
		*target = *value
	}
}
