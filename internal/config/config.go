// Package config resolves run settings from defaults, an optional YAML file,
// and LETTERID_* environment variables.
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
)

// Config holds all run configuration.
type Config struct {
	// AttributeCount is the length of every attribute vector. Default: 16.
	AttributeCount int `yaml:"attribute_count"`

	// LearningRate scales every perceptron update. Default: 0.2.
	LearningRate float64 `yaml:"learning_rate"`

	// Seed seeds the random source. Zero means derive one from the clock.
	Seed uint64 `yaml:"seed"`

	// Workers bounds concurrent pair training. Default: 1.
	Workers int `yaml:"workers"`

	TrainPath string `yaml:"train_path"`
	TestPath  string `yaml:"test_path"`

	// DBPath overrides the run history location.
	DBPath string `yaml:"db_path"`

	// Delimiter separates record fields. Default: ",".
	Delimiter string `yaml:"delimiter"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		AttributeCount: 16,
		LearningRate:   0.2,
		Workers:        1,
		Delimiter:      ",",
	}
}

// ApplyEnv overlays LETTERID_* environment variables onto cfg.
func ApplyEnv(cfg Config) (Config, error) {
	if v := os.Getenv("LETTERID_ATTRIBUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("LETTERID_ATTRIBUTES: %w", err)
		}
		cfg.AttributeCount = n
	}
	if v := os.Getenv("LETTERID_LEARNING_RATE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("LETTERID_LEARNING_RATE: %w", err)
		}
		cfg.LearningRate = f
	}
	if v := os.Getenv("LETTERID_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("LETTERID_SEED: %w", err)
		}
		cfg.Seed = n
	}
	if v := os.Getenv("LETTERID_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("LETTERID_WORKERS: %w", err)
		}
		cfg.Workers = n
	}
	if v := os.Getenv("LETTERID_TRAIN"); v != "" {
		cfg.TrainPath = v
	}
	if v := os.Getenv("LETTERID_TEST"); v != "" {
		cfg.TestPath = v
	}
	if v := os.Getenv("LETTERID_DB"); v != "" {
		cfg.DBPath = v
	}
	return cfg, nil
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() (Config, error) {
	return ApplyEnv(DefaultConfig())
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if c.AttributeCount <= 0 {
		return fmt.Errorf("attribute count must be positive, got %d", c.AttributeCount)
	}
	if c.LearningRate <= 0 || math.IsInf(c.LearningRate, 0) || math.IsNaN(c.LearningRate) {
		return fmt.Errorf("learning rate must be a positive finite number, got %v", c.LearningRate)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Delimiter == "" {
		return fmt.Errorf("delimiter must not be empty")
	}
	return nil
}
