package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/papapumpkin/reunion/internal/bench"
)

// ErrInvalidConfig indicates a configuration value is out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// MaxLevels bounds bench.levels to what the benchmark accepts.
const MaxLevels = bench.MaxLevels

// BenchConfig holds the parameters of the big-merge workload.
type BenchConfig struct {
	Levels int    `mapstructure:"levels" json:"levels"`
	Trials int    `mapstructure:"trials" json:"trials"`
	Seed   uint64 `mapstructure:"seed" json:"seed"`
}

// Config holds all runtime configuration for a reunion invocation.
// Values are populated from .reunion.yaml, REUNION_* env vars, and CLI flags.
type Config struct {
	Bench         BenchConfig `mapstructure:"bench"`
	TelemetryPath string      `mapstructure:"telemetry_path"`
	Verbose       bool        `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("bench.levels", 10)
	viper.SetDefault("bench.trials", 10000)
	viper.SetDefault("bench.seed", 1)
	viper.SetDefault("telemetry_path", "")
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every value is usable.
func (c Config) Validate() error {
	if c.Bench.Levels < 1 || c.Bench.Levels > MaxLevels {
		return fmt.Errorf("%w: bench.levels must be in [1, %d], got %d", ErrInvalidConfig, MaxLevels, c.Bench.Levels)
	}
	if c.Bench.Trials < 0 {
		return fmt.Errorf("%w: bench.trials must be non-negative, got %d", ErrInvalidConfig, c.Bench.Trials)
	}
	return nil
}
