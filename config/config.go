// SPDX-License-Identifier: MIT
//
// File: config.go
// Role: Runtime configuration of the splitnet CLI, loaded through viper.

// Package config holds the settings of the splitnet command: bootstrap, filter and
// confidence-network parameters plus logging and metrics output. Values come from viper
// (defaults, optional YAML file, SPLITNET_* environment, bound flags) and are checked
// with go-playground/validator struct tags.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/katalvlaran/splitnet/analysis"
	"github.com/katalvlaran/splitnet/bootstrap"
	"github.com/katalvlaran/splitnet/recompute"
)

// EnvPrefix prefixes environment overrides, e.g. SPLITNET_BOOTSTRAP_RUNS.
const EnvPrefix = "SPLITNET"

// Config is the full configuration tree.
type Config struct {
	Bootstrap BootstrapConfig `mapstructure:"bootstrap"`
	Filter    FilterConfig    `mapstructure:"filter"`
	Network   NetworkConfig   `mapstructure:"network"`
	Log       LogConfig       `mapstructure:"log"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// BootstrapConfig controls replicate resampling.
type BootstrapConfig struct {
	// Runs is the number of replicates.
	Runs int `mapstructure:"runs" validate:"gte=1"`
	// Length is the resample length; -1 means the original number of characters.
	Length int `mapstructure:"length" validate:"eq=-1|gte=1"`
	// Seed of the replicate RNG; 0 draws a fresh seed.
	Seed int64 `mapstructure:"seed"`
	// Workers computes replicates concurrently.
	Workers int `mapstructure:"workers" validate:"gte=1,lte=256"`
	// Level is the simultaneous confidence level.
	Level float64 `mapstructure:"level" validate:"gt=0,lt=1"`
	// Percentages rescales confidences to percent after the run.
	Percentages bool `mapstructure:"percentages"`
	// Kind names the built-in recompute routine.
	Kind string `mapstructure:"kind" validate:"oneof=binary compatible"`
}

// FilterConfig bounds the dimension and circular filters.
type FilterConfig struct {
	MaxDimension int `mapstructure:"max_dimension" validate:"gte=1"`
	MaxCrossing  int `mapstructure:"max_crossing" validate:"gte=1"`
}

// NetworkConfig controls the confidence network.
type NetworkConfig struct {
	WeightMethod string  `mapstructure:"weight_method" validate:"oneof=frequency lower estimated midpoint upper"`
	Cutoff       float64 `mapstructure:"cutoff" validate:"gte=0,lte=1"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// MetricsConfig names a Prometheus textfile written at exit; empty disables it.
type MetricsConfig struct {
	File string `mapstructure:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Bootstrap: BootstrapConfig{
			Runs:    100,
			Length:  -1,
			Seed:    0,
			Workers: 1,
			Level:   0.95,
			Kind:    recompute.Binary.String(),
		},
		Filter: FilterConfig{
			MaxDimension: 2,
			MaxCrossing:  1,
		},
		Network: NetworkConfig{
			WeightMethod: analysis.Frequency.String(),
			Cutoff:       0,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// SetDefaults registers Default() on v and enables SPLITNET_* environment overrides.
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("bootstrap.runs", d.Bootstrap.Runs)
	v.SetDefault("bootstrap.length", d.Bootstrap.Length)
	v.SetDefault("bootstrap.seed", d.Bootstrap.Seed)
	v.SetDefault("bootstrap.workers", d.Bootstrap.Workers)
	v.SetDefault("bootstrap.level", d.Bootstrap.Level)
	v.SetDefault("bootstrap.percentages", d.Bootstrap.Percentages)
	v.SetDefault("bootstrap.kind", d.Bootstrap.Kind)

	v.SetDefault("filter.max_dimension", d.Filter.MaxDimension)
	v.SetDefault("filter.max_crossing", d.Filter.MaxCrossing)

	v.SetDefault("network.weight_method", d.Network.WeightMethod)
	v.SetDefault("network.cutoff", d.Network.Cutoff)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetDefault("metrics.file", d.Metrics.File)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load unmarshals v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// BootstrapOptions translates the bootstrap section into driver options.
func (c *Config) BootstrapOptions() []bootstrap.Option {
	opts := []bootstrap.Option{
		bootstrap.WithRuns(c.Bootstrap.Runs),
		bootstrap.WithLength(c.Bootstrap.Length),
		bootstrap.WithSeed(c.Bootstrap.Seed),
		bootstrap.WithWorkers(c.Bootstrap.Workers),
		bootstrap.WithLevel(c.Bootstrap.Level),
	}
	if c.Bootstrap.Percentages {
		opts = append(opts, bootstrap.WithPercentages())
	}

	return opts
}

// RecomputeKind parses bootstrap.kind.
func (c *Config) RecomputeKind() (recompute.Kind, error) {
	return recompute.ParseKind(c.Bootstrap.Kind)
}

// WeightMethod parses network.weight_method.
func (c *Config) WeightMethod() (analysis.WeightMethod, error) {
	return analysis.ParseWeightMethod(c.Network.WeightMethod)
}
