// SPDX-License-Identifier: MIT

package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/splitnet/analysis"
	"github.com/katalvlaran/splitnet/config"
	"github.com/katalvlaran/splitnet/recompute"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 100, cfg.Bootstrap.Runs)
	assert.Equal(t, -1, cfg.Bootstrap.Length)
	assert.Equal(t, 0.95, cfg.Bootstrap.Level)
	assert.Equal(t, "frequency", cfg.Network.WeightMethod)
}

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)

	cfg, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	kind, err := cfg.RecomputeKind()
	require.NoError(t, err)
	assert.Equal(t, recompute.Binary, kind)

	wm, err := cfg.WeightMethod()
	require.NoError(t, err)
	assert.Equal(t, analysis.Frequency, wm)
	assert.Len(t, cfg.BootstrapOptions(), 5)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "splitnet.yaml")
	doc := []byte("bootstrap:\n  runs: 250\n  seed: 42\n  percentages: true\nfilter:\n  max_dimension: 4\n")
	require.NoError(t, os.WriteFile(path, doc, 0o600))
	t.Setenv("SPLITNET_BOOTSTRAP_WORKERS", "4")

	v := viper.New()
	config.SetDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.Bootstrap.Runs)
	assert.Equal(t, int64(42), cfg.Bootstrap.Seed)
	assert.Equal(t, 4, cfg.Bootstrap.Workers)
	assert.True(t, cfg.Bootstrap.Percentages)
	assert.Equal(t, 4, cfg.Filter.MaxDimension)
	assert.Len(t, cfg.BootstrapOptions(), 6)
}

func TestValidate_Rejects(t *testing.T) {
	cfg := config.Default()
	cfg.Bootstrap.Runs = 0
	cfg.Bootstrap.Length = 0
	cfg.Bootstrap.Level = 1
	cfg.Network.WeightMethod = "median"
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)

	var verrs config.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	fields := make([]string, 0, len(verrs))
	for _, e := range verrs {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{
		"bootstrap.runs", "bootstrap.length", "bootstrap.level", "network.weight_method", "log.format",
	}, fields)
	assert.Contains(t, err.Error(), "5 validation errors")
}

func TestValidate_LengthAcceptsSentinelAndPositive(t *testing.T) {
	cfg := config.Default()
	for _, n := range []int{-1, 1, 500} {
		cfg.Bootstrap.Length = n
		assert.NoError(t, cfg.Validate(), "length %d", n)
	}
	cfg.Bootstrap.Length = -2
	assert.Error(t, cfg.Validate())
}

func TestValidationError_Single(t *testing.T) {
	e := config.ValidationErrors{{Field: "filter.max_crossing", Value: 0, Rule: "gte=1"}}
	assert.Equal(t, "filter.max_crossing: violates gte=1 (got: 0)", e.Error())
}
