package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "estimator.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("empty filename gives defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		require.Equal(t, "out_gains.csv", cfg.GainsFile)
		require.Equal(t, "out_lots.csv", cfg.LotsFile)
		require.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("file values win, unset fields keep defaults", func(t *testing.T) {
		path := writeConfig(t, "gains_file: gains-2024.csv\nlog_level: debug\n")
		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "gains-2024.csv", cfg.GainsFile)
		require.Equal(t, "out_lots.csv", cfg.LotsFile)
		require.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("env overrides log level", func(t *testing.T) {
		t.Setenv("ESTIMATOR_LOG_LEVEL", "warn")
		cfg, err := Load("")
		require.NoError(t, err)
		require.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := Load("no-such-file.yaml")
		require.Error(t, err)
	})

	t.Run("bad override ratio is an error", func(t *testing.T) {
		path := writeConfig(t, "split_overrides:\n  - instrument: NVDA\n    date: 2024-06-10\n    ratio: ten\n")
		_, err := Load(path)
		require.Error(t, err)
	})
}

func TestOverrideFor(t *testing.T) {
	path := writeConfig(t, `split_overrides:
  - instrument: NVDA
    date: 2024-06-10
    ratio: "10"
  - instrument: CMG
    date: 2024-06-26
    ratio: "50"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	ratio, ok := cfg.OverrideFor("NVDA", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	require.True(t, ratio.Equal(decimal.NewFromInt(10)))

	_, ok = cfg.OverrideFor("NVDA", time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC))
	require.False(t, ok)

	_, ok = cfg.OverrideFor("AAPL", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	require.False(t, ok)
}
