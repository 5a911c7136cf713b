package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: "https://example.test/v2"
  timeout_seconds: 5
  sample_limit: 10

acquisition:
  fallback_path: "data/ledger.csv"
  interval_seconds: 60

analytics:
  horizon_days: 7
  starting_capital: 500
  liquidity_cap: 0.15
  liquidity_divisor: 40
  max_confidence: 0.95

storage:
  dsn: ":memory:"

log:
  level: "debug"
  format: "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.test/v2", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout())
	assert.Equal(t, 10, cfg.API.SampleLimit)
	assert.Equal(t, "data/ledger.csv", cfg.Acquisition.FallbackPath)
	assert.Equal(t, time.Minute, cfg.Interval())
	assert.Equal(t, 7, cfg.Analytics.HorizonDays)
	assert.Equal(t, 500.0, cfg.Analytics.StartingCapital)
	assert.Equal(t, 0.15, cfg.Analytics.LiquidityCap)
	assert.Equal(t, ":memory:", cfg.Storage.DSN)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_DefaultsOnEmptyConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}"))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout())
	assert.Equal(t, 20, cfg.API.SampleLimit)
	assert.Equal(t, 300, cfg.Acquisition.IntervalSeconds)
	assert.Equal(t, 14, cfg.Analytics.HorizonDays)
	assert.Equal(t, 100.0, cfg.Analytics.StartingCapital)
	assert.Equal(t, 0.2, cfg.Analytics.LiquidityCap)
	assert.Equal(t, 50.0, cfg.Analytics.LiquidityDivisor)
	assert.Equal(t, 0.99, cfg.Analytics.MaxConfidence)
	assert.Equal(t, 20, cfg.Synthetic.Events)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "api: [not: closed"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MARKET_API_TOKEN", "tok-123")
	t.Setenv("MARKET_API_BASE", "https://override.test")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(writeConfig(t, `
api:
  base_url: "https://original.test"
log:
  level: "info"
`))
	require.NoError(t, err)

	assert.Equal(t, "tok-123", cfg.API.Token)
	assert.Equal(t, "https://override.test", cfg.API.BaseURL)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_TokenNeverFromYAML(t *testing.T) {
	// El token es secreto: el campo tiene yaml:"-" y solo entra por env.
	cfg, err := Load(writeConfig(t, `
api:
  token: "leaked"
`))
	require.NoError(t, err)
	assert.Empty(t, cfg.API.Token)
}

func TestLoad_BundledConfigParses(t *testing.T) {
	cfg, err := Load("config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "testdata/trades.csv", cfg.Acquisition.FallbackPath)
}
