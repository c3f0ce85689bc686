package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
environment: test
media:
  root: ./media
model:
  path: ./model.json
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.Model.Window)
	assert.Equal(t, "MSFT", cfg.Forecast.DefaultTicker)
	assert.Equal(t, 10, cfg.Forecast.BacktestYears)
	assert.Equal(t, 2, cfg.Forecast.ForecastYears)
	assert.Equal(t, "none", cfg.History.Backend)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadValidates(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing environment", "media: {root: ./m}\nmodel: {path: ./m.json}", "environment is required"},
		{"missing media root", "environment: test\nmodel: {path: ./m.json}", "media.root is required"},
		{"missing model path", "environment: test\nmedia: {root: ./m}", "model.path is required"},
		{"bad backend", minimalYAML + "history:\n  backend: postgres\n", "history.backend"},
		{"tiny window", minimalYAML + "  window: 1\n", "model.window"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("MODEL_PATH", "/opt/models/lstm.json")
	t.Setenv("HISTORY_BACKEND", "kafka")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := LoadWithEnv(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "/opt/models/lstm.json", cfg.Model.Path)
	assert.Equal(t, "kafka", cfg.History.Backend)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.History.Kafka.Brokers)
	assert.True(t, cfg.Cache.Redis.Enabled)
	assert.Equal(t, "redis:6379", cfg.Cache.Redis.Addr)
}
