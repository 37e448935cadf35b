// internal/common/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"marketplace-workers/internal/matching"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const minimalConfig = `
camunda:
  broker_address: localhost:26500
database:
  postgres:
    host: localhost
    database: marketplace
    user: ${TEST_DB_USER}
`

func TestLoadFromFile_Defaults(t *testing.T) {
	t.Setenv("TEST_DB_USER", "matcher")

	cfg, err := LoadFromFile(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "matcher", cfg.Database.Postgres.User)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.Equal(t, "postgres", cfg.Matching.Source)
	assert.Equal(t, "providers", cfg.Matching.ProviderIndex)
	assert.Equal(t, 3, cfg.Matching.DefaultTopN)
	assert.Equal(t, time.Duration(0), cfg.Matching.CacheTTLDuration())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, ":8080", cfg.Server.Address)

	assert.Equal(t, matching.DefaultScoringConfig(), cfg.Scoring.ToScoringConfig())
}

func TestLoadFromFile_ScoringOverride(t *testing.T) {
	t.Setenv("TEST_DB_USER", "matcher")

	body := minimalConfig + `
scoring:
  weights:
    city_match: 20
    rating: 35
  badges:
    reliable_min_reviews: 40
`
	cfg, err := LoadFromFile(writeConfig(t, body))
	require.NoError(t, err)

	sc := cfg.Scoring.ToScoringConfig()
	assert.Equal(t, 20.0, sc.Weights.CityMatch)
	assert.Equal(t, 35.0, sc.Weights.Rating)
	assert.Equal(t, 20.0, sc.Weights.Experience)
	assert.Equal(t, 40, sc.ReliableMinReviewsCnt)
	assert.Equal(t, 4.8, sc.TopRatedMinRating)
}

func TestLoadFromFile_ZeroDefaultTopN(t *testing.T) {
	t.Setenv("TEST_DB_USER", "matcher")

	cfg, err := LoadFromFile(writeConfig(t, minimalConfig+`
matching:
  default_top_n: 0
`))
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Matching.DefaultTopN)
}

func TestLoadFromFile_EnvOverride(t *testing.T) {
	t.Setenv("TEST_DB_USER", "matcher")
	t.Setenv("MATCHING_SOURCE", "inline")

	cfg, err := LoadFromFile(writeConfig(t, minimalConfig+`
matching:
  source: postgres
`))
	require.NoError(t, err)
	assert.Equal(t, "inline", cfg.Matching.Source)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectError string
	}{
		{
			name:        "missing broker",
			body:        "matching:\n  source: inline\n",
			expectError: "camunda.broker_address is required",
		},
		{
			name:        "postgres source without host",
			body:        "camunda:\n  broker_address: zeebe:26500\n",
			expectError: "database.postgres.host is required",
		},
		{
			name: "elasticsearch source without addresses",
			body: `
camunda:
  broker_address: zeebe:26500
matching:
  source: elasticsearch
`,
			expectError: "database.elasticsearch.addresses is required",
		},
		{
			name: "unknown source",
			body: `
camunda:
  broker_address: zeebe:26500
matching:
  source: mongodb
`,
			expectError: "matching.source",
		},
		{
			name: "cache without redis",
			body: `
camunda:
  broker_address: zeebe:26500
matching:
  source: inline
  cache_ttl: 30
`,
			expectError: "database.redis.address is required",
		},
		{
			name: "weights off scale",
			body: `
camunda:
  broker_address: zeebe:26500
matching:
  source: inline
scoring:
  weights:
    city_match: 60
`,
			expectError: "weights must sum to 100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestGetWorkerConfig(t *testing.T) {
	cfg := &Config{Workers: map[string]WorkerConfig{
		"match-providers": {Enabled: false, MaxJobsActive: 2, Timeout: 1000},
	}}

	assert.Equal(t, 2, GetWorkerConfig(cfg, "match-providers").MaxJobsActive)
	assert.False(t, IsWorkerEnabled(cfg, "match-providers"))

	fallback := GetWorkerConfig(cfg, "score-provider")
	assert.True(t, fallback.Enabled)
	assert.Equal(t, 5, fallback.MaxJobsActive)
	assert.True(t, IsWorkerEnabled(cfg, "score-provider"))
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
}
