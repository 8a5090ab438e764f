package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ussooraj/malayalam-corpus-cleaner/internal/core/domain"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const minimalYAML = `
paths:
  raw_data_dir: data/raw
  processed_data_dir: data/processed
  output_filename: corpus.jsonl
`

func TestLoad_Minimal(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "data/raw", cfg.Paths.RawDataDir)
	// Defaults fill everything the file omits.
	assert.InDelta(t, 0.8, cfg.Filters.MalayalamRatioThreshold, 0.001)
	assert.Equal(t, 5, cfg.Filters.MinWordCount)
	assert.True(t, cfg.Chunking.Enabled)
	assert.False(t, cfg.LLMScorer.Enabled)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "paths: [not a mapping"))
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestValidate_RequiredPaths(t *testing.T) {
	cfg := Default()
	err := cfg.Validate()
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "raw_data_dir")
	assert.Contains(t, err.Error(), "processed_data_dir")
	assert.Contains(t, err.Error(), "output_filename")
}

func TestValidate_RatioRange(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	cfg.Filters.MalayalamRatioThreshold = 1.5
	assert.ErrorIs(t, cfg.Validate(), domain.ErrInvalidConfig)
}

func TestValidate_ProviderEnum(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	cfg.LLMScorer.Enabled = true
	cfg.LLMScorer.Provider = "cloud"
	err = cfg.Validate()
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "provider")
}

func TestValidate_APIKeyRequired(t *testing.T) {
	t.Setenv(APIKeyEnv, "")

	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	cfg.LLMScorer.Enabled = true
	cfg.LLMScorer.Provider = ProviderAPI
	err = cfg.Validate()
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.Contains(t, err.Error(), APIKeyEnv)

	t.Setenv(APIKeyEnv, "test-key")
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "test-key", cfg.APIKey())
}

func TestValidate_Aggregation(t *testing.T) {
	t.Setenv(APIKeyEnv, "k")

	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)
	cfg.LLMScorer.Enabled = true

	for _, ok := range []string{"mean", "min", "first"} {
		cfg.LLMScorer.Aggregation = ok
		assert.NoError(t, cfg.Validate(), ok)
	}
	cfg.LLMScorer.Aggregation = "median"
	assert.ErrorIs(t, cfg.Validate(), domain.ErrInvalidConfig)
}

func TestOutputPaths(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("data/processed", "corpus.jsonl"), cfg.AcceptedPath())
	assert.Equal(t, filepath.Join("data/processed", "corpus.rejected.jsonl"), cfg.RejectedPath())

	cfg.Paths.RejectedFilename = "bad.jsonl"
	assert.Equal(t, filepath.Join("data/processed", "bad.jsonl"), cfg.RejectedPath())
}

func TestDedupStateDir(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("data/processed", "state"), cfg.DedupStateDir())
	cfg.Dedup.StateDir = "/elsewhere"
	assert.Equal(t, "/elsewhere", cfg.DedupStateDir())
}
