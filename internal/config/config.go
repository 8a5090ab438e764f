// Package config loads and validates the YAML run configuration.
// Configuration errors are fatal: the pipeline refuses to start on a
// config that cannot meaningfully drive a run.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ussooraj/malayalam-corpus-cleaner/internal/core/domain"
)

// Provider names accepted for llm_scorer.provider.
const (
	ProviderAPI   = "api"
	ProviderLocal = "local"
)

// APIKeyEnv is the environment variable holding the remote scorer's
// API key. Credentials are never read from the config file.
const APIKeyEnv = "GEMINI_API_KEY"

// Config is the full run configuration.
type Config struct {
	Paths     Paths     `yaml:"paths"`
	Filters   Filters   `yaml:"filters"`
	Chunking  Chunking  `yaml:"chunking"`
	LLMScorer LLMScorer `yaml:"llm_scorer"`
	Dedup     Dedup     `yaml:"dedup"`
}

// Paths locates input, output and the run log.
type Paths struct {
	RawDataDir       string `yaml:"raw_data_dir"`
	ProcessedDataDir string `yaml:"processed_data_dir"`
	OutputFilename   string `yaml:"output_filename"`
	RejectedFilename string `yaml:"rejected_filename"`
	LogFilename      string `yaml:"log_filename"`
}

// Filters holds the rule filter thresholds.
type Filters struct {
	MalayalamRatioThreshold float64 `yaml:"malayalam_ratio_threshold"`
	MinWordCount            int     `yaml:"min_word_count"`
}

// Chunking controls how documents are split for scoring.
type Chunking struct {
	Enabled       bool `yaml:"enabled"`
	MaxChunkChars int  `yaml:"max_chunk_chars"`
}

// LLMScorer selects and tunes the scoring backend.
type LLMScorer struct {
	Enabled           bool    `yaml:"enabled"`
	Provider          string  `yaml:"provider"`
	ScoreThreshold    float64 `yaml:"score_threshold"`
	Aggregation       string  `yaml:"aggregation"`
	Concurrency       int     `yaml:"concurrency"`
	TimeoutSeconds    int     `yaml:"timeout_seconds"`
	MaxRetries        int     `yaml:"max_retries"`
	RetryDelaySeconds int     `yaml:"retry_delay_seconds"`
	API               API     `yaml:"api"`
	Local             Local   `yaml:"local"`
}

// API configures the remote scoring backend.
type API struct {
	Model             string  `yaml:"model"`
	BaseURL           string  `yaml:"base_url"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// Local configures the local inference backend.
type Local struct {
	BaseURL       string `yaml:"base_url"`
	Model         string `yaml:"model"`
	ContextWindow int    `yaml:"context_window"`
}

// Dedup controls cross-run deduplication.
type Dedup struct {
	CrossRun bool   `yaml:"cross_run"`
	StateDir string `yaml:"state_dir"`
}

// Default returns a config populated with working defaults.
// Path fields have no defaults; they must come from the file.
func Default() Config {
	return Config{
		Filters: Filters{
			MalayalamRatioThreshold: 0.8,
			MinWordCount:            5,
		},
		Chunking: Chunking{
			Enabled:       true,
			MaxChunkChars: 4000,
		},
		LLMScorer: LLMScorer{
			Enabled:           false,
			Provider:          ProviderAPI,
			ScoreThreshold:    6,
			Aggregation:       "mean",
			Concurrency:       1,
			TimeoutSeconds:    60,
			MaxRetries:        3,
			RetryDelaySeconds: 5,
			API: API{
				Model:             "gemini-1.5-flash",
				RequestsPerSecond: 1.0,
			},
			Local: Local{
				BaseURL:       "http://localhost:11434",
				Model:         "llama3.2",
				ContextWindow: 8192,
			},
		},
	}
}

// Load reads the YAML file at path over the defaults and validates the
// result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrInvalidConfig, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the config and returns an error wrapping
// domain.ErrInvalidConfig listing every problem found.
func (c *Config) Validate() error {
	var problems []string

	if c.Paths.RawDataDir == "" {
		problems = append(problems, "paths.raw_data_dir is required")
	}
	if c.Paths.ProcessedDataDir == "" {
		problems = append(problems, "paths.processed_data_dir is required")
	}
	if c.Paths.OutputFilename == "" {
		problems = append(problems, "paths.output_filename is required")
	}
	if c.Filters.MalayalamRatioThreshold < 0 || c.Filters.MalayalamRatioThreshold > 1 {
		problems = append(problems, "filters.malayalam_ratio_threshold must be in [0,1]")
	}
	if c.Filters.MinWordCount < 0 {
		problems = append(problems, "filters.min_word_count must not be negative")
	}
	if c.Chunking.Enabled && c.Chunking.MaxChunkChars <= 0 {
		problems = append(problems, "chunking.max_chunk_chars must be positive")
	}

	if c.LLMScorer.Enabled {
		switch c.LLMScorer.Provider {
		case ProviderAPI:
			if os.Getenv(APIKeyEnv) == "" {
				problems = append(problems, APIKeyEnv+" must be set for llm_scorer.provider: api")
			}
		case ProviderLocal:
			if c.LLMScorer.Local.BaseURL == "" {
				problems = append(problems, "llm_scorer.local.base_url is required")
			}
		default:
			problems = append(problems,
				fmt.Sprintf("llm_scorer.provider must be %q or %q, got %q",
					ProviderAPI, ProviderLocal, c.LLMScorer.Provider))
		}
		switch c.LLMScorer.Aggregation {
		case "mean", "min", "first":
		default:
			problems = append(problems,
				fmt.Sprintf("llm_scorer.aggregation must be mean, min or first, got %q",
					c.LLMScorer.Aggregation))
		}
		if c.LLMScorer.Concurrency < 1 {
			problems = append(problems, "llm_scorer.concurrency must be at least 1")
		}
		if c.LLMScorer.TimeoutSeconds <= 0 {
			problems = append(problems, "llm_scorer.timeout_seconds must be positive")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// APIKey returns the remote scorer credential from the environment.
func (c *Config) APIKey() string {
	return os.Getenv(APIKeyEnv)
}

// AcceptedPath is the accepted-stream output file path.
func (c *Config) AcceptedPath() string {
	return filepath.Join(c.Paths.ProcessedDataDir, c.Paths.OutputFilename)
}

// RejectedPath is the rejected-stream output file path. When not set
// explicitly, it derives from the accepted file name.
func (c *Config) RejectedPath() string {
	name := c.Paths.RejectedFilename
	if name == "" {
		base := strings.TrimSuffix(c.Paths.OutputFilename, filepath.Ext(c.Paths.OutputFilename))
		name = base + ".rejected.jsonl"
	}
	return filepath.Join(c.Paths.ProcessedDataDir, name)
}

// DedupStateDir is where the cross-run dedup index lives.
func (c *Config) DedupStateDir() string {
	if c.Dedup.StateDir != "" {
		return c.Dedup.StateDir
	}
	return filepath.Join(c.Paths.ProcessedDataDir, "state")
}
