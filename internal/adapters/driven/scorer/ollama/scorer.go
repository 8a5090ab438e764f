// Package ollama provides a scoring backend using a local Ollama
// inference server, for scoring without any network egress.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ussooraj/malayalam-corpus-cleaner/internal/adapters/driven/scorer"
	"github.com/ussooraj/malayalam-corpus-cleaner/internal/core/domain"
	"github.com/ussooraj/malayalam-corpus-cleaner/internal/core/ports/driven"
)

// Ensure Scorer implements the interface.
var _ driven.Scorer = (*Scorer)(nil)

// Default configuration values.
const (
	DefaultBaseURL       = "http://localhost:11434"
	DefaultModel         = "llama3.2"
	DefaultTimeout       = 120 * time.Second
	DefaultContextWindow = 8192
)

// Config holds configuration for the Ollama scoring backend.
type Config struct {
	// BaseURL is the Ollama API base URL (default: http://localhost:11434).
	BaseURL string

	// Model is the model to use (default: llama3.2).
	Model string

	// Timeout is the request timeout (default: 120s). Local
	// inference on CPU can be slow; the limit still bounds it.
	Timeout time.Duration

	// ContextWindow is the model context size in tokens.
	ContextWindow int
}

// Scorer scores text quality through a local Ollama server.
type Scorer struct {
	client  *http.Client
	baseURL string
	model   string
	numCtx  int
}

// generateRequest is the Ollama /api/generate request format.
type generateRequest struct {
	Model   string   `json:"model"`
	Prompt  string   `json:"prompt"`
	Stream  bool     `json:"stream"`
	Options *options `json:"options,omitempty"`
}

// options holds generation parameters.
type options struct {
	NumPredict  int     `json:"num_predict,omitempty"`
	NumCtx      int     `json:"num_ctx,omitempty"`
	Temperature float64 `json:"temperature"`
}

// generateResponse is the Ollama /api/generate response format.
type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// New creates an Ollama scoring backend.
func New(cfg Config) *Scorer {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.ContextWindow <= 0 {
		cfg.ContextWindow = DefaultContextWindow
	}

	return &Scorer{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		numCtx:  cfg.ContextWindow,
	}
}

// Name identifies the backend in logs.
func (s *Scorer) Name() string {
	return "ollama/" + s.model
}

// Score evaluates text with the local model. Generation runs at
// temperature zero so repeated runs stay deterministic.
func (s *Scorer) Score(ctx context.Context, text string) (domain.ScoreResult, error) {
	reqBody := generateRequest{
		Model:  s.model,
		Prompt: scorer.Prompt(text),
		Stream: false,
		Options: &options{
			NumPredict:  512,
			NumCtx:      s.numCtx,
			Temperature: 0,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return domain.ScoreResult{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/api/generate",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return domain.ScoreResult{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.ScoreResult{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return domain.ScoreResult{}, fmt.Errorf("ollama error (status %d): failed to read response", resp.StatusCode)
		}
		return domain.ScoreResult{}, fmt.Errorf("ollama error (status %d): %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return domain.ScoreResult{}, fmt.Errorf("decode response: %w", err)
	}

	parsed, err := scorer.ParseResponse(genResp.Response)
	if err != nil {
		return domain.ScoreResult{}, fmt.Errorf("ollama: %w", err)
	}

	return domain.ScoreResult{Score: parsed.Score, Rationale: parsed.Reason}, nil
}

// Ping checks the server is reachable without running inference.
func (s *Scorer) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/tags", http.NoBody)
	if err != nil {
		return fmt.Errorf("ollama: create ping request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama: API returned status %d", resp.StatusCode)
	}
	return nil
}
