// Package gemini provides a scoring backend using the Google
// Generative Language API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/ussooraj/malayalam-corpus-cleaner/internal/adapters/driven/scorer"
	"github.com/ussooraj/malayalam-corpus-cleaner/internal/core/domain"
	"github.com/ussooraj/malayalam-corpus-cleaner/internal/core/ports/driven"
)

// Ensure Scorer implements the interface.
var _ driven.Scorer = (*Scorer)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-1.5-flash"
	DefaultTimeout = 60 * time.Second
	DefaultRPS     = 1.0
)

// Config holds configuration for the Gemini scoring backend.
type Config struct {
	// APIKey is the API credential (required). Read from the
	// environment by the caller, never from the config file.
	APIKey string

	// BaseURL is the API base URL. Overridable for tests and proxies.
	BaseURL string

	// Model is the model name (default: gemini-1.5-flash).
	Model string

	// Timeout is the per-request timeout (default: 60s).
	Timeout time.Duration

	// RequestsPerSecond caps the sustained request rate to stay
	// within the API quota (default: 1).
	RequestsPerSecond float64
}

// Scorer scores text quality through the Gemini generateContent API.
type Scorer struct {
	client  *http.Client
	limiter *rate.Limiter
	baseURL string
	apiKey  string
	model   string
}

// generateRequest is the generateContent request format.
type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string  `json:"response_mime_type"`
	Temperature      float64 `json:"temperature"`
}

// generateResponse is the generateContent response format.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// New creates a Gemini scoring backend.
func New(cfg Config) (*Scorer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRPS
	}

	return &Scorer{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}, nil
}

// Name identifies the backend in logs.
func (s *Scorer) Name() string {
	return "gemini/" + s.model
}

// Score evaluates text and returns the model's quality judgement.
// The call waits on the rate limiter before issuing the request, so
// concurrent pipeline workers collectively respect the API quota.
func (s *Scorer) Score(ctx context.Context, text string) (domain.ScoreResult, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return domain.ScoreResult{}, fmt.Errorf("rate limit wait: %w", err)
	}

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: scorer.Prompt(text)}}}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			Temperature:      0,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return domain.ScoreResult{}, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", s.baseURL, s.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return domain.ScoreResult{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.ScoreResult{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return domain.ScoreResult{}, fmt.Errorf("gemini error (status %d): failed to read response", resp.StatusCode)
		}
		return domain.ScoreResult{}, fmt.Errorf("gemini error (status %d): %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return domain.ScoreResult{}, fmt.Errorf("decode response: %w", err)
	}
	if genResp.Error != nil {
		return domain.ScoreResult{}, fmt.Errorf("gemini error: %s", genResp.Error.Message)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return domain.ScoreResult{}, fmt.Errorf("gemini: empty response")
	}

	parsed, err := scorer.ParseResponse(genResp.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		return domain.ScoreResult{}, fmt.Errorf("gemini: %w", err)
	}

	return domain.ScoreResult{Score: parsed.Score, Rationale: parsed.Reason}, nil
}
