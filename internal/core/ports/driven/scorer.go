package driven

import (
	"context"

	"github.com/ussooraj/malayalam-corpus-cleaner/internal/core/domain"
)

// Scorer judges text quality. Implementations include a remote
// Gemini API client and a local Ollama inference call; the pipeline
// holds only this interface and is swapped by configuration.
//
// A Scorer owns its retry policy. When retries are exhausted it
// returns an error wrapping domain.ErrScoringUnavailable; the
// pipeline converts that into a per-document rejection rather than
// aborting the run.
type Scorer interface {
	// Score evaluates text and returns a 1-10 quality score with a
	// rationale. The context carries the per-call timeout.
	Score(ctx context.Context, text string) (domain.ScoreResult, error)

	// Name identifies the backend in logs.
	Name() string
}
