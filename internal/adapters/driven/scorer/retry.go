package scorer

import (
	"context"
	"fmt"
	"time"

	"github.com/ussooraj/malayalam-corpus-cleaner/internal/core/domain"
	"github.com/ussooraj/malayalam-corpus-cleaner/internal/core/ports/driven"
	"github.com/ussooraj/malayalam-corpus-cleaner/internal/logger"
)

// Ensure Retry implements the interface.
var _ driven.Scorer = (*Retry)(nil)

// Retry decorates a Scorer with bounded retries and exponential
// backoff. After the last attempt fails it returns an error wrapping
// domain.ErrScoringUnavailable so the pipeline records a scoring_error
// rejection instead of aborting the run.
type Retry struct {
	inner     driven.Scorer
	attempts  int
	baseDelay time.Duration
}

// NewRetry wraps inner with up to attempts tries. The delay doubles
// after each failed attempt, starting at baseDelay.
func NewRetry(inner driven.Scorer, attempts int, baseDelay time.Duration) *Retry {
	if attempts < 1 {
		attempts = 1
	}
	return &Retry{inner: inner, attempts: attempts, baseDelay: baseDelay}
}

// Name identifies the wrapped backend.
func (r *Retry) Name() string {
	return r.inner.Name()
}

// Score calls the wrapped backend, retrying transient failures.
func (r *Retry) Score(ctx context.Context, text string) (domain.ScoreResult, error) {
	var lastErr error
	delay := r.baseDelay

	for attempt := 1; attempt <= r.attempts; attempt++ {
		result, err := r.inner.Score(ctx, text)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
		if attempt < r.attempts {
			logger.Warn("%s: attempt %d/%d failed: %v, retrying in %s",
				r.inner.Name(), attempt, r.attempts, err, delay)
			select {
			case <-ctx.Done():
				return domain.ScoreResult{}, fmt.Errorf("%w: %v", domain.ErrScoringUnavailable, ctx.Err())
			case <-time.After(delay):
			}
			delay *= 2
		}
	}

	return domain.ScoreResult{}, fmt.Errorf("%w: %d attempts: %v",
		domain.ErrScoringUnavailable, r.attempts, lastErr)
}
