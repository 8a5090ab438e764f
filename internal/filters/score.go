package filters

import (
	"fmt"
	"math"
	"strings"

	"github.com/ussooraj/malayalam-corpus-cleaner/internal/core/domain"
)

// ScoreThreshold compares a document score against the configured
// threshold. The threshold is inclusive: score == threshold passes.
func ScoreThreshold(score, threshold float64) domain.Verdict {
	if score >= threshold {
		return domain.Pass()
	}
	return domain.Fail(domain.ReasonScoreThreshold)
}

// Aggregation selects how per-chunk scores roll up to a document score.
type Aggregation string

const (
	// AggregationMean averages the chunk scores.
	AggregationMean Aggregation = "mean"

	// AggregationMin takes the worst chunk score.
	AggregationMin Aggregation = "min"

	// AggregationFirst takes the first chunk's score only.
	AggregationFirst Aggregation = "first"
)

// Valid reports whether a is a known aggregation policy.
func (a Aggregation) Valid() bool {
	switch a {
	case AggregationMean, AggregationMin, AggregationFirst:
		return true
	}
	return false
}

// Aggregate rolls per-chunk results up to one document result. Scores
// are rounded to whole points, the backend's native precision. The
// rationale concatenates per-chunk rationales tagged by chunk index;
// a single-chunk document keeps its rationale untagged.
func Aggregate(policy Aggregation, results []domain.ScoreResult) domain.ScoreResult {
	if len(results) == 0 {
		return domain.ScoreResult{}
	}
	if len(results) == 1 {
		return domain.ScoreResult{
			Score:     math.Round(results[0].Score),
			Rationale: results[0].Rationale,
		}
	}

	var score float64
	switch policy {
	case AggregationMin:
		score = results[0].Score
		for _, r := range results[1:] {
			if r.Score < score {
				score = r.Score
			}
		}
	case AggregationFirst:
		score = results[0].Score
	default: // AggregationMean
		for _, r := range results {
			score += r.Score
		}
		score /= float64(len(results))
	}

	tagged := make([]string, len(results))
	for i, r := range results {
		tagged[i] = fmt.Sprintf("[chunk %d] %s", i, r.Rationale)
	}

	return domain.ScoreResult{
		Score:     math.Round(score),
		Rationale: strings.Join(tagged, "; "),
	}
}
