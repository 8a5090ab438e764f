package domain

// Rejection reason codes recorded on the rejected output stream.
const (
	ReasonMinWordCount    = "min_word_count"
	ReasonMalayalamRatio  = "malayalam_ratio_threshold"
	ReasonEmptyDocument   = "empty_document"
	ReasonScoreThreshold  = "llm_score_threshold"
	ReasonScoringError    = "scoring_error"
	ReasonDuplicate       = "duplicate"
)

// Verdict is the outcome of a rule filter or the score filter.
// Reason is set exactly when Passed is false.
type Verdict struct {
	Passed bool
	Reason string
}

// Pass returns a passing verdict.
func Pass() Verdict {
	return Verdict{Passed: true}
}

// Fail returns a failing verdict carrying the given reason code.
func Fail(reason string) Verdict {
	return Verdict{Passed: false, Reason: reason}
}
