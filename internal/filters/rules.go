// Package filters provides the cheap, deterministic predicates applied
// before any LLM scoring, and the score threshold filter applied after.
package filters

import (
	"strings"
	"unicode"

	"github.com/ussooraj/malayalam-corpus-cleaner/internal/core/domain"
)

// Rule is a pure, side-effect-free predicate over document text.
type Rule interface {
	// Name is the reason code recorded when the rule fails.
	Name() string

	// Evaluate judges the text. A failing verdict carries Name().
	Evaluate(text string) domain.Verdict
}

// MinWordCount fails documents with fewer than Min whitespace-separated
// words. This is the cheapest rule and runs first.
type MinWordCount struct {
	Min int
}

// Name returns the rule's reason code.
func (r MinWordCount) Name() string { return domain.ReasonMinWordCount }

// Evaluate counts words and compares against the minimum.
func (r MinWordCount) Evaluate(text string) domain.Verdict {
	if len(strings.Fields(text)) < r.Min {
		return domain.Fail(r.Name())
	}
	return domain.Pass()
}

// ScriptRatio fails documents whose share of Malayalam runes among all
// non-whitespace runes is below Threshold. A document with zero
// non-whitespace runes fails by definition, not by division error.
type ScriptRatio struct {
	// Threshold is the minimum acceptable ratio, inclusive, in [0,1].
	Threshold float64
}

// Name returns the rule's reason code.
func (r ScriptRatio) Name() string { return domain.ReasonMalayalamRatio }

// Evaluate computes malayalam / non-whitespace runes and compares with
// >= against the threshold.
func (r ScriptRatio) Evaluate(text string) domain.Verdict {
	var malayalam, total int
	for _, c := range text {
		if unicode.IsSpace(c) {
			continue
		}
		total++
		if c >= 0x0D00 && c <= 0x0D7F {
			malayalam++
		}
	}
	if total == 0 {
		return domain.Fail(r.Name())
	}
	if float64(malayalam)/float64(total) >= r.Threshold {
		return domain.Pass()
	}
	return domain.Fail(r.Name())
}
