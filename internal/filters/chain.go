package filters

import "github.com/ussooraj/malayalam-corpus-cleaner/internal/core/domain"

// Chain evaluates rules in a fixed order, cheapest first, and stops at
// the first failure. The failing rule's reason code is the verdict's
// reason; remaining rules are never evaluated.
type Chain struct {
	rules []Rule
}

// NewChain creates a chain over the given rules, evaluated in order.
func NewChain(rules ...Rule) *Chain {
	return &Chain{rules: rules}
}

// Evaluate runs the chain against text.
func (c *Chain) Evaluate(text string) domain.Verdict {
	for _, rule := range c.rules {
		if v := rule.Evaluate(text); !v.Passed {
			return v
		}
	}
	return domain.Pass()
}

// Len returns the number of rules in the chain.
func (c *Chain) Len() int {
	return len(c.rules)
}
