package domain

// State is a document's position in the pipeline. Transitions are
// strictly forward; any filter failure jumps directly to StateRejected.
type State int

const (
	// StateLoaded means the loader has produced the document.
	StateLoaded State = iota

	// StateNormalized means clean text has been produced.
	StateNormalized

	// StateChunked means the clean text has been split into chunks.
	StateChunked

	// StateRuleFiltered means every rule filter has passed.
	StateRuleFiltered

	// StateScored means the scoring backend returned a document score.
	StateScored

	// StateScoreSkipped means scoring is disabled by configuration.
	StateScoreSkipped

	// StateScoreFiltered means the score passed the threshold.
	StateScoreFiltered

	// StateDedupChecked means the content hash was not seen before.
	StateDedupChecked

	// StateAccepted is the terminal accepted state.
	StateAccepted

	// StateRejected is the terminal rejected state.
	StateRejected
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateLoaded:
		return "LOADED"
	case StateNormalized:
		return "NORMALIZED"
	case StateChunked:
		return "CHUNKED"
	case StateRuleFiltered:
		return "RULE_FILTERED"
	case StateScored:
		return "SCORED"
	case StateScoreSkipped:
		return "SCORE_SKIPPED"
	case StateScoreFiltered:
		return "SCORE_FILTERED"
	case StateDedupChecked:
		return "DEDUP_CHECKED"
	case StateAccepted:
		return "ACCEPTED"
	case StateRejected:
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether s is a terminal state.
func (s State) Terminal() bool {
	return s == StateAccepted || s == StateRejected
}

// transitions is the full pipeline transition table. Every non-terminal
// state other than LOADED and NORMALIZED can also short-circuit to
// REJECTED.
var transitions = map[State][]State{
	StateLoaded:        {StateNormalized},
	StateNormalized:    {StateChunked},
	StateChunked:       {StateRuleFiltered, StateRejected},
	StateRuleFiltered:  {StateScored, StateScoreSkipped, StateRejected},
	StateScored:        {StateScoreFiltered, StateRejected},
	StateScoreSkipped:  {StateDedupChecked, StateRejected},
	StateScoreFiltered: {StateDedupChecked, StateRejected},
	StateDedupChecked:  {StateAccepted},
	StateAccepted:      nil,
	StateRejected:      nil,
}

// Next returns the states reachable from s.
func (s State) Next() []State {
	return transitions[s]
}

// CanTransition reports whether moving from s to to is a legal
// pipeline transition.
func (s State) CanTransition(to State) bool {
	for _, n := range transitions[s] {
		if n == to {
			return true
		}
	}
	return false
}
