package domain

import "sync"

// RunSummary aggregates per-document outcomes for one pipeline run.
// It is safe for concurrent use by pipeline workers.
type RunSummary struct {
	// RunID identifies the run in logs and output.
	RunID string

	mu       sync.Mutex
	loaded   int
	accepted int
	rejected int
	byReason map[string]int
}

// NewRunSummary creates an empty summary for the given run ID.
func NewRunSummary(runID string) *RunSummary {
	return &RunSummary{
		RunID:    runID,
		byReason: make(map[string]int),
	}
}

// RecordLoaded counts a document entering the pipeline.
func (s *RunSummary) RecordLoaded() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded++
}

// RecordAccepted counts a document reaching StateAccepted.
func (s *RunSummary) RecordAccepted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accepted++
}

// RecordRejected counts a document reaching StateRejected with reason.
func (s *RunSummary) RecordRejected(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejected++
	s.byReason[reason]++
}

// Loaded returns the number of documents that entered the pipeline.
func (s *RunSummary) Loaded() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Accepted returns the number of accepted documents.
func (s *RunSummary) Accepted() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accepted
}

// Rejected returns the number of rejected documents.
func (s *RunSummary) Rejected() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rejected
}

// ByReason returns a copy of the rejection counts keyed by reason code.
func (s *RunSummary) ByReason() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.byReason))
	for k, v := range s.byReason {
		out[k] = v
	}
	return out
}
