package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFile indicates a file type no loader handles.
	ErrUnsupportedFile = errors.New("unsupported file type")

	// ErrInvalidConfig indicates the run configuration cannot be used.
	// Fatal: the pipeline refuses to start on it.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrScoringUnavailable indicates the scoring backend failed after
	// exhausting its retries. The affected document is rejected with
	// ReasonScoringError; the run continues.
	ErrScoringUnavailable = errors.New("scoring backend unavailable")
)
