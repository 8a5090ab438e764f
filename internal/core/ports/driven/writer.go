package driven

import "github.com/ussooraj/malayalam-corpus-cleaner/internal/core/domain"

// CorpusWriter persists records to the two output streams. Each append
// is one complete record or nothing; the streams are independent and
// order-preserving within themselves.
//
// Write failures are fatal for the run: output integrity is the
// product's core guarantee, so the pipeline stops rather than silently
// dropping accepted output.
type CorpusWriter interface {
	// Accept appends an accepted record.
	Accept(rec domain.CorpusRecord) error

	// Reject appends a rejected record; rec.Reason must be set.
	Reject(rec domain.CorpusRecord) error

	// Close flushes and closes both streams.
	Close() error
}
