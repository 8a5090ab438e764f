// Package memory provides an in-memory deduplication index scoped to
// a single run.
package memory

import (
	"sync"

	"github.com/ussooraj/malayalam-corpus-cleaner/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.DedupIndex = (*Index)(nil)

// Index tracks content hashes seen during the current run.
type Index struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewIndex creates an empty in-memory index.
func NewIndex() *Index {
	return &Index{seen: make(map[string]struct{})}
}

// Add records a hash and reports whether it was seen for the first
// time. The check and insert happen under one lock, so concurrent
// workers never both see first=true for the same hash.
func (i *Index) Add(hash string) (bool, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if _, ok := i.seen[hash]; ok {
		return false, nil
	}
	i.seen[hash] = struct{}{}
	return true, nil
}

// Len returns the number of distinct hashes recorded.
func (i *Index) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.seen)
}

// Close is a no-op for the in-memory index.
func (i *Index) Close() error {
	return nil
}
