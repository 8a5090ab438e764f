// Package jsonl writes corpus records as JSON Lines, one record per
// line, split into an accepted stream and a rejected stream.
package jsonl

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ussooraj/malayalam-corpus-cleaner/internal/core/domain"
	"github.com/ussooraj/malayalam-corpus-cleaner/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.CorpusWriter = (*Writer)(nil)

// Writer appends records to the two output files. Each record is
// marshaled and written with a single Write call, so lines from
// concurrent workers never interleave.
type Writer struct {
	mu       sync.Mutex
	accepted *os.File
	rejected *os.File
}

// NewWriter opens the accepted and rejected streams in append mode,
// creating parent directories as needed.
func NewWriter(acceptedPath, rejectedPath string) (*Writer, error) {
	accepted, err := openAppend(acceptedPath)
	if err != nil {
		return nil, fmt.Errorf("opening accepted stream: %w", err)
	}
	rejected, err := openAppend(rejectedPath)
	if err != nil {
		accepted.Close()
		return nil, fmt.Errorf("opening rejected stream: %w", err)
	}
	return &Writer{accepted: accepted, rejected: rejected}, nil
}

func openAppend(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

// Accept writes a record to the accepted stream.
func (w *Writer) Accept(rec domain.CorpusRecord) error {
	return w.write(w.accepted, rec)
}

// Reject writes a record to the rejected stream.
func (w *Writer) Reject(rec domain.CorpusRecord) error {
	return w.write(w.rejected, rec)
}

func (w *Writer) write(f *os.File, rec domain.CorpusRecord) error {
	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling record %s: %w", rec.ID, err)
	}
	line = append(line, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := f.Write(line); err != nil {
		return fmt.Errorf("writing record %s: %w", rec.ID, err)
	}
	return nil
}

// Close flushes and closes both streams.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var firstErr error
	if err := w.accepted.Close(); err != nil {
		firstErr = err
	}
	if err := w.rejected.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
