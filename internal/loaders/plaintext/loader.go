// Package plaintext loads .txt and extensionless files.
package plaintext

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/ussooraj/malayalam-corpus-cleaner/internal/core/domain"
	"github.com/ussooraj/malayalam-corpus-cleaner/internal/core/ports/driven"
	"github.com/ussooraj/malayalam-corpus-cleaner/internal/loaders/wikidoc"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Loader handles plain text files, including wiki-dump files carrying
// multiple <doc> blocks.
type Loader struct{}

// New creates a plain text loader.
func New() *Loader {
	return &Loader{}
}

// Extensions returns the handled extensions. The empty string matches
// extensionless files, which wiki dump shards usually are.
func (l *Loader) Extensions() []string {
	return []string{".txt", ""}
}

// Load reads the file and extracts its documents. Files that are not
// valid UTF-8 are reported as invalid input; the caller logs and skips.
func (l *Loader) Load(_ context.Context, path string) ([]domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8", domain.ErrInvalidInput, path)
	}
	return wikidoc.Extract(string(data), path), nil
}
