// Package loaders turns raw files into documents. Each loader handles
// one family of file formats; the registry dispatches by extension the
// way the directory scan encounters files.
package loaders

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ussooraj/malayalam-corpus-cleaner/internal/core/domain"
	"github.com/ussooraj/malayalam-corpus-cleaner/internal/core/ports/driven"
	"github.com/ussooraj/malayalam-corpus-cleaner/internal/loaders/docx"
	"github.com/ussooraj/malayalam-corpus-cleaner/internal/loaders/markdown"
	"github.com/ussooraj/malayalam-corpus-cleaner/internal/loaders/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.LoaderRegistry = (*Registry)(nil)

// Registry maps file extensions to loaders.
type Registry struct {
	byExt map[string]driven.Loader
}

// NewRegistry creates a registry over the given loaders. A later
// loader claiming an extension already registered wins.
func NewRegistry(loaders ...driven.Loader) *Registry {
	r := &Registry{byExt: make(map[string]driven.Loader)}
	for _, l := range loaders {
		for _, ext := range l.Extensions() {
			r.byExt[strings.ToLower(ext)] = l
		}
	}
	return r
}

// LoaderFor returns the loader for the file at path.
func (r *Registry) LoaderFor(path string) (driven.Loader, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if l, ok := r.byExt[ext]; ok {
		return l, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFile, filepath.Base(path))
}

// DefaultRegistry returns a registry with every built-in loader.
func DefaultRegistry() *Registry {
	return NewRegistry(plaintext.New(), markdown.New(), docx.New())
}
