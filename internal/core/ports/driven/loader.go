package driven

import (
	"context"

	"github.com/ussooraj/malayalam-corpus-cleaner/internal/core/domain"
)

// Loader turns one raw file into documents. A single file may yield
// several documents (wiki dump files carry many <doc> blocks).
type Loader interface {
	// Load reads the file at path and returns the documents in it.
	// An empty slice with nil error means the file held no usable text.
	Load(ctx context.Context, path string) ([]domain.Document, error)

	// Extensions returns the file extensions this loader handles,
	// lower case including the dot. The empty string matches
	// extensionless files.
	Extensions() []string
}

// LoaderRegistry selects a Loader for a file by its extension.
type LoaderRegistry interface {
	// LoaderFor returns the loader registered for the file at path,
	// or domain.ErrUnsupportedFile when none matches.
	LoaderFor(path string) (Loader, error)
}
