// Package driving provides interfaces for entry points (primary/inbound
// ports) such as the CLI.
package driving

import (
	"context"

	"github.com/ussooraj/malayalam-corpus-cleaner/internal/core/domain"
)

// PipelineRunner drives one cleaning run over the configured input
// directory and returns the aggregated outcome.
type PipelineRunner interface {
	// Run processes every supported file in the input directory.
	// Per-document failures become rejection records; only
	// configuration and output-storage errors are returned.
	Run(ctx context.Context) (*domain.RunSummary, error)
}
