// Package services implements the core pipeline logic behind the
// driving ports.
package services

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ussooraj/malayalam-corpus-cleaner/internal/chunker"
	"github.com/ussooraj/malayalam-corpus-cleaner/internal/core/domain"
	"github.com/ussooraj/malayalam-corpus-cleaner/internal/core/ports/driven"
	"github.com/ussooraj/malayalam-corpus-cleaner/internal/core/ports/driving"
	"github.com/ussooraj/malayalam-corpus-cleaner/internal/filters"
	"github.com/ussooraj/malayalam-corpus-cleaner/internal/logger"
	"github.com/ussooraj/malayalam-corpus-cleaner/internal/textnorm"
)

// Ensure Pipeline implements the interface.
var _ driving.PipelineRunner = (*Pipeline)(nil)

// PipelineConfig carries the tunables the pipeline needs, decoupled
// from the configuration file format.
type PipelineConfig struct {
	// RunID identifies this run. Generated when empty.
	RunID string

	// InputDir is the directory scanned for raw files.
	InputDir string

	// MinWordCount and RatioThreshold drive the rule filters.
	MinWordCount   int
	RatioThreshold float64

	// ChunkingEnabled splits documents before scoring; MaxChunkChars
	// bounds chunk size in runes.
	ChunkingEnabled bool
	MaxChunkChars   int

	// ScoringEnabled turns the scoring stage on. The remaining score
	// fields are ignored when it is off.
	ScoringEnabled bool
	ScoreThreshold float64
	Aggregation    filters.Aggregation
	Concurrency    int
	ScoreTimeout   time.Duration
}

// Pipeline runs documents from the loaders through normalisation,
// filtering, scoring and deduplication into the corpus writer.
type Pipeline struct {
	cfg      PipelineConfig
	registry driven.LoaderRegistry
	scorer   driven.Scorer
	dedup    driven.DedupIndex
	writer   driven.CorpusWriter
	rules    *filters.Chain
	splitter *chunker.Splitter
}

// NewPipeline wires the pipeline from its dependencies. scorer may be
// nil when cfg.ScoringEnabled is false.
func NewPipeline(
	cfg PipelineConfig,
	registry driven.LoaderRegistry,
	scorer driven.Scorer,
	dedup driven.DedupIndex,
	writer driven.CorpusWriter,
) *Pipeline {
	if cfg.RunID == "" {
		cfg.RunID = uuid.NewString()
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.Aggregation == "" {
		cfg.Aggregation = filters.AggregationMean
	}

	var opts []chunker.Option
	if cfg.MaxChunkChars > 0 {
		opts = append(opts, chunker.WithMaxChars(cfg.MaxChunkChars))
	}

	return &Pipeline{
		cfg:      cfg,
		registry: registry,
		scorer:   scorer,
		dedup:    dedup,
		writer:   writer,
		rules: filters.NewChain(
			filters.MinWordCount{Min: cfg.MinWordCount},
			filters.ScriptRatio{Threshold: cfg.RatioThreshold},
		),
		splitter: chunker.New(opts...),
	}
}

// Run processes every supported file under the input directory.
// Per-document failures become rejection records; errors from the
// writer or the dedup index abort the run.
func (p *Pipeline) Run(ctx context.Context) (*domain.RunSummary, error) {
	if p.cfg.ScoringEnabled && p.scorer == nil {
		return nil, fmt.Errorf("%w: scoring enabled without a backend", domain.ErrInvalidConfig)
	}

	summary := domain.NewRunSummary(p.cfg.RunID)
	logger.Info("run %s: scanning %s", summary.RunID, p.cfg.InputDir)

	docs := make(chan domain.Document)
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		fatalErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			fatalErr = err
			cancel()
		})
	}

	for i := 0; i < p.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for doc := range docs {
				if err := p.process(runCtx, doc, summary); err != nil {
					fail(err)
					return
				}
			}
		}()
	}

	walkErr := p.walk(runCtx, docs)
	close(docs)
	wg.Wait()

	if fatalErr != nil {
		return summary, fatalErr
	}
	if walkErr != nil {
		return summary, walkErr
	}

	logger.Info("run %s: loaded %d, accepted %d, rejected %d",
		summary.RunID, summary.Loaded(), summary.Accepted(), summary.Rejected())
	return summary, nil
}

// walk scans the input directory and feeds loaded documents to docs.
// Unsupported and unreadable files are logged and skipped.
func (p *Pipeline) walk(ctx context.Context, docs chan<- domain.Document) error {
	return filepath.WalkDir(p.cfg.InputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning input: %w", err)
		}
		if d.IsDir() {
			return nil
		}
		if ctx.Err() != nil {
			return filepath.SkipAll
		}

		loader, err := p.registry.LoaderFor(path)
		if err != nil {
			logger.Debug("skipping %s: %v", path, err)
			return nil
		}

		loaded, err := loader.Load(ctx, path)
		if err != nil {
			logger.Warn("loading %s: %v", path, err)
			return nil
		}
		logger.Debug("loaded %d document(s) from %s", len(loaded), path)

		for _, doc := range loaded {
			select {
			case docs <- doc:
			case <-ctx.Done():
				return filepath.SkipAll
			}
		}
		return nil
	})
}

// process walks one document through the pipeline states. It returns
// an error only for failures that must abort the whole run.
func (p *Pipeline) process(ctx context.Context, doc domain.Document, summary *domain.RunSummary) error {
	summary.RecordLoaded()
	state := domain.StateLoaded

	record := domain.CorpusRecord{
		ID:         doc.ID,
		SourcePath: doc.SourcePath,
		Title:      doc.Title,
	}
	reject := func(reason string) error {
		record.Reason = reason
		summary.RecordRejected(reason)
		logger.Debug("document %s: %s -> REJECTED (%s)", doc.ID, state, reason)
		if err := p.writer.Reject(record); err != nil {
			return fmt.Errorf("writing rejected record %s: %w", doc.ID, err)
		}
		return nil
	}

	clean := textnorm.Normalize(textnorm.RemoveRepeatedTitle(doc.RawText, doc.Title))
	record.Text = clean
	state = p.advance(doc.ID, state, domain.StateNormalized)

	chunks := p.chunk(doc.ID, clean)
	state = p.advance(doc.ID, state, domain.StateChunked)
	if len(chunks) == 0 {
		return reject(domain.ReasonEmptyDocument)
	}

	if verdict := p.rules.Evaluate(clean); !verdict.Passed {
		return reject(verdict.Reason)
	}
	state = p.advance(doc.ID, state, domain.StateRuleFiltered)

	if p.cfg.ScoringEnabled {
		result, err := p.score(ctx, chunks)
		if err != nil {
			// A cancelled run context means the run is aborting, not
			// that this document failed to score. Keep it off the
			// rejected stream.
			if ctx.Err() != nil {
				return fmt.Errorf("scoring document %s: %w", doc.ID, err)
			}
			logger.Warn("scoring document %s: %v", doc.ID, err)
			return reject(domain.ReasonScoringError)
		}
		state = p.advance(doc.ID, state, domain.StateScored)

		record.LLMScore = &result.Score
		record.LLMReason = &result.Rationale
		if verdict := filters.ScoreThreshold(result.Score, p.cfg.ScoreThreshold); !verdict.Passed {
			return reject(verdict.Reason)
		}
		state = p.advance(doc.ID, state, domain.StateScoreFiltered)
	} else {
		state = p.advance(doc.ID, state, domain.StateScoreSkipped)
	}

	first, err := p.dedup.Add(domain.ContentHash(clean))
	if err != nil {
		return fmt.Errorf("dedup check for %s: %w", doc.ID, err)
	}
	if !first {
		return reject(domain.ReasonDuplicate)
	}
	state = p.advance(doc.ID, state, domain.StateDedupChecked)

	p.advance(doc.ID, state, domain.StateAccepted)
	if err := p.writer.Accept(record); err != nil {
		return fmt.Errorf("writing accepted record %s: %w", doc.ID, err)
	}
	summary.RecordAccepted()
	return nil
}

// chunk splits clean text for scoring, or wraps it whole when
// chunking is disabled. Empty text yields no chunks either way.
func (p *Pipeline) chunk(docID, clean string) []domain.Chunk {
	if p.cfg.ChunkingEnabled {
		return p.splitter.Split(docID, clean)
	}
	if clean == "" {
		return nil
	}
	return []domain.Chunk{{DocumentID: docID, Index: 0, Text: clean}}
}

// score runs every chunk through the backend and aggregates the
// results into one document score.
func (p *Pipeline) score(ctx context.Context, chunks []domain.Chunk) (domain.ScoreResult, error) {
	results := make([]domain.ScoreResult, 0, len(chunks))
	for _, c := range chunks {
		callCtx := ctx
		cancel := context.CancelFunc(func() {})
		if p.cfg.ScoreTimeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, p.cfg.ScoreTimeout)
		}
		result, err := p.scorer.Score(callCtx, c.Text)
		cancel()
		if err != nil {
			return domain.ScoreResult{}, fmt.Errorf("chunk %d: %w", c.Index, err)
		}
		results = append(results, result)
	}
	return filters.Aggregate(p.cfg.Aggregation, results), nil
}

// advance moves a document to the next state, logging an illegal
// transition instead of panicking. The table is the contract; a miss
// here means a pipeline bug, not bad input.
func (p *Pipeline) advance(docID string, from, to domain.State) domain.State {
	if !from.CanTransition(to) {
		logger.Error("document %s: illegal transition %s -> %s", docID, from, to)
	}
	return to
}
