package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ussooraj/malayalam-corpus-cleaner/internal/adapters/driven/dedup/memory"
	dedupsqlite "github.com/ussooraj/malayalam-corpus-cleaner/internal/adapters/driven/dedup/sqlite"
	"github.com/ussooraj/malayalam-corpus-cleaner/internal/adapters/driven/output/jsonl"
	"github.com/ussooraj/malayalam-corpus-cleaner/internal/adapters/driven/scorer"
	"github.com/ussooraj/malayalam-corpus-cleaner/internal/adapters/driven/scorer/gemini"
	"github.com/ussooraj/malayalam-corpus-cleaner/internal/adapters/driven/scorer/ollama"
	"github.com/ussooraj/malayalam-corpus-cleaner/internal/config"
	"github.com/ussooraj/malayalam-corpus-cleaner/internal/core/domain"
	"github.com/ussooraj/malayalam-corpus-cleaner/internal/core/ports/driven"
	"github.com/ussooraj/malayalam-corpus-cleaner/internal/core/services"
	"github.com/ussooraj/malayalam-corpus-cleaner/internal/filters"
	"github.com/ussooraj/malayalam-corpus-cleaner/internal/loaders"
	"github.com/ussooraj/malayalam-corpus-cleaner/internal/logger"
)

// watchDebounce is how long the watch mode waits after the last file
// event before starting a run, so bulk copies trigger a single run.
const watchDebounce = 2 * time.Second

var runWatch bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the cleaning pipeline over the input directory",
	Long: `Processes every supported file in paths.raw_data_dir and writes the
accepted and rejected JSONL streams under paths.processed_data_dir.`,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().BoolVarP(&runWatch, "watch", "w", false,
		"keep running, reprocessing when files are added to the input directory")
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Paths.LogFilename != "" {
		if err := os.MkdirAll(cfg.Paths.ProcessedDataDir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		logPath := filepath.Join(cfg.Paths.ProcessedDataDir, cfg.Paths.LogFilename)
		if err := logger.OpenLogFile(logPath); err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer logger.CloseLogFile()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dedup, err := buildDedup(cfg)
	if err != nil {
		return err
	}
	defer dedup.Close()

	if runWatch {
		return watchLoop(ctx, cmd, cfg, dedup)
	}

	summary, err := executeRun(ctx, cfg, dedup)
	if err != nil {
		return err
	}
	printSummary(cmd, summary)
	return nil
}

// buildDedup builds the hash index for the whole command invocation.
// It outlives individual runs: watch mode reuses it, so re-processing
// unchanged input rejects already-accepted documents as duplicates
// instead of appending them again.
func buildDedup(cfg *config.Config) (driven.DedupIndex, error) {
	if cfg.Dedup.CrossRun {
		dedup, err := dedupsqlite.NewIndex(cfg.DedupStateDir())
		if err != nil {
			return nil, fmt.Errorf("opening dedup index: %w", err)
		}
		return dedup, nil
	}
	return memory.NewIndex(), nil
}

// executeRun builds the per-run adapters from the config and drives
// one pipeline run against the shared dedup index.
func executeRun(ctx context.Context, cfg *config.Config, dedup driven.DedupIndex) (*domain.RunSummary, error) {
	sc, err := buildScorer(ctx, cfg)
	if err != nil {
		return nil, err
	}

	writer, err := jsonl.NewWriter(cfg.AcceptedPath(), cfg.RejectedPath())
	if err != nil {
		return nil, err
	}

	p := services.NewPipeline(services.PipelineConfig{
		InputDir:        cfg.Paths.RawDataDir,
		MinWordCount:    cfg.Filters.MinWordCount,
		RatioThreshold:  cfg.Filters.MalayalamRatioThreshold,
		ChunkingEnabled: cfg.Chunking.Enabled,
		MaxChunkChars:   cfg.Chunking.MaxChunkChars,
		ScoringEnabled:  cfg.LLMScorer.Enabled,
		ScoreThreshold:  cfg.LLMScorer.ScoreThreshold,
		Aggregation:     filters.Aggregation(cfg.LLMScorer.Aggregation),
		Concurrency:     cfg.LLMScorer.Concurrency,
		ScoreTimeout:    time.Duration(cfg.LLMScorer.TimeoutSeconds) * time.Second,
	}, loaders.DefaultRegistry(), sc, dedup, writer)

	summary, runErr := p.Run(ctx)
	if closeErr := writer.Close(); closeErr != nil && runErr == nil {
		runErr = fmt.Errorf("closing output: %w", closeErr)
	}
	return summary, runErr
}

// pingTimeout bounds the local backend health check at startup.
const pingTimeout = 5 * time.Second

// buildScorer builds the configured scoring backend wrapped in the
// retry decorator, or nil when scoring is disabled. The local backend
// is health-checked here so an unreachable Ollama server fails the
// command before any document is processed.
func buildScorer(ctx context.Context, cfg *config.Config) (driven.Scorer, error) {
	if !cfg.LLMScorer.Enabled {
		return nil, nil
	}

	timeout := time.Duration(cfg.LLMScorer.TimeoutSeconds) * time.Second

	var backend driven.Scorer
	switch cfg.LLMScorer.Provider {
	case config.ProviderAPI:
		g, err := gemini.New(gemini.Config{
			APIKey:            cfg.APIKey(),
			BaseURL:           cfg.LLMScorer.API.BaseURL,
			Model:             cfg.LLMScorer.API.Model,
			Timeout:           timeout,
			RequestsPerSecond: cfg.LLMScorer.API.RequestsPerSecond,
		})
		if err != nil {
			return nil, err
		}
		backend = g
	case config.ProviderLocal:
		o := ollama.New(ollama.Config{
			BaseURL:       cfg.LLMScorer.Local.BaseURL,
			Model:         cfg.LLMScorer.Local.Model,
			Timeout:       timeout,
			ContextWindow: cfg.LLMScorer.Local.ContextWindow,
		})
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := o.Ping(pingCtx); err != nil {
			return nil, fmt.Errorf("local scoring backend unreachable: %w", err)
		}
		backend = o
	default:
		return nil, fmt.Errorf("%w: unknown scorer provider %q",
			domain.ErrInvalidConfig, cfg.LLMScorer.Provider)
	}

	logger.Info("scoring backend: %s", backend.Name())
	return scorer.NewRetry(backend, cfg.LLMScorer.MaxRetries,
		time.Duration(cfg.LLMScorer.RetryDelaySeconds)*time.Second), nil
}

// watchLoop runs the pipeline once, then again after every quiet
// period following file changes in the input directory. Runs share
// dedup, so only documents new since the previous run are appended.
// It returns when the context is cancelled.
func watchLoop(ctx context.Context, cmd *cobra.Command, cfg *config.Config, dedup driven.DedupIndex) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(cfg.Paths.RawDataDir); err != nil {
		return fmt.Errorf("watching %s: %w", cfg.Paths.RawDataDir, err)
	}

	runOnce := func() {
		summary, err := executeRun(ctx, cfg, dedup)
		if err != nil {
			logger.Error("run failed: %v", err)
			return
		}
		printSummary(cmd, summary)
	}

	cmd.Printf("Watching %s (Ctrl-C to stop)\n", cfg.Paths.RawDataDir)
	runOnce()

	var timer *time.Timer
	pending := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			logger.Debug("input change: %s", event)
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: %v", err)
		case <-pending:
			runOnce()
		}
	}
}

// printSummary writes the run outcome to the command output.
func printSummary(cmd *cobra.Command, summary *domain.RunSummary) {
	cmd.Printf("Run %s complete.\n", summary.RunID)
	cmd.Printf("  Loaded:   %d\n", summary.Loaded())
	cmd.Printf("  Accepted: %d\n", summary.Accepted())
	cmd.Printf("  Rejected: %d\n", summary.Rejected())

	byReason := summary.ByReason()
	reasons := make([]string, 0, len(byReason))
	for reason := range byReason {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		cmd.Printf("    %-26s %d\n", reason, byReason[reason])
	}
}
