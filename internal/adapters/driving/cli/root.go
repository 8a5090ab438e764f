// Package cli provides the command line interface, the driving
// adapter that wires configuration, infrastructure adapters and the
// pipeline service together.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/ussooraj/malayalam-corpus-cleaner/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Persistent flag values.
var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "corpusclean",
	Short: "Clean raw Malayalam text into a training corpus",
	Long: `corpusclean processes raw Malayalam text files into a filtered,
deduplicated corpus in JSON Lines format.

Documents flow through normalisation, rule filters, optional LLM
quality scoring and deduplication. Every document ends up on exactly
one of two streams: the accepted corpus or the rejected stream, which
records why each document was dropped.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml",
		"path to the run configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}
