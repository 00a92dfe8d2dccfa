// Package cmd defines and implements the CLI commands for the
// geo-alchemy executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/soultoolman/geo-alchemy/internal/config"
	"github.com/soultoolman/geo-alchemy/internal/logging"
)

var (
	cfgFile string

	// cfg and logger are built once in the root PersistentPreRunE and
	// shared by all subcommands.
	cfg    config.Config
	logger *zap.Logger
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "geo-alchemy",
		Short: "Parse and crawl GEO genomic metadata.",
		Long: `geo-alchemy fetches MINiML metadata for GEO platforms, samples
and series, resolves cross-references between them, and crawls whole
accession classes incrementally into JSON lines files.`,

		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cfg, err = config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, err = logging.New(cfg.Logging.Development)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			return nil
		},

		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default uses built-in defaults and GEOALCHEMY_* env vars)")

	cmd.AddCommand(newParseCmd())
	cmd.AddCommand(newCrawlCmd())
	cmd.AddCommand(newPPCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
