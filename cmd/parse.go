package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/soultoolman/geo-alchemy/internal/fetch"
	"github.com/soultoolman/geo-alchemy/internal/geo"
	"github.com/soultoolman/geo-alchemy/internal/miniml"
	"github.com/soultoolman/geo-alchemy/internal/resolve"
)

// parseFlags holds flags shared by the parse subcommands.
type parseFlags struct {
	out          string
	full         bool
	parseSamples bool
}

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Fetch and parse a single GEO record",
	}
	cmd.AddCommand(newParsePlatformCmd())
	cmd.AddCommand(newParseSampleCmd())
	cmd.AddCommand(newParseSeriesCmd())
	return cmd
}

func newParsePlatformCmd() *cobra.Command {
	var flags parseFlags
	cmd := &cobra.Command{
		Use:   "platform <accession>",
		Short: "Parse a platform (GPL) into JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := newResolver(flags.full)
			platform, err := resolver.Platform(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return emitJSON(flags.out, platform)
		},
	}
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "write JSON to file instead of stdout")
	cmd.Flags().BoolVar(&flags.full, "full", false, "fetch the full view, including the annotation table")
	return cmd
}

func newParseSampleCmd() *cobra.Command {
	var flags parseFlags
	cmd := &cobra.Command{
		Use:   "sample <accession>",
		Short: "Parse a sample (GSM) and its platform into JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := newResolver(flags.full)
			sample, err := resolver.Sample(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return emitJSON(flags.out, sample)
		},
	}
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "write JSON to file instead of stdout")
	cmd.Flags().BoolVar(&flags.full, "full", false, "fetch the full view, including the annotation table")
	return cmd
}

func newParseSeriesCmd() *cobra.Command {
	var flags parseFlags
	cmd := &cobra.Command{
		Use:   "series <accession>",
		Short: "Parse a series (GSE) with its samples and platforms into JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := newResolver(flags.full)
			series, err := resolveSeries(cmd, resolver, args[0], flags.parseSamples)
			if err != nil {
				return err
			}
			return emitJSON(flags.out, series)
		},
	}
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "write JSON to file instead of stdout")
	cmd.Flags().BoolVar(&flags.full, "full", false, "fetch the full view, including annotation tables")
	cmd.Flags().BoolVar(&flags.parseSamples, "parse-samples", true, "resolve every referenced sample")
	return cmd
}

func fetchConfig() fetch.Config {
	return fetch.Config{
		UserAgent:      cfg.HTTP.UserAgent,
		Timeout:        cfg.HTTPTimeout(),
		MaxRetries:     cfg.HTTP.MaxRetries,
		BackoffInitial: cfg.BackoffInitial(),
		BackoffMax:     cfg.BackoffMax(),
		PageSize:       cfg.HTTP.PageSize,
	}
}

func newFetcher(full bool) *fetch.HTTPFetcher {
	if full {
		return fetch.NewFullHTTPFetcher(fetch.NewRouter(), fetchConfig(), logger)
	}
	return fetch.NewHTTPFetcher(fetch.NewRouter(), fetchConfig(), logger)
}

func newResolver(full bool) *resolve.Resolver {
	return resolve.New(newFetcher(full), miniml.Parser{}, logger)
}

func resolveSeries(cmd *cobra.Command, resolver *resolve.Resolver, accession string, parseSamples bool) (*geo.Series, error) {
	doc, err := resolver.Fetcher.Fetch(cmd.Context(), geo.KindSeries, accession)
	if err != nil {
		return nil, err
	}
	shell, err := resolver.Parser.Series(doc)
	if err != nil {
		return nil, err
	}
	logger.Info("resolving series",
		zap.String("accession", accession),
		zap.Int("samples", len(shell.SampleRefs)),
		zap.Bool("parse_samples", parseSamples))
	return resolver.Series(cmd.Context(), shell, parseSamples)
}

func emitJSON(path string, record any) error {
	w := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(record)
}
