package cmd

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/soultoolman/geo-alchemy/internal/crawl"
	"github.com/soultoolman/geo-alchemy/internal/fetch"
	"github.com/soultoolman/geo-alchemy/internal/geo"
	"github.com/soultoolman/geo-alchemy/internal/miniml"
	"github.com/soultoolman/geo-alchemy/internal/snapshot"
)

type crawlFlags struct {
	kind          string
	workers       int
	out           string
	knownPath     string
	platformsPath string
	samplesPath   string
	parseSamples  bool
	full          bool
	metricsAddr   string
}

func newCrawlCmd() *cobra.Command {
	var flags crawlFlags
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Incrementally crawl one accession class into a JSON lines file",
		Long: `Enumerates every accession of the chosen kind from the GEO browse
listing, skips the ones already present in the known snapshot, and
fetches, parses and resolves the rest in parallel. Each resolved
record is appended to the output file as one JSON line.`,

		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCrawl(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.kind, "kind", "k", "", "accession kind to crawl: platform, sample or series (required)")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "parallel workers (default from config)")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "JSON lines output file (required)")
	cmd.Flags().StringVar(&flags.knownPath, "known", "", "JSON lines snapshot of already crawled records to skip")
	cmd.Flags().StringVar(&flags.platformsPath, "platforms", "", "JSON lines platform snapshot reused instead of fetching")
	cmd.Flags().StringVar(&flags.samplesPath, "samples", "", "JSON lines sample snapshot reused instead of fetching")
	cmd.Flags().BoolVar(&flags.parseSamples, "parse-samples", true, "resolve samples when crawling series")
	cmd.Flags().BoolVar(&flags.full, "full", false, "fetch full-view documents, including annotation tables")
	cmd.Flags().StringVar(&flags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while crawling")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runCrawl(cmd *cobra.Command, flags crawlFlags) error {
	kind, err := geo.ParseKind(flags.kind)
	if err != nil {
		return err
	}

	workers := flags.workers
	if workers <= 0 {
		workers = cfg.Crawl.Workers
	}

	sink, err := crawl.NewJSONLinesSink(flags.out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil {
			logger.Warn("close sink", zap.Error(cerr))
		}
	}()

	job := &crawl.Job{
		Kind:         kind,
		Workers:      workers,
		ParseSamples: flags.parseSamples,
		Enumerator:   fetch.NewHTTPEnumerator(fetch.NewRouter(), fetchConfig(), logger),
		Fetcher:      newFetcher(flags.full),
		Parser:       miniml.Parser{},
		Sink:         sink,
		Logger:       logger,
	}

	if flags.knownPath != "" {
		job.Known, err = snapshot.AccessionsFromFile(flags.knownPath)
		if err != nil {
			return err
		}
	}
	if flags.platformsPath != "" {
		job.Platforms, err = snapshot.PlatformsFromFile(flags.platformsPath)
		if err != nil {
			return err
		}
	}
	if flags.samplesPath != "" {
		job.Samples, err = snapshot.SamplesFromFile(flags.samplesPath)
		if err != nil {
			return err
		}
	}

	metricsAddr := flags.metricsAddr
	if metricsAddr == "" {
		metricsAddr = cfg.Metrics.Addr
	}
	if metricsAddr != "" {
		go serveMetrics(metricsAddr)
	}

	report, err := job.Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), report.Summary())
	for _, failure := range report.Failures {
		fmt.Fprintf(cmd.OutOrStdout(), "failed %s: %s\n", failure.Accession, failure.Reason)
	}
	return nil
}

func serveMetrics(addr string) {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Handle("/metrics", promhttp.Handler())
	logger.Info("serving metrics", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Warn("metrics server stopped", zap.Error(err))
	}
}
