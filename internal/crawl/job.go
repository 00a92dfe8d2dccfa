// Package crawl coordinates a resumable, parallel traversal of every
// repository record of one entity kind: enumerate the listing, diff
// against a prior snapshot, partition the remainder into per-worker
// shards, and stream each parsed record to an append-only sink.
package crawl

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/soultoolman/geo-alchemy/internal/fetch"
	"github.com/soultoolman/geo-alchemy/internal/geo"
	"github.com/soultoolman/geo-alchemy/internal/miniml"
	"github.com/soultoolman/geo-alchemy/internal/resolve"
)

// Job describes one crawl: the entity kind, its capabilities, the
// seed snapshots, and the output sink. Known, Platforms, and Samples
// are loaded before the run and never mutated by it.
type Job struct {
	ID           string
	Kind         geo.Kind
	Workers      int
	ParseSamples bool

	Enumerator fetch.Enumerator
	Fetcher    fetch.Fetcher
	Parser     miniml.Parser
	Sink       Sink

	Known     map[string]struct{}
	Platforms map[string]*geo.Platform
	Samples   map[string]*geo.Sample

	Logger *zap.Logger
}

// workerResult accumulates one worker's counters; workers share
// nothing mutable except the sink.
type workerResult struct {
	succeeded int
	failures  []Failure
}

// Run executes the crawl. A failing accession is recorded and
// skipped; only enumeration or a broken sink abort the job.
func (j *Job) Run(ctx context.Context) (Report, error) {
	if !j.Kind.Valid() {
		return Report{}, &geo.ValidationError{Accession: string(j.Kind), Reason: "unknown entity kind"}
	}
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.Workers <= 0 {
		j.Workers = 1
	}
	logger := j.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	accessions, err := j.Enumerator.Enumerate(ctx, j.Kind)
	if err != nil {
		return Report{}, fmt.Errorf("enumerate %s: %w", j.Kind, err)
	}

	work := diff(accessions, j.Known)
	known := len(accessions) - len(work)
	AccessionsKnown.WithLabelValues(string(j.Kind)).Add(float64(known))
	logger.Info("crawl starting",
		zap.String("job_id", j.ID),
		zap.String("kind", string(j.Kind)),
		zap.Int("enumerated", len(accessions)),
		zap.Int("known", known),
		zap.Int("work", len(work)),
		zap.Int("workers", j.Workers),
	)

	shards := partition(work, j.Workers)
	results := make([]workerResult, len(shards))
	var wg sync.WaitGroup
	for i, shard := range shards {
		wg.Add(1)
		go func(i int, shard []string) {
			defer wg.Done()
			results[i] = j.runShard(ctx, shard, logger)
		}(i, shard)
	}
	wg.Wait()

	report := Report{
		JobID:      j.ID,
		Kind:       j.Kind,
		Enumerated: len(accessions),
		Known:      known,
	}
	for _, result := range results {
		report.Succeeded += result.succeeded
		report.Failed += len(result.failures)
		report.Failures = append(report.Failures, result.failures...)
	}
	logger.Info("crawl finished",
		zap.String("job_id", j.ID),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

// runShard processes one worker's accessions sequentially, in shard
// order, with a worker-private resolver so platform caching never
// crosses workers.
func (j *Job) runShard(ctx context.Context, shard []string, logger *zap.Logger) workerResult {
	resolver := &resolve.Resolver{
		Fetcher:   j.Fetcher,
		Parser:    j.Parser,
		Platforms: j.Platforms,
		Samples:   j.Samples,
		Logger:    logger,
	}
	var result workerResult
	for _, accession := range shard {
		if ctx.Err() != nil {
			return result
		}
		record, err := j.process(ctx, resolver, accession)
		if err != nil {
			AccessionsFailed.WithLabelValues(string(j.Kind)).Inc()
			logger.Warn("accession skipped",
				zap.String("accession", accession),
				zap.Error(err),
			)
			result.failures = append(result.failures, Failure{
				Accession: accession,
				Reason:    err.Error(),
			})
			continue
		}
		if err := j.Sink.Emit(record); err != nil {
			// A broken sink would lose every following record; stop
			// this shard rather than burn through the repository.
			logger.Error("sink failed, abandoning shard",
				zap.String("accession", accession),
				zap.Error(err),
			)
			result.failures = append(result.failures, Failure{
				Accession: accession,
				Reason:    fmt.Sprintf("sink: %v", err),
			})
			return result
		}
		RecordsEmitted.WithLabelValues(string(j.Kind)).Inc()
		result.succeeded++
	}
	return result
}

// process runs the fetch→parse→resolve pipeline for one accession.
func (j *Job) process(ctx context.Context, resolver *resolve.Resolver, accession string) (any, error) {
	doc, err := j.Fetcher.Fetch(ctx, j.Kind, accession)
	if err != nil {
		return nil, err
	}
	switch j.Kind {
	case geo.KindPlatform:
		return j.Parser.Platform(doc)
	case geo.KindSample:
		sample, err := j.Parser.Sample(doc)
		if err != nil {
			return nil, err
		}
		return resolver.CompleteSample(ctx, sample)
	case geo.KindSeries:
		shell, err := j.Parser.Series(doc)
		if err != nil {
			return nil, err
		}
		return resolver.Series(ctx, shell, j.ParseSamples)
	}
	return nil, &geo.ValidationError{Accession: accession, Reason: "unknown entity kind"}
}

// diff subtracts the known accession set, preserving listing order.
func diff(accessions []string, known map[string]struct{}) []string {
	if len(known) == 0 {
		return accessions
	}
	work := make([]string, 0, len(accessions))
	for _, accession := range accessions {
		if _, ok := known[accession]; ok {
			continue
		}
		work = append(work, accession)
	}
	return work
}

// partition splits the work set into at most n disjoint contiguous
// shards, preserving order within each shard.
func partition(work []string, n int) [][]string {
	if len(work) == 0 {
		return nil
	}
	if n > len(work) {
		n = len(work)
	}
	shards := make([][]string, 0, n)
	base := len(work) / n
	extra := len(work) % n
	start := 0
	for i := 0; i < n; i++ {
		size := base
		if i < extra {
			size++
		}
		shards = append(shards, work[start:start+size])
		start += size
	}
	return shards
}
