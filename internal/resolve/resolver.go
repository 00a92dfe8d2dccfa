// Package resolve assembles cross-entity references: a series'
// declared sample and platform accessions, and a sample's platform
// reference, are turned into owned record copies by further
// fetch+parse, short-circuited by any pre-supplied snapshots.
package resolve

import (
	"context"

	"go.uber.org/zap"

	"github.com/soultoolman/geo-alchemy/internal/fetch"
	"github.com/soultoolman/geo-alchemy/internal/geo"
	"github.com/soultoolman/geo-alchemy/internal/miniml"
)

// Resolver resolves forward references. Platforms and Samples, when
// supplied, short-circuit fetching for the accessions they contain;
// they are read-only and never mutated. Platforms resolved over the
// network are cached on the resolver, so one series resolution never
// fetches the same platform twice. A Resolver is not safe for
// concurrent use; give each worker its own.
type Resolver struct {
	Fetcher   fetch.Fetcher
	Parser    miniml.Parser
	Platforms map[string]*geo.Platform
	Samples   map[string]*geo.Sample
	Logger    *zap.Logger

	cache map[string]*geo.Platform
}

// New constructs a Resolver around a fetch capability.
func New(fetcher fetch.Fetcher, parser miniml.Parser, logger *zap.Logger) *Resolver {
	return &Resolver{Fetcher: fetcher, Parser: parser, Logger: logger}
}

// Series fills the shell's Samples and Platforms from its declared
// accession lists. With parseSamples false, Samples stays empty and
// only the directly declared platforms are resolved. Any single
// failure surfaces as a ResolutionError naming the series; no sample
// is ever silently dropped.
func (r *Resolver) Series(ctx context.Context, shell *geo.Series, parseSamples bool) (*geo.Series, error) {
	resolved := *shell
	resolved.Samples = nil
	resolved.Platforms = nil

	for _, accession := range shell.PlatformRefs {
		platform, err := r.platform(ctx, accession)
		if err != nil {
			return nil, &geo.ResolutionError{Owner: shell.Accession, Accession: accession, Err: err}
		}
		resolved.Platforms = append(resolved.Platforms, platform)
	}
	if !parseSamples {
		resolved.Samples = []*geo.Sample{}
		return &resolved, nil
	}
	for _, accession := range shell.SampleRefs {
		sample, err := r.sample(ctx, accession)
		if err != nil {
			return nil, &geo.ResolutionError{Owner: shell.Accession, Accession: accession, Err: err}
		}
		resolved.Samples = append(resolved.Samples, sample)
	}
	return &resolved, nil
}

// Sample resolves one sample and its platform reference.
func (r *Resolver) Sample(ctx context.Context, accession string) (*geo.Sample, error) {
	sample, err := r.sample(ctx, accession)
	if err != nil {
		return nil, &geo.ResolutionError{Owner: accession, Accession: accession, Err: err}
	}
	return sample, nil
}

// Platform resolves one platform.
func (r *Resolver) Platform(ctx context.Context, accession string) (*geo.Platform, error) {
	platform, err := r.platform(ctx, accession)
	if err != nil {
		return nil, &geo.ResolutionError{Owner: accession, Accession: accession, Err: err}
	}
	return platform, nil
}

// CompleteSample returns a copy of an already parsed sample with its
// platform reference resolved. The input record is left untouched.
func (r *Resolver) CompleteSample(ctx context.Context, sample *geo.Sample) (*geo.Sample, error) {
	if sample.PlatformRef == "" || sample.Platform != nil {
		return sample, nil
	}
	platform, err := r.platform(ctx, sample.PlatformRef)
	if err != nil {
		return nil, &geo.ResolutionError{
			Owner:     sample.Accession,
			Accession: sample.PlatformRef,
			Err:       err,
		}
	}
	completed := *sample
	completed.Platform = platform
	return &completed, nil
}

func (r *Resolver) sample(ctx context.Context, accession string) (*geo.Sample, error) {
	if supplied, ok := r.Samples[accession]; ok {
		return supplied, nil
	}
	doc, err := r.Fetcher.Fetch(ctx, geo.KindSample, accession)
	if err != nil {
		return nil, err
	}
	sample, err := r.Parser.Sample(doc)
	if err != nil {
		return nil, err
	}
	if len(sample.Channels) == 0 {
		return nil, &geo.ParseError{Accession: accession, Field: "channels", Reason: "sample has no channels"}
	}
	if sample.PlatformRef != "" {
		platform, err := r.platform(ctx, sample.PlatformRef)
		if err != nil {
			return nil, err
		}
		sample.Platform = platform
	}
	return sample, nil
}

func (r *Resolver) platform(ctx context.Context, accession string) (*geo.Platform, error) {
	if supplied, ok := r.Platforms[accession]; ok {
		return supplied, nil
	}
	if cached, ok := r.cache[accession]; ok {
		return cached, nil
	}
	doc, err := r.Fetcher.Fetch(ctx, geo.KindPlatform, accession)
	if err != nil {
		return nil, err
	}
	platform, err := r.Parser.Platform(doc)
	if err != nil {
		return nil, err
	}
	if r.cache == nil {
		r.cache = make(map[string]*geo.Platform)
	}
	r.cache[accession] = platform
	if r.Logger != nil {
		r.Logger.Debug("platform resolved", zap.String("accession", accession))
	}
	return platform, nil
}
