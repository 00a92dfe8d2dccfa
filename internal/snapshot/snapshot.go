// Package snapshot reads jsonlines crawl snapshots: one serialized
// record per line. Snapshots serve two purposes — the accession set
// of a prior crawl (the incremental diff input) and pre-fetched
// platform/sample sets that short-circuit reference resolution.
package snapshot

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/soultoolman/geo-alchemy/internal/geo"
)

// scanner returns a line scanner sized for records carrying full
// annotation tables.
func scanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	return s
}

// Accessions extracts the accession of every record in a snapshot.
// Only the accessions matter for the crawl diff, not record content.
func Accessions(r io.Reader) (map[string]struct{}, error) {
	known := make(map[string]struct{})
	s := scanner(r)
	line := 0
	for s.Scan() {
		line++
		raw := s.Bytes()
		if len(raw) == 0 {
			continue
		}
		var header struct {
			Accession string `json:"accession"`
		}
		if err := json.Unmarshal(raw, &header); err != nil {
			return nil, fmt.Errorf("snapshot line %d: %w", line, err)
		}
		if header.Accession == "" {
			return nil, fmt.Errorf("snapshot line %d: record has no accession", line)
		}
		known[header.Accession] = struct{}{}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return known, nil
}

// Platforms loads a platform snapshot keyed by accession.
func Platforms(r io.Reader) (map[string]*geo.Platform, error) {
	platforms := make(map[string]*geo.Platform)
	err := eachLine(r, func(line int, raw []byte) error {
		platform, err := geo.PlatformFromJSON(raw)
		if err != nil {
			return fmt.Errorf("snapshot line %d: %w", line, err)
		}
		platforms[platform.Accession] = platform
		return nil
	})
	if err != nil {
		return nil, err
	}
	return platforms, nil
}

// Samples loads a sample snapshot keyed by accession.
func Samples(r io.Reader) (map[string]*geo.Sample, error) {
	samples := make(map[string]*geo.Sample)
	err := eachLine(r, func(line int, raw []byte) error {
		sample, err := geo.SampleFromJSON(raw)
		if err != nil {
			return fmt.Errorf("snapshot line %d: %w", line, err)
		}
		samples[sample.Accession] = sample
		return nil
	})
	if err != nil {
		return nil, err
	}
	return samples, nil
}

func eachLine(r io.Reader, fn func(line int, raw []byte) error) error {
	s := scanner(r)
	line := 0
	for s.Scan() {
		line++
		raw := s.Bytes()
		if len(raw) == 0 {
			continue
		}
		if err := fn(line, raw); err != nil {
			return err
		}
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	return nil
}

// AccessionsFromFile is the file-path convenience around Accessions.
func AccessionsFromFile(path string) (map[string]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot %s: %w", path, err)
	}
	defer f.Close()
	return Accessions(f)
}

// PlatformsFromFile is the file-path convenience around Platforms.
func PlatformsFromFile(path string) (map[string]*geo.Platform, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot %s: %w", path, err)
	}
	defer f.Close()
	return Platforms(f)
}

// SamplesFromFile is the file-path convenience around Samples.
func SamplesFromFile(path string) (map[string]*geo.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot %s: %w", path, err)
	}
	defer f.Close()
	return Samples(f)
}
