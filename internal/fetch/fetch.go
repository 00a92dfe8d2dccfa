// Package fetch maps accessions to raw MINiML document text and
// enumerates the repository's accession listings. Both capabilities
// are interfaces so the parser, resolver, and crawler can be tested
// with canned documents instead of network access.
package fetch

import (
	"context"
	"time"

	"github.com/soultoolman/geo-alchemy/internal/geo"
)

// Fetcher retrieves the raw metadata document for one accession.
type Fetcher interface {
	Fetch(ctx context.Context, kind geo.Kind, accession string) ([]byte, error)
}

// Enumerator produces every accession of one kind the repository
// currently lists.
type Enumerator interface {
	Enumerate(ctx context.Context, kind geo.Kind) ([]string, error)
}

// Config tunes the HTTP fetch path.
type Config struct {
	UserAgent      string
	Timeout        time.Duration
	MaxRetries     int
	BackoffInitial time.Duration
	BackoffMax     time.Duration
	PageSize       int
}

// Defaults fills unset fields with working values.
func (c Config) Defaults() Config {
	if c.UserAgent == "" {
		c.UserAgent = "geo-alchemy/1.0"
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.BackoffInitial <= 0 {
		c.BackoffInitial = 250 * time.Millisecond
	}
	if c.BackoffMax <= 0 {
		c.BackoffMax = 5 * time.Second
	}
	if c.PageSize <= 0 {
		c.PageSize = 500
	}
	return c
}
