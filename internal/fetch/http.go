package fetch

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/soultoolman/geo-alchemy/internal/geo"
)

// HTTPFetcher retrieves metadata documents over HTTP with bounded
// retries. Each Fetch runs on a clone of the base collector so
// requests share transport state but no callbacks.
type HTTPFetcher struct {
	router    Router
	collector *colly.Collector
	retry     *RetryPolicy
	fullView  bool
	logger    *zap.Logger
}

// NewHTTPFetcher constructs a fetcher for quick-view documents.
func NewHTTPFetcher(router Router, cfg Config, logger *zap.Logger) *HTTPFetcher {
	cfg = cfg.Defaults()
	return &HTTPFetcher{
		router:    router,
		collector: newCollector(cfg),
		retry:     NewRetryPolicy(cfg.MaxRetries, cfg.BackoffInitial, cfg.BackoffMax),
		logger:    logger,
	}
}

// NewFullHTTPFetcher constructs a fetcher for full-view documents,
// which carry complete platform annotation tables.
func NewFullHTTPFetcher(router Router, cfg Config, logger *zap.Logger) *HTTPFetcher {
	f := NewHTTPFetcher(router, cfg, logger)
	f.fullView = true
	return f
}

func newCollector(cfg Config) *colly.Collector {
	collector := colly.NewCollector(
		colly.UserAgent(cfg.UserAgent),
		colly.IgnoreRobotsTxt(),
	)
	collector.AllowURLRevisit = true
	collector.WithTransport(&http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          64,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: cfg.Timeout,
		ForceAttemptHTTP2:     true,
	})
	collector.SetRequestTimeout(cfg.Timeout)
	return collector
}

// Fetch retrieves the raw document for one accession. The accession
// is validated before any network access; transient failures are
// retried with jittered exponential backoff.
func (f *HTTPFetcher) Fetch(ctx context.Context, kind geo.Kind, accession string) ([]byte, error) {
	var rawURL string
	var err error
	if f.fullView {
		rawURL, err = f.router.FullDetailURL(kind, accession)
	} else {
		rawURL, err = f.router.DetailURL(kind, accession)
	}
	if err != nil {
		return nil, err
	}
	return fetchWithRetry(ctx, f.collector, f.retry, f.logger, accession, rawURL)
}

func fetchWithRetry(
	ctx context.Context,
	base *colly.Collector,
	retry *RetryPolicy,
	logger *zap.Logger,
	accession string,
	rawURL string,
) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		body, err := visit(base, accession, rawURL)
		if err == nil {
			return body, nil
		}
		if !retry.ShouldRetry(err, attempt+1) {
			return nil, err
		}
		backoff := retry.Backoff(attempt)
		if logger != nil {
			logger.Warn("fetch retry",
				zap.String("accession", accession),
				zap.Int("attempt", attempt+1),
				zap.Duration("backoff", backoff),
				zap.Error(err),
			)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// visit performs one HTTP round trip through a collector clone.
func visit(base *colly.Collector, accession, rawURL string) ([]byte, error) {
	collector := base.Clone()
	var body []byte
	var fetchErr error
	collector.OnResponse(func(r *colly.Response) {
		body = append([]byte{}, r.Body...)
	})
	collector.OnError(func(r *colly.Response, err error) {
		status := 0
		if r != nil {
			status = r.StatusCode
		}
		if err == nil {
			err = errors.New("unknown transport error")
		}
		fetchErr = &geo.FetchError{
			Accession:  accession,
			URL:        rawURL,
			StatusCode: status,
			Err:        err,
		}
	})
	if err := collector.Visit(rawURL); err != nil {
		if fetchErr != nil {
			return nil, fetchErr
		}
		return nil, &geo.FetchError{Accession: accession, URL: rawURL, Err: err}
	}
	collector.Wait()
	if fetchErr != nil {
		return nil, fetchErr
	}
	return body, nil
}
