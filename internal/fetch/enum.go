package fetch

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/soultoolman/geo-alchemy/internal/geo"
)

var accessionTextPatterns = map[geo.Kind]*regexp.Regexp{
	geo.KindPlatform: regexp.MustCompile(`^GPL\d+$`),
	geo.KindSample:   regexp.MustCompile(`^GSM\d+$`),
	geo.KindSeries:   regexp.MustCompile(`^GSE\d+$`),
}

// HTTPEnumerator walks the paginated browse listing of one entity
// kind and collects every accession it shows, in listing order.
type HTTPEnumerator struct {
	router    Router
	collector *colly.Collector
	retry     *RetryPolicy
	pageSize  int
	logger    *zap.Logger
}

// NewHTTPEnumerator constructs an enumerator over the browse listing.
func NewHTTPEnumerator(router Router, cfg Config, logger *zap.Logger) *HTTPEnumerator {
	cfg = cfg.Defaults()
	return &HTTPEnumerator{
		router:    router,
		collector: newCollector(cfg),
		retry:     NewRetryPolicy(cfg.MaxRetries, cfg.BackoffInitial, cfg.BackoffMax),
		pageSize:  cfg.PageSize,
		logger:    logger,
	}
}

// Enumerate pages through the listing until a short page, returning
// the accessions in first-seen order without duplicates.
func (e *HTTPEnumerator) Enumerate(ctx context.Context, kind geo.Kind) ([]string, error) {
	if !kind.Valid() {
		return nil, &geo.ValidationError{Accession: string(kind), Reason: "unknown entity kind"}
	}
	seen := make(map[string]struct{})
	var accessions []string
	for page := 1; ; page++ {
		rawURL := e.router.ListURL(kind, e.pageSize, page)
		listingRef := fmt.Sprintf("%s-listing-page-%d", kind, page)
		body, err := fetchWithRetry(ctx, e.collector, e.retry, e.logger, listingRef, rawURL)
		if err != nil {
			return nil, err
		}
		pageAccessions, err := extractAccessions(body, kind)
		if err != nil {
			return nil, err
		}
		for _, accession := range pageAccessions {
			if _, ok := seen[accession]; ok {
				continue
			}
			seen[accession] = struct{}{}
			accessions = append(accessions, accession)
		}
		if e.logger != nil {
			e.logger.Debug("listing page enumerated",
				zap.String("kind", string(kind)),
				zap.Int("page", page),
				zap.Int("accessions", len(pageAccessions)),
			)
		}
		if len(pageAccessions) < e.pageSize {
			return accessions, nil
		}
	}
}

// extractAccessions pulls accession texts out of a browse listing
// page. The listing renders one record per table row with the
// accession as the row's link text.
func extractAccessions(page []byte, kind geo.Kind) ([]string, error) {
	doc, err := htmlquery.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse listing page: %w", err)
	}
	pattern := accessionTextPatterns[kind]
	var accessions []string
	for _, anchor := range htmlquery.Find(doc, "//td//a") {
		value := strings.TrimSpace(htmlquery.InnerText(anchor))
		if pattern.MatchString(value) {
			accessions = append(accessions, value)
		}
	}
	return accessions, nil
}
