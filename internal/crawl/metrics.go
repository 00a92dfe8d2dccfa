package crawl

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecordsEmitted counts records written to the sink, by kind.
	RecordsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geoalchemy_records_emitted_total",
		Help: "The total number of records emitted to the crawl sink.",
	}, []string{"kind"})
	// AccessionsFailed counts accessions skipped because of an error.
	AccessionsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geoalchemy_accessions_failed_total",
		Help: "The total number of accessions skipped with an error.",
	}, []string{"kind"})
	// AccessionsKnown counts accessions removed by the snapshot diff.
	AccessionsKnown = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geoalchemy_accessions_known_total",
		Help: "The total number of accessions already present in the seed snapshot.",
	}, []string{"kind"})
)
