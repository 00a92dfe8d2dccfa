package crawl

import (
	"fmt"
	"strings"

	"github.com/soultoolman/geo-alchemy/internal/geo"
)

// Failure records one accession the crawl skipped and why.
type Failure struct {
	Accession string `json:"accession"`
	Reason    string `json:"reason"`
}

// Report summarizes one finished crawl job.
type Report struct {
	JobID      string    `json:"job_id"`
	Kind       geo.Kind  `json:"kind"`
	Enumerated int       `json:"enumerated"`
	Known      int       `json:"known"`
	Succeeded  int       `json:"succeeded"`
	Failed     int       `json:"failed"`
	Failures   []Failure `json:"failures,omitempty"`
}

// Summary renders the end-of-run report, failures by accession last.
func (r Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "crawl %s (%s): %d listed, %d already known, %d emitted, %d failed\n",
		r.JobID, r.Kind, r.Enumerated, r.Known, r.Succeeded, r.Failed)
	for _, failure := range r.Failures {
		fmt.Fprintf(&b, "  %s: %s\n", failure.Accession, failure.Reason)
	}
	return b.String()
}
