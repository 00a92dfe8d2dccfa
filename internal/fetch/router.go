package fetch

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/soultoolman/geo-alchemy/internal/geo"
)

// Router builds the repository URLs for detail documents, browse
// listings, and series matrix files. Base URLs are replaceable so
// tests can point at a local server.
type Router struct {
	BaseListURL   string
	BaseDetailURL string
	BaseFTPURL    string
}

// NewRouter returns a Router pointing at NCBI GEO.
func NewRouter() Router {
	return Router{
		BaseListURL:   "https://www.ncbi.nlm.nih.gov/geo/browse",
		BaseDetailURL: "https://www.ncbi.nlm.nih.gov/geo/query/acc.cgi",
		BaseFTPURL:    "ftp://ftp.ncbi.nlm.nih.gov",
	}
}

func (r Router) detailURL(accession, targ, view string) string {
	params := url.Values{}
	params.Set("acc", accession)
	params.Set("targ", targ)
	params.Set("form", "xml")
	params.Set("view", view)
	return r.BaseDetailURL + "?" + params.Encode()
}

// DetailURL returns the quick-view metadata document URL for one
// accession, validating the accession format first.
func (r Router) DetailURL(kind geo.Kind, accession string) (string, error) {
	if err := geo.ValidateAccession(kind, accession); err != nil {
		return "", err
	}
	return r.detailURL(accession, "self", "quick"), nil
}

// FullDetailURL returns the full-view document URL, which includes
// the complete annotation table for platforms.
func (r Router) FullDetailURL(kind geo.Kind, accession string) (string, error) {
	if err := geo.ValidateAccession(kind, accession); err != nil {
		return "", err
	}
	return r.detailURL(accession, "self", "full"), nil
}

// ListURL returns one page of the browse listing for a kind.
func (r Router) ListURL(kind geo.Kind, display, page int) string {
	view := map[geo.Kind]string{
		geo.KindPlatform: "platforms",
		geo.KindSample:   "samples",
		geo.KindSeries:   "series",
	}[kind]
	params := url.Values{}
	params.Set("view", view)
	params.Set("zsort", "date")
	params.Set("display", strconv.Itoa(display))
	params.Set("page", strconv.Itoa(page))
	return r.BaseListURL + "?" + params.Encode()
}

// SeriesMatrixURL returns the FTP URL of a series matrix file. For a
// multi-platform series the platform accession selects the file.
func (r Router) SeriesMatrixURL(seriesAccession, platformAccession string) (string, error) {
	if err := geo.ValidateAccession(geo.KindSeries, seriesAccession); err != nil {
		return "", err
	}
	prefix := seriesAccession[:len(seriesAccession)-3]
	if platformAccession == "" {
		return fmt.Sprintf(
			"%s/geo/series/%snnn/%s/matrix/%s_series_matrix.txt.gz",
			r.BaseFTPURL, prefix, seriesAccession, seriesAccession,
		), nil
	}
	if err := geo.ValidateAccession(geo.KindPlatform, platformAccession); err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"%s/geo/series/%snnn/%s/matrix/%s-%s_series_matrix.txt.gz",
		r.BaseFTPURL, prefix, seriesAccession, seriesAccession, platformAccession,
	), nil
}
