package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/soultoolman/geo-alchemy/internal/geo"
)

func listingPage(accessions ...string) string {
	var b strings.Builder
	b.WriteString("<html><body><table>")
	for _, accession := range accessions {
		fmt.Fprintf(&b, `<tr><td><a href="/geo/query/acc.cgi?acc=%s">%s</a></td><td>some title</td></tr>`, accession, accession)
	}
	b.WriteString("</table></body></html>")
	return b.String()
}

func TestHTTPEnumeratorEnumerate(t *testing.T) {
	t.Parallel()

	t.Run("pages until a short page", func(t *testing.T) {
		t.Parallel()
		pages := map[string]string{
			"1": listingPage("GSE3", "GSE2", "GSE1"),
			"2": listingPage("GSE1", "GSE0"),
		}
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "series", r.URL.Query().Get("view"))
			require.Equal(t, "3", r.URL.Query().Get("display"))
			page, ok := pages[r.URL.Query().Get("page")]
			if !ok {
				t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
				w.WriteHeader(http.StatusNotFound)
				return
			}
			fmt.Fprint(w, page)
		}))
		defer srv.Close()

		enumerator := NewHTTPEnumerator(testRouter(srv.URL), testConfig(), zap.NewNop())
		accessions, err := enumerator.Enumerate(context.Background(), geo.KindSeries)
		require.NoError(t, err)

		// GSE1 appears on both pages but is reported once.
		require.Equal(t, []string{"GSE3", "GSE2", "GSE1", "GSE0"}, accessions)
	})

	t.Run("ignores non-accession link text", func(t *testing.T) {
		t.Parallel()
		page := `<html><body><table><tr>
<td><a href="#">next</a></td>
<td><a href="/x">GSE123</a></td>
<td><a href="/y">GSM999</a></td>
</tr></table></body></html>`
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, page)
		}))
		defer srv.Close()

		enumerator := NewHTTPEnumerator(testRouter(srv.URL), testConfig(), zap.NewNop())
		accessions, err := enumerator.Enumerate(context.Background(), geo.KindSeries)
		require.NoError(t, err)
		require.Equal(t, []string{"GSE123"}, accessions)
	})

	t.Run("rejects an unknown kind", func(t *testing.T) {
		t.Parallel()
		enumerator := NewHTTPEnumerator(NewRouter(), testConfig(), zap.NewNop())
		_, err := enumerator.Enumerate(context.Background(), geo.Kind("dataset"))
		var verr *geo.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("propagates listing fetch failures", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		enumerator := NewHTTPEnumerator(testRouter(srv.URL), testConfig(), zap.NewNop())
		_, err := enumerator.Enumerate(context.Background(), geo.KindPlatform)
		var ferr *geo.FetchError
		require.ErrorAs(t, err, &ferr)
		require.Equal(t, http.StatusForbidden, ferr.StatusCode)
	})
}
