package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/soultoolman/geo-alchemy/internal/geo"
)

func testConfig() Config {
	return Config{
		UserAgent:      "geo-alchemy-test",
		Timeout:        2 * time.Second,
		MaxRetries:     3,
		BackoffInitial: 5 * time.Millisecond,
		BackoffMax:     20 * time.Millisecond,
		PageSize:       3,
	}
}

func testRouter(serverURL string) Router {
	return Router{
		BaseListURL:   serverURL + "/browse",
		BaseDetailURL: serverURL + "/acc.cgi",
		BaseFTPURL:    "ftp://example.invalid",
	}
}

func TestHTTPFetcherFetch(t *testing.T) {
	t.Parallel()

	t.Run("returns the document body", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "GPL570", r.URL.Query().Get("acc"))
			require.Equal(t, "quick", r.URL.Query().Get("view"))
			fmt.Fprint(w, "<MINiML/>")
		}))
		defer srv.Close()

		fetcher := NewHTTPFetcher(testRouter(srv.URL), testConfig(), zap.NewNop())
		body, err := fetcher.Fetch(context.Background(), geo.KindPlatform, "GPL570")
		require.NoError(t, err)
		require.Equal(t, "<MINiML/>", string(body))
	})

	t.Run("full view fetcher asks for the full document", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "full", r.URL.Query().Get("view"))
			fmt.Fprint(w, "<MINiML/>")
		}))
		defer srv.Close()

		fetcher := NewFullHTTPFetcher(testRouter(srv.URL), testConfig(), zap.NewNop())
		_, err := fetcher.Fetch(context.Background(), geo.KindPlatform, "GPL570")
		require.NoError(t, err)
	})

	t.Run("retries server errors until success", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			fmt.Fprint(w, "ok")
		}))
		defer srv.Close()

		fetcher := NewHTTPFetcher(testRouter(srv.URL), testConfig(), zap.NewNop())
		body, err := fetcher.Fetch(context.Background(), geo.KindSample, "GSM1")
		require.NoError(t, err)
		require.Equal(t, "ok", string(body))
		require.Equal(t, int32(3), calls.Load())
	})

	t.Run("does not retry a 404", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		fetcher := NewHTTPFetcher(testRouter(srv.URL), testConfig(), zap.NewNop())
		_, err := fetcher.Fetch(context.Background(), geo.KindSample, "GSM99999999")
		var ferr *geo.FetchError
		require.ErrorAs(t, err, &ferr)
		require.Equal(t, http.StatusNotFound, ferr.StatusCode)
		require.False(t, ferr.Retryable())
		require.Equal(t, int32(1), calls.Load())
	})

	t.Run("gives up after the retry budget", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		fetcher := NewHTTPFetcher(testRouter(srv.URL), testConfig(), zap.NewNop())
		_, err := fetcher.Fetch(context.Background(), geo.KindSample, "GSM1")
		var ferr *geo.FetchError
		require.ErrorAs(t, err, &ferr)
		require.Equal(t, int32(3), calls.Load())
	})

	t.Run("rejects an invalid accession before any request", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("server should never be reached")
		}))
		defer srv.Close()

		fetcher := NewHTTPFetcher(testRouter(srv.URL), testConfig(), zap.NewNop())
		_, err := fetcher.Fetch(context.Background(), geo.KindPlatform, "not-an-accession")
		var verr *geo.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		fetcher := NewHTTPFetcher(testRouter(srv.URL), testConfig(), zap.NewNop())
		_, err := fetcher.Fetch(ctx, geo.KindSample, "GSM1")
		require.ErrorIs(t, err, context.Canceled)
	})
}
