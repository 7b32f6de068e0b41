package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><head><title>Ledger</title></head><body><table></table></body></html>`))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(WithUserAgent("ledger-test/1.0"))
	res, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "ledger-test/1.0", gotUA)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, srv.URL, res.FinalURL)
	assert.Contains(t, res.HTML, "<table>")
	assert.False(t, res.Blocked)
}

func TestHTTPFetcher_FollowsRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusFound)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>New</title></head><body>moved</body></html>`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	res, err := NewHTTPFetcher().Fetch(context.Background(), srv.URL+"/old")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/new", res.FinalURL)
}

func TestHTTPFetcher_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewHTTPFetcher().Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
	assert.NotErrorIs(t, err, ErrBlocked)
}

func TestHTTPFetcher_BlockedStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		reason string
	}{
		{"forbidden", http.StatusForbidden, "<html><body>nope</body></html>", "HTTP 403"},
		{"too many requests", http.StatusTooManyRequests, "", "HTTP 429"},
		{"cloudflare challenge", http.StatusServiceUnavailable, "<title>Attention Required! | Cloudflare</title>", "HTTP 503"},
		{"block phrase on 401", http.StatusUnauthorized, "<html><body>Sorry, you have been blocked</body></html>", "Sorry, you have been blocked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewHTTPFetcher().Fetch(context.Background(), srv.URL)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrBlocked)
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestHTTPFetcher_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := NewHTTPFetcher(WithTimeout(20 * time.Millisecond)).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
}

func TestHTTPFetcher_DecodesCharset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		w.Write([]byte("<html><head><title>Caf\xe9</title></head><body>x</body></html>"))
	}))
	defer srv.Close()

	res, err := NewHTTPFetcher().Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, res.HTML, "Café")
}

func TestHTTPFetcher_RateLimitRespectsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>ok</title></head><body>ok</body></html>`))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(WithRateLimit(0.001))
	_, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = f.Fetch(ctx, srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}
