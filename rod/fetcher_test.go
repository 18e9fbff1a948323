//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seodiff/seodiff"
	"github.com/seodiff/seodiff/rod"
)

// Ensure Fetcher implements seodiff.RenderedFetcher.
var _ seodiff.RenderedFetcher = (*rod.Fetcher)(nil)

func TestFetcher_Fetch_ContextCancellation(t *testing.T) {
	t.Parallel()

	// Server that never responds
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {}
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	_, err = fetcher.Fetch(ctx, srv.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetcher_Fetch_ReturnsRenderedHTML(t *testing.T) {
	t.Parallel()

	// Serve a page that uses JavaScript to replace content
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Test Page</title></head>
<body>
<div id="content">Loading...</div>
<script>
document.getElementById('content').textContent = 'JavaScript Rendered';
</script>
</body>
</html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	result, err := fetcher.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Success)
	assert.Equal(t, srv.URL, result.OriginalURL)
	assert.Contains(t, result.HTML, "JavaScript Rendered")
	assert.NotContains(t, result.HTML, "Loading...")
	assert.Greater(t, result.FetchTime, time.Duration(0))
}

func TestFetcher_Fetch_WaitLoadStrategy(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><p>static content</p></body></html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher(rod.WithWaitStrategy(seodiff.WaitLoad))
	require.NoError(t, err)
	defer fetcher.Close()

	result, err := fetcher.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Contains(t, result.HTML, "static content")
}

func TestFetcher_Fetch_CustomUserAgent(t *testing.T) {
	t.Parallel()

	// Echo the request User-Agent back into the page body
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><p>` + r.UserAgent() + `</p></body></html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher(rod.WithUserAgent("seodiff-test-agent/1.0"))
	require.NoError(t, err)
	defer fetcher.Close()

	result, err := fetcher.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, result.HTML, "seodiff-test-agent/1.0")
}

func TestFetcher_Fetch_RecordsFinalURLAfterRedirect(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><p>landed</p></body></html>`))
	})

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	result, err := fetcher.Fetch(context.Background(), srv.URL+"/start")

	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/start", result.OriginalURL)
	assert.Equal(t, srv.URL+"/final", result.URL)
}

func TestFetcher_Fetch_TimeoutTriggersOnSlowPage(t *testing.T) {
	t.Parallel()

	// Server that delays longer than the fetch timeout
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>delayed</body></html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(100 * time.Millisecond))
	require.NoError(t, err)
	defer fetcher.Close()

	_, err = fetcher.Fetch(context.Background(), srv.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetcher_Fetch_TimeoutBoundsLoadWait(t *testing.T) {
	t.Parallel()

	// Server that responds with headers but never finishes the body, so the
	// load event never fires.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>stalled`))
		w.(http.Flusher).Flush()
		select {}
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher(
		rod.WithFetchTimeout(1*time.Second),
		rod.WithWaitStrategy(seodiff.WaitLoad),
	)
	require.NoError(t, err)
	defer fetcher.Close()

	begin := time.Now()
	result, err := fetcher.Fetch(context.Background(), srv.URL)
	elapsed := time.Since(begin)

	require.Error(t, err)
	assert.Less(t, elapsed, 10*time.Second, "fetch must return once the timeout expires")
	if result != nil {
		assert.False(t, result.Success)
		assert.NotEmpty(t, result.ErrorMessage)
	}
}

func TestFetcher_Fetch_FailureCarriesResult(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	// Nothing listens on this port.
	result, err := fetcher.Fetch(context.Background(), "http://127.0.0.1:1/unreachable")

	require.Error(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.ErrorMessage)
}

func TestFetcher_Close_Idempotent(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)

	err = fetcher.Close()
	require.NoError(t, err)

	// Second close should also succeed (not panic or error)
	err = fetcher.Close()
	require.NoError(t, err)
}
