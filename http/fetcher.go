// Package http provides the raw (non-scripting) implementation of
// seodiff.RawFetcher, plus sitemap-based URL discovery. It retrieves pages
// the way non-JS crawlers and text-only agents do.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/seodiff/seodiff"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (30s).
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent identifies the raw fetcher as a bot. Pages that serve
// different content to crawlers will show it here.
const DefaultUserAgent = "Mozilla/5.0 (compatible; seodiff/1.0; +https://example.com/bot)"

// Ensure Fetcher implements seodiff.RawFetcher at compile time.
var _ seodiff.RawFetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML without executing JavaScript. It follows redirects
// and records the final URL, status, and response headers. A non-2xx status
// is a result, not an error; callers inspect RawFetchResult.Succeeded.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new raw HTML Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch performs an HTTP GET and returns the response with its metadata.
// On timeout or transport failure it returns a nil result and the error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*seodiff.RawFetchResult, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string, len(resp.Header))
	for key := range resp.Header {
		headers[key] = resp.Header.Get(key)
	}

	return &seodiff.RawFetchResult{
		URL:         resp.Request.URL.String(), // final URL after redirects
		OriginalURL: url,
		StatusCode:  resp.StatusCode,
		Headers:     headers,
		HTML:        string(body),
		FetchTime:   time.Since(start),
	}, nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
