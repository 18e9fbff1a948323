package seodiff

import (
	"context"
	"time"
)

// WaitStrategy controls how a rendered fetch decides the page has settled
// after navigation.
type WaitStrategy string

const (
	// WaitNetworkIdle waits for network quiescence, silently falling back to
	// whatever DOM state exists if quiescence is not reached in time.
	WaitNetworkIdle WaitStrategy = "network_idle"

	// WaitLoad waits for the load event.
	WaitLoad WaitStrategy = "load"

	// WaitTimeout sleeps for a fixed fraction of the fetch timeout.
	WaitTimeout WaitStrategy = "timeout"
)

// ParseWaitStrategy converts a string into a WaitStrategy.
func ParseWaitStrategy(s string) (WaitStrategy, error) {
	switch WaitStrategy(s) {
	case WaitNetworkIdle, WaitLoad, WaitTimeout:
		return WaitStrategy(s), nil
	}
	return "", Errorf(EINVALID, "unknown wait strategy %q (use network_idle, load, or timeout)", s)
}

// RawFetchResult holds the outcome of fetching a URL without JavaScript
// execution. It represents what non-JS crawlers and text-only agents see.
type RawFetchResult struct {
	URL         string // final URL after redirects
	OriginalURL string // URL as requested
	StatusCode  int
	Headers     map[string]string
	HTML        string
	FetchTime   time.Duration
}

// Succeeded reports whether the fetch returned a 2xx status.
func (r *RawFetchResult) Succeeded() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// RenderedFetchResult holds the outcome of fetching a URL with JavaScript
// enabled. Headless rendering has no single status code, so success is an
// explicit flag set by the fetcher.
type RenderedFetchResult struct {
	URL          string // final URL after redirects
	OriginalURL  string // URL as requested
	HTML         string // DOM-serialized HTML after the wait strategy
	Success      bool
	FetchTime    time.Duration
	ErrorMessage string
}

// RawFetcher retrieves HTML without executing scripts.
type RawFetcher interface {
	// Fetch performs an HTTP GET, following redirects. The context controls
	// timeout and cancellation. A transport failure or timeout returns a nil
	// result and a descriptive error; a non-2xx response is a result, not an
	// error.
	Fetch(ctx context.Context, url string) (*RawFetchResult, error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// RenderedFetcher retrieves HTML after script execution in a
// scripting-enabled environment.
type RenderedFetcher interface {
	// Fetch loads the URL, applies the configured wait strategy, and returns
	// the DOM-serialized HTML. On failure it returns a nil result and a
	// descriptive error.
	Fetch(ctx context.Context, url string) (*RenderedFetchResult, error)

	// Close releases browser resources.
	// Must be called when the fetcher is no longer needed.
	Close() error
}

// HostLimiter throttles requests per host.
type HostLimiter interface {
	// Wait blocks until the rate limit allows a request to the host.
	// Returns an error if the context is canceled before the wait completes.
	Wait(ctx context.Context, host string) error
}
