// Package rod provides a rendered-HTML fetcher backed by headless Chrome.
package rod

import (
	"context"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/seodiff/seodiff"
)

// Ensure Fetcher implements seodiff.RenderedFetcher at compile time.
var _ seodiff.RenderedFetcher = (*Fetcher)(nil)

// DefaultFetchTimeout is the default timeout for rendering a single page.
const DefaultFetchTimeout = 30 * time.Second

// networkIdleWait is how long the network must stay quiet before a page
// fetched with the network-idle strategy is considered settled.
const networkIdleWait = 500 * time.Millisecond

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Pages are opened against a managed browser that is recycled periodically.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager      *BrowserManager
	timeout      time.Duration
	waitStrategy seodiff.WaitStrategy
	userAgent    string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page rendering timeout.
// Defaults to DefaultFetchTimeout if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithWaitStrategy sets how the fetcher decides a page has finished
// rendering. Defaults to seodiff.WaitNetworkIdle.
func WithWaitStrategy(s seodiff.WaitStrategy) Option {
	return func(f *Fetcher) {
		f.waitStrategy = s
	}
}

// WithUserAgent overrides the browser's default User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		waitStrategy: seodiff.WaitNetworkIdle,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}
	f.manager = manager

	return f, nil
}

// Fetch navigates to the URL, waits for the page to settle according to the
// configured wait strategy, and returns the rendered HTML. Failures after
// navigation starts produce a result with Success set to false alongside
// the error, so callers can still record what the renderer saw.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*seodiff.RenderedFetchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The whole fetch runs against the configured timeout: navigation, the
	// wait strategy, and DOM serialization all observe this deadline, so a
	// page that never settles cannot hold its pipeline slot forever.
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	begin := time.Now()

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, seodiff.Errorf(seodiff.EUNAVAILABLE, "opening browser page: %v", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if f.userAgent != "" {
		override := &proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}
		if err := page.SetUserAgent(override); err != nil {
			return f.failedResult(url, begin, err), err
		}
	}

	if err := page.Navigate(url); err != nil {
		return f.failedResult(url, begin, err), err
	}

	if err := f.waitForPage(page); err != nil {
		return f.failedResult(url, begin, err), err
	}

	html, err := page.HTML()
	if err != nil {
		return f.failedResult(url, begin, err), err
	}

	f.manager.IncrementPageCount()

	info, err := page.Info()
	finalURL := url
	if err == nil && info.URL != "" {
		finalURL = info.URL
	}

	return &seodiff.RenderedFetchResult{
		URL:         finalURL,
		OriginalURL: url,
		HTML:        html,
		Success:     true,
		FetchTime:   time.Since(begin),
	}, nil
}

// waitForPage blocks until the configured wait strategy is satisfied.
func (f *Fetcher) waitForPage(page *rod.Page) error {
	switch f.waitStrategy {
	case seodiff.WaitLoad:
		return page.WaitLoad()
	case seodiff.WaitTimeout:
		// A fixed fraction of the fetch timeout, leaving the rest for
		// navigation and HTML retrieval.
		time.Sleep(f.timeout / 2)
		return nil
	default:
		// Network-idle is best effort: heavy pages with long-polling or
		// analytics beacons may never go quiet, so when the inner deadline
		// expires we proceed with whatever has rendered. The inner wait is
		// shorter than the fetch timeout so DOM serialization still has
		// budget after the fallback.
		wait := page.Timeout(f.timeout*3/4).WaitRequestIdle(networkIdleWait, nil, nil, nil)
		wait()
		return nil
	}
}

// failedResult builds a result carrying the renderer's failure details.
func (f *Fetcher) failedResult(url string, begin time.Time, err error) *seodiff.RenderedFetchResult {
	return &seodiff.RenderedFetchResult{
		URL:          url,
		OriginalURL:  url,
		Success:      false,
		FetchTime:    time.Since(begin),
		ErrorMessage: err.Error(),
	}
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
