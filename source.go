package seodiff

import "context"

// URLSource discovers the URLs to analyze from a site.
// Implementations hide where the list comes from (e.g., sitemaps).
type URLSource interface {
	Discover(ctx context.Context, baseURL string) ([]string, error)
}
