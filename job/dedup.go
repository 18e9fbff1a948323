package job

import (
	"strings"

	"github.com/seodiff/seodiff"
)

// ValidateAndDedup trims surrounding whitespace from each input line, drops
// blank lines and strings that fail URL validation, and removes duplicates.
// Deduplication is an explicit first-seen-order pass rather than a set, so
// the output order never depends on map iteration.
func ValidateAndDedup(urls []string) []string {
	seen := make(map[string]bool)
	out := []string{}

	for _, line := range urls {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		validated, err := seodiff.NewValidatedURL(line)
		if err != nil {
			// Invalid URLs are dropped, not reported.
			continue
		}
		u := validated.String()
		if seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}

	return out
}
