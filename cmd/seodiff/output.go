package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/seodiff/seodiff"
)

// maxDetailItems caps how many blocks, headings, or links are listed per URL
// before a continuation line.
const maxDetailItems = 5

// printResultsSummary writes a human-readable report of the run: overall
// statistics, per-URL difference details, and failed URLs with their errors.
func printResultsSummary(w io.Writer, result *seodiff.JobResult) {
	rule := strings.Repeat("=", 80)
	thinRule := strings.Repeat("-", 80)

	fmt.Fprintln(w, "\n"+rule)
	fmt.Fprintln(w, "SEO CONTENT DIFFERENCE REPORT")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "\nURLs Processed: %d\n", result.URLsProcessed)
	fmt.Fprintf(w, "URLs Succeeded: %d\n", result.URLsSucceeded)
	fmt.Fprintf(w, "URLs Failed:    %d\n", result.URLsFailed)
	fmt.Fprintf(w, "Success Rate:   %.2f%%\n", result.SuccessRate())

	if !result.FinishedAt.IsZero() {
		duration := result.FinishedAt.Sub(result.StartedAt).Seconds()
		fmt.Fprintf(w, "Duration:       %.1f seconds\n", duration)
	}

	withDifferences := result.AnalysesWithDifferences()

	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "Differences Detected: %d / %d URLs\n", len(withDifferences), result.URLsProcessed)
	fmt.Fprintf(w, "%s\n\n", rule)

	if len(withDifferences) == 0 {
		fmt.Fprintln(w, "No content differences detected.")
		fmt.Fprintln(w, "All URLs have identical content with and without JavaScript.")
	}

	for i, analysis := range withDifferences {
		fmt.Fprintf(w, "[%d] %s\n", i+1, analysis.URL)
		fmt.Fprintf(w, "    Final URL: %s\n", analysis.FinalURL)
		fmt.Fprintf(w, "    HTTP Status: %d\n", analysis.HTTPStatus)

		if d := analysis.Differences; d != nil {
			fmt.Fprintln(w, "\n    Word Count:")
			fmt.Fprintf(w, "      Without JS: %d\n", d.RawWordCount)
			fmt.Fprintf(w, "      With JS:    %d\n", d.RenderedWordCount)
			fmt.Fprintf(w, "      Delta:      %+d (%+.1f%%)\n", d.WordCountDelta(), d.WordCountPercentageChange())
			fmt.Fprintf(w, "      Invisible without JS: %.1f%%\n", d.ContentInvisibleWithoutJSPercentage())

			printBlockList(w, "Content visible ONLY with JavaScript", d.TextOnlyWithJS)
			printBlockList(w, "Content visible ONLY without JavaScript", d.TextOnlyWithoutJS)

			if n := len(d.HeadingsMissingWithoutJS); n > 0 {
				fmt.Fprintf(w, "\n    Headings MISSING without JavaScript (%d):\n", n)
				for _, heading := range capItems(d.HeadingsMissingWithoutJS) {
					fmt.Fprintf(w, "      - %s\n", heading)
				}
				if n > maxDetailItems {
					fmt.Fprintf(w, "      ... and %d more headings\n", n-maxDetailItems)
				}
			}

			if n := len(d.InternalLinksMissingWithoutJS); n > 0 {
				fmt.Fprintf(w, "\n    Internal Links MISSING without JavaScript (%d):\n", n)
				links := d.InternalLinksMissingWithoutJS
				if len(links) > maxDetailItems {
					links = links[:maxDetailItems]
				}
				for _, link := range links {
					fmt.Fprintf(w, "      - %s -> %s\n", link.AnchorText, link.Href)
				}
				if n > maxDetailItems {
					fmt.Fprintf(w, "      ... and %d more links\n", n-maxDetailItems)
				}
			}
		}

		fmt.Fprintln(w, "\n"+thinRule+"\n")
	}

	failed := result.FailedAnalyses()
	if len(failed) == 0 {
		return
	}

	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "FAILED URLS (%d)\n", len(failed))
	fmt.Fprintf(w, "%s\n\n", rule)

	for i, analysis := range failed {
		fmt.Fprintf(w, "[%d] %s\n", i+1, analysis.URL)
		printErrors(w, analysis)
		fmt.Fprintln(w, thinRule+"\n")
	}
}

// printBlockList lists text blocks truncated to 100 runes, capped with a
// continuation line. Truncation counts runes so a multi-byte character is
// never split mid-sequence.
func printBlockList(w io.Writer, label string, blocks []string) {
	n := len(blocks)
	if n == 0 {
		return
	}
	fmt.Fprintf(w, "\n    %s (%d blocks):\n", label, n)
	for _, block := range capItems(blocks) {
		if runes := []rune(block); len(runes) > 100 {
			fmt.Fprintf(w, "      - %s...\n", string(runes[:100]))
		} else {
			fmt.Fprintf(w, "      - %s\n", block)
		}
	}
	if n > maxDetailItems {
		fmt.Fprintf(w, "      ... and %d more blocks\n", n-maxDetailItems)
	}
}

func capItems(items []string) []string {
	if len(items) > maxDetailItems {
		return items[:maxDetailItems]
	}
	return items
}

func printErrors(w io.Writer, analysis *seodiff.URLAnalysis) {
	if len(analysis.FetchErrors) > 0 {
		fmt.Fprintln(w, "  Fetch Errors:")
		for _, e := range analysis.FetchErrors {
			fmt.Fprintf(w, "    - %s\n", e)
		}
	}
	if len(analysis.RenderErrors) > 0 {
		fmt.Fprintln(w, "  Render Errors:")
		for _, e := range analysis.RenderErrors {
			fmt.Fprintf(w, "    - %s\n", e)
		}
	}
	if len(analysis.ExtractionErrors) > 0 {
		fmt.Fprintln(w, "  Extraction Errors:")
		for _, e := range analysis.ExtractionErrors {
			fmt.Fprintf(w, "    - %s\n", e)
		}
	}
}
