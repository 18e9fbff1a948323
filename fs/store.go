// Package fs persists batch results as CSV or JSON reports on disk.
package fs

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/seodiff/seodiff"
)

// Ensure Store implements seodiff.ResultStore at compile time.
var _ seodiff.ResultStore = (*Store)(nil)

// Store writes one report file per batch run into a base directory.
// Filenames embed the run timestamp so repeated runs never clobber
// each other.
type Store struct {
	baseDir string
}

// NewStore creates a new Store writing into baseDir. The directory is
// created on first save if it does not exist.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// SaveResult writes the result in the requested format and returns the path
// of the file written.
func (s *Store) SaveResult(ctx context.Context, result *seodiff.JobResult, format seodiff.Format) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(s.baseDir, generateFilename(result.StartedAt, format))

	var err error
	switch format {
	case seodiff.FormatCSV:
		err = writeCSV(path, result)
	case seodiff.FormatJSON:
		err = writeJSON(path, result)
	default:
		return "", seodiff.Errorf(seodiff.EINVALID, "unsupported format: %s", format)
	}
	if err != nil {
		return "", err
	}

	return path, nil
}

// generateFilename builds the timestamped report filename.
func generateFilename(startedAt time.Time, format seodiff.Format) string {
	ts := startedAt.Format("20060102_150405")
	return fmt.Sprintf("seodiff_results_%s.%s", ts, format)
}

// csvHeader is the column order of the per-URL rows.
var csvHeader = []string{
	"URL",
	"Final URL",
	"HTTP Status",
	"Raw Word Count",
	"Rendered Word Count",
	"Word Count Delta",
	"Content Invisible Without JS (%)",
	"Headings Missing Without JS",
	"Internal Links Missing Count",
	"Success",
	"Errors",
}

func writeCSV(path string, result *seodiff.JobResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	// Summary lines go above the CSV payload as comments, so the file is
	// self-describing when opened outside a spreadsheet.
	summary := []string{
		fmt.Sprintf("# Generated: %s", result.StartedAt.Format(time.RFC3339)),
		fmt.Sprintf("# URLs Processed: %d", result.URLsProcessed),
		fmt.Sprintf("# URLs Succeeded: %d", result.URLsSucceeded),
		fmt.Sprintf("# URLs Failed: %d", result.URLsFailed),
		fmt.Sprintf("# Success Rate: %.2f%%", result.SuccessRate()),
	}
	for _, line := range summary {
		if _, err := fmt.Fprintln(f, line); err != nil {
			return err
		}
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, a := range result.Results {
		if err := w.Write(csvRow(a)); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func csvRow(a *seodiff.URLAnalysis) []string {
	var rawWords, renderedWords, delta int
	var invisible float64
	var headingsMissing []string
	var linksMissing int
	if d := a.Differences; d != nil {
		rawWords = d.RawWordCount
		renderedWords = d.RenderedWordCount
		delta = d.WordCountDelta()
		invisible = d.ContentInvisibleWithoutJSPercentage()
		headingsMissing = d.HeadingsMissingWithoutJS
		linksMissing = len(d.InternalLinksMissingWithoutJS)
	}

	success := "No"
	if a.Success() {
		success = "Yes"
	}

	return []string{
		a.URL,
		a.FinalURL,
		strconv.Itoa(a.HTTPStatus),
		strconv.Itoa(rawWords),
		strconv.Itoa(renderedWords),
		strconv.Itoa(delta),
		fmt.Sprintf("%.2f", invisible),
		strings.Join(headingsMissing, ", "),
		strconv.Itoa(linksMissing),
		success,
		strings.Join(a.AllErrors(), "; "),
	}
}

// jsonReport is the on-disk shape of a JSON export.
type jsonReport struct {
	Metadata jsonMetadata   `json:"metadata"`
	Results  []jsonAnalysis `json:"results"`
}

type jsonMetadata struct {
	GeneratedAt   string  `json:"generated_at"`
	StartedAt     string  `json:"started_at"`
	FinishedAt    string  `json:"finished_at"`
	URLsProcessed int     `json:"urls_processed"`
	URLsSucceeded int     `json:"urls_succeeded"`
	URLsFailed    int     `json:"urls_failed"`
	SuccessRate   float64 `json:"success_rate"`
}

type jsonAnalysis struct {
	URL              string                    `json:"url"`
	FinalURL         string                    `json:"final_url"`
	HTTPStatus       int                       `json:"http_status"`
	Success          bool                      `json:"success"`
	Differences      *seodiff.DifferenceReport `json:"differences,omitempty"`
	WordCountDelta   int                       `json:"word_count_delta"`
	InvisiblePercent float64                   `json:"content_invisible_without_js_percent"`
	FetchErrors      []string                  `json:"fetch_errors,omitempty"`
	RenderErrors     []string                  `json:"render_errors,omitempty"`
	ExtractionErrors []string                  `json:"extraction_errors,omitempty"`
}

func writeJSON(path string, result *seodiff.JobResult) error {
	report := jsonReport{
		Metadata: jsonMetadata{
			GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
			StartedAt:     result.StartedAt.Format(time.RFC3339),
			FinishedAt:    result.FinishedAt.Format(time.RFC3339),
			URLsProcessed: result.URLsProcessed,
			URLsSucceeded: result.URLsSucceeded,
			URLsFailed:    result.URLsFailed,
			SuccessRate:   result.SuccessRate(),
		},
		Results: make([]jsonAnalysis, 0, len(result.Results)),
	}

	for _, a := range result.Results {
		ja := jsonAnalysis{
			URL:              a.URL,
			FinalURL:         a.FinalURL,
			HTTPStatus:       a.HTTPStatus,
			Success:          a.Success(),
			Differences:      a.Differences,
			FetchErrors:      a.FetchErrors,
			RenderErrors:     a.RenderErrors,
			ExtractionErrors: a.ExtractionErrors,
		}
		if d := a.Differences; d != nil {
			ja.WordCountDelta = d.WordCountDelta()
			ja.InvisiblePercent = d.ContentInvisibleWithoutJSPercentage()
		}
		report.Results = append(report.Results, ja)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
