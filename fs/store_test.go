package fs_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seodiff/seodiff"
	"github.com/seodiff/seodiff/fs"
)

func testResult() *seodiff.JobResult {
	started := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	return &seodiff.JobResult{
		StartedAt:     started,
		FinishedAt:    started.Add(42 * time.Second),
		URLsProcessed: 2,
		URLsSucceeded: 1,
		URLsFailed:    1,
		Results: []*seodiff.URLAnalysis{
			{
				URL:        "https://example.com/a",
				FinalURL:   "https://example.com/a",
				HTTPStatus: 200,
				RawContent: &seodiff.ExtractedContent{VisibleText: "hello world"},
				Differences: &seodiff.DifferenceReport{
					TextOnlyWithJS:           []string{"dynamic", "content", "here"},
					HeadingsMissingWithoutJS: []string{"Reviews", "FAQ"},
					InternalLinksMissingWithoutJS: []seodiff.Link{
						{Href: "https://example.com/reviews", AnchorText: "Reviews"},
					},
					RawWordCount:      100,
					RenderedWordCount: 150,
				},
			},
			{
				URL:         "https://example.com/b",
				FinalURL:    "https://example.com/b",
				HTTPStatus:  0,
				FetchErrors: []string{"connection refused"},
			},
		},
	}
}

func TestStore_SaveResult_CSV(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := fs.NewStore(dir)

	path, err := store.SaveResult(context.Background(), testResult(), seodiff.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "seodiff_results_20250615_103000.csv", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	// Summary comment block
	assert.Contains(t, content, "# Generated: 2025-06-15T10:30:00Z")
	assert.Contains(t, content, "# URLs Processed: 2")
	assert.Contains(t, content, "# URLs Succeeded: 1")
	assert.Contains(t, content, "# URLs Failed: 1")
	assert.Contains(t, content, "# Success Rate: 50.00%")

	// Header row
	assert.Contains(t, content, "URL,Final URL,HTTP Status,Raw Word Count,Rendered Word Count,Word Count Delta,Content Invisible Without JS (%),Headings Missing Without JS,Internal Links Missing Count,Success,Errors")

	// Successful URL: delta 50, invisible 50/150 = 33.33
	assert.Contains(t, content, `https://example.com/a,https://example.com/a,200,100,150,50,33.33,"Reviews, FAQ",1,Yes,`)

	// Failed URL carries its stage-prefixed error
	assert.Contains(t, content, "https://example.com/b,https://example.com/b,0,0,0,0,0.00,,0,No,Fetch: connection refused")
}

func TestStore_SaveResult_JSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := fs.NewStore(dir)

	path, err := store.SaveResult(context.Background(), testResult(), seodiff.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "seodiff_results_20250615_103000.json", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var report struct {
		Metadata struct {
			StartedAt     string  `json:"started_at"`
			URLsProcessed int     `json:"urls_processed"`
			SuccessRate   float64 `json:"success_rate"`
		} `json:"metadata"`
		Results []struct {
			URL            string `json:"url"`
			Success        bool   `json:"success"`
			WordCountDelta int    `json:"word_count_delta"`
			Differences    *struct {
				TextOnlyWithJS []string `json:"text_only_with_js"`
			} `json:"differences"`
			FetchErrors []string `json:"fetch_errors"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(data, &report))

	assert.Equal(t, "2025-06-15T10:30:00Z", report.Metadata.StartedAt)
	assert.Equal(t, 2, report.Metadata.URLsProcessed)
	assert.InDelta(t, 50.0, report.Metadata.SuccessRate, 0.001)

	require.Len(t, report.Results, 2)
	assert.Equal(t, "https://example.com/a", report.Results[0].URL)
	assert.True(t, report.Results[0].Success)
	assert.Equal(t, 50, report.Results[0].WordCountDelta)
	require.NotNil(t, report.Results[0].Differences)
	assert.Equal(t, []string{"dynamic", "content", "here"}, report.Results[0].Differences.TextOnlyWithJS)

	assert.False(t, report.Results[1].Success)
	assert.Equal(t, []string{"connection refused"}, report.Results[1].FetchErrors)
	assert.Nil(t, report.Results[1].Differences)
}

func TestStore_SaveResult_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	store := fs.NewStore(t.TempDir())

	_, err := store.SaveResult(context.Background(), testResult(), seodiff.Format("xml"))

	require.Error(t, err)
	assert.Equal(t, seodiff.EINVALID, seodiff.ErrorCode(err))
}

func TestStore_SaveResult_CreatesBaseDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "reports")
	store := fs.NewStore(dir)

	path, err := store.SaveResult(context.Background(), testResult(), seodiff.FormatCSV)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, dir))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestStore_SaveResult_ContextCancelled(t *testing.T) {
	t.Parallel()

	store := fs.NewStore(t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.SaveResult(ctx, testResult(), seodiff.FormatCSV)
	assert.ErrorIs(t, err, context.Canceled)
}
