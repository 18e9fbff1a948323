// Package job orchestrates the extraction-and-diff pipeline over a batch of
// URLs under a bounded concurrency budget with per-URL failure isolation.
package job

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/seodiff/seodiff"
)

// DefaultConcurrency bounds simultaneous per-URL pipelines when the Runner's
// Concurrency field is unset. Each pipeline may hold a network connection and
// a browser page, so the fan-out is deliberately modest.
const DefaultConcurrency = 3

// Runner coordinates per-URL pipelines: raw fetch, rendered fetch,
// extraction of both, and comparison.
type Runner struct {
	RawFetcher      seodiff.RawFetcher
	RenderedFetcher seodiff.RenderedFetcher
	Extractor       seodiff.Extractor
	Differ          seodiff.Differ

	// Limiter, when set, throttles requests per host in addition to the
	// concurrency bound.
	Limiter seodiff.HostLimiter

	Concurrency int
}

// ProgressEvent reports progress while a job runs.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting job progress.
type ProgressFunc func(event ProgressEvent)

// urlResult pairs an analysis with its position in the validated input list.
type urlResult struct {
	position int
	analysis *seodiff.URLAnalysis
}

// Run processes the given raw URL strings and returns a complete JobResult.
// Invalid URLs are silently dropped, duplicates are removed in first-seen
// order, and one URL's failure never aborts the batch: every validated URL
// yields exactly one analysis, in input order.
func (r *Runner) Run(ctx context.Context, urls []string, progress ProgressFunc) (*seodiff.JobResult, error) {
	startedAt := time.Now().UTC()

	validated := ValidateAndDedup(urls)
	total := len(validated)

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan urlResult, total)
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range validated {
			g.Go(func() error {
				resultCh <- urlResult{position: i, analysis: r.processURL(gctx, u)}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Full join before aggregation: results are collected back into input
	// order and nothing is streamed.
	analyses := make([]*seodiff.URLAnalysis, total)
	for result := range resultCh {
		analyses[result.position] = result.analysis
		completed.Add(1)

		if progress != nil {
			eventType := ProgressCompleted
			if !result.analysis.Success() {
				eventType = ProgressFailed
			}
			progress(ProgressEvent{
				Type:      eventType,
				Completed: int(completed.Load()),
				Total:     total,
				URL:       result.analysis.URL,
			})
		}
	}

	var succeeded int
	for _, a := range analyses {
		if a.Success() {
			succeeded++
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return &seodiff.JobResult{
		StartedAt:     startedAt,
		FinishedAt:    time.Now().UTC(),
		URLsProcessed: total,
		URLsSucceeded: succeeded,
		URLsFailed:    total - succeeded,
		Results:       analyses,
	}, nil
}

// processURL runs the full pipeline for one URL. Stage failures become
// entries in the analysis's error lists; a panic anywhere in the pipeline is
// converted into a synthetic fetch error so the batch always gets exactly
// one analysis per URL.
func (r *Runner) processURL(ctx context.Context, rawURL string) (analysis *seodiff.URLAnalysis) {
	defer func() {
		if p := recover(); p != nil {
			analysis = &seodiff.URLAnalysis{
				URL:         rawURL,
				FinalURL:    rawURL,
				HTTPStatus:  0,
				FetchErrors: []string{fmt.Sprintf("Unexpected error: %v", p)},
			}
		}
	}()

	analysis = &seodiff.URLAnalysis{URL: rawURL}

	if r.Limiter != nil {
		if host := hostOf(rawURL); host != "" {
			if err := r.Limiter.Wait(ctx, host); err != nil {
				analysis.FinalURL = rawURL
				analysis.FetchErrors = append(analysis.FetchErrors, err.Error())
				return analysis
			}
		}
	}

	// Fetch without scripting.
	rawFetch, err := r.RawFetcher.Fetch(ctx, rawURL)
	if err != nil {
		analysis.FetchErrors = append(analysis.FetchErrors, err.Error())
	}
	if rawFetch == nil {
		analysis.FinalURL = rawURL
		analysis.HTTPStatus = 0
	} else {
		analysis.RawFetch = rawFetch
		analysis.FinalURL = rawFetch.URL
		analysis.HTTPStatus = rawFetch.StatusCode
	}

	// Fetch with scripting, only when the raw fetch produced a result.
	if rawFetch != nil {
		renderedFetch, err := r.RenderedFetcher.Fetch(ctx, rawURL)
		if err != nil {
			analysis.RenderErrors = append(analysis.RenderErrors, err.Error())
		}
		analysis.RenderedFetch = renderedFetch
	}

	if rawFetch != nil {
		content, err := r.Extractor.Extract(rawFetch.HTML, rawFetch.URL)
		if err != nil {
			analysis.ExtractionErrors = append(analysis.ExtractionErrors,
				fmt.Sprintf("Raw content extraction failed: %v", err))
		} else {
			analysis.RawContent = content
		}
	}

	// Rendered extraction requires the renderer's own success flag, not
	// merely the absence of an error.
	if analysis.RenderedFetch != nil && analysis.RenderedFetch.Success {
		content, err := r.Extractor.Extract(analysis.RenderedFetch.HTML, analysis.RenderedFetch.URL)
		if err != nil {
			analysis.ExtractionErrors = append(analysis.ExtractionErrors,
				fmt.Sprintf("Rendered content extraction failed: %v", err))
		} else {
			analysis.RenderedContent = content
		}
	}

	if analysis.RawContent != nil && analysis.RenderedContent != nil {
		report, err := r.Differ.Compare(analysis.RawContent, analysis.RenderedContent)
		if err != nil {
			analysis.ExtractionErrors = append(analysis.ExtractionErrors,
				fmt.Sprintf("Content comparison failed: %v", err))
		} else {
			analysis.Differences = report
		}
	}

	return analysis
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
