package seodiff

import "time"

// URLAnalysis is the complete result for a single URL: both fetch outcomes,
// both extractions, the difference report, and the errors collected at each
// stage. Any of the pointer fields may be nil when the corresponding stage
// did not run or failed.
type URLAnalysis struct {
	URL        string // original URL as requested
	FinalURL   string // final URL after redirects (from the raw fetch)
	HTTPStatus int

	RawFetch      *RawFetchResult
	RenderedFetch *RenderedFetchResult

	RawContent      *ExtractedContent
	RenderedContent *ExtractedContent

	Differences *DifferenceReport

	FetchErrors      []string
	RenderErrors     []string
	ExtractionErrors []string
}

// Success reports whether the analysis completed without errors at any stage
// and produced a raw extraction.
func (a *URLAnalysis) Success() bool {
	return len(a.FetchErrors) == 0 &&
		len(a.RenderErrors) == 0 &&
		len(a.ExtractionErrors) == 0 &&
		a.RawContent != nil
}

// HasDifferences reports whether any of the six difference lists is
// non-empty.
func (a *URLAnalysis) HasDifferences() bool {
	d := a.Differences
	if d == nil {
		return false
	}
	return len(d.TextOnlyWithJS) > 0 ||
		len(d.TextOnlyWithoutJS) > 0 ||
		len(d.HeadingsMissingWithoutJS) > 0 ||
		len(d.HeadingsExtraWithoutJS) > 0 ||
		len(d.InternalLinksMissingWithoutJS) > 0 ||
		len(d.InternalLinksExtraWithoutJS) > 0
}

// AllErrors returns every stage error prefixed with its stage name.
func (a *URLAnalysis) AllErrors() []string {
	var out []string
	for _, e := range a.FetchErrors {
		out = append(out, "Fetch: "+e)
	}
	for _, e := range a.RenderErrors {
		out = append(out, "Render: "+e)
	}
	for _, e := range a.ExtractionErrors {
		out = append(out, "Extraction: "+e)
	}
	return out
}

// JobResult is the complete output of one batch run. Results preserves the
// order of the validated, deduplicated input URLs.
type JobResult struct {
	StartedAt  time.Time
	FinishedAt time.Time

	URLsProcessed int
	URLsSucceeded int
	URLsFailed    int

	Results []*URLAnalysis
}

// SuccessRate returns the percentage of URLs processed successfully,
// or 0 if no URLs were processed.
func (r *JobResult) SuccessRate() float64 {
	if r.URLsProcessed == 0 {
		return 0
	}
	return round2(float64(r.URLsSucceeded) / float64(r.URLsProcessed) * 100)
}

// FailedAnalyses returns the analyses whose Success is false.
func (r *JobResult) FailedAnalyses() []*URLAnalysis {
	var out []*URLAnalysis
	for _, a := range r.Results {
		if !a.Success() {
			out = append(out, a)
		}
	}
	return out
}

// AnalysesWithDifferences returns the analyses that detected differences.
func (r *JobResult) AnalysesWithDifferences() []*URLAnalysis {
	var out []*URLAnalysis
	for _, a := range r.Results {
		if a.HasDifferences() {
			out = append(out, a)
		}
	}
	return out
}
