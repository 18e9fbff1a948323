package seodiff

import "math"

// DifferenceReport categorizes the differences between the raw (no-JS) and
// rendered (JS-enabled) extractions of a page. The "without JS" perspective
// is the raw fetch; "missing without JS" means present only after rendering.
type DifferenceReport struct {
	TextOnlyWithJS    []string `json:"text_only_with_js"`
	TextOnlyWithoutJS []string `json:"text_only_without_js"`

	HeadingsMissingWithoutJS []string `json:"headings_missing_without_js"`
	HeadingsExtraWithoutJS   []string `json:"headings_extra_without_js"`

	InternalLinksMissingWithoutJS []Link `json:"internal_links_missing_without_js"`
	InternalLinksExtraWithoutJS   []Link `json:"internal_links_extra_without_js"`

	RawWordCount              int `json:"raw_word_count"`
	RenderedWordCount         int `json:"rendered_word_count"`
	RawHeadingCount           int `json:"raw_heading_count"`
	RenderedHeadingCount      int `json:"rendered_heading_count"`
	RawInternalLinkCount      int `json:"raw_internal_link_count"`
	RenderedInternalLinkCount int `json:"rendered_internal_link_count"`
}

// WordCountDelta returns the word count difference (rendered - raw).
func (r *DifferenceReport) WordCountDelta() int {
	return r.RenderedWordCount - r.RawWordCount
}

// WordCountPercentageChange returns the word count delta as a percentage of
// the raw word count, or 0 if the raw count is 0.
func (r *DifferenceReport) WordCountPercentageChange() float64 {
	if r.RawWordCount == 0 {
		return 0
	}
	return round2(float64(r.WordCountDelta()) / float64(r.RawWordCount) * 100)
}

// ContentInvisibleWithoutJSPercentage returns the percentage of rendered
// words that have no counterpart in the raw fetch, computed as
// (rendered - raw) / rendered * 100 when rendered > raw, else 0.
func (r *DifferenceReport) ContentInvisibleWithoutJSPercentage() float64 {
	if r.RenderedWordCount == 0 {
		return 0
	}
	if r.RawWordCount >= r.RenderedWordCount {
		return 0
	}
	delta := float64(r.RenderedWordCount - r.RawWordCount)
	return round2(delta / float64(r.RenderedWordCount) * 100)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// Differ compares two extractions of the same page.
type Differ interface {
	// Compare reports the content present in only one of the two
	// extractions. It is pure and deterministic given its inputs.
	Compare(raw, rendered *ExtractedContent) (*DifferenceReport, error)
}
