// Package diff compares two extractions of the same page and reports
// categorized, human-meaningful differences instead of a raw textual diff.
package diff

import (
	"strings"

	"github.com/seodiff/seodiff"
)

// minBlockTokens is the minimum run length of unique tokens that forms a
// reported text block. Shorter runs are usually whitespace or punctuation
// artifacts, not content.
const minBlockTokens = 3

// Ensure Differ implements seodiff.Differ at compile time.
var _ seodiff.Differ = (*Differ)(nil)

// Differ compares raw and rendered content. It is pure and deterministic
// given its inputs.
type Differ struct{}

// NewDiffer creates a new Differ.
func NewDiffer() *Differ {
	return &Differ{}
}

// Compare reports the text blocks, headings, and internal links present in
// only one of the two extractions, along with the raw counters of both.
func (d *Differ) Compare(raw, rendered *seodiff.ExtractedContent) (*seodiff.DifferenceReport, error) {
	textOnlyWithJS, textOnlyWithoutJS := compareText(raw.VisibleText, rendered.VisibleText)
	headingsMissing, headingsExtra := compareHeadings(raw.Headings, rendered.Headings)
	linksMissing, linksExtra := compareLinks(raw.InternalLinks, rendered.InternalLinks)

	return &seodiff.DifferenceReport{
		TextOnlyWithJS:    textOnlyWithJS,
		TextOnlyWithoutJS: textOnlyWithoutJS,

		HeadingsMissingWithoutJS: headingsMissing,
		HeadingsExtraWithoutJS:   headingsExtra,

		InternalLinksMissingWithoutJS: linksMissing,
		InternalLinksExtraWithoutJS:   linksExtra,

		RawWordCount:              raw.WordCount(),
		RenderedWordCount:         rendered.WordCount(),
		RawHeadingCount:           raw.HeadingCount(),
		RenderedHeadingCount:      rendered.HeadingCount(),
		RawInternalLinkCount:      raw.InternalLinkCount(),
		RenderedInternalLinkCount: rendered.InternalLinkCount(),
	}, nil
}

// compareText tokenizes both texts, computes the lower-cased token-set
// difference in each direction, and maps each difference back onto its
// original token sequence as readable blocks.
func compareText(rawText, renderedText string) (onlyWithJS, onlyWithoutJS []string) {
	rawTokens := tokenSet(rawText)
	renderedTokens := tokenSet(renderedText)

	uniqueToRendered := setDifference(renderedTokens, rawTokens)
	uniqueToRaw := setDifference(rawTokens, renderedTokens)

	onlyWithJS = groupIntoBlocks(renderedText, uniqueToRendered)
	onlyWithoutJS = groupIntoBlocks(rawText, uniqueToRaw)
	return onlyWithJS, onlyWithoutJS
}

func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		set[token] = true
	}
	return set
}

func setDifference(a, b map[string]bool) map[string]bool {
	out := make(map[string]bool)
	for token := range a {
		if !b[token] {
			out[token] = true
		}
	}
	return out
}

// groupIntoBlocks scans the original token sequence and emits each contiguous
// run of unique tokens of at least minBlockTokens, preserving original order
// and casing. Shorter runs are discarded as noise.
func groupIntoBlocks(text string, unique map[string]bool) []string {
	blocks := []string{}
	if len(unique) == 0 {
		return blocks
	}

	var current []string
	for _, token := range strings.Fields(text) {
		if unique[strings.ToLower(token)] {
			current = append(current, token)
			continue
		}
		if len(current) >= minBlockTokens {
			blocks = append(blocks, strings.Join(current, " "))
		}
		current = nil
	}
	if len(current) >= minBlockTokens {
		blocks = append(blocks, strings.Join(current, " "))
	}

	return blocks
}

// compareHeadings treats headings as sets under exact string equality. Each
// result is ordered by the heading's first index in its source sequence.
func compareHeadings(rawHeadings, renderedHeadings []string) (missing, extra []string) {
	rawSet := stringSet(rawHeadings)
	renderedSet := stringSet(renderedHeadings)

	missing = uniqueInOrder(renderedHeadings, rawSet)
	extra = uniqueInOrder(rawHeadings, renderedSet)
	return missing, extra
}

func stringSet(values []string) map[string]bool {
	set := make(map[string]bool)
	for _, v := range values {
		set[v] = true
	}
	return set
}

// uniqueInOrder returns the values of source absent from other, each at most
// once, in source order.
func uniqueInOrder(source []string, other map[string]bool) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, v := range source {
		if other[v] || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// compareLinks treats each link as the (href, anchor text) pair and computes
// the set difference in both directions. Results follow each source
// sequence's first-occurrence order to keep output deterministic.
func compareLinks(rawLinks, renderedLinks []seodiff.Link) (missing, extra []seodiff.Link) {
	rawSet := linkSet(rawLinks)
	renderedSet := linkSet(renderedLinks)

	missing = uniqueLinksInOrder(renderedLinks, rawSet)
	extra = uniqueLinksInOrder(rawLinks, renderedSet)
	return missing, extra
}

func linkSet(links []seodiff.Link) map[seodiff.Link]bool {
	set := make(map[seodiff.Link]bool)
	for _, l := range links {
		set[l] = true
	}
	return set
}

func uniqueLinksInOrder(source []seodiff.Link, other map[seodiff.Link]bool) []seodiff.Link {
	out := []seodiff.Link{}
	seen := make(map[seodiff.Link]bool)
	for _, l := range source {
		if other[l] || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}
