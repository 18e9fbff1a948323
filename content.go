package seodiff

import "strings"

// Link is a hyperlink identified by its href and anchor text. Two links are
// the same link only if both fields are equal.
type Link struct {
	Href       string `json:"href"`
	AnchorText string `json:"anchor_text"`
}

// ExtractedContent is the structured, SEO-relevant content of a page:
// visible text, headings in document order, and internal links in document
// order. Internal links are not deduplicated.
type ExtractedContent struct {
	VisibleText   string   `json:"visible_text"` // whitespace-collapsed
	Headings      []string `json:"headings"`
	InternalLinks []Link   `json:"internal_links"`
}

// WordCount returns the number of whitespace-separated tokens in VisibleText.
func (c *ExtractedContent) WordCount() int {
	return len(strings.Fields(c.VisibleText))
}

// HeadingCount returns the number of headings.
func (c *ExtractedContent) HeadingCount() int {
	return len(c.Headings)
}

// InternalLinkCount returns the number of internal links.
func (c *ExtractedContent) InternalLinkCount() int {
	return len(c.InternalLinks)
}

// Extractor reduces HTML to structured content.
type Extractor interface {
	// Extract parses html and returns its visible text, headings, and
	// internal links. Parsing is best-effort: malformed markup never causes
	// an error, it yields whatever content the parser could recover. baseURL,
	// when non-empty, is used to resolve relative hrefs and to classify links
	// as internal or external; when empty, every link is internal.
	Extract(html, baseURL string) (*ExtractedContent, error)
}
