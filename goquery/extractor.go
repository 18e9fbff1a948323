// Package goquery provides an HTML content extractor built on
// PuerkitoBio/goquery. It reduces a page to its SEO-relevant signal: visible
// text, headings in document order, and internal links.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/seodiff/seodiff"
)

// Ensure Extractor implements seodiff.Extractor at compile time.
var _ seodiff.Extractor = (*Extractor)(nil)

// ignoredTags are subtrees removed before any extraction: non-content
// machinery plus the SVG container and primitive tags.
var ignoredTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"iframe":   true,
	"svg":      true,
	"path":     true,
	"circle":   true,
	"rect":     true,
	"polygon":  true,
	"line":     true,
	"ellipse":  true,
	"defs":     true,
	"use":      true,
	"g":        true,
	"symbol":   true,
	"marker":   true,
	"pattern":  true,
	"filter":   true,
	"mask":     true,
	"clippath": true,
	"textpath": true,
}

// cookieBannerSelectors identify likely cookie/consent banners. Matching is
// best-effort; an element is only removed if its own text also mentions
// consent vocabulary.
var cookieBannerSelectors = []string{
	"[id*='cookie']",
	"[class*='cookie']",
	"[id*='consent']",
	"[class*='consent']",
	"[id*='gdpr']",
	"[class*='gdpr']",
	"[role='dialog'][id*='cookie']",
}

var cookieBannerWords = []string{"cookie", "consent", "privacy", "accept", "reject"}

// skippedHrefPrefixes are link schemes that carry no SEO-relevant target.
var skippedHrefPrefixes = []string{"javascript:", "mailto:", "tel:", "#"}

// Extractor extracts structured content from HTML.
// Extraction never fails: malformed markup yields whatever structure the
// parser could recover.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses htmlStr and returns its visible text, headings, and
// internal links. baseURL, when non-empty, resolves relative hrefs and
// classifies links as internal; when empty, every link is internal.
func (e *Extractor) Extract(htmlStr, baseURL string) (*seodiff.ExtractedContent, error) {
	root, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		// html.Parse only fails on reader errors, which a strings.Reader
		// never produces. Yield an empty extraction rather than an error.
		return &seodiff.ExtractedContent{
			Headings:      []string{},
			InternalLinks: []seodiff.Link{},
		}, nil
	}

	removeIgnoredNodes(root)

	doc := goquery.NewDocumentFromNode(root)
	removeCookieBanners(doc)

	return &seodiff.ExtractedContent{
		VisibleText:   extractVisibleText(root),
		Headings:      extractHeadings(doc),
		InternalLinks: extractInternalLinks(doc, baseURL),
	}, nil
}

// removeIgnoredNodes detaches ignored element subtrees and comment nodes.
// Tag names are compared case-insensitively because the parser preserves the
// adjusted casing of foreign (SVG) elements such as clipPath.
func removeIgnoredNodes(n *html.Node) {
	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling
		switch {
		case c.Type == html.CommentNode:
			n.RemoveChild(c)
		case c.Type == html.ElementNode && ignoredTags[strings.ToLower(c.Data)]:
			n.RemoveChild(c)
		default:
			removeIgnoredNodes(c)
		}
	}
}

// removeCookieBanners removes elements that match a consent-banner selector
// and whose text contains consent vocabulary.
func removeCookieBanners(doc *goquery.Document) {
	for _, selector := range cookieBannerSelectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			text := strings.ToLower(sel.Text())
			for _, word := range cookieBannerWords {
				if strings.Contains(text, word) {
					sel.Remove()
					return
				}
			}
		})
	}
}

// extractVisibleText collects every text node whose parent chain is fully
// visible and normalizes the result to single-space separators.
func extractVisibleText(root *html.Node) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if isVisible(n.Parent) {
				parts = append(parts, n.Data)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// isVisible reports whether the element and every ancestor up to the
// document root pass the visibility heuristics: no inline display:none or
// visibility:hidden, no "hidden" class token, no aria-hidden="true".
func isVisible(n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		style := strings.ToLower(attrValue(p, "style"))
		if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
			return false
		}
		for _, class := range strings.Fields(strings.ToLower(attrValue(p, "class"))) {
			if class == "hidden" {
				return false
			}
		}
		if strings.EqualFold(attrValue(p, "aria-hidden"), "true") {
			return false
		}
	}
	return true
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// extractHeadings returns the text of every non-empty h1-h6 element in
// document order. A single grouped selector pass keeps source order;
// collecting level by level would group headings by level instead.
func extractHeadings(doc *goquery.Document) []string {
	headings := []string{}
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		text := collapseWhitespace(sel.Text())
		if text != "" {
			headings = append(headings, text)
		}
	})
	return headings
}

// extractInternalLinks returns internal links in document order, without
// deduplication.
func extractInternalLinks(doc *goquery.Document, baseURL string) []seodiff.Link {
	var base *url.URL
	if baseURL != "" {
		if parsed, err := url.Parse(baseURL); err == nil {
			base = parsed
		}
	}

	links := []seodiff.Link{}
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		anchorText := collapseWhitespace(sel.Text())
		if href == "" || anchorText == "" {
			return
		}

		lower := strings.ToLower(href)
		for _, prefix := range skippedHrefPrefixes {
			if strings.HasPrefix(lower, prefix) {
				return
			}
		}

		if base != nil {
			if ref, err := url.Parse(href); err == nil {
				href = base.ResolveReference(ref).String()
			}
		}

		if !isInternalLink(base, href) {
			return
		}

		links = append(links, seodiff.Link{Href: href, AnchorText: anchorText})
	})
	return links
}

// isInternalLink classifies href as internal by exact host equality after
// stripping one leading "www." from each side. Without a base URL every link
// is internal. Subdomains other than www are treated as external hosts.
func isInternalLink(base *url.URL, href string) bool {
	if base == nil {
		return true
	}
	u, err := url.Parse(href)
	if err != nil {
		return true
	}
	return stripWWW(u.Host) == stripWWW(base.Host)
}

func stripWWW(host string) string {
	return strings.TrimPrefix(host, "www.")
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
