package mock

import "github.com/seodiff/seodiff"

var _ seodiff.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of seodiff.Extractor.
type Extractor struct {
	ExtractFn func(html, baseURL string) (*seodiff.ExtractedContent, error)
}

func (e *Extractor) Extract(html, baseURL string) (*seodiff.ExtractedContent, error) {
	return e.ExtractFn(html, baseURL)
}
