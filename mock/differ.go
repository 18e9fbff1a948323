package mock

import "github.com/seodiff/seodiff"

var _ seodiff.Differ = (*Differ)(nil)

// Differ is a mock implementation of seodiff.Differ.
type Differ struct {
	CompareFn func(raw, rendered *seodiff.ExtractedContent) (*seodiff.DifferenceReport, error)
}

func (d *Differ) Compare(raw, rendered *seodiff.ExtractedContent) (*seodiff.DifferenceReport, error) {
	return d.CompareFn(raw, rendered)
}
