package seodiff

import "context"

// Format identifies a result export format.
type Format string

// Supported export formats.
const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat converts a string into a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatJSON:
		return Format(s), nil
	}
	return "", Errorf(EINVALID, "unsupported format: %s (use csv or json)", s)
}

// ResultStore persists job results.
// Implementations may write files or record rows in a database.
type ResultStore interface {
	// SaveResult persists the result and returns the path of the written
	// file, or an identifier for non-file backends.
	SaveResult(ctx context.Context, result *JobResult, format Format) (string, error)
}
