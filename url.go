package seodiff

import "strings"

// ValidatedURL is a URL string that has passed input validation. The zero
// value is not valid; construct one with NewValidatedURL.
type ValidatedURL struct {
	raw string
}

// NewValidatedURL validates raw and returns it wrapped as a ValidatedURL.
// A valid URL is non-empty and starts with http:// or https://. The input is
// never normalized: a URL with leading or trailing whitespace fails
// validation rather than being trimmed.
func NewValidatedURL(raw string) (ValidatedURL, error) {
	if raw == "" {
		return ValidatedURL{}, Errorf(EINVALID, "URL must be a non-empty string")
	}
	lower := strings.ToLower(raw)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return ValidatedURL{}, Errorf(EINVALID, "URL must start with http:// or https://: %s", raw)
	}
	return ValidatedURL{raw: raw}, nil
}

// String returns the URL as originally provided.
func (u ValidatedURL) String() string {
	return u.raw
}
