package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/seodiff/seodiff"
)

// Ensure LoggingSource implements seodiff.URLSource.
var _ seodiff.URLSource = (*LoggingSource)(nil)

// LoggingSource wraps a URLSource with debug logging.
type LoggingSource struct {
	next   seodiff.URLSource
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next seodiff.URLSource, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// Discover delegates to the wrapped source and logs the operation.
func (s *LoggingSource) Discover(ctx context.Context, baseURL string) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("url discovery",
			"url", baseURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Discover(ctx, baseURL)
}
