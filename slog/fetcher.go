// Package slog provides logging decorators for the fetching and discovery
// interfaces, built on the standard library's structured logger.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/seodiff/seodiff"
)

// Ensure LoggingRawFetcher implements seodiff.RawFetcher.
var _ seodiff.RawFetcher = (*LoggingRawFetcher)(nil)

// LoggingRawFetcher wraps a RawFetcher with debug logging.
type LoggingRawFetcher struct {
	next   seodiff.RawFetcher
	logger *slog.Logger
}

// NewLoggingRawFetcher creates a new LoggingRawFetcher.
func NewLoggingRawFetcher(next seodiff.RawFetcher, logger *slog.Logger) *LoggingRawFetcher {
	return &LoggingRawFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingRawFetcher) Fetch(ctx context.Context, url string) (result *seodiff.RawFetchResult, err error) {
	defer func(begin time.Time) {
		var status, bytes int
		if result != nil {
			status = result.StatusCode
			bytes = len(result.HTML)
		}
		f.logger.Info("raw fetch",
			"url", url,
			"status", status,
			"bytes", bytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingRawFetcher) Close() error {
	return f.next.Close()
}

// Ensure LoggingRenderedFetcher implements seodiff.RenderedFetcher.
var _ seodiff.RenderedFetcher = (*LoggingRenderedFetcher)(nil)

// LoggingRenderedFetcher wraps a RenderedFetcher with debug logging.
type LoggingRenderedFetcher struct {
	next   seodiff.RenderedFetcher
	logger *slog.Logger
}

// NewLoggingRenderedFetcher creates a new LoggingRenderedFetcher.
func NewLoggingRenderedFetcher(next seodiff.RenderedFetcher, logger *slog.Logger) *LoggingRenderedFetcher {
	return &LoggingRenderedFetcher{next: next, logger: logger}
}

// Fetch logs the URL being rendered and delegates to the wrapped fetcher.
func (f *LoggingRenderedFetcher) Fetch(ctx context.Context, url string) (result *seodiff.RenderedFetchResult, err error) {
	defer func(begin time.Time) {
		var success bool
		var bytes int
		if result != nil {
			success = result.Success
			bytes = len(result.HTML)
		}
		f.logger.Info("rendered fetch",
			"url", url,
			"success", success,
			"bytes", bytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingRenderedFetcher) Close() error {
	return f.next.Close()
}
