package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seodiff/seodiff"
	"github.com/seodiff/seodiff/mock"
	seoslog "github.com/seodiff/seodiff/slog"
)

func TestLoggingRawFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with status, bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.RawFetcher{
			FetchFn: func(ctx context.Context, url string) (*seodiff.RawFetchResult, error) {
				return &seodiff.RawFetchResult{
					URL:        url,
					StatusCode: 200,
					HTML:       "<html>content</html>",
				}, nil
			},
		}

		fetcher := seoslog.NewLoggingRawFetcher(inner, logger)
		result, err := fetcher.Fetch(context.Background(), "https://example.com/page")

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", result.HTML)
		output := buf.String()
		assert.Contains(t, output, "raw fetch")
		assert.Contains(t, output, "url=https://example.com/page")
		assert.Contains(t, output, "status=200")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.RawFetcher{
			FetchFn: func(ctx context.Context, url string) (*seodiff.RawFetchResult, error) {
				return nil, errors.New("network error")
			},
		}

		fetcher := seoslog.NewLoggingRawFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://example.com/page")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "raw fetch")
		assert.Contains(t, output, "err=\"network error\"")
	})
}

func TestLoggingRawFetcher_Close(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	closeCalled := false
	inner := &mock.RawFetcher{
		CloseFn: func() error {
			closeCalled = true
			return nil
		},
	}

	fetcher := seoslog.NewLoggingRawFetcher(inner, logger)
	err := fetcher.Close()

	require.NoError(t, err)
	assert.True(t, closeCalled)
}

func TestLoggingRenderedFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs render with success flag", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.RenderedFetcher{
			FetchFn: func(ctx context.Context, url string) (*seodiff.RenderedFetchResult, error) {
				return &seodiff.RenderedFetchResult{
					URL:     url,
					HTML:    "<html>rendered</html>",
					Success: true,
				}, nil
			},
		}

		fetcher := seoslog.NewLoggingRenderedFetcher(inner, logger)
		result, err := fetcher.Fetch(context.Background(), "https://example.com/page")

		require.NoError(t, err)
		assert.True(t, result.Success)
		output := buf.String()
		assert.Contains(t, output, "rendered fetch")
		assert.Contains(t, output, "success=true")
		assert.Contains(t, output, "bytes=21")
	})

	t.Run("logs failed render", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.RenderedFetcher{
			FetchFn: func(ctx context.Context, url string) (*seodiff.RenderedFetchResult, error) {
				return nil, errors.New("browser crashed")
			},
		}

		fetcher := seoslog.NewLoggingRenderedFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://example.com/page")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "success=false")
		assert.Contains(t, output, "err=\"browser crashed\"")
	})
}
