// Package mock provides function-field mocks for the seodiff interfaces.
package mock

import (
	"context"

	"github.com/seodiff/seodiff"
)

var _ seodiff.RawFetcher = (*RawFetcher)(nil)

// RawFetcher is a mock implementation of seodiff.RawFetcher.
type RawFetcher struct {
	FetchFn func(ctx context.Context, url string) (*seodiff.RawFetchResult, error)
	CloseFn func() error
}

func (f *RawFetcher) Fetch(ctx context.Context, url string) (*seodiff.RawFetchResult, error) {
	return f.FetchFn(ctx, url)
}

func (f *RawFetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ seodiff.RenderedFetcher = (*RenderedFetcher)(nil)

// RenderedFetcher is a mock implementation of seodiff.RenderedFetcher.
type RenderedFetcher struct {
	FetchFn func(ctx context.Context, url string) (*seodiff.RenderedFetchResult, error)
	CloseFn func() error
}

func (f *RenderedFetcher) Fetch(ctx context.Context, url string) (*seodiff.RenderedFetchResult, error) {
	return f.FetchFn(ctx, url)
}

func (f *RenderedFetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
