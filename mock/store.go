package mock

import (
	"context"

	"github.com/seodiff/seodiff"
)

var _ seodiff.ResultStore = (*ResultStore)(nil)

// ResultStore is a mock implementation of seodiff.ResultStore.
type ResultStore struct {
	SaveResultFn func(ctx context.Context, result *seodiff.JobResult, format seodiff.Format) (string, error)
}

func (s *ResultStore) SaveResult(ctx context.Context, result *seodiff.JobResult, format seodiff.Format) (string, error) {
	return s.SaveResultFn(ctx, result, format)
}

var _ seodiff.URLSource = (*URLSource)(nil)

// URLSource is a mock implementation of seodiff.URLSource.
type URLSource struct {
	DiscoverFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *URLSource) Discover(ctx context.Context, baseURL string) ([]string, error) {
	return s.DiscoverFn(ctx, baseURL)
}

var _ seodiff.HostLimiter = (*HostLimiter)(nil)

// HostLimiter is a mock implementation of seodiff.HostLimiter.
type HostLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}
