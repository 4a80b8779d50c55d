package mock

import (
	"context"

	"github.com/fwojciec/docserve"
)

var _ docserve.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of docserve.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, kind docserve.Kind) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, kind docserve.Kind) (string, error) {
	return f.FetchFn(ctx, kind)
}
