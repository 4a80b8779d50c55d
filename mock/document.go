package mock

import (
	"context"

	"github.com/fwojciec/docserve"
)

var _ docserve.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of docserve.DocumentService.
type DocumentService struct {
	ResolveFn func(ctx context.Context, kind docserve.Kind) (string, error)
	ServeFn   func(ctx context.Context, req docserve.Request) (*docserve.Result, error)
}

func (s *DocumentService) Resolve(ctx context.Context, kind docserve.Kind) (string, error) {
	return s.ResolveFn(ctx, kind)
}

func (s *DocumentService) Serve(ctx context.Context, req docserve.Request) (*docserve.Result, error) {
	return s.ServeFn(ctx, req)
}
