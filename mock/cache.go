package mock

import (
	"context"

	"github.com/fwojciec/docserve"
)

var _ docserve.CacheStore = (*CacheStore)(nil)

// CacheStore is a mock implementation of docserve.CacheStore.
type CacheStore struct {
	LoadFn   func(ctx context.Context, kind docserve.Kind) (*docserve.CachedDocument, error)
	SaveFn   func(ctx context.Context, kind docserve.Kind, doc docserve.CachedDocument) error
	DeleteFn func(ctx context.Context, kind docserve.Kind) error
}

func (s *CacheStore) Load(ctx context.Context, kind docserve.Kind) (*docserve.CachedDocument, error) {
	return s.LoadFn(ctx, kind)
}

func (s *CacheStore) Save(ctx context.Context, kind docserve.Kind, doc docserve.CachedDocument) error {
	return s.SaveFn(ctx, kind, doc)
}

func (s *CacheStore) Delete(ctx context.Context, kind docserve.Kind) error {
	return s.DeleteFn(ctx, kind)
}
