package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docserve"
)

// Ensure LoggingCacheStore implements docserve.CacheStore.
var _ docserve.CacheStore = (*LoggingCacheStore)(nil)

// LoggingCacheStore wraps a CacheStore with debug logging. The tier name
// distinguishes stores when several are wrapped.
type LoggingCacheStore struct {
	next   docserve.CacheStore
	tier   string
	logger *slog.Logger
}

// NewLoggingCacheStore creates a new LoggingCacheStore.
func NewLoggingCacheStore(next docserve.CacheStore, tier string, logger *slog.Logger) *LoggingCacheStore {
	return &LoggingCacheStore{next: next, tier: tier, logger: logger}
}

// Load delegates to the wrapped store. A miss is logged without an error.
func (s *LoggingCacheStore) Load(ctx context.Context, kind docserve.Kind) (doc *docserve.CachedDocument, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"tier", s.tier,
			"kind", kind,
			"hit", err == nil,
			"duration", time.Since(begin),
		}
		if doc != nil {
			attrs = append(attrs, "bytes", len(doc.Content), "fetched_at", doc.FetchedAt)
		}
		if err != nil && docserve.ErrorCode(err) != docserve.ENOTFOUND {
			attrs = append(attrs, "err", err)
		}
		s.logger.Debug("cache load", attrs...)
	}(time.Now())
	return s.next.Load(ctx, kind)
}

// Save delegates to the wrapped store and logs the write.
func (s *LoggingCacheStore) Save(ctx context.Context, kind docserve.Kind, doc docserve.CachedDocument) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("cache save",
			"tier", s.tier,
			"kind", kind,
			"bytes", len(doc.Content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, kind, doc)
}

// Delete delegates to the wrapped store and logs the removal.
func (s *LoggingCacheStore) Delete(ctx context.Context, kind docserve.Kind) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("cache delete",
			"tier", s.tier,
			"kind", kind,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Delete(ctx, kind)
}
