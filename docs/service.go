// Package docs serves documentation through a tiered cache. A document is
// resolved from memory, then the network, then the disk cache, and finally
// from the built-in fallback text.
package docs

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/docserve"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Ensure Service implements docserve.DocumentService at compile time.
var _ docserve.DocumentService = (*Service)(nil)

// Service resolves and renders documents. Disk and Context are optional.
type Service struct {
	Fetcher docserve.Fetcher
	Memory  docserve.CacheStore
	Disk    docserve.CacheStore
	Context docserve.ContextProvider
	Logger  *slog.Logger

	// TTL is how long a fetched document is served without refetching.
	TTL time.Duration

	// Now returns the current time.
	Now func() time.Time

	// Concurrent resolutions of one kind share a single pass down the chain.
	flights singleflight.Group
}

// NewService returns a Service with an in-memory first tier and defaults for
// TTL, clock and logger.
func NewService(fetcher docserve.Fetcher, disk docserve.CacheStore) *Service {
	return &Service{
		Fetcher: fetcher,
		Memory:  docserve.NewMemoryCache(),
		Disk:    disk,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		TTL:     docserve.DefaultTTL,
		Now:     time.Now,
	}
}

// Serve resolves the requested document and renders the requested view:
// a section when Section is set, a page when Page is set, and the table of
// contents otherwise.
func (s *Service) Serve(ctx context.Context, req docserve.Request) (*docserve.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	content, err := s.Resolve(ctx, req.Kind)
	if err != nil {
		return nil, err
	}

	var result docserve.Result
	switch {
	case req.Section != nil:
		result = docserve.FindSection(docserve.ParseSections(content), *req.Section)
	case req.Page != nil:
		pageSize := req.PageSize
		if pageSize == 0 {
			pageSize = docserve.DefaultPageSize
		}
		result = docserve.Paginate(content, *req.Page, pageSize)
	default:
		result = docserve.TableOfContents(docserve.ParseSections(content))
	}
	return &result, nil
}

// Resolve returns the content for kind. It never fails for lack of a
// document; the only error is ctx ending while waiting.
func (s *Service) Resolve(ctx context.Context, kind docserve.Kind) (string, error) {
	if doc := s.loadFresh(ctx, s.Memory, kind, s.Now()); doc != nil {
		return doc.Content, nil
	}

	// The shared resolution outlives any single caller so that it can
	// finish populating the caches.
	flightCtx := context.WithoutCancel(ctx)
	ch := s.flights.DoChan(string(kind), func() (any, error) {
		return s.resolve(flightCtx, kind), nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		return res.Val.(string), nil
	}
}

// Warm resolves every kind concurrently, filling the caches.
func (s *Service) Warm(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range docserve.Kinds {
		g.Go(func() error {
			_, err := s.Resolve(gctx, kind)
			return err
		})
	}
	return g.Wait()
}

func (s *Service) resolve(ctx context.Context, kind docserve.Kind) string {
	if doc := s.loadFresh(ctx, s.Memory, kind, s.Now()); doc != nil {
		return doc.Content
	}

	content, err := s.Fetcher.Fetch(ctx, kind)
	if err == nil {
		if kind == docserve.KindFull {
			content = s.enhance(ctx, content)
		}
		doc := docserve.CachedDocument{Content: content, FetchedAt: s.Now()}
		s.save(ctx, s.Memory, kind, doc)
		s.save(ctx, s.Disk, kind, doc)
		s.Logger.Debug("resolved document", "kind", kind, "tier", "network")
		return content
	}
	s.Logger.Warn("documentation fetch failed, trying disk cache", "kind", kind, "err", err)

	if doc := s.loadFresh(ctx, s.Disk, kind, s.Now()); doc != nil {
		s.save(ctx, s.Memory, kind, *doc)
		s.Logger.Debug("resolved document", "kind", kind, "tier", "disk")
		return doc.Content
	}

	s.Logger.Warn("no cached documentation, serving built-in copy", "kind", kind)
	content = docserve.Fallback(kind)
	if kind == docserve.KindFull {
		content = s.enhance(ctx, content)
	}
	return content
}

// loadFresh returns the cached document for kind if store has one that is
// still fresh at now. Misses and failures both yield nil.
func (s *Service) loadFresh(ctx context.Context, store docserve.CacheStore, kind docserve.Kind, now time.Time) *docserve.CachedDocument {
	if store == nil {
		return nil
	}

	doc, err := store.Load(ctx, kind)
	if err != nil {
		if docserve.ErrorCode(err) != docserve.ENOTFOUND {
			s.Logger.Warn("cache load failed", "kind", kind, "err", err)
		}
		return nil
	}
	if !doc.Fresh(now, s.TTL) {
		return nil
	}
	return doc
}

// save writes doc to store. Failures are logged and otherwise ignored.
func (s *Service) save(ctx context.Context, store docserve.CacheStore, kind docserve.Kind, doc docserve.CachedDocument) {
	if store == nil {
		return
	}
	if err := store.Save(ctx, kind, doc); err != nil {
		s.Logger.Warn("cache save failed", "kind", kind, "err", err)
	}
}

// enhance prepends the project context header. Without a context the
// content is returned unchanged.
func (s *Service) enhance(ctx context.Context, content string) string {
	if s.Context == nil {
		return content
	}

	pc, err := s.Context.ProjectContext(ctx)
	if err != nil {
		s.Logger.Warn("project context unavailable", "err", err)
		return content
	}
	return docserve.EnhanceWithContext(content, pc)
}
