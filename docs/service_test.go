package docs_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/docserve"
	"github.com/fwojciec/docserve/docs"
	"github.com/fwojciec/docserve/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDoc = "# A\nx\n## B\ny\n"

var t0 = time.Date(2026, 4, 10, 8, 0, 0, 0, time.UTC)

// clock is a settable time source safe for concurrent use.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// countingFetcher returns content or err and counts calls.
func countingFetcher(content string, err error) (*mock.Fetcher, *atomic.Int32) {
	var calls atomic.Int32
	return &mock.Fetcher{
		FetchFn: func(context.Context, docserve.Kind) (string, error) {
			calls.Add(1)
			return content, err
		},
	}, &calls
}

func failingDisk() *mock.CacheStore {
	return &mock.CacheStore{
		LoadFn: func(context.Context, docserve.Kind) (*docserve.CachedDocument, error) {
			return nil, docserve.Errorf(docserve.EDISK, "unreadable")
		},
		SaveFn: func(context.Context, docserve.Kind, docserve.CachedDocument) error {
			return docserve.Errorf(docserve.EDISK, "read-only")
		},
		DeleteFn: func(context.Context, docserve.Kind) error { return nil },
	}
}

func projectContext() *mock.ContextProvider {
	return &mock.ContextProvider{
		ProjectContextFn: func(context.Context) (*docserve.ProjectContext, error) {
			return &docserve.ProjectContext{Path: "/work/app", Tools: []string{"build"}}, nil
		},
	}
}

func newService(fetcher docserve.Fetcher, disk docserve.CacheStore, c *clock) *docs.Service {
	svc := docs.NewService(fetcher, disk)
	svc.Now = c.Now
	return svc
}

func TestService_Resolve(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("fetches and writes through to memory and disk", func(t *testing.T) {
		t.Parallel()

		fetcher, calls := countingFetcher(testDoc, nil)
		disk := docserve.NewMemoryCache()
		svc := newService(fetcher, disk, &clock{now: t0})

		content, err := svc.Resolve(ctx, docserve.KindStandard)

		require.NoError(t, err)
		assert.Equal(t, testDoc, content)
		assert.Equal(t, int32(1), calls.Load())

		stored, err := disk.Load(ctx, docserve.KindStandard)
		require.NoError(t, err)
		assert.Equal(t, testDoc, stored.Content)
		assert.Equal(t, t0, stored.FetchedAt)

		inMemory, err := svc.Memory.Load(ctx, docserve.KindStandard)
		require.NoError(t, err)
		assert.Equal(t, testDoc, inMemory.Content)
	})

	t.Run("serves from memory until the TTL elapses", func(t *testing.T) {
		t.Parallel()

		fetcher, calls := countingFetcher(testDoc, nil)
		c := &clock{now: t0}
		svc := newService(fetcher, nil, c)

		_, err := svc.Resolve(ctx, docserve.KindStandard)
		require.NoError(t, err)

		c.Set(t0.Add(docserve.DefaultTTL - time.Millisecond))
		_, err = svc.Resolve(ctx, docserve.KindStandard)
		require.NoError(t, err)
		assert.Equal(t, int32(1), calls.Load())

		c.Set(t0.Add(docserve.DefaultTTL + time.Millisecond))
		_, err = svc.Resolve(ctx, docserve.KindStandard)
		require.NoError(t, err)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("keeps kinds in separate cache slots", func(t *testing.T) {
		t.Parallel()

		var kinds []docserve.Kind
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, kind docserve.Kind) (string, error) {
				kinds = append(kinds, kind)
				return "# " + string(kind), nil
			},
		}
		svc := newService(fetcher, nil, &clock{now: t0})

		std, err := svc.Resolve(ctx, docserve.KindStandard)
		require.NoError(t, err)
		full, err := svc.Resolve(ctx, docserve.KindFull)
		require.NoError(t, err)

		assert.Equal(t, "# standard", std)
		assert.Equal(t, "# full", full)
		assert.Equal(t, []docserve.Kind{docserve.KindStandard, docserve.KindFull}, kinds)
	})

	t.Run("falls back to disk when the network fails", func(t *testing.T) {
		t.Parallel()

		fetcher, calls := countingFetcher("", docserve.Errorf(docserve.ENETWORK, "HTTP 503"))
		disk := docserve.NewMemoryCache()
		require.NoError(t, disk.Save(ctx, docserve.KindStandard, docserve.CachedDocument{
			Content:   "# From disk",
			FetchedAt: t0.Add(-time.Hour),
		}))
		svc := newService(fetcher, disk, &clock{now: t0})

		content, err := svc.Resolve(ctx, docserve.KindStandard)

		require.NoError(t, err)
		assert.Equal(t, "# From disk", content)
		assert.Equal(t, int32(1), calls.Load())

		// The disk copy now sits in memory: no further fetch.
		content, err = svc.Resolve(ctx, docserve.KindStandard)
		require.NoError(t, err)
		assert.Equal(t, "# From disk", content)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("ignores a stale disk copy", func(t *testing.T) {
		t.Parallel()

		fetcher, _ := countingFetcher("", errors.New("offline"))
		disk := docserve.NewMemoryCache()
		require.NoError(t, disk.Save(ctx, docserve.KindStandard, docserve.CachedDocument{
			Content:   "# Old",
			FetchedAt: t0.Add(-docserve.DefaultTTL),
		}))
		svc := newService(fetcher, disk, &clock{now: t0})

		content, err := svc.Resolve(ctx, docserve.KindStandard)

		require.NoError(t, err)
		assert.Equal(t, docserve.Fallback(docserve.KindStandard), content)
	})

	t.Run("serves built-in copy when network and disk fail", func(t *testing.T) {
		t.Parallel()

		fetcher, calls := countingFetcher("", errors.New("offline"))
		svc := newService(fetcher, failingDisk(), &clock{now: t0})

		content, err := svc.Resolve(ctx, docserve.KindStandard)

		require.NoError(t, err)
		assert.Equal(t, docserve.Fallback(docserve.KindStandard), content)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("does not cache the built-in copy", func(t *testing.T) {
		t.Parallel()

		fetcher, calls := countingFetcher("", errors.New("offline"))
		svc := newService(fetcher, nil, &clock{now: t0})
		svc.Context = projectContext()

		_, err := svc.Resolve(ctx, docserve.KindFull)
		require.NoError(t, err)
		_, err = svc.Resolve(ctx, docserve.KindFull)
		require.NoError(t, err)

		_, err = svc.Memory.Load(ctx, docserve.KindFull)
		assert.Equal(t, docserve.ENOTFOUND, docserve.ErrorCode(err))
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("adds project context to the built-in full copy", func(t *testing.T) {
		t.Parallel()

		fetcher, _ := countingFetcher("", errors.New("offline"))
		svc := newService(fetcher, failingDisk(), &clock{now: t0})
		svc.Context = projectContext()

		content, err := svc.Resolve(ctx, docserve.KindFull)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(content, "# Project Context\n"))
		assert.Contains(t, content, "- Project path: /work/app")
		assert.True(t, strings.HasSuffix(content, docserve.Fallback(docserve.KindFull)))
	})

	t.Run("adds project context to fetched full document before caching", func(t *testing.T) {
		t.Parallel()

		fetcher, _ := countingFetcher(testDoc, nil)
		disk := docserve.NewMemoryCache()
		svc := newService(fetcher, disk, &clock{now: t0})
		svc.Context = projectContext()

		content, err := svc.Resolve(ctx, docserve.KindFull)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(content, "# Project Context\n"))
		assert.True(t, strings.HasSuffix(content, testDoc))
		stored, err := disk.Load(ctx, docserve.KindFull)
		require.NoError(t, err)
		assert.Equal(t, content, stored.Content)
	})

	t.Run("does not add project context to the standard document", func(t *testing.T) {
		t.Parallel()

		fetcher, _ := countingFetcher(testDoc, nil)
		svc := newService(fetcher, nil, &clock{now: t0})
		svc.Context = projectContext()

		content, err := svc.Resolve(ctx, docserve.KindStandard)

		require.NoError(t, err)
		assert.Equal(t, testDoc, content)
	})

	t.Run("passes content through when project context is unavailable", func(t *testing.T) {
		t.Parallel()

		fetcher, _ := countingFetcher(testDoc, nil)
		svc := newService(fetcher, nil, &clock{now: t0})
		svc.Context = &mock.ContextProvider{
			ProjectContextFn: func(context.Context) (*docserve.ProjectContext, error) {
				return nil, docserve.Errorf(docserve.EUNAVAILABLE, "no working directory")
			},
		}

		content, err := svc.Resolve(ctx, docserve.KindFull)

		require.NoError(t, err)
		assert.Equal(t, testDoc, content)
	})

	t.Run("ignores disk save failures", func(t *testing.T) {
		t.Parallel()

		fetcher, _ := countingFetcher(testDoc, nil)
		svc := newService(fetcher, failingDisk(), &clock{now: t0})

		content, err := svc.Resolve(ctx, docserve.KindStandard)

		require.NoError(t, err)
		assert.Equal(t, testDoc, content)
		inMemory, err := svc.Memory.Load(ctx, docserve.KindStandard)
		require.NoError(t, err)
		assert.Equal(t, testDoc, inMemory.Content)
	})

	t.Run("fetches once for concurrent requests", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		var calls atomic.Int32
		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, docserve.Kind) (string, error) {
				calls.Add(1)
				<-release
				return testDoc, nil
			},
		}
		svc := newService(fetcher, nil, &clock{now: t0})

		var wg sync.WaitGroup
		results := make([]string, 8)
		for i := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i], _ = svc.Resolve(ctx, docserve.KindFull)
			}()
		}

		require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load())
		for _, r := range results {
			assert.Equal(t, testDoc, r)
		}
	})

	t.Run("returns when the caller's context ends", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		defer close(release)
		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, docserve.Kind) (string, error) {
				<-release
				return testDoc, nil
			},
		}
		svc := newService(fetcher, nil, &clock{now: t0})

		cctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()

		_, err := svc.Resolve(cctx, docserve.KindStandard)

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestService_Serve(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	serve := func(t *testing.T, req docserve.Request) *docserve.Result {
		t.Helper()
		fetcher, _ := countingFetcher(testDoc, nil)
		svc := newService(fetcher, nil, &clock{now: t0})
		result, err := svc.Serve(ctx, req)
		require.NoError(t, err)
		return result
	}
	str := func(s string) *string { return &s }
	num := func(n int) *int { return &n }

	t.Run("renders table of contents by default", func(t *testing.T) {
		t.Parallel()

		result := serve(t, docserve.Request{Kind: docserve.KindStandard})

		assert.Contains(t, result.Content, "1. A")
		assert.Contains(t, result.Content, "  2. B")
		require.NotNil(t, result.Metadata.TotalSections)
		assert.Equal(t, 2, *result.Metadata.TotalSections)
		assert.Nil(t, result.Metadata.TotalPages)
	})

	t.Run("looks up a section", func(t *testing.T) {
		t.Parallel()

		result := serve(t, docserve.Request{Kind: docserve.KindStandard, Section: str("b")})

		assert.Equal(t, "## B\ny\n", result.Content)
		assert.Equal(t, "B", *result.Metadata.CurrentSection)
		assert.Equal(t, 2, *result.Metadata.TotalSections)
	})

	t.Run("section takes precedence over page", func(t *testing.T) {
		t.Parallel()

		result := serve(t, docserve.Request{Kind: docserve.KindStandard, Section: str("A"), Page: num(2), PageSize: 1})

		assert.Equal(t, "# A\nx\n", result.Content)
		assert.Nil(t, result.Metadata.TotalPages)
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		result := serve(t, docserve.Request{Kind: docserve.KindStandard, Page: num(3), PageSize: 1})

		assert.Equal(t, "## B", result.Content)
		assert.Equal(t, 4, *result.Metadata.TotalPages)
		assert.Equal(t, 3, *result.Metadata.CurrentPage)
		assert.Equal(t, 1, *result.Metadata.PageSize)
	})

	t.Run("defaults page size", func(t *testing.T) {
		t.Parallel()

		result := serve(t, docserve.Request{Kind: docserve.KindStandard, Page: num(1)})

		assert.Equal(t, "# A\nx\n## B\ny", result.Content)
		assert.Equal(t, docserve.DefaultPageSize, *result.Metadata.PageSize)
		assert.Equal(t, 1, *result.Metadata.TotalPages)
	})

	t.Run("renders invalid page as a result", func(t *testing.T) {
		t.Parallel()

		result := serve(t, docserve.Request{Kind: docserve.KindStandard, Page: num(5), PageSize: 1})

		assert.Contains(t, result.Content, "Invalid page 5")
		assert.Equal(t, 4, *result.Metadata.TotalPages)
		assert.Equal(t, 1, *result.Metadata.PageSize)
		assert.Nil(t, result.Metadata.CurrentPage)
	})

	t.Run("rejects invalid requests", func(t *testing.T) {
		t.Parallel()

		fetcher, calls := countingFetcher(testDoc, nil)
		svc := newService(fetcher, nil, &clock{now: t0})

		_, err := svc.Serve(ctx, docserve.Request{Kind: "nope"})

		assert.Equal(t, docserve.EINVALID, docserve.ErrorCode(err))
		assert.Zero(t, calls.Load())
	})
}

func TestService_Warm(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	fetched := map[docserve.Kind]bool{}
	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, kind docserve.Kind) (string, error) {
			mu.Lock()
			defer mu.Unlock()
			fetched[kind] = true
			return "# " + string(kind), nil
		},
	}
	disk := docserve.NewMemoryCache()
	svc := newService(fetcher, disk, &clock{now: t0})

	require.NoError(t, svc.Warm(context.Background()))

	assert.True(t, fetched[docserve.KindStandard])
	assert.True(t, fetched[docserve.KindFull])
	for _, kind := range docserve.Kinds {
		_, err := disk.Load(context.Background(), kind)
		assert.NoError(t, err)
	}
}
