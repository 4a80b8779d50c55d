package docserve

import (
	"context"
	"sync"
)

// Ensure MemoryCache implements CacheStore at compile time.
var _ CacheStore = (*MemoryCache)(nil)

// MemoryCache is an in-process CacheStore with one slot per kind.
// It does not expire entries; callers check freshness themselves.
type MemoryCache struct {
	mu   sync.RWMutex
	docs map[Kind]CachedDocument
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{docs: make(map[Kind]CachedDocument)}
}

// Load returns a copy of the cached document for kind.
func (c *MemoryCache) Load(ctx context.Context, kind Kind) (*CachedDocument, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	doc, ok := c.docs[kind]
	if !ok {
		return nil, Errorf(ENOTFOUND, "no %s document in memory", kind)
	}
	return &doc, nil
}

// Save stores a copy of doc for kind.
func (c *MemoryCache) Save(ctx context.Context, kind Kind, doc CachedDocument) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.docs[kind] = doc
	return nil
}

// Delete drops the cached document for kind.
func (c *MemoryCache) Delete(ctx context.Context, kind Kind) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.docs, kind)
	return nil
}
