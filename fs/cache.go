// Package fs provides file-based implementations of docserve interfaces.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docserve"
)

// DefaultCacheDir is the cache directory, relative to the working directory.
const DefaultCacheDir = ".docserve-cache"

// Ensure Cache implements docserve.CacheStore at compile time.
var _ docserve.CacheStore = (*Cache)(nil)

// Cache stores one JSON file per document kind. Entries older than TTL are
// removed on load and reported as missing.
type Cache struct {
	dir string

	// TTL is how long entries stay valid. Defaults to docserve.DefaultTTL.
	TTL time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewCache creates a Cache rooted at dir. The directory is created on the
// first save.
func NewCache(dir string) *Cache {
	return &Cache{
		dir: dir,
		TTL: docserve.DefaultTTL,
		Now: time.Now,
	}
}

// entry is the on-disk format. Timestamp is in Unix milliseconds.
type entry struct {
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
	Checksum  string `json:"checksum,omitempty"`
}

// Path returns the file that holds kind.
func (c *Cache) Path(kind docserve.Kind) string {
	return filepath.Join(c.dir, kind.Filename()+".json")
}

// Load reads the cached document for kind.
// Returns ENOTFOUND when the file is missing or stale and EDISK when it
// cannot be read or fails its checksum.
func (c *Cache) Load(ctx context.Context, kind docserve.Kind) (*docserve.CachedDocument, error) {
	path := c.Path(kind)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, docserve.Errorf(docserve.ENOTFOUND, "no cached %s document", kind)
	} else if err != nil {
		return nil, docserve.Errorf(docserve.EDISK, "read %s: %v", path, err)
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, docserve.Errorf(docserve.EDISK, "parse %s: %v", path, err)
	}
	if e.Checksum != "" && e.Checksum != checksum(e.Content) {
		return nil, docserve.Errorf(docserve.EDISK, "checksum mismatch in %s", path)
	}

	doc := docserve.CachedDocument{
		Content:   e.Content,
		FetchedAt: time.UnixMilli(e.Timestamp),
	}
	if !doc.Fresh(c.Now(), c.TTL) {
		_ = os.Remove(path)
		return nil, docserve.Errorf(docserve.ENOTFOUND, "cached %s document expired", kind)
	}

	return &doc, nil
}

// Save writes doc for kind, creating the cache directory if needed.
// The file is overwritten in place.
func (c *Cache) Save(ctx context.Context, kind docserve.Kind, doc docserve.CachedDocument) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return docserve.Errorf(docserve.EDISK, "create cache dir: %v", err)
	}

	data, err := json.Marshal(entry{
		Content:   doc.Content,
		Timestamp: doc.FetchedAt.UnixMilli(),
		Checksum:  checksum(doc.Content),
	})
	if err != nil {
		return docserve.Errorf(docserve.EDISK, "encode %s: %v", kind, err)
	}

	if err := os.WriteFile(c.Path(kind), data, 0644); err != nil {
		return docserve.Errorf(docserve.EDISK, "write %s: %v", c.Path(kind), err)
	}
	return nil
}

// Delete removes the cached file for kind.
func (c *Cache) Delete(ctx context.Context, kind docserve.Kind) error {
	err := os.Remove(c.Path(kind))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return docserve.Errorf(docserve.EDISK, "remove %s: %v", c.Path(kind), err)
	}
	return nil
}

func checksum(content string) string {
	return strconv.FormatUint(xxhash.Sum64String(content), 16)
}
