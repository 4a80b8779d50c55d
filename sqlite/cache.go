package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docserve"
)

// Ensure Cache implements docserve.CacheStore at compile time.
var _ docserve.CacheStore = (*Cache)(nil)

// Cache stores one row per document kind. Rows older than TTL are deleted on
// load and reported as missing.
type Cache struct {
	db *DB

	// TTL is how long entries stay valid. Defaults to docserve.DefaultTTL.
	TTL time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewCache returns a Cache backed by an open DB.
func NewCache(db *DB) *Cache {
	return &Cache{
		db:  db,
		TTL: docserve.DefaultTTL,
		Now: time.Now,
	}
}

// Load returns the cached document for kind.
func (c *Cache) Load(ctx context.Context, kind docserve.Kind) (*docserve.CachedDocument, error) {
	var (
		content   string
		sum       string
		fetchedAt int64
	)
	err := c.db.QueryRowContext(ctx,
		`SELECT content, checksum, fetched_at FROM documents WHERE kind = ?`,
		string(kind),
	).Scan(&content, &sum, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, docserve.Errorf(docserve.ENOTFOUND, "no cached %s document", kind)
	} else if err != nil {
		return nil, docserve.Errorf(docserve.EDISK, "query %s: %v", kind, err)
	}

	if sum != "" && sum != checksum(content) {
		return nil, docserve.Errorf(docserve.EDISK, "checksum mismatch for %s", kind)
	}

	doc := docserve.CachedDocument{Content: content, FetchedAt: time.UnixMilli(fetchedAt)}
	if !doc.Fresh(c.Now(), c.TTL) {
		_ = c.Delete(ctx, kind)
		return nil, docserve.Errorf(docserve.ENOTFOUND, "cached %s document expired", kind)
	}

	return &doc, nil
}

// Save upserts doc for kind.
func (c *Cache) Save(ctx context.Context, kind docserve.Kind, doc docserve.CachedDocument) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO documents (kind, content, checksum, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (kind) DO UPDATE SET
			content = excluded.content,
			checksum = excluded.checksum,
			fetched_at = excluded.fetched_at
	`, string(kind), doc.Content, checksum(doc.Content), doc.FetchedAt.UnixMilli())
	if err != nil {
		return docserve.Errorf(docserve.EDISK, "save %s: %v", kind, err)
	}
	return nil
}

// Delete removes the row for kind.
func (c *Cache) Delete(ctx context.Context, kind docserve.Kind) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM documents WHERE kind = ?`, string(kind)); err != nil {
		return docserve.Errorf(docserve.EDISK, "delete %s: %v", kind, err)
	}
	return nil
}

func checksum(content string) string {
	return strconv.FormatUint(xxhash.Sum64String(content), 16)
}
