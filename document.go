package docserve

import (
	"context"
	"time"
)

// DefaultTTL is how long a fetched document stays fresh.
const DefaultTTL = 24 * time.Hour

// DefaultPageSize is the number of lines per page when a request does not set one.
const DefaultPageSize = 5000

// Kind selects one of the two document variants. Each kind has its own cache
// slots, fallback text and remote resource.
type Kind string

// Kind constants.
const (
	KindStandard Kind = "standard"
	KindFull     Kind = "full"
)

// Kinds lists every document kind.
var Kinds = []Kind{KindStandard, KindFull}

// ParseKind converts a caller-supplied type string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindStandard, KindFull:
		return Kind(s), nil
	}
	return "", Errorf(EINVALID, "unknown document type %q (want %q or %q)", s, KindStandard, KindFull)
}

// Filename returns the canonical resource name of the kind. It is used both
// as the remote path and as the cache key.
func (k Kind) Filename() string {
	if k == KindFull {
		return "llms-full.txt"
	}
	return "llms.txt"
}

// CachedDocument is a document body together with the time it was fetched.
// Tiers hold their own copies; it is always passed by value.
type CachedDocument struct {
	Content   string    `json:"content"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Fresh reports whether the document is still valid at now.
// A document is stale once now - FetchedAt >= ttl.
func (d CachedDocument) Fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(d.FetchedAt) < ttl
}

// CacheStore persists cached documents, one slot per kind.
type CacheStore interface {
	// Load returns the cached document for kind.
	// Returns ENOTFOUND if nothing usable is cached.
	Load(ctx context.Context, kind Kind) (*CachedDocument, error)

	// Save replaces the cached document for kind.
	Save(ctx context.Context, kind Kind, doc CachedDocument) error

	// Delete removes the cached document for kind. Deleting a missing
	// entry is not an error.
	Delete(ctx context.Context, kind Kind) error
}

// Request describes what a caller wants from a document.
// Section takes precedence over Page when both are set.
type Request struct {
	Kind     Kind    `json:"type"`
	Section  *string `json:"section,omitempty"`
	Page     *int    `json:"page,omitempty"`
	PageSize int     `json:"pageSize,omitempty"`
}

// Validate returns an error if the request contains invalid fields.
func (r *Request) Validate() error {
	if _, err := ParseKind(string(r.Kind)); err != nil {
		return err
	}
	if r.PageSize < 0 {
		return Errorf(EINVALID, "page size must be positive, got %d", r.PageSize)
	}
	return nil
}

// Result is the rendered view of a document.
type Result struct {
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata"`
}

// Metadata describes a Result. Which fields are set depends on the view:
// table of contents sets TotalSections, section lookup adds CurrentSection,
// pagination sets TotalPages and PageSize plus CurrentPage for valid pages.
type Metadata struct {
	TotalSections  *int    `json:"totalSections,omitempty"`
	CurrentSection *string `json:"currentSection,omitempty"`
	TotalPages     *int    `json:"totalPages,omitempty"`
	CurrentPage    *int    `json:"currentPage,omitempty"`
	PageSize       *int    `json:"pageSize,omitempty"`
}

// DocumentService represents a service for serving documentation.
type DocumentService interface {
	// Resolve returns the raw content for kind from the first tier that
	// can provide it. It only fails when ctx is done.
	Resolve(ctx context.Context, kind Kind) (string, error)

	// Serve resolves the requested document and renders the requested view.
	// Returns EINVALID if the request is malformed.
	Serve(ctx context.Context, req Request) (*Result, error)
}
