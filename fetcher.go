package docserve

import "context"

// Fetcher retrieves the current remote copy of a document.
type Fetcher interface {
	// Fetch downloads the document for kind and returns it as markdown.
	// Returns ENETWORK on transport failures and non-2xx responses.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, kind Kind) (string, error)
}
