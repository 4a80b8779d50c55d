package mock

import "github.com/fwojciec/docserve"

var _ docserve.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docserve.Extractor.
type Extractor struct {
	ExtractFn func(html string) (string, error)
}

func (e *Extractor) Extract(html string) (string, error) {
	return e.ExtractFn(html)
}
