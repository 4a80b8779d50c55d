package mock

import "github.com/fwojciec/docserve"

var _ docserve.Converter = (*Converter)(nil)

// Converter is a mock implementation of docserve.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
