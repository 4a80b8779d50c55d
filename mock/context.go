package mock

import (
	"context"

	"github.com/fwojciec/docserve"
)

var _ docserve.ContextProvider = (*ContextProvider)(nil)

// ContextProvider is a mock implementation of docserve.ContextProvider.
type ContextProvider struct {
	ProjectContextFn func(ctx context.Context) (*docserve.ProjectContext, error)
}

func (p *ContextProvider) ProjectContext(ctx context.Context) (*docserve.ProjectContext, error) {
	return p.ProjectContextFn(ctx)
}
