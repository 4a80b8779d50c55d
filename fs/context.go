package fs

import (
	"context"
	"os"

	"github.com/fwojciec/docserve"
)

// Ensure WorkingDirContext implements docserve.ContextProvider at compile time.
var _ docserve.ContextProvider = (*WorkingDirContext)(nil)

// WorkingDirContext reports the process working directory as the project path.
type WorkingDirContext struct {
	Tools []string

	// Getwd defaults to os.Getwd.
	Getwd func() (string, error)
}

// ProjectContext returns the working directory and configured tools.
func (c *WorkingDirContext) ProjectContext(ctx context.Context) (*docserve.ProjectContext, error) {
	getwd := c.Getwd
	if getwd == nil {
		getwd = os.Getwd
	}

	dir, err := getwd()
	if err != nil {
		return nil, docserve.Errorf(docserve.EUNAVAILABLE, "working directory: %v", err)
	}

	tools := make([]string, len(c.Tools))
	copy(tools, c.Tools)
	return &docserve.ProjectContext{Path: dir, Tools: tools}, nil
}
