package docserve

import (
	"context"
	"strings"
)

// ProjectContext describes the project a caller is working in.
type ProjectContext struct {
	Path  string   `json:"path"`
	Tools []string `json:"tools"`
}

// ContextProvider looks up the caller's project context.
type ContextProvider interface {
	// ProjectContext returns the current project context.
	// Returns EUNAVAILABLE if it cannot be determined.
	ProjectContext(ctx context.Context) (*ProjectContext, error)
}

// EnhanceWithContext prepends a project context header to content.
// A nil context leaves content unchanged.
func EnhanceWithContext(content string, pc *ProjectContext) string {
	if pc == nil {
		return content
	}

	tools := "(none)"
	if len(pc.Tools) > 0 {
		tools = strings.Join(pc.Tools, ", ")
	}

	var b strings.Builder
	b.WriteString("# Project Context\n\n")
	b.WriteString("- Project path: ")
	b.WriteString(pc.Path)
	b.WriteString("\n- Available tools: ")
	b.WriteString(tools)
	b.WriteString("\n\n---\n\n")
	b.WriteString(content)
	return b.String()
}
