package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/docserve"
)

// Run executes the get command.
func (c *GetCmd) Run(deps *Dependencies) error {
	kind, err := docserve.ParseKind(c.Type)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docserve.ErrorMessage(err))
		return err
	}

	result, err := deps.Documents.Serve(deps.Ctx, docserve.Request{
		Kind:     kind,
		Section:  c.Section,
		Page:     c.Page,
		PageSize: c.PageSize,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docserve.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintln(deps.Stdout, strings.TrimSuffix(result.Content, "\n"))
	if summary := summarize(result.Metadata); summary != "" {
		fmt.Fprintln(deps.Stderr, summary)
	}
	return nil
}

// summarize renders metadata as a one-line footer.
func summarize(m docserve.Metadata) string {
	var parts []string
	if m.CurrentSection != nil {
		parts = append(parts, fmt.Sprintf("section %q", *m.CurrentSection))
	}
	if m.TotalSections != nil {
		parts = append(parts, fmt.Sprintf("%d sections", *m.TotalSections))
	}
	if m.TotalPages != nil {
		if m.CurrentPage != nil {
			parts = append(parts, fmt.Sprintf("page %d of %d", *m.CurrentPage, *m.TotalPages))
		} else {
			parts = append(parts, fmt.Sprintf("%d pages", *m.TotalPages))
		}
	}
	if m.PageSize != nil {
		parts = append(parts, fmt.Sprintf("%d lines per page", *m.PageSize))
	}
	if len(parts) == 0 {
		return ""
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
