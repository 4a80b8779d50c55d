package docserve

import (
	"fmt"
	"strings"
)

// TableOfContents renders a numbered heading list, indented by level.
func TableOfContents(sections []Section) Result {
	total := len(sections)
	if total == 0 {
		return Result{
			Content:  "# Table of Contents\n\nThis document has no sections. Use the page parameter to read it.",
			Metadata: Metadata{TotalSections: &total},
		}
	}

	var b strings.Builder
	b.WriteString("# Table of Contents\n\n")
	for i, s := range sections {
		b.WriteString(strings.Repeat("  ", s.Level-1))
		fmt.Fprintf(&b, "%d. %s\n", i+1, s.Title)
	}
	b.WriteString("\nUse the section parameter with a title (or part of one) to read a section, or the page parameter to read the document page by page.")

	return Result{
		Content:  b.String(),
		Metadata: Metadata{TotalSections: &total},
	}
}

// FindSection returns the first section, in document order, whose title
// contains query, ignoring case. When nothing matches it renders the list of
// available titles and leaves CurrentSection unset.
func FindSection(sections []Section, query string) Result {
	total := len(sections)
	needle := strings.ToLower(query)

	for _, s := range sections {
		if strings.Contains(strings.ToLower(s.Title), needle) {
			title := s.Title
			return Result{
				Content: s.Body,
				Metadata: Metadata{
					TotalSections:  &total,
					CurrentSection: &title,
				},
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Section %q not found.", query)
	if total == 0 {
		b.WriteString(" This document has no sections.")
	} else {
		b.WriteString("\n\nAvailable sections:\n")
		for _, s := range sections {
			b.WriteString("- ")
			b.WriteString(s.Title)
			b.WriteString("\n")
		}
	}

	return Result{
		Content:  b.String(),
		Metadata: Metadata{TotalSections: &total},
	}
}
