package docserve

import (
	"fmt"
	"strings"
)

// Paginate returns one page of content, pageSize lines per page. Pages are
// 1-indexed. A page outside [1, totalPages] renders an explanation instead of
// content and leaves CurrentPage unset.
func Paginate(content string, page, pageSize int) Result {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	lines := SplitLines(content)
	totalPages := len(lines) / pageSize
	if len(lines)%pageSize != 0 {
		totalPages++
	}

	if page < 1 || page > totalPages {
		return Result{
			Content: fmt.Sprintf("Invalid page %d. The document has %d page(s) of %d lines each; request a page between 1 and %d.",
				page, totalPages, pageSize, totalPages),
			Metadata: Metadata{
				TotalPages: &totalPages,
				PageSize:   &pageSize,
			},
		}
	}

	start := (page - 1) * pageSize
	end := min(page*pageSize, len(lines))

	return Result{
		Content: strings.Join(lines[start:end], "\n"),
		Metadata: Metadata{
			TotalPages:  &totalPages,
			CurrentPage: &page,
			PageSize:    &pageSize,
		},
	}
}
