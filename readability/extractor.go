// Package readability isolates page content with Mozilla's Readability
// heuristics, for documentation hosts without recognisable markup.
package readability

import (
	"html"
	"strings"

	"github.com/fwojciec/docserve"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements docserve.Extractor at compile time.
var _ docserve.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the article HTML, headed by the article title when the
// content carries no h1 of its own.
func (e *Extractor) Extract(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", docserve.Errorf(docserve.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", docserve.Errorf(docserve.EINVALID, "readability: %v", err)
	}
	if strings.TrimSpace(article.TextContent) == "" {
		return "", docserve.Errorf(docserve.EINVALID, "page has no content")
	}

	content := article.Content
	if title := strings.TrimSpace(article.Title); title != "" && !strings.Contains(content, "<h1") {
		content = "<h1>" + html.EscapeString(title) + "</h1>\n" + content
	}
	return content, nil
}
