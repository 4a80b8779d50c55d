// Package trafilatura isolates page content with go-trafilatura, which
// combines its own heuristics with readability and dom-distiller fallbacks.
package trafilatura

import (
	"bytes"
	stdhtml "html"
	"strings"

	"github.com/fwojciec/docserve"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements docserve.Extractor at compile time.
var _ docserve.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the main content HTML, headed by the page title when the
// content carries no h1 of its own.
func (e *Extractor) Extract(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", docserve.Errorf(docserve.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback: true,
	})
	if err != nil {
		return "", docserve.Errorf(docserve.EINVALID, "trafilatura: %v", err)
	}
	if result.ContentNode == nil {
		return "", docserve.Errorf(docserve.EINVALID, "page has no content")
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return "", docserve.Errorf(docserve.EINVALID, "render content: %v", err)
	}

	content := buf.String()
	if title := strings.TrimSpace(result.Metadata.Title); title != "" && !strings.Contains(content, "<h1") {
		content = "<h1>" + stdhtml.EscapeString(title) + "</h1>\n" + content
	}
	return content, nil
}
