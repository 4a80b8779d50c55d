// Package goquery extracts the main content region from rendered
// documentation pages using CSS selectors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docserve"
)

// Ensure Extractor implements docserve.Extractor at compile time.
var _ docserve.Extractor = (*Extractor)(nil)

// contentSelectors are tried in order; the first non-empty match wins.
// Generator-specific containers come before generic landmarks.
var contentSelectors = []string{
	".theme-doc-markdown",      // Docusaurus
	".md-content__inner",       // MkDocs Material
	".vp-doc",                  // VitePress
	".theme-default-content",   // VuePress
	"[itemprop='articleBody']", // Sphinx (ReadTheDocs theme)
	"div.body[role='main']",    // Sphinx (classic themes)
	"main article",
	"article",
	"main",
	"[role='main']",
	".content",
	".doc-content",
}

// chromeSelectors match page furniture removed from the content region.
// Heading anchors are included because they would otherwise leak "#" or
// pilcrow characters into section titles.
const chromeSelectors = "script, style, noscript, template, nav, aside, footer, " +
	".toc, .table-of-contents, .sidebar, .headerlink, .hash-link, .header-anchor"

// Extractor isolates the main documentation content of an HTML page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the HTML of the main content region. When the region has no
// top-level heading, the page title is prepended as one so the converted
// document starts with a section.
func (e *Extractor) Extract(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", docserve.Errorf(docserve.EINVALID, "failed to parse HTML: %v", err)
	}

	region := selectContent(doc)
	region.Find(chromeSelectors).Remove()

	if strings.TrimSpace(region.Text()) == "" {
		return "", docserve.Errorf(docserve.EINVALID, "page has no content")
	}

	content, err := goquery.OuterHtml(region)
	if err != nil {
		return "", docserve.Errorf(docserve.EINVALID, "failed to render content: %v", err)
	}

	title := strings.TrimSpace(doc.Find("head title").First().Text())
	if title != "" && region.Find("h1").Length() == 0 {
		var b strings.Builder
		b.WriteString("<h1>")
		b.WriteString(escapeText(title))
		b.WriteString("</h1>\n")
		b.WriteString(content)
		content = b.String()
	}

	return content, nil
}

// selectContent returns the first matching content container, or the body
// when the page has no recognisable landmark.
func selectContent(doc *goquery.Document) *goquery.Selection {
	for _, selector := range contentSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() > 0 && strings.TrimSpace(sel.Text()) != "" {
			return sel
		}
	}
	return doc.Find("body").First()
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeText(s string) string {
	return textEscaper.Replace(s)
}
