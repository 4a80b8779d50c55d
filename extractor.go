package docserve

// Extractor isolates the main content of a rendered documentation page.
type Extractor interface {
	// Extract returns the HTML of the page's main content region with
	// navigation, sidebars and scripts removed.
	// Returns EINVALID when the page has no usable content.
	Extract(html string) (string, error)
}
