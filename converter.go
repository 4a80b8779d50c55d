package docserve

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML page into Markdown.
	// Returns EINVALID for empty input.
	Convert(html string) (string, error)
}
