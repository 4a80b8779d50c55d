package docserve

import (
	"regexp"
	"strings"
)

// Section is a heading-delimited part of a markdown document.
type Section struct {
	Level int    `json:"level"`
	Title string `json:"title"`

	// Body holds the heading line followed by every line up to the next
	// heading, each terminated by a newline.
	Body string `json:"body"`

	// Zero-based line range of the section, both ends inclusive.
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine"`
}

// Match ATX headings: # through ###### followed by at least one space and text.
var headingRe = regexp.MustCompile(`^(#{1,6}) +(.*)$`)

// SplitLines splits text into lines. A trailing newline terminates the last
// line rather than starting an empty one.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// ParseSections splits markdown into sections in source order.
// Lines before the first heading belong to no section. A document without
// headings yields no sections.
func ParseSections(markdown string) []Section {
	lines := SplitLines(markdown)

	var sections []Section
	var current *Section
	var body strings.Builder

	closeCurrent := func(endLine int) {
		if current == nil {
			return
		}
		current.EndLine = endLine
		current.Body = body.String()
		sections = append(sections, *current)
		current = nil
		body.Reset()
	}

	for i, line := range lines {
		if level, title, ok := parseHeading(line); ok {
			closeCurrent(i - 1)
			current = &Section{
				Level:     level,
				Title:     title,
				StartLine: i,
			}
			body.WriteString(line)
			body.WriteString("\n")
			continue
		}
		if current != nil {
			body.WriteString(line)
			body.WriteString("\n")
		}
	}
	closeCurrent(len(lines) - 1)

	return sections
}

func parseHeading(line string) (level int, title string, ok bool) {
	m := headingRe.FindStringSubmatch(line)
	if m == nil {
		return 0, "", false
	}
	title = strings.TrimSpace(m[2])
	if title == "" {
		return 0, "", false
	}
	return len(m[1]), title, true
}
