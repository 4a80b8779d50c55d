package docserve

// Fallback returns the built-in copy of a document. It is served only when
// neither the network nor the disk cache can provide one.
func Fallback(kind Kind) string {
	if kind == KindFull {
		return fallbackFull
	}
	return fallbackStandard
}

const fallbackStandard = `# Documentation

The live documentation could not be retrieved and no cached copy is
available. This is a reduced offline copy.

## Getting Started

Request a document by type: "standard" for the overview or "full" for the
complete reference.

## Navigating Documents

- Without parameters you get a table of contents.
- Pass section with a title, or part of one, to read that section.
- Pass page (and optionally pageSize) to read the document in fixed-size
  line pages.

## Troubleshooting

Check network access to the documentation host, then request the document
again. A fresh copy is cached for 24 hours once it has been fetched.
`

const fallbackFull = `# Documentation (Full Reference)

The live documentation could not be retrieved and no cached copy is
available. This is a reduced offline copy of the full reference.

## Overview

The full reference combines the overview with detailed guides for every
command and tool.

## Document Types

### standard

A compact overview, suited for a quick orientation.

### full

The complete reference. It is large; navigate it by section or page rather
than reading it whole.

## Navigation

### Table of Contents

Request the document without section or page to list its headings.

### Sections

Pass section with a title, or part of one. Matching ignores case and the
first heading in document order wins.

### Pages

Pass page, counting from 1. pageSize sets the number of lines per page and
defaults to 5000.

## Caching

Fetched documents are kept in memory and on disk for 24 hours. After that
the next request fetches a new copy; if that fails a valid disk copy is
used, and this text is the last resort.

## Troubleshooting

Check network access to the documentation host and that the cache
directory is writable, then request the document again.
`
