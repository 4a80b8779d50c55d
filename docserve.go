// Package docserve serves large markdown documentation to callers. It keeps
// two document variants fresh through a tiered cache (memory, network, disk,
// static fallback) and offers structural navigation over them: a table of
// contents, fuzzy section lookup and fixed-size line pagination.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, http/, fs/).
package docserve
