// Package report renders check result sets for people and tools.
//
// This package contains writers for different output formats:
//   - MarkdownWriter: availability matrix, alerts and a status pie chart
//   - DelimitedWriter: one CSV or TSV row per record
//   - JSONWriter: the canonical result set, identical to an export file
//   - TextWriter: human-readable output for terminal display
//
// Writers only project what the result set contains. They never re-run a
// lookup, reinterpret a status or print the current time, so rendering the
// same result set twice yields identical bytes.
package report
