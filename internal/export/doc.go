// Package export persists check result sets as versioned JSON files.
//
// Files carry a schema version and a SHA3-256 checksum over the records so
// that a report can be rendered later, or elsewhere, without re-running any
// lookup. Readers reject anything they cannot trust with ErrMalformed.
package export
