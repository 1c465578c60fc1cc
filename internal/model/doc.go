// Package model defines the core data structures used throughout nymix.
//
// This package contains the following main types:
//   - Status: The tri-state outcome of a single availability lookup
//   - Target: A TLD or handle platform a name is checked against
//   - Record: One (name, target) lookup outcome
//   - ResultSet: The ordered output of one check run, persisted as an export
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The checker, export, report and database packages all need
// these types, so centralizing them prevents import cycles.
//
// The models are serializable to JSON for the export file and for the
// run history database.
package model
