// Package database provides SQLite-based storage for the run history.
//
// This package implements the HistoryDB, which stores:
//   - Every check run as its complete result set
//   - The individual availability records, indexed by name
//
// Design decision: We use SQLite (via modernc.org/sqlite) because the
// database is a single file in the XDG data directory and the CGO-free
// driver keeps cross-compilation easy. WAL mode lets "history" read while a
// "check" writes.
package database
