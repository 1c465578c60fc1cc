// Package checker checks candidate names for availability as domains and
// social handles.
//
// Every (name, target) pair is an independent lookup producing exactly one
// model.Record. Lookups run on a bounded errgroup pool and write only their
// own slot of a pre-sized slice, so the result order always follows the
// input order regardless of completion order. A failing lookup never aborts
// the run: it degrades its own record to "unknown" and keeps the error text
// as the record detail.
//
// Domain lookups resolve NS records (optionally confirmed by WHOIS). Handle
// lookups request the platform's public profile URL and classify the HTTP
// status with a configurable policy.
package checker
