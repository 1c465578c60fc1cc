// Package generator combines themed words into candidate brand names.
//
// The candidate space is every single word plus every ordered pair of
// distinct words composed with a Style. Candidates are normalized, filtered
// by length and blacklist, de-duplicated, shuffled with a seeded source and
// cut to the requested count. When the space is smaller than the request,
// every candidate is returned and the shortfall is reported; duplicates are
// never produced to make up the difference.
package generator
