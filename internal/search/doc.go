// Package search builds trademark-registry search URLs and opens them in
// the user's browser. It never fetches or parses search results.
package search
