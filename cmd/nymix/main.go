// Package main provides the entry point for the nymix CLI.
//
// nymix generates brand-name candidates from themed word lists, checks
// whether they are free as domains and social handles, opens trademark
// searches and renders reports from exported check results.
//
// Usage:
//
//	nymix generate --theme tech --count 10
//	nymix check elyra --tld com --handle instagram --export run.json
//	nymix report run.json --format markdown --output report.md
//	nymix search elyra
//
// See --help for all available options.
package main

import "os"

// main is the entry point for nymix.
func main() {
	os.Exit(Execute())
}
