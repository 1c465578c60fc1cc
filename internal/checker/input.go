package checker

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/nao1215/nymix/internal/model"
)

// ReadList reads one entry per line from path. Blank lines, lines starting
// with '#' and duplicates are ignored; the first occurrence keeps its place.
func ReadList(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided list path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrListNotFound, path)
		}
		return nil, fmt.Errorf("failed to open list file: %w", err)
	}
	defer f.Close()

	entries := make([]string, 0)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read list file %s: %w", path, err)
	}
	return Dedupe(entries), nil
}

// MergeInputs returns the flag values followed by the entries of every list
// file, de-duplicated in order.
func MergeInputs(values []string, files ...string) ([]string, error) {
	merged := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			merged = append(merged, v)
		}
	}
	for _, path := range files {
		if path == "" {
			continue
		}
		entries, err := ReadList(path)
		if err != nil {
			return nil, err
		}
		merged = append(merged, entries...)
	}
	return Dedupe(merged), nil
}

// Dedupe drops repeated entries, keeping the first occurrence.
func Dedupe(entries []string) []string {
	seen := make(map[string]bool, len(entries))
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

// NormalizeTLD lower-cases a TLD, trims leading dots and checks that it is
// an ICANN-managed public suffix (e.g. "com", "io", "com.br").
func NormalizeTLD(tld string) (string, error) {
	t := strings.ToLower(strings.TrimLeft(strings.TrimSpace(tld), "."))
	if t == "" {
		return "", fmt.Errorf("%w: empty value", ErrUnknownTLD)
	}
	suffix, icann := publicsuffix.PublicSuffix("example." + t)
	if !icann || suffix != t {
		return "", fmt.Errorf("%w: %q", ErrUnknownTLD, tld)
	}
	return t, nil
}

// NormalizeTLDs normalizes every TLD and removes duplicates.
func NormalizeTLDs(tlds []string) ([]string, error) {
	out := make([]string, 0, len(tlds))
	for _, tld := range tlds {
		t, err := NormalizeTLD(tld)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return Dedupe(out), nil
}

// Targets validates TLDs and platforms and returns the check targets:
// TLDs first, then handles, each in input order.
func Targets(tlds, handles []string, platforms *Platforms) ([]model.Target, error) {
	normTLDs, err := NormalizeTLDs(tlds)
	if err != nil {
		return nil, err
	}
	normHandles, err := platforms.Normalize(handles)
	if err != nil {
		return nil, err
	}
	if len(normTLDs)+len(normHandles) == 0 {
		return nil, ErrNoTargets
	}

	targets := make([]model.Target, 0, len(normTLDs)+len(normHandles))
	for _, tld := range normTLDs {
		targets = append(targets, model.DomainTarget(tld))
	}
	for _, platform := range normHandles {
		targets = append(targets, model.HandleTarget(platform))
	}
	return targets, nil
}
