// Package wordlist provides the themed word lists used by the name generator.
//
// Built-in themes are embedded from themes.yaml. Themes from the
// configuration file are merged on top: adding a theme only needs a named
// list, never a code change. A Registry is immutable once built.
package wordlist
