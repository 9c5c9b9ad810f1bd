// Package util contains file system helpers for the command line tools
package util

import (
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar"
)

// Glob expands each pattern using doublestar semantics where "**" matches any number of
// directories. A pattern without meta characters is returned verbatim so that a missing file
// can be reported by its reader. The matches of each pattern are sorted, the order of the
// patterns is retained, and a path is never returned more than once.
func Glob(patterns ...string) ([]string, error) {
	seen := make(map[string]bool)
	matches := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		var ms []string
		if HasMeta(pattern) {
			var err error
			if ms, err = doublestar.Glob(pattern); err != nil {
				return nil, err
			}
			sort.Strings(ms)
		} else {
			ms = []string{pattern}
		}
		for _, m := range ms {
			if !seen[m] {
				seen[m] = true
				matches = append(matches, m)
			}
		}
	}
	return matches, nil
}

// HasMeta returns true if the pattern contains any of the glob meta characters
func HasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, `*?[{`)
}
