// Package diag filters linker stderr for duplicate-definition
// diagnostics. The matching is deliberately crude substring work;
// downstream consumers depend on these exact heuristics, so keep them.
package diag

import (
	"sort"
	"strings"
)

const (
	// Any stderr line carrying this word is treated as a
	// duplicate-definition diagnostic.
	duplicateMarker = "multiple"

	// Symbol tokens containing this substring are excluded so the
	// entry point, which is legitimately linked in more than once
	// during a probe, is never reported. Substring, not exact match:
	// the filter is knowingly over-broad.
	entryPointName = "main"
)

// Symbols extracts the deduplicated, sorted duplicate-definition tokens
// from raw linker stderr. A token is everything after the first space of
// a matching line; a matching line with no space yields the empty token.
func Symbols(stderr string) []string {
	seen := make(map[string]struct{})

	for _, line := range strings.Split(strings.TrimSpace(stderr), "\n") {
		if !strings.Contains(line, duplicateMarker) {
			continue
		}

		_, token, _ := strings.Cut(line, " ")
		seen[token] = struct{}{}
	}

	symbols := make([]string, 0, len(seen))
	for token := range seen {
		if strings.Contains(token, entryPointName) {
			continue
		}
		symbols = append(symbols, token)
	}

	sort.Strings(symbols)

	return symbols
}
