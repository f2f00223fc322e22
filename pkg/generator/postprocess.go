package generator

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// SplitOutput splits a generated string on marker, the literal two-character
// sequence `\n` by default. Definitions cannot contain real newlines, so
// multi-line output is written with the marker and split by the caller.
func SplitOutput(output, marker string) []string {
	if marker == "" {
		return []string{output}
	}
	return strings.Split(output, marker)
}

// MatchNames returns the names that fuzzy-match query, best match first.
// An empty query returns names unchanged.
func MatchNames(query string, names []string) []string {
	if query == "" {
		return names
	}

	matches := fuzzy.Find(query, names)
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}
	return out
}
