package corpus

import (
	"errors"
	"strings"
)

// ErrNotFound is returned by loaders when no corpus exists under the requested name.
var ErrNotFound = errors.New("corpus not found")

// Loader resolves a corpus name to its values.
// Implementations return values in corpus order.
type Loader interface {
	Load(name string) ([]string, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(name string) ([]string, error)

// Load calls f(name).
func (f LoaderFunc) Load(name string) ([]string, error) {
	return f(name)
}

// SplitLines splits corpus content into one value per line.
// A trailing carriage return is removed from every line, and the empty line produced
// by a final newline is dropped. Empty content yields no values.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}

	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
