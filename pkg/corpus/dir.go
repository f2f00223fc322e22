package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDir is the corpus directory used when none is configured.
const DefaultDir = "corpora"

// DirLoader loads corpora from plain text files in a fixed directory.
// The corpus named "colors" is read from <Dir>/colors.
type DirLoader struct {
	Dir string
}

// NewDirLoader creates a loader for the given directory.
// An empty dir selects DefaultDir.
func NewDirLoader(dir string) *DirLoader {
	if dir == "" {
		dir = DefaultDir
	}
	return &DirLoader{Dir: dir}
}

// Load reads the named corpus file in full and splits it into lines.
func (l *DirLoader) Load(name string) ([]string, error) {
	path, err := l.Path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q (looked in %s): %w", ErrNotFound, name, l.Dir, err)
		}
		return nil, fmt.Errorf("failed to read corpus %q: %w", name, err)
	}

	return SplitLines(string(data)), nil
}

// Path returns the file path for the named corpus.
// Names that would escape the corpus directory are rejected.
func (l *DirLoader) Path(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("corpus name is empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid corpus name %q: must not contain path separators", name)
	}
	return filepath.Join(l.Dir, name), nil
}

// List returns the names of the corpus files in the directory.
func (l *DirLoader) List() ([]string, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list corpus directory %q: %w", l.Dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
