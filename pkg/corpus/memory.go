package corpus

import "fmt"

// MemoryLoader serves corpora from an in-memory map.
type MemoryLoader struct {
	corpora map[string][]string
}

// NewMemoryLoader creates a loader over the given corpora.
func NewMemoryLoader(corpora map[string][]string) *MemoryLoader {
	m := &MemoryLoader{corpora: make(map[string][]string, len(corpora))}
	for name, values := range corpora {
		m.Set(name, values)
	}
	return m
}

// Load returns a copy of the named corpus.
func (m *MemoryLoader) Load(name string) ([]string, error) {
	values, ok := m.corpora[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	out := make([]string, len(values))
	copy(out, values)
	return out, nil
}

// Set stores a copy of values under name, replacing any previous corpus.
func (m *MemoryLoader) Set(name string, values []string) {
	stored := make([]string, len(values))
	copy(stored, values)
	m.corpora[name] = stored
}
