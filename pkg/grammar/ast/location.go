package ast

import "fmt"

// Location represents the source location of a definition in the definitions document.
// It enables precise error reporting with file, line, and column information.
type Location struct {
	File   string // Path to the definitions document
	Line   int    // Line number (1-based)
	Column int    // Column number (1-based, 0 when unknown)
}

// String returns a human-readable representation of the location.
// Format: "file:line:column" or "file:line" when the column is unknown.
func (l Location) String() string {
	if l.File == "" {
		return "<unknown>"
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// IsValid returns true if the location has valid file and line information.
func (l Location) IsValid() bool {
	return l.File != "" && l.Line > 0
}
