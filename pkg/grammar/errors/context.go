package errors

import (
	"fmt"
	"strings"

	"mercator-hq/slotgen/pkg/grammar/ast"
)

// ExtractContext extracts the lines surrounding location from the document source
// for error context display.
// It returns a formatted string showing the error location with line numbers.
func ExtractContext(source string, location ast.Location, contextLines int) string {
	if location.Line <= 0 || source == "" {
		return ""
	}

	lines := strings.Split(source, "\n")

	errorLine := location.Line - 1 // Convert to 0-based index
	if errorLine >= len(lines) {
		return ""
	}
	startLine := max(errorLine-contextLines, 0)
	endLine := min(errorLine+contextLines, len(lines)-1)

	var sb strings.Builder
	maxLineNumWidth := len(fmt.Sprintf("%d", endLine+1))

	for i := startLine; i <= endLine; i++ {
		lineNumStr := fmt.Sprintf("%*d", maxLineNumWidth, i+1)
		prefix := "  "
		if i == errorLine {
			prefix = "->"
		}

		sb.WriteString(fmt.Sprintf("%s %s | %s\n", prefix, lineNumStr, strings.TrimRight(lines[i], "\r")))

		// Column indicator for the error line
		if i == errorLine && location.Column > 0 {
			padding := strings.Repeat(" ", location.Column-1)
			sb.WriteString(fmt.Sprintf("   %s | %s^\n", strings.Repeat(" ", maxLineNumWidth), padding))
		}
	}

	return sb.String()
}

// WithContext attaches source context to err when err is a located *Error.
// Other errors are returned unchanged.
func WithContext(err error, source string) error {
	e, ok := As(err)
	if !ok || e.Context != "" || e.Location.Line <= 0 {
		return err
	}
	e.Context = ExtractContext(source, e.Location, 2) // 2 lines before and after
	return err
}
