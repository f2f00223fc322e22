package parser

import (
	"fmt"
	"strings"
	"unicode"

	"mercator-hq/slotgen/pkg/grammar/ast"
	grammarerrors "mercator-hq/slotgen/pkg/grammar/errors"
)

// Section markers.
const (
	BeginSlots     = "<BEGIN SLOTS>"
	EndSlots       = "<END SLOTS>"
	BeginTemplates = "<BEGIN TEMPLATES>"
	EndTemplates   = "<END TEMPLATES>"
)

// section is the text strictly between a begin and end marker.
type section struct {
	content   string
	firstLine int // document line of the begin marker, where content starts
	path      string
}

// definitionLine is one non-blank, non-comment line of a section.
type definitionLine struct {
	raw  string // line as written, trailing "\r" removed
	text string // raw with leading whitespace removed
	num  int    // 1-based document line
}

// locateSection finds the section delimited by begin and end.
// Each marker must appear exactly once and begin must precede end.
func locateSection(src, path, begin, end string) (section, error) {
	beginIdx, err := findMarker(src, path, begin)
	if err != nil {
		return section{}, err
	}
	endIdx, err := findMarker(src, path, end)
	if err != nil {
		return section{}, err
	}

	if beginIdx > endIdx {
		return section{}, grammarerrors.NewFormatError(
			fmt.Sprintf("'%s' comes after '%s' in definitions document", begin, end),
			ast.Location{File: path, Line: lineAt(src, beginIdx)},
		)
	}

	return section{
		content:   src[beginIdx+len(begin) : endIdx],
		firstLine: lineAt(src, beginIdx),
		path:      path,
	}, nil
}

// findMarker returns the byte offset of the only occurrence of marker in src.
func findMarker(src, path, marker string) (int, error) {
	idx := strings.Index(src, marker)
	if idx < 0 {
		return 0, grammarerrors.NewFormatError(
			fmt.Sprintf("Definitions document missing '%s'", marker),
			ast.Location{File: path},
		)
	}

	if n := strings.Count(src, marker); n > 1 {
		next := idx + len(marker) + strings.Index(src[idx+len(marker):], marker)
		return 0, grammarerrors.NewFormatError(
			fmt.Sprintf("'%s' appears %d times in definitions document; it must appear exactly once", marker, n),
			ast.Location{File: path, Line: lineAt(src, next)},
		)
	}

	return idx, nil
}

// lineAt returns the 1-based line number of byte offset off.
func lineAt(src string, off int) int {
	return strings.Count(src[:off], "\n") + 1
}

// definitionLines returns the section's lines, skipping blank and comment lines.
func (s section) definitionLines() []definitionLine {
	var lines []definitionLine
	for i, raw := range strings.Split(s.content, "\n") {
		raw = strings.TrimSuffix(raw, "\r")
		text := strings.TrimLeftFunc(raw, unicode.IsSpace)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines = append(lines, definitionLine{raw: raw, text: text, num: s.firstLine + i})
	}
	return lines
}

// location returns the document location of a line.
func (s section) location(line int) ast.Location {
	return ast.Location{File: s.path, Line: line}
}

// splitDefinition splits a definition line into its name and value fields on the
// single "->" separator. Both fields are returned trimmed; offset is the byte
// offset of the trimmed value within text.
func splitDefinition(kind, text string, loc ast.Location) (name, value string, offset int, err error) {
	switch strings.Count(text, separator) {
	case 0:
		return "", "", 0, grammarerrors.NewMalformedError(
			fmt.Sprintf("Malformed %s definition (no '%s' delimiter)", kind, separator), text, loc)
	case 1:
	default:
		return "", "", 0, grammarerrors.NewMalformedError(
			fmt.Sprintf("Malformed %s definition (too many '%s' delimiters)", kind, separator), text, loc)
	}

	sep := strings.Index(text, separator)
	name = strings.TrimSpace(text[:sep])
	rest := text[sep+len(separator):]
	value = strings.TrimSpace(rest)
	offset = sep + len(separator) + len(rest) - len(strings.TrimLeftFunc(rest, unicode.IsSpace))

	if name == "" {
		return "", "", 0, grammarerrors.NewMalformedError(
			fmt.Sprintf("%s definition includes no name", capitalize(kind)), text, loc)
	}
	if value == "" {
		return "", "", 0, grammarerrors.NewMalformedError(
			fmt.Sprintf("%s definition includes no values", capitalize(kind)), text, loc)
	}

	return name, value, offset, nil
}

const separator = "->"

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
