package parser

import (
	"strings"
	"unicode/utf8"

	"mercator-hq/slotgen/pkg/grammar/ast"
	grammarerrors "mercator-hq/slotgen/pkg/grammar/errors"
)

// Slot reference delimiters. There is no escape syntax for them in literal text.
const (
	refOpen  = '<'
	refClose = '>'
)

// parseTemplates parses the template section, binding every slot reference to
// the index of its definition in slots.
func parseTemplates(sec section, slots []*ast.SlotDef) ([]*ast.TemplateDef, error) {
	index := make(map[string]int, len(slots))
	names := make([]string, len(slots))
	for i, s := range slots {
		index[s.Name] = i
		names[i] = s.Name
	}

	var templates []*ast.TemplateDef

	for _, line := range sec.definitionLines() {
		loc := sec.location(line.num)

		name, body, offset, err := splitDefinition("template", line.text, loc)
		if err != nil {
			return nil, err
		}

		// Columns are reported against the line as written.
		lead := len(line.raw) - len(line.text)
		column := func(i int) int {
			return utf8.RuneCountInString(line.raw[:lead+offset+i]) + 1
		}

		elements, err := scanBody(body, loc, column, index, names)
		if err != nil {
			return nil, err
		}

		templates = append(templates, &ast.TemplateDef{
			Name:     name,
			Body:     body,
			Elements: elements,
			Location: loc,
		})
	}

	if dup := firstDuplicate(templates, func(t *ast.TemplateDef) string { return t.Name }); dup != nil {
		return nil, grammarerrors.NewDuplicateError("template", dup.Name, dup.Location)
	}

	return templates, nil
}

// scanBody splits a template body into literal and slot reference elements.
// column maps a byte offset in body to a 1-based column in the source line.
func scanBody(body string, loc ast.Location, column func(int) int, index map[string]int, names []string) ([]ast.Element, error) {
	at := func(i int) ast.Location {
		l := loc
		l.Column = column(i)
		return l
	}

	var (
		elements []ast.Element
		literal  strings.Builder
		ref      strings.Builder
		inRef    bool
		litStart int
		refStart int
	)

	for i, r := range body {
		switch {
		case inRef && r == refClose:
			inRef = false
			name := ref.String()
			slot, ok := index[name]
			if !ok {
				return nil, grammarerrors.NewUndefinedSlotError(name, body, at(refStart), names)
			}
			elements = append(elements, ast.SlotRef(slot, name, at(refStart)))

		case inRef:
			ref.WriteRune(r)

		case r == refOpen:
			if literal.Len() > 0 {
				elements = append(elements, ast.Literal(literal.String(), at(litStart)))
				literal.Reset()
			}
			inRef = true
			ref.Reset()
			refStart = i

		default:
			if literal.Len() == 0 {
				litStart = i
			}
			literal.WriteRune(r)
		}
	}

	if inRef {
		return nil, grammarerrors.NewMalformedError("Unterminated slot reference in template definition", body, at(refStart))
	}

	if literal.Len() > 0 {
		elements = append(elements, ast.Literal(literal.String(), at(litStart)))
	}

	return elements, nil
}
