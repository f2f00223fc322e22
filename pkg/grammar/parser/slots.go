package parser

import (
	"strings"

	"mercator-hq/slotgen/pkg/grammar/ast"
	grammarerrors "mercator-hq/slotgen/pkg/grammar/errors"
)

// parseSlots parses the value-set section into slot definitions, splicing in
// referenced corpora.
func (p *Parser) parseSlots(sec section) ([]*ast.SlotDef, error) {
	var slots []*ast.SlotDef

	for _, line := range sec.definitionLines() {
		text := collapseTabs(line.text)
		loc := sec.location(line.num)

		name, value, _, err := splitDefinition("slot", text, loc)
		if err != nil {
			return nil, err
		}

		def := &ast.SlotDef{Name: name, Location: loc}
		for _, token := range strings.Split(value, ",") {
			if !strings.HasPrefix(token, ast.CorpusPrefix) {
				def.Values = append(def.Values, token)
				continue
			}

			corpusName := strings.TrimPrefix(token, ast.CorpusPrefix)
			values, err := p.corpusLoader.Load(corpusName)
			if err != nil {
				return nil, grammarerrors.NewCorpusError(corpusName, name, loc, err)
			}
			def.Values = append(def.Values, values...)
			def.Corpora = append(def.Corpora, corpusName)
		}

		if len(def.Values) == 0 {
			return nil, grammarerrors.NewMalformedError("Slot definition expands to no values", text, loc)
		}

		slots = append(slots, def)
	}

	if dup := firstDuplicate(slots, func(s *ast.SlotDef) string { return s.Name }); dup != nil {
		return nil, grammarerrors.NewDuplicateError("slot", dup.Name, dup.Location)
	}

	return slots, nil
}

// collapseTabs replaces every run of consecutive tabs with a single tab.
func collapseTabs(s string) string {
	for strings.Contains(s, "\t\t") {
		s = strings.ReplaceAll(s, "\t\t", "\t")
	}
	return s
}

// firstDuplicate returns the first item whose name was already seen, or the zero value.
func firstDuplicate[T any](items []T, name func(T) string) T {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		n := name(item)
		if seen[n] {
			return item
		}
		seen[n] = true
	}
	var zero T
	return zero
}
