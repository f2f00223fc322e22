package generator

import (
	"math/rand/v2"
	"strings"

	"mercator-hq/slotgen/pkg/grammar/ast"
)

// Element is one entry of a template: literal text, or a slot to draw from.
type Element struct {
	Kind ast.ElementKind
	Text string // ast.ElementLiteral
	Slot SlotID // ast.ElementSlot
}

// Template is a named sequence of elements.
type Template struct {
	name     string
	body     string
	elements []Element
}

// NewTemplate creates a template. Slot elements index the slots passed to Generate.
func NewTemplate(name, body string, elements []Element) *Template {
	t := &Template{name: name, body: body, elements: make([]Element, len(elements))}
	copy(t.elements, elements)
	return t
}

// Generate concatenates the template's literals and one draw per slot reference.
// Every call draws afresh and advances the depletion state of the slots it uses.
func (t *Template) Generate(slots []*Slot, rng *rand.Rand) string {
	var sb strings.Builder
	for _, e := range t.elements {
		switch e.Kind {
		case ast.ElementSlot:
			sb.WriteString(slots[e.Slot].Draw(rng))
		default:
			sb.WriteString(e.Text)
		}
	}
	return sb.String()
}

// Name returns the template name.
func (t *Template) Name() string {
	return t.name
}

// Body returns the template body as written.
func (t *Template) Body() string {
	return t.body
}

// Elements returns a copy of the template's elements.
func (t *Template) Elements() []Element {
	out := make([]Element, len(t.elements))
	copy(out, t.elements)
	return out
}

// SlotIDs returns the slots the template draws from, in order, with repeats.
func (t *Template) SlotIDs() []SlotID {
	var ids []SlotID
	for _, e := range t.elements {
		if e.Kind == ast.ElementSlot {
			ids = append(ids, e.Slot)
		}
	}
	return ids
}
