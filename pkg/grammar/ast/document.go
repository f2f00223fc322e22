package ast

import "strings"

// SingleUseMarker is the trailing marker that tags a value as single-use.
// It is the two characters backslash and 's', not a whitespace escape.
const SingleUseMarker = `\s`

// CorpusPrefix marks a value token as a reference to an external corpus.
const CorpusPrefix = "$"

// Document is the root node of a parsed definitions document.
// Slots appear in definition order; that order defines the slot indices used by
// template elements.
type Document struct {
	Path      string         // Source path ("memory://..." for in-memory documents)
	Slots     []*SlotDef     // Value-set definitions in document order
	Templates []*TemplateDef // Template definitions in document order
}

// SlotDef is a named value-set after corpus expansion.
type SlotDef struct {
	Name     string
	Values   []string // Expanded values; single-use values keep their marker
	Corpora  []string // Names of corpora spliced into Values
	Location Location
}

// TemplateDef is a named template with its resolved element sequence.
type TemplateDef struct {
	Name     string
	Body     string // Trimmed template body as written
	Elements []Element
	Location Location
}

// IsSingleUse reports whether a raw value carries the single-use marker.
func IsSingleUse(value string) bool {
	return strings.HasSuffix(value, SingleUseMarker)
}

// StripMarker returns the value without its single-use marker.
func StripMarker(value string) string {
	return strings.TrimSuffix(value, SingleUseMarker)
}

// SlotIndex returns the index of the named slot, or -1 if it is not defined.
func (d *Document) SlotIndex(name string) int {
	for i, s := range d.Slots {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// GetSlot returns the named slot definition, or nil.
func (d *Document) GetSlot(name string) *SlotDef {
	if i := d.SlotIndex(name); i >= 0 {
		return d.Slots[i]
	}
	return nil
}

// GetTemplate returns the named template definition, or nil.
func (d *Document) GetTemplate(name string) *TemplateDef {
	for _, t := range d.Templates {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// SlotNames returns slot names in definition order.
func (d *Document) SlotNames() []string {
	names := make([]string, len(d.Slots))
	for i, s := range d.Slots {
		names[i] = s.Name
	}
	return names
}

// TemplateNames returns template names in definition order.
func (d *Document) TemplateNames() []string {
	names := make([]string, len(d.Templates))
	for i, t := range d.Templates {
		names[i] = t.Name
	}
	return names
}

// SlotReferences returns the names of the slots referenced by the template, in order,
// with repeats.
func (t *TemplateDef) SlotReferences() []string {
	var refs []string
	for _, e := range t.Elements {
		if e.IsSlot() {
			refs = append(refs, e.SlotName)
		}
	}
	return refs
}

// SingleUseCount returns the number of single-use values in the slot definition.
func (s *SlotDef) SingleUseCount() int {
	n := 0
	for _, v := range s.Values {
		if IsSingleUse(v) {
			n++
		}
	}
	return n
}
