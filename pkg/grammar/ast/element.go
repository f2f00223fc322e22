package ast

// ElementKind discriminates the two cases of a template element.
type ElementKind int

const (
	// ElementLiteral is a fragment of literal text copied as-is.
	ElementLiteral ElementKind = iota
	// ElementSlot is a reference to a slot, filled by a draw at generation time.
	ElementSlot
)

// String returns the kind name.
func (k ElementKind) String() string {
	switch k {
	case ElementLiteral:
		return "literal"
	case ElementSlot:
		return "slot"
	default:
		return "unknown"
	}
}

// Element is one entry of a template body: either literal text or a slot reference.
// For slot references, SlotIndex is the position of the referenced SlotDef in
// Document.Slots and SlotName is kept for diagnostics only.
type Element struct {
	Kind      ElementKind
	Text      string // Literal text (ElementLiteral only)
	SlotIndex int    // Index into Document.Slots (ElementSlot only)
	SlotName  string // Referenced slot name (ElementSlot only)
	Location  Location
}

// Literal creates a literal text element.
func Literal(text string, loc Location) Element {
	return Element{Kind: ElementLiteral, Text: text, Location: loc}
}

// SlotRef creates a slot reference element bound to the slot at index.
func SlotRef(index int, name string, loc Location) Element {
	return Element{Kind: ElementSlot, SlotIndex: index, SlotName: name, Location: loc}
}

// IsSlot returns true if the element references a slot.
func (e Element) IsSlot() bool {
	return e.Kind == ElementSlot
}
