package validator

import (
	"fmt"

	"mercator-hq/slotgen/pkg/grammar/ast"
	grammarerrors "mercator-hq/slotgen/pkg/grammar/errors"
)

// ReferenceValidator checks how templates use slots.
type ReferenceValidator struct {
	errors *grammarerrors.ErrorList
}

// NewReferenceValidator creates a new reference validator.
func NewReferenceValidator() *ReferenceValidator {
	return &ReferenceValidator{
		errors: grammarerrors.NewErrorList(),
	}
}

// Validate reports unused slots and templates without slot references.
func (v *ReferenceValidator) Validate(doc *ast.Document) error {
	v.errors = grammarerrors.NewErrorList()

	used := make([]bool, len(doc.Slots))
	for _, tmpl := range doc.Templates {
		refs := 0
		for _, e := range tmpl.Elements {
			if e.IsSlot() {
				used[e.SlotIndex] = true
				refs++
			}
		}
		if refs == 0 {
			v.errors.Add(&grammarerrors.Error{
				Type:     grammarerrors.ErrorTypeLint,
				Message:  fmt.Sprintf("Template '%s' has no slot references and always generates the same text", tmpl.Name),
				Name:     tmpl.Name,
				Location: tmpl.Location,
			})
		}
	}

	for i, slot := range doc.Slots {
		if !used[i] {
			v.errors.Add(&grammarerrors.Error{
				Type:       grammarerrors.ErrorTypeLint,
				Message:    fmt.Sprintf("Slot '%s' is not referenced by any template", slot.Name),
				Name:       slot.Name,
				Location:   slot.Location,
				Suggestion: fmt.Sprintf("Reference it as <%s> or remove the definition", slot.Name),
			})
		}
	}

	return v.errors.ToError()
}
