package validator

import (
	"fmt"
	"strings"

	"mercator-hq/slotgen/pkg/grammar/ast"
	grammarerrors "mercator-hq/slotgen/pkg/grammar/errors"
)

// SlotValidator checks the values of each slot definition.
type SlotValidator struct {
	errors *grammarerrors.ErrorList
}

// NewSlotValidator creates a new slot validator.
func NewSlotValidator() *SlotValidator {
	return &SlotValidator{
		errors: grammarerrors.NewErrorList(),
	}
}

// Validate checks every slot in the document.
func (v *SlotValidator) Validate(doc *ast.Document) error {
	v.errors = grammarerrors.NewErrorList()

	for _, slot := range doc.Slots {
		v.validateValues(slot)
		v.validateSingleUse(slot)
	}

	return v.errors.ToError()
}

func (v *SlotValidator) validateValues(slot *ast.SlotDef) {
	seen := make(map[string]bool, len(slot.Values))
	reported := make(map[string]bool)

	for _, value := range slot.Values {
		if seen[value] && !reported[value] {
			reported[value] = true
			v.add(slot, fmt.Sprintf("Slot '%s' lists the value '%s' more than once", slot.Name, value),
				"Repeated values are drawn proportionally more often; remove the copy if that is not intended")
		}
		seen[value] = true

		trimmed := strings.TrimSpace(value)
		switch {
		case value == "":
			v.add(slot, fmt.Sprintf("Slot '%s' contains an empty value", slot.Name),
				"Check for a doubled or trailing comma")
		case strings.HasPrefix(trimmed, ast.CorpusPrefix) && trimmed != value:
			v.add(slot, fmt.Sprintf("Slot '%s' value '%s' looks like a corpus reference but is not expanded", slot.Name, value),
				fmt.Sprintf("Write '%s' with no surrounding whitespace", trimmed))
		case trimmed != value:
			v.add(slot, fmt.Sprintf("Slot '%s' value '%s' has surrounding whitespace", slot.Name, value),
				"Values are not trimmed; remove spaces around commas")
		}
	}
}

func (v *SlotValidator) validateSingleUse(slot *ast.SlotDef) {
	if n := slot.SingleUseCount(); n > 0 && n == len(slot.Values) {
		v.add(slot, fmt.Sprintf("Every value of slot '%s' is single-use", slot.Name),
			"The slot cycles through all of its values before any repeats")
	}
}

func (v *SlotValidator) add(slot *ast.SlotDef, message, suggestion string) {
	v.errors.Add(&grammarerrors.Error{
		Type:       grammarerrors.ErrorTypeLint,
		Message:    message,
		Name:       slot.Name,
		Location:   slot.Location,
		Suggestion: suggestion,
	})
}
