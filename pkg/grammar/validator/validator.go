package validator

import (
	"mercator-hq/slotgen/pkg/grammar/ast"
	grammarerrors "mercator-hq/slotgen/pkg/grammar/errors"
)

// Validator runs the lint passes over a parsed document.
// Findings are warnings: a document that parses always builds an engine.
type Validator struct {
	slots      *SlotValidator
	references *ReferenceValidator
}

// NewValidator creates a new validator with all lint passes.
func NewValidator() *Validator {
	return &Validator{
		slots:      NewSlotValidator(),
		references: NewReferenceValidator(),
	}
}

// Validate runs every pass and returns the findings as an *errors.ErrorList,
// or nil when the document is clean.
func (v *Validator) Validate(doc *ast.Document) error {
	findings := grammarerrors.NewErrorList()

	if err := v.slots.Validate(doc); err != nil {
		if list, ok := err.(*grammarerrors.ErrorList); ok {
			findings.Errors = append(findings.Errors, list.Errors...)
		}
	}

	if err := v.references.Validate(doc); err != nil {
		if list, ok := err.(*grammarerrors.ErrorList); ok {
			findings.Errors = append(findings.Errors, list.Errors...)
		}
	}

	return findings.ToError()
}

// Findings is Validate returning the findings directly.
func (v *Validator) Findings(doc *ast.Document) []*grammarerrors.Error {
	if list, ok := v.Validate(doc).(*grammarerrors.ErrorList); ok {
		return list.Errors
	}
	return nil
}
