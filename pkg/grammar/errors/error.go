package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"mercator-hq/slotgen/pkg/grammar/ast"
)

// ErrorType categorizes the type of error encountered while loading or using a
// definitions document.
type ErrorType string

const (
	ErrorTypeResource          ErrorType = "resource"           // Definitions or corpus file unreadable
	ErrorTypeFormat            ErrorType = "format"             // Missing, repeated, or misordered section markers
	ErrorTypeMalformed         ErrorType = "malformed"          // Bad line syntax, empty name or value field
	ErrorTypeDuplicate         ErrorType = "duplicate"          // Slot or template name collision
	ErrorTypeUndefinedSlot     ErrorType = "undefined_slot"     // Template cites an unknown slot
	ErrorTypeUndefinedTemplate ErrorType = "undefined_template" // Caller requested an unknown template
	ErrorTypeLint              ErrorType = "lint"               // Non-fatal finding from the validator
)

// Sentinels for errors.Is. They match any *Error of the same type.
var (
	ErrResource          = &Error{Type: ErrorTypeResource}
	ErrFormat            = &Error{Type: ErrorTypeFormat}
	ErrMalformed         = &Error{Type: ErrorTypeMalformed}
	ErrDuplicate         = &Error{Type: ErrorTypeDuplicate}
	ErrUndefinedSlot     = &Error{Type: ErrorTypeUndefinedSlot}
	ErrUndefinedTemplate = &Error{Type: ErrorTypeUndefinedTemplate}
)

// Error represents a rich error with location, context, and suggestions.
type Error struct {
	Type       ErrorType    // Category of error
	Message    string       // Error message
	Name       string       // Offending name (slot, template, corpus, or reference)
	Location   ast.Location // Source location (file, line, column)
	Context    string       // Surrounding lines of the document
	Suggestion string       // Suggested fix (optional)
	Err        error        // Underlying cause (I/O errors)
}

// Error implements the error interface.
// It returns a formatted error message with location and context.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s", e.Type, e.Message))

	if e.Location.IsValid() {
		sb.WriteString(fmt.Sprintf("\n  --> %s", e.Location.String()))
	}

	if e.Context != "" {
		sb.WriteString("\n  |\n")
		sb.WriteString(strings.TrimSuffix(e.Context, "\n"))
		sb.WriteString("\n  |")
	}

	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("\n  = suggestion: %s", e.Suggestion))
	}

	return sb.String()
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's type.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Type == e.Type
}

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// TypeOf returns the ErrorType of err, or "" if err is not a grammar error.
func TypeOf(err error) ErrorType {
	if e, ok := As(err); ok {
		return e.Type
	}
	return ""
}

// NewResourceError reports an unreadable definitions document or corpus.
func NewResourceError(name string, location ast.Location, cause error) *Error {
	return &Error{
		Type:     ErrorTypeResource,
		Message:  fmt.Sprintf("Failed to read '%s': %v", name, cause),
		Name:     name,
		Location: location,
		Err:      cause,
	}
}

// NewCorpusError reports a corpus reference that could not be resolved while
// parsing the named slot.
func NewCorpusError(corpus, slot string, location ast.Location, cause error) *Error {
	return &Error{
		Type:     ErrorTypeResource,
		Message:  fmt.Sprintf("Failed to load corpus '%s' referenced by slot '%s': %v", corpus, slot, cause),
		Name:     corpus,
		Location: location,
		Err:      cause,
	}
}

// NewFormatError reports a missing, repeated, or misordered section marker.
func NewFormatError(message string, location ast.Location) *Error {
	return &Error{
		Type:     ErrorTypeFormat,
		Message:  message,
		Location: location,
	}
}

// NewMalformedError reports a definition line that does not follow the grammar.
// The offending line is quoted in the message.
func NewMalformedError(message, line string, location ast.Location) *Error {
	return &Error{
		Type:     ErrorTypeMalformed,
		Message:  fmt.Sprintf("%s: '%s'", message, line),
		Location: location,
	}
}

// NewDuplicateError reports a second definition of the same slot or template name.
// kind is "slot" or "template".
func NewDuplicateError(kind, name string, location ast.Location) *Error {
	return &Error{
		Type:       ErrorTypeDuplicate,
		Message:    fmt.Sprintf("Multiple %ss with the name '%s'", kind, name),
		Name:       name,
		Location:   location,
		Suggestion: fmt.Sprintf("Rename or remove one of the '%s' definitions", name),
	}
}

// NewUndefinedSlotError reports a template reference to a slot that is not defined.
func NewUndefinedSlotError(reference, body string, location ast.Location, definedSlots []string) *Error {
	return &Error{
		Type:       ErrorTypeUndefinedSlot,
		Message:    fmt.Sprintf("Template definition '%s' references an undefined slot '%s'", body, reference),
		Name:       reference,
		Location:   location,
		Suggestion: SuggestName(reference, definedSlots),
	}
}

// NewUndefinedTemplateError reports a request for a template that is not defined.
// The message enumerates every defined template name.
func NewUndefinedTemplateError(name string, definedTemplates []string) *Error {
	return &Error{
		Type: ErrorTypeUndefinedTemplate,
		Message: fmt.Sprintf("There is no defined template with the name '%s'. These templates are defined: %s",
			name, strings.Join(definedTemplates, ", ")),
		Name:       name,
		Suggestion: SuggestName(name, definedTemplates),
	}
}

// ErrorList represents a collection of findings accumulated by a validation pass.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*Error, 0),
	}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// AddError creates and adds a new error with the given parameters.
func (el *ErrorList) AddError(errType ErrorType, message string, location ast.Location) {
	el.Add(&Error{
		Type:     errType,
		Message:  message,
		Location: location,
	})
}

// AddErrorWithSuggestion creates and adds a new error with a suggestion.
func (el *ErrorList) AddErrorWithSuggestion(errType ErrorType, message string, location ast.Location, suggestion string) {
	el.Add(&Error{
		Type:       errType,
		Message:    message,
		Location:   location,
		Suggestion: suggestion,
	})
}

// HasErrors returns true if the error list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Error implements the error interface.
// It returns all errors formatted as a single string.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d issue(s):\n\n", el.Count()))

	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("Issue %d:\n", i+1))
		sb.WriteString(err.Error())
		sb.WriteString("\n\n")
	}

	return sb.String()
}

// ToError returns nil if the error list is empty, otherwise returns the error list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}
