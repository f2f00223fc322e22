// Package errors provides rich error types for loading definitions documents and
// generating text from them.
//
// The error types include source location, context, and suggestions to help
// authors quickly identify and fix definition issues.
//
// # Error Types
//
// ErrorTypeResource: Definitions document or corpus file could not be read
//
// ErrorTypeFormat: Section markers missing, repeated, or out of order
//
// ErrorTypeMalformed: Definition line without exactly one '->', or with an empty field
//
// ErrorTypeDuplicate: Two slots or two templates share a name
//
// ErrorTypeUndefinedSlot: A template references a slot that is not defined
//
// ErrorTypeUndefinedTemplate: A caller asked for a template that is not defined
//
// ErrorTypeLint: Non-fatal findings reported by the validator
//
// # Matching
//
// Every type has a sentinel usable with the standard library:
//
//	if errors.Is(err, grammarerrors.ErrDuplicate) {
//	    // two definitions share a name
//	}
//
// # Error Format
//
//	[undefined_slot] Template definition 'The <ANIML> ran.' references an undefined slot 'ANIML'
//	  --> templates/basic.txt:7:5
//	  |
//	   6 | <BEGIN TEMPLATES>
//	-> 7 | SENTENCE -> The <ANIML> ran.
//	     |                 ^
//	   8 | <END TEMPLATES>
//	  |
//	  = suggestion: Did you mean 'ANIMAL'?
package errors
