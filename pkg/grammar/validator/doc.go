// Package validator lints parsed definitions documents.
//
// The parser already rejects every document an engine cannot be built from.
// The validator looks for documents that build but probably do not do what
// their author meant:
//
//   - values with surrounding whitespace ("a, b" yields " b")
//   - corpus references that are not expanded because of leading whitespace
//   - empty values from doubled or trailing commas
//   - values listed more than once in a slot
//   - slots whose every value is single-use
//   - slots no template references
//   - templates with no slot references
//
// Every finding has type errors.ErrorTypeLint.
package validator
