// Package ast provides the parsed representation of a slotgen definitions document.
//
// A definitions document declares value-sets (slots) and templates:
//
//	<BEGIN SLOTS>
//	ANIMAL -> cat,dog,$animals
//	<END SLOTS>
//	<BEGIN TEMPLATES>
//	SENTENCE -> The <ANIMAL> ran.
//	<END TEMPLATES>
//
// # Core Types
//
// Document: Root node holding slot and template definitions in document order
//
// SlotDef: A named value-set after corpus expansion
//
// TemplateDef: A named template whose body has been scanned into Elements
//
// Element: Tagged variant, either literal text or a slot reference bound by index
//
// Location: Source location (file, line, column)
//
// # Slot Binding
//
// Template elements reference slots by their index in Document.Slots, not by name.
// The generator builds its slot arena in the same order, so an index resolved at
// parse time stays valid for the lifetime of the engine built from the document.
//
// # Immutability
//
// Documents should be treated as immutable after parsing. Runtime selection state
// lives in the generator package, never in the AST.
package ast
