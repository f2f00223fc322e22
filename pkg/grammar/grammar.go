package grammar

import (
	"mercator-hq/slotgen/pkg/corpus"
	"mercator-hq/slotgen/pkg/grammar/ast"
	grammarerrors "mercator-hq/slotgen/pkg/grammar/errors"
	"mercator-hq/slotgen/pkg/grammar/parser"
	"mercator-hq/slotgen/pkg/grammar/validator"
)

// Parse parses a definitions document, resolving corpora with loader.
// A nil loader selects the default corpus directory.
func Parse(path string, loader corpus.Loader) (*ast.Document, error) {
	return parser.NewParser().WithCorpusLoader(loader).Parse(path)
}

// ParseBytes parses a definitions document held in memory.
func ParseBytes(data []byte, sourcePath string, loader corpus.Loader) (*ast.Document, error) {
	return parser.NewParser().WithCorpusLoader(loader).ParseBytes(data, sourcePath)
}

// Lint parses a definitions document and runs the validator over it.
// Parse errors are returned as err; lint findings never are.
func Lint(path string, loader corpus.Loader) (*ast.Document, []*grammarerrors.Error, error) {
	doc, err := Parse(path, loader)
	if err != nil {
		return nil, nil, err
	}
	return doc, validator.NewValidator().Findings(doc), nil
}

// LintBytes is Lint for a document held in memory.
func LintBytes(data []byte, sourcePath string, loader corpus.Loader) (*ast.Document, []*grammarerrors.Error, error) {
	doc, err := ParseBytes(data, sourcePath, loader)
	if err != nil {
		return nil, nil, err
	}
	return doc, validator.NewValidator().Findings(doc), nil
}
