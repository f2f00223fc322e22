package parser

import (
	"fmt"
	"os"

	"mercator-hq/slotgen/pkg/corpus"
	"mercator-hq/slotgen/pkg/grammar/ast"
	grammarerrors "mercator-hq/slotgen/pkg/grammar/errors"
)

// Parser parses definitions documents into ASTs.
// Parsing is fail-fast: the first error aborts and no partial document is returned.
type Parser struct {
	corpusLoader corpus.Loader
	maxFileSize  int64 // Maximum document size in bytes (default: 10MB)
}

// NewParser creates a new parser with default configuration.
// Corpora are loaded from the "corpora" directory relative to the working directory.
func NewParser() *Parser {
	return &Parser{
		corpusLoader: corpus.NewDirLoader(corpus.DefaultDir),
		maxFileSize:  10 * 1024 * 1024, // 10MB
	}
}

// WithCorpusLoader sets the loader used to resolve $name corpus references.
func (p *Parser) WithCorpusLoader(loader corpus.Loader) *Parser {
	if loader != nil {
		p.corpusLoader = loader
	}
	return p
}

// WithMaxFileSize sets the maximum document size limit.
func (p *Parser) WithMaxFileSize(size int64) *Parser {
	p.maxFileSize = size
	return p
}

// Parse reads and parses the definitions document at path.
func (p *Parser) Parse(path string) (*ast.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, grammarerrors.NewResourceError(path, ast.Location{File: path}, err)
	}
	if info.Size() > p.maxFileSize {
		return nil, grammarerrors.NewResourceError(path, ast.Location{File: path},
			fmt.Errorf("file size %d exceeds maximum %d bytes", info.Size(), p.maxFileSize))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, grammarerrors.NewResourceError(path, ast.Location{File: path}, err)
	}

	return p.ParseBytes(data, path)
}

// ParseBytes parses a definitions document held in memory.
// sourcePath is used in error locations only.
func (p *Parser) ParseBytes(data []byte, sourcePath string) (*ast.Document, error) {
	if int64(len(data)) > p.maxFileSize {
		return nil, grammarerrors.NewResourceError(sourcePath, ast.Location{File: sourcePath},
			fmt.Errorf("data size %d exceeds maximum %d bytes", len(data), p.maxFileSize))
	}

	src := string(data)
	doc, err := p.parse(src, sourcePath)
	if err != nil {
		return nil, grammarerrors.WithContext(err, src)
	}
	return doc, nil
}

// parse locates and parses the slot section before the template section is
// located, since template references resolve against the finished slot list.
func (p *Parser) parse(src, path string) (*ast.Document, error) {
	slotSection, err := locateSection(src, path, BeginSlots, EndSlots)
	if err != nil {
		return nil, err
	}
	slots, err := p.parseSlots(slotSection)
	if err != nil {
		return nil, err
	}

	templateSection, err := locateSection(src, path, BeginTemplates, EndTemplates)
	if err != nil {
		return nil, err
	}
	templates, err := parseTemplates(templateSection, slots)
	if err != nil {
		return nil, err
	}

	return &ast.Document{
		Path:      path,
		Slots:     slots,
		Templates: templates,
	}, nil
}
