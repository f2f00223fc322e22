package generator

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"mercator-hq/slotgen/pkg/grammar/ast"
	grammarerrors "mercator-hq/slotgen/pkg/grammar/errors"
	"mercator-hq/slotgen/pkg/grammar/parser"
)

// pcgStream is the second PCG state word for seeded engines.
const pcgStream = 0x9e3779b97f4a7c15

// Engine generates text from the templates of one definitions document.
//
// The engine owns its slots and templates for its whole lifetime; templates refer
// to slots by SlotID, so templates sharing a slot share its depletion state.
// An Engine is not safe for concurrent use.
type Engine struct {
	doc *ast.Document

	slots     []*Slot
	slotIndex map[string]SlotID

	templates     []*Template
	templateIndex map[string]int

	rng      *rand.Rand
	seed     int64
	seeded   bool
	logger   *slog.Logger
	observer Observer
}

// New reads and parses the definitions document at path and builds an engine.
// Any parse error aborts construction.
func New(path string, opts ...Option) (*Engine, error) {
	o := applyOptions(opts)

	doc, err := parser.NewParser().WithCorpusLoader(o.loader).Parse(path)
	if err != nil {
		return nil, err
	}
	return build(doc, o)
}

// NewFromBytes builds an engine from a definitions document held in memory.
// sourcePath names the document in error messages.
func NewFromBytes(data []byte, sourcePath string, opts ...Option) (*Engine, error) {
	o := applyOptions(opts)

	if sourcePath == "" {
		sourcePath = "memory://definitions"
	}
	doc, err := parser.NewParser().WithCorpusLoader(o.loader).ParseBytes(data, sourcePath)
	if err != nil {
		return nil, err
	}
	return build(doc, o)
}

// NewFromDocument builds an engine from an already parsed document.
// The corpus loader option is unused since corpora were resolved while parsing.
func NewFromDocument(doc *ast.Document, opts ...Option) (*Engine, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}
	for _, def := range doc.Slots {
		if len(def.Values) == 0 {
			return nil, grammarerrors.NewMalformedError("Slot definition expands to no values", def.Name, def.Location)
		}
	}
	for _, t := range doc.Templates {
		for _, e := range t.Elements {
			if e.IsSlot() && (e.SlotIndex < 0 || e.SlotIndex >= len(doc.Slots)) {
				return nil, fmt.Errorf("template %q references slot index %d out of range", t.Name, e.SlotIndex)
			}
		}
	}
	return build(doc, applyOptions(opts))
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// build binds the document's slots into the arena and its templates to arena indices.
// Slot order in the document defines SlotIDs.
func build(doc *ast.Document, o *options) (*Engine, error) {
	e := &Engine{
		doc:           doc,
		slots:         make([]*Slot, len(doc.Slots)),
		slotIndex:     make(map[string]SlotID, len(doc.Slots)),
		templates:     make([]*Template, len(doc.Templates)),
		templateIndex: make(map[string]int, len(doc.Templates)),
		seed:          o.seed,
		seeded:        o.seeded,
		logger:        o.logger.With("component", "generator"),
		observer:      o.observer,
	}

	if o.seeded {
		e.rng = rand.New(rand.NewPCG(uint64(o.seed), pcgStream))
	} else {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	for i, def := range doc.Slots {
		slot, err := NewSlot(def.Name, def.Values)
		if err != nil {
			return nil, err
		}
		slot.onDraw = e.observer.ObserveDraw
		slot.onRefill = e.refilled
		e.slots[i] = slot
		e.slotIndex[def.Name] = SlotID(i)
	}

	for i, def := range doc.Templates {
		elements := make([]Element, len(def.Elements))
		for j, el := range def.Elements {
			if el.IsSlot() {
				elements[j] = Element{Kind: ast.ElementSlot, Slot: SlotID(el.SlotIndex)}
			} else {
				elements[j] = Element{Kind: ast.ElementLiteral, Text: el.Text}
			}
		}
		e.templates[i] = NewTemplate(def.Name, def.Body, elements)
		e.templateIndex[def.Name] = i
	}

	e.logger.Info("engine ready",
		"source", doc.Path,
		"slots", len(e.slots),
		"templates", len(e.templates),
		"seeded", e.seeded,
	)

	return e, nil
}

func (e *Engine) refilled(slot string) {
	e.logger.Debug("slot refilled", "slot", slot)
	e.observer.ObserveRefill(slot)
}

// Generate produces one output from the named template.
// An unknown name fails with an undefined template error listing every template.
func (e *Engine) Generate(name string) (string, error) {
	start := time.Now()

	i, ok := e.templateIndex[name]
	if !ok {
		err := grammarerrors.NewUndefinedTemplateError(name, e.TemplateNames())
		e.observer.ObserveGeneration(name, time.Since(start), err)
		return "", err
	}

	out := e.templates[i].Generate(e.slots, e.rng)
	e.observer.ObserveGeneration(name, time.Since(start), nil)
	return out, nil
}

// GenerateN produces n outputs from the named template, one after another.
func (e *Engine) GenerateN(name string, n int) ([]string, error) {
	if n < 1 {
		return nil, fmt.Errorf("count must be at least 1, got %d", n)
	}

	outputs := make([]string, 0, n)
	for range n {
		out, err := e.Generate(name)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

// TemplateNames returns the template names in definition order.
func (e *Engine) TemplateNames() []string {
	names := make([]string, len(e.templates))
	for i, t := range e.templates {
		names[i] = t.name
	}
	return names
}

// SlotNames returns the slot names in definition order.
func (e *Engine) SlotNames() []string {
	names := make([]string, len(e.slots))
	for i, s := range e.slots {
		names[i] = s.name
	}
	return names
}

// Slot returns the named slot.
func (e *Engine) Slot(name string) (*Slot, bool) {
	id, ok := e.slotIndex[name]
	if !ok {
		return nil, false
	}
	return e.slots[id], true
}

// SlotByID returns the slot with the given id.
func (e *Engine) SlotByID(id SlotID) (*Slot, bool) {
	if id < 0 || int(id) >= len(e.slots) {
		return nil, false
	}
	return e.slots[id], true
}

// Template returns the named template.
func (e *Engine) Template(name string) (*Template, bool) {
	i, ok := e.templateIndex[name]
	if !ok {
		return nil, false
	}
	return e.templates[i], true
}

// Document returns the parsed document the engine was built from.
func (e *Engine) Document() *ast.Document {
	return e.doc
}

// Seed returns the seed and whether the engine was seeded.
func (e *Engine) Seed() (int64, bool) {
	return e.seed, e.seeded
}
