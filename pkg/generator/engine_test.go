package generator

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"mercator-hq/slotgen/pkg/corpus"
	"mercator-hq/slotgen/pkg/grammar/ast"
	grammarerrors "mercator-hq/slotgen/pkg/grammar/errors"
)

const animalDocument = `<BEGIN SLOTS>
ANIMAL -> cat,dog
<END SLOTS>
<BEGIN TEMPLATES>
SENTENCE -> The <ANIMAL> ran.
<END TEMPLATES>
`

func writeDocument(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "definitions.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNew_SeededEndToEnd(t *testing.T) {
	path := writeDocument(t, animalDocument)

	run := func() []string {
		engine, err := New(path, WithSeed(1))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		var out []string
		for range 20 {
			s, err := engine.Generate("SENTENCE")
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			out = append(out, s)
		}
		return out
	}

	first := run()
	for _, s := range first {
		if s != "The cat ran." && s != "The dog ran." {
			t.Fatalf("Generate() = %q, want The cat ran. or The dog ran.", s)
		}
	}
	if diff := cmp.Diff(first, run()); diff != "" {
		t.Errorf("same seed produced different sequences (-first +second):\n%s", diff)
	}
}

func TestNew_Unseeded(t *testing.T) {
	engine, err := NewFromBytes([]byte(animalDocument), "")
	if err != nil {
		t.Fatalf("NewFromBytes() error = %v", err)
	}
	if _, seeded := engine.Seed(); seeded {
		t.Error("Seed() reports seeded for an unseeded engine")
	}
	if engine.Document().Path != "memory://definitions" {
		t.Errorf("Document().Path = %q, want memory://definitions", engine.Document().Path)
	}

	out, err := engine.Generate("SENTENCE")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if out != "The cat ran." && out != "The dog ran." {
		t.Errorf("Generate() = %q", out)
	}
}

func TestEngine_GenerateEveryTemplate(t *testing.T) {
	src := `<BEGIN SLOTS>
# a slot may mix ordinary and single-use values
HERO -> knight,wizard\s,thief\s
PLACE -> $places
TIME -> dawn\s,dusk\s
<END SLOTS>
<BEGIN TEMPLATES>
OPENING -> At <TIME> the <HERO> entered the <PLACE>.
CLOSING -> The <HERO> left the <PLACE> at <TIME>.
PLAIN -> The end.
<END TEMPLATES>
`
	loader := corpus.NewMemoryLoader(map[string][]string{"places": {"forest", "castle", "cave"}})
	engine, err := NewFromBytes([]byte(src), "story.txt", WithSeed(5), WithCorpusLoader(loader))
	if err != nil {
		t.Fatalf("NewFromBytes() error = %v", err)
	}

	if diff := cmp.Diff([]string{"OPENING", "CLOSING", "PLAIN"}, engine.TemplateNames()); diff != "" {
		t.Errorf("TemplateNames() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"HERO", "PLACE", "TIME"}, engine.SlotNames()); diff != "" {
		t.Errorf("SlotNames() mismatch (-want +got):\n%s", diff)
	}

	for range 10 {
		for _, name := range engine.TemplateNames() {
			out, err := engine.Generate(name)
			if err != nil {
				t.Fatalf("Generate(%q) error = %v", name, err)
			}
			if strings.ContainsAny(out, "<>") || strings.Contains(out, `\s`) {
				t.Errorf("Generate(%q) = %q, contains unexpanded markup", name, out)
			}
		}
	}

	if out, _ := engine.Generate("PLAIN"); out != "The end." {
		t.Errorf("Generate(PLAIN) = %q, want %q", out, "The end.")
	}
}

func TestEngine_CorpusExpansion(t *testing.T) {
	src := "<BEGIN SLOTS>\nCOLOR -> $colors\n<END SLOTS>\n<BEGIN TEMPLATES>\nT -> <COLOR>\n<END TEMPLATES>"
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "colors"), []byte("red\ngreen\nblue\n"), 0644); err != nil {
		t.Fatal(err)
	}

	engine, err := NewFromBytes([]byte(src), "", WithCorpusLoader(corpus.NewDirLoader(dir)))
	if err != nil {
		t.Fatalf("NewFromBytes() error = %v", err)
	}

	slot, ok := engine.Slot("COLOR")
	if !ok {
		t.Fatal("Slot(COLOR) not found")
	}
	if diff := cmp.Diff([]string{"red", "green", "blue"}, slot.Available()); diff != "" {
		t.Errorf("COLOR values mismatch (-want +got):\n%s", diff)
	}
	if corpora := engine.Document().Slots[0].Corpora; len(corpora) != 1 || corpora[0] != "colors" {
		t.Errorf("Corpora = %v, want [colors]", corpora)
	}
}

func TestEngine_SharedSlotDepletion(t *testing.T) {
	src := "<BEGIN SLOTS>\nS -> a\\s,b\\s\n<END SLOTS>\n<BEGIN TEMPLATES>\nFIRST -> <S>\nSECOND -> <S>\n<END TEMPLATES>"

	for seed := range int64(20) {
		engine, err := NewFromBytes([]byte(src), "", WithSeed(seed))
		if err != nil {
			t.Fatalf("NewFromBytes() error = %v", err)
		}

		first, _ := engine.Generate("FIRST")
		second, _ := engine.Generate("SECOND")
		if first == second {
			t.Errorf("seed %d: FIRST and SECOND both drew %q from a shared single-use slot", seed, first)
		}

		t1, _ := engine.Template("FIRST")
		t2, _ := engine.Template("SECOND")
		if t1.SlotIDs()[0] != t2.SlotIDs()[0] {
			t.Errorf("templates bound to different slots: %v, %v", t1.SlotIDs(), t2.SlotIDs())
		}
	}
}

func TestEngine_UndefinedTemplate(t *testing.T) {
	src := "<BEGIN SLOTS>\nA -> a\n<END SLOTS>\n<BEGIN TEMPLATES>\nGREETING -> hi <A>\nFAREWELL -> bye <A>\n<END TEMPLATES>"
	engine, err := NewFromBytes([]byte(src), "")
	if err != nil {
		t.Fatalf("NewFromBytes() error = %v", err)
	}

	_, err = engine.Generate("GREETNG")
	if !errors.Is(err, grammarerrors.ErrUndefinedTemplate) {
		t.Fatalf("Generate() error = %v, want ErrUndefinedTemplate", err)
	}
	for _, want := range []string{"'GREETNG'", "These templates are defined: GREETING, FAREWELL", "Did you mean 'GREETING'?"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not contain %q", err.Error(), want)
		}
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		sentinel error
		contains string
	}{
		{
			name:     "missing end templates",
			src:      "<BEGIN SLOTS>\nA -> a\n<END SLOTS>\n<BEGIN TEMPLATES>\nT -> <A>\n",
			sentinel: grammarerrors.ErrFormat,
			contains: "<END TEMPLATES>",
		},
		{
			name:     "duplicate slot",
			src:      "<BEGIN SLOTS>\nA -> a\nA -> b\n<END SLOTS>\n<BEGIN TEMPLATES>\n<END TEMPLATES>",
			sentinel: grammarerrors.ErrDuplicate,
			contains: "'A'",
		},
		{
			name:     "duplicate template",
			src:      "<BEGIN SLOTS>\nA -> a\n<END SLOTS>\n<BEGIN TEMPLATES>\nT -> <A>\nT -> <A>\n<END TEMPLATES>",
			sentinel: grammarerrors.ErrDuplicate,
			contains: "'T'",
		},
		{
			name:     "undefined slot",
			src:      "<BEGIN SLOTS>\nA -> a\n<END SLOTS>\n<BEGIN TEMPLATES>\nT -> x <B> y\n<END TEMPLATES>",
			sentinel: grammarerrors.ErrUndefinedSlot,
			contains: "Template definition 'x <B> y' references an undefined slot 'B'",
		},
		{
			name:     "malformed slot",
			src:      "<BEGIN SLOTS>\nA a\n<END SLOTS>\n<BEGIN TEMPLATES>\n<END TEMPLATES>",
			sentinel: grammarerrors.ErrMalformed,
			contains: "'A a'",
		},
		{
			name:     "missing corpus",
			src:      "<BEGIN SLOTS>\nA -> $nope\n<END SLOTS>\n<BEGIN TEMPLATES>\n<END TEMPLATES>",
			sentinel: grammarerrors.ErrResource,
			contains: "'nope'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := New(writeDocument(t, tt.src), WithCorpusLoader(corpus.NewMemoryLoader(nil)))
			if engine != nil {
				t.Error("New() returned a partial engine")
			}
			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("New() error = %v, want %v", err, tt.sentinel)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.contains)
			}
		})
	}
}

func TestNew_MissingDocument(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, grammarerrors.ErrResource) {
		t.Errorf("New() error = %v, want ErrResource", err)
	}
}

func TestEngine_GenerateN(t *testing.T) {
	engine, err := NewFromBytes([]byte(animalDocument), "", WithSeed(9))
	if err != nil {
		t.Fatal(err)
	}

	out, err := engine.GenerateN("SENTENCE", 5)
	if err != nil {
		t.Fatalf("GenerateN() error = %v", err)
	}
	if len(out) != 5 {
		t.Errorf("GenerateN() returned %d outputs, want 5", len(out))
	}

	if _, err := engine.GenerateN("SENTENCE", 0); err == nil {
		t.Error("GenerateN(0) error = nil, want error")
	}
	if _, err := engine.GenerateN("MISSING", 2); !errors.Is(err, grammarerrors.ErrUndefinedTemplate) {
		t.Errorf("GenerateN(MISSING) error = %v, want ErrUndefinedTemplate", err)
	}
}

type recordingObserver struct {
	mu          sync.Mutex
	draws       map[string]int
	refills     map[string]int
	generations []string
	failures    int
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{draws: map[string]int{}, refills: map[string]int{}}
}

func (o *recordingObserver) ObserveDraw(slot string, singleUse bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.draws[slot]++
}

func (o *recordingObserver) ObserveRefill(slot string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.refills[slot]++
}

func (o *recordingObserver) ObserveGeneration(template string, duration time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.generations = append(o.generations, template)
	if err != nil {
		o.failures++
	}
}

func TestEngine_Observer(t *testing.T) {
	src := "<BEGIN SLOTS>\nA -> x\\s,y\\s\nB -> z\n<END SLOTS>\n<BEGIN TEMPLATES>\nT -> <A><A><B>\n<END TEMPLATES>"
	obs := newRecordingObserver()

	engine, err := NewFromBytes([]byte(src), "", WithSeed(1), WithObserver(obs))
	if err != nil {
		t.Fatal(err)
	}

	out, err := engine.Generate("T")
	if err != nil {
		t.Fatal(err)
	}
	if out != "xyz" && out != "yxz" {
		t.Errorf("Generate() = %q, want xyz or yxz", out)
	}
	_, _ = engine.Generate("NOPE")

	if obs.draws["A"] != 2 || obs.draws["B"] != 1 {
		t.Errorf("draws = %v, want A:2 B:1", obs.draws)
	}
	if obs.refills["A"] != 1 {
		t.Errorf("refills = %v, want A:1", obs.refills)
	}
	if diff := cmp.Diff([]string{"T", "NOPE"}, obs.generations); diff != "" {
		t.Errorf("generations mismatch (-want +got):\n%s", diff)
	}
	if obs.failures != 1 {
		t.Errorf("failures = %d, want 1", obs.failures)
	}
}

func TestNewFromDocument(t *testing.T) {
	base, err := NewFromBytes([]byte(animalDocument), "")
	if err != nil {
		t.Fatal(err)
	}

	a, err := NewFromDocument(base.Document(), WithSeed(3))
	if err != nil {
		t.Fatalf("NewFromDocument() error = %v", err)
	}
	b, _ := NewFromDocument(base.Document(), WithSeed(3))

	outA, _ := a.GenerateN("SENTENCE", 10)
	outB, _ := b.GenerateN("SENTENCE", 10)
	if diff := cmp.Diff(outA, outB); diff != "" {
		t.Errorf("engines from one document diverged (-a +b):\n%s", diff)
	}

	if _, err := NewFromDocument(nil); err == nil {
		t.Error("NewFromDocument(nil) error = nil, want error")
	}
}

func TestNewFromDocument_EmptySlot(t *testing.T) {
	doc := &ast.Document{
		Slots: []*ast.SlotDef{{Name: "A", Location: ast.Location{Line: 2}}},
		Templates: []*ast.TemplateDef{{
			Name:     "T",
			Elements: []ast.Element{ast.SlotRef(0, "A", ast.Location{})},
		}},
	}

	engine, err := NewFromDocument(doc)
	if !errors.Is(err, grammarerrors.ErrMalformed) {
		t.Fatalf("NewFromDocument() error = %v, want malformed definition", err)
	}
	if engine != nil {
		t.Error("NewFromDocument() returned an engine for an empty slot")
	}
}

func TestEngine_Lookup(t *testing.T) {
	engine, err := NewFromBytes([]byte(animalDocument), "", WithSeed(2))
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := engine.Slot("NOPE"); ok {
		t.Error("Slot(NOPE) found")
	}
	if _, ok := engine.Template("NOPE"); ok {
		t.Error("Template(NOPE) found")
	}
	if _, ok := engine.SlotByID(5); ok {
		t.Error("SlotByID(5) found")
	}
	if s, ok := engine.SlotByID(0); !ok || s.Name() != "ANIMAL" {
		t.Errorf("SlotByID(0) = %v, %v", s, ok)
	}
	tmpl, ok := engine.Template("SENTENCE")
	if !ok {
		t.Fatal("Template(SENTENCE) not found")
	}
	if tmpl.Body() != "The <ANIMAL> ran." {
		t.Errorf("Body() = %q", tmpl.Body())
	}
	if len(tmpl.Elements()) != 3 {
		t.Errorf("len(Elements()) = %d, want 3", len(tmpl.Elements()))
	}
	if seed, seeded := engine.Seed(); !seeded || seed != 2 {
		t.Errorf("Seed() = %d, %v, want 2, true", seed, seeded)
	}
}
