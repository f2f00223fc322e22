package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"mercator-hq/slotgen/pkg/corpus"
	"mercator-hq/slotgen/pkg/grammar/ast"
	grammarerrors "mercator-hq/slotgen/pkg/grammar/errors"
)

const basicDocument = `<BEGIN SLOTS>
ANIMAL -> cat,dog
<END SLOTS>
<BEGIN TEMPLATES>
SENTENCE -> The <ANIMAL> ran.
<END TEMPLATES>
`

func newTestParser(corpora map[string][]string) *Parser {
	return NewParser().WithCorpusLoader(corpus.NewMemoryLoader(corpora))
}

func TestParser_ParseBytes_Basic(t *testing.T) {
	doc, err := newTestParser(nil).ParseBytes([]byte(basicDocument), "test.txt")
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}

	if len(doc.Slots) != 1 {
		t.Fatalf("len(Slots) = %d, want 1", len(doc.Slots))
	}
	slot := doc.Slots[0]
	if slot.Name != "ANIMAL" {
		t.Errorf("slot name = %q, want %q", slot.Name, "ANIMAL")
	}
	if diff := cmp.Diff([]string{"cat", "dog"}, slot.Values); diff != "" {
		t.Errorf("slot values mismatch (-want +got):\n%s", diff)
	}
	if slot.Location.Line != 2 {
		t.Errorf("slot line = %d, want 2", slot.Location.Line)
	}

	if len(doc.Templates) != 1 {
		t.Fatalf("len(Templates) = %d, want 1", len(doc.Templates))
	}
	tmpl := doc.Templates[0]
	if tmpl.Name != "SENTENCE" || tmpl.Body != "The <ANIMAL> ran." {
		t.Errorf("template = %q -> %q, want SENTENCE -> %q", tmpl.Name, tmpl.Body, "The <ANIMAL> ran.")
	}
	if tmpl.Location.Line != 5 {
		t.Errorf("template line = %d, want 5", tmpl.Location.Line)
	}

	want := []ast.Element{
		{Kind: ast.ElementLiteral, Text: "The "},
		{Kind: ast.ElementSlot, SlotIndex: 0, SlotName: "ANIMAL"},
		{Kind: ast.ElementLiteral, Text: " ran."},
	}
	ignoreLocation := cmp.FilterPath(func(p cmp.Path) bool {
		return p.Last().String() == ".Location"
	}, cmp.Ignore())
	if diff := cmp.Diff(want, tmpl.Elements, ignoreLocation); diff != "" {
		t.Errorf("elements mismatch (-want +got):\n%s", diff)
	}

	if got := tmpl.Elements[1].Location.Column; got != 17 {
		t.Errorf("slot reference column = %d, want 17", got)
	}
}

func TestParser_SlotValues(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{name: "plain", line: "A -> x,y,z", want: []string{"x", "y", "z"}},
		{name: "tokens not trimmed", line: "A -> x, y", want: []string{"x", " y"}},
		{name: "single-use marker kept", line: `A -> a\s,b\s,c`, want: []string{`a\s`, `b\s`, "c"}},
		{name: "field trimmed", line: "A ->    x,y   ", want: []string{"x", "y"}},
		{name: "tabs collapsed", line: "A ->\t\tx\t\t\ty", want: []string{"x\ty"}},
		{name: "leading whitespace", line: "   \tA -> x", want: []string{"x"}},
		{name: "empty token kept", line: "A -> x,,y", want: []string{"x", "", "y"}},
		{name: "corpus spliced in place", line: "A -> red,$colors,blue", want: []string{"red", "c1", "c2", "c3", "blue"}},
		{name: "padded corpus token is literal", line: "A -> red, $colors", want: []string{"red", " $colors"}},
	}

	corpora := map[string][]string{"colors": {"c1", "c2", "c3"}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "<BEGIN SLOTS>\n" + tt.line + "\n<END SLOTS>\n<BEGIN TEMPLATES>\n<END TEMPLATES>\n"
			doc, err := newTestParser(corpora).ParseBytes([]byte(src), "test.txt")
			if err != nil {
				t.Fatalf("ParseBytes() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, doc.Slots[0].Values); diff != "" {
				t.Errorf("values mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParser_CorpusReferencesRecorded(t *testing.T) {
	src := "<BEGIN SLOTS>\nA -> $colors,x,$animals\n<END SLOTS>\n<BEGIN TEMPLATES>\n<END TEMPLATES>"
	p := newTestParser(map[string][]string{
		"colors":  {"red"},
		"animals": {"cat", "dog"},
	})

	doc, err := p.ParseBytes([]byte(src), "test.txt")
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}
	if diff := cmp.Diff([]string{"colors", "animals"}, doc.Slots[0].Corpora); diff != "" {
		t.Errorf("Corpora mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"red", "x", "cat", "dog"}, doc.Slots[0].Values); diff != "" {
		t.Errorf("Values mismatch (-want +got):\n%s", diff)
	}
}

func TestParser_TemplateElements(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string // "lit:" or "slot:" prefixed
	}{
		{name: "only slot", body: "<A>", want: []string{"slot:A"}},
		{name: "adjacent slots", body: "<A><B>", want: []string{"slot:A", "slot:B"}},
		{name: "only literal", body: "hello world", want: []string{"lit:hello world"}},
		{name: "trailing literal", body: "<A>!", want: []string{"slot:A", "lit:!"}},
		{name: "stray close is literal", body: "a > b <A>", want: []string{"lit:a > b ", "slot:A"}},
		{name: "repeated slot", body: "<A> and <A>", want: []string{"slot:A", "lit: and ", "slot:A"}},
		{name: "escaped newline marker is literal", body: `<A>\n<B>`, want: []string{"slot:A", `lit:\n`, "slot:B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "<BEGIN SLOTS>\nA -> a\nB -> b\n<END SLOTS>\n<BEGIN TEMPLATES>\nT -> " + tt.body + "\n<END TEMPLATES>\n"
			doc, err := newTestParser(nil).ParseBytes([]byte(src), "test.txt")
			if err != nil {
				t.Fatalf("ParseBytes() error = %v", err)
			}

			var got []string
			for _, e := range doc.Templates[0].Elements {
				if e.IsSlot() {
					got = append(got, "slot:"+e.SlotName)
					if doc.Slots[e.SlotIndex].Name != e.SlotName {
						t.Errorf("element %q bound to slot %d (%s)", e.SlotName, e.SlotIndex, doc.Slots[e.SlotIndex].Name)
					}
				} else {
					got = append(got, "lit:"+e.Text)
				}
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("elements mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParser_CommentsAndLineNumbers(t *testing.T) {
	src := `# header comment outside sections
<BEGIN SLOTS>
  # indented comment

ANIMAL -> cat,dog
	COLOR -> red
<END SLOTS>

<BEGIN TEMPLATES>
# comment
SENTENCE -> The <COLOR> <ANIMAL>.
<END TEMPLATES>
`
	doc, err := newTestParser(nil).ParseBytes([]byte(src), "test.txt")
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}

	if diff := cmp.Diff([]string{"ANIMAL", "COLOR"}, doc.SlotNames()); diff != "" {
		t.Errorf("SlotNames() mismatch (-want +got):\n%s", diff)
	}
	if got := doc.Slots[0].Location.Line; got != 5 {
		t.Errorf("ANIMAL line = %d, want 5", got)
	}
	if got := doc.Slots[1].Location.Line; got != 6 {
		t.Errorf("COLOR line = %d, want 6", got)
	}
	if got := doc.Templates[0].Location.Line; got != 11 {
		t.Errorf("SENTENCE line = %d, want 11", got)
	}
}

func TestParser_CRLF(t *testing.T) {
	src := strings.ReplaceAll(basicDocument, "\n", "\r\n")
	doc, err := newTestParser(nil).ParseBytes([]byte(src), "test.txt")
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}
	if got := doc.Templates[0].Body; got != "The <ANIMAL> ran." {
		t.Errorf("Body = %q, want %q", got, "The <ANIMAL> ran.")
	}
	if diff := cmp.Diff([]string{"cat", "dog"}, doc.Slots[0].Values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		sentinel error
		contains []string
		line     int
	}{
		{
			name:     "missing begin slots",
			src:      "<END SLOTS>\n<BEGIN TEMPLATES>\n<END TEMPLATES>",
			sentinel: grammarerrors.ErrFormat,
			contains: []string{"missing '<BEGIN SLOTS>'"},
		},
		{
			name:     "missing end templates",
			src:      "<BEGIN SLOTS>\nA -> a\n<END SLOTS>\n<BEGIN TEMPLATES>\nT -> <A>\n",
			sentinel: grammarerrors.ErrFormat,
			contains: []string{"missing '<END TEMPLATES>'"},
		},
		{
			name:     "slot errors reported before missing template marker",
			src:      "<BEGIN SLOTS>\nA a\n<END SLOTS>\n<BEGIN TEMPLATES>\n",
			sentinel: grammarerrors.ErrMalformed,
			line:     2,
		},
		{
			name:     "misordered markers",
			src:      "<END SLOTS>\n<BEGIN SLOTS>\n<BEGIN TEMPLATES>\n<END TEMPLATES>",
			sentinel: grammarerrors.ErrFormat,
			contains: []string{"'<BEGIN SLOTS>' comes after '<END SLOTS>'"},
			line:     2,
		},
		{
			name:     "repeated marker",
			src:      "<BEGIN SLOTS>\n<END SLOTS>\n<BEGIN SLOTS>\n<END SLOTS>\n<BEGIN TEMPLATES>\n<END TEMPLATES>",
			sentinel: grammarerrors.ErrFormat,
			contains: []string{"appears 2 times"},
			line:     3,
		},
		{
			name:     "no delimiter",
			src:      "<BEGIN SLOTS>\nA a,b\n<END SLOTS>\n<BEGIN TEMPLATES>\n<END TEMPLATES>",
			sentinel: grammarerrors.ErrMalformed,
			contains: []string{"no '->' delimiter", "'A a,b'"},
			line:     2,
		},
		{
			name:     "too many delimiters",
			src:      "<BEGIN SLOTS>\nA -> a -> b\n<END SLOTS>\n<BEGIN TEMPLATES>\n<END TEMPLATES>",
			sentinel: grammarerrors.ErrMalformed,
			contains: []string{"too many '->' delimiters"},
			line:     2,
		},
		{
			name:     "empty slot name",
			src:      "<BEGIN SLOTS>\n  -> a\n<END SLOTS>\n<BEGIN TEMPLATES>\n<END TEMPLATES>",
			sentinel: grammarerrors.ErrMalformed,
			contains: []string{"Slot definition includes no name"},
		},
		{
			name:     "empty slot values",
			src:      "<BEGIN SLOTS>\nA ->   \n<END SLOTS>\n<BEGIN TEMPLATES>\n<END TEMPLATES>",
			sentinel: grammarerrors.ErrMalformed,
			contains: []string{"Slot definition includes no values"},
		},
		{
			name:     "template without delimiter",
			src:      "<BEGIN SLOTS>\nA -> a\n<END SLOTS>\n<BEGIN TEMPLATES>\nT <A>\n<END TEMPLATES>",
			sentinel: grammarerrors.ErrMalformed,
			contains: []string{"Malformed template definition"},
			line:     5,
		},
		{
			name:     "empty template body",
			src:      "<BEGIN SLOTS>\nA -> a\n<END SLOTS>\n<BEGIN TEMPLATES>\nT ->\n<END TEMPLATES>",
			sentinel: grammarerrors.ErrMalformed,
			contains: []string{"Template definition includes no values"},
		},
		{
			name:     "duplicate slot",
			src:      "<BEGIN SLOTS>\nA -> a\nB -> b\nA -> c\n<END SLOTS>\n<BEGIN TEMPLATES>\n<END TEMPLATES>",
			sentinel: grammarerrors.ErrDuplicate,
			contains: []string{"Multiple slots with the name 'A'"},
			line:     4,
		},
		{
			name:     "duplicate template",
			src:      "<BEGIN SLOTS>\nA -> a\n<END SLOTS>\n<BEGIN TEMPLATES>\nT -> <A>\nT -> x\n<END TEMPLATES>",
			sentinel: grammarerrors.ErrDuplicate,
			contains: []string{"Multiple templates with the name 'T'"},
			line:     6,
		},
		{
			name:     "undefined slot",
			src:      "<BEGIN SLOTS>\nANIMAL -> cat\n<END SLOTS>\n<BEGIN TEMPLATES>\nT -> A <ANIMLA> ran\n<END TEMPLATES>",
			sentinel: grammarerrors.ErrUndefinedSlot,
			contains: []string{"'A <ANIMLA> ran'", "undefined slot 'ANIMLA'", "Did you mean 'ANIMAL'?"},
			line:     5,
		},
		{
			name:     "unterminated reference",
			src:      "<BEGIN SLOTS>\nA -> a\n<END SLOTS>\n<BEGIN TEMPLATES>\nT -> x <A\n<END TEMPLATES>",
			sentinel: grammarerrors.ErrMalformed,
			contains: []string{"Unterminated slot reference", "'x <A'"},
			line:     5,
		},
		{
			name:     "missing corpus",
			src:      "<BEGIN SLOTS>\nA -> $nope\n<END SLOTS>\n<BEGIN TEMPLATES>\n<END TEMPLATES>",
			sentinel: grammarerrors.ErrResource,
			contains: []string{"corpus 'nope'", "slot 'A'"},
			line:     2,
		},
		{
			name:     "empty expansion",
			src:      "<BEGIN SLOTS>\nA -> $empty\n<END SLOTS>\n<BEGIN TEMPLATES>\n<END TEMPLATES>",
			sentinel: grammarerrors.ErrMalformed,
			contains: []string{"expands to no values"},
			line:     2,
		},
	}

	corpora := map[string][]string{"empty": {}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := newTestParser(corpora).ParseBytes([]byte(tt.src), "test.txt")
			if err == nil {
				t.Fatal("ParseBytes() error = nil, want error")
			}
			if doc != nil {
				t.Error("ParseBytes() returned a partial document")
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("ParseBytes() error = %v, want %v", err, tt.sentinel)
			}
			for _, s := range tt.contains {
				if !strings.Contains(err.Error(), s) {
					t.Errorf("error %q does not contain %q", err.Error(), s)
				}
			}
			if tt.line > 0 {
				gerr, ok := grammarerrors.As(err)
				if !ok {
					t.Fatalf("error %T is not a grammar error", err)
				}
				if gerr.Location.Line != tt.line {
					t.Errorf("error line = %d, want %d", gerr.Location.Line, tt.line)
				}
			}
		})
	}
}

func TestParser_UnterminatedReferenceColumn(t *testing.T) {
	src := "<BEGIN SLOTS>\nA -> a\n<END SLOTS>\n<BEGIN TEMPLATES>\n  T -> x <A\n<END TEMPLATES>"
	_, err := newTestParser(nil).ParseBytes([]byte(src), "test.txt")

	gerr, ok := grammarerrors.As(err)
	if !ok {
		t.Fatalf("error %v is not a grammar error", err)
	}
	if gerr.Location.Column != 10 {
		t.Errorf("column = %d, want 10", gerr.Location.Column)
	}
	if !strings.Contains(gerr.Context, "->") {
		t.Errorf("context %q does not mark the error line", gerr.Context)
	}
}

func TestParser_MissingCorpusUnwraps(t *testing.T) {
	src := "<BEGIN SLOTS>\nA -> $nope\n<END SLOTS>\n<BEGIN TEMPLATES>\n<END TEMPLATES>"
	_, err := newTestParser(nil).ParseBytes([]byte(src), "test.txt")
	if !errors.Is(err, corpus.ErrNotFound) {
		t.Errorf("error = %v, want it to wrap corpus.ErrNotFound", err)
	}
}

func TestParser_Parse(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "definitions.txt")
	if err := os.WriteFile(path, []byte(basicDocument), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := newTestParser(nil).Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.Path != path {
		t.Errorf("Path = %q, want %q", doc.Path, path)
	}
	if doc.Templates[0].Location.File != path {
		t.Errorf("template file = %q, want %q", doc.Templates[0].Location.File, path)
	}

	_, err = newTestParser(nil).Parse(filepath.Join(dir, "missing.txt"))
	if !errors.Is(err, grammarerrors.ErrResource) {
		t.Errorf("Parse(missing) error = %v, want ErrResource", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Parse(missing) error = %v, want it to wrap os.ErrNotExist", err)
	}
}

func TestParser_DirLoaderCorpora(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "colors"), []byte("red\ngreen\nblue\n"), 0644); err != nil {
		t.Fatal(err)
	}

	src := "<BEGIN SLOTS>\nC -> $colors\n<END SLOTS>\n<BEGIN TEMPLATES>\n<END TEMPLATES>"
	doc, err := NewParser().WithCorpusLoader(corpus.NewDirLoader(dir)).ParseBytes([]byte(src), "test.txt")
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}
	if diff := cmp.Diff([]string{"red", "green", "blue"}, doc.Slots[0].Values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestParser_MaxFileSize(t *testing.T) {
	_, err := NewParser().WithMaxFileSize(10).ParseBytes([]byte(basicDocument), "test.txt")
	if !errors.Is(err, grammarerrors.ErrResource) {
		t.Errorf("ParseBytes() error = %v, want ErrResource", err)
	}
}
