package diagfmt

import (
	"strings"
	"testing"

	"quill/internal/diag"
	"quill/internal/source"
)

func TestPrettyPlain(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.ql", []byte("type A = missing;\n"))

	bag := diag.NewBag(8)
	bag.Add(diag.NewError(diag.DeclUnresolvedType,
		source.Span{File: id, Start: 9, End: 16},
		"type \"missing\" is not declared"))

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{ShowSource: true, ShowNotes: true})
	out := sb.String()

	if !strings.Contains(out, "a.ql:1:10: error[DECL3011]: type \"missing\" is not declared") {
		t.Errorf("missing header line:\n%s", out)
	}
	if !strings.Contains(out, "type A = missing;") {
		t.Errorf("missing source line:\n%s", out)
	}
	// Nine columns of prefix, then a caret spanning "missing".
	if !strings.Contains(out, "    "+strings.Repeat(" ", 9)+"^~~~~~~\n") {
		t.Errorf("caret misaligned:\n%s", out)
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.ql", []byte("const k: Smi = 1;\nconst k: Smi = 2;\n"))

	bag := diag.NewBag(8)
	bag.Add(diag.NewError(diag.DeclDuplicateSymbol,
		source.Span{File: id, Start: 24, End: 25},
		"constant k is declared more than once in this scope").
		WithNote(source.Span{File: id, Start: 6, End: 7}, "k first declared here"))

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{ShowNotes: true})
	out := sb.String()
	if !strings.Contains(out, "note: k first declared here (a.ql:1:7)") {
		t.Errorf("note missing:\n%s", out)
	}
}

func TestPrettyWithoutFileSet(t *testing.T) {
	bag := diag.NewBag(8)
	bag.Add(diag.NewError(diag.IOReadFailed, source.Span{}, "failed to read file"))

	var sb strings.Builder
	Pretty(&sb, bag, nil, PrettyOpts{})
	if !strings.Contains(sb.String(), "failed to read file") {
		t.Errorf("message lost:\n%s", sb.String())
	}
}
