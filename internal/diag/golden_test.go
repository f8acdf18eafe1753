package diag

import (
	"testing"

	"quill/internal/source"
)

func TestFormatGolden(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.ql", []byte("type A = missing;\ntype B = A;\n"))

	diags := []Diagnostic{
		New(SevWarning, DeclUnresolvedType, source.Span{File: id, Start: 18, End: 22}, "later line"),
		NewError(DeclUnresolvedType, source.Span{File: id, Start: 9, End: 16}, "type \"missing\" is not declared"),
	}

	got := FormatGolden(diags, fs, false)
	want := "a.ql:1:10: error[DECL3011]: type \"missing\" is not declared\n" +
		"a.ql:2:1: warning[DECL3011]: later line\n"
	if got != want {
		t.Errorf("FormatGolden:\n got %q\nwant %q", got, want)
	}
}

func TestFormatGoldenNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.ql", []byte("const k: Smi = 1;\nconst k: Smi = 2;\n"))

	d := NewError(DeclDuplicateSymbol, source.Span{File: id, Start: 24, End: 25}, "constant k is declared more than once in this scope").
		WithNote(source.Span{File: id, Start: 6, End: 7}, "k first declared here")

	got := FormatGolden([]Diagnostic{d}, fs, true)
	want := "a.ql:1:7: note[DECL3010]: k first declared here\n" +
		"a.ql:2:7: error[DECL3010]: constant k is declared more than once in this scope\n"
	if got != want {
		t.Errorf("FormatGolden notes:\n got %q\nwant %q", got, want)
	}
}

func TestFormatGoldenSanitizesNewlines(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.ql", []byte("x\n"))
	d := NewError(UnknownCode, source.Span{File: id, Start: 0, End: 1}, "line one\nline two")
	got := FormatGolden([]Diagnostic{d}, fs, false)
	want := "a.ql:1:1: error[E0000]: line one line two\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBagLimitAndSort(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(NewError(UnknownCode, source.Span{Start: 5, End: 6}, "b")) {
		t.Fatal("first Add rejected")
	}
	if !bag.Add(NewError(UnknownCode, source.Span{Start: 1, End: 2}, "a")) {
		t.Fatal("second Add rejected")
	}
	if bag.Add(NewError(UnknownCode, source.Span{}, "dropped")) {
		t.Error("Add over the limit accepted")
	}
	bag.Sort()
	items := bag.Items()
	if items[0].Message != "a" || items[1].Message != "b" {
		t.Errorf("sort order wrong: %v", items)
	}
	if !bag.HasErrors() {
		t.Error("HasErrors = false with errors present")
	}
}
