package source

import "testing"

func TestFileSetPositions(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.ql", []byte("type A = B;\ntype B = int32;\n"))

	f := fs.Get(id)
	if f.Flags&FileVirtual == 0 {
		t.Error("virtual file lost its flag")
	}

	// "type B" starts at offset 12, line 2 col 1.
	start, _ := fs.Resolve(Span{File: id, Start: 12, End: 16})
	if start.Line != 2 || start.Col != 1 {
		t.Errorf("Resolve = %d:%d, want 2:1", start.Line, start.Col)
	}

	if got := fs.Position(Span{File: id, Start: 12, End: 16}); got != "test.ql:2:1" {
		t.Errorf("Position = %q, want test.ql:2:1", got)
	}
}

func TestFileSetLineBoundaries(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("b.ql", []byte("ab\ncd\n"))
	f := fs.Get(id)

	cases := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 1, 3}, // the newline itself belongs to line 1
		{3, 2, 1},
		{5, 2, 3},
	}
	for _, c := range cases {
		got := toLineCol(f.LineIdx, c.off)
		if got.Line != c.line || got.Col != c.col {
			t.Errorf("toLineCol(%d) = %d:%d, want %d:%d", c.off, got.Line, got.Col, c.line, c.col)
		}
	}
}

func TestFileSetGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("c.ql", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	if got := f.GetLine(1); got != "first" {
		t.Errorf("GetLine(1) = %q", got)
	}
	if got := f.GetLine(2); got != "second" {
		t.Errorf("GetLine(2) = %q", got)
	}
	if got := f.GetLine(3); got != "third" {
		t.Errorf("GetLine(3) = %q", got)
	}
	if got := f.GetLine(4); got != "" {
		t.Errorf("GetLine(4) = %q, want empty", got)
	}
}

func TestFileSetCRLF(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("d.ql", []byte("a\nb\n"), FileNormalizedCRLF)
	if fs.Get(id).Flags&FileNormalizedCRLF == 0 {
		t.Error("CRLF flag not preserved")
	}
	if fs.Len() != 1 {
		t.Errorf("Len = %d, want 1", fs.Len())
	}
	if _, ok := fs.GetByPath("d.ql"); !ok {
		t.Error("GetByPath missed a loaded file")
	}
}
