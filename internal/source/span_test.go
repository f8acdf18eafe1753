package source

import "testing"

func TestSpanBasics(t *testing.T) {
	s := Span{File: 1, Start: 4, End: 9}
	if s.Empty() {
		t.Error("non-empty span reported empty")
	}
	if s.Len() != 5 {
		t.Errorf("Len = %d, want 5", s.Len())
	}
	if got := s.String(); got != "1:4-9" {
		t.Errorf("String = %q", got)
	}

	empty := Span{File: 1, Start: 3, End: 3}
	if !empty.Empty() {
		t.Error("empty span reported non-empty")
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 2, Start: 10, End: 14}
	b := Span{File: 2, Start: 4, End: 12}
	got := a.Cover(b)
	if got.Start != 4 || got.End != 14 {
		t.Errorf("Cover = %v, want 2:4-14", got)
	}

	// Different files leave the receiver untouched.
	other := Span{File: 3, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Errorf("cross-file Cover = %v, want %v", got, a)
	}
}
