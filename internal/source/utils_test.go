package source

import (
	"bytes"
	"testing"
)

func TestNormalizeCRLF(t *testing.T) {
	got, changed := normalizeCRLF([]byte("a\r\nb\r\nc"))
	if !changed {
		t.Error("CRLF input reported unchanged")
	}
	if !bytes.Equal(got, []byte("a\nb\nc")) {
		t.Errorf("normalizeCRLF = %q", got)
	}

	// Lone \r is not a line ending here.
	got, changed = normalizeCRLF([]byte("a\rb"))
	if !changed && !bytes.Equal(got, []byte("a\rb")) {
		t.Errorf("lone CR mangled: %q", got)
	}

	if _, changed := normalizeCRLF([]byte("plain\n")); changed {
		t.Error("LF-only input reported changed")
	}
}

func TestBuildLineIndex(t *testing.T) {
	idx := buildLineIndex([]byte("a\nbb\n\n"))
	want := []uint32{1, 4, 5}
	if len(idx) != len(want) {
		t.Fatalf("index length = %d, want %d", len(idx), len(want))
	}
	for i := range want {
		if idx[i] != want[i] {
			t.Errorf("idx[%d] = %d, want %d", i, idx[i], want[i])
		}
	}
}
