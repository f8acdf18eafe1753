package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"quill/internal/diag"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}

func TestCheckDirCleanTree(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.ql": "type Number = float64;\n#include \"a.h\"\n",
		"b.ql": "builtin Identity<T>(context: Context, value: T): T { b }\nIdentity<Smi>(context: Context, value: Smi): Smi { b }\n",
	})

	result, err := CheckDir(context.Background(), dir, Options{MaxDiagnostics: 32})
	require.NoError(t, err)
	require.Falsef(t, result.HasErrors(), "diagnostics: %v", result.Bag.Items())
	require.Len(t, result.Files, 2)
	require.Equal(t, []string{"a.h"}, result.Includes)
}

func TestCheckDirCrossFileReference(t *testing.T) {
	// b.ql uses a type a.ql declares; one combined pass resolves it.
	dir := writeTree(t, map[string]string{
		"a.ql": "type Number = float64;\n",
		"b.ql": "type Alias = Number;\n",
	})
	result, err := CheckDir(context.Background(), dir, Options{MaxDiagnostics: 32})
	require.NoError(t, err)
	require.False(t, result.HasErrors())
}

func TestCheckDirReportsAcrossFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"bad1.ql": "extern const k: int31 = v;\n",
		"bad2.ql": "type X = missing;\n",
	})
	result, err := CheckDir(context.Background(), dir, Options{MaxDiagnostics: 32})
	require.NoError(t, err)
	require.True(t, result.HasErrors())

	var codes []diag.Code
	for _, d := range result.Bag.Items() {
		codes = append(codes, d.Code)
	}
	require.Contains(t, codes, diag.DeclTypeConstraint)
	require.Contains(t, codes, diag.DeclUnresolvedType)
}

func TestCheckDirEmpty(t *testing.T) {
	result, err := CheckDir(context.Background(), t.TempDir(), Options{MaxDiagnostics: 8})
	require.NoError(t, err)
	require.False(t, result.HasErrors())
	require.Empty(t, result.Files)
}

func TestParseDirSkipsNonSource(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.ql":     "type A = Smi;\n",
		"notes.md": "not source\n",
	})
	_, results, err := ParseDir(context.Background(), dir, Options{MaxDiagnostics: 8})
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestTreeDigestStability(t *testing.T) {
	files := map[string]string{
		"a.ql": "type A = Smi;\n",
		"b.ql": "type B = A;\n",
	}
	dir1 := writeTree(t, files)
	dir2 := writeTree(t, files)

	fs1, err := LoadDir(dir1)
	require.NoError(t, err)
	fs2, err := LoadDir(dir2)
	require.NoError(t, err)
	require.Equal(t, TreeDigest(fs1), TreeDigest(fs2))

	changed := writeTree(t, map[string]string{
		"a.ql": "type A = HeapObject;\n",
		"b.ql": "type B = A;\n",
	})
	fs3, err := LoadDir(changed)
	require.NoError(t, err)
	require.NotEqual(t, TreeDigest(fs1), TreeDigest(fs3))
}
