package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "quill.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[package]
name = "demo"

[build]
roots = ["src", "builtins"]

[diagnostics]
fail_fast = true
max = 50
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Package.Name != "demo" {
		t.Errorf("name = %q", cfg.Package.Name)
	}
	if len(cfg.Roots()) != 2 || cfg.Roots()[1] != "builtins" {
		t.Errorf("roots = %v", cfg.Roots())
	}
	if !cfg.Diagnostics.FailFast {
		t.Error("fail_fast lost")
	}
	if cfg.MaxDiagnostics() != 50 {
		t.Errorf("max = %d", cfg.MaxDiagnostics())
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[package]\nname = \"demo\"\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.Roots(); len(got) != 1 || got[0] != "." {
		t.Errorf("default roots = %v", got)
	}
	if cfg.MaxDiagnostics() != DefaultMaxDiagnostics {
		t.Errorf("default max = %d", cfg.MaxDiagnostics())
	}
	if cfg.Diagnostics.FailFast {
		t.Error("fail_fast should default to false")
	}
}

func TestLoadConfigMissingName(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[package]\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("missing [package].name accepted")
	}
}

func TestFindQuillTomlWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := FindQuillToml(nested)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if filepath.Dir(path) != root {
		t.Errorf("found %q, want under %q", path, root)
	}

	foundRoot, ok, err := FindProjectRoot(nested)
	if err != nil || !ok || foundRoot != root {
		t.Errorf("FindProjectRoot = %q, %v, %v", foundRoot, ok, err)
	}
}

func TestCombineDeterministic(t *testing.T) {
	a := Digest{1}
	b := Digest{2}
	if Combine(a, b) != Combine(a, b) {
		t.Error("Combine not deterministic")
	}
	if Combine(a, b) == Combine(b, a) {
		t.Error("Combine must be order-sensitive")
	}
	if Combine(a) == a {
		t.Error("Combine must hash, not pass through")
	}
}
