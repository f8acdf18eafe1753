// Package project locates and parses the quill.toml manifest that marks a
// project root and configures the checker.
package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is a located, parsed quill.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the quill.toml schema.
type Config struct {
	Package     PackageConfig     `toml:"package"`
	Build       BuildConfig       `toml:"build"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

// BuildConfig lists the source roots to check, relative to the project root.
type BuildConfig struct {
	Roots []string `toml:"roots"`
}

type DiagnosticsConfig struct {
	FailFast bool `toml:"fail_fast"`
	Max      int  `toml:"max"`
}

// DefaultMaxDiagnostics bounds per-run diagnostic output when the manifest
// does not set [diagnostics].max.
const DefaultMaxDiagnostics = 256

// LoadManifest walks up from startDir, finds quill.toml, and parses it.
// The boolean reports whether a manifest exists at all.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindQuillToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

// LoadConfig parses and validates one quill.toml file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if cfg.Diagnostics.Max < 0 {
		return Config{}, fmt.Errorf("%s: [diagnostics].max must not be negative", path)
	}
	return cfg, nil
}

// Roots returns the configured source roots, defaulting to the project root
// itself.
func (c Config) Roots() []string {
	if len(c.Build.Roots) == 0 {
		return []string{"."}
	}
	return c.Build.Roots
}

// MaxDiagnostics returns the configured diagnostic cap or the default.
func (c Config) MaxDiagnostics() int {
	if c.Diagnostics.Max > 0 {
		return c.Diagnostics.Max
	}
	return DefaultMaxDiagnostics
}
