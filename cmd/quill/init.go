package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new quill project",
	Long: `Initialize a new quill project by creating a project manifest (quill.toml)
and a starter source file (base.ql). If [path|name] is omitted, initializes
the current directory. If a non-existing name is provided, a directory will be
created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "quill-project"
	}

	manifestPath := filepath.Join(target, "quill.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	if err := os.WriteFile(manifestPath, []byte(defaultManifest(name)), 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	srcDir := filepath.Join(target, "src")
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		return fmt.Errorf("failed to create src directory: %w", err)
	}
	basePath := filepath.Join(srcDir, "base.ql")
	createdBase := false
	if _, err := os.Stat(basePath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(basePath, []byte(defaultBaseQL()), 0o600); err != nil {
			return fmt.Errorf("failed to write base.ql: %w", err)
		}
		createdBase = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "initialized project %q in %s\n", name, rel)
	fmt.Fprintln(cmd.OutOrStdout(), "  created quill.toml")
	if createdBase {
		fmt.Fprintln(cmd.OutOrStdout(), "  created src/base.ql")
	}
	return nil
}

func defaultManifest(name string) string {
	return fmt.Sprintf(`[package]
name = %q

[build]
roots = ["src"]

[diagnostics]
fail_fast = false
max = 256
`, name)
}

func defaultBaseQL() string {
	return `// Core type universe. Context and Object come from the prelude.
type Number = float64;

extern macro BranchIfSmi(HeapObject): never;

extern runtime ThrowTypeError(Context, Object): never;

builtin Identity<T>(context: Context, value: T): T {
  return value;
}

Identity<Smi>(context: Context, value: Smi): Smi {
  return value;
}
`
}
