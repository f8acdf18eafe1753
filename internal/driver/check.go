// Package driver orchestrates a whole check run: it loads and parses every
// source file under the requested roots in parallel, then feeds the combined
// declaration tree through the resolution pass single-threaded.
package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"quill/internal/ast"
	"quill/internal/decls"
	"quill/internal/diag"
	"quill/internal/parser"
	"quill/internal/source"
	"quill/internal/symbols"
	"quill/internal/types"
)

// Options tune a check run.
type Options struct {
	// MaxDiagnostics bounds each file's bag and the merged bag.
	MaxDiagnostics int
	// Jobs limits parse parallelism; <=0 means GOMAXPROCS.
	Jobs int
	// FailFast aborts the declaration pass on the first failed declaration.
	FailFast bool
}

// ParseResult is one file's parse output.
type ParseResult struct {
	Path   string
	FileID source.FileID
	Decls  []ast.Decl
	Bag    *diag.Bag
}

// Result is the outcome of a full check run.
type Result struct {
	FileSet *source.FileSet
	Files   []ParseResult
	Bag     *diag.Bag
	Table   *symbols.Table
	Types   *types.Interner
	// Includes is the merged backend include list, in file order then
	// declaration order.
	Includes []string
}

// HasErrors reports whether any phase produced an error diagnostic.
func (r *Result) HasErrors() bool {
	return r.Bag.HasErrors()
}

// listSourceFiles returns every *.ql file under dir, sorted for
// deterministic processing order.
func listSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".ql") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// LoadDir loads every source file under dir into a FileSet without parsing.
// The cache fast path uses this to compute the tree digest cheaply.
func LoadDir(dir string) (*source.FileSet, error) {
	files, err := listSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	fileSet := source.NewFileSet()
	for _, path := range files {
		if _, err := fileSet.Load(path); err != nil {
			return nil, err
		}
	}
	return fileSet, nil
}

// ParseDir loads and parses every source file under dir in parallel. Files
// that fail to load get an IO diagnostic instead of aborting the run.
func ParseDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []ParseResult, error) {
	files, err := listSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSet()
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	// Each goroutine writes its own index, so no mutex is needed.
	results := make([]ParseResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bag := diag.NewBag(opts.MaxDiagnostics)
			if loadErr, failed := loadErrors[path]; failed {
				bag.Add(diag.NewError(diag.IOReadFailed, source.Span{},
					"failed to read file: "+loadErr.Error()))
				results[i] = ParseResult{Path: path, Bag: bag}
				return nil
			}

			fileID := fileIDs[path]
			fileDecls := parser.ParseFile(fileSet.Get(fileID), diag.BagReporter{Bag: bag})
			results[i] = ParseResult{
				Path:   path,
				FileID: fileID,
				Decls:  fileDecls,
				Bag:    bag,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// CheckDir parses everything under dir and runs the declaration pass over
// the combined tree. Parse diagnostics and declaration diagnostics land in
// one merged bag; the error return is reserved for I/O and cancellation.
func CheckDir(ctx context.Context, dir string, opts Options) (*Result, error) {
	fileSet, parsed, err := ParseDir(ctx, dir, opts)
	if err != nil {
		return nil, err
	}

	merged := diag.NewBag(opts.MaxDiagnostics)
	var allDecls []ast.Decl
	for i := range parsed {
		merged.Merge(parsed[i].Bag)
		allDecls = append(allDecls, parsed[i].Decls...)
	}

	table := symbols.NewTable(nil)
	interner := types.NewInterner()
	symbols.InstallPrelude(table, interner)

	visitor := decls.NewVisitor(table, interner, diag.BagReporter{Bag: merged}, decls.Options{
		FailFast: opts.FailFast,
	})
	// The sentinel error is already reflected in the bag; only the
	// diagnostics surface to callers.
	_ = visitor.Run(allDecls)

	merged.Sort()
	return &Result{
		FileSet:  fileSet,
		Files:    parsed,
		Bag:      merged,
		Table:    table,
		Types:    interner,
		Includes: visitor.Includes,
	}, nil
}
