// Package decls implements the declaration-resolution pass: it walks a
// parsed declaration tree once, populates the symbol registry, enforces
// calling-convention invariants, resolves generic specializations, and runs
// the two-phase type predeclaration/resolution scheme that makes forward and
// mutual type references safe.
package decls

import (
	"fmt"

	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/symbols"
	"quill/internal/types"
)

// Options tune the pass. FailFast aborts on the first failed top-level
// declaration; the default keeps visiting siblings so one bad declaration
// does not hide diagnostics in the rest of the file.
type Options struct {
	FailFast bool
}

// Visitor carries the compilation context through the whole pass: the symbol
// registry, the type interner, the diagnostics sink, and the strictly nested
// position/scope stacks. One Visitor processes one declaration tree,
// single-threaded.
type Visitor struct {
	table    *symbols.Table
	interner *types.Interner
	reporter diag.Reporter
	opts     Options

	scopeStack []symbols.ScopeID
	posStack   []source.Span

	// Includes is the ordered list of backend include paths, appended in
	// declaration order, never deduplicated.
	Includes []string

	contextType types.TypeID
	objectType  types.TypeID
}

// NewVisitor builds a visitor over a fresh or pre-seeded registry. The
// prelude must already be installed so the distinguished Context and Object
// types resolve.
func NewVisitor(table *symbols.Table, interner *types.Interner, reporter diag.Reporter, opts Options) *Visitor {
	return &Visitor{
		table:      table,
		interner:   interner,
		reporter:   reporter,
		opts:       opts,
		scopeStack: []symbols.ScopeID{table.Universe},
	}
}

// Table exposes the symbol registry the pass mutates.
func (v *Visitor) Table() *symbols.Table { return v.table }

// Types exposes the canonical type interner.
func (v *Visitor) Types() *types.Interner { return v.interner }

// currentScope returns the innermost active scope.
func (v *Visitor) currentScope() symbols.ScopeID {
	return v.scopeStack[len(v.scopeStack)-1]
}

// enterScope pushes a scope frame and returns the restoring closure.
// Callers defer the result so the frame pops on every exit path.
func (v *Visitor) enterScope(scope symbols.ScopeID) func() {
	v.scopeStack = append(v.scopeStack, scope)
	return func() {
		v.scopeStack = v.scopeStack[:len(v.scopeStack)-1]
	}
}

// enterPos pushes a source-position frame, mirroring enterScope.
func (v *Visitor) enterPos(span source.Span) func() {
	v.posStack = append(v.posStack, span)
	return func() {
		v.posStack = v.posStack[:len(v.posStack)-1]
	}
}

// currentPos returns the position of the declaration being processed.
func (v *Visitor) currentPos() source.Span {
	if len(v.posStack) == 0 {
		return source.Span{}
	}
	return v.posStack[len(v.posStack)-1]
}

// failure is the sentinel error handlers return after emitting a
// diagnostic. It aborts the current declaration; the dispatcher decides
// whether siblings still run.
type failure struct {
	code diag.Code
	msg  string
}

func (e *failure) Error() string {
	return fmt.Sprintf("%s: %s", e.code.ID(), e.msg)
}

// FailureCode extracts the diagnostic code from a pass error, or
// UnknownCode for foreign errors.
func FailureCode(err error) diag.Code {
	if f, ok := err.(*failure); ok {
		return f.code
	}
	return diag.UnknownCode
}

// fail emits an error diagnostic at span and returns the matching sentinel.
func (v *Visitor) fail(code diag.Code, span source.Span, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	diag.ReportError(v.reporter, code, span, msg).Emit()
	return &failure{code: code, msg: msg}
}

// failWithNotes is fail plus secondary notes (candidate lists, earlier
// declarations).
func (v *Visitor) failWithNotes(code diag.Code, span source.Span, notes []diag.Note, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	rb := diag.ReportError(v.reporter, code, span, msg)
	for _, n := range notes {
		rb.WithNote(n.Span, n.Msg)
	}
	rb.Emit()
	return &failure{code: code, msg: msg}
}
