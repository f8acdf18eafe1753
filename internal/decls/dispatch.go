package decls

import (
	"fmt"

	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/symbols"
)

// Run executes the whole pass over a declaration tree: predeclare every
// type and namespace, visit every declaration, then force all remaining
// pending aliases. The first error is returned only under FailFast;
// otherwise processing continues and the diagnostics sink holds the full
// story.
func (v *Visitor) Run(decls []ast.Decl) error {
	for _, d := range decls {
		v.Predeclare(d)
	}
	if err := v.VisitAll(decls); err != nil {
		return err
	}
	return v.ResolvePredeclarations()
}

// VisitAll routes every top-level declaration, applying the error policy:
// accumulate-and-continue by default, abort-on-first under FailFast. Within
// one declaration failure is always immediate.
func (v *Visitor) VisitAll(decls []ast.Decl) error {
	var first error
	for _, d := range decls {
		if err := v.Visit(d); err != nil {
			if v.opts.FailFast {
				return err
			}
			if first == nil {
				first = err
			}
		}
	}
	return first
}

// Visit routes one declaration to its handler. The position frame is pushed
// before dispatch and restored on every exit path, so a failure inside one
// declaration never leaks position state into its siblings.
func (v *Visitor) Visit(decl ast.Decl) (err error) {
	defer v.enterPos(decl.Span())()

	switch d := decl.(type) {
	case *ast.TypeDecl:
		// Predeclared; the alias resolves lazily or in the resolution
		// pass.
		return nil
	case *ast.StructDecl:
		return nil
	case *ast.NamespaceDecl:
		return v.visitNamespace(d)
	case *ast.ConstDecl:
		return v.visitConst(d)
	case *ast.ExternConstDecl:
		return v.visitExternConst(d)
	case *ast.StandardDecl:
		sig, err := v.makeSignature(v.currentScope(), d.Callable.Sig)
		if err != nil {
			return err
		}
		return v.visitCallable(d.Callable, sig, d.Body)
	case *ast.GenericDecl:
		return v.visitGeneric(d)
	case *ast.SpecializationDecl:
		return v.visitSpecialization(d)
	case *ast.IncludeDecl:
		v.Includes = append(v.Includes, d.Path)
		return nil
	default:
		// The variant set is closed; reaching this is an
		// implementation fault, not a user error.
		panic(fmt.Errorf("decls: unhandled declaration variant %T", decl))
	}
}

// Predeclare implements phase one of the two-phase type scheme: only type,
// struct, and namespace declarations are registered (as pending aliases and
// namespace scopes); every other variant is ignored. Namespace bodies are
// predeclared recursively so nested types become visible before any visit.
func (v *Visitor) Predeclare(decl ast.Decl) {
	defer v.enterPos(decl.Span())()

	switch d := decl.(type) {
	case *ast.TypeDecl:
		v.predeclareAlias(d.Name, d)
	case *ast.StructDecl:
		v.predeclareAlias(d.Name, d)
	case *ast.NamespaceDecl:
		_, nsScope := v.table.GetOrCreateNamespace(v.currentScope(), d.Name.Name, d.Name.Pos)
		restore := v.enterScope(nsScope)
		for _, child := range d.Body {
			v.Predeclare(child)
		}
		restore()
	default:
		// Only type declarations take part in predeclaration.
	}
}

func (v *Visitor) visitNamespace(d *ast.NamespaceDecl) error {
	_, nsScope := v.table.GetOrCreateNamespace(v.currentScope(), d.Name.Name, d.Name.Pos)
	defer v.enterScope(nsScope)()
	return v.VisitAll(d.Body)
}

// checkFreshConst rejects redeclaring a constant name in the same scope.
func (v *Visitor) checkFreshConst(name ast.Ident) error {
	for _, symID := range v.table.LookupShallow(v.currentScope(), name.Name) {
		prev := v.table.Symbols.Get(symID)
		if prev.Kind == symbols.SymbolConst || prev.Kind == symbols.SymbolExternConst {
			notes := []diag.Note{{Span: prev.Span, Msg: fmt.Sprintf("%s first declared here", name.Name)}}
			return v.failWithNotes(diag.DeclDuplicateSymbol, name.Pos, notes,
				"constant %s is declared more than once in this scope", name.Name)
		}
	}
	return nil
}

func (v *Visitor) visitConst(d *ast.ConstDecl) error {
	if err := v.checkFreshConst(d.Name); err != nil {
		return err
	}
	declType, err := v.computeType(v.currentScope(), d.Type)
	if err != nil {
		return err
	}
	v.table.Declare(v.currentScope(), d.Name.Name, symbols.Symbol{
		Kind:  symbols.SymbolConst,
		Span:  d.Pos,
		Const: symbols.ConstInfo{Type: declType, Expr: d.Expr},
	})
	return nil
}

func (v *Visitor) visitExternConst(d *ast.ExternConstDecl) error {
	if err := v.checkFreshConst(d.Name); err != nil {
		return err
	}
	declType, err := v.computeType(v.currentScope(), d.Type)
	if err != nil {
		return err
	}
	if !v.interner.IsConstexpr(declType) {
		return v.fail(diag.DeclTypeConstraint, d.Type.Pos,
			"extern constants must have constexpr type, but found: %q", v.interner.Name(declType))
	}
	v.table.Declare(v.currentScope(), d.Name.Name, symbols.Symbol{
		Kind:  symbols.SymbolExternConst,
		Span:  d.Pos,
		Const: symbols.ConstInfo{Type: declType, Literal: d.Literal},
	})
	return nil
}
