package decls

import (
	"fmt"

	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/symbols"
	"quill/internal/types"
)

// predeclareAlias registers a pending type alias for a type or struct
// declaration, capturing the active scope and position for later
// resolution. Redeclaring a type name within one scope is reported and the
// first declaration stays authoritative.
func (v *Visitor) predeclareAlias(name ast.Ident, decl ast.Decl) {
	scope := v.currentScope()
	for _, symID := range v.table.LookupShallow(scope, name.Name) {
		prev := v.table.Symbols.Get(symID)
		if prev.Kind == symbols.SymbolTypeAlias {
			notes := []diag.Note{{Span: prev.Span, Msg: fmt.Sprintf("%s first declared here", name.Name)}}
			_ = v.failWithNotes(diag.DeclDuplicateSymbol, name.Pos, notes,
				"type %s is declared more than once in this scope", name.Name)
			return
		}
	}
	aliasID := v.table.NewAlias(symbols.TypeAlias{
		Name:  v.table.Strings.Intern(name.Name),
		Scope: scope,
		Span:  name.Pos,
		State: symbols.AliasPending,
		Decl:  decl,
	})
	v.table.Declare(scope, name.Name, symbols.Symbol{
		Kind:  symbols.SymbolTypeAlias,
		Span:  name.Pos,
		Alias: aliasID,
	})
}

// ResolvePredeclarations is phase two: force every alias still pending,
// re-entering its captured scope and position. Aliases already resolved
// (eagerly, lazily, or by an earlier dependency) are left untouched.
func (v *Visitor) ResolvePredeclarations() error {
	var first error
	for _, aliasID := range v.table.AllAliases() {
		alias := v.table.GetAlias(aliasID)
		if alias.State == symbols.AliasResolved {
			continue
		}
		restoreScope := v.enterScope(alias.Scope)
		restorePos := v.enterPos(alias.Span)
		_, err := v.resolveAlias(aliasID)
		restorePos()
		restoreScope()
		if err != nil {
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

// resolveAlias forces one alias to its final canonical type. Resolution is
// lazy and memoized: a resolved alias returns its cached type without
// re-evaluation, and an alias whose target mentions another pending alias
// resolves that dependency on demand, which is what makes forward and
// mutual references order-independent. Cycles are a user error.
func (v *Visitor) resolveAlias(aliasID symbols.AliasID) (types.TypeID, error) {
	alias := v.table.GetAlias(aliasID)
	switch alias.State {
	case symbols.AliasResolved:
		return alias.Target, nil
	case symbols.AliasResolving:
		return types.NoTypeID, v.fail(diag.DeclUnresolvedType, alias.Span,
			"type %q is part of a definition cycle", v.table.Strings.Lookup(alias.Name))
	}

	alias.State = symbols.AliasResolving
	target, err := v.evaluateAliasTarget(alias)
	if err != nil {
		// Leave the alias pending so a later forced resolution
		// reports again rather than caching a bogus type.
		alias.State = symbols.AliasPending
		return types.NoTypeID, err
	}
	alias.Target = target
	alias.State = symbols.AliasResolved
	return target, nil
}

func (v *Visitor) evaluateAliasTarget(alias *symbols.TypeAlias) (types.TypeID, error) {
	switch d := alias.Decl.(type) {
	case *ast.TypeDecl:
		return v.computeType(alias.Scope, d.Target)
	case *ast.StructDecl:
		fields := make([]types.StructField, 0, len(d.Fields))
		for _, f := range d.Fields {
			fieldType, err := v.computeType(alias.Scope, f.Type)
			if err != nil {
				return types.NoTypeID, err
			}
			fields = append(fields, types.StructField{Name: f.Name.Name, Type: fieldType})
		}
		qualified := v.qualifiedTypeName(alias.Scope, d.Name.Name)
		return v.interner.DeclareStruct(qualified, fields), nil
	default:
		panic(fmt.Errorf("decls: alias %q has no declaration to resolve",
			v.table.Strings.Lookup(alias.Name)))
	}
}

func (v *Visitor) qualifiedTypeName(scope symbols.ScopeID, name string) string {
	if prefix := v.table.QualifiedName(scope); prefix != "" {
		return prefix + "::" + name
	}
	return name
}

// computeType evaluates a type expression in a scope to a canonical type.
// Qualified names walk namespace symbols; the final segment must name a
// type alias, which is resolved on demand.
func (v *Visitor) computeType(scope symbols.ScopeID, expr *ast.TypeExpr) (types.TypeID, error) {
	if expr == nil {
		return v.voidType()
	}

	lookupScope := scope
	deep := true
	for _, part := range expr.Parts[:len(expr.Parts)-1] {
		nsScope, err := v.lookupNamespace(lookupScope, part, deep)
		if err != nil {
			return types.NoTypeID, err
		}
		lookupScope = nsScope
		deep = false
	}

	last := expr.Parts[len(expr.Parts)-1]
	aliasID, err := v.lookupTypeAlias(lookupScope, last, deep)
	if err != nil {
		return types.NoTypeID, err
	}
	target, err := v.resolveAlias(aliasID)
	if err != nil {
		return types.NoTypeID, err
	}
	if expr.Constexpr {
		target = v.interner.Constexpr(target)
	}
	return target, nil
}

func (v *Visitor) lookupNamespace(scope symbols.ScopeID, part ast.Ident, deep bool) (symbols.ScopeID, error) {
	var hits []symbols.SymbolID
	if deep {
		hits = v.table.Lookup(scope, part.Name)
	} else {
		hits = v.table.LookupShallow(scope, part.Name)
	}
	for i := len(hits) - 1; i >= 0; i-- {
		sym := v.table.Symbols.Get(hits[i])
		if sym.Kind == symbols.SymbolNamespace {
			return sym.Namespace, nil
		}
	}
	return symbols.NoScopeID, v.fail(diag.DeclUnresolvedType, part.Pos,
		"namespace %q is not declared", part.Name)
}

func (v *Visitor) lookupTypeAlias(scope symbols.ScopeID, part ast.Ident, deep bool) (symbols.AliasID, error) {
	var hits []symbols.SymbolID
	if deep {
		hits = v.table.Lookup(scope, part.Name)
	} else {
		hits = v.table.LookupShallow(scope, part.Name)
	}
	// Innermost declaration wins.
	for i := len(hits) - 1; i >= 0; i-- {
		sym := v.table.Symbols.Get(hits[i])
		if sym.Kind == symbols.SymbolTypeAlias {
			return sym.Alias, nil
		}
	}
	return symbols.NoAliasID, v.fail(diag.DeclUnresolvedType, part.Pos,
		"type %q is not declared", part.Name)
}

// makeSignature builds a callable's concrete Signature from its syntax in
// the given scope. A leading parameter named "context" or "ctx" counts as
// the implicit execution-context parameter excluded from overload matching.
func (v *Visitor) makeSignature(scope symbols.ScopeID, sig *ast.SignatureNode) (types.Signature, error) {
	out := types.Signature{Varargs: sig.Varargs}
	for _, p := range sig.Params {
		paramType, err := v.computeType(scope, p.Type)
		if err != nil {
			return types.Signature{}, err
		}
		out.ParamNames = append(out.ParamNames, p.Name.Name)
		out.ParamTypes = append(out.ParamTypes, paramType)
	}
	if len(sig.Params) > 0 {
		switch sig.Params[0].Name.Name {
		case "context", "ctx":
			out.ImplicitCount = 1
		}
	}
	ret, err := v.computeType(scope, sig.Return)
	if err != nil {
		return types.Signature{}, err
	}
	out.Return = ret
	return out, nil
}

// globalType resolves a distinguished prelude type by name.
func (v *Visitor) globalType(name string) (types.TypeID, error) {
	ident := ast.Ident{Name: name, Pos: v.currentPos()}
	aliasID, err := v.lookupTypeAlias(v.table.Universe, ident, false)
	if err != nil {
		return types.NoTypeID, err
	}
	return v.resolveAlias(aliasID)
}

func (v *Visitor) voidType() (types.TypeID, error) {
	return v.globalType("void")
}

// contextTypeID caches the canonical execution-context type.
func (v *Visitor) contextTypeID() (types.TypeID, error) {
	if v.contextType != types.NoTypeID {
		return v.contextType, nil
	}
	id, err := v.globalType(symbols.ContextTypeName)
	if err != nil {
		return types.NoTypeID, err
	}
	v.contextType = id
	return id, nil
}

// objectTypeID caches the canonical generic-object type.
func (v *Visitor) objectTypeID() (types.TypeID, error) {
	if v.objectType != types.NoTypeID {
		return v.objectType, nil
	}
	id, err := v.globalType(symbols.ObjectTypeName)
	if err != nil {
		return types.NoTypeID, err
	}
	v.objectType = id
	return id, nil
}
