package decls

import (
	"fmt"

	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/symbols"
	"quill/internal/types"
)

// visitGeneric registers a callable template. Nothing is materialized here:
// the template captures its defining scope so later specializations, which
// may be requested from anywhere, instantiate in the right context.
func (v *Visitor) visitGeneric(d *ast.GenericDecl) error {
	scope := v.currentScope()
	genericID := v.table.NewGeneric(symbols.Generic{
		Name:        v.table.Strings.Intern(d.Callable.Name.Name),
		Decl:        d,
		ParentScope: scope,
		Span:        d.Callable.Name.Pos,
	})
	v.table.Declare(scope, d.Callable.Name.Name, symbols.Symbol{
		Kind:    symbols.SymbolGeneric,
		Span:    d.Callable.Name.Pos,
		Generic: genericID,
	})
	return nil
}

// visitSpecialization resolves an explicit specialization: find the generics
// the name could mean, keep the ones with the right type-argument count,
// instantiate each candidate's signature with the concrete types, and demand
// exactly one whose explicit parameter and return types match the signature
// the specialization wrote out.
func (v *Visitor) visitSpecialization(d *ast.SpecializationDecl) error {
	if d.External && d.Body != nil {
		return v.fail(diag.DeclMalformed, d.Name.Pos,
			"extern specialization of %s must not have a body", d.Name.Name)
	}
	if !d.External && d.Body == nil {
		return v.fail(diag.DeclMalformed, d.Name.Pos,
			"specialization of %s requires a body", d.Name.Name)
	}

	candidates := v.lookupGenerics(d.Name)
	if len(candidates) == 0 {
		return v.fail(diag.DeclNoSuchGeneric, d.Name.Pos,
			"no generic callable %s is declared in this scope", d.Name.Name)
	}

	typeArgs := make([]types.TypeID, 0, len(d.TypeArgs))
	for _, arg := range d.TypeArgs {
		id, err := v.computeType(v.currentScope(), arg)
		if err != nil {
			return err
		}
		typeArgs = append(typeArgs, id)
	}

	arityMatched := candidates[:0:0]
	for _, c := range candidates {
		if v.table.GetGeneric(c).TypeParamCount() == len(typeArgs) {
			arityMatched = append(arityMatched, c)
		}
	}
	if len(arityMatched) == 0 {
		return v.fail(diag.DeclParamCountMismatch, d.Name.Pos,
			"generic %s cannot be specialized with %d type argument(s)",
			d.Name.Name, len(typeArgs))
	}

	declaredSig, err := v.makeSignature(v.currentScope(), d.Sig)
	if err != nil {
		return err
	}

	var matched []symbols.GenericID
	for _, c := range arityMatched {
		generic := v.table.GetGeneric(c)
		candidateSig, err := v.instantiateSignature(generic, typeArgs)
		if err != nil {
			return err
		}
		if candidateSig.HasSameTypesAs(declaredSig) {
			matched = append(matched, c)
		}
	}

	switch len(matched) {
	case 0:
		var notes []diag.Note
		for _, c := range arityMatched {
			generic := v.table.GetGeneric(c)
			candidateSig, err := v.instantiateSignature(generic, typeArgs)
			if err != nil {
				continue
			}
			notes = append(notes, diag.Note{
				Span: generic.Span,
				Msg:  fmt.Sprintf("candidate declared here with signature %s", candidateSig.Render(v.interner)),
			})
		}
		return v.failWithNotes(diag.DeclNoMatchingOverload, d.Name.Pos, notes,
			"specialization %s%s with signature %s does not match any generic declaration",
			d.Name.Name, types.RenderTypeList(v.interner, typeArgs), declaredSig.Render(v.interner))
	case 1:
		// fall through
	default:
		var notes []diag.Note
		for _, c := range matched {
			generic := v.table.GetGeneric(c)
			notes = append(notes, diag.Note{
				Span: generic.Span,
				Msg:  fmt.Sprintf("generic %s declared here", d.Name.Name),
			})
		}
		return v.failWithNotes(diag.DeclAmbiguousOverload, d.Name.Pos, notes,
			"specialization %s%s matches more than one generic declaration",
			d.Name.Name, types.RenderTypeList(v.interner, typeArgs))
	}

	_, err = v.specialize(matched[0], typeArgs, d.Sig, d.Body, d.Name.Pos)
	return err
}

// SpecializeImplicit materializes (or retrieves) the specialization of a
// generic for a concrete type vector without an explicit declaration. The
// cache is consulted first, so an explicit specialization always wins over a
// fresh instantiation of the generic body.
func (v *Visitor) SpecializeImplicit(key symbols.SpecializationKey) (symbols.CallableID, error) {
	generic := v.table.GetGeneric(key.Generic)
	if generic == nil {
		panic(fmt.Errorf("decls: implicit specialization of invalid generic %d", key.Generic))
	}
	if id, ok := generic.Specialization(key.Types); ok {
		return id, nil
	}
	name := v.table.Strings.Lookup(generic.Name)
	if generic.Decl.Body == nil && generic.Decl.Callable.Kind != ast.CallableIntrinsic {
		notes := []diag.Note{{Span: generic.Span, Msg: fmt.Sprintf("generic %s declared here", name)}}
		return symbols.NoCallableID, v.failWithNotes(diag.DeclMissingImplicitSpecialization, generic.Span, notes,
			"missing specialization of %s with types %s",
			name, types.RenderTypeList(v.interner, key.Types))
	}
	restore := v.enterScope(generic.ParentScope)
	defer restore()
	return v.specialize(key.Generic, key.Types, generic.Decl.Callable.Sig, generic.Decl.Body, generic.Span)
}

// specialize materializes one concrete callable for a generic and a type
// vector, and caches it. The callable gets its own scope, a child of the
// generic's defining scope, holding the type-parameter bindings so the body
// can name them.
func (v *Visitor) specialize(genericID symbols.GenericID, typeArgs []types.TypeID, declSig *ast.SignatureNode, body *ast.Body, pos source.Span) (symbols.CallableID, error) {
	generic := v.table.GetGeneric(genericID)
	name := v.table.Strings.Lookup(generic.Name)

	if _, exists := generic.Specialization(typeArgs); exists {
		return symbols.NoCallableID, v.fail(diag.DeclDuplicateSpecialization, pos,
			"multiple specializations of %s with types %s",
			name, types.RenderTypeList(v.interner, typeArgs))
	}

	defer v.enterPos(generic.Decl.Span())()

	callableScope := v.table.NewScope(symbols.ScopeCallable, generic.ParentScope, generic.Name, pos)
	v.bindTypeParams(callableScope, generic, typeArgs)
	sig, err := v.makeSignature(callableScope, declSig)
	if err != nil {
		return symbols.NoCallableID, err
	}

	generatedName := symbols.GeneratedCallableName(name, v.interner, typeArgs)
	readableName := symbols.ReadableCallableName(name, v.interner, typeArgs)

	var id symbols.CallableID
	switch generic.Decl.Callable.Kind {
	case ast.CallableBuiltin:
		id, err = v.createBuiltin(generic.Decl.Callable, generatedName, readableName, sig, body)
		if err != nil {
			return symbols.NoCallableID, err
		}
	case ast.CallableMacro, ast.CallableExternalMacro:
		id = v.createMacro(generatedName, readableName, sig, body, pos)
	case ast.CallableIntrinsic:
		id = v.createIntrinsic(generatedName, sig, pos)
	default:
		panic(fmt.Errorf("decls: generic %s has unsupported callable kind %s",
			name, generic.Decl.Callable.Kind))
	}
	v.table.GetCallable(id).Scope = callableScope

	generic.AddSpecialization(typeArgs, id)
	return id, nil
}

// instantiateSignature evaluates a generic's declared signature with the
// type parameters bound to concrete types. The binding scope is a throwaway:
// nothing references it after the signature is computed.
func (v *Visitor) instantiateSignature(generic *symbols.Generic, typeArgs []types.TypeID) (types.Signature, error) {
	scope := v.table.NewScope(symbols.ScopeTemporary, generic.ParentScope, generic.Name, generic.Span)
	v.bindTypeParams(scope, generic, typeArgs)
	return v.makeSignature(scope, generic.Decl.Callable.Sig)
}

// bindTypeParams declares each type parameter of the generic as an already
// resolved alias for the matching concrete type.
func (v *Visitor) bindTypeParams(scope symbols.ScopeID, generic *symbols.Generic, typeArgs []types.TypeID) {
	for i, param := range generic.Decl.Callable.TypeParams {
		aliasID := v.table.NewAlias(symbols.TypeAlias{
			Name:   v.table.Strings.Intern(param.Name),
			Scope:  scope,
			Span:   param.Pos,
			State:  symbols.AliasResolved,
			Target: typeArgs[i],
		})
		v.table.Declare(scope, param.Name, symbols.Symbol{
			Kind:  symbols.SymbolTypeAlias,
			Span:  param.Pos,
			Alias: aliasID,
		})
	}
}

// lookupGenerics collects the generics the name denotes, using the nearest
// enclosing scope that declares at least one. Overloads within that scope
// all become candidates; generics in outer scopes are shadowed wholesale.
func (v *Visitor) lookupGenerics(name ast.Ident) []symbols.GenericID {
	for scope := v.currentScope(); scope.IsValid(); {
		var found []symbols.GenericID
		for _, symID := range v.table.LookupShallow(scope, name.Name) {
			sym := v.table.Symbols.Get(symID)
			if sym.Kind == symbols.SymbolGeneric {
				found = append(found, sym.Generic)
			}
		}
		if len(found) > 0 {
			return found
		}
		sc := v.table.Scopes.Get(scope)
		if sc == nil {
			break
		}
		scope = sc.Parent
	}
	return nil
}
