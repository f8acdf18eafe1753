package symbols

import (
	"quill/internal/ast"
	"quill/internal/source"
	"quill/internal/types"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolNamespace
	SymbolTypeAlias
	SymbolGeneric
	SymbolCallable
	SymbolConst
	SymbolExternConst
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolNamespace:
		return "namespace"
	case SymbolTypeAlias:
		return "type"
	case SymbolGeneric:
		return "generic"
	case SymbolCallable:
		return "callable"
	case SymbolConst:
		return "const"
	case SymbolExternConst:
		return "extern const"
	default:
		return "invalid"
	}
}

// Symbol is one named entry in a scope. Exactly one of the payload IDs is
// valid, matching Kind.
type Symbol struct {
	Kind  SymbolKind
	Name  source.StringID
	Owner ScopeID
	Span  source.Span

	Namespace ScopeID    // SymbolNamespace: the namespace's own scope
	Alias     AliasID    // SymbolTypeAlias
	Generic   GenericID  // SymbolGeneric
	Callable  CallableID // SymbolCallable
	Const     ConstInfo  // SymbolConst / SymbolExternConst
}

// ConstInfo carries the declared type and the raw initializer of a constant.
type ConstInfo struct {
	Type    types.TypeID
	Expr    source.Span // initializer span for ConstDecl
	Literal string      // literal text for ExternConstDecl
}

// AliasState tracks the forward-reference lifecycle of a type alias.
type AliasState uint8

const (
	// AliasPending marks a predeclared alias whose target was not
	// evaluated yet.
	AliasPending AliasState = iota
	// AliasResolving guards against alias cycles during lazy resolution.
	AliasResolving
	// AliasResolved means Target holds the final canonical type.
	AliasResolved
)

func (s AliasState) String() string {
	switch s {
	case AliasPending:
		return "pending"
	case AliasResolving:
		return "resolving"
	case AliasResolved:
		return "resolved"
	}
	return "invalid"
}

// TypeAlias is a named type binding, possibly forward-declared. The captured
// scope and span let the resolution pass re-enter the declaration context;
// Decl holds the type or struct declaration whose target is evaluated on
// resolution (nil for prelude and specialization bindings, which are born
// resolved).
type TypeAlias struct {
	Name   source.StringID
	Scope  ScopeID // scope the alias was declared in
	Span   source.Span
	State  AliasState
	Target types.TypeID
	Decl   ast.Decl
}
