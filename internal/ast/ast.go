// Package ast models the parsed declaration tree consumed by the
// declaration-resolution pass. The variant set is closed: every top-level
// construct is one of the Decl implementations below, and downstream
// dispatchers switch over the concrete types exhaustively.
package ast

import (
	"quill/internal/source"
)

// Decl is a single top-level declaration. The interface is sealed; only the
// types in this package implement it.
type Decl interface {
	Span() source.Span
	decl()
}

// Ident is a name together with where it was written.
type Ident struct {
	Name string
	Pos  source.Span
}

// TypeExpr is the syntax of a type reference: an optionally constexpr
// qualified name. Evaluation into a canonical type happens in the types
// package, against a scope.
type TypeExpr struct {
	Constexpr bool
	Parts     []Ident // qualified name segments, a::b::C
	Pos       source.Span
}

// Name renders the qualified name without the constexpr marker.
func (t *TypeExpr) Name() string {
	out := ""
	for i, p := range t.Parts {
		if i > 0 {
			out += "::"
		}
		out += p.Name
	}
	return out
}

// Body is an unanalyzed callable body, kept as a raw span.
// Expression checking of bodies is a later stage.
type Body struct {
	Pos source.Span
}

// TypeDecl declares a named type alias: type A = B;
type TypeDecl struct {
	Name   Ident
	Target *TypeExpr
	Pos    source.Span
}

// StructDecl declares a struct-category type.
type StructDecl struct {
	Name   Ident
	Fields []StructField
	Pos    source.Span
}

type StructField struct {
	Name Ident
	Type *TypeExpr
}

// NamespaceDecl declares (or re-opens) a namespace with nested declarations.
type NamespaceDecl struct {
	Name Ident
	Body []Decl
	Pos  source.Span
}

// ConstDecl declares a namespace constant with an unanalyzed initializer.
type ConstDecl struct {
	Name Ident
	Type *TypeExpr
	Expr source.Span
	Pos  source.Span
}

// ExternConstDecl declares an externally-defined constant. Its type must be
// constexpr-category.
type ExternConstDecl struct {
	Name    Ident
	Type    *TypeExpr
	Literal string
	Pos     source.Span
}

// StandardDecl wraps a non-generic callable declaration.
type StandardDecl struct {
	Callable *CallableNode
	Body     *Body
	Pos      source.Span
}

// GenericDecl wraps a callable declaration with type parameters. The callable
// is registered as a template; nothing is materialized until a
// specialization is requested.
type GenericDecl struct {
	Callable *CallableNode
	Body     *Body
	Pos      source.Span
}

// SpecializationDecl provides a concrete instantiation for a generic:
// Name<T1, T2>(params): Ret { body } or extern Name<T1>(...): Ret;
type SpecializationDecl struct {
	Name     Ident
	TypeArgs []*TypeExpr
	Sig      *SignatureNode
	External bool
	Body     *Body
	Pos      source.Span
}

// IncludeDecl forwards a header path to the backend, in declaration order.
type IncludeDecl struct {
	Path string
	Pos  source.Span
}

func (d *TypeDecl) Span() source.Span           { return d.Pos }
func (d *StructDecl) Span() source.Span         { return d.Pos }
func (d *NamespaceDecl) Span() source.Span      { return d.Pos }
func (d *ConstDecl) Span() source.Span          { return d.Pos }
func (d *ExternConstDecl) Span() source.Span    { return d.Pos }
func (d *StandardDecl) Span() source.Span       { return d.Pos }
func (d *GenericDecl) Span() source.Span        { return d.Pos }
func (d *SpecializationDecl) Span() source.Span { return d.Pos }
func (d *IncludeDecl) Span() source.Span        { return d.Pos }

func (*TypeDecl) decl()           {}
func (*StructDecl) decl()         {}
func (*NamespaceDecl) decl()      {}
func (*ConstDecl) decl()          {}
func (*ExternConstDecl) decl()    {}
func (*StandardDecl) decl()       {}
func (*GenericDecl) decl()        {}
func (*SpecializationDecl) decl() {}
func (*IncludeDecl) decl()        {}
