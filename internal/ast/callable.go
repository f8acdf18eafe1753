package ast

import (
	"fmt"

	"quill/internal/source"
)

// CallableKind enumerates the closed set of callable declaration categories.
type CallableKind uint8

const (
	CallableInvalid CallableKind = iota
	// CallableMacro is a macro with a user-written body.
	CallableMacro
	// CallableExternalMacro is declared 'extern macro': implemented by the
	// host assembler, no body.
	CallableExternalMacro
	// CallableBuiltin is a builtin with a user-written body.
	CallableBuiltin
	// CallableExternalRuntime is declared 'extern runtime': a runtime
	// function of the embedder.
	CallableExternalRuntime
	// CallableIntrinsic has compiler-provided semantics and never a body.
	CallableIntrinsic
)

func (k CallableKind) String() string {
	switch k {
	case CallableMacro:
		return "macro"
	case CallableExternalMacro:
		return "extern macro"
	case CallableBuiltin:
		return "builtin"
	case CallableExternalRuntime:
		return "runtime"
	case CallableIntrinsic:
		return "intrinsic"
	default:
		return fmt.Sprintf("CallableKind(%d)", k)
	}
}

// CallableNode is the declaration-side description of a callable: its
// category, linkage, name, optional type parameters, and syntactic signature.
type CallableNode struct {
	Kind       CallableKind
	JavaScript bool // JS linkage, only meaningful for builtins
	Name       Ident
	TypeParams []Ident // non-empty iff the callable is generic
	Sig        *SignatureNode
	Pos        source.Span
}

// IsGeneric reports whether the callable declares type parameters.
func (c *CallableNode) IsGeneric() bool { return len(c.TypeParams) > 0 }

// SignatureNode is the syntactic calling shape of a callable.
type SignatureNode struct {
	Params      []ParamNode
	Varargs     bool
	VarargsName string
	Return      *TypeExpr // nil means void
	Pos         source.Span
}

type ParamNode struct {
	Name Ident
	Type *TypeExpr
}
