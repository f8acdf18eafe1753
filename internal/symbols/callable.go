package symbols

import (
	"fmt"

	"quill/internal/ast"
	"quill/internal/source"
	"quill/internal/types"
)

// BuiltinKind distinguishes how a builtin is entered at runtime.
type BuiltinKind uint8

const (
	// BuiltinStub is a non-JS-linked builtin.
	BuiltinStub BuiltinKind = iota
	// BuiltinFixedArgsJS is JS-linked with a fixed parameter count.
	BuiltinFixedArgsJS
	// BuiltinVarArgsJS is JS-linked with rest parameters.
	BuiltinVarArgsJS
)

func (k BuiltinKind) String() string {
	switch k {
	case BuiltinStub:
		return "stub"
	case BuiltinFixedArgsJS:
		return "fixed-args-js"
	case BuiltinVarArgsJS:
		return "varargs-js"
	default:
		return fmt.Sprintf("BuiltinKind(%d)", k)
	}
}

// CallableCategory is the closed variant set of resolved callables.
type CallableCategory uint8

const (
	CallableInvalid CallableCategory = iota
	CallableBuiltin
	CallableMacro
	CallableRuntimeFunction
	CallableIntrinsic
)

func (c CallableCategory) String() string {
	switch c {
	case CallableBuiltin:
		return "builtin"
	case CallableMacro:
		return "macro"
	case CallableRuntimeFunction:
		return "runtime function"
	case CallableIntrinsic:
		return "intrinsic"
	default:
		return "invalid"
	}
}

// Callable is a resolved, concrete executable unit. It is immutable after
// creation; one Callable exists per distinct specialization key, or per
// non-generic declaration.
type Callable struct {
	Category CallableCategory
	Builtin  BuiltinKind // meaningful for CallableBuiltin only

	// GeneratedName is the deterministic backend symbol name;
	// ReadableName is the human-facing rendering (Name<T1, T2> for
	// specializations).
	GeneratedName string
	ReadableName  string

	Signature types.Signature
	Body      *ast.Body // nil for externals and intrinsics
	Span      source.Span

	// Scope is the callable's own scope; specialization type-parameter
	// bindings live here so the body can reference them.
	Scope ScopeID
}
