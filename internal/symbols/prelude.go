package symbols

import (
	"quill/internal/source"
	"quill/internal/types"
)

// Distinguished type names the calling-convention validators check against.
const (
	// ContextTypeName is the execution-context type every builtin and
	// runtime function must take first.
	ContextTypeName = "Context"
	// ObjectTypeName is the generic tagged-value type required as the
	// second parameter of JS-linked builtins.
	ObjectTypeName = "Object"
)

var preludeTypes = []string{
	"void",
	"never",
	"bool",
	"int31",
	"int32",
	"intptr",
	"float64",
	"String",
	ContextTypeName,
	ObjectTypeName,
	"Smi",
	"HeapObject",
}

// InstallPrelude declares the primitive types in the universe scope as
// already-resolved aliases. Everything user code writes resolves down to
// these (or to struct declarations).
func InstallPrelude(t *Table, in *types.Interner) {
	for _, name := range preludeTypes {
		typeID := in.DeclareAbstract(name)
		aliasID := t.NewAlias(TypeAlias{
			Name:   t.Strings.Intern(name),
			Scope:  t.Universe,
			State:  AliasResolved,
			Target: typeID,
		})
		t.Declare(t.Universe, name, Symbol{
			Kind:  SymbolTypeAlias,
			Span:  source.Span{},
			Alias: aliasID,
		})
	}
}
