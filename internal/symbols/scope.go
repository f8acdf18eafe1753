package symbols

import (
	"quill/internal/source"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid ScopeKind = iota
	ScopeUniverse
	ScopeNamespace
	ScopeCallable  // per-callable scope holding its type-parameter bindings
	ScopeTemporary // throwaway scope for signature instantiation, never registered
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeUniverse:
		return "universe"
	case ScopeNamespace:
		return "namespace"
	case ScopeCallable:
		return "callable"
	case ScopeTemporary:
		return "temporary"
	default:
		return "invalid"
	}
}

// Scope models a lexical scope with a parent-child hierarchy. Names map to
// symbol lists: several declarables (overloaded generics, macros) may share
// one name, and declaring never overwrites.
type Scope struct {
	Kind      ScopeKind
	Name      source.StringID
	Parent    ScopeID
	Span      source.Span
	NameIndex map[source.StringID][]SymbolID
	Symbols   []SymbolID
}

// QualifiedName renders the scope chain as a::b::c, skipping the universe.
func (t *Table) QualifiedName(id ScopeID) string {
	var parts []string
	for id.IsValid() {
		scope := t.Scopes.Get(id)
		if scope == nil || scope.Kind == ScopeUniverse {
			break
		}
		if name := t.Strings.Lookup(scope.Name); name != "" {
			parts = append(parts, name)
		}
		id = scope.Parent
	}
	out := ""
	for i := len(parts) - 1; i >= 0; i-- {
		if out != "" {
			out += "::"
		}
		out += parts[i]
	}
	return out
}
