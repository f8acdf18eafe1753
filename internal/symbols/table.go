package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"quill/internal/source"
)

// Table is the symbol registry: scope and symbol arenas plus the generic,
// callable, and alias storage shared by the whole compilation. Declarations
// inserted are retrievable immediately and never silently overwritten;
// names map to symbol lists.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols
	Strings *source.Interner

	Universe ScopeID

	generics  []Generic
	callables []Callable
	aliases   []TypeAlias
}

// NewTable builds a fresh table with a universe scope. If strings is nil,
// a fresh interner is allocated.
func NewTable(strings *source.Interner) *Table {
	if strings == nil {
		strings = source.NewInterner()
	}
	t := &Table{
		Scopes:  NewScopes(32),
		Symbols: NewSymbols(64),
		Strings: strings,
	}
	t.Universe = t.NewScope(ScopeUniverse, NoScopeID, source.NoStringID, source.Span{})
	return t
}

// NewScope allocates a scope and returns its ID.
func (t *Table) NewScope(kind ScopeKind, parent ScopeID, name source.StringID, span source.Span) ScopeID {
	return t.Scopes.New(kind, parent, name, span)
}

// Declare inserts a symbol under name into scope and returns its ID.
// Multiple symbols may share a name (overloaded generics and callables);
// insertion appends, never replaces.
func (t *Table) Declare(scope ScopeID, name string, sym Symbol) SymbolID {
	sc := t.Scopes.Get(scope)
	if sc == nil {
		panic(fmt.Errorf("symbols: declare %q into invalid scope %d", name, scope))
	}
	sym.Name = t.Strings.Intern(name)
	sym.Owner = scope
	id := t.Symbols.New(sym)
	sc.NameIndex[sym.Name] = append(sc.NameIndex[sym.Name], id)
	sc.Symbols = append(sc.Symbols, id)
	return id
}

// LookupShallow returns the symbols declared under name in exactly this
// scope, in declaration order.
func (t *Table) LookupShallow(scope ScopeID, name string) []SymbolID {
	sc := t.Scopes.Get(scope)
	if sc == nil {
		return nil
	}
	return sc.NameIndex[t.Strings.Intern(name)]
}

// Lookup collects symbols declared under name across the enclosing scope
// chain, outermost first (so inner declarations come last and can shadow by
// position).
func (t *Table) Lookup(scope ScopeID, name string) []SymbolID {
	nameID := t.Strings.Intern(name)
	var chain []ScopeID
	for scope.IsValid() {
		chain = append(chain, scope)
		sc := t.Scopes.Get(scope)
		if sc == nil {
			break
		}
		scope = sc.Parent
	}
	var out []SymbolID
	for i := len(chain) - 1; i >= 0; i-- {
		sc := t.Scopes.Get(chain[i])
		if sc == nil {
			continue
		}
		out = append(out, sc.NameIndex[nameID]...)
	}
	return out
}

// GetOrCreateNamespace returns the namespace called name inside parent,
// creating it on first reference. Finding more than one existing namespace
// of the same name in one scope is an invariant violation, not a user error.
func (t *Table) GetOrCreateNamespace(parent ScopeID, name string, span source.Span) (SymbolID, ScopeID) {
	var existing []SymbolID
	for _, symID := range t.LookupShallow(parent, name) {
		if t.Symbols.Get(symID).Kind == SymbolNamespace {
			existing = append(existing, symID)
		}
	}
	switch len(existing) {
	case 0:
		nameID := t.Strings.Intern(name)
		nsScope := t.NewScope(ScopeNamespace, parent, nameID, span)
		symID := t.Declare(parent, name, Symbol{
			Kind:      SymbolNamespace,
			Span:      span,
			Namespace: nsScope,
		})
		return symID, nsScope
	case 1:
		sym := t.Symbols.Get(existing[0])
		return existing[0], sym.Namespace
	default:
		panic(fmt.Errorf("symbols: namespace %q declared %d times in one scope", name, len(existing)))
	}
}

// NewGeneric allocates a generic template and returns its ID.
func (t *Table) NewGeneric(g Generic) GenericID {
	value, err := safecast.Conv[uint32](len(t.generics) + 1)
	if err != nil {
		panic(fmt.Errorf("generics arena overflow: %w", err))
	}
	t.generics = append(t.generics, g)
	return GenericID(value)
}

// GetGeneric returns the generic for an ID, or nil.
func (t *Table) GetGeneric(id GenericID) *Generic {
	if !id.IsValid() || int(id) > len(t.generics) {
		return nil
	}
	return &t.generics[id-1]
}

// NewCallable allocates a callable and returns its ID.
func (t *Table) NewCallable(c Callable) CallableID {
	value, err := safecast.Conv[uint32](len(t.callables) + 1)
	if err != nil {
		panic(fmt.Errorf("callables arena overflow: %w", err))
	}
	t.callables = append(t.callables, c)
	return CallableID(value)
}

// GetCallable returns the callable for an ID, or nil.
func (t *Table) GetCallable(id CallableID) *Callable {
	if !id.IsValid() || int(id) > len(t.callables) {
		return nil
	}
	return &t.callables[id-1]
}

// NewAlias allocates a type alias entry and returns its ID. Aliases keep
// declaration order so the resolution pass can enumerate them all.
func (t *Table) NewAlias(a TypeAlias) AliasID {
	value, err := safecast.Conv[uint32](len(t.aliases) + 1)
	if err != nil {
		panic(fmt.Errorf("aliases arena overflow: %w", err))
	}
	t.aliases = append(t.aliases, a)
	return AliasID(value)
}

// GetAlias returns the alias entry for an ID, or nil.
func (t *Table) GetAlias(id AliasID) *TypeAlias {
	if !id.IsValid() || int(id) > len(t.aliases) {
		return nil
	}
	return &t.aliases[id-1]
}

// AllAliases enumerates every alias ever declared, in declaration order.
func (t *Table) AllAliases() []AliasID {
	out := make([]AliasID, 0, len(t.aliases))
	for i := range t.aliases {
		out = append(out, AliasID(i+1))
	}
	return out
}
