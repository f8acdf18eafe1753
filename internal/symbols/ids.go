package symbols

// ScopeID identifies a scope in the registry arena.
type ScopeID uint32

const (
	// NoScopeID marks the absence of a scope reference.
	NoScopeID ScopeID = 0
)

// IsValid reports whether the scope ID refers to an allocated scope.
func (id ScopeID) IsValid() bool { return id != NoScopeID }

// SymbolID identifies a symbol inside the registry arena.
type SymbolID uint32

const (
	// NoSymbolID marks the absence of a symbol reference.
	NoSymbolID SymbolID = 0
)

// IsValid reports whether the symbol ID refers to an allocated symbol.
func (id SymbolID) IsValid() bool { return id != NoSymbolID }

// GenericID identifies a generic template in the registry arena.
type GenericID uint32

const (
	// NoGenericID marks the absence of a generic reference.
	NoGenericID GenericID = 0
)

// IsValid reports whether the generic ID refers to an allocated generic.
func (id GenericID) IsValid() bool { return id != NoGenericID }

// CallableID identifies a materialized callable in the registry arena.
type CallableID uint32

const (
	// NoCallableID marks the absence of a callable reference.
	NoCallableID CallableID = 0
)

// IsValid reports whether the callable ID refers to an allocated callable.
func (id CallableID) IsValid() bool { return id != NoCallableID }

// AliasID identifies a type alias entry in the registry arena.
type AliasID uint32

const (
	// NoAliasID marks the absence of an alias reference.
	NoAliasID AliasID = 0
)

// IsValid reports whether the alias ID refers to an allocated alias.
func (id AliasID) IsValid() bool { return id != NoAliasID }
