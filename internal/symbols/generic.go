package symbols

import (
	"strconv"

	"quill/internal/ast"
	"quill/internal/source"
	"quill/internal/types"
)

// Generic is a callable template. It captures the declaration and the scope
// that was active at its declaration site: specializations are typically
// written in a different scope, and instantiation must happen in the
// generic's own defining scope. The specialization cache grows
// monotonically and is never overwritten.
type Generic struct {
	Name        source.StringID
	Decl        *ast.GenericDecl
	ParentScope ScopeID
	Span        source.Span

	cache map[string]CallableID
	keys  map[string][]types.TypeID
}

// SpecializationKey identifies one concrete instantiation request:
// a generic plus an ordered vector of canonical types.
type SpecializationKey struct {
	Generic GenericID
	Types   []types.TypeID
}

func cacheKey(ids []types.TypeID) string {
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += ","
		}
		out += strconv.FormatUint(uint64(id), 10)
	}
	return out
}

// Specialization returns the cached callable for a type vector, if any.
func (g *Generic) Specialization(ids []types.TypeID) (CallableID, bool) {
	id, ok := g.cache[cacheKey(ids)]
	return id, ok
}

// AddSpecialization caches a materialized callable under the exact type
// vector. Registering a second callable for the same vector is an internal
// fault: callers must check Specialization first.
func (g *Generic) AddSpecialization(ids []types.TypeID, callable CallableID) {
	key := cacheKey(ids)
	if _, exists := g.cache[key]; exists {
		panic("symbols: duplicate specialization registered for " + key)
	}
	if g.cache == nil {
		g.cache = make(map[string]CallableID)
		g.keys = make(map[string][]types.TypeID)
	}
	g.cache[key] = callable
	g.keys[key] = append([]types.TypeID(nil), ids...)
}

// SpecializationCount reports how many instantiations were materialized.
func (g *Generic) SpecializationCount() int { return len(g.cache) }

// TypeParamCount returns the declared type-parameter count.
func (g *Generic) TypeParamCount() int {
	if g.Decl == nil || g.Decl.Callable == nil {
		return 0
	}
	return len(g.Decl.Callable.TypeParams)
}
