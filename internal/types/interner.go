package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Interner owns every canonical type of a compilation. Declared (nominal)
// types always get a fresh TypeID; constexpr wrappers are memoized per base
// so 'constexpr T' written twice is the same type.
type Interner struct {
	types     []Type
	constexpr map[TypeID]TypeID
	structs   map[TypeID][]StructField
}

// NewInterner constructs an empty interner. Index 0 is reserved for
// NoTypeID; primitive types are declared by the prelude, not here.
func NewInterner() *Interner {
	in := &Interner{
		constexpr: make(map[TypeID]TypeID),
		structs:   make(map[TypeID][]StructField),
	}
	in.types = append(in.types, Type{Kind: KindInvalid, Name: "<invalid>"})
	return in
}

func (in *Interner) next() TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	return TypeID(lenTypes)
}

// DeclareAbstract registers a new nominal type. Every call creates a
// distinct type; declared identity is what makes equality canonical.
func (in *Interner) DeclareAbstract(name string) TypeID {
	id := in.next()
	in.types = append(in.types, Type{Kind: KindAbstract, Name: name})
	return id
}

// DeclareStruct registers a new struct-category type with its fields.
func (in *Interner) DeclareStruct(name string, fields []StructField) TypeID {
	id := in.next()
	in.types = append(in.types, Type{Kind: KindStruct, Name: name})
	in.structs[id] = fields
	return id
}

// Constexpr returns the memoized constexpr counterpart of base.
func (in *Interner) Constexpr(base TypeID) TypeID {
	if id, ok := in.constexpr[base]; ok {
		return id
	}
	baseType := in.MustLookup(base)
	id := in.next()
	in.types = append(in.types, Type{
		Kind: KindConstexpr,
		Name: "constexpr " + baseType.Name,
		Elem: base,
	})
	in.constexpr[base] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Name renders the display name of a type, "<invalid>" for NoTypeID.
func (in *Interner) Name(id TypeID) string {
	tt, ok := in.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	return tt.Name
}

// IsConstexpr reports whether id belongs to the constexpr category.
func (in *Interner) IsConstexpr(id TypeID) bool {
	tt, ok := in.Lookup(id)
	return ok && tt.Kind == KindConstexpr
}

// IsStruct reports whether id belongs to the struct category.
func (in *Interner) IsStruct(id TypeID) bool {
	tt, ok := in.Lookup(id)
	return ok && tt.Kind == KindStruct
}

// StructFields returns the fields of a struct-category type.
func (in *Interner) StructFields(id TypeID) []StructField {
	return in.structs[id]
}

// Len returns the number of canonical types, including the invalid sentinel.
func (in *Interner) Len() int {
	return len(in.types)
}
