package types

import "fmt"

// TypeID uniquely identifies a canonical type inside the interner.
// Two type references denote the same type iff their resolved TypeIDs are
// equal; aliases resolve to their target's ID, so equality is nominal and
// independent of construction order.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates the categories of canonical types.
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindAbstract is a declared nominal type with no visible structure
	// (primitives and everything introduced by the prelude).
	KindAbstract
	// KindStruct is a composite value type. Struct-category types are
	// rejected as builtin/runtime parameter and return types.
	KindStruct
	// KindConstexpr is the compile-time-evaluable counterpart of a base
	// type, written 'constexpr T'.
	KindConstexpr
)

func (k Kind) String() string {
	switch k {
	case KindAbstract:
		return "abstract"
	case KindStruct:
		return "struct"
	case KindConstexpr:
		return "constexpr"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is the canonical descriptor stored in the interner. Name carries the
// declared (display) name; Elem is the base type for constexpr wrappers.
type Type struct {
	Kind Kind
	Name string
	Elem TypeID // constexpr base, NoTypeID otherwise
}

// StructField describes one field of a struct-category type.
type StructField struct {
	Name string
	Type TypeID
}
