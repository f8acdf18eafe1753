package types

import (
	"strings"
)

// Signature is a callable's calling shape: ordered parameter types with
// names, the count of leading implicit parameters, the return type, and the
// varargs flag. Signatures are value types and never mutated after creation.
type Signature struct {
	ParamNames    []string
	ParamTypes    []TypeID
	ImplicitCount int
	Return        TypeID
	Varargs       bool
}

// ExplicitTypes returns the parameter types beyond the leading implicit
// parameters. Overload matching compares only this portion.
func (s Signature) ExplicitTypes() []TypeID {
	if s.ImplicitCount >= len(s.ParamTypes) {
		return nil
	}
	return s.ParamTypes[s.ImplicitCount:]
}

// HasSameTypesAs reports whether two signatures agree on the explicit
// parameter list and the return type. Implicit leading parameters are
// ignored on both sides.
func (s Signature) HasSameTypesAs(other Signature) bool {
	a, b := s.ExplicitTypes(), other.ExplicitTypes()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return s.Return == other.Return
}

// Render formats the signature for diagnostics: (A, B, ...name): R.
func (s Signature) Render(in *Interner) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, t := range s.ParamTypes {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(in.Name(t))
	}
	if s.Varargs {
		if len(s.ParamTypes) > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("...")
	}
	sb.WriteString("): ")
	sb.WriteString(in.Name(s.Return))
	return sb.String()
}

// RenderTypeList formats a type vector as "<A, B>" for diagnostics and
// readable specialization names.
func RenderTypeList(in *Interner, ids []TypeID) string {
	var sb strings.Builder
	sb.WriteByte('<')
	for i, t := range ids {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(in.Name(t))
	}
	sb.WriteByte('>')
	return sb.String()
}
