package symbols

import (
	"strings"

	"quill/internal/types"
)

// GeneratedCallableName derives the deterministic backend symbol name for a
// specialization: the base name followed by the mangled concrete type names
// in order. Equal inputs always produce equal output.
func GeneratedCallableName(base string, in *types.Interner, typeArgs []types.TypeID) string {
	var sb strings.Builder
	sb.WriteString(base)
	for _, t := range typeArgs {
		sb.WriteByte('_')
		sb.WriteString(mangleTypeName(in.Name(t)))
	}
	return sb.String()
}

// ReadableCallableName renders the human-facing name: Base<T1, T2>.
func ReadableCallableName(base string, in *types.Interner, typeArgs []types.TypeID) string {
	return base + types.RenderTypeList(in, typeArgs)
}

func mangleTypeName(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}
