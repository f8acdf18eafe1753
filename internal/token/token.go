package token

import (
	"quill/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwType, KwStruct, KwNamespace, KwConst, KwExtern, KwJavaScript,
		KwMacro, KwBuiltin, KwRuntime, KwIntrinsic, KwConstexpr:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsEOF reports whether the token ends the stream.
func (t Token) IsEOF() bool { return t.Kind == EOF }
