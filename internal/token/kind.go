package token

import "fmt"

// Kind enumerates the token kinds of the quill declaration language.
type Kind uint8

const (
	Invalid Kind = iota
	EOF

	Ident
	StringLit
	NumberLit

	// Punctuation
	LParen
	RParen
	LBrace
	RBrace
	Lt
	Gt
	Comma
	Colon
	ColonColon
	Semicolon
	Assign
	Ellipsis
	Op // any other operator character run, only meaningful inside bodies

	// Keywords
	KwType
	KwStruct
	KwNamespace
	KwConst
	KwExtern
	KwJavaScript
	KwMacro
	KwBuiltin
	KwRuntime
	KwIntrinsic
	KwConstexpr

	// Directives
	Include // "#include"
)

var kindNames = map[Kind]string{
	Invalid:      "invalid",
	EOF:          "eof",
	Ident:        "identifier",
	StringLit:    "string",
	NumberLit:    "number",
	LParen:       "'('",
	RParen:       "')'",
	LBrace:       "'{'",
	RBrace:       "'}'",
	Lt:           "'<'",
	Gt:           "'>'",
	Comma:        "','",
	Colon:        "':'",
	ColonColon:   "'::'",
	Semicolon:    "';'",
	Assign:       "'='",
	Ellipsis:     "'...'",
	Op:           "operator",
	KwType:       "'type'",
	KwStruct:     "'struct'",
	KwNamespace:  "'namespace'",
	KwConst:      "'const'",
	KwExtern:     "'extern'",
	KwJavaScript: "'javascript'",
	KwMacro:      "'macro'",
	KwBuiltin:    "'builtin'",
	KwRuntime:    "'runtime'",
	KwIntrinsic:  "'intrinsic'",
	KwConstexpr:  "'constexpr'",
	Include:      "'#include'",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Keywords maps identifier text to keyword kinds.
var Keywords = map[string]Kind{
	"type":       KwType,
	"struct":     KwStruct,
	"namespace":  KwNamespace,
	"const":      KwConst,
	"extern":     KwExtern,
	"javascript": KwJavaScript,
	"macro":      KwMacro,
	"builtin":    KwBuiltin,
	"runtime":    KwRuntime,
	"intrinsic":  KwIntrinsic,
	"constexpr":  KwConstexpr,
}
