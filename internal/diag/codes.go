package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexUnterminatedBody   Code = 1003
	LexBadInclude         Code = 1004

	// Syntactic
	SynUnexpectedToken    Code = 2001
	SynExpectIdentifier   Code = 2002
	SynExpectType         Code = 2003
	SynUnclosedBrace      Code = 2004
	SynUnclosedParen      Code = 2005
	SynUnclosedAngle      Code = 2006
	SynExpectSemicolon    Code = 2007
	SynVariadicMustBeLast Code = 2008
	SynEmptyTypeArgs      Code = 2009

	// Declaration resolution
	DeclMalformed                     Code = 3001
	DeclSignatureConvention           Code = 3002
	DeclParamCountMismatch            Code = 3003
	DeclNoSuchGeneric                 Code = 3004
	DeclNoMatchingOverload            Code = 3005
	DeclAmbiguousOverload             Code = 3006
	DeclDuplicateSpecialization       Code = 3007
	DeclMissingImplicitSpecialization Code = 3008
	DeclTypeConstraint                Code = 3009
	DeclDuplicateSymbol               Code = 3010
	DeclUnresolvedType                Code = 3011

	// Driver / IO
	IOReadFailed    Code = 4001
	IOManifestError Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown error",

	LexUnknownChar:        "unknown character",
	LexUnterminatedString: "unterminated string literal",
	LexUnterminatedBody:   "unterminated body block",
	LexBadInclude:         "malformed include directive",

	SynUnexpectedToken:    "unexpected token",
	SynExpectIdentifier:   "expected identifier",
	SynExpectType:         "expected type",
	SynUnclosedBrace:      "unclosed brace",
	SynUnclosedParen:      "unclosed parenthesis",
	SynUnclosedAngle:      "unclosed angle bracket",
	SynExpectSemicolon:    "expected semicolon",
	SynVariadicMustBeLast: "variadic parameter must be last",
	SynEmptyTypeArgs:      "empty type argument list",

	DeclMalformed:                     "malformed declaration",
	DeclSignatureConvention:           "calling convention violation",
	DeclParamCountMismatch:            "type parameter count mismatch",
	DeclNoSuchGeneric:                 "no such generic",
	DeclNoMatchingOverload:            "no matching generic overload",
	DeclAmbiguousOverload:             "ambiguous generic overload",
	DeclDuplicateSpecialization:       "duplicate specialization",
	DeclMissingImplicitSpecialization: "missing specialization",
	DeclTypeConstraint:                "type constraint violation",
	DeclDuplicateSymbol:               "duplicate symbol",
	DeclUnresolvedType:                "unresolved type",

	IOReadFailed:    "failed to read input",
	IOManifestError: "invalid project manifest",
}

// ID returns the short stable identifier, e.g. "DECL3005".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("DECL%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
