// Package parser builds the declaration tree from a token stream. Callable
// bodies are kept as raw spans; this front end only understands the
// declaration grammar.
package parser

import (
	"fmt"

	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/lexer"
	"quill/internal/source"
	"quill/internal/token"
)

type Parser struct {
	toks     []token.Token
	pos      int
	reporter diag.Reporter
}

// ParseFile tokenizes and parses a whole file into top-level declarations.
func ParseFile(file *source.File, reporter diag.Reporter) []ast.Decl {
	p := &Parser{
		toks:     lexer.Tokenize(file, reporter),
		reporter: reporter,
	}
	return p.parseDecls(token.EOF)
}

func (p *Parser) peek() token.Token  { return p.toks[p.pos] }
func (p *Parser) at(k token.Kind) bool { return p.peek().Kind == k }

func (p *Parser) peekAt(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[p.pos+n]
}

func (p *Parser) bump() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(k token.Kind, code diag.Code) (token.Token, bool) {
	if p.at(k) {
		return p.bump(), true
	}
	tok := p.peek()
	p.report(code, tok.Span, "expected %s, found %s", k, tok.Kind)
	return tok, false
}

func (p *Parser) report(code diag.Code, span source.Span, format string, args ...any) {
	if p.reporter == nil {
		return
	}
	diag.ReportError(p.reporter, code, span, fmt.Sprintf(format, args...)).Emit()
}

// parseDecls parses declarations until the closing kind (EOF for files,
// RBrace for namespace bodies). Failed declarations are skipped to the next
// likely boundary so siblings still get parsed.
func (p *Parser) parseDecls(until token.Kind) []ast.Decl {
	var out []ast.Decl
	for !p.at(until) && !p.at(token.EOF) {
		decl := p.parseDecl()
		if decl == nil {
			p.recover()
			continue
		}
		out = append(out, decl)
	}
	if until != token.EOF {
		p.expect(until, diag.SynUnclosedBrace)
	}
	return out
}

func (p *Parser) parseDecl() ast.Decl {
	switch tok := p.peek(); tok.Kind {
	case token.KwType:
		return p.parseTypeDecl()
	case token.KwStruct:
		return p.parseStructDecl()
	case token.KwNamespace:
		return p.parseNamespaceDecl()
	case token.KwConst:
		return p.parseConstDecl()
	case token.Include:
		return p.parseIncludeDecl()
	case token.KwExtern:
		switch p.peekAt(1).Kind {
		case token.KwConst:
			return p.parseExternConstDecl()
		case token.Ident:
			return p.parseSpecialization(true)
		default:
			return p.parseCallableDecl()
		}
	case token.KwJavaScript, token.KwMacro, token.KwBuiltin, token.KwRuntime, token.KwIntrinsic:
		return p.parseCallableDecl()
	case token.Ident:
		if p.peekAt(1).Kind == token.Lt {
			return p.parseSpecialization(false)
		}
		p.report(diag.SynUnexpectedToken, tok.Span, "unexpected identifier %q at top level", tok.Text)
		return nil
	default:
		p.report(diag.SynUnexpectedToken, tok.Span, "unexpected %s at top level", tok.Kind)
		return nil
	}
}

// recover skips ahead to the token after the next top-level ';' or past a
// balanced '{...}' so one bad declaration does not swallow its siblings.
func (p *Parser) recover() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.bump().Kind {
		case token.Semicolon:
			if depth == 0 {
				return
			}
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth <= 0 {
				return
			}
		}
	}
}

func (p *Parser) parseIdent() (ast.Ident, bool) {
	tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		return ast.Ident{}, false
	}
	return ast.Ident{Name: tok.Text, Pos: tok.Span}, true
}

func (p *Parser) parseTypeDecl() ast.Decl {
	start := p.bump() // 'type'
	name, ok := p.parseIdent()
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken); !ok {
		return nil
	}
	target := p.parseTypeExpr()
	if target == nil {
		return nil
	}
	end, _ := p.expect(token.Semicolon, diag.SynExpectSemicolon)
	return &ast.TypeDecl{
		Name:   name,
		Target: target,
		Pos:    start.Span.Cover(end.Span),
	}
}

func (p *Parser) parseStructDecl() ast.Decl {
	start := p.bump() // 'struct'
	name, ok := p.parseIdent()
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken); !ok {
		return nil
	}
	var fields []ast.StructField
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		fieldName, ok := p.parseIdent()
		if !ok {
			return nil
		}
		if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken); !ok {
			return nil
		}
		fieldType := p.parseTypeExpr()
		if fieldType == nil {
			return nil
		}
		p.expect(token.Semicolon, diag.SynExpectSemicolon)
		fields = append(fields, ast.StructField{Name: fieldName, Type: fieldType})
	}
	end, _ := p.expect(token.RBrace, diag.SynUnclosedBrace)
	return &ast.StructDecl{
		Name:   name,
		Fields: fields,
		Pos:    start.Span.Cover(end.Span),
	}
}

func (p *Parser) parseNamespaceDecl() ast.Decl {
	start := p.bump() // 'namespace'
	name, ok := p.parseIdent()
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken); !ok {
		return nil
	}
	body := p.parseDecls(token.RBrace)
	end := p.peekAt(-1)
	return &ast.NamespaceDecl{
		Name: name,
		Body: body,
		Pos:  start.Span.Cover(end.Span),
	}
}

func (p *Parser) parseConstDecl() ast.Decl {
	start := p.bump() // 'const'
	name, ok := p.parseIdent()
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken); !ok {
		return nil
	}
	declType := p.parseTypeExpr()
	if declType == nil {
		return nil
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken); !ok {
		return nil
	}
	exprSpan := p.skipRawExpr()
	end, _ := p.expect(token.Semicolon, diag.SynExpectSemicolon)
	return &ast.ConstDecl{
		Name: name,
		Type: declType,
		Expr: exprSpan,
		Pos:  start.Span.Cover(end.Span),
	}
}

func (p *Parser) parseExternConstDecl() ast.Decl {
	start := p.bump() // 'extern'
	p.bump()          // 'const'
	name, ok := p.parseIdent()
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken); !ok {
		return nil
	}
	declType := p.parseTypeExpr()
	if declType == nil {
		return nil
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken); !ok {
		return nil
	}
	literal := p.bump()
	end, _ := p.expect(token.Semicolon, diag.SynExpectSemicolon)
	return &ast.ExternConstDecl{
		Name:    name,
		Type:    declType,
		Literal: literal.Text,
		Pos:     start.Span.Cover(end.Span),
	}
}

func (p *Parser) parseIncludeDecl() ast.Decl {
	start := p.bump() // '#include'
	path, ok := p.expect(token.StringLit, diag.LexBadInclude)
	if !ok {
		return nil
	}
	return &ast.IncludeDecl{
		Path: path.Text,
		Pos:  start.Span.Cover(path.Span),
	}
}

// skipRawExpr consumes tokens up to the terminating ';' without analyzing
// them and returns the covered span.
func (p *Parser) skipRawExpr() source.Span {
	start := p.peek().Span
	span := start
	for !p.at(token.Semicolon) && !p.at(token.EOF) {
		span = span.Cover(p.bump().Span)
	}
	return span
}
