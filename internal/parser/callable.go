package parser

import (
	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/token"
)

func (p *Parser) parseCallableDecl() ast.Decl {
	start := p.peek()

	extern := false
	if p.at(token.KwExtern) {
		extern = true
		p.bump()
	}
	javascript := false
	if p.at(token.KwJavaScript) {
		javascript = true
		p.bump()
	}

	var kind ast.CallableKind
	switch tok := p.peek(); tok.Kind {
	case token.KwMacro:
		if extern {
			kind = ast.CallableExternalMacro
		} else {
			kind = ast.CallableMacro
		}
	case token.KwBuiltin:
		kind = ast.CallableBuiltin
	case token.KwRuntime:
		if !extern {
			p.report(diag.SynUnexpectedToken, tok.Span, "runtime functions must be declared 'extern runtime'")
			return nil
		}
		kind = ast.CallableExternalRuntime
	case token.KwIntrinsic:
		kind = ast.CallableIntrinsic
	default:
		p.report(diag.SynUnexpectedToken, tok.Span, "expected 'macro', 'builtin', 'runtime', or 'intrinsic', found %s", tok.Kind)
		return nil
	}
	p.bump() // the kind keyword

	if javascript && kind != ast.CallableBuiltin {
		p.report(diag.SynUnexpectedToken, start.Span, "'javascript' linkage is only valid on builtins")
		return nil
	}

	name, ok := p.parseIdent()
	if !ok {
		return nil
	}

	var typeParams []ast.Ident
	if p.at(token.Lt) {
		typeParams, ok = p.parseTypeParams()
		if !ok {
			return nil
		}
	}

	sig := p.parseSignature()
	if sig == nil {
		return nil
	}

	callable := &ast.CallableNode{
		Kind:       kind,
		JavaScript: javascript,
		Name:       name,
		TypeParams: typeParams,
		Sig:        sig,
		Pos:        start.Span.Cover(sig.Pos),
	}

	var body *ast.Body
	endSpan := sig.Pos
	if p.at(token.LBrace) {
		body = p.parseBody()
		if body == nil {
			return nil
		}
		endSpan = body.Pos
	} else {
		end, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon)
		if !ok {
			return nil
		}
		endSpan = end.Span
	}

	pos := start.Span.Cover(endSpan)
	if callable.IsGeneric() {
		return &ast.GenericDecl{Callable: callable, Body: body, Pos: pos}
	}
	return &ast.StandardDecl{Callable: callable, Body: body, Pos: pos}
}

func (p *Parser) parseSpecialization(extern bool) ast.Decl {
	start := p.peek()
	if extern {
		p.bump() // 'extern'
	}
	name, ok := p.parseIdent()
	if !ok {
		return nil
	}

	typeArgs, ok := p.parseTypeArgs()
	if !ok {
		return nil
	}

	sig := p.parseSignature()
	if sig == nil {
		return nil
	}

	var body *ast.Body
	endSpan := sig.Pos
	if p.at(token.LBrace) {
		body = p.parseBody()
		if body == nil {
			return nil
		}
		endSpan = body.Pos
	} else {
		end, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon)
		if !ok {
			return nil
		}
		endSpan = end.Span
	}

	return &ast.SpecializationDecl{
		Name:     name,
		TypeArgs: typeArgs,
		Sig:      sig,
		External: extern,
		Body:     body,
		Pos:      start.Span.Cover(endSpan),
	}
}

// parseTypeParams parses <T, U> after a generic callable name. The list is
// never empty: a bare <> fails on the missing identifier.
func (p *Parser) parseTypeParams() ([]ast.Ident, bool) {
	p.bump() // '<'
	if p.at(token.Gt) {
		p.report(diag.SynEmptyTypeArgs, p.peek().Span, "type parameter list cannot be empty")
		return nil, false
	}
	var params []ast.Ident
	for {
		name, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		params = append(params, name)
		if p.at(token.Comma) {
			p.bump()
			continue
		}
		break
	}
	if _, ok := p.expect(token.Gt, diag.SynUnclosedAngle); !ok {
		return nil, false
	}
	return params, true
}

// parseTypeArgs parses <Type, Type> in a specialization head.
func (p *Parser) parseTypeArgs() ([]*ast.TypeExpr, bool) {
	if _, ok := p.expect(token.Lt, diag.SynUnexpectedToken); !ok {
		return nil, false
	}
	if p.at(token.Gt) {
		p.report(diag.SynEmptyTypeArgs, p.peek().Span, "type argument list cannot be empty")
		return nil, false
	}
	var args []*ast.TypeExpr
	for {
		arg := p.parseTypeExpr()
		if arg == nil {
			return nil, false
		}
		args = append(args, arg)
		if p.at(token.Comma) {
			p.bump()
			continue
		}
		break
	}
	if _, ok := p.expect(token.Gt, diag.SynUnclosedAngle); !ok {
		return nil, false
	}
	return args, true
}

func (p *Parser) parseSignature() *ast.SignatureNode {
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken)
	if !ok {
		return nil
	}
	sig := &ast.SignatureNode{}
	for !p.at(token.RParen) && !p.at(token.EOF) {
		if p.at(token.Ellipsis) {
			ell := p.bump()
			restName, ok := p.parseIdent()
			if !ok {
				return nil
			}
			sig.Varargs = true
			sig.VarargsName = restName.Name
			if !p.at(token.RParen) {
				p.report(diag.SynVariadicMustBeLast, ell.Span, "rest parameter must be the last parameter")
				return nil
			}
			break
		}
		paramName, ok := p.parseIdent()
		if !ok {
			return nil
		}
		if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken); !ok {
			return nil
		}
		paramType := p.parseTypeExpr()
		if paramType == nil {
			return nil
		}
		sig.Params = append(sig.Params, ast.ParamNode{Name: paramName, Type: paramType})
		if p.at(token.Comma) {
			p.bump()
		}
	}
	closeTok, ok := p.expect(token.RParen, diag.SynUnclosedParen)
	if !ok {
		return nil
	}
	sig.Pos = open.Span.Cover(closeTok.Span)
	if p.at(token.Colon) {
		p.bump()
		ret := p.parseTypeExpr()
		if ret == nil {
			return nil
		}
		sig.Return = ret
		sig.Pos = sig.Pos.Cover(ret.Pos)
	}
	return sig
}

func (p *Parser) parseTypeExpr() *ast.TypeExpr {
	start := p.peek()
	constexpr := false
	if p.at(token.KwConstexpr) {
		constexpr = true
		p.bump()
	}
	first, ok := p.parseIdent()
	if !ok {
		p.report(diag.SynExpectType, start.Span, "expected type name")
		return nil
	}
	parts := []ast.Ident{first}
	for p.at(token.ColonColon) {
		p.bump()
		next, ok := p.parseIdent()
		if !ok {
			return nil
		}
		parts = append(parts, next)
	}
	pos := start.Span.Cover(parts[len(parts)-1].Pos)
	return &ast.TypeExpr{
		Constexpr: constexpr,
		Parts:     parts,
		Pos:       pos,
	}
}

// parseBody consumes a balanced '{...}' block and records only its span.
func (p *Parser) parseBody() *ast.Body {
	open := p.bump() // '{'
	depth := 1
	span := open.Span
	for depth > 0 {
		if p.at(token.EOF) {
			p.report(diag.LexUnterminatedBody, open.Span, "unterminated body block")
			return nil
		}
		tok := p.bump()
		switch tok.Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
		}
		span = span.Cover(tok.Span)
	}
	return &ast.Body{Pos: span}
}
