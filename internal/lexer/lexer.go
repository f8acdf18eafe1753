package lexer

import (
	"fmt"

	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/token"
)

// Lexer turns a source file into a token stream. It never fails hard:
// unknown characters are reported and skipped.
type Lexer struct {
	file     *source.File
	cursor   Cursor
	reporter diag.Reporter
}

func New(file *source.File, reporter diag.Reporter) *Lexer {
	return &Lexer{
		file:     file,
		cursor:   NewCursor(file),
		reporter: reporter,
	}
}

// Tokenize scans the whole file, always appending a final EOF token.
func Tokenize(file *source.File, reporter diag.Reporter) []token.Token {
	lx := New(file, reporter)
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// Next returns the next significant token. After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	lx.skipTrivia()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.cursor.SpanFrom(lx.cursor.Mark())}
	}

	ch := lx.cursor.Peek()
	switch {
	case isIdentStart(ch):
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	case ch == '#':
		return lx.scanDirective()
	default:
		return lx.scanPunct()
	}
}

func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		switch ch := lx.cursor.Peek(); {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			lx.cursor.Bump()
		case ch == '/' && lx.cursor.PeekAt(1) == '/':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		case ch == '/' && lx.cursor.PeekAt(1) == '*':
			lx.cursor.Bump()
			lx.cursor.Bump()
			for !lx.cursor.EOF() {
				if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) == '/' {
					lx.cursor.Bump()
					lx.cursor.Bump()
					break
				}
				lx.cursor.Bump()
			}
		default:
			return
		}
	}
}

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	mark := lx.cursor.Mark()
	for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	text := lx.cursor.TextFrom(mark)
	kind := token.Ident
	if kw, ok := token.Keywords[text]; ok {
		kind = kw
	}
	return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(mark), Text: text}
}

func (lx *Lexer) scanNumber() token.Token {
	mark := lx.cursor.Mark()
	for !lx.cursor.EOF() && (isDec(lx.cursor.Peek()) || lx.cursor.Peek() == 'x' ||
		isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '.' || lx.cursor.Peek() == '_') {
		lx.cursor.Bump()
	}
	return token.Token{Kind: token.NumberLit, Span: lx.cursor.SpanFrom(mark), Text: lx.cursor.TextFrom(mark)}
}

func (lx *Lexer) scanString() token.Token {
	mark := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			span := lx.cursor.SpanFrom(mark)
			lx.report(diag.LexUnterminatedString, span, "unterminated string literal")
			return token.Token{Kind: token.StringLit, Span: span, Text: lx.cursor.TextFrom(mark)}
		}
		ch := lx.cursor.Bump()
		if ch == '\\' && !lx.cursor.EOF() {
			lx.cursor.Bump()
			continue
		}
		if ch == '"' {
			break
		}
	}
	span := lx.cursor.SpanFrom(mark)
	raw := lx.cursor.TextFrom(mark)
	return token.Token{Kind: token.StringLit, Span: span, Text: raw[1 : len(raw)-1]}
}

// scanDirective handles "#include"; any other '#' form is reported.
func (lx *Lexer) scanDirective() token.Token {
	mark := lx.cursor.Mark()
	lx.cursor.Bump() // '#'
	for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	span := lx.cursor.SpanFrom(mark)
	text := lx.cursor.TextFrom(mark)
	if text != "#include" {
		lx.report(diag.LexBadInclude, span, "unknown directive %q, expected '#include'", text)
		return token.Token{Kind: token.Invalid, Span: span, Text: text}
	}
	return token.Token{Kind: token.Include, Span: span, Text: text}
}

func (lx *Lexer) scanPunct() token.Token {
	mark := lx.cursor.Mark()
	ch := lx.cursor.Bump()

	kind := token.Invalid
	switch ch {
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '<':
		kind = token.Lt
	case '>':
		kind = token.Gt
	case ',':
		kind = token.Comma
	case ';':
		kind = token.Semicolon
	case ':':
		kind = token.Colon
		if lx.cursor.Peek() == ':' {
			lx.cursor.Bump()
			kind = token.ColonColon
		}
	case '=':
		kind = token.Assign
	case '.':
		if lx.cursor.Peek() == '.' && lx.cursor.PeekAt(1) == '.' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			kind = token.Ellipsis
		} else {
			kind = token.Op
		}
	case '+', '-', '*', '/', '%', '!', '&', '|', '^', '~', '?', '@', '[', ']':
		// Body-only operators; the parser never inspects these beyond
		// brace balancing.
		kind = token.Op
	default:
		span := lx.cursor.SpanFrom(mark)
		lx.report(diag.LexUnknownChar, span, "unknown character %q", string(ch))
		return token.Token{Kind: token.Invalid, Span: span, Text: string(ch)}
	}
	return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(mark), Text: lx.cursor.TextFrom(mark)}
}

func (lx *Lexer) report(code diag.Code, span source.Span, format string, args ...any) {
	if lx.reporter == nil {
		return
	}
	diag.ReportError(lx.reporter, code, span, fmt.Sprintf(format, args...)).Emit()
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || isDec(b)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isHex(b byte) bool {
	return isDec(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
