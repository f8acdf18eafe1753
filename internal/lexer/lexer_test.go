package lexer

import (
	"testing"

	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/token"
)

func tokenize(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.ql", []byte(src))
	bag := diag.NewBag(16)
	toks := Tokenize(fs.Get(id), diag.BagReporter{Bag: bag})
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		t.Fatal("token stream must end with EOF")
	}
	return toks, bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeDeclaration(t *testing.T) {
	toks, bag := tokenize(t, "type A = b::C;")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	want := []token.Kind{
		token.KwType, token.Ident, token.Assign,
		token.Ident, token.ColonColon, token.Ident,
		token.Semicolon, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tok[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if toks[1].Text != "A" || toks[3].Text != "b" {
		t.Errorf("texts = %q, %q", toks[1].Text, toks[3].Text)
	}
}

func TestTokenizeSignaturePunct(t *testing.T) {
	toks, bag := tokenize(t, "builtin F<T>(context: Context, ...args): T;")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	want := []token.Kind{
		token.KwBuiltin, token.Ident, token.Lt, token.Ident, token.Gt,
		token.LParen, token.Ident, token.Colon, token.Ident, token.Comma,
		token.Ellipsis, token.Ident, token.RParen, token.Colon, token.Ident,
		token.Semicolon, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tok[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTokenizeCommentsAndStrings(t *testing.T) {
	toks, bag := tokenize(t, "// line\n/* block\n still */ const x: T = \"a\\\"b\";")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if toks[0].Kind != token.KwConst {
		t.Errorf("comments not skipped, first = %s", toks[0].Kind)
	}
	var str *token.Token
	for i := range toks {
		if toks[i].Kind == token.StringLit {
			str = &toks[i]
		}
	}
	if str == nil {
		t.Fatal("no string literal")
	}
	// Escapes stay raw; only the quotes are stripped.
	if str.Text != `a\"b` {
		t.Errorf("string text = %q", str.Text)
	}
}

func TestTokenizeIncludeDirective(t *testing.T) {
	toks, bag := tokenize(t, "#include \"src/builtins/base.h\"")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if toks[0].Kind != token.Include {
		t.Fatalf("first = %s, want #include", toks[0].Kind)
	}
	if toks[1].Kind != token.StringLit || toks[1].Text != "src/builtins/base.h" {
		t.Errorf("path token = %s %q", toks[1].Kind, toks[1].Text)
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, bag := tokenize(t, `const x: T = "abc`)
	if !bag.HasErrors() {
		t.Fatal("unterminated string produced no diagnostic")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.LexUnterminatedString {
			found = true
		}
	}
	if !found {
		t.Errorf("missing LexUnterminatedString, got %v", bag.Items())
	}
}

func TestTokenizeUnknownChar(t *testing.T) {
	_, bag := tokenize(t, "type A = `B;")
	if !bag.HasErrors() {
		t.Fatal("unknown character produced no diagnostic")
	}
}
