package lexer

import (
	"testing"

	"ctxgraph/internal/diag"
	"ctxgraph/internal/source"
	"ctxgraph/internal/token"
)

func lex(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sol", []byte(src))
	bag := diag.NewBag(0)
	lx := New(fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx.All(), bag
}

func kinds(toks []token.Token) []token.Kind {
	res := make([]token.Kind, 0, len(toks))
	for _, tk := range toks {
		res = append(res, tk.Kind)
	}
	return res
}

func TestLexFunction(t *testing.T) {
	toks, bag := lex(t, "function f(uint x) returns (uint y) { x += 1; return x; }")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	want := []token.Kind{
		token.KwFunction, token.Ident, token.LParen, token.Ident, token.Ident, token.RParen,
		token.KwReturns, token.LParen, token.Ident, token.Ident, token.RParen,
		token.LBrace, token.Ident, token.PlusAssign, token.NumberLit, token.Semicolon,
		token.KwReturn, token.Ident, token.Semicolon, token.RBrace, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v\nwant %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexNumbersAndAddresses(t *testing.T) {
	tests := []struct {
		src  string
		kind token.Kind
	}{
		{"42", token.NumberLit},
		{"1_000", token.NumberLit},
		{"1e18", token.NumberLit},
		{"2.5e-3", token.NumberLit},
		{"0xff", token.NumberLit},
		{"0x5B38Da6a701c568545dCfcB03FcB875f56beddC4", token.AddressLit},
		{"12ab", token.Invalid},
	}
	for _, tt := range tests {
		toks, _ := lex(t, tt.src)
		if toks[0].Kind != tt.kind || toks[0].Text != tt.src {
			t.Errorf("lex(%q) = %v %q, want %v", tt.src, toks[0].Kind, toks[0].Text, tt.kind)
		}
	}
}

func TestLexOperatorsGreedy(t *testing.T) {
	toks, _ := lex(t, "a <<= b ** c >= d => e")
	got := kinds(toks)
	want := []token.Kind{
		token.Ident, token.ShlAssign, token.Ident, token.StarStar, token.Ident,
		token.GtEq, token.Ident, token.FatArrow, token.Ident, token.EOF,
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexCommentsAndErrors(t *testing.T) {
	toks, bag := lex(t, "// line\n/* block */ x /* open")
	if toks[0].Kind != token.Ident || toks[0].Text != "x" {
		t.Fatalf("first token = %v %q", toks[0].Kind, toks[0].Text)
	}
	if bag.Count(diag.LexUnterminatedBlockComment) != 1 {
		t.Fatalf("expected unterminated comment diagnostic, got %v", bag.Items())
	}

	_, bag = lex(t, "x # y")
	if bag.Count(diag.LexUnknownChar) != 1 {
		t.Fatalf("expected unknown char diagnostic, got %v", bag.Items())
	}
	_, bag = lex(t, "\"abc\ndef\"")
	if bag.Count(diag.LexUnterminatedString) == 0 {
		t.Fatal("expected unterminated string diagnostic")
	}
}

func TestLexStrings(t *testing.T) {
	toks, _ := lex(t, `"a" 'b' hex"00ff"`)
	want := []token.Kind{token.StringLit, token.StringLit, token.HexStrLit, token.EOF}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d: %v, want %v", i, toks[i].Kind, k)
		}
	}
	b, err := UnquoteHex(toks[2].Text)
	if err != nil || len(b) != 2 || b[1] != 0xff {
		t.Fatalf("UnquoteHex = %v, %v", b, err)
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		in, want string
		err      bool
	}{
		{`"plain"`, "plain", false},
		{`"a\nb"`, "a\nb", false},
		{`'it\'s'`, "it's", false},
		{`"\x41é"`, "Aé", false},
		{"\"e\u0301\"", "\u00e9", false},
		{`"\q"`, "", true},
		{`"\x4"`, "", true},
	}
	for _, tt := range tests {
		got, err := Unquote(tt.in)
		if (err != nil) != tt.err || got != tt.want {
			t.Errorf("Unquote(%s) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}
