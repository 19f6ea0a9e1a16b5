package lexer

import (
	"ctxgraph/internal/diag"
	"ctxgraph/internal/token"
)

type opSpelling struct {
	text string
	kind token.Kind
}

// Жадность: сначала 3-символьные, затем 2-символьные, затем 1-символьные.
var multiCharOps = []opSpelling{
	{"<<=", token.ShlAssign},
	{">>=", token.ShrAssign},
	{"**", token.StarStar},
	{"=>", token.FatArrow},
	{"==", token.EqEq},
	{"!=", token.BangEq},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"<<", token.Shl},
	{">>", token.Shr},
	{"++", token.PlusPlus},
	{"--", token.MinusMinus},
	{"+=", token.PlusAssign},
	{"-=", token.MinusAssign},
	{"*=", token.StarAssign},
	{"/=", token.SlashAssign},
	{"%=", token.PercentAssign},
	{"&=", token.AmpAssign},
	{"|=", token.PipeAssign},
	{"^=", token.CaretAssign},
}

var singleCharOps = map[byte]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
	';': token.Semicolon,
	',': token.Comma,
	'.': token.Dot,
	':': token.Colon,
	'?': token.Question,
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'=': token.Assign,
	'<': token.Lt,
	'>': token.Gt,
	'!': token.Bang,
	'~': token.Tilde,
	'&': token.Amp,
	'|': token.Pipe,
	'^': token.Caret,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	for _, op := range multiCharOps {
		if lx.hasPrefix(op.text) {
			for range len(op.text) {
				lx.cursor.Bump()
			}
			return lx.emit(op.kind, start)
		}
	}
	ch := lx.cursor.Bump()
	if k, ok := singleCharOps[ch]; ok {
		return lx.emit(k, start)
	}
	// съедаем остаток UTF-8 последовательности, чтобы не плодить ошибки
	for lx.cursor.Peek()&0xC0 == 0x80 {
		lx.cursor.Bump()
	}
	return lx.invalid(start, diag.LexUnknownChar, "unexpected character %q", string(lx.file.Content[start:lx.cursor.Off]))
}

func (lx *Lexer) hasPrefix(s string) bool {
	for i := range len(s) {
		if lx.cursor.PeekAt(uint32(i)) != s[i] { //nolint:gosec // operators are 3 bytes at most
			return false
		}
	}
	return true
}
