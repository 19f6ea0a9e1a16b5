package lexer

import (
	"ctxgraph/internal/diag"
	"ctxgraph/internal/token"
)

func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	if !lx.quoted() {
		return lx.invalid(start, diag.LexUnterminatedString, "unterminated string literal")
	}
	return lx.emit(token.StringLit, start)
}

func (lx *Lexer) scanHexString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()
	lx.cursor.Bump()
	if !lx.quoted() {
		return lx.invalid(start, diag.LexUnterminatedString, "unterminated hex string literal")
	}
	return lx.emit(token.HexStrLit, start)
}

// quoted consumes a quoted body; the closing quote must match the opening
// one and strings may not span lines.
func (lx *Lexer) quoted() bool {
	q := lx.cursor.Bump()
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Bump(); b {
		case q:
			return true
		case '\\':
			lx.cursor.Bump()
		case '\n':
			return false
		}
	}
	return false
}
