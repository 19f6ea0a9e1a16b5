package lexer

import (
	"ctxgraph/internal/diag"
	"ctxgraph/internal/token"
)

// scanNumber: 0x-hex (AddressLit when exactly 40 digits), decimal with
// optional fraction and exponent. '_' separates digits.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	if lx.cursor.Peek() == '0' && (lx.cursor.PeekAt(1) == 'x' || lx.cursor.PeekAt(1) == 'X') {
		lx.cursor.Bump()
		lx.cursor.Bump()
		digits := 0
		for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			if lx.cursor.Bump() != '_' {
				digits++
			}
		}
		if digits == 0 {
			return lx.invalid(start, diag.LexBadNumber, "hex literal has no digits")
		}
		if isIdentContinue(lx.cursor.Peek()) {
			return lx.badSuffix(start)
		}
		if digits == 40 {
			return lx.emit(token.AddressLit, start)
		}
		return lx.emit(token.NumberLit, start)
	}

	lx.digits()
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		lx.digits()
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		lx.cursor.Bump()
		if s := lx.cursor.Peek(); s == '-' || s == '+' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			return lx.invalid(start, diag.LexBadNumber, "exponent has no digits")
		}
		lx.digits()
	}
	if isIdentContinue(lx.cursor.Peek()) {
		return lx.badSuffix(start)
	}
	return lx.emit(token.NumberLit, start)
}

func (lx *Lexer) digits() {
	for isDec(lx.cursor.Peek()) || (lx.cursor.Peek() == '_' && isDec(lx.cursor.PeekAt(1))) {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) badSuffix(start Mark) token.Token {
	for isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.invalid(start, diag.LexBadNumber, "invalid number literal")
}
