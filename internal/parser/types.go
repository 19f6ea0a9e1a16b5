package parser

import (
	"ctxgraph/internal/ast"
	"ctxgraph/internal/builtins"
	"ctxgraph/internal/diag"
	"ctxgraph/internal/token"
)

// parseType разбирает тип: elementary, mapping или путь, затем суффиксы [] / [N].
func (p *Parser) parseType() (ast.ExprID, bool) {
	start := p.peek().Span
	var (
		typ ast.ExprID
		ok  bool
	)
	switch {
	case p.at(token.KwMapping):
		typ, ok = p.parseMapping()
	case p.atElementary():
		typ, ok = p.parseElementary(), true
	case p.at(token.Ident):
		typ, ok = p.parsePath()
	default:
		p.err(diag.SynExpectType, "expected type")
		return ast.NoExprID, false
	}
	if !ok {
		return ast.NoExprID, false
	}

	for p.at(token.LBracket) {
		open := p.advance()
		size := ast.NoExprID
		if !p.at(token.RBracket) {
			if size, ok = p.parseExpr(); !ok {
				return ast.NoExprID, false
			}
		}
		if _, ok := p.eat(token.RBracket); !ok {
			p.report(diag.SynUnclosedBracket, open.Span, "unclosed '['")
			return ast.NoExprID, false
		}
		typ = p.arenas.Exprs.NewIndex(p.spanFrom(start), typ, size)
	}
	return typ, true
}

func (p *Parser) atElementary() bool {
	tok := p.peek()
	if tok.Kind != token.Ident {
		return false
	}
	_, ok := builtins.FromName(tok.Text)
	return ok
}

func (p *Parser) parseElementary() ast.ExprID {
	tok := p.advance()
	payable := false
	if tok.Text == "address" && p.at(token.KwPayable) {
		p.advance()
		payable = true
	}
	return p.arenas.Exprs.NewElementary(p.spanFrom(tok.Span), tok.Text, payable)
}

// parseMapping: mapping ( K [name] => V [name] )
func (p *Parser) parseMapping() (ast.ExprID, bool) {
	start := p.advance().Span
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'mapping'")
	if !ok {
		return ast.NoExprID, false
	}
	key, ok := p.parseType()
	if !ok {
		return ast.NoExprID, false
	}
	p.eat(token.Ident)
	if _, ok := p.expect(token.FatArrow, diag.SynUnexpectedToken, "expected '=>'"); !ok {
		return ast.NoExprID, false
	}
	val, ok := p.parseType()
	if !ok {
		return ast.NoExprID, false
	}
	p.eat(token.Ident)
	if _, ok := p.eat(token.RParen); !ok {
		p.report(diag.SynUnclosedParen, open.Span, "unclosed mapping type")
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewMapping(p.spanFrom(start), key, val), true
}

// parsePath: Ident (. Ident)*
func (p *Parser) parsePath() (ast.ExprID, bool) {
	first, ok := p.expectIdent()
	if !ok {
		return ast.NoExprID, false
	}
	expr := p.arenas.Exprs.NewIdent(first.Span, p.intern(first))
	for p.at(token.Dot) {
		p.advance()
		name, ok := p.expectIdent()
		if !ok {
			return ast.NoExprID, false
		}
		expr = p.arenas.Exprs.NewMember(p.spanFrom(first.Span), expr, p.intern(name), name.Span)
	}
	return expr, true
}

// looksLikeVarDecl решает, начинается ли с текущей позиции объявление переменной.
// Смотрит вперед без потребления токенов.
func (p *Parser) looksLikeVarDecl() bool {
	tok := p.peek()
	switch {
	case tok.Kind == token.KwMapping:
		return true
	case tok.Kind != token.Ident:
		return false
	}
	if _, ok := builtins.FromName(tok.Text); ok {
		return p.peekN(1).Kind != token.LParen
	}

	i := 1
	for p.peekN(i).Kind == token.Dot && p.peekN(i+1).Kind == token.Ident {
		i += 2
	}
	for p.peekN(i).Kind == token.LBracket {
		depth := 0
		for {
			switch p.peekN(i).Kind {
			case token.LBracket:
				depth++
			case token.RBracket:
				depth--
			case token.EOF, token.Semicolon:
				return false
			}
			i++
			if depth == 0 {
				break
			}
		}
	}
	switch p.peekN(i).Kind {
	case token.Ident, token.KwMemory, token.KwStorage, token.KwCalldata, token.KwConstant:
		return true
	default:
		return false
	}
}
