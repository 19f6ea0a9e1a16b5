package parser

import (
	"ctxgraph/internal/ast"
	"ctxgraph/internal/diag"
	"ctxgraph/internal/lexer"
	"ctxgraph/internal/source"
	"ctxgraph/internal/token"
)

// parseExpr is the entry point for expressions, assignment included.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinary(precAssignment)
}

// parseBinary uses precedence climbing. The ternary has its own level.
func (p *Parser) parseBinary(minPrec int) (ast.ExprID, bool) {
	start := p.peek().Span
	left, ok := p.parseUnary()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		if p.at(token.Question) && minPrec <= precTernary {
			p.advance()
			then, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' in conditional"); !ok {
				return ast.NoExprID, false
			}
			els, ok := p.parseBinary(precTernary)
			if !ok {
				return ast.NoExprID, false
			}
			left = p.arenas.Exprs.NewTernary(p.spanFrom(start), left, then, els)
			continue
		}

		info, isBin := binaryOps[p.peek().Kind]
		if !isBin || info.prec < minPrec {
			return left, true
		}
		p.advance()
		next := info.prec + 1
		if info.right {
			next = info.prec
		}
		right, ok := p.parseBinary(next)
		if !ok {
			return ast.NoExprID, false
		}
		left = p.arenas.Exprs.NewBinary(p.spanFrom(start), info.op, left, right)
	}
}

func (p *Parser) parseUnary() (ast.ExprID, bool) {
	if op, ok := prefixOps[p.peek().Kind]; ok {
		start := p.advance().Span
		operand, ok := p.parseUnary()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewUnary(p.spanFrom(start), op, operand), true
	}
	prim, ok := p.parsePrimary()
	if !ok {
		return ast.NoExprID, false
	}
	return p.parsePostfix(prim)
}

// parsePostfix: вызовы, индексы, доступ к полям, постфиксные ++/--.
func (p *Parser) parsePostfix(expr ast.ExprID) (ast.ExprID, bool) {
	start := p.arenas.Exprs.Get(expr).Span
	for {
		var ok bool
		switch p.peek().Kind {
		case token.LParen:
			if expr, ok = p.parseCallSuffix(expr); !ok {
				return ast.NoExprID, false
			}
		case token.LBracket:
			open := p.advance()
			idx := ast.NoExprID
			if !p.at(token.RBracket) {
				if idx, ok = p.parseExpr(); !ok {
					return ast.NoExprID, false
				}
			}
			if _, ok := p.eat(token.RBracket); !ok {
				p.report(diag.SynUnclosedBracket, open.Span, "unclosed '['")
				return ast.NoExprID, false
			}
			expr = p.arenas.Exprs.NewIndex(p.spanFrom(start), expr, idx)
		case token.Dot:
			p.advance()
			name, ok := p.expectIdent()
			if !ok {
				return ast.NoExprID, false
			}
			expr = p.arenas.Exprs.NewMember(p.spanFrom(start), expr, p.intern(name), name.Span)
		case token.PlusPlus, token.MinusMinus:
			op := ast.OpPostInc
			if p.advance().Kind == token.MinusMinus {
				op = ast.OpPostDec
			}
			expr = p.arenas.Exprs.NewUnary(p.spanFrom(start), op, expr)
		default:
			return expr, true
		}
	}
}

// parseCallSuffix: ( args ) или ( { name: value, ... } )
func (p *Parser) parseCallSuffix(callee ast.ExprID) (ast.ExprID, bool) {
	start := p.arenas.Exprs.Get(callee).Span
	open := p.advance()
	var (
		args  []ast.ExprID
		names []source.StringID
		ok    bool
	)
	if p.at(token.LBrace) {
		names, args, ok = p.parseNamedArgs()
	} else {
		args, ok = p.parseArgList()
	}
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.eat(token.RParen); !ok {
		p.report(diag.SynUnclosedParen, open.Span, "unclosed call arguments")
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewCall(p.spanFrom(start), callee, args, names), true
}

// parseArgList разбирает аргументы до ')', саму скобку не съедает.
func (p *Parser) parseArgList() ([]ast.ExprID, bool) {
	var args []ast.ExprID
	for !p.at(token.RParen) {
		arg, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	return args, true
}

// parseNamedArgs: { name: Expr, ... }
func (p *Parser) parseNamedArgs() ([]source.StringID, []ast.ExprID, bool) {
	open := p.advance()
	var (
		names []source.StringID
		args  []ast.ExprID
	)
	for !p.at(token.RBrace) {
		name, ok := p.expectIdent()
		if !ok {
			return nil, nil, false
		}
		if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after argument name"); !ok {
			return nil, nil, false
		}
		arg, ok := p.parseExpr()
		if !ok {
			return nil, nil, false
		}
		names = append(names, p.intern(name))
		args = append(args, arg)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.eat(token.RBrace); !ok {
		p.report(diag.SynUnclosedBrace, open.Span, "unclosed named arguments")
		return nil, nil, false
	}
	return names, args, true
}

func (p *Parser) parsePrimary() (ast.ExprID, bool) {
	tok := p.peek()
	exprs := p.arenas.Exprs
	switch tok.Kind {
	case token.Ident:
		if p.atElementary() {
			return p.parseElementary(), true
		}
		p.advance()
		return exprs.NewIdent(tok.Span, p.intern(tok)), true

	case token.KwPayable:
		// payable(x) converts to address payable
		p.advance()
		return exprs.NewElementary(tok.Span, "address", true), true

	case token.NumberLit:
		p.advance()
		unit := ""
		if next := p.peek(); next.Kind == token.Ident && numberUnits[next.Text] {
			unit = p.advance().Text
		}
		return exprs.NewNumber(p.spanFrom(tok.Span), tok.Text, unit), true

	case token.AddressLit:
		p.advance()
		return exprs.NewAddress(tok.Span, tok.Text), true

	case token.KwTrue, token.KwFalse:
		p.advance()
		return exprs.NewBool(tok.Span, tok.Kind == token.KwTrue), true

	case token.StringLit:
		return p.parseStringLit()

	case token.HexStrLit:
		p.advance()
		val, err := lexer.UnquoteHex(tok.Text)
		if err != nil {
			p.report(diag.LexUnterminatedString, tok.Span, err.Error())
			return ast.NoExprID, false
		}
		return exprs.NewHexString(tok.Span, val), true

	case token.LParen:
		return p.parseTuple(token.LParen, token.RParen)

	case token.LBracket:
		return p.parseTuple(token.LBracket, token.RBracket)

	case token.KwNew:
		p.advance()
		typ, ok := p.parseType()
		if !ok {
			return ast.NoExprID, false
		}
		return exprs.NewAlloc(p.spanFrom(tok.Span), typ), true

	case token.KwMapping:
		return p.parseMapping()

	default:
		p.err(diag.SynExpectExpression, "expected expression")
		return ast.NoExprID, false
	}
}

// parseStringLit склеивает соседние строковые литералы: "a" "b".
func (p *Parser) parseStringLit() (ast.ExprID, bool) {
	start := p.peek().Span
	var parts []ast.StringPart
	for p.at(token.StringLit) {
		tok := p.advance()
		val, err := lexer.Unquote(tok.Text)
		if err != nil {
			p.report(diag.LexUnterminatedString, tok.Span, err.Error())
			return ast.NoExprID, false
		}
		parts = append(parts, ast.StringPart{Span: tok.Span, Value: val})
	}
	return p.arenas.Exprs.NewStringLit(p.spanFrom(start), parts), true
}

// parseTuple: (a, , b) и [a, b]. Одиночное выражение в скобках возвращается как есть.
func (p *Parser) parseTuple(open, close token.Kind) (ast.ExprID, bool) {
	openTok := p.advance()
	var elems []ast.ExprID
	sawComma := false
	for !p.at(close) {
		elem := ast.NoExprID
		if !p.at(token.Comma) {
			var ok bool
			if elem, ok = p.parseExpr(); !ok {
				return ast.NoExprID, false
			}
		}
		elems = append(elems, elem)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
		sawComma = true
		if p.at(close) {
			elems = append(elems, ast.NoExprID)
		}
	}
	if _, ok := p.eat(close); !ok {
		code := diag.SynUnclosedParen
		if close == token.RBracket {
			code = diag.SynUnclosedBracket
		}
		p.report(code, openTok.Span, "unclosed "+openTok.Kind.String())
		return ast.NoExprID, false
	}
	if open == token.LParen && !sawComma && len(elems) == 1 {
		return elems[0], true
	}
	return p.arenas.Exprs.NewTuple(p.spanFrom(openTok.Span), elems), true
}
