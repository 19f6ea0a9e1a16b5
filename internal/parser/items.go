package parser

import (
	"ctxgraph/internal/ast"
	"ctxgraph/internal/diag"
	"ctxgraph/internal/token"
)

// parseSkippedDecl records pragma/import/using/event/error items and skips them to ';'.
func (p *Parser) parseSkippedDecl(kind ast.ItemKind) (ast.ItemID, bool) {
	start := p.advance().Span
	name := p.intern(p.peek())
	depth := 0
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.EOF:
			p.err(diag.SynExpectSemicolon, "expected ';'")
			return ast.NoItemID, false
		case token.LParen, token.LBrace:
			depth++
		case token.RParen, token.RBrace:
			depth--
		case token.Semicolon:
			if depth <= 0 {
				p.advance()
				return p.arenas.Items.NewOpaque(kind, p.spanFrom(start), name), true
			}
		}
		p.advance()
	}
}

// parseBracedDecl handles `struct S { ... }` and `enum E { ... }`.
func (p *Parser) parseBracedDecl(kind ast.ItemKind) (ast.ItemID, bool) {
	start := p.advance().Span
	nameTok, ok := p.expectIdent()
	if !ok {
		return ast.NoItemID, false
	}
	if !p.at(token.LBrace) {
		p.err(diag.SynUnexpectedToken, "expected '{'")
		return ast.NoItemID, false
	}
	if !p.skipBalanced(token.LBrace, token.RBrace) {
		p.report(diag.SynUnclosedBrace, start, "unclosed '{'")
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewOpaque(kind, p.spanFrom(start), p.intern(nameTok)), true
}

func (p *Parser) parseContract() (ast.ItemID, bool) {
	start := p.peek().Span
	kind := ast.ContractPlain
	if _, ok := p.eat(token.KwAbstract); ok {
		kind = ast.ContractAbstract
	}
	switch p.advance().Kind {
	case token.KwInterface:
		kind = ast.ContractInterface
	case token.KwLibrary:
		kind = ast.ContractLibrary
	case token.KwContract:
	default:
		p.report(diag.SynUnexpectedToken, p.lastSpan, "expected 'contract' after 'abstract'")
		return ast.NoItemID, false
	}

	nameTok, ok := p.expectIdent()
	if !ok {
		return ast.NoItemID, false
	}
	data := ast.ContractData{
		Kind:     kind,
		Name:     p.intern(nameTok),
		NameSpan: nameTok.Span,
	}

	if _, ok := p.eat(token.KwIs); ok {
		for {
			base, ok := p.expectIdent()
			if !ok {
				return ast.NoItemID, false
			}
			for p.at(token.Dot) {
				p.advance()
				if base, ok = p.expectIdent(); !ok {
					return ast.NoItemID, false
				}
			}
			data.Bases = append(data.Bases, p.intern(base))
			if p.at(token.LParen) {
				p.skipBalanced(token.LParen, token.RParen)
			}
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
		}
	}

	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to open contract body")
	if !ok {
		return ast.NoItemID, false
	}
	for !p.atOr(token.RBrace, token.EOF) && !p.enough() {
		if id, ok := p.parseMember(); ok {
			data.Members = append(data.Members, id)
			continue
		}
		p.resyncMember()
	}
	if _, ok := p.eat(token.RBrace); !ok {
		p.report(diag.SynUnclosedBrace, open.Span, "unclosed contract body")
	}
	return p.arenas.Items.NewContract(p.spanFrom(start), data), true
}

func (p *Parser) parseMember() (ast.ItemID, bool) {
	switch p.peek().Kind {
	case token.KwFunction, token.KwConstructor, token.KwModifier, token.KwFallback, token.KwReceive:
		return p.parseFn()
	case token.KwEvent:
		return p.parseSkippedDecl(ast.ItemEvent)
	case token.KwError:
		return p.parseSkippedDecl(ast.ItemError)
	case token.KwUsing:
		return p.parseSkippedDecl(ast.ItemUsing)
	case token.KwStruct:
		return p.parseBracedDecl(ast.ItemStruct)
	case token.KwEnum:
		return p.parseBracedDecl(ast.ItemEnum)
	default:
		return p.parseStateVar()
	}
}

// parseStateVar: Type attrs* Name [= Expr] ;
func (p *Parser) parseStateVar() (ast.ItemID, bool) {
	start := p.peek().Span
	typ, ok := p.parseType()
	if !ok {
		return ast.NoItemID, false
	}
	data := ast.StateVarData{Type: typ}
attrs:
	for {
		switch p.peek().Kind {
		case token.KwPublic, token.KwPrivate, token.KwInternal, token.KwExternal:
			data.Visibility = visibilityOf(p.advance().Kind)
		case token.KwConstant:
			p.advance()
			data.Constant = true
		case token.KwImmutable:
			p.advance()
			data.Immutable = true
		case token.KwOverride:
			p.advance()
			if p.at(token.LParen) {
				p.skipBalanced(token.LParen, token.RParen)
			}
		default:
			break attrs
		}
	}
	nameTok, ok := p.expectIdent()
	if !ok {
		return ast.NoItemID, false
	}
	data.Name = p.intern(nameTok)
	if _, ok := p.eat(token.Assign); ok {
		if data.Init, ok = p.parseExpr(); !ok {
			return ast.NoItemID, false
		}
	}
	if !p.expectSemicolon() {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewStateVar(p.spanFrom(start), data), true
}

// resyncMember skips to the end of the broken member: past ';' or a balanced body.
func (p *Parser) resyncMember() {
	for !p.atOr(token.EOF, token.RBrace) {
		switch p.peek().Kind {
		case token.Semicolon:
			p.advance()
			return
		case token.LBrace:
			p.skipBalanced(token.LBrace, token.RBrace)
			return
		}
		p.advance()
	}
}

func visibilityOf(k token.Kind) ast.Visibility {
	switch k {
	case token.KwPublic:
		return ast.VisPublic
	case token.KwPrivate:
		return ast.VisPrivate
	case token.KwInternal:
		return ast.VisInternal
	case token.KwExternal:
		return ast.VisExternal
	default:
		return ast.VisDefault
	}
}
