package parser

import (
	"ctxgraph/internal/ast"
	"ctxgraph/internal/diag"
	"ctxgraph/internal/token"
)

var fnKinds = map[token.Kind]ast.FnKind{
	token.KwFunction:    ast.FnFunction,
	token.KwConstructor: ast.FnConstructor,
	token.KwModifier:    ast.FnModifier,
	token.KwFallback:    ast.FnFallback,
	token.KwReceive:     ast.FnReceive,
}

// parseFn разбирает function/constructor/modifier/fallback/receive.
func (p *Parser) parseFn() (ast.ItemID, bool) {
	kw := p.advance()
	start := kw.Span
	data := ast.FnData{Kind: fnKinds[kw.Kind]}

	switch data.Kind {
	case ast.FnFunction, ast.FnModifier:
		// старые контракты называют функции fallback/receive
		if p.atOr(token.KwFallback, token.KwReceive) {
			tok := p.advance()
			data.Name = p.arenas.Strings.Intern(tok.Kind.String())
			data.NameSpan = tok.Span
			break
		}
		nameTok, ok := p.expectIdent()
		if !ok {
			return ast.NoItemID, false
		}
		data.Name = p.intern(nameTok)
		data.NameSpan = nameTok.Span
	default:
		data.Name = p.arenas.Strings.Intern(kw.Kind.String())
		data.NameSpan = kw.Span
	}

	// модификатор может быть без скобок
	if data.Kind != ast.FnModifier || p.at(token.LParen) {
		params, ok := p.parseParamList()
		if !ok {
			return ast.NoItemID, false
		}
		data.Params = params
	}

	if !p.parseFnAttrs(&data) {
		return ast.NoItemID, false
	}

	if _, ok := p.eat(token.KwReturns); ok {
		rets, ok := p.parseParamList()
		if !ok {
			return ast.NoItemID, false
		}
		data.Returns = rets
		// атрибуты после returns встречаются в старом коде
		if !p.parseFnAttrs(&data) {
			return ast.NoItemID, false
		}
	}

	if _, ok := p.eat(token.Semicolon); ok {
		return p.arenas.Items.NewFn(p.spanFrom(start), data), true
	}
	body, ok := p.parseBlock(false)
	if !ok {
		return ast.NoItemID, false
	}
	data.Body = body
	return p.arenas.Items.NewFn(p.spanFrom(start), data), true
}

func (p *Parser) parseFnAttrs(data *ast.FnData) bool {
	for {
		switch p.peek().Kind {
		case token.KwPublic, token.KwPrivate, token.KwInternal, token.KwExternal:
			data.Visibility = visibilityOf(p.advance().Kind)
		case token.KwPure:
			p.advance()
			data.Mutability = ast.MutPure
		case token.KwView, token.KwConstant:
			p.advance()
			data.Mutability = ast.MutView
		case token.KwPayable:
			p.advance()
			data.Mutability = ast.MutPayable
		case token.KwVirtual:
			p.advance()
			data.Virtual = true
		case token.KwOverride:
			p.advance()
			data.Override = true
			if p.at(token.LParen) && !p.skipBalanced(token.LParen, token.RParen) {
				p.err(diag.SynUnclosedParen, "unclosed override list")
				return false
			}
		case token.Ident:
			mod, ok := p.parseModifierInvocation()
			if !ok {
				return false
			}
			data.Modifiers = append(data.Modifiers, mod)
		default:
			return true
		}
	}
}

// parseModifierInvocation: Path [ ( args ) ]
func (p *Parser) parseModifierInvocation() (ast.ExprID, bool) {
	expr, ok := p.parsePath()
	if !ok {
		return ast.NoExprID, false
	}
	if p.at(token.LParen) {
		return p.parseCallSuffix(expr)
	}
	return expr, true
}

func (p *Parser) parseParamList() ([]ast.ParamID, bool) {
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('")
	if !ok {
		return nil, false
	}
	var params []ast.ParamID
	for !p.at(token.RParen) {
		prm, ok := p.parseParam()
		if !ok {
			return nil, false
		}
		params = append(params, prm)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.eat(token.RParen); !ok {
		p.report(diag.SynUnclosedParen, open.Span, "unclosed parameter list")
		return nil, false
	}
	return params, true
}

// parseParam: Type [location] [Name]
func (p *Parser) parseParam() (ast.ParamID, bool) {
	start := p.peek().Span
	typ, ok := p.parseType()
	if !ok {
		return ast.NoParamID, false
	}
	prm := ast.Param{Type: typ}
	prm.Location = p.parseLocation()
	if p.at(token.Ident) {
		prm.Name = p.intern(p.advance())
	}
	prm.Span = p.spanFrom(start)
	return p.arenas.Items.NewParam(prm), true
}

func (p *Parser) parseLocation() ast.StorageLocation {
	switch p.peek().Kind {
	case token.KwMemory:
		p.advance()
		return ast.LocMemory
	case token.KwStorage:
		p.advance()
		return ast.LocStorage
	case token.KwCalldata:
		p.advance()
		return ast.LocCalldata
	default:
		return ast.LocDefault
	}
}
