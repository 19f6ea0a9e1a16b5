package parser

import (
	"ctxgraph/internal/ast"
	"ctxgraph/internal/diag"
	"ctxgraph/internal/token"
)

// parseBlock разбирает { stmt* }. Ошибочные инструкции становятся StmtError.
func (p *Parser) parseBlock(unchecked bool) (ast.StmtID, bool) {
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'")
	if !ok {
		return ast.NoStmtID, false
	}
	var stmts []ast.StmtID
	for !p.atOr(token.RBrace, token.EOF) && !p.enough() {
		stmts = append(stmts, p.parseStmtOrError())
	}
	if _, ok := p.eat(token.RBrace); !ok {
		p.report(diag.SynUnclosedBrace, open.Span, "unclosed block")
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewBlock(p.spanFrom(open.Span), stmts, unchecked), true
}

func (p *Parser) parseStmtOrError() ast.StmtID {
	start := p.peek().Span
	if stmt, ok := p.parseStmt(); ok {
		return stmt
	}
	p.resyncStmt()
	return p.arenas.Stmts.NewBare(ast.StmtError, p.spanFrom(start))
}

// resyncStmt прокручивает до ';' включительно или до '}' блока.
func (p *Parser) resyncStmt() {
	for {
		switch p.peek().Kind {
		case token.EOF, token.RBrace:
			return
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

func (p *Parser) parseStmt() (ast.StmtID, bool) {
	switch p.peek().Kind {
	case token.LBrace:
		return p.parseBlock(false)
	case token.KwUnchecked:
		p.advance()
		return p.parseBlock(true)
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwDo:
		return p.parseDoWhile()
	case token.KwFor:
		return p.parseFor()
	case token.KwContinue, token.KwBreak:
		tok := p.advance()
		kind := ast.StmtContinue
		if tok.Kind == token.KwBreak {
			kind = ast.StmtBreak
		}
		if !p.expectSemicolon() {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewBare(kind, p.spanFrom(tok.Span)), true
	case token.KwReturn:
		return p.parseReturn()
	case token.KwEmit:
		return p.parseEmit()
	case token.KwRevert:
		return p.parseRevert()
	case token.KwTry:
		return p.parseTry()
	case token.KwAssembly:
		return p.parseAssembly()
	}
	if p.looksLikeVarDecl() {
		return p.parseVarDecl()
	}
	return p.parseExprStmt()
}

// parseVarDecl: Type [location] Name [= Expr] ;
func (p *Parser) parseVarDecl() (ast.StmtID, bool) {
	start := p.peek().Span
	typ, ok := p.parseType()
	if !ok {
		return ast.NoStmtID, false
	}
	data := ast.VarDeclData{Type: typ, Location: p.parseLocation()}
	nameTok, ok := p.expectIdent()
	if !ok {
		return ast.NoStmtID, false
	}
	data.Name = p.intern(nameTok)
	data.NameSpan = nameTok.Span
	if _, ok := p.eat(token.Assign); ok {
		if data.Init, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	if !p.expectSemicolon() {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewVarDecl(p.spanFrom(start), data), true
}

func (p *Parser) parseExprStmt() (ast.StmtID, bool) {
	start := p.peek().Span
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if !p.expectSemicolon() {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewExpr(p.spanFrom(start), expr), true
}

func (p *Parser) parseReturn() (ast.StmtID, bool) {
	start := p.advance().Span
	expr := ast.NoExprID
	if !p.at(token.Semicolon) {
		var ok bool
		if expr, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	if !p.expectSemicolon() {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewReturn(p.spanFrom(start), expr), true
}

func (p *Parser) parseEmit() (ast.StmtID, bool) {
	start := p.advance().Span
	call, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if !p.expectSemicolon() {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewEmit(p.spanFrom(start), call), true
}

// parseRevert: revert(args); | revert Path(args); | revert Path({n: v, ...});
func (p *Parser) parseRevert() (ast.StmtID, bool) {
	start := p.advance().Span
	data := ast.RevertData{Path: ast.NoExprID}
	if p.at(token.Ident) {
		path, ok := p.parsePath()
		if !ok {
			return ast.NoStmtID, false
		}
		data.Path = path
	}
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after revert")
	if !ok {
		return ast.NoStmtID, false
	}
	kind := ast.StmtRevert
	if p.at(token.LBrace) {
		kind = ast.StmtRevertNamedArgs
		if data.Names, data.Args, ok = p.parseNamedArgs(); !ok {
			return ast.NoStmtID, false
		}
	} else if data.Args, ok = p.parseArgList(); !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.eat(token.RParen); !ok {
		p.report(diag.SynUnclosedParen, open.Span, "unclosed revert arguments")
		return ast.NoStmtID, false
	}
	if !p.expectSemicolon() {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewRevert(kind, p.spanFrom(start), data), true
}

// parseAssembly пропускает inline assembly целиком.
func (p *Parser) parseAssembly() (ast.StmtID, bool) {
	start := p.advance().Span
	if p.at(token.StringLit) {
		p.advance()
	}
	if p.at(token.LParen) {
		p.skipBalanced(token.LParen, token.RParen)
	}
	if !p.at(token.LBrace) {
		p.err(diag.SynUnexpectedToken, "expected '{' after assembly")
		return ast.NoStmtID, false
	}
	if !p.skipBalanced(token.LBrace, token.RBrace) {
		p.report(diag.SynUnclosedBrace, start, "unclosed assembly block")
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewBare(ast.StmtAssembly, p.spanFrom(start)), true
}
