package parser

import (
	"ctxgraph/internal/ast"
	"ctxgraph/internal/diag"
	"ctxgraph/internal/token"
)

// parseParenCond: ( Expr )
func (p *Parser) parseParenCond() (ast.ExprID, bool) {
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('")
	if !ok {
		return ast.NoExprID, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.eat(token.RParen); !ok {
		p.report(diag.SynUnclosedParen, open.Span, "unclosed condition")
		return ast.NoExprID, false
	}
	return cond, true
}

func (p *Parser) parseIf() (ast.StmtID, bool) {
	start := p.advance().Span
	cond, ok := p.parseParenCond()
	if !ok {
		return ast.NoStmtID, false
	}
	then, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	els := ast.NoStmtID
	if _, ok := p.eat(token.KwElse); ok {
		if els, ok = p.parseStmt(); !ok {
			return ast.NoStmtID, false
		}
	}
	return p.arenas.Stmts.NewIf(p.spanFrom(start), cond, then, els), true
}

func (p *Parser) parseWhile() (ast.StmtID, bool) {
	start := p.advance().Span
	cond, ok := p.parseParenCond()
	if !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewWhile(ast.StmtWhile, p.spanFrom(start), cond, body), true
}

// parseDoWhile: do Stmt while ( Expr ) ;
func (p *Parser) parseDoWhile() (ast.StmtID, bool) {
	start := p.advance().Span
	body, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.KwWhile, diag.SynUnexpectedToken, "expected 'while'"); !ok {
		return ast.NoStmtID, false
	}
	cond, ok := p.parseParenCond()
	if !ok {
		return ast.NoStmtID, false
	}
	if !p.expectSemicolon() {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewWhile(ast.StmtDoWhile, p.spanFrom(start), cond, body), true
}

// parseFor: for ( [init] ; [cond] ; [post] ) Stmt
func (p *Parser) parseFor() (ast.StmtID, bool) {
	start := p.advance().Span
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after for")
	if !ok {
		return ast.NoStmtID, false
	}
	data := ast.ForData{}
	switch {
	case p.at(token.Semicolon):
		p.advance()
	case p.looksLikeVarDecl():
		if data.Init, ok = p.parseVarDecl(); !ok {
			return ast.NoStmtID, false
		}
	default:
		if data.Init, ok = p.parseExprStmt(); !ok {
			return ast.NoStmtID, false
		}
	}
	if !p.at(token.Semicolon) {
		if data.Cond, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	if !p.expectSemicolon() {
		return ast.NoStmtID, false
	}
	if !p.at(token.RParen) {
		if data.Post, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok := p.eat(token.RParen); !ok {
		p.report(diag.SynUnclosedParen, open.Span, "unclosed for header")
		return ast.NoStmtID, false
	}
	if data.Body, ok = p.parseStmt(); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewFor(p.spanFrom(start), data), true
}

// parseTry: try Expr [returns (params)] Block catch-clause+
func (p *Parser) parseTry() (ast.StmtID, bool) {
	start := p.advance().Span
	data := ast.TryData{}
	var ok bool
	if data.Expr, ok = p.parseExpr(); !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.eat(token.KwReturns); ok {
		if data.Returns, ok = p.parseParamList(); !ok {
			return ast.NoStmtID, false
		}
	}
	if data.Body, ok = p.parseBlock(false); !ok {
		return ast.NoStmtID, false
	}
	for p.at(token.KwCatch) {
		p.advance()
		clause := ast.CatchClause{}
		if p.at(token.Ident) {
			clause.Name = p.intern(p.advance())
		}
		if p.at(token.LParen) {
			if clause.Params, ok = p.parseParamList(); !ok {
				return ast.NoStmtID, false
			}
		}
		if clause.Body, ok = p.parseBlock(false); !ok {
			return ast.NoStmtID, false
		}
		data.Catches = append(data.Catches, clause)
	}
	if len(data.Catches) == 0 {
		p.err(diag.SynUnexpectedToken, "expected 'catch'")
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewTry(p.spanFrom(start), data), true
}
