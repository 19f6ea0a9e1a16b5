package parser

import (
	"ctxgraph/internal/diag"
	"ctxgraph/internal/source"
	"ctxgraph/internal/token"
)

// advance consumes the next token and updates lastSpan.
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

func (p *Parser) eat(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// getDiagnosticSpan points just past the last token at EOF.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect consumes a token of kind k, or reports and returns (invalid, false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.getDiagnosticSpan()
	p.report(code, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

func (p *Parser) expectIdent() (token.Token, bool) {
	return p.expect(token.Ident, diag.SynExpectIdentifier, "expected identifier")
}

func (p *Parser) expectSemicolon() bool {
	_, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';'")
	return ok
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string) {
	p.errors++
	if p.opts.Reporter != nil {
		diag.ReportError(p.opts.Reporter, code, sp, msg).Emit()
	}
}

// skipBalanced consumes tokens from an opening bracket to its matching close.
func (p *Parser) skipBalanced(open, close token.Kind) bool {
	if _, ok := p.eat(open); !ok {
		return false
	}
	depth := 1
	for depth > 0 {
		switch p.advance().Kind {
		case open:
			depth++
		case close:
			depth--
		case token.EOF:
			return false
		}
	}
	return true
}

func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}

func (p *Parser) intern(tok token.Token) source.StringID {
	if tok.Kind != token.Ident {
		return source.NoStringID
	}
	return p.arenas.Strings.Intern(tok.Text)
}
