package parser

import (
	"slices"

	"ctxgraph/internal/ast"
	"ctxgraph/internal/diag"
	"ctxgraph/internal/lexer"
	"ctxgraph/internal/source"
	"ctxgraph/internal/token"
)

type Options struct {
	MaxErrors uint // 0 = без ограничения
	Reporter  diag.Reporter
}

type Result struct {
	File   ast.FileID
	Errors uint
}

// Parser holds the state for parsing one file.
type Parser struct {
	toks     []token.Token
	pos      int
	arenas   *ast.Builder
	file     *source.File
	opts     Options
	errors   uint
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile lexes and parses one file into arenas.
func ParseFile(file *source.File, arenas *ast.Builder, opts Options) Result {
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	p := Parser{
		toks:   lx.All(),
		arenas: arenas,
		file:   file,
		opts:   opts,
	}
	p.lastSpan = source.Span{File: file.ID}

	start := p.peek().Span
	var items []ast.ItemID
	for !p.at(token.EOF) && !p.enough() {
		if id, ok := p.parseItem(); ok {
			items = append(items, id)
			continue
		}
		p.resyncTop()
	}
	fileID := arenas.NewFile(start.Cover(p.peek().Span), items)
	return Result{File: fileID, Errors: p.errors}
}

func (p *Parser) peek() token.Token { return p.peekN(0) }

// peekN looks n tokens ahead; past the end it keeps returning EOF.
func (p *Parser) peekN(n int) token.Token {
	if p.pos+n < len(p.toks) {
		return p.toks[p.pos+n]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *Parser) enough() bool {
	return p.opts.MaxErrors != 0 && p.errors >= p.opts.MaxErrors
}

// parseItem выбирает по первому токену нужный распознаватель top-level конструкции.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	switch p.peek().Kind {
	case token.KwPragma:
		return p.parseSkippedDecl(ast.ItemPragma)
	case token.KwImport:
		return p.parseSkippedDecl(ast.ItemImport)
	case token.KwUsing:
		return p.parseSkippedDecl(ast.ItemUsing)
	case token.KwContract, token.KwInterface, token.KwLibrary, token.KwAbstract:
		return p.parseContract()
	case token.KwFunction:
		return p.parseFn()
	case token.KwEvent:
		return p.parseSkippedDecl(ast.ItemEvent)
	case token.KwError:
		return p.parseSkippedDecl(ast.ItemError)
	case token.KwStruct:
		return p.parseBracedDecl(ast.ItemStruct)
	case token.KwEnum:
		return p.parseBracedDecl(ast.ItemEnum)
	default:
		// константы уровня файла
		if p.looksLikeVarDecl() {
			return p.parseStateVar()
		}
		p.err(diag.SynUnexpectedTopLevel, "unexpected top-level construct")
		return ast.NoItemID, false
	}
}

// resyncTop skips to ';', the first token of the next item, or EOF.
func (p *Parser) resyncTop() {
	p.advance()
	for !p.atOr(token.EOF, token.KwContract, token.KwInterface, token.KwLibrary,
		token.KwAbstract, token.KwFunction, token.KwPragma, token.KwImport) {
		if p.advance().Kind == token.Semicolon {
			return
		}
	}
}
