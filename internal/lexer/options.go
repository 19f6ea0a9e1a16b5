package lexer

import (
	"ctxgraph/internal/diag"
	"ctxgraph/internal/source"
)

type Options struct {
	Reporter diag.Reporter // nil drops errors; lexing goes on
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}
