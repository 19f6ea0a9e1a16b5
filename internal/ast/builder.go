package ast

import (
	"ctxgraph/internal/source"
)

// Builder owns every arena of one parse.
type Builder struct {
	Files   *Arena[File]
	Items   *Items
	Stmts   *Stmts
	Exprs   *Exprs
	Strings *source.Interner
}

// NewBuilder creates a Builder; capHint sizes the arenas (0 picks a default).
func NewBuilder(capHint uint) *Builder {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Builder{
		Files:   NewArena[File](4),
		Items:   NewItems(capHint),
		Stmts:   NewStmts(capHint),
		Exprs:   NewExprs(capHint),
		Strings: source.NewInterner(),
	}
}

// Name resolves an interned identifier, "" for NoStringID.
func (b *Builder) Name(id source.StringID) string {
	if id == source.NoStringID {
		return ""
	}
	s, _ := b.Strings.Lookup(id)
	return s
}
