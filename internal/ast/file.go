package ast

import "ctxgraph/internal/source"

// File is one parsed source unit.
type File struct {
	Span  source.Span
	Items []ItemID
}

func (b *Builder) NewFile(span source.Span, items []ItemID) FileID {
	return FileID(b.Files.Allocate(File{Span: span, Items: items}))
}

func (b *Builder) File(id FileID) *File {
	return b.Files.Get(uint32(id))
}
