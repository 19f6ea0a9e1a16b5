package builder

import (
	"ctxgraph/internal/ast"
	"ctxgraph/internal/builtins"
	"ctxgraph/internal/ctxir"
	"ctxgraph/internal/graph"
	"ctxgraph/internal/ranges"
	"ctxgraph/internal/source"
)

// elementary interns an elementary type; equal descriptors share a node.
func (b *Builder) elementary(d *ast.ElementaryData, span source.Span) (graph.NodeID, error) {
	t, ok := builtins.FromName(d.Name)
	if !ok {
		return graph.NoNodeID, unsupported(span, "type "+d.Name)
	}
	if d.Payable && t.Kind == builtins.KindAddress {
		t.Kind = builtins.KindAddressPayable
	}
	return b.reg.Intern(t), nil
}

// arrayType lowers T[] to the interned dynamic array of T.
func (b *Builder) arrayType(base ast.ExprID, span source.Span, ctx ctxir.ContextNode) (graph.NodeID, error) {
	elem, err := b.first(base, span, ctx)
	if err != nil {
		return graph.NoNodeID, err
	}
	if _, ok := b.reg.Get(elem); !ok {
		return graph.NoNodeID, unsupported(span, "array of "+b.display(elem))
	}
	return b.reg.ArrayOf(elem), nil
}

// indexAccess yields the element version for base[index]. Reads of the same
// element reuse the existing node, so writes through a[i] are visible to
// later reads of a[i].
func (b *Builder) indexAccess(d *ast.IndexData, span source.Span, ctx ctxir.ContextNode) (graph.NodeID, error) {
	base, err := b.first(d.Base, span, ctx)
	if err != nil {
		return graph.NoNodeID, err
	}
	idx, err := b.first(d.Index, span, ctx)
	if err != nil {
		return graph.NoNodeID, err
	}
	baseVar, err := graph.Lookup[*ctxir.ContextVar](b.g, base, graph.KindContextVar)
	if err != nil {
		return graph.NoNodeID, unsupported(span, "index into "+b.g.Kind(base).String())
	}

	for _, elem := range b.g.Sources(base, graph.EdgeIndexAccess) {
		for _, used := range b.g.Sources(elem, graph.EdgeIndex) {
			if b.sameIndex(used, idx) {
				return ctxir.VarNode(elem).Latest(b.g).ID(), nil
			}
		}
	}

	name := baseVar.Name + "[" + b.display(idx) + "]"
	cv := &ctxir.ContextVar{Name: name, Display: name, Span: span, HasSpan: true}
	if t, ok := ctxir.TypeOf(b.reg, baseVar); ok && t.Kind == builtins.KindArray {
		cv.Type = t.Elem
		if elem, ok := b.reg.Get(t.Elem); ok {
			cv.Range = elem.Type.Range()
		}
	}
	id := b.g.AddNode(cv)
	b.g.MustAddEdge(id, base, graph.EdgeIndexAccess)
	b.g.MustAddEdge(idx, id, graph.EdgeIndex)
	return id, nil
}

// sameIndex: the same version, or two constants with the same value.
func (b *Builder) sameIndex(a, c graph.NodeID) bool {
	if a == c {
		return true
	}
	av, ok := b.exact(a)
	if !ok {
		return false
	}
	cv, ok := b.exact(c)
	return ok && av.Value.Cmp(cv.Value) == 0 && b.isTmp(a) && b.isTmp(c)
}

func (b *Builder) isTmp(id graph.NodeID) bool {
	cv, err := graph.Lookup[*ctxir.ContextVar](b.g, id, graph.KindContextVar)
	return err == nil && cv.Tmp
}

// memberAccess yields the attribute version for base.name, reusing an
// existing one.
func (b *Builder) memberAccess(d *ast.MemberData, span source.Span, ctx ctxir.ContextNode) (graph.NodeID, error) {
	base, err := b.first(d.Base, span, ctx)
	if err != nil {
		return graph.NoNodeID, err
	}
	member := b.arenas.Name(d.Name)
	name := b.display(base) + "." + member

	for _, attr := range b.g.Sources(base, graph.EdgeAttrAccess) {
		if ctxir.VarNode(attr).Name(b.g) == name {
			return ctxir.VarNode(attr).Latest(b.g).ID(), nil
		}
	}

	cv := &ctxir.ContextVar{Name: name, Display: name, Span: span, HasSpan: true}
	if member == "length" {
		t := builtins.Type{Kind: builtins.KindUint, Size: 256}
		cv.Type = b.reg.Intern(t)
		cv.Range = t.Range()
	}
	id := b.g.AddNode(cv)
	b.g.MustAddEdge(id, base, graph.EdgeAttrAccess)
	return id, nil
}

// environment values reachable without declaration
var globalTypes = map[string]builtins.Type{
	"msg":   {},
	"block": {},
	"tx":    {},
	"abi":   {},
	"this":  {Kind: builtins.KindAddress},
	"now":   {Kind: builtins.KindUint, Size: 256},
}

// global returns the shared version of an environment value, creating it on
// first use. Globals are not scope members.
func (b *Builder) global(name string, span source.Span) (graph.NodeID, bool) {
	t, ok := globalTypes[name]
	if !ok {
		return graph.NoNodeID, false
	}
	if id, ok := b.globals[name]; ok {
		return id, true
	}
	cv := &ctxir.ContextVar{Name: name, Display: name, Span: span, HasSpan: true}
	if t.Kind != builtins.KindInvalid {
		cv.Type = b.reg.Intern(t)
		cv.Range = t.Range()
	}
	id := b.g.AddNode(cv)
	b.globals[name] = id
	return id, true
}

// rangeOfType is the full range of an interned type, nil when unknown.
func (b *Builder) rangeOfType(typ graph.NodeID) *ranges.Range {
	if n, ok := b.reg.Get(typ); ok {
		return n.Type.Range()
	}
	return nil
}
