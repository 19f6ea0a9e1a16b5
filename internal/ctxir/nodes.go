package ctxir

import (
	"ctxgraph/internal/graph"
	"ctxgraph/internal/ranges"
	"ctxgraph/internal/source"
)

// SourceUnit is one analysed file.
type SourceUnit struct {
	Path string
	File source.FileID
}

// Contract groups functions.
type Contract struct {
	Name string
	Span source.Span
}

// Function is a function or modifier declaration. Builtin marks the
// synthetic require/assert functions.
type Function struct {
	Name    string
	Span    source.Span
	Builtin bool
}

// FunctionParam is a declared parameter; Name is empty when unnamed.
type FunctionParam struct {
	Index    int
	Name     string
	Type     graph.NodeID // interned builtin, NoNodeID when not elementary
	TypeName string
	Span     source.Span
}

// FunctionReturn is a declared return slot; Name is empty when unnamed.
type FunctionReturn struct {
	Index    int
	Name     string
	Type     graph.NodeID
	TypeName string
	Span     source.Span
}

// Context is a scope introduced by a block.
type Context struct {
	// TmpCounter only grows, through ContextNode.NewTmp.
	TmpCounter uint32
	Span       source.Span
	Unchecked  bool
}

// ContextVar is one version of a variable or intermediate value.
type ContextVar struct {
	Name    string
	Display string
	Span    source.Span
	HasSpan bool
	Type    graph.NodeID
	Tmp     bool
	// Range is nil while unknown.
	Range *ranges.Range
}

func (*SourceUnit) Kind() graph.NodeKind     { return graph.KindSourceUnit }
func (*Contract) Kind() graph.NodeKind       { return graph.KindContract }
func (*Function) Kind() graph.NodeKind       { return graph.KindFunction }
func (*FunctionParam) Kind() graph.NodeKind  { return graph.KindFunctionParam }
func (*FunctionReturn) Kind() graph.NodeKind { return graph.KindFunctionReturn }
func (*Context) Kind() graph.NodeKind        { return graph.KindContext }
func (*ContextVar) Kind() graph.NodeKind     { return graph.KindContextVar }

// Clone copies the version data; the range is copied too so that the
// clone can receive a new range without touching the original.
func (v *ContextVar) Clone() *ContextVar {
	cp := *v
	if v.Range != nil {
		r := *v.Range
		cp.Range = &r
	}
	return &cp
}
