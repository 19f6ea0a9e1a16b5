package ctxir

import (
	"ctxgraph/internal/bignum"
	"ctxgraph/internal/builtins"
	"ctxgraph/internal/ranges"
)

// VarFromParam builds the entry version of a parameter. It declines unnamed
// parameters and parameters whose type is not an interned builtin. The range
// is the full range of the type.
func VarFromParam(reg *builtins.Registry, p *FunctionParam) (*ContextVar, bool) {
	if p == nil || p.Name == "" || !p.Type.IsValid() {
		return nil, false
	}
	b, ok := reg.Get(p.Type)
	if !ok {
		return nil, false
	}
	return &ContextVar{
		Name:    p.Name,
		Display: p.Name,
		Span:    p.Span,
		HasSpan: true,
		Type:    p.Type,
		Range:   b.Type.Range(),
	}, true
}

// VarFromReturn builds the entry version of a named return slot. Return
// slots start zeroed, so numeric slots get the range [0, 0].
func VarFromReturn(reg *builtins.Registry, r *FunctionReturn) (*ContextVar, bool) {
	if r == nil || r.Name == "" || !r.Type.IsValid() {
		return nil, false
	}
	b, ok := reg.Get(r.Type)
	if !ok {
		return nil, false
	}
	var rng *ranges.Range
	if b.Type.Range() != nil {
		rng = ranges.Exact(bignum.Int{})
	}
	return &ContextVar{
		Name:    r.Name,
		Display: r.Name,
		Span:    r.Span,
		HasSpan: true,
		Type:    r.Type,
		Range:   rng,
	}, true
}

// TypeOf returns the builtin descriptor of a version, if it has one.
func TypeOf(reg *builtins.Registry, v *ContextVar) (builtins.Type, bool) {
	if !v.Type.IsValid() {
		return builtins.Type{}, false
	}
	b, ok := reg.Get(v.Type)
	if !ok {
		return builtins.Type{}, false
	}
	return b.Type, true
}

