package ast

import (
	"ctxgraph/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena      *Arena[Expr]
	Idents     *Arena[IdentData]
	Numbers    *Arena[NumberData]
	Addresses  *Arena[AddressData]
	Bools      *Arena[BoolData]
	Strings    *Arena[StringData]
	HexStrings *Arena[HexStringData]
	Binaries   *Arena[BinaryData]
	Unaries    *Arena[UnaryData]
	Ternaries  *Arena[TernaryData]
	Calls      *Arena[CallData]
	Indices    *Arena[IndexData]
	Members    *Arena[MemberData]
	Elementary *Arena[ElementaryData]
	Tuples     *Arena[TupleData]
	News       *Arena[NewData]
	Mappings   *Arena[MappingData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint.
func NewExprs(capHint uint) *Exprs {
	return &Exprs{
		Arena:      NewArena[Expr](capHint),
		Idents:     NewArena[IdentData](capHint),
		Numbers:    NewArena[NumberData](capHint),
		Addresses:  NewArena[AddressData](4),
		Bools:      NewArena[BoolData](4),
		Strings:    NewArena[StringData](capHint),
		HexStrings: NewArena[HexStringData](4),
		Binaries:   NewArena[BinaryData](capHint),
		Unaries:    NewArena[UnaryData](capHint),
		Ternaries:  NewArena[TernaryData](4),
		Calls:      NewArena[CallData](capHint),
		Indices:    NewArena[IndexData](capHint),
		Members:    NewArena[MemberData](capHint),
		Elementary: NewArena[ElementaryData](capHint),
		Tuples:     NewArena[TupleData](4),
		News:       NewArena[NewData](4),
		Mappings:   NewArena[MappingData](4),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func exprPayload[T any](e *Exprs, id ExprID, kind ExprKind, arena *Arena[T]) (*T, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != kind {
		return nil, false
	}
	return arena.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	return e.new(ExprIdent, span, e.Idents.Allocate(IdentData{Name: name}))
}

func (e *Exprs) Ident(id ExprID) (*IdentData, bool) {
	return exprPayload(e, id, ExprIdent, e.Idents)
}

func (e *Exprs) NewNumber(span source.Span, value, unit string) ExprID {
	return e.new(ExprNumber, span, e.Numbers.Allocate(NumberData{Value: value, Unit: unit}))
}

func (e *Exprs) Number(id ExprID) (*NumberData, bool) {
	return exprPayload(e, id, ExprNumber, e.Numbers)
}

func (e *Exprs) NewAddress(span source.Span, value string) ExprID {
	return e.new(ExprAddress, span, e.Addresses.Allocate(AddressData{Value: value}))
}

func (e *Exprs) Address(id ExprID) (*AddressData, bool) {
	return exprPayload(e, id, ExprAddress, e.Addresses)
}

func (e *Exprs) NewBool(span source.Span, value bool) ExprID {
	return e.new(ExprBool, span, e.Bools.Allocate(BoolData{Value: value}))
}

func (e *Exprs) Bool(id ExprID) (*BoolData, bool) {
	return exprPayload(e, id, ExprBool, e.Bools)
}

func (e *Exprs) NewStringLit(span source.Span, parts []StringPart) ExprID {
	return e.new(ExprString, span, e.Strings.Allocate(StringData{Parts: parts}))
}

func (e *Exprs) StringLit(id ExprID) (*StringData, bool) {
	return exprPayload(e, id, ExprString, e.Strings)
}

func (e *Exprs) NewHexString(span source.Span, value []byte) ExprID {
	return e.new(ExprHexString, span, e.HexStrings.Allocate(HexStringData{Value: value}))
}

func (e *Exprs) HexString(id ExprID) (*HexStringData, bool) {
	return exprPayload(e, id, ExprHexString, e.HexStrings)
}

func (e *Exprs) NewBinary(span source.Span, op BinaryOp, left, right ExprID) ExprID {
	return e.new(ExprBinary, span, e.Binaries.Allocate(BinaryData{Op: op, Left: left, Right: right}))
}

func (e *Exprs) Binary(id ExprID) (*BinaryData, bool) {
	return exprPayload(e, id, ExprBinary, e.Binaries)
}

func (e *Exprs) NewUnary(span source.Span, op UnaryOp, operand ExprID) ExprID {
	return e.new(ExprUnary, span, e.Unaries.Allocate(UnaryData{Op: op, Operand: operand}))
}

func (e *Exprs) Unary(id ExprID) (*UnaryData, bool) {
	return exprPayload(e, id, ExprUnary, e.Unaries)
}

func (e *Exprs) NewTernary(span source.Span, cond, then, els ExprID) ExprID {
	return e.new(ExprTernary, span, e.Ternaries.Allocate(TernaryData{Cond: cond, Then: then, Else: els}))
}

func (e *Exprs) Ternary(id ExprID) (*TernaryData, bool) {
	return exprPayload(e, id, ExprTernary, e.Ternaries)
}

func (e *Exprs) NewCall(span source.Span, callee ExprID, args []ExprID, names []source.StringID) ExprID {
	return e.new(ExprCall, span, e.Calls.Allocate(CallData{Callee: callee, Args: args, Names: names}))
}

func (e *Exprs) Call(id ExprID) (*CallData, bool) {
	return exprPayload(e, id, ExprCall, e.Calls)
}

func (e *Exprs) NewIndex(span source.Span, base, index ExprID) ExprID {
	return e.new(ExprIndex, span, e.Indices.Allocate(IndexData{Base: base, Index: index}))
}

func (e *Exprs) Index(id ExprID) (*IndexData, bool) {
	return exprPayload(e, id, ExprIndex, e.Indices)
}

func (e *Exprs) NewMember(span source.Span, base ExprID, name source.StringID, nameSpan source.Span) ExprID {
	return e.new(ExprMember, span, e.Members.Allocate(MemberData{Base: base, Name: name, NameSpan: nameSpan}))
}

func (e *Exprs) Member(id ExprID) (*MemberData, bool) {
	return exprPayload(e, id, ExprMember, e.Members)
}

func (e *Exprs) NewElementary(span source.Span, name string, payable bool) ExprID {
	return e.new(ExprElementaryType, span, e.Elementary.Allocate(ElementaryData{Name: name, Payable: payable}))
}

func (e *Exprs) ElementaryType(id ExprID) (*ElementaryData, bool) {
	return exprPayload(e, id, ExprElementaryType, e.Elementary)
}

func (e *Exprs) NewTuple(span source.Span, elems []ExprID) ExprID {
	return e.new(ExprTuple, span, e.Tuples.Allocate(TupleData{Elems: elems}))
}

func (e *Exprs) Tuple(id ExprID) (*TupleData, bool) {
	return exprPayload(e, id, ExprTuple, e.Tuples)
}

// NewAlloc creates a `new T` expression.
func (e *Exprs) NewAlloc(span source.Span, typ ExprID) ExprID {
	return e.new(ExprNew, span, e.News.Allocate(NewData{Type: typ}))
}

func (e *Exprs) Alloc(id ExprID) (*NewData, bool) {
	return exprPayload(e, id, ExprNew, e.News)
}

func (e *Exprs) NewMapping(span source.Span, key, value ExprID) ExprID {
	return e.new(ExprMapping, span, e.Mappings.Allocate(MappingData{Key: key, Value: value}))
}

func (e *Exprs) Mapping(id ExprID) (*MappingData, bool) {
	return exprPayload(e, id, ExprMapping, e.Mappings)
}
