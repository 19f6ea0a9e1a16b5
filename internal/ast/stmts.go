package ast

import (
	"ctxgraph/internal/source"
)

// Stmts manages allocation of statements.
type Stmts struct {
	Arena    *Arena[Stmt]
	Blocks   *Arena[BlockData]
	VarDecls *Arena[VarDeclData]
	Ifs      *Arena[IfData]
	Whiles   *Arena[WhileData]
	Fors     *Arena[ForData]
	Exprs    *Arena[ExprStmtData]
	Returns  *Arena[ReturnData]
	Reverts  *Arena[RevertData]
	Emits    *Arena[EmitData]
	Tries    *Arena[TryData]
}

func NewStmts(capHint uint) *Stmts {
	return &Stmts{
		Arena:    NewArena[Stmt](capHint),
		Blocks:   NewArena[BlockData](capHint),
		VarDecls: NewArena[VarDeclData](capHint),
		Ifs:      NewArena[IfData](capHint),
		Whiles:   NewArena[WhileData](capHint),
		Fors:     NewArena[ForData](capHint),
		Exprs:    NewArena[ExprStmtData](capHint),
		Returns:  NewArena[ReturnData](capHint),
		Reverts:  NewArena[RevertData](capHint),
		Emits:    NewArena[EmitData](capHint),
		Tries:    NewArena[TryData](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func payloadOf[T any](s *Stmts, id StmtID, kind StmtKind, arena *Arena[T]) (*T, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != kind {
		return nil, false
	}
	return arena.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID, unchecked bool) StmtID {
	return s.new(StmtBlock, span, s.Blocks.Allocate(BlockData{Stmts: stmts, Unchecked: unchecked}))
}

func (s *Stmts) Block(id StmtID) (*BlockData, bool) {
	return payloadOf(s, id, StmtBlock, s.Blocks)
}

func (s *Stmts) NewVarDecl(span source.Span, data VarDeclData) StmtID {
	return s.new(StmtVarDecl, span, s.VarDecls.Allocate(data))
}

func (s *Stmts) VarDecl(id StmtID) (*VarDeclData, bool) {
	return payloadOf(s, id, StmtVarDecl, s.VarDecls)
}

func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	return s.new(StmtIf, span, s.Ifs.Allocate(IfData{Cond: cond, Then: then, Else: els}))
}

func (s *Stmts) If(id StmtID) (*IfData, bool) {
	return payloadOf(s, id, StmtIf, s.Ifs)
}

// NewWhile serves both while and do-while loops.
func (s *Stmts) NewWhile(kind StmtKind, span source.Span, cond ExprID, body StmtID) StmtID {
	return s.new(kind, span, s.Whiles.Allocate(WhileData{Cond: cond, Body: body}))
}

func (s *Stmts) While(id StmtID) (*WhileData, bool) {
	st := s.Get(id)
	if st == nil || (st.Kind != StmtWhile && st.Kind != StmtDoWhile) {
		return nil, false
	}
	return s.Whiles.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewFor(span source.Span, data ForData) StmtID {
	return s.new(StmtFor, span, s.Fors.Allocate(data))
}

func (s *Stmts) For(id StmtID) (*ForData, bool) {
	return payloadOf(s, id, StmtFor, s.Fors)
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	return s.new(StmtExpr, span, s.Exprs.Allocate(ExprStmtData{Expr: expr}))
}

func (s *Stmts) Expr(id StmtID) (*ExprStmtData, bool) {
	return payloadOf(s, id, StmtExpr, s.Exprs)
}

func (s *Stmts) NewReturn(span source.Span, expr ExprID) StmtID {
	return s.new(StmtReturn, span, s.Returns.Allocate(ReturnData{Expr: expr}))
}

func (s *Stmts) Return(id StmtID) (*ReturnData, bool) {
	return payloadOf(s, id, StmtReturn, s.Returns)
}

// NewRevert serves revert(...), revert E(...) and revert E({a: x}).
func (s *Stmts) NewRevert(kind StmtKind, span source.Span, data RevertData) StmtID {
	return s.new(kind, span, s.Reverts.Allocate(data))
}

func (s *Stmts) Revert(id StmtID) (*RevertData, bool) {
	st := s.Get(id)
	if st == nil || (st.Kind != StmtRevert && st.Kind != StmtRevertNamedArgs) {
		return nil, false
	}
	return s.Reverts.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewEmit(span source.Span, call ExprID) StmtID {
	return s.new(StmtEmit, span, s.Emits.Allocate(EmitData{Call: call}))
}

func (s *Stmts) Emit(id StmtID) (*EmitData, bool) {
	return payloadOf(s, id, StmtEmit, s.Emits)
}

func (s *Stmts) NewTry(span source.Span, data TryData) StmtID {
	return s.new(StmtTry, span, s.Tries.Allocate(data))
}

func (s *Stmts) Try(id StmtID) (*TryData, bool) {
	return payloadOf(s, id, StmtTry, s.Tries)
}

// NewBare creates payload-less statements: assembly, continue, break, error.
func (s *Stmts) NewBare(kind StmtKind, span source.Span) StmtID {
	return s.new(kind, span, 0)
}
