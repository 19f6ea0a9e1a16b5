package ast

import (
	"ctxgraph/internal/source"
)

type StmtKind uint8

const (
	StmtBlock StmtKind = iota
	StmtVarDecl
	StmtAssembly
	StmtArgs
	StmtIf
	StmtWhile
	StmtExpr
	StmtFor
	StmtDoWhile
	StmtContinue
	StmtBreak
	StmtReturn
	StmtRevert
	StmtRevertNamedArgs
	StmtEmit
	StmtTry
	StmtError // placeholder left by parser recovery
)

var stmtKindNames = [...]string{
	StmtBlock:           "block",
	StmtVarDecl:         "variable declaration",
	StmtAssembly:        "assembly block",
	StmtArgs:            "argument list",
	StmtIf:              "if statement",
	StmtWhile:           "while loop",
	StmtExpr:            "expression statement",
	StmtFor:             "for loop",
	StmtDoWhile:         "do-while loop",
	StmtContinue:        "continue",
	StmtBreak:           "break",
	StmtReturn:          "return",
	StmtRevert:          "revert",
	StmtRevertNamedArgs: "revert with named arguments",
	StmtEmit:            "emit",
	StmtTry:             "try statement",
	StmtError:           "erroneous statement",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "statement"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type BlockData struct {
	Stmts     []StmtID
	Unchecked bool
}

type VarDeclData struct {
	Type     ExprID
	Location StorageLocation
	Name     source.StringID
	NameSpan source.Span
	Init     ExprID // NoExprID when uninitialised
}

type IfData struct {
	Cond ExprID
	Then StmtID
	Else StmtID
}

type WhileData struct {
	Cond ExprID
	Body StmtID
}

type ForData struct {
	Init StmtID
	Cond ExprID
	Post ExprID
	Body StmtID
}

type ExprStmtData struct {
	Expr ExprID
}

type ReturnData struct {
	Expr ExprID // NoExprID for bare return
}

type RevertData struct {
	Path  ExprID // NoExprID for revert(...)
	Names []source.StringID
	Args  []ExprID
}

type EmitData struct {
	Call ExprID
}

type CatchClause struct {
	Name   source.StringID
	Params []ParamID
	Body   StmtID
}

type TryData struct {
	Expr    ExprID
	Returns []ParamID
	Body    StmtID
	Catches []CatchClause
}
