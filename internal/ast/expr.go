package ast

import (
	"ctxgraph/internal/source"
)

type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	ExprNumber
	ExprAddress
	ExprBool
	ExprString
	ExprHexString
	ExprBinary
	ExprUnary
	ExprTernary
	ExprCall
	ExprIndex
	ExprMember
	ExprElementaryType
	ExprTuple
	ExprNew
	ExprMapping
)

var exprKindNames = [...]string{
	ExprIdent:          "identifier",
	ExprNumber:         "number literal",
	ExprAddress:        "address literal",
	ExprBool:           "bool literal",
	ExprString:         "string literal",
	ExprHexString:      "hex string literal",
	ExprBinary:         "binary expression",
	ExprUnary:          "unary expression",
	ExprTernary:        "conditional expression",
	ExprCall:           "function call",
	ExprIndex:          "index expression",
	ExprMember:         "member access",
	ExprElementaryType: "elementary type",
	ExprTuple:          "tuple expression",
	ExprNew:            "new expression",
	ExprMapping:        "mapping type",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "expression"
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpAssign
	OpAssignAdd
	OpAssignSub
	OpAssignMul
	OpAssignDiv
	OpAssignMod
	OpAssignBitAnd
	OpAssignBitOr
	OpAssignBitXor
	OpAssignShl
	OpAssignShr
	OpEq
	OpNeq
	OpLt
	OpGt
	OpLe
	OpGe
	OpLogicalAnd
	OpLogicalOr
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
)

var binaryOpSymbols = [...]string{
	OpAdd:          "+",
	OpSub:          "-",
	OpMul:          "*",
	OpDiv:          "/",
	OpMod:          "%",
	OpPow:          "**",
	OpAssign:       "=",
	OpAssignAdd:    "+=",
	OpAssignSub:    "-=",
	OpAssignMul:    "*=",
	OpAssignDiv:    "/=",
	OpAssignMod:    "%=",
	OpAssignBitAnd: "&=",
	OpAssignBitOr:  "|=",
	OpAssignBitXor: "^=",
	OpAssignShl:    "<<=",
	OpAssignShr:    ">>=",
	OpEq:           "==",
	OpNeq:          "!=",
	OpLt:           "<",
	OpGt:           ">",
	OpLe:           "<=",
	OpGe:           ">=",
	OpLogicalAnd:   "&&",
	OpLogicalOr:    "||",
	OpBitAnd:       "&",
	OpBitOr:        "|",
	OpBitXor:       "^",
	OpShl:          "<<",
	OpShr:          ">>",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpSymbols) {
		return binaryOpSymbols[op]
	}
	return "?"
}

// IsAssign reports = and every compound assignment.
func (op BinaryOp) IsAssign() bool { return op >= OpAssign && op <= OpAssignShr }

type UnaryOp uint8

const (
	OpNeg UnaryOp = iota
	OpNot
	OpBitNot
	OpPreInc
	OpPreDec
	OpPostInc
	OpPostDec
	OpDelete
)

var unaryOpSymbols = [...]string{
	OpNeg:     "-",
	OpNot:     "!",
	OpBitNot:  "~",
	OpPreInc:  "++",
	OpPreDec:  "--",
	OpPostInc: "++",
	OpPostDec: "--",
	OpDelete:  "delete",
}

func (op UnaryOp) String() string {
	if int(op) < len(unaryOpSymbols) {
		return unaryOpSymbols[op]
	}
	return "?"
}

type IdentData struct {
	Name source.StringID
}

// NumberData keeps the literal text; Unit is a denomination such as
// "ether" or "days", empty when absent.
type NumberData struct {
	Value string
	Unit  string
}

type AddressData struct {
	Value string
}

type BoolData struct {
	Value bool
}

// StringPart is one quoted piece of an implicitly concatenated literal.
type StringPart struct {
	Span  source.Span
	Value string
}

type StringData struct {
	Parts []StringPart
}

type HexStringData struct {
	Value []byte
}

type BinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

type UnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

type TernaryData struct {
	Cond ExprID
	Then ExprID
	Else ExprID
}

type CallData struct {
	Callee ExprID
	Args   []ExprID
	Names  []source.StringID // set for f({a: x}) calls
}

// IndexData with Index == NoExprID is an array type reference T[].
type IndexData struct {
	Base  ExprID
	Index ExprID
}

type MemberData struct {
	Base     ExprID
	Name     source.StringID
	NameSpan source.Span
}

type ElementaryData struct {
	Name    string
	Payable bool
}

type TupleData struct {
	Elems []ExprID
}

type NewData struct {
	Type ExprID
}

type MappingData struct {
	Key   ExprID
	Value ExprID
}
