package parser

import (
	"ctxgraph/internal/ast"
	"ctxgraph/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precAssignment     = 1  // = += -= *= /= %= ...
	precTernary        = 2  // ?:
	precLogicalOr      = 3  // ||
	precLogicalAnd     = 4  // &&
	precEquality       = 5  // == !=
	precComparison     = 6  // < <= > >=
	precBitwiseOr      = 7  // |
	precBitwiseXor     = 8  // ^
	precBitwiseAnd     = 9  // &
	precShift          = 10 // << >>
	precAdditive       = 11 // + -
	precMultiplicative = 12 // * / %
	precPower          = 13 // **
)

type binaryInfo struct {
	op    ast.BinaryOp
	prec  int
	right bool
}

var binaryOps = map[token.Kind]binaryInfo{
	token.Assign:        {ast.OpAssign, precAssignment, true},
	token.PlusAssign:    {ast.OpAssignAdd, precAssignment, true},
	token.MinusAssign:   {ast.OpAssignSub, precAssignment, true},
	token.StarAssign:    {ast.OpAssignMul, precAssignment, true},
	token.SlashAssign:   {ast.OpAssignDiv, precAssignment, true},
	token.PercentAssign: {ast.OpAssignMod, precAssignment, true},
	token.AmpAssign:     {ast.OpAssignBitAnd, precAssignment, true},
	token.PipeAssign:    {ast.OpAssignBitOr, precAssignment, true},
	token.CaretAssign:   {ast.OpAssignBitXor, precAssignment, true},
	token.ShlAssign:     {ast.OpAssignShl, precAssignment, true},
	token.ShrAssign:     {ast.OpAssignShr, precAssignment, true},
	token.OrOr:          {ast.OpLogicalOr, precLogicalOr, false},
	token.AndAnd:        {ast.OpLogicalAnd, precLogicalAnd, false},
	token.EqEq:          {ast.OpEq, precEquality, false},
	token.BangEq:        {ast.OpNeq, precEquality, false},
	token.Lt:            {ast.OpLt, precComparison, false},
	token.LtEq:          {ast.OpLe, precComparison, false},
	token.Gt:            {ast.OpGt, precComparison, false},
	token.GtEq:          {ast.OpGe, precComparison, false},
	token.Pipe:          {ast.OpBitOr, precBitwiseOr, false},
	token.Caret:         {ast.OpBitXor, precBitwiseXor, false},
	token.Amp:           {ast.OpBitAnd, precBitwiseAnd, false},
	token.Shl:           {ast.OpShl, precShift, false},
	token.Shr:           {ast.OpShr, precShift, false},
	token.Plus:          {ast.OpAdd, precAdditive, false},
	token.Minus:         {ast.OpSub, precAdditive, false},
	token.Star:          {ast.OpMul, precMultiplicative, false},
	token.Slash:         {ast.OpDiv, precMultiplicative, false},
	token.Percent:       {ast.OpMod, precMultiplicative, false},
	token.StarStar:      {ast.OpPow, precPower, true},
}

var prefixOps = map[token.Kind]ast.UnaryOp{
	token.Minus:      ast.OpNeg,
	token.Bang:       ast.OpNot,
	token.Tilde:      ast.OpBitNot,
	token.PlusPlus:   ast.OpPreInc,
	token.MinusMinus: ast.OpPreDec,
	token.KwDelete:   ast.OpDelete,
}

// numberUnits are the denominations accepted after a number literal.
var numberUnits = map[string]bool{
	"wei": true, "gwei": true, "ether": true,
	"seconds": true, "minutes": true, "hours": true, "days": true, "weeks": true,
}
