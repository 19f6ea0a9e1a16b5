package ranges

// Op is an arithmetic or comparison operator inside a symbolic bound.
type Op uint8

const (
	OpAdd Op = iota + 1
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNeq
	OpLt
	OpGt
	OpLte
	OpGte
)

var opSymbols = [...]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpMod: "%",
	OpEq:  "==",
	OpNeq: "!=",
	OpLt:  "<",
	OpGt:  ">",
	OpLte: "<=",
	OpGte: ">=",
}

func (op Op) String() string {
	if int(op) < len(opSymbols) && opSymbols[op] != "" {
		return opSymbols[op]
	}
	return "?"
}

// IsComparison reports whether op yields a boolean.
func (op Op) IsComparison() bool { return op >= OpEq && op <= OpGte }

// Mirror returns the operator with operands swapped: a < b == b > a.
func (op Op) Mirror() Op {
	switch op {
	case OpLt:
		return OpGt
	case OpGt:
		return OpLt
	case OpLte:
		return OpGte
	case OpGte:
		return OpLte
	default:
		return op
	}
}
