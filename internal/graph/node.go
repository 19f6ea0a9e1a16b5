package graph

// NodeKind tags the payload stored under a NodeID.
type NodeKind uint8

const (
	KindInvalid NodeKind = iota
	KindSourceUnit
	KindContract
	KindFunction
	KindFunctionParam
	KindFunctionReturn
	KindContext
	KindContextVar
	KindBuiltin
)

var nodeKindNames = [...]string{
	KindInvalid:        "Invalid",
	KindSourceUnit:     "SourceUnit",
	KindContract:       "Contract",
	KindFunction:       "Function",
	KindFunctionParam:  "FunctionParam",
	KindFunctionReturn: "FunctionReturn",
	KindContext:        "Context",
	KindContextVar:     "ContextVar",
	KindBuiltin:        "Builtin",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "Unknown"
}

// Node is any payload stored in the graph.
type Node interface {
	Kind() NodeKind
}
