package graph

// EdgeKind is the tag carried by an edge.
type EdgeKind uint8

const (
	EdgeInvalid EdgeKind = iota

	// scopes and control flow
	EdgeContext
	EdgeSubcontext
	EdgeCall
	EdgeReturn

	// scope membership
	EdgeVariable
	EdgeInheritedVariable

	// member and array access
	EdgeAttrAccess
	EdgeIndex
	EdgeIndexAccess

	// writes into a variable
	EdgeAssign
	EdgeStorageAssign
	EdgeMemoryAssign
	EdgePrev

	EdgeRange

	// declarations, member -> owner
	EdgeSourceUnit
	EdgeContract
	EdgeFunc
	EdgeFunctionParam
	EdgeFunctionReturn
)

var edgeKindNames = [...]string{
	EdgeInvalid:           "Invalid",
	EdgeContext:           "Context",
	EdgeSubcontext:        "Subcontext",
	EdgeCall:              "Call",
	EdgeReturn:            "Return",
	EdgeVariable:          "Variable",
	EdgeInheritedVariable: "InheritedVariable",
	EdgeAttrAccess:        "AttrAccess",
	EdgeIndex:             "Index",
	EdgeIndexAccess:       "IndexAccess",
	EdgeAssign:            "Assign",
	EdgeStorageAssign:     "StorageAssign",
	EdgeMemoryAssign:      "MemoryAssign",
	EdgePrev:              "Prev",
	EdgeRange:             "Range",
	EdgeSourceUnit:        "SourceUnit",
	EdgeContract:          "Contract",
	EdgeFunc:              "Func",
	EdgeFunctionParam:     "FunctionParam",
	EdgeFunctionReturn:    "FunctionReturn",
}

func (k EdgeKind) String() string {
	if int(k) < len(edgeKindNames) {
		return edgeKindNames[k]
	}
	return "Unknown"
}

// ParseEdgeKind is the inverse of String.
func ParseEdgeKind(s string) (EdgeKind, bool) {
	for i, name := range edgeKindNames {
		if name == s && i != int(EdgeInvalid) {
			return EdgeKind(i), true
		}
	}
	return EdgeInvalid, false
}

// AnyEdge matches every kind in Edges.
const AnyEdge EdgeKind = EdgeInvalid

// Edge is a directed, tagged link From -> To.
type Edge struct {
	ID   EdgeID
	From NodeID
	To   NodeID
	Kind EdgeKind
}

// Direction selects which adjacency list of a node is walked.
type Direction uint8

const (
	Outgoing Direction = iota
	Incoming
)
