package builtins

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"ctxgraph/internal/graph"
	"ctxgraph/internal/ranges"
)

// Kind enumerates elementary type families.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindAddress
	KindAddressPayable
	KindBool
	KindString
	KindBytes      // dynamic bytes
	KindFixedBytes // bytes1..bytes32
	KindUint
	KindInt
	KindArray // dynamic array of Elem
)

// Type is the structural descriptor used as the interning key.
type Type struct {
	Kind Kind
	Size uint16       // bits for Uint/Int, bytes for FixedBytes
	Elem graph.NodeID // interned element for Array
}

// Node is the graph payload for an interned builtin.
type Node struct {
	Type Type
	Name string
}

func (*Node) Kind() graph.NodeKind { return graph.KindBuiltin }

// FromName parses an elementary type keyword.
func FromName(name string) (Type, bool) {
	switch name {
	case "address":
		return Type{Kind: KindAddress}, true
	case "bool":
		return Type{Kind: KindBool}, true
	case "string":
		return Type{Kind: KindString}, true
	case "bytes":
		return Type{Kind: KindBytes}, true
	case "byte":
		return Type{Kind: KindFixedBytes, Size: 1}, true
	case "uint":
		return Type{Kind: KindUint, Size: 256}, true
	case "int":
		return Type{Kind: KindInt, Size: 256}, true
	}
	for _, p := range []struct {
		prefix   string
		kind     Kind
		min, max int
		step     int
	}{
		{"uint", KindUint, 8, 256, 8},
		{"int", KindInt, 8, 256, 8},
		{"bytes", KindFixedBytes, 1, 32, 1},
	} {
		rest, ok := strings.CutPrefix(name, p.prefix)
		if !ok || rest == "" || rest[0] == '0' {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil || n < p.min || n > p.max || n%p.step != 0 {
			continue
		}
		size, err := safecast.Conv[uint16](n)
		if err != nil {
			continue
		}
		return Type{Kind: p.kind, Size: size}, true
	}
	return Type{}, false
}

// Range is the full value range of numeric types, nil otherwise.
func (t Type) Range() *ranges.Range {
	switch t.Kind {
	case KindUint:
		return ranges.Uint(uint(t.Size))
	case KindInt:
		return ranges.Int(uint(t.Size))
	case KindBool:
		return ranges.Bool()
	case KindAddress, KindAddressPayable:
		return ranges.Uint(160)
	default:
		return nil
	}
}

// IsNumeric reports whether arithmetic on the type is meaningful.
func (t Type) IsNumeric() bool {
	return t.Kind == KindUint || t.Kind == KindInt
}

func (t Type) baseName() string {
	switch t.Kind {
	case KindAddress:
		return "address"
	case KindAddressPayable:
		return "address payable"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindFixedBytes:
		return fmt.Sprintf("bytes%d", t.Size)
	case KindUint:
		return fmt.Sprintf("uint%d", t.Size)
	case KindInt:
		return fmt.Sprintf("int%d", t.Size)
	default:
		return "<invalid>"
	}
}
