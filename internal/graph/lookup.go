package graph

import (
	"errors"
	"fmt"
)

var ErrNoSuchNode = errors.New("no such node")

// KindMismatchError is returned when a node is read as the wrong payload.
type KindMismatchError struct {
	ID   NodeID
	Want NodeKind
	Got  NodeKind
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("node %d: expected %s, found %s", e.ID, e.Want, e.Got)
}

// Lookup returns the node under id as *T. want names the expected kind for
// the error message.
func Lookup[T Node](g *Graph, id NodeID, want NodeKind) (T, error) {
	var zero T
	n := g.Node(id)
	if n == nil {
		return zero, fmt.Errorf("node %d: %w", id, ErrNoSuchNode)
	}
	v, ok := n.(T)
	if !ok {
		return zero, &KindMismatchError{ID: id, Want: want, Got: n.Kind()}
	}
	return v, nil
}
