package graphfmt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"ctxgraph/internal/analyzer"
	"ctxgraph/internal/ctxir"
	"ctxgraph/internal/observ"
)

// SnapshotVersion is bumped whenever the encoded layout changes.
const SnapshotVersion uint16 = 1

var ErrSnapshotVersion = errors.New("unsupported snapshot version")

// Snapshot is the serialisable form of one file's graph.
type Snapshot struct {
	Version uint16        `msgpack:"v"`
	Path    string        `msgpack:"path"`
	Nodes   []SnapNode    `msgpack:"nodes"`
	Edges   []SnapEdge    `msgpack:"edges"`
	Passes  []SnapPass    `msgpack:"passes,omitempty"`
	Timing  observ.Report `msgpack:"timing"`
}

type SnapNode struct {
	ID      uint32 `msgpack:"id"`
	Kind    string `msgpack:"kind"`
	Label   string `msgpack:"label"`
	Name    string `msgpack:"name,omitempty"`
	Type    uint32 `msgpack:"type,omitempty"`
	Min     string `msgpack:"min,omitempty"`
	Max     string `msgpack:"max,omitempty"`
	Tmp     bool   `msgpack:"tmp,omitempty"`
	Start   uint32 `msgpack:"start,omitempty"`
	End     uint32 `msgpack:"end,omitempty"`
	Tainted bool   `msgpack:"tainted,omitempty"`
}

type SnapEdge struct {
	From uint32 `msgpack:"from"`
	To   uint32 `msgpack:"to"`
	Kind string `msgpack:"kind"`
}

type SnapPass struct {
	Function    uint32 `msgpack:"fn"`
	Name        string `msgpack:"name"`
	First       uint32 `msgpack:"first"`
	Last        uint32 `msgpack:"last"`
	Err         string `msgpack:"err,omitempty"`
	Unsupported int    `msgpack:"unsupported,omitempty"`
}

// NewSnapshot flattens res. Range bounds are kept in their printed form.
func NewSnapshot(res *analyzer.Result, path string, timing observ.Report) Snapshot {
	g := res.Graph
	s := Snapshot{
		Version: SnapshotVersion,
		Path:    path,
		Nodes:   make([]SnapNode, 0, g.NodeCount()),
		Edges:   make([]SnapEdge, 0, g.EdgeCount()),
		Timing:  timing,
	}
	for id, n := range g.Nodes {
		sn := SnapNode{
			ID:      uint32(id),
			Kind:    n.Kind().String(),
			Label:   Label(g, res.Registry, id),
			Tainted: res.Tainted(id),
		}
		switch n := n.(type) {
		case *ctxir.ContextVar:
			sn.Name = n.Name
			sn.Type = uint32(n.Type)
			sn.Tmp = n.Tmp
			if n.HasSpan {
				sn.Start, sn.End = n.Span.Start, n.Span.End
			}
			if n.Range != nil {
				sn.Min, sn.Max = n.Range.Min.String(), n.Range.Max.String()
			}
		case *ctxir.Function:
			sn.Name = n.Name
			sn.Start, sn.End = n.Span.Start, n.Span.End
		case *ctxir.Context:
			sn.Start, sn.End = n.Span.Start, n.Span.End
		}
		s.Nodes = append(s.Nodes, sn)
	}
	for _, e := range g.AllEdges() {
		s.Edges = append(s.Edges, SnapEdge{From: uint32(e.From), To: uint32(e.To), Kind: e.Kind.String()})
	}
	for _, p := range res.Passes {
		sp := SnapPass{
			Function:    uint32(p.Function),
			Name:        p.Name,
			First:       uint32(p.First),
			Last:        uint32(p.Last),
			Unsupported: p.Unsupported,
		}
		if p.Err != nil {
			sp.Err = p.Err.Error()
		}
		s.Passes = append(s.Passes, sp)
	}
	return s
}

func EncodeSnapshot(w io.Writer, s Snapshot) error {
	return msgpack.NewEncoder(w).Encode(&s)
}

// DecodeSnapshot reads one snapshot and rejects other layout versions.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := msgpack.NewDecoder(r).Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Version != SnapshotVersion {
		return Snapshot{}, fmt.Errorf("%w: %d (want %d)", ErrSnapshotVersion, s.Version, SnapshotVersion)
	}
	return s, nil
}

// WriteSnapshotFile stores s at path through a temporary file in the same
// directory, so readers never see a partial snapshot.
func WriteSnapshotFile(path string, s Snapshot) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = EncodeSnapshot(f, s); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// атомарная замена
	return os.Rename(f.Name(), path)
}

// ReadSnapshotFile loads a snapshot written by WriteSnapshotFile.
func ReadSnapshotFile(path string) (Snapshot, error) {
	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, err
	}
	defer f.Close()
	return DecodeSnapshot(f)
}
