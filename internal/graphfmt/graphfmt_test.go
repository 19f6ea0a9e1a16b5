package graphfmt

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"ctxgraph/internal/driver"
)

func buildSource(t *testing.T, src string) driver.FileResult {
	t.Helper()
	_, res, err := driver.BuildSource(context.Background(), "t.sol", []byte(src), driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return res
}

const incSource = `contract C { function f(uint x) { x = x + 1; } }`

func TestText(t *testing.T) {
	res := buildSource(t, incSource)
	var buf bytes.Buffer
	if err := Text(&buf, res.Analysis, TextOpts{Edges: true}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"#1 SourceUnit     t.sol",
		"Contract       contract C",
		"function f",
		"param 0 x: uint256",
		"tmp0 = 1: uint256 [1, 1]",
		"tmp1 = (x + 1): uint256",
		"-Prev->",
		"-Context->",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "tainted") {
		t.Error("clean build marked tainted")
	}
}

func TestTextMarksTainted(t *testing.T) {
	res := buildSource(t, `function bad() { require = 1; }`)
	var buf bytes.Buffer
	if err := Text(&buf, res.Analysis, TextOpts{}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "scope tainted") {
		t.Errorf("scope not marked:\n%s", out)
	}
	if !strings.Contains(out, "failed function bad:") {
		t.Errorf("failure not listed:\n%s", out)
	}
}

func TestDOT(t *testing.T) {
	res := buildSource(t, incSource)
	var buf bytes.Buffer
	if err := DOT(&buf, res.Analysis, "t.sol"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, `digraph "t.sol" {`) || !strings.HasSuffix(out, "}\n") {
		t.Fatalf("framing:\n%s", out)
	}
	if !strings.Contains(out, `[label="Prev" style=dashed]`) {
		t.Errorf("no dashed Prev edge:\n%s", out)
	}
	if !strings.Contains(out, `n1 [shape=folder label="t.sol"]`) {
		t.Errorf("no unit node:\n%s", out)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	res := buildSource(t, `function f(uint x, bytes y) { x = y; } function bad() { require = 1; }`)
	snap := NewSnapshot(res.Analysis, "t.sol", res.Timing)

	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, snap); err != nil {
		t.Fatal(err)
	}
	got, err := DecodeSnapshot(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Nodes) != res.Analysis.Graph.NodeCount() || len(got.Edges) != res.Analysis.Graph.EdgeCount() {
		t.Fatalf("decoded %d nodes %d edges", len(got.Nodes), len(got.Edges))
	}
	if len(got.Passes) != 2 || got.Passes[1].Err == "" {
		t.Errorf("passes = %+v", got.Passes)
	}

	var deferred, tainted bool
	for _, n := range got.Nodes {
		if n.Kind == "ContextVar" && n.Name == "x" && strings.HasPrefix(n.Min, "#") {
			deferred = true
		}
		tainted = tainted || n.Tainted
	}
	if !deferred {
		t.Error("deferred bound lost")
	}
	if !tainted {
		t.Error("tainted flag lost")
	}
	if len(got.Timing.Phases) != 2 {
		t.Errorf("timing = %+v", got.Timing)
	}
}

func TestSnapshotFile(t *testing.T) {
	res := buildSource(t, incSource)
	path := filepath.Join(t.TempDir(), "t.snap")
	snap := NewSnapshot(res.Analysis, "t.sol", res.Timing)
	if err := WriteSnapshotFile(path, snap); err != nil {
		t.Fatal(err)
	}
	got, err := ReadSnapshotFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Path != "t.sol" || len(got.Nodes) != len(snap.Nodes) {
		t.Errorf("got %+v", got)
	}
}

func TestSnapshotVersionMismatch(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, Snapshot{Version: SnapshotVersion + 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeSnapshot(&buf); !errors.Is(err, ErrSnapshotVersion) {
		t.Errorf("err = %v", err)
	}
}
