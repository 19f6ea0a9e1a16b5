package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"ctxgraph/internal/diag"
	"ctxgraph/internal/source"
)

func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	bag := sampleBag(fs)

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true})
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("count = %d", output.Count)
	}

	d := output.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "IR3005" || d.Title != diag.IRUnresolvedName.Title() {
		t.Errorf("diagnostic = %+v", d)
	}
	if d.Location.File != "c.sol" || d.Location.StartLine != 2 || d.Location.StartCol != 20 {
		t.Errorf("location = %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "in this function" {
		t.Errorf("notes = %+v", d.Notes)
	}
}

func TestJSONOmitsNotesAndTruncates(t *testing.T) {
	fs := source.NewFileSet()
	bag := sampleBag(fs)
	bag.Add(diag.New(diag.SevInfo, diag.IRInfo, source.Span{}, "second"))

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if out.Count != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	if out.Diagnostics[0].Notes != nil {
		t.Error("notes included without IncludeNotes")
	}
	if out.Diagnostics[0].Location.StartLine != 0 {
		t.Error("positions included without IncludePositions")
	}

	all := BuildDiagnosticsOutput(bag, fs, JSONOpts{})
	if all.Count != 2 || all.Diagnostics[1].Location.File != "" {
		t.Errorf("all = %+v", all)
	}
}

func TestParsePathMode(t *testing.T) {
	for in, want := range map[string]PathMode{"": PathModeAuto, "absolute": PathModeAbsolute, "relative": PathModeRelative, "basename": PathModeBasename} {
		if got, ok := ParsePathMode(in); !ok || got != want {
			t.Errorf("ParsePathMode(%q) = %v, %v", in, got, ok)
		}
	}
	if _, ok := ParsePathMode("short"); ok {
		t.Error("accepted unknown mode")
	}
}
