package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	a := tm.Begin("parse")
	b := tm.Begin("analyze")
	tm.End(b, "3 functions")
	tm.End(a, "")
	tm.End(7, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 || r.Phases[0].Name != "parse" || r.Phases[1].Note != "3 functions" {
		t.Fatalf("report = %+v", r)
	}
	if r.TotalMS < r.Phases[0].DurationMS {
		t.Errorf("total %.3f below a phase", r.TotalMS)
	}
}

func TestReportAdd(t *testing.T) {
	var total Report
	total.Add(Report{TotalMS: 3, Phases: []PhaseReport{{Name: "parse", DurationMS: 1}, {Name: "analyze", DurationMS: 2}}})
	total.Add(Report{TotalMS: 4, Phases: []PhaseReport{{Name: "parse", DurationMS: 4, Note: "x"}}})

	if total.TotalMS != 7 || len(total.Phases) != 2 {
		t.Fatalf("total = %+v", total)
	}
	if total.Phases[0].DurationMS != 5 || total.Phases[0].Note != "" {
		t.Errorf("parse = %+v", total.Phases[0])
	}
	out := total.String()
	if !strings.HasPrefix(out, "timings:\n") || !strings.Contains(out, "analyze") {
		t.Errorf("String() = %q", out)
	}
}
