// Package ui renders the end-of-build summary table.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"ctxgraph/internal/diag"
	"ctxgraph/internal/driver"
)

// Row is the summary of one file.
type Row struct {
	Path      string
	Nodes     int
	Edges     int
	Functions int
	Failed    int
	Errors    int
	Warnings  int
}

func (r Row) ok() bool { return r.Failed == 0 && r.Errors == 0 }

// Rows summarises build results in their original order.
func Rows(results []driver.FileResult) []Row {
	rows := make([]Row, 0, len(results))
	for _, res := range results {
		row := Row{Path: res.Path}
		if a := res.Analysis; a != nil {
			row.Nodes = a.Graph.NodeCount()
			row.Edges = a.Graph.EdgeCount()
			row.Functions = len(a.Passes)
			row.Failed = len(a.Failed())
		}
		if res.Bag != nil {
			for _, d := range res.Bag.Items() {
				switch d.Severity {
				case diag.SevError:
					row.Errors++
				case diag.SevWarning:
					row.Warnings++
				}
			}
		}
		rows = append(rows, row)
	}
	return rows
}

type styles struct {
	header lipgloss.Style
	ok     lipgloss.Style
	bad    lipgloss.Style
	dim    lipgloss.Style
	box    lipgloss.Style
}

func newStyles(color bool) styles {
	s := styles{
		header: lipgloss.NewStyle(),
		ok:     lipgloss.NewStyle(),
		bad:    lipgloss.NewStyle(),
		dim:    lipgloss.NewStyle(),
		box:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
	if color {
		s.header = s.header.Bold(true).Foreground(lipgloss.Color("6"))
		s.ok = s.ok.Foreground(lipgloss.Color("2"))
		s.bad = s.bad.Bold(true).Foreground(lipgloss.Color("1"))
		s.dim = s.dim.Faint(true)
		s.box = s.box.BorderForeground(lipgloss.Color("8"))
	}
	return s
}

var columns = []string{"file", "nodes", "edges", "fns", "failed", "errors", "warnings", ""}

// Render draws rows as a boxed table no wider than width cells; long paths
// are cut from the left. width <= 0 disables the limit.
func Render(rows []Row, width int, color bool) string {
	st := newStyles(color)

	cells := make([][]string, 0, len(rows)+1)
	cells = append(cells, columns)
	var total Row
	for _, r := range rows {
		status := "ok"
		if !r.ok() {
			status = "FAIL"
		}
		cells = append(cells, []string{
			r.Path,
			fmt.Sprint(r.Nodes), fmt.Sprint(r.Edges), fmt.Sprint(r.Functions),
			fmt.Sprint(r.Failed), fmt.Sprint(r.Errors), fmt.Sprint(r.Warnings),
			status,
		})
		total.Nodes += r.Nodes
		total.Edges += r.Edges
		total.Functions += r.Functions
		total.Failed += r.Failed
		total.Errors += r.Errors
		total.Warnings += r.Warnings
	}

	widths := make([]int, len(columns))
	for _, row := range cells {
		for i, c := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	}
	if width > 0 {
		// рамка, отступы и пробелы между колонками
		rest := 4 + len(columns) - 1
		for _, w := range widths[1:] {
			rest += w
		}
		if limit := width - rest; limit >= 8 && widths[0] > limit {
			widths[0] = limit
		}
	}

	var sb strings.Builder
	for ri, row := range cells {
		parts := make([]string, len(row))
		for i, c := range row {
			if i == 0 {
				c = cutLeft(c, widths[0])
				parts[i] = c + strings.Repeat(" ", widths[i]-runewidth.StringWidth(c))
				continue
			}
			parts[i] = strings.Repeat(" ", widths[i]-runewidth.StringWidth(c)) + c
		}
		line := strings.Join(parts, " ")
		switch {
		case ri == 0:
			line = st.header.Render(line)
		case row[len(row)-1] == "ok":
			line = st.ok.Render(line)
		default:
			line = st.bad.Render(line)
		}
		if ri > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(line)
	}

	footer := fmt.Sprintf("%d files, %d functions, %d failed, %d errors, %d warnings",
		len(rows), total.Functions, total.Failed, total.Errors, total.Warnings)
	return st.box.Render(sb.String()) + "\n" + st.dim.Render(footer) + "\n"
}

// cutLeft keeps the tail of s within w cells.
func cutLeft(s string, w int) string {
	if runewidth.StringWidth(s) <= w {
		return s
	}
	rs := []rune(s)
	for i := range rs {
		tail := string(rs[i:])
		if runewidth.StringWidth(tail)+1 <= w {
			return "…" + tail
		}
	}
	return "…"
}
