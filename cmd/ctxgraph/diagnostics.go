package main

import (
	"encoding/json"
	"io"

	"ctxgraph/internal/diagfmt"
	"ctxgraph/internal/driver"
	"ctxgraph/internal/source"
)

// printDiagnostics writes the diagnostics of every file: pretty output per
// file, or one JSON object keyed by path.
func printDiagnostics(w io.Writer, results []driver.FileResult, fs *source.FileSet, s buildSettings, baseDir string, colored bool) error {
	pathMode := s.cfg.PathMode()

	if s.diagFormat == "json" {
		output := make(map[string]diagfmt.DiagnosticsOutput, len(results))
		opts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			BaseDir:          baseDir,
			IncludeNotes:     s.notes,
		}
		for _, r := range results {
			if r.Bag == nil || r.Bag.Len() == 0 {
				continue
			}
			output[r.Path] = diagfmt.BuildDiagnosticsOutput(r.Bag, fs, opts)
		}
		if len(output) == 0 {
			return nil
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(output)
	}

	opts := diagfmt.PrettyOpts{
		Color:     colored,
		PathMode:  pathMode,
		BaseDir:   baseDir,
		ShowNotes: s.notes,
	}
	for _, r := range results {
		if r.Bag == nil || r.Bag.Len() == 0 {
			continue
		}
		diagfmt.Pretty(w, r.Bag, fs, opts)
	}
	return nil
}
