// Package driver runs the lexer, parser and analyzer over a set of files.
package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"ctxgraph/internal/analyzer"
	"ctxgraph/internal/ast"
	"ctxgraph/internal/builder"
	"ctxgraph/internal/diag"
	"ctxgraph/internal/observ"
	"ctxgraph/internal/parser"
	"ctxgraph/internal/source"
	"ctxgraph/internal/trace"
)

// SourceExt is the extension picked up when a directory is given.
const SourceExt = ".sol"

type Options struct {
	Jobs           int // 0 = GOMAXPROCS
	MaxDiagnostics int
	Seed           builder.SeedMode
	NoDeclarations bool
	// Progress, when set, gets an event per stage of every file.
	Progress ProgressSink
}

// FileResult holds the outcome of analysing one file.
type FileResult struct {
	Path     string
	FileID   source.FileID
	Bag      *diag.Bag
	Arenas   *ast.Builder
	AST      ast.FileID
	Analysis *analyzer.Result // nil when the file failed to load
	Timing   observ.Report
}

// ExpandPaths replaces directories by the sorted source files below them.
func ExpandPaths(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		// deterministic order
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}

// BuildFiles analyses every file concurrently. Each file gets its own
// arenas, graph and diagnostics; results keep the order of paths.
func BuildFiles(ctx context.Context, paths []string, opts Options) (*source.FileSet, []FileResult, error) {
	fileSet := source.NewFileSet()
	if len(paths) == 0 {
		return fileSet, nil, nil
	}

	// FileSet is not safe for concurrent writes, so everything is loaded up front.
	fileIDs := make([]source.FileID, len(paths))
	loadErrors := make(map[int]error)
	for i, path := range paths {
		id, err := fileSet.Load(path)
		if err != nil {
			// an empty stub keeps the diagnostic pointing at path
			loadErrors[i] = err
			id = fileSet.AddVirtual(path, nil)
		}
		fileIDs[i] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx)

	// each goroutine writes its own index
	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for _, path := range paths {
		emit(opts.Progress, Event{File: path, Status: StatusQueued})
	}

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bag := diag.NewBag(opts.MaxDiagnostics)
			if loadErr, failed := loadErrors[i]; failed {
				diag.ReportError(diag.BagReporter{Bag: bag}, diag.IOLoadFileError, source.Span{File: fileIDs[i]},
					"failed to load file: "+loadErr.Error()).Emit()
				results[i] = FileResult{Path: path, FileID: fileIDs[i], Bag: bag}
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError})
				return nil
			}

			res, err := buildOne(path, fileSet.Get(fileIDs[i]), bag, opts, tracer, parent)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// BuildSource analyses one in-memory file.
func BuildSource(ctx context.Context, name string, content []byte, opts Options) (*source.FileSet, FileResult, error) {
	fileSet := source.NewFileSet()
	id := fileSet.AddVirtual(name, content)
	bag := diag.NewBag(opts.MaxDiagnostics)
	res, err := buildOne(name, fileSet.Get(id), bag, opts, trace.FromContext(ctx), trace.CurrentSpan(ctx))
	return fileSet, res, err
}

func buildOne(path string, file *source.File, bag *diag.Bag, opts Options, tracer trace.Tracer, parent uint64) (FileResult, error) {
	start := time.Now()
	span := trace.Begin(tracer, trace.ScopePass, "build "+file.Path, parent)
	timer := observ.NewTimer()
	reporter := diag.BagReporter{Bag: bag}

	maxErrors, err := safecast.Conv[uint](opts.MaxDiagnostics)
	if err != nil {
		span.End("bad options")
		return FileResult{}, fmt.Errorf("max diagnostics: %w", err)
	}

	emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusWorking})
	idx := timer.Begin("parse")
	arenas := ast.NewBuilder(0)
	parsed := parser.ParseFile(file, arenas, parser.Options{Reporter: reporter, MaxErrors: maxErrors})
	timer.End(idx, fmt.Sprintf("%d errors", parsed.Errors))

	emit(opts.Progress, Event{File: path, Stage: StageAnalyze, Status: StatusWorking})
	idx = timer.Begin("analyze")
	res := analyzer.Analyze(arenas, parsed.File, file.Path, analyzer.Options{
		Reporter:       reporter,
		Tracer:         tracer,
		Seed:           opts.Seed,
		NoDeclarations: opts.NoDeclarations,
		TraceParent:    span.ID(),
	})
	timer.End(idx, fmt.Sprintf("%d nodes, %d functions", res.Graph.NodeCount(), len(res.Passes)))

	bag.Sort()
	span.End(fmt.Sprintf("%d diagnostics", bag.Len()))

	status := StatusDone
	if bag.HasErrors() || len(res.Failed()) > 0 {
		status = StatusError
	}
	emit(opts.Progress, Event{File: path, Stage: StageAnalyze, Status: status, Elapsed: time.Since(start)})
	return FileResult{
		Path:     path,
		FileID:   file.ID,
		Bag:      bag,
		Arenas:   arenas,
		AST:      parsed.File,
		Analysis: res,
		Timing:   timer.Report(),
	}, nil
}
