package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"ctxgraph/internal/config"
	"ctxgraph/internal/driver"
	"ctxgraph/internal/graphfmt"
	"ctxgraph/internal/observ"
	"ctxgraph/internal/prof"
	"ctxgraph/internal/source"
	"ctxgraph/internal/trace"
	"ctxgraph/internal/ui"
)

// SnapshotExt is the extension of msgpack graph snapshots.
const SnapshotExt = ".ctxg"

var buildCmd = &cobra.Command{
	Use:   "build [flags] <paths...>",
	Short: "Build context graphs of contract sources",
	Long: `Build lowers every given file (directories are searched for .sol files)
into a context graph and prints it. Settings are read from the nearest
ctxgraph.toml; flags override it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: buildExecution,
}

func init() {
	buildCmd.Flags().String("config", "", "config file (default: nearest "+config.FileName+")")
	buildCmd.Flags().String("format", "text", "graph output (text|dot|msgpack|none)")
	buildCmd.Flags().StringP("out", "o", "", "output file; a directory for msgpack")
	buildCmd.Flags().Int("jobs", 0, "files built in parallel (0 = GOMAXPROCS)")
	buildCmd.Flags().String("seed", "entry", "context variables seeded from parameters (entry|every)")
	buildCmd.Flags().Bool("no-declarations", false, "leave local declarations unhandled")
	buildCmd.Flags().Bool("edges", false, "list outgoing edges in text output")
	buildCmd.Flags().String("diag-format", "pretty", "diagnostics format (pretty|json)")
	buildCmd.Flags().String("paths", "auto", "diagnostic paths (auto|absolute|relative|basename)")
	buildCmd.Flags().Bool("notes", true, "show diagnostic notes")
	buildCmd.Flags().Bool("summary", true, "print the summary table")
	buildCmd.Flags().Bool("timings", false, "print phase timings")
	buildCmd.Flags().String("ui", "auto", "live progress on stderr (auto|on|off)")
	buildCmd.Flags().String("cpuprofile", "", "write a CPU profile to file")
	buildCmd.Flags().String("memprofile", "", "write a heap profile to file")
}

// buildSettings is the config with every flag applied.
type buildSettings struct {
	cfg        config.Config
	out        string
	edges      bool
	diagFormat string
	notes      bool
	timings    bool
	quiet      bool
	ui         uiMode
}

func buildExecution(cmd *cobra.Command, args []string) (err error) {
	settings, err := readBuildSettings(cmd)
	if err != nil {
		return err
	}

	cpuProfile, _ := cmd.Flags().GetString("cpuprofile")
	memProfile, _ := cmd.Flags().GetString("memprofile")
	session, err := prof.Start(prof.Options{CPU: cpuProfile, Mem: memProfile})
	if err != nil {
		return err
	}
	defer func() {
		if stopErr := session.Stop(); stopErr != nil && err == nil {
			err = stopErr
		}
	}()

	cfg := settings.cfg

	colorValue := cfg.Output.Color
	if cmd.Root().PersistentFlags().Changed("color") {
		colorValue, _ = cmd.Root().PersistentFlags().GetString("color")
	}
	stdoutColor, err := useColor(colorValue, os.Stdout)
	if err != nil {
		return err
	}
	stderrColor, _ := useColor(colorValue, os.Stderr)

	ctx := cmd.Context()
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "ctxgraph build", 0)
	ctx = trace.WithSpan(ctx, span)

	paths, err := driver.ExpandPaths(args)
	if err != nil {
		span.End("bad paths")
		return err
	}
	if len(paths) == 0 {
		span.End("no files")
		return fmt.Errorf("no %s files under %s", driver.SourceExt, strings.Join(args, ", "))
	}

	opts := driver.Options{
		Jobs:           cfg.Build.Jobs,
		MaxDiagnostics: cfg.Build.MaxDiagnostics,
		Seed:           cfg.SeedMode(),
		NoDeclarations: !cfg.Build.Declarations,
	}
	var (
		fs      *source.FileSet
		results []driver.FileResult
	)
	if shouldUseTUI(settings.ui, settings.quiet) {
		fs, results, err = runBuildWithUI(ctx, paths, opts)
	} else {
		fs, results, err = driver.BuildFiles(ctx, paths, opts)
	}
	if err != nil {
		span.End("failed")
		return err
	}
	span.End(fmt.Sprintf("%d files", len(results)))

	baseDir, _ := os.Getwd()
	if err := printDiagnostics(cmd.ErrOrStderr(), results, fs, settings, baseDir, stderrColor); err != nil {
		return err
	}
	if err := writeGraphs(cmd.OutOrStdout(), results, settings, stdoutColor && settings.out == ""); err != nil {
		return err
	}

	if !settings.quiet && cfg.Output.Summary {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Render(ui.Rows(results), termWidth(os.Stderr, 100), stderrColor))
	}
	if settings.timings {
		var total observ.Report
		for _, r := range results {
			total.Add(r.Timing)
		}
		fmt.Fprint(cmd.ErrOrStderr(), total.String())
	}

	if failedBuild(results) {
		return errReported
	}
	return nil
}

// readBuildSettings loads the config file and lets changed flags override it.
func readBuildSettings(cmd *cobra.Command) (buildSettings, error) {
	flags := cmd.Flags()
	var (
		s   buildSettings
		err error
	)

	configPath, _ := flags.GetString("config")
	if configPath != "" {
		s.cfg, err = config.Load(configPath)
	} else {
		s.cfg, err = config.Discover(".")
	}
	if err != nil {
		return s, err
	}

	if flags.Changed("format") {
		s.cfg.Output.Format, _ = flags.GetString("format")
	}
	if flags.Changed("jobs") {
		s.cfg.Build.Jobs, _ = flags.GetInt("jobs")
	}
	if flags.Changed("seed") {
		s.cfg.Build.Seed, _ = flags.GetString("seed")
	}
	if flags.Changed("no-declarations") {
		noDecl, _ := flags.GetBool("no-declarations")
		s.cfg.Build.Declarations = !noDecl
	}
	if flags.Changed("paths") {
		s.cfg.Output.Paths, _ = flags.GetString("paths")
	}
	if flags.Changed("summary") {
		s.cfg.Output.Summary, _ = flags.GetBool("summary")
	}
	root := cmd.Root().PersistentFlags()
	if root.Changed("max-diagnostics") {
		s.cfg.Build.MaxDiagnostics, _ = root.GetInt("max-diagnostics")
	}
	if err := s.cfg.Validate(); err != nil {
		return s, err
	}

	s.out, _ = flags.GetString("out")
	s.edges, _ = flags.GetBool("edges")
	s.notes, _ = flags.GetBool("notes")
	s.timings, _ = flags.GetBool("timings")
	s.quiet, _ = root.GetBool("quiet")
	uiValue, _ := flags.GetString("ui")
	if s.ui, err = readUIMode(uiValue); err != nil {
		return s, err
	}
	s.diagFormat, _ = flags.GetString("diag-format")
	switch s.diagFormat {
	case "pretty", "json":
	default:
		return s, fmt.Errorf("unsupported diagnostics format %q (must be pretty or json)", s.diagFormat)
	}
	if s.cfg.Output.Format == "msgpack" && s.out == "" {
		s.out = "."
	}
	return s, nil
}

func failedBuild(results []driver.FileResult) bool {
	for _, r := range results {
		if r.Bag != nil && r.Bag.HasErrors() {
			return true
		}
		if r.Analysis != nil && len(r.Analysis.Failed()) > 0 {
			return true
		}
	}
	return false
}

var errNoOutput = errors.New("output path required")

// writeGraphs prints text and DOT graphs to w or to the --out file, and
// stores one snapshot per source file for msgpack.
func writeGraphs(w io.Writer, results []driver.FileResult, s buildSettings, colored bool) (err error) {
	format := s.cfg.Output.Format
	switch format {
	case "none":
		return nil
	case "msgpack":
		return writeSnapshots(results, s.out)
	}

	if s.out != "" {
		f, createErr := os.Create(s.out)
		if createErr != nil {
			return createErr
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	for i, r := range results {
		if r.Analysis == nil {
			continue
		}
		switch format {
		case "dot":
			err = graphfmt.DOT(w, r.Analysis, r.Path)
		default:
			if len(results) > 1 {
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintf(w, "== %s ==\n", r.Path)
			}
			err = graphfmt.Text(w, r.Analysis, graphfmt.TextOpts{Color: colored, Edges: s.edges})
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func writeSnapshots(results []driver.FileResult, dir string) error {
	if dir == "" {
		return errNoOutput
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	paths := make([]string, len(results))
	for i, r := range results {
		paths[i] = r.Path
	}
	names := snapshotNames(paths)
	for i, r := range results {
		if r.Analysis == nil {
			continue
		}
		snap := graphfmt.NewSnapshot(r.Analysis, r.Path, r.Timing)
		if err := graphfmt.WriteSnapshotFile(filepath.Join(dir, names[i]), snap); err != nil {
			return fmt.Errorf("%s: %w", r.Path, err)
		}
	}
	return nil
}

// snapshotNames maps sources to snapshot file names; repeated stems get a
// numeric suffix.
func snapshotNames(paths []string) []string {
	names := make([]string, len(paths))
	seen := make(map[string]int, len(paths))
	for i, p := range paths {
		stem := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		seen[stem]++
		if n := seen[stem]; n > 1 {
			stem = fmt.Sprintf("%s-%d", stem, n)
		}
		names[i] = stem + SnapshotExt
	}
	return names
}
