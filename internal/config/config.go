// Package config loads ctxgraph.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"ctxgraph/internal/builder"
	"ctxgraph/internal/diagfmt"
)

// FileName is looked up from the working directory upwards.
const FileName = "ctxgraph.toml"

var (
	ErrUnknownKey   = errors.New("unknown key")
	ErrInvalidValue = errors.New("invalid value")
)

type Config struct {
	Build  Build  `toml:"build"`
	Output Output `toml:"output"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

type Build struct {
	Seed           string `toml:"seed"`
	Declarations   bool   `toml:"declarations"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
	Jobs           int    `toml:"jobs"`
}

type Output struct {
	Format  string `toml:"format"`
	Color   string `toml:"color"`
	Paths   string `toml:"paths"`
	Summary bool   `toml:"summary"`
}

var (
	formats = []string{"text", "dot", "msgpack", "none"}
	colors  = []string{"auto", "on", "off"}
)

func Default() Config {
	return Config{
		Build: Build{
			Seed:           "entry",
			Declarations:   true,
			MaxDiagnostics: 100,
		},
		Output: Output{
			Format:  "text",
			Color:   "auto",
			Paths:   "auto",
			Summary: true,
		},
	}
}

// Find walks up from startDir to locate ctxgraph.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads path over the defaults. Keys the config does not know are
// rejected so that typos do not pass silently.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Discover loads the nearest ctxgraph.toml above startDir, or the defaults
// when there is none.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks enumerated values; flags are checked the same way after
// they override the file.
func (c Config) Validate() error {
	if _, ok := builder.ParseSeedMode(c.Build.Seed); !ok {
		return fmt.Errorf("%w: build.seed = %q (want entry or every)", ErrInvalidValue, c.Build.Seed)
	}
	if c.Build.MaxDiagnostics < 0 {
		return fmt.Errorf("%w: build.max_diagnostics = %d", ErrInvalidValue, c.Build.MaxDiagnostics)
	}
	if c.Build.Jobs < 0 {
		return fmt.Errorf("%w: build.jobs = %d", ErrInvalidValue, c.Build.Jobs)
	}
	if !slices.Contains(formats, c.Output.Format) {
		return fmt.Errorf("%w: output.format = %q (want %s)", ErrInvalidValue, c.Output.Format, strings.Join(formats, ", "))
	}
	if !slices.Contains(colors, c.Output.Color) {
		return fmt.Errorf("%w: output.color = %q (want %s)", ErrInvalidValue, c.Output.Color, strings.Join(colors, ", "))
	}
	if _, ok := diagfmt.ParsePathMode(c.Output.Paths); !ok {
		return fmt.Errorf("%w: output.paths = %q", ErrInvalidValue, c.Output.Paths)
	}
	return nil
}

// SeedMode is the parsed build.seed; call after Validate.
func (c Config) SeedMode() builder.SeedMode {
	m, _ := builder.ParseSeedMode(c.Build.Seed)
	return m
}

// PathMode is the parsed output.paths; call after Validate.
func (c Config) PathMode() diagfmt.PathMode {
	m, _ := diagfmt.ParsePathMode(c.Output.Paths)
	return m
}
