// Package build drives a transpilation from a Python source file to a Go
// program: parse, generate, optionally type-check, compile with the go
// command and run.
package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/chazu/compy/cache"
	"github.com/chazu/compy/compiler"
	"github.com/chazu/compy/manifest"
	"github.com/chazu/compy/parser"
)

var log = commonlog.GetLogger("compy.build")

// generatorVersion is mixed into cache keys; bump it whenever generated code
// changes shape.
const generatorVersion = "1"

// Config holds everything a Driver needs.
type Config struct {
	Parser         string // "python" or "starlark"
	Python         string // interpreter for the python frontend and test mode
	Keywords       compiler.KeywordStyle
	SkipValidation bool

	OutDir   string
	Go       string
	GoFlags  []string
	KeepWork bool

	// CachePath is the SQLite cache file; empty disables the cache.
	CachePath string

	Stdout io.Writer
	Stderr io.Writer
}

// ConfigFromManifest builds a Config from a manifest. base resolves relative
// paths when the manifest was not loaded from disk.
func ConfigFromManifest(m *manifest.Manifest, base string) (Config, error) {
	style, err := compiler.ParseKeywordStyle(m.Codegen.Keywords)
	if err != nil {
		return Config{}, fmt.Errorf("[codegen] keywords: %w", err)
	}
	return Config{
		Parser:         m.Frontend.Parser,
		Python:         m.Frontend.Python,
		Keywords:       style,
		SkipValidation: m.Codegen.SkipValidation,
		OutDir:         m.OutDirPath(base),
		Go:             m.Build.Go,
		GoFlags:        m.Build.GoFlags,
		KeepWork:       m.Build.KeepWork,
		CachePath:      m.CachePath(base),
	}, nil
}

// SourceNotFoundError reports a missing input file.
type SourceNotFoundError struct {
	Path string
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("Source file '%s' has not been found", e.Path)
}

// Unit is the result of transpiling one source file.
type Unit struct {
	Source    string // path as given
	Name      string // base name without extension
	Code      string
	Warnings  []string
	Functions map[string]string // Go name -> Python name
	Cached    bool
}

// Driver runs the pipeline for one configuration.
type Driver struct {
	cfg    Config
	parser parser.Parser
	cache  *cache.Store
}

// New creates a driver, opening the cache when one is configured.
func New(cfg Config) (*Driver, error) {
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	if cfg.Go == "" {
		cfg.Go = "go"
	}
	if cfg.Python == "" {
		cfg.Python = "python3"
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "."
	}

	p, err := parser.New(cfg.Parser, cfg.Python)
	if err != nil {
		return nil, err
	}
	d := &Driver{cfg: cfg, parser: p}

	if cfg.CachePath != "" {
		store, err := cache.Open(cfg.CachePath)
		if err != nil {
			// A broken cache only costs time.
			log.Warningf("cache disabled: %s", err)
		} else {
			d.cache = store
		}
	}
	return d, nil
}

// Close releases the cache.
func (d *Driver) Close() error {
	if d.cache != nil {
		return d.cache.Close()
	}
	return nil
}

// Transpile parses and generates the program for path. The generated code
// imports the runtime from compiler.DefaultRuntimePath.
func (d *Driver) Transpile(ctx context.Context, path string) (*Unit, error) {
	return d.transpile(ctx, path, compiler.DefaultRuntimePath)
}

func (d *Driver) transpile(ctx context.Context, path, runtimePath string) (*Unit, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &SourceNotFoundError{Path: path}
		}
		return nil, fmt.Errorf("reading source: %w", err)
	}
	unit := &Unit{Source: path, Name: programName(path)}

	key := cache.Key(src, d.fingerprint(runtimePath))
	if d.cache != nil {
		a, err := d.cache.Get(key)
		switch {
		case err == nil:
			log.Debugf("cache hit for %s", path)
			unit.Code, unit.Warnings, unit.Functions, unit.Cached = a.Code, a.Warnings, a.Functions, true
			d.logWarnings(unit)
			return unit, nil
		case !errors.Is(err, cache.ErrMiss):
			log.Warningf("cache lookup failed: %s", err)
		}
	}

	mod, err := d.parser.Parse(ctx, path, src)
	if err != nil {
		return nil, err
	}
	res, err := compiler.Generate(mod, compiler.Options{
		RuntimePath: runtimePath,
		Keywords:    d.cfg.Keywords,
		SourceName:  filepath.Base(path),
	})
	if err != nil {
		return nil, err
	}
	unit.Code, unit.Warnings, unit.Functions = res.Code, res.Warnings, res.Functions
	d.logWarnings(unit)

	if d.cache != nil {
		err := d.cache.Put(&cache.Artifact{
			Key:       key,
			Source:    path,
			Code:      res.Code,
			Warnings:  res.Warnings,
			Functions: res.Functions,
		})
		if err != nil {
			log.Warningf("cache store failed: %s", err)
		}
	}
	return unit, nil
}

func (d *Driver) fingerprint(runtimePath string) string {
	return strings.Join([]string{generatorVersion, d.parser.Name(), d.cfg.Keywords.String(), runtimePath}, "|")
}

func (d *Driver) logWarnings(u *Unit) {
	for _, w := range u.Warnings {
		log.Warningf("%s", w)
	}
}

// Emit transpiles path and writes <out-dir>/<name>.go. Nothing is written
// when transpilation fails.
func (d *Driver) Emit(ctx context.Context, path string) (string, error) {
	unit, err := d.Transpile(ctx, path)
	if err != nil {
		return "", err
	}
	return d.writeOutput(unit)
}

func (d *Driver) writeOutput(unit *Unit) (string, error) {
	if err := os.MkdirAll(d.cfg.OutDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	out := filepath.Join(d.cfg.OutDir, unit.Name+".go")
	if err := os.WriteFile(out, []byte(unit.Code), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", out, err)
	}
	log.Debugf("wrote %s", out)
	return out, nil
}

// programName is the source base name without its extension.
func programName(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}
