// Package manifest handles compy.toml project configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the manifest file looked up next to the source.
const FileName = "compy.toml"

// Manifest represents a compy.toml project configuration.
type Manifest struct {
	Project  Project  `toml:"project"`
	Frontend Frontend `toml:"frontend"`
	Codegen  Codegen  `toml:"codegen"`
	Build    Build    `toml:"build"`
	Cache    Cache    `toml:"cache"`

	// Dir is the directory containing the compy.toml file (set at load time).
	// It is empty for the defaults returned by Default.
	Dir string `toml:"-"`
}

// Project contains project metadata.
type Project struct {
	Name string `toml:"name"`
}

// Frontend selects the parser.
type Frontend struct {
	Parser string `toml:"parser"`
	Python string `toml:"python"`
}

// Codegen configures the generator.
type Codegen struct {
	Keywords       string `toml:"keywords"`
	SkipValidation bool   `toml:"skip-validation"`
}

// Build configures the Go toolchain step.
type Build struct {
	OutDir   string   `toml:"out-dir"`
	Go       string   `toml:"go"`
	GoFlags  []string `toml:"go-flags"`
	KeepWork bool     `toml:"keep-work"`
}

// Cache configures the transpile cache.
type Cache struct {
	Disabled bool   `toml:"disabled"`
	Path     string `toml:"path"`
}

// Default returns the configuration used when no compy.toml exists.
func Default() *Manifest {
	m := &Manifest{}
	m.applyDefaults()
	return m
}

func (m *Manifest) applyDefaults() {
	if m.Frontend.Parser == "" {
		m.Frontend.Parser = "python"
	}
	if m.Frontend.Python == "" {
		m.Frontend.Python = "python3"
	}
	if m.Codegen.Keywords == "" {
		m.Codegen.Keywords = "struct"
	}
	if m.Build.OutDir == "" {
		m.Build.OutDir = ".compy"
	}
	if m.Build.Go == "" {
		m.Build.Go = "go"
	}
}

// Load parses a compy.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q in %s", undecoded[0].String(), path)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}
	m.applyDefaults()
	return &m, nil
}

// FindAndLoad walks up from startDir to find a compy.toml file,
// then loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// OutDirPath returns the output directory, resolved against the manifest
// directory when relative. base is used for manifests without a directory.
func (m *Manifest) OutDirPath(base string) string {
	if filepath.IsAbs(m.Build.OutDir) {
		return m.Build.OutDir
	}
	root := m.Dir
	if root == "" {
		root = base
	}
	return filepath.Join(root, m.Build.OutDir)
}

// CachePath returns the cache database path, or "" when caching is off.
func (m *Manifest) CachePath(base string) string {
	if m.Cache.Disabled {
		return ""
	}
	if m.Cache.Path == "" {
		return filepath.Join(m.OutDirPath(base), "cache.db")
	}
	if filepath.IsAbs(m.Cache.Path) {
		return m.Cache.Path
	}
	root := m.Dir
	if root == "" {
		root = base
	}
	return filepath.Join(root, m.Cache.Path)
}
