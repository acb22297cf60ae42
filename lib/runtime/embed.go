package runtime

import (
	"embed"
	"io/fs"
	"path"
	"strings"
)

//go:embed *.go
var sources embed.FS

// SourceFiles returns the Go sources of this package as name -> content,
// excluding tests and this file. The build driver copies them next to
// generated programs so each program builds without fetching modules.
func SourceFiles() (map[string][]byte, error) {
	entries, err := fs.ReadDir(sources, ".")
	if err != nil {
		return nil, err
	}
	files := make(map[string][]byte)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "embed.go" || strings.HasSuffix(name, "_test.go") || path.Ext(name) != ".go" {
			continue
		}
		data, err := sources.ReadFile(name)
		if err != nil {
			return nil, err
		}
		files[name] = data
	}
	return files, nil
}
