package compiler

// This file type-checks a generated Go module before it is handed to the
// Go toolchain, so problems are attributed to the Python function that
// produced them instead of surfacing as raw compiler output.

import (
	"context"
	"fmt"
	"go/ast"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"
)

// ValidationError represents a Go validation error with position info
type ValidationError struct {
	File     string
	Line     int
	Column   int
	Function string // Go function containing the error, or "<package>"
	Message  string
}

// CodeValidator type-checks the Go module in a directory.
type CodeValidator struct {
	dir string
	env []string
}

// NewCodeValidator creates a validator for the module rooted at dir.
func NewCodeValidator(dir string) *CodeValidator {
	return &CodeValidator{dir: dir}
}

// WithEnv sets the environment used when invoking the go command; nil keeps
// the current process environment.
func (cv *CodeValidator) WithEnv(env []string) *CodeValidator {
	cv.env = env
	return cv
}

const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
	packages.NeedTypes | packages.NeedTypesInfo

// Validate loads and type-checks the package in the validator's directory.
// The error result is reserved for failures to run the loader at all.
func (cv *CodeValidator) Validate(ctx context.Context) ([]ValidationError, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Dir:     cv.dir,
		Env:     cv.env,
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", cv.dir, err)
	}

	funcMaps := make(map[string]map[int]string)
	var errs []ValidationError
	packages.Visit(pkgs, nil, func(p *packages.Package) {
		for _, file := range p.Syntax {
			name := p.Fset.Position(file.Pos()).Filename
			funcMaps[filepath.Clean(name)] = buildFunctionMap(p, file)
		}
		for _, e := range p.Errors {
			file, line, col := splitPos(e.Pos)
			fn := "<package>"
			if m := funcMaps[filepath.Clean(file)]; m != nil {
				if name, ok := m[line]; ok {
					fn = name
				}
			}
			errs = append(errs, ValidationError{
				File:     file,
				Line:     line,
				Column:   col,
				Function: fn,
				Message:  e.Msg,
			})
		}
	})
	return errs, nil
}

// buildFunctionMap maps every line of each top-level function to its name.
func buildFunctionMap(p *packages.Package, file *ast.File) map[int]string {
	lines := make(map[int]string)
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		start := p.Fset.Position(fn.Pos()).Line
		end := p.Fset.Position(fn.End()).Line
		for line := start; line <= end; line++ {
			lines[line] = fn.Name.Name
		}
	}
	return lines
}

// splitPos parses the "file:line:col" positions the loader reports. Missing
// parts come back as zero values.
func splitPos(pos string) (file string, line, col int) {
	if pos == "" || pos == "-" {
		return "", 0, 0
	}
	parts := strings.Split(pos, ":")
	var nums []int
	for len(parts) > 1 && len(nums) < 2 {
		n, err := strconv.Atoi(parts[len(parts)-1])
		if err != nil {
			break
		}
		nums = append(nums, n)
		parts = parts[:len(parts)-1]
	}
	file = strings.Join(parts, ":")
	switch len(nums) {
	case 1:
		line = nums[0]
	case 2:
		line, col = nums[1], nums[0]
	}
	return file, line, col
}

// FunctionsWithErrors maps Go function names back to Python function names
// and returns the Python functions that have errors, sorted.
func FunctionsWithErrors(errs []ValidationError, goToPython map[string]string) []string {
	seen := make(map[string]bool)
	for _, e := range errs {
		if e.Function == "" || e.Function == "<package>" {
			continue
		}
		if name, ok := goToPython[e.Function]; ok {
			seen[name] = true
		} else {
			seen[e.Function] = true
		}
	}
	return sortedNames(seen)
}

// FormatValidationErrors returns a human-readable error report
func FormatValidationErrors(errs []ValidationError) string {
	if len(errs) == 0 {
		return ""
	}
	sorted := append([]ValidationError(nil), errs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].File != sorted[j].File {
			return sorted[i].File < sorted[j].File
		}
		return sorted[i].Line < sorted[j].Line
	})

	var sb strings.Builder
	for _, e := range sorted {
		sb.WriteString("  ")
		if e.File != "" {
			fmt.Fprintf(&sb, "%s:%d: ", filepath.Base(e.File), e.Line)
		}
		if e.Function != "" && e.Function != "<package>" {
			sb.WriteString(e.Function)
			sb.WriteString(": ")
		}
		sb.WriteString(e.Message)
		sb.WriteString("\n")
	}
	return sb.String()
}
