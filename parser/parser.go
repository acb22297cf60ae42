// Package parser turns Python source text into the compiler's AST.
//
// Two frontends are available: "python" runs a CPython interpreter with an
// embedded AST dumper and decodes its JSON output, and "starlark" parses the
// Starlark dialect of Python in process.
package parser

import (
	"context"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/chazu/compy/compiler"
)

var log = commonlog.GetLogger("compy.parser")

// Parser parses one source file into a module.
type Parser interface {
	Name() string
	Parse(ctx context.Context, filename string, src []byte) (*compiler.Module, error)
}

// SyntaxError is a parse failure reported by a frontend.
type SyntaxError struct {
	Filename string
	Line     int
	Column   int
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: syntax error: %s", e.Filename, e.Line, e.Column, e.Msg)
}

// New returns the frontend called name. python is the interpreter the
// "python" frontend runs; empty means "python3".
func New(name, python string) (Parser, error) {
	switch name {
	case "", "python":
		if python == "" {
			python = "python3"
		}
		return &PythonParser{Python: python}, nil
	case "starlark":
		return &StarlarkParser{}, nil
	}
	return nil, fmt.Errorf("unknown parser %q (want python or starlark)", name)
}
