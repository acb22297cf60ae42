package parser

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/chazu/compy/compiler"
)

//go:embed dump_ast.py
var dumpScript string

// PythonParser parses with CPython's own ast module.
type PythonParser struct {
	Python string // interpreter to run
}

func (p *PythonParser) Name() string { return "python" }

// Parse runs the interpreter with the dumper script, feeding src on stdin.
func (p *PythonParser) Parse(ctx context.Context, filename string, src []byte) (*compiler.Module, error) {
	cmd := exec.CommandContext(ctx, p.Python, "-c", dumpScript, filename)
	cmd.Stdin = bytes.NewReader(src)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debugf("[CMD] %s -c <dump_ast.py> %s", p.Python, filename)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			if se := parseSyntaxError(filename, stderr.String()); se != nil {
				return nil, se
			}
		}
		return nil, fmt.Errorf("running %s: %w: %s", p.Python, err, strings.TrimSpace(stderr.String()))
	}
	return DecodeJSON(filename, stdout.Bytes())
}

// parseSyntaxError reads the "line:col:message" report the dumper writes.
func parseSyntaxError(filename, report string) *SyntaxError {
	parts := strings.SplitN(strings.TrimSpace(report), ":", 3)
	if len(parts) != 3 {
		return nil
	}
	line, err1 := strconv.Atoi(parts[0])
	col, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return nil
	}
	return &SyntaxError{Filename: filename, Line: line, Column: col, Msg: parts[2]}
}
