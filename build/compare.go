package build

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
)

// Outcome is the captured result of one program run.
type Outcome struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Comparison pairs the compiled program's run with the interpreter's.
type Comparison struct {
	Compiled    Outcome
	Interpreted Outcome
}

// Equal reports whether both runs produced the same output and status.
func (c *Comparison) Equal() bool {
	return bytes.Equal(c.Compiled.Stdout, c.Interpreted.Stdout) &&
		bytes.Equal(c.Compiled.Stderr, c.Interpreted.Stderr) &&
		c.Compiled.ExitCode == c.Interpreted.ExitCode
}

// Report writes a section for every stream that differs, then a success
// banner when nothing did. It returns Equal().
func (c *Comparison) Report(w io.Writer) bool {
	section := func(title string, compiled, interpreted string) {
		fmt.Fprintln(w, title)
		fmt.Fprintln(w, "=== COMPILER ==============================")
		fmt.Fprintln(w, compiled)
		fmt.Fprintln(w, "=== INTERPRETER ===========================")
		fmt.Fprintln(w, interpreted)
		fmt.Fprintln(w)
	}
	if !bytes.Equal(c.Compiled.Stdout, c.Interpreted.Stdout) {
		section("=== FAILED: Different standard output =====", string(c.Compiled.Stdout), string(c.Interpreted.Stdout))
	}
	if !bytes.Equal(c.Compiled.Stderr, c.Interpreted.Stderr) {
		section("=== FAILED: Different standard error output", string(c.Compiled.Stderr), string(c.Interpreted.Stderr))
	}
	if c.Compiled.ExitCode != c.Interpreted.ExitCode {
		section("=== FAILED: Different exit status =========",
			fmt.Sprint(c.Compiled.ExitCode), fmt.Sprint(c.Interpreted.ExitCode))
	}
	if !c.Equal() {
		return false
	}
	fmt.Fprintln(w, "=== SUCCESS ===================================")
	return true
}

// Test builds path, runs the binary and the Python interpreter on the same
// source, and compares what they printed.
func (d *Driver) Test(ctx context.Context, path string) (*Comparison, error) {
	binary, err := d.Build(ctx, path)
	if err != nil {
		return nil, err
	}
	compiled, err := capture(exec.CommandContext(ctx, binary))
	if err != nil {
		return nil, err
	}
	interpreted, err := capture(exec.CommandContext(ctx, d.cfg.Python, path))
	if err != nil {
		return nil, err
	}
	return &Comparison{Compiled: compiled, Interpreted: interpreted}, nil
}

func capture(cmd *exec.Cmd) (Outcome, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	logCommand(cmd)
	code, err := exitStatus(cmd.Run())
	if err != nil {
		return Outcome{}, fmt.Errorf("running %s: %w", cmd.Path, err)
	}
	return Outcome{Stdout: stdout.Bytes(), Stderr: stderr.Bytes(), ExitCode: code}, nil
}
