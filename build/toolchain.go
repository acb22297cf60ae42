package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	goruntime "runtime"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/chazu/compy/compiler"
	"github.com/chazu/compy/lib/runtime"
)

// Generated programs build as their own module with the runtime copied in
// beside them, so no module download is ever needed.
const (
	workModule      = "compyprog"
	workRuntimePath = workModule + "/py"
	workGoVersion   = "1.22"
)

// ValidationFailedError reports generated code that does not type-check.
type ValidationFailedError struct {
	Functions []string // Python functions containing errors
	Report    string
}

func (e *ValidationFailedError) Error() string {
	msg := "generated code does not type-check"
	if len(e.Functions) > 0 {
		msg += " (in " + strings.Join(e.Functions, ", ") + ")"
	}
	return msg + ":\n" + e.Report
}

// Build transpiles path and compiles it to <out-dir>/<name>. The generated
// source is written to <out-dir>/<name>.go as well. It returns the binary
// path.
func (d *Driver) Build(ctx context.Context, path string) (string, error) {
	unit, err := d.transpile(ctx, path, workRuntimePath)
	if err != nil {
		return "", err
	}
	if _, err := d.writeOutput(unit); err != nil {
		return "", err
	}

	work, err := d.writeWorkDir(unit)
	if err != nil {
		return "", err
	}
	if d.cfg.KeepWork {
		log.Infof("keeping work directory %s", work)
	} else {
		defer os.RemoveAll(work)
	}

	env := append(os.Environ(), "GOWORK=off")
	if !d.cfg.SkipValidation {
		if err := d.validate(ctx, work, env, unit); err != nil {
			return "", err
		}
	}

	outDir, err := filepath.Abs(d.cfg.OutDir)
	if err != nil {
		return "", err
	}
	binary := filepath.Join(outDir, unit.Name)
	if goruntime.GOOS == "windows" {
		binary += ".exe"
	}

	args := append([]string{"build"}, d.cfg.GoFlags...)
	args = append(args, "-o", binary, ".")
	cmd := exec.CommandContext(ctx, d.cfg.Go, args...)
	cmd.Dir = work
	cmd.Env = env
	logCommand(cmd)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("go build failed: %w\nOutput: %s", err, output)
	}
	return binary, nil
}

// writeWorkDir lays out <out-dir>/compy-<uuid> with a go.mod, the runtime
// sources under py/ and the program as main.go.
func (d *Driver) writeWorkDir(unit *Unit) (string, error) {
	work := filepath.Join(d.cfg.OutDir, "compy-"+uuid.New().String())
	if err := os.MkdirAll(filepath.Join(work, "py"), 0755); err != nil {
		return "", fmt.Errorf("creating work directory: %w", err)
	}

	sources, err := runtime.SourceFiles()
	if err != nil {
		os.RemoveAll(work)
		return "", fmt.Errorf("reading runtime sources: %w", err)
	}
	files := map[string][]byte{
		"go.mod":  []byte(fmt.Sprintf("module %s\n\ngo %s\n", workModule, workGoVersion)),
		"main.go": []byte(unit.Code),
	}
	for name, data := range sources {
		files[filepath.Join("py", name)] = data
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(work, name), data, 0644); err != nil {
			os.RemoveAll(work)
			return "", fmt.Errorf("writing %s: %w", name, err)
		}
	}
	log.Debugf("wrote work directory %s (%d files)", work, len(files))
	return work, nil
}

func (d *Driver) validate(ctx context.Context, work string, env []string, unit *Unit) error {
	errs, err := compiler.NewCodeValidator(work).WithEnv(env).Validate(ctx)
	if err != nil {
		return err
	}
	if len(errs) == 0 {
		return nil
	}
	return &ValidationFailedError{
		Functions: compiler.FunctionsWithErrors(errs, unit.Functions),
		Report:    compiler.FormatValidationErrors(errs),
	}
}

// Run builds path and runs the binary with the driver's output streams and
// the process's stdin. It returns the program's exit status.
func (d *Driver) Run(ctx context.Context, path string, args ...string) (int, error) {
	binary, err := d.Build(ctx, path)
	if err != nil {
		return 0, err
	}
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = d.cfg.Stdout
	cmd.Stderr = d.cfg.Stderr
	logCommand(cmd)
	return exitStatus(cmd.Run())
}

// exitStatus turns a finished command's error into its exit code. Errors
// other than a non-zero exit are returned.
func exitStatus(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, err
}

func logCommand(cmd *exec.Cmd) {
	log.Infof("[CMD] %s", shellJoin(cmd.Args))
}

// shellJoin quotes args the way a shell user would type them.
func shellJoin(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\n\"'\\$`*?;&|<>()[]{}") {
			quoted[i] = strconv.Quote(a)
		} else {
			quoted[i] = a
		}
	}
	return strings.Join(quoted, " ")
}
