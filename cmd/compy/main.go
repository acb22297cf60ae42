// compy CLI - transpiles a Python program to Go, builds it and runs it
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/compy/build"
	"github.com/chazu/compy/manifest"
)

// options are the command-line overrides of compy.toml.
type options struct {
	parser     string
	keywords   string
	outDir     string
	noCache    bool
	noValidate bool
	keep       bool
	emit       bool
	test       bool
	silent     bool
	verbose    bool
}

func main() {
	var opts options
	flag.StringVar(&opts.parser, "parser", "", "Frontend: python or starlark (default from compy.toml, else python)")
	flag.StringVar(&opts.keywords, "keywords", "", "Keyword argument emulation: struct or mapping")
	flag.StringVar(&opts.outDir, "o", "", "Output directory (default .compy next to compy.toml or the source)")
	flag.BoolVar(&opts.noCache, "no-cache", false, "Do not read or write the transpile cache")
	flag.BoolVar(&opts.noValidate, "no-validate", false, "Skip type-checking the generated code before building")
	flag.BoolVar(&opts.keep, "keep", false, "Keep the build work directory")
	flag.BoolVar(&opts.emit, "emit", false, "Only write the generated Go file")
	flag.BoolVar(&opts.test, "test", false, "Compare the compiled program's output with python3's")
	flag.BoolVar(&opts.silent, "silent", false, "Do not trace external commands")
	flag.BoolVar(&opts.verbose, "v", false, "Verbose output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: compy [options] source.py [args...]\n\n")
		fmt.Fprintf(os.Stderr, "Transpiles a Python program to Go, builds it with the go command and runs it.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  compy examples/factorial.py          # Build and run\n")
		fmt.Fprintf(os.Stderr, "  compy -emit examples/factorial.py    # Write .compy/factorial.go only\n")
		fmt.Fprintf(os.Stderr, "  compy -test examples/lists.py        # Diff against python3\n")
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	os.Exit(run(opts, flag.Arg(0), flag.Args()[1:]))
}

func run(opts options, source string, args []string) int {
	configureLogging(opts)

	if _, err := os.Stat(source); errors.Is(err, os.ErrNotExist) {
		return fail(&build.SourceNotFoundError{Path: source})
	}

	cfg, err := loadConfig(opts, source)
	if err != nil {
		return fail(err)
	}
	driver, err := build.New(cfg)
	if err != nil {
		return fail(err)
	}
	defer driver.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case opts.emit:
		out, err := driver.Emit(ctx, source)
		if err != nil {
			return fail(err)
		}
		if opts.verbose {
			fmt.Printf("Wrote %s\n", out)
		}
		return 0

	case opts.test:
		cmp, err := driver.Test(ctx, source)
		if err != nil {
			return fail(err)
		}
		if !cmp.Report(os.Stdout) {
			return 1
		}
		return 0

	default:
		code, err := driver.Run(ctx, source, args...)
		if err != nil {
			return fail(err)
		}
		return code
	}
}

// configureLogging maps the flags to commonlog verbosity: errors only when
// silent, [CMD] tracing by default, debug with -v.
func configureLogging(opts options) {
	verbosity := 4
	switch {
	case opts.verbose:
		verbosity = 5
	case opts.silent || opts.test:
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)
}

// loadConfig reads compy.toml (if any) from the source's directory upward
// and applies the flag overrides.
func loadConfig(opts options, source string) (build.Config, error) {
	srcDir := filepath.Dir(source)
	m, err := manifest.FindAndLoad(srcDir)
	if err != nil {
		return build.Config{}, err
	}
	if m == nil {
		m = manifest.Default()
	}

	if opts.parser != "" {
		m.Frontend.Parser = opts.parser
	}
	if opts.keywords != "" {
		m.Codegen.Keywords = opts.keywords
	}
	if opts.outDir != "" {
		abs, err := filepath.Abs(opts.outDir)
		if err != nil {
			return build.Config{}, err
		}
		m.Build.OutDir = abs
	}
	if opts.noCache {
		m.Cache.Disabled = true
	}
	if opts.noValidate {
		m.Codegen.SkipValidation = true
	}
	if opts.keep {
		m.Build.KeepWork = true
	}
	return build.ConfigFromManifest(m, srcDir)
}

func fail(err error) int {
	fmt.Fprintf(os.Stderr, "compy: error: %v\n", err)
	return 1
}
