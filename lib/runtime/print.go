package runtime

import (
	"bufio"
	"io"
	"os"
)

var stdout = bufio.NewWriter(os.Stdout)

// SetOutput redirects print output to w and returns a function restoring the
// previous stream. Pending output is flushed first.
func SetOutput(w io.Writer) (restore func()) {
	prev := stdout
	prev.Flush()
	stdout = bufio.NewWriter(w)
	return func() {
		stdout.Flush()
		stdout = prev
	}
}

// Flush writes any buffered print output.
func Flush() error {
	return stdout.Flush()
}

// PrintOptions holds the keyword arguments of a print call. A None field
// (the zero Value) selects the default.
type PrintOptions struct {
	Sep   Value
	End   Value
	Flush Value
	File  Value
}

type printConfig struct {
	sep   string
	end   string
	flush bool
}

var defaultPrintConfig = printConfig{sep: " ", end: "\n"}

func (o PrintOptions) config() printConfig {
	c := printConfig{
		sep:   TypeOrNoneDefault(o.Sep, defaultPrintConfig.sep, "sep must be None or a string"),
		end:   TypeOrNoneDefault(o.End, defaultPrintConfig.end, "end must be None or a string"),
		flush: TypeOrNoneDefault(o.Flush, defaultPrintConfig.flush, "flush must be None or a bool"),
	}
	if !o.File.IsNone() {
		panic(&InternalError{Message: "file specification for print() is not implemented yet"})
	}
	return c
}

func (c printConfig) print(args []Value) {
	// Render everything first so a failing argument prints nothing.
	rendered := make([]string, len(args))
	for i, arg := range args {
		rendered[i] = Render(arg)
	}
	for i, s := range rendered {
		if i > 0 {
			stdout.WriteString(c.sep)
		}
		stdout.WriteString(s)
	}
	stdout.WriteString(c.end)
	if c.flush {
		stdout.Flush()
	}
}

// Print implements print(*args) with default options.
func Print(args ...Value) Value {
	defaultPrintConfig.print(args)
	return None
}

// PrintWith implements print(*args, sep=..., end=..., flush=..., file=...).
func PrintWith(args []Value, opts PrintOptions) Value {
	opts.config().print(args)
	return None
}

// PrintKwargs implements print with keyword arguments supplied as a mapping.
func PrintKwargs(args []Value, kw *Kwargs) Value {
	var opts PrintOptions
	for _, key := range kw.Keys() {
		v, _ := kw.Lookup(key)
		switch key {
		case "sep":
			opts.Sep = v
		case "end":
			opts.End = v
		case "flush":
			opts.Flush = v
		case "file":
			opts.File = v
		default:
			Raise(TypeError, "'%s' is an invalid keyword argument for print()", key)
		}
	}
	return PrintWith(args, opts)
}
