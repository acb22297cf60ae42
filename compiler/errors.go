package compiler

import "fmt"

// UnsupportedError reports a node kind, or a form of a node, that the code
// generator has no translation rule for.
type UnsupportedError struct {
	Kind   string // Python node class name, e.g. "ClassDef"
	Span   Span
	Detail string
}

func (e *UnsupportedError) Error() string {
	msg := fmt.Sprintf("%s: unsupported %s", e.Span, e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// CompileError reports a program the generator understands but rejects,
// such as a call with the wrong number of arguments.
type CompileError struct {
	Span    Span
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: %s", e.Span, e.Message)
}

// bailout carries the first error out of the recursive generator; Generate
// recovers it.
type bailout struct {
	err error
}

func (g *generator) unsupported(n Node, kind, detail string) {
	panic(bailout{&UnsupportedError{Kind: kind, Span: n.Span(), Detail: detail}})
}

func (g *generator) errorf(n Node, format string, args ...any) {
	panic(bailout{&CompileError{Span: n.Span(), Message: fmt.Sprintf(format, args...)}})
}
