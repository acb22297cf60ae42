// Package compiler translates a Python module AST into Go source code that
// runs on top of the compy runtime library.
package compiler

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"
)

// ---------------------------------------------------------------------------
// Codegen: compile the AST to Go source
// ---------------------------------------------------------------------------

// DefaultRuntimePath is the import path of the runtime library.
const DefaultRuntimePath = "github.com/chazu/compy/lib/runtime"

// KeywordStyle selects how keyword arguments to print are passed to the
// runtime.
type KeywordStyle int

const (
	// KeywordsStruct resolves keywords at transpile time into a
	// py.PrintOptions literal.
	KeywordsStruct KeywordStyle = iota
	// KeywordsMapping passes a py.Kwargs built key by key; unknown keys are
	// reported when the program runs.
	KeywordsMapping
)

func (s KeywordStyle) String() string {
	switch s {
	case KeywordsStruct:
		return "struct"
	case KeywordsMapping:
		return "mapping"
	default:
		return fmt.Sprintf("KeywordStyle(%d)", int(s))
	}
}

// ParseKeywordStyle parses "struct" or "mapping".
func ParseKeywordStyle(s string) (KeywordStyle, error) {
	switch s {
	case "", "struct":
		return KeywordsStruct, nil
	case "mapping":
		return KeywordsMapping, nil
	}
	return 0, fmt.Errorf("unknown keyword style %q (want struct or mapping)", s)
}

// Options controls code generation.
type Options struct {
	// RuntimePath is the import path the generated file uses for the
	// runtime. Defaults to DefaultRuntimePath.
	RuntimePath string
	Keywords    KeywordStyle
	// SourceName appears in the generated header. Defaults to the module's
	// filename.
	SourceName string
}

// Result contains the generated code and any warnings.
type Result struct {
	Code     string
	Warnings []string
	// Functions maps generated Go function names to Python names.
	Functions map[string]string
}

type generator struct {
	opts     Options
	scope    *moduleScope
	fn       *funcScope      // nil at module level
	defined  map[string]bool // functions defined so far at module level
	loops    int
	temps    int
	warnings []string
	funcs    map[string]string
}

// Generate translates mod to Go. The first construct without a translation
// rule aborts generation; no partial code is returned.
func Generate(mod *Module, opts Options) (res *Result, err error) {
	if opts.RuntimePath == "" {
		opts.RuntimePath = DefaultRuntimePath
	}
	g := &generator{
		opts:    opts,
		defined: make(map[string]bool),
		funcs:   make(map[string]string),
	}
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			res, err = nil, b.err
		}
	}()

	f := g.file(mod)

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("rendering generated code: %w", err)
	}
	return &Result{Code: buf.String(), Warnings: g.warnings, Functions: g.funcs}, nil
}

func (g *generator) file(mod *Module) *jen.File {
	g.scope = g.analyze(mod)

	source := g.opts.SourceName
	if source == "" {
		source = mod.Filename
	}
	if source == "" {
		source = "<stdin>"
	}

	f := jen.NewFile("main")
	f.HeaderComment(fmt.Sprintf("Code generated by compy from %s. DO NOT EDIT.", source))
	f.ImportAlias(g.opts.RuntimePath, "py")

	if len(g.scope.globals) > 0 {
		var defs []jen.Code
		for _, name := range sortedNames(g.scope.globals) {
			defs = append(defs, jen.Id(goName(name)).Add(g.valueType()))
		}
		f.Var().Defs(defs...)
	}

	for _, fd := range g.scope.order {
		g.function(f, fd)
	}

	var body []jen.Code
	for _, stmt := range mod.Body {
		if fd, ok := stmt.(*FunctionDef); ok {
			g.defined[fd.Name] = true
			continue
		}
		body = append(body, g.stmt(stmt)...)
	}
	f.Func().Id("compyMain").Params().Block(body...)
	f.Func().Id("main").Params().Block(
		g.rt("Main").Call(jen.Id("compyMain")),
	)
	return f
}

// function emits one Python def as a Go function over py.Value.
func (g *generator) function(f *jen.File, fd *FunctionDef) {
	if len(fd.Decorators) > 0 {
		g.unsupported(fd, "FunctionDef", "decorators")
	}
	if fd.VarArg != "" || fd.KwArg != "" || len(fd.KwOnly) > 0 || fd.PosOnly > 0 {
		g.unsupported(fd, "FunctionDef", "variadic, keyword-only or positional-only parameters")
	}
	for _, p := range fd.Params {
		if p.Default != nil {
			g.unsupported(p.Default, "FunctionDef", fmt.Sprintf("default value for parameter %q", p.Name))
		}
	}

	g.fn = g.newFuncScope(fd)
	defer func() { g.fn = nil }()

	name := goName(fd.Name)
	g.funcs[name] = fd.Name

	var params []jen.Code
	for _, p := range fd.Params {
		params = append(params, jen.Id(goName(p.Name)))
	}

	var body []jen.Code
	if locals := sortedNames(g.fn.locals); len(locals) > 0 {
		ids := make([]jen.Code, len(locals))
		blanks := make([]jen.Code, len(locals))
		for i, l := range locals {
			ids[i] = jen.Id(goName(l))
			blanks[i] = jen.Id("_")
		}
		body = append(body,
			jen.Var().List(ids...).Add(g.valueType()),
			jen.List(blanks...).Op("=").List(ids...),
		)
	}
	body = append(body, g.block(fd.Body)...)
	if !endsWithReturn(fd.Body) {
		body = append(body, jen.Return(g.rt("None")))
	}

	if fd.Returns != nil {
		if text := annotationText(fd.Returns); text != "" {
			f.Comment(fmt.Sprintf("%s is annotated to return %s.", name, text))
		}
	}
	sig := f.Func().Id(name)
	if len(params) > 0 {
		sig.Params(jen.List(params...).Add(g.valueType()))
	} else {
		sig.Params()
	}
	sig.Add(g.valueType()).Block(body...)
}

func endsWithReturn(body []Stmt) bool {
	if len(body) == 0 {
		return false
	}
	_, ok := body[len(body)-1].(*Return)
	return ok
}

// annotationText renders simple annotations (int, list[int], "T") for the
// generated comment; anything else is dropped.
func annotationText(e Expr) string {
	switch a := e.(type) {
	case *Name:
		return a.ID
	case *Constant:
		switch a.Kind {
		case ConstNone:
			return "None"
		case ConstStr:
			return a.Str
		}
	case *Attribute:
		if base := annotationText(a.Value); base != "" {
			return base + "." + a.Attr
		}
	case *Subscript:
		base, index := annotationText(a.Value), annotationText(a.Index)
		if base != "" && index != "" {
			return base + "[" + index + "]"
		}
	}
	return ""
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

func (g *generator) block(body []Stmt) []jen.Code {
	var out []jen.Code
	for _, st := range body {
		out = append(out, g.stmt(st)...)
	}
	return out
}

func (g *generator) stmt(stmt Stmt) []jen.Code {
	switch s := stmt.(type) {
	case *ExprStmt:
		return g.exprStmt(s)
	case *Assign:
		return g.assign(s.Targets, s.Value)
	case *AnnAssign:
		if s.Value == nil {
			g.checkTarget(s.Target)
			return nil
		}
		return g.assign([]Expr{s.Target}, s.Value)
	case *AugAssign:
		return g.augAssign(s)
	case *If:
		return []jen.Code{g.ifStmt(s)}
	case *While:
		return []jen.Code{g.whileStmt(s)}
	case *For:
		return []jen.Code{g.forStmt(s)}
	case *Return:
		if g.fn == nil {
			g.errorf(s, "'return' outside function")
		}
		if s.Value == nil {
			return []jen.Code{jen.Return(g.rt("None"))}
		}
		return []jen.Code{jen.Return(g.value(s.Value))}
	case *Pass:
		return nil
	case *Break:
		if g.loops == 0 {
			g.errorf(s, "'break' outside loop")
		}
		return []jen.Code{jen.Break()}
	case *Continue:
		if g.loops == 0 {
			g.errorf(s, "'continue' not properly in loop")
		}
		return []jen.Code{jen.Continue()}
	case *Global:
		return nil
	case *FunctionDef:
		g.unsupported(s, "FunctionDef", "nested function definitions")
	case *Unsupported:
		g.unsupported(s, s.Kind, "")
	default:
		g.unsupported(stmt, fmt.Sprintf("%T", stmt), "")
	}
	return nil
}

func (g *generator) exprStmt(s *ExprStmt) []jen.Code {
	switch v := s.Value.(type) {
	case *Constant:
		// Docstrings and other bare literals have no effect.
		if v.Kind != ConstOther {
			return nil
		}
	case *Call:
		return []jen.Code{g.expr(v)}
	}
	return []jen.Code{jen.Id("_").Op("=").Add(g.expr(s.Value))}
}

func (g *generator) checkTarget(t Expr) {
	switch t.(type) {
	case *Name, *Subscript:
		return
	case *Unsupported:
		g.expr(t)
	}
	g.unsupported(t, "Assign", "assignment targets other than names and subscripts")
}

// assign emits `t1 = t2 = value`. The value is evaluated once, before any
// target expression, and every target gets its own copy.
func (g *generator) assign(targets []Expr, value Expr) []jen.Code {
	for _, t := range targets {
		g.checkTarget(t)
	}
	if len(targets) == 1 {
		switch t := targets[0].(type) {
		case *Name:
			return []jen.Code{jen.Id(goName(t.ID)).Op("=").Add(g.value(value))}
		case *Subscript:
			// The value is evaluated first, so the target may only be
			// emitted inline when evaluating it has no effects.
			if pure(t.Value) && pure(t.Index) && !hasCall(value) {
				return []jen.Code{g.setItem(t, g.value(value))}
			}
		}
	}
	tmp := g.temp()
	out := []jen.Code{jen.Id(tmp).Op(":=").Add(g.value(value))}
	for i, t := range targets {
		v := jen.Id(tmp)
		if i > 0 {
			v = v.Dot("Copy").Call()
		}
		switch t := t.(type) {
		case *Name:
			out = append(out, jen.Id(goName(t.ID)).Op("=").Add(v))
		case *Subscript:
			out = append(out, g.setItem(t, v))
		}
	}
	return out
}

func (g *generator) setItem(t *Subscript, v jen.Code) *jen.Statement {
	return g.rt("SetItem").Call(g.expr(t.Value), g.expr(t.Index), v)
}

var binaryFuncs = map[string]string{
	"Add":      "Add",
	"Sub":      "Sub",
	"Mult":     "Mul",
	"FloorDiv": "FloorDiv",
	"Mod":      "Mod",
}

// augAssign emits `target op= value`. A subscript target evaluates its
// container and index once.
func (g *generator) augAssign(s *AugAssign) []jen.Code {
	fn, ok := binaryFuncs[s.Op]
	if !ok {
		g.unsupported(s, "AugAssign", "operator "+operatorSymbol(s.Op)+"=")
	}
	switch t := s.Target.(type) {
	case *Name:
		return []jen.Code{
			jen.Id(goName(t.ID)).Op("=").Add(g.rt(fn).Call(g.expr(t), g.value(s.Value))),
		}
	case *Subscript:
		var out []jen.Code
		obj := g.once(t.Value, &out)
		idx := g.once(t.Index, &out)
		current := g.rt("GetItem").Call(obj(), idx())
		out = append(out, g.rt("SetItem").Call(obj(), idx(), g.rt(fn).Call(current, g.value(s.Value))))
		return out
	}
	g.checkTarget(s.Target)
	return nil
}

// once returns a generator for e that is safe to emit more than once. Names
// and literals are re-emitted; anything else is hoisted into a temporary.
func (g *generator) once(e Expr, out *[]jen.Code) func() *jen.Statement {
	switch e.(type) {
	case *Name, *Constant:
		return func() *jen.Statement { return g.expr(e) }
	}
	tmp := g.temp()
	*out = append(*out, jen.Id(tmp).Op(":=").Add(g.expr(e)))
	return func() *jen.Statement { return jen.Id(tmp) }
}

func (g *generator) ifStmt(s *If) *jen.Statement {
	stmt := jen.If(g.cond(s.Test)).Block(g.block(s.Body)...)
	if len(s.Orelse) == 1 {
		if elif, ok := s.Orelse[0].(*If); ok {
			return stmt.Else().Add(g.ifStmt(elif))
		}
	}
	if len(s.Orelse) > 0 {
		stmt.Else().Block(g.block(s.Orelse)...)
	}
	return stmt
}

func (g *generator) whileStmt(s *While) *jen.Statement {
	if len(s.Orelse) > 0 {
		g.unsupported(s, "While", "else clause on loops")
	}
	var cond jen.Code
	if c, ok := s.Test.(*Constant); !ok || !constTruthy(c) {
		cond = g.cond(s.Test)
	}
	g.loops++
	body := g.block(s.Body)
	g.loops--
	if cond == nil {
		return jen.For().Block(body...)
	}
	return jen.For(cond).Block(body...)
}

// forStmt iterates over a snapshot of the iterable, rebinding the target to
// a copy of each element. A loop over range() counts instead of building the
// list.
func (g *generator) forStmt(s *For) *jen.Statement {
	if len(s.Orelse) > 0 {
		g.unsupported(s, "For", "else clause on loops")
	}
	target, ok := s.Target.(*Name)
	if !ok {
		g.unsupported(s.Target, "For", "loop targets other than a single name")
	}
	if r, ok := g.rangeCall(s.Iter); ok {
		return g.forRange(target, r, s.Body)
	}
	iter := g.rt("Iter").Call(g.expr(s.Iter))
	tmp := g.temp()

	g.loops++
	body := append([]jen.Code{
		jen.Id(goName(target.ID)).Op("=").Add(jen.Id(tmp).Dot("Copy").Call()),
	}, g.block(s.Body)...)
	g.loops--

	return jen.For(jen.List(jen.Id("_"), jen.Id(tmp)).Op(":=").Range().Add(iter)).Block(body...)
}

// rangeCall reports whether e is a call to the range built-in.
func (g *generator) rangeCall(e Expr) (*Call, bool) {
	c, ok := e.(*Call)
	if !ok {
		return nil, false
	}
	fn, ok := c.Func.(*Name)
	if !ok || fn.ID != "range" || g.resolve(fn.ID) != bindBuiltin {
		return nil, false
	}
	return c, true
}

// forRange emits
//
//	for v, step, n := py.RangeBounds(args...); n > 0; n, v = n-1, v+step {
//
// The post statement runs on continue as well.
func (g *generator) forRange(target *Name, r *Call, stmts []Stmt) *jen.Statement {
	bounds := g.rt("RangeBounds").Call(g.rangeArgs(r)...)
	v, step, n := g.temp(), g.temp(), g.temp()

	g.loops++
	body := append([]jen.Code{
		jen.Id(goName(target.ID)).Op("=").Add(g.rt("Int").Call(jen.Id(v))),
	}, g.block(stmts)...)
	g.loops--

	return jen.For(
		jen.List(jen.Id(v), jen.Id(step), jen.Id(n)).Op(":=").Add(bounds),
		jen.Id(n).Op(">").Lit(0),
		jen.List(jen.Id(n), jen.Id(v)).Op("=").List(jen.Id(n).Op("-").Lit(1), jen.Id(v).Op("+").Id(step)),
	).Block(body...)
}

// cond emits a Go boolean for a Python test expression.
func (g *generator) cond(e Expr) *jen.Statement {
	if u, ok := e.(*UnaryOp); ok && u.Op == "Not" {
		return jen.Op("!").Add(g.cond(u.Operand))
	}
	return g.rt("Truthy").Call(g.expr(e))
}

func constTruthy(c *Constant) bool {
	switch c.Kind {
	case ConstBool:
		return c.Bool
	case ConstInt:
		return c.Int != 0
	case ConstStr:
		return c.Str != ""
	}
	return false
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (g *generator) rt(name string) *jen.Statement {
	return jen.Qual(g.opts.RuntimePath, name)
}

func (g *generator) valueType() *jen.Statement {
	return g.rt("Value")
}

func (g *generator) temp() string {
	g.temps++
	return fmt.Sprintf("tmp%d_", g.temps)
}

func (g *generator) warnf(n Node, format string, args ...any) {
	g.warnings = append(g.warnings, fmt.Sprintf("%s: %s", n.Span(), fmt.Sprintf(format, args...)))
}

// pure reports whether evaluating e has no effects and cannot raise.
func pure(e Expr) bool {
	switch e.(type) {
	case *Name, *Constant:
		return true
	}
	return false
}

// hasCall reports whether evaluating e can run user code or print.
func hasCall(e Expr) bool {
	switch e := e.(type) {
	case *Call:
		return true
	case *BinOp:
		return hasCall(e.Left) || hasCall(e.Right)
	case *UnaryOp:
		return hasCall(e.Operand)
	case *BoolOp:
		for _, v := range e.Values {
			if hasCall(v) {
				return true
			}
		}
	case *Compare:
		if hasCall(e.Left) {
			return true
		}
		for _, c := range e.Comparators {
			if hasCall(c) {
				return true
			}
		}
	case *ListExpr:
		for _, v := range e.Elts {
			if hasCall(v) {
				return true
			}
		}
	case *Subscript:
		return hasCall(e.Value) || hasCall(e.Index)
	case *IfExp:
		return hasCall(e.Test) || hasCall(e.Body) || hasCall(e.Orelse)
	}
	return false
}

var operatorSymbols = map[string]string{
	"Add": "+", "Sub": "-", "Mult": "*", "FloorDiv": "//", "Mod": "%",
	"Div": "/", "Pow": "**", "MatMult": "@", "LShift": "<<", "RShift": ">>",
	"BitOr": "|", "BitXor": "^", "BitAnd": "&", "Invert": "~",
}

func operatorSymbol(op string) string {
	if sym, ok := operatorSymbols[op]; ok {
		return sym
	}
	return op
}

// pyList joins quoted names the way CPython's argument errors do:
// 'a', 'a' and 'b', 'a', 'b', and 'c'.
func pyList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	switch len(quoted) {
	case 1:
		return quoted[0]
	case 2:
		return quoted[0] + " and " + quoted[1]
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", and " + quoted[len(quoted)-1]
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
