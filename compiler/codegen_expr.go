package compiler

import (
	"fmt"
	"sort"

	"github.com/dave/jennifer/jen"
)

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

var compareFuncs = map[string]string{
	"Lt":    "Lt",
	"LtE":   "LtE",
	"Gt":    "Gt",
	"GtE":   "GtE",
	"Eq":    "Eq",
	"NotEq": "NotEq",
	"Is":    "Is",
	"In":    "In",
}

// negatedCompares are emitted as py.Not around the positive form.
var negatedCompares = map[string]string{
	"IsNot": "Is",
	"NotIn": "In",
}

// printFields maps print keywords to py.PrintOptions fields.
var printFields = map[string]string{
	"sep":   "Sep",
	"end":   "End",
	"flush": "Flush",
	"file":  "File",
}

// expr emits e as a py.Value expression. The result may share list storage
// with a variable; use value when the result is bound somewhere.
func (g *generator) expr(e Expr) *jen.Statement {
	switch e := e.(type) {
	case *Constant:
		return g.constant(e)
	case *Name:
		return g.name(e)
	case *BinOp:
		if _, ok := e.Left.(*ListExpr); ok && e.Op == "Mult" {
			return g.rt("Repeat").Call(g.expr(e.Left), g.expr(e.Right))
		}
		fn, ok := binaryFuncs[e.Op]
		if !ok {
			g.unsupported(e, "BinOp", "operator "+operatorSymbol(e.Op))
		}
		return g.rt(fn).Call(g.expr(e.Left), g.expr(e.Right))
	case *UnaryOp:
		switch e.Op {
		case "USub":
			if c, ok := e.Operand.(*Constant); ok && c.Kind == ConstInt {
				return g.rt("Int").Call(g.intLit(c, -c.Int))
			}
			return g.rt("Neg").Call(g.expr(e.Operand))
		case "UAdd":
			return g.rt("Pos").Call(g.expr(e.Operand))
		case "Not":
			return g.rt("Not").Call(g.expr(e.Operand))
		}
		g.unsupported(e, "UnaryOp", "operator "+operatorSymbol(e.Op))
	case *BoolOp:
		return g.boolOp(e, g.expr)
	case *Compare:
		return g.compare(e)
	case *Call:
		return g.call(e)
	case *ListExpr:
		elems := make([]jen.Code, len(e.Elts))
		for i, el := range e.Elts {
			if _, ok := el.(*Starred); ok {
				g.unsupported(el, "Starred", "unpacking in list displays")
			}
			elems[i] = g.value(el)
		}
		return g.rt("NewList").Call(elems...)
	case *Subscript:
		return g.rt("GetItem").Call(g.expr(e.Value), g.expr(e.Index))
	case *IfExp:
		return g.ifExp(e, g.expr)
	case *Attribute:
		g.unsupported(e, "Attribute", fmt.Sprintf("attribute .%s outside a method call", e.Attr))
	case *Starred:
		g.unsupported(e, "Starred", "")
	case *Unsupported:
		g.unsupported(e, e.Kind, "")
	default:
		g.unsupported(e, fmt.Sprintf("%T", e), "")
	}
	return nil
}

// value emits e as a py.Value that owns its storage: reads of variables and
// list elements are copied so the new binding never aliases the old one.
func (g *generator) value(e Expr) *jen.Statement {
	switch e := e.(type) {
	case *Name, *Subscript:
		return g.expr(e).Dot("Copy").Call()
	case *BoolOp:
		return g.boolOp(e, g.value)
	case *IfExp:
		return g.ifExp(e, g.value)
	}
	return g.expr(e)
}

func (g *generator) constant(c *Constant) *jen.Statement {
	switch c.Kind {
	case ConstNone:
		return g.rt("None")
	case ConstBool:
		if c.Bool {
			return g.rt("True")
		}
		return g.rt("False")
	case ConstInt:
		return g.rt("Int").Call(g.intLit(c, c.Int))
	case ConstStr:
		return g.rt("Str").Call(jen.Lit(c.Str))
	}
	kind := c.Type
	if kind == "" {
		kind = "non-primitive"
	}
	g.unsupported(c, "Constant", kind+" literals")
	return nil
}

func (g *generator) intLit(c *Constant, n int64) *jen.Statement {
	if int64(int(n)) != n {
		g.unsupported(c, "Constant", "integer literal out of range for this platform")
	}
	return jen.Lit(int(n))
}

func (g *generator) name(n *Name) *jen.Statement {
	switch g.resolve(n.ID) {
	case bindLocal, bindGlobal:
		return jen.Id(goName(n.ID))
	case bindFunction, bindBuiltin:
		g.errorf(n, "function %q cannot be used as a value", n.ID)
	}
	g.errorf(n, "name %q is not defined", n.ID)
	return nil
}

// thunk wraps code in a func() py.Value for lazily evaluated operands.
func (g *generator) thunk(code jen.Code) *jen.Statement {
	return jen.Func().Params().Add(g.valueType()).Block(jen.Return(code))
}

// boolOp folds `a and b and c` into nested py.And calls whose right operands
// are thunks, so evaluation short-circuits like Python.
func (g *generator) boolOp(e *BoolOp, operand func(Expr) *jen.Statement) *jen.Statement {
	var fn string
	switch e.Op {
	case "And":
		fn = "And"
	case "Or":
		fn = "Or"
	default:
		g.unsupported(e, "BoolOp", "operator "+e.Op)
	}
	if len(e.Values) < 2 {
		g.unsupported(e, "BoolOp", "fewer than two operands")
	}
	acc := operand(e.Values[len(e.Values)-1])
	for i := len(e.Values) - 2; i >= 0; i-- {
		acc = g.rt(fn).Call(operand(e.Values[i]), g.thunk(acc))
	}
	return acc
}

func (g *generator) ifExp(e *IfExp, operand func(Expr) *jen.Statement) *jen.Statement {
	return g.rt("Cond").Call(
		g.expr(e.Test),
		g.thunk(operand(e.Body)),
		g.thunk(operand(e.Orelse)),
	)
}

func (g *generator) compare(e *Compare) *jen.Statement {
	if len(e.Ops) != 1 || len(e.Comparators) != 1 {
		g.unsupported(e, "Compare", "chained comparisons")
	}
	op := e.Ops[0]
	left, right := g.expr(e.Left), g.expr(e.Comparators[0])
	if fn, ok := compareFuncs[op]; ok {
		return g.rt(fn).Call(left, right)
	}
	if fn, ok := negatedCompares[op]; ok {
		return g.rt("Not").Call(g.rt(fn).Call(left, right))
	}
	g.unsupported(e, "Compare", "operator "+op)
	return nil
}

// ---------------------------------------------------------------------------
// Calls
// ---------------------------------------------------------------------------

func (g *generator) call(e *Call) *jen.Statement {
	for _, a := range e.Args {
		if _, ok := a.(*Starred); ok {
			g.unsupported(a, "Starred", "argument unpacking")
		}
	}
	for _, kw := range e.Keywords {
		if kw.Arg == "" {
			g.unsupported(e, "Call", "keyword argument unpacking")
		}
	}

	switch fn := e.Func.(type) {
	case *Name:
		switch g.resolve(fn.ID) {
		case bindFunction:
			if g.fn == nil && !g.defined[fn.ID] {
				g.errorf(fn, "name %q is not defined (called before its definition)", fn.ID)
			}
			return g.callUser(e, g.scope.functions[fn.ID])
		case bindBuiltin:
			return g.callBuiltin(e, fn.ID)
		case bindLocal, bindGlobal:
			g.errorf(fn, "%q is a variable and cannot be called", fn.ID)
		}
		g.errorf(fn, "name %q is not defined", fn.ID)
	case *Attribute:
		return g.callMethod(e, fn)
	}
	g.unsupported(e.Func, "Call", "calls of computed callables")
	return nil
}

// callUser binds positional and keyword arguments to fd's parameters at
// transpile time. When keywords are out of parameter order every argument
// is hoisted into a temporary so they still evaluate in source order.
func (g *generator) callUser(e *Call, fd *FunctionDef) *jen.Statement {
	params := fd.Params
	if len(e.Args) > len(params) {
		was := "were"
		if len(e.Args) == 1 {
			was = "was"
		}
		g.errorf(e, "%s() takes %s but %d %s given",
			fd.Name, plural(len(params), "positional argument"), len(e.Args), was)
	}

	index := make(map[string]int, len(params))
	for i, p := range params {
		index[p.Name] = i
	}
	slots := make([]Expr, len(params))
	var order []int
	for i, a := range e.Args {
		slots[i] = a
		order = append(order, i)
	}
	for _, kw := range e.Keywords {
		i, ok := index[kw.Arg]
		if !ok {
			g.errorf(e, "%s() got an unexpected keyword argument '%s'", fd.Name, kw.Arg)
		}
		if slots[i] != nil {
			g.errorf(e, "%s() got multiple values for argument '%s'", fd.Name, kw.Arg)
		}
		slots[i] = kw.Value
		order = append(order, i)
	}
	var missing []string
	for i, p := range params {
		if slots[i] == nil {
			missing = append(missing, p.Name)
		}
	}
	if len(missing) > 0 {
		g.errorf(e, "%s() missing %s: %s",
			fd.Name, plural(len(missing), "required positional argument"), pyList(missing))
	}

	callee := goName(fd.Name)
	if sort.IntsAreSorted(order) {
		args := make([]jen.Code, len(slots))
		for i, s := range slots {
			args[i] = g.value(s)
		}
		return jen.Id(callee).Call(args...)
	}

	temps := make([]string, len(slots))
	var body []jen.Code
	for _, i := range order {
		temps[i] = g.temp()
		body = append(body, jen.Id(temps[i]).Op(":=").Add(g.value(slots[i])))
	}
	args := make([]jen.Code, len(temps))
	for i, t := range temps {
		args[i] = jen.Id(t)
	}
	body = append(body, jen.Return(jen.Id(callee).Call(args...)))
	return jen.Func().Params().Add(g.valueType()).Block(body...).Call()
}

func (g *generator) rangeArgs(e *Call) []jen.Code {
	g.noKeywords(e, "range")
	switch n := len(e.Args); {
	case n == 0:
		g.errorf(e, "range expected at least 1 argument, got 0")
	case n > 3:
		g.errorf(e, "range expected at most 3 arguments, got %d", n)
	}
	return g.exprs(e.Args)
}

func (g *generator) noKeywords(e *Call, name string) {
	if len(e.Keywords) > 0 {
		g.errorf(e, "%s() takes no keyword arguments", name)
	}
}

func (g *generator) exprs(es []Expr) []jen.Code {
	out := make([]jen.Code, len(es))
	for i, e := range es {
		out[i] = g.expr(e)
	}
	return out
}

func (g *generator) callBuiltin(e *Call, name string) *jen.Statement {
	switch name {
	case "print":
		return g.print(e)
	case "len":
		g.noKeywords(e, "len")
		if len(e.Args) != 1 {
			g.errorf(e, "len() takes exactly one argument (%d given)", len(e.Args))
		}
		return g.rt("Len").Call(g.expr(e.Args[0]))
	case "range":
		return g.rt("Range").Call(g.rangeArgs(e)...)
	case "str":
		if len(e.Keywords) > 0 || len(e.Args) > 1 {
			g.unsupported(e, "Call", "str() with encoding arguments")
		}
		return g.rt("ToStr").Call(g.exprs(e.Args)...)
	}
	g.errorf(e, "built-in %q is not supported", name)
	return nil
}

// print emits the keyword-free fast path, a py.PrintOptions literal, or a
// py.Kwargs chain depending on the call and the keyword style. Keyword
// values keep their source order in both styles.
func (g *generator) print(e *Call) *jen.Statement {
	args := g.exprs(e.Args)
	if len(e.Keywords) == 0 {
		return g.rt("Print").Call(args...)
	}

	seen := make(map[string]bool)
	for _, kw := range e.Keywords {
		if seen[kw.Arg] {
			g.errorf(e, "keyword argument repeated: %s", kw.Arg)
		}
		seen[kw.Arg] = true
		if kw.Arg == "file" {
			g.warnf(e, "print(file=...) is not implemented; the program aborts if this call runs")
		}
	}
	argSlice := jen.Index().Add(g.valueType()).Values(args...)

	if g.opts.Keywords == KeywordsMapping {
		kwargs := g.rt("NewKwargs").Call()
		for _, kw := range e.Keywords {
			kwargs = kwargs.Dot("Append").Call(jen.Lit(kw.Arg), g.expr(kw.Value))
		}
		return g.rt("PrintKwargs").Call(argSlice, kwargs)
	}

	var fields []jen.Code
	for _, kw := range e.Keywords {
		field, ok := printFields[kw.Arg]
		if !ok {
			g.errorf(e, "'%s' is an invalid keyword argument for print()", kw.Arg)
		}
		fields = append(fields, jen.Id(field).Op(":").Add(g.expr(kw.Value)))
	}
	return g.rt("PrintWith").Call(argSlice, g.rt("PrintOptions").Values(fields...))
}

// callMethod handles the list methods the runtime models.
func (g *generator) callMethod(e *Call, attr *Attribute) *jen.Statement {
	switch attr.Attr {
	case "append":
		g.noKeywords(e, "append")
		if len(e.Args) != 1 {
			g.errorf(e, "append() takes exactly one argument (%d given)", len(e.Args))
		}
		return g.rt("Append").Call(g.expr(attr.Value), g.value(e.Args[0]))
	case "pop":
		g.noKeywords(e, "pop")
		if len(e.Args) > 1 {
			g.errorf(e, "pop expected at most 1 argument, got %d", len(e.Args))
		}
		args := append([]jen.Code{g.expr(attr.Value)}, g.exprs(e.Args)...)
		return g.rt("Pop").Call(args...)
	}
	g.unsupported(attr, "Attribute", fmt.Sprintf("method .%s()", attr.Attr))
	return nil
}
