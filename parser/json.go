package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/chazu/compy/compiler"
)

// DecodeJSON converts the dumper's JSON tree into a module. Node classes
// the AST does not model become *compiler.Unsupported.
func DecodeJSON(filename string, data []byte) (mod *compiler.Module, err error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var root map[string]any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("decoding AST of %s: %w", filename, err)
	}

	defer func() {
		if r := recover(); r != nil {
			de, ok := r.(decodeError)
			if !ok {
				panic(r)
			}
			mod, err = nil, fmt.Errorf("decoding AST of %s: %s", filename, de.msg)
		}
	}()

	n := node(root)
	if n.typ() != "Module" {
		return nil, fmt.Errorf("decoding AST of %s: root is %q, not Module", filename, n.typ())
	}
	return &compiler.Module{Filename: filename, Body: stmts(n.list("body"))}, nil
}

type decodeError struct{ msg string }

func malformed(format string, args ...any) {
	panic(decodeError{fmt.Sprintf(format, args...)})
}

// node is one JSON object of the dump.
type node map[string]any

func (n node) typ() string {
	s, _ := n["_type"].(string)
	return s
}

func (n node) child(key string) node {
	switch v := n[key].(type) {
	case map[string]any:
		return node(v)
	case nil:
		return nil
	default:
		malformed("%s.%s: expected an object, got %T", n.typ(), key, v)
		return nil
	}
}

func (n node) list(key string) []node {
	raw, ok := n[key].([]any)
	if !ok {
		if n[key] == nil {
			return nil
		}
		malformed("%s.%s: expected a list, got %T", n.typ(), key, n[key])
	}
	out := make([]node, len(raw))
	for i, item := range raw {
		switch v := item.(type) {
		case map[string]any:
			out[i] = node(v)
		case nil:
			out[i] = nil
		default:
			malformed("%s.%s[%d]: expected an object, got %T", n.typ(), key, i, v)
		}
	}
	return out
}

func (n node) str(key string) string {
	s, _ := n[key].(string)
	return s
}

func (n node) names(key string) []string {
	raw, _ := n[key].([]any)
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func (n node) number(key string) int {
	if num, ok := n[key].(json.Number); ok {
		v, _ := num.Int64()
		return int(v)
	}
	return 0
}

func (n node) span() compiler.Span {
	return compiler.Span{
		Start: compiler.Position{Line: n.number("lineno"), Column: n.number("col_offset")},
		End:   compiler.Position{Line: n.number("end_lineno"), Column: n.number("end_col_offset")},
	}
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

func stmts(nodes []node) []compiler.Stmt {
	out := make([]compiler.Stmt, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, stmt(n))
	}
	return out
}

func stmt(n node) compiler.Stmt {
	span := n.span()
	switch n.typ() {
	case "FunctionDef":
		return functionDef(n)
	case "Return":
		return &compiler.Return{SpanVal: span, Value: optExpr(n.child("value"))}
	case "Assign":
		return &compiler.Assign{SpanVal: span, Targets: exprs(n.list("targets")), Value: expr(n.child("value"))}
	case "AnnAssign":
		return &compiler.AnnAssign{
			SpanVal:    span,
			Target:     expr(n.child("target")),
			Annotation: expr(n.child("annotation")),
			Value:      optExpr(n.child("value")),
		}
	case "AugAssign":
		return &compiler.AugAssign{
			SpanVal: span,
			Target:  expr(n.child("target")),
			Op:      n.child("op").typ(),
			Value:   expr(n.child("value")),
		}
	case "Expr":
		return &compiler.ExprStmt{SpanVal: span, Value: expr(n.child("value"))}
	case "If":
		return &compiler.If{SpanVal: span, Test: expr(n.child("test")), Body: stmts(n.list("body")), Orelse: stmts(n.list("orelse"))}
	case "While":
		return &compiler.While{SpanVal: span, Test: expr(n.child("test")), Body: stmts(n.list("body")), Orelse: stmts(n.list("orelse"))}
	case "For":
		return &compiler.For{
			SpanVal: span,
			Target:  expr(n.child("target")),
			Iter:    expr(n.child("iter")),
			Body:    stmts(n.list("body")),
			Orelse:  stmts(n.list("orelse")),
		}
	case "Pass":
		return &compiler.Pass{SpanVal: span}
	case "Break":
		return &compiler.Break{SpanVal: span}
	case "Continue":
		return &compiler.Continue{SpanVal: span}
	case "Global":
		return &compiler.Global{SpanVal: span, Names: n.names("names")}
	}
	return &compiler.Unsupported{SpanVal: span, Kind: n.typ()}
}

func functionDef(n node) *compiler.FunctionDef {
	fd := &compiler.FunctionDef{
		SpanVal:    n.span(),
		Name:       n.str("name"),
		Decorators: exprs(n.list("decorator_list")),
		Returns:    optExpr(n.child("returns")),
		Body:       stmts(n.list("body")),
	}
	args := n.child("args")
	if args == nil {
		return fd
	}
	posonly := args.list("posonlyargs")
	positional := append(append([]node{}, posonly...), args.list("args")...)
	defaults := args.list("defaults")
	// defaults belong to the last len(defaults) positional parameters.
	offset := len(positional) - len(defaults)
	for i, a := range positional {
		p := compiler.Param{Name: a.str("arg"), Annotation: optExpr(a.child("annotation"))}
		if i >= offset {
			p.Default = optExpr(defaults[i-offset])
		}
		fd.Params = append(fd.Params, p)
	}
	fd.PosOnly = len(posonly)

	kwDefaults := args.list("kw_defaults")
	for i, a := range args.list("kwonlyargs") {
		p := compiler.Param{Name: a.str("arg"), Annotation: optExpr(a.child("annotation"))}
		if i < len(kwDefaults) {
			p.Default = optExpr(kwDefaults[i])
		}
		fd.KwOnly = append(fd.KwOnly, p)
	}
	if v := args.child("vararg"); v != nil {
		fd.VarArg = v.str("arg")
	}
	if v := args.child("kwarg"); v != nil {
		fd.KwArg = v.str("arg")
	}
	return fd
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

func exprs(nodes []node) []compiler.Expr {
	out := make([]compiler.Expr, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, expr(n))
	}
	return out
}

func optExpr(n node) compiler.Expr {
	if n == nil {
		return nil
	}
	return expr(n)
}

func expr(n node) compiler.Expr {
	if n == nil {
		malformed("missing expression")
	}
	span := n.span()
	switch n.typ() {
	case "Constant":
		return constant(n)
	case "Name":
		return &compiler.Name{SpanVal: span, ID: n.str("id")}
	case "BinOp":
		return &compiler.BinOp{SpanVal: span, Left: expr(n.child("left")), Op: n.child("op").typ(), Right: expr(n.child("right"))}
	case "UnaryOp":
		return &compiler.UnaryOp{SpanVal: span, Op: n.child("op").typ(), Operand: expr(n.child("operand"))}
	case "BoolOp":
		return &compiler.BoolOp{SpanVal: span, Op: n.child("op").typ(), Values: exprs(n.list("values"))}
	case "Compare":
		var ops []string
		for _, op := range n.list("ops") {
			ops = append(ops, op.typ())
		}
		return &compiler.Compare{SpanVal: span, Left: expr(n.child("left")), Ops: ops, Comparators: exprs(n.list("comparators"))}
	case "Call":
		c := &compiler.Call{SpanVal: span, Func: expr(n.child("func")), Args: exprs(n.list("args"))}
		for _, kw := range n.list("keywords") {
			c.Keywords = append(c.Keywords, compiler.Keyword{Arg: kw.str("arg"), Value: expr(kw.child("value"))})
		}
		return c
	case "Attribute":
		return &compiler.Attribute{SpanVal: span, Value: expr(n.child("value")), Attr: n.str("attr")}
	case "List":
		return &compiler.ListExpr{SpanVal: span, Elts: exprs(n.list("elts"))}
	case "Subscript":
		index := n.child("slice")
		// Python 3.8 wraps plain indexes in an Index node.
		if index.typ() == "Index" {
			index = index.child("value")
		}
		return &compiler.Subscript{SpanVal: span, Value: expr(n.child("value")), Index: expr(index)}
	case "IfExp":
		return &compiler.IfExp{SpanVal: span, Test: expr(n.child("test")), Body: expr(n.child("body")), Orelse: expr(n.child("orelse"))}
	case "Starred":
		return &compiler.Starred{SpanVal: span, Value: expr(n.child("value"))}
	}
	return &compiler.Unsupported{SpanVal: span, Kind: n.typ()}
}

func constant(n node) *compiler.Constant {
	c := &compiler.Constant{SpanVal: n.span(), Type: n.str("value_type")}
	switch c.Type {
	case "NoneType":
		c.Kind = compiler.ConstNone
	case "bool":
		c.Kind = compiler.ConstBool
		c.Bool, _ = n["value"].(bool)
	case "int":
		v, err := strconv.ParseInt(n.str("value"), 10, 64)
		if err != nil {
			c.Kind = compiler.ConstOther
			c.Type = "out-of-range int"
			break
		}
		c.Kind = compiler.ConstInt
		c.Int = v
	case "str":
		c.Kind = compiler.ConstStr
		c.Str = n.str("value")
	default:
		c.Kind = compiler.ConstOther
	}
	return c
}
