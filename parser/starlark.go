package parser

import (
	"context"
	"errors"
	"fmt"

	"go.starlark.net/syntax"

	"github.com/chazu/compy/compiler"
)

// StarlarkParser parses the Starlark dialect in process. Starlark has no
// annotations, global statements or identity comparisons; programs that
// need them must use the python frontend.
type StarlarkParser struct{}

func (p *StarlarkParser) Name() string { return "starlark" }

func (p *StarlarkParser) Parse(ctx context.Context, filename string, src []byte) (*compiler.Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := syntax.Parse(filename, src, 0)
	if err != nil {
		var se syntax.Error
		if errors.As(err, &se) {
			return nil, &SyntaxError{
				Filename: filename,
				Line:     int(se.Pos.Line),
				Column:   int(se.Pos.Col) - 1,
				Msg:      se.Msg,
			}
		}
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	log.Debugf("parsed %s with the starlark frontend (%d statements)", filename, len(f.Stmts))
	return &compiler.Module{Filename: filename, Body: starlarkStmts(f.Stmts)}, nil
}

func starlarkSpan(n syntax.Node) compiler.Span {
	start, end := n.Span()
	return compiler.Span{
		Start: compiler.Position{Line: int(start.Line), Column: int(start.Col) - 1},
		End:   compiler.Position{Line: int(end.Line), Column: int(end.Col) - 1},
	}
}

var starlarkAugOps = map[syntax.Token]string{
	syntax.PLUS_EQ:       "Add",
	syntax.MINUS_EQ:      "Sub",
	syntax.STAR_EQ:       "Mult",
	syntax.SLASH_EQ:      "Div",
	syntax.SLASHSLASH_EQ: "FloorDiv",
	syntax.PERCENT_EQ:    "Mod",
	syntax.AMP_EQ:        "BitAnd",
	syntax.PIPE_EQ:       "BitOr",
	syntax.CIRCUMFLEX_EQ: "BitXor",
	syntax.LTLT_EQ:       "LShift",
	syntax.GTGT_EQ:       "RShift",
}

var starlarkBinOps = map[syntax.Token]string{
	syntax.PLUS:       "Add",
	syntax.MINUS:      "Sub",
	syntax.STAR:       "Mult",
	syntax.SLASH:      "Div",
	syntax.SLASHSLASH: "FloorDiv",
	syntax.PERCENT:    "Mod",
	syntax.AMP:        "BitAnd",
	syntax.PIPE:       "BitOr",
	syntax.CIRCUMFLEX: "BitXor",
	syntax.LTLT:       "LShift",
	syntax.GTGT:       "RShift",
}

var starlarkCmpOps = map[syntax.Token]string{
	syntax.LT:     "Lt",
	syntax.LE:     "LtE",
	syntax.GT:     "Gt",
	syntax.GE:     "GtE",
	syntax.EQL:    "Eq",
	syntax.NEQ:    "NotEq",
	syntax.IN:     "In",
	syntax.NOT_IN: "NotIn",
}

func starlarkStmts(list []syntax.Stmt) []compiler.Stmt {
	out := make([]compiler.Stmt, 0, len(list))
	for _, s := range list {
		out = append(out, starlarkStmt(s))
	}
	return out
}

func starlarkStmt(s syntax.Stmt) compiler.Stmt {
	span := starlarkSpan(s)
	switch s := s.(type) {
	case *syntax.ExprStmt:
		return &compiler.ExprStmt{SpanVal: span, Value: starlarkExpr(s.X)}
	case *syntax.AssignStmt:
		if s.Op == syntax.EQ {
			return &compiler.Assign{SpanVal: span, Targets: []compiler.Expr{starlarkExpr(s.LHS)}, Value: starlarkExpr(s.RHS)}
		}
		return &compiler.AugAssign{SpanVal: span, Target: starlarkExpr(s.LHS), Op: starlarkAugOps[s.Op], Value: starlarkExpr(s.RHS)}
	case *syntax.DefStmt:
		return starlarkDef(s, span)
	case *syntax.ReturnStmt:
		r := &compiler.Return{SpanVal: span}
		if s.Result != nil {
			r.Value = starlarkExpr(s.Result)
		}
		return r
	case *syntax.IfStmt:
		return &compiler.If{SpanVal: span, Test: starlarkExpr(s.Cond), Body: starlarkStmts(s.True), Orelse: starlarkStmts(s.False)}
	case *syntax.WhileStmt:
		return &compiler.While{SpanVal: span, Test: starlarkExpr(s.Cond), Body: starlarkStmts(s.Body)}
	case *syntax.ForStmt:
		return &compiler.For{SpanVal: span, Target: starlarkExpr(s.Vars), Iter: starlarkExpr(s.X), Body: starlarkStmts(s.Body)}
	case *syntax.BranchStmt:
		switch s.Token {
		case syntax.BREAK:
			return &compiler.Break{SpanVal: span}
		case syntax.CONTINUE:
			return &compiler.Continue{SpanVal: span}
		case syntax.PASS:
			return &compiler.Pass{SpanVal: span}
		}
	case *syntax.LoadStmt:
		return &compiler.Unsupported{SpanVal: span, Kind: "Load"}
	}
	return &compiler.Unsupported{SpanVal: span, Kind: fmt.Sprintf("%T", s)}
}

func starlarkDef(s *syntax.DefStmt, span compiler.Span) *compiler.FunctionDef {
	fd := &compiler.FunctionDef{SpanVal: span, Name: s.Name.Name, Body: starlarkStmts(s.Body)}
	kwOnly := false
	for _, p := range s.Params {
		switch p := p.(type) {
		case *syntax.Ident:
			param := compiler.Param{Name: p.Name}
			if kwOnly {
				fd.KwOnly = append(fd.KwOnly, param)
			} else {
				fd.Params = append(fd.Params, param)
			}
		case *syntax.BinaryExpr: // name=default
			param := compiler.Param{Default: starlarkExpr(p.Y)}
			if id, ok := p.X.(*syntax.Ident); ok {
				param.Name = id.Name
			}
			if kwOnly {
				fd.KwOnly = append(fd.KwOnly, param)
			} else {
				fd.Params = append(fd.Params, param)
			}
		case *syntax.UnaryExpr: // *args, **kwargs or a bare *
			name := ""
			if id, ok := p.X.(*syntax.Ident); ok {
				name = id.Name
			}
			if p.Op == syntax.STARSTAR {
				fd.KwArg = name
			} else {
				fd.VarArg = name
				kwOnly = true
			}
		}
	}
	return fd
}

func starlarkExprs(list []syntax.Expr) []compiler.Expr {
	out := make([]compiler.Expr, 0, len(list))
	for _, e := range list {
		out = append(out, starlarkExpr(e))
	}
	return out
}

func starlarkExpr(e syntax.Expr) compiler.Expr {
	span := starlarkSpan(e)
	switch e := e.(type) {
	case *syntax.ParenExpr:
		return starlarkExpr(e.X)
	case *syntax.Ident:
		switch e.Name {
		case "None":
			return &compiler.Constant{SpanVal: span, Kind: compiler.ConstNone, Type: "NoneType"}
		case "True", "False":
			return &compiler.Constant{SpanVal: span, Kind: compiler.ConstBool, Bool: e.Name == "True", Type: "bool"}
		}
		return &compiler.Name{SpanVal: span, ID: e.Name}
	case *syntax.Literal:
		return starlarkLiteral(e, span)
	case *syntax.UnaryExpr:
		op := map[syntax.Token]string{syntax.MINUS: "USub", syntax.PLUS: "UAdd", syntax.NOT: "Not", syntax.TILDE: "Invert"}[e.Op]
		if op == "" || e.X == nil {
			return &compiler.Starred{SpanVal: span, Value: starlarkOptExpr(e.X, span)}
		}
		return &compiler.UnaryOp{SpanVal: span, Op: op, Operand: starlarkExpr(e.X)}
	case *syntax.BinaryExpr:
		return starlarkBinary(e, span)
	case *syntax.CallExpr:
		c := &compiler.Call{SpanVal: span, Func: starlarkExpr(e.Fn)}
		for _, arg := range e.Args {
			if kw, ok := arg.(*syntax.BinaryExpr); ok && kw.Op == syntax.EQ {
				name := ""
				if id, ok := kw.X.(*syntax.Ident); ok {
					name = id.Name
				}
				c.Keywords = append(c.Keywords, compiler.Keyword{Arg: name, Value: starlarkExpr(kw.Y)})
				continue
			}
			if u, ok := arg.(*syntax.UnaryExpr); ok && u.Op == syntax.STARSTAR {
				c.Keywords = append(c.Keywords, compiler.Keyword{Value: starlarkExpr(u.X)})
				continue
			}
			c.Args = append(c.Args, starlarkExpr(arg))
		}
		return c
	case *syntax.DotExpr:
		return &compiler.Attribute{SpanVal: span, Value: starlarkExpr(e.X), Attr: e.Name.Name}
	case *syntax.ListExpr:
		return &compiler.ListExpr{SpanVal: span, Elts: starlarkExprs(e.List)}
	case *syntax.IndexExpr:
		return &compiler.Subscript{SpanVal: span, Value: starlarkExpr(e.X), Index: starlarkExpr(e.Y)}
	case *syntax.CondExpr:
		return &compiler.IfExp{SpanVal: span, Test: starlarkExpr(e.Cond), Body: starlarkExpr(e.True), Orelse: starlarkExpr(e.False)}
	case *syntax.SliceExpr:
		return &compiler.Unsupported{SpanVal: span, Kind: "Slice"}
	case *syntax.TupleExpr:
		return &compiler.Unsupported{SpanVal: span, Kind: "Tuple"}
	case *syntax.DictExpr:
		return &compiler.Unsupported{SpanVal: span, Kind: "Dict"}
	case *syntax.LambdaExpr:
		return &compiler.Unsupported{SpanVal: span, Kind: "Lambda"}
	case *syntax.Comprehension:
		kind := "ListComp"
		if e.Curly {
			kind = "DictComp"
		}
		return &compiler.Unsupported{SpanVal: span, Kind: kind}
	}
	return &compiler.Unsupported{SpanVal: span, Kind: fmt.Sprintf("%T", e)}
}

func starlarkOptExpr(e syntax.Expr, span compiler.Span) compiler.Expr {
	if e == nil {
		return &compiler.Unsupported{SpanVal: span, Kind: "Starred"}
	}
	return starlarkExpr(e)
}

func starlarkBinary(e *syntax.BinaryExpr, span compiler.Span) compiler.Expr {
	switch e.Op {
	case syntax.AND, syntax.OR:
		op := "And"
		if e.Op == syntax.OR {
			op = "Or"
		}
		left := starlarkExpr(e.X)
		// a and b and c parses left-nested; flatten like Python's BoolOp.
		if b, ok := left.(*compiler.BoolOp); ok && b.Op == op {
			b.Values = append(b.Values, starlarkExpr(e.Y))
			b.SpanVal = span
			return b
		}
		return &compiler.BoolOp{SpanVal: span, Op: op, Values: []compiler.Expr{left, starlarkExpr(e.Y)}}
	}
	if op, ok := starlarkCmpOps[e.Op]; ok {
		return &compiler.Compare{SpanVal: span, Left: starlarkExpr(e.X), Ops: []string{op}, Comparators: []compiler.Expr{starlarkExpr(e.Y)}}
	}
	if op, ok := starlarkBinOps[e.Op]; ok {
		return &compiler.BinOp{SpanVal: span, Left: starlarkExpr(e.X), Op: op, Right: starlarkExpr(e.Y)}
	}
	return &compiler.Unsupported{SpanVal: span, Kind: "BinOp"}
}

func starlarkLiteral(l *syntax.Literal, span compiler.Span) *compiler.Constant {
	c := &compiler.Constant{SpanVal: span}
	switch v := l.Value.(type) {
	case string:
		if l.Token == syntax.BYTES {
			c.Kind, c.Type = compiler.ConstOther, "bytes"
			break
		}
		c.Kind, c.Type, c.Str = compiler.ConstStr, "str", v
	case int64:
		c.Kind, c.Type, c.Int = compiler.ConstInt, "int", v
	case float64:
		c.Kind, c.Type = compiler.ConstOther, "float"
	default:
		// *big.Int
		c.Kind, c.Type = compiler.ConstOther, "out-of-range int"
	}
	return c
}
