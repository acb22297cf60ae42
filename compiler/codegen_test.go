package compiler

import (
	"errors"
	"strings"
	"testing"
)

// AST construction helpers.

func name(id string) *Name         { return &Name{ID: id} }
func num(n int64) *Constant        { return &Constant{Kind: ConstInt, Int: n} }
func strc(s string) *Constant      { return &Constant{Kind: ConstStr, Str: s} }
func none() *Constant              { return &Constant{Kind: ConstNone} }
func list(elts ...Expr) *ListExpr  { return &ListExpr{Elts: elts} }
func expr(e Expr) *ExprStmt        { return &ExprStmt{Value: e} }
func ret(e Expr) *Return           { return &Return{Value: e} }
func assign(t string, v Expr) *Assign {
	return &Assign{Targets: []Expr{name(t)}, Value: v}
}

func call(fn string, args ...Expr) *Call {
	return &Call{Func: name(fn), Args: args}
}

func kwcall(fn string, args []Expr, kws ...Keyword) *Call {
	return &Call{Func: name(fn), Args: args, Keywords: kws}
}

func binop(l Expr, op string, r Expr) *BinOp {
	return &BinOp{Left: l, Op: op, Right: r}
}

func compare(l Expr, op string, r Expr) *Compare {
	return &Compare{Left: l, Ops: []string{op}, Comparators: []Expr{r}}
}

func def(fn string, params []string, body ...Stmt) *FunctionDef {
	fd := &FunctionDef{Name: fn, Body: body}
	for _, p := range params {
		fd.Params = append(fd.Params, Param{Name: p})
	}
	return fd
}

func module(body ...Stmt) *Module {
	return &Module{Filename: "test.py", Body: body}
}

func generate(t *testing.T, mod *Module) *Result {
	t.Helper()
	res, err := Generate(mod, Options{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	return res
}

func assertContains(t *testing.T, code string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(code, want) {
			t.Errorf("generated code missing %q\n%s", want, code)
		}
	}
}

func TestGenerateSkeleton(t *testing.T) {
	res := generate(t, module())
	assertContains(t, res.Code,
		"// Code generated by compy from test.py. DO NOT EDIT.",
		"package main",
		`py "github.com/chazu/compy/lib/runtime"`,
		"func compyMain() {",
		"py.Main(compyMain)",
	)
	if strings.Contains(res.Code, "var (") {
		t.Errorf("empty module should declare no globals:\n%s", res.Code)
	}
}

func TestGenerateOptions(t *testing.T) {
	res, err := Generate(module(expr(call("print"))), Options{
		RuntimePath: "compyprog/py",
		SourceName:  "examples/hello.py",
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	assertContains(t, res.Code,
		"from examples/hello.py.",
		`py "compyprog/py"`,
		"py.Print()",
	)
}

func TestGeneratePrint(t *testing.T) {
	tests := []struct {
		name string
		call *Call
		want string
	}{
		{
			name: "no arguments",
			call: call("print"),
			want: "py.Print()",
		},
		{
			name: "positional",
			call: call("print", num(1), num(2), num(3)),
			want: "py.Print(py.Int(1), py.Int(2), py.Int(3))",
		},
		{
			name: "keywords in source order",
			call: kwcall("print", []Expr{num(1), num(2)},
				Keyword{Arg: "sep", Value: strc("-")},
				Keyword{Arg: "end", Value: strc("")}),
			want: `py.PrintWith([]py.Value{py.Int(1), py.Int(2)}, py.PrintOptions{Sep: py.Str("-"), End: py.Str("")})`,
		},
		{
			name: "end before sep",
			call: kwcall("print", nil,
				Keyword{Arg: "end", Value: none()},
				Keyword{Arg: "flush", Value: &Constant{Kind: ConstBool, Bool: true}}),
			want: "py.PrintWith([]py.Value{}, py.PrintOptions{End: py.None, Flush: py.True})",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := generate(t, module(expr(tt.call)))
			assertContains(t, res.Code, tt.want)
		})
	}
}

func TestGeneratePrintMappingStyle(t *testing.T) {
	mod := module(expr(kwcall("print", []Expr{num(1)},
		Keyword{Arg: "sep", Value: none()},
		Keyword{Arg: "color", Value: strc("red")})))
	res, err := Generate(mod, Options{Keywords: KeywordsMapping})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	assertContains(t, res.Code,
		`py.PrintKwargs([]py.Value{py.Int(1)}, py.NewKwargs().Append("sep", py.None).Append("color", py.Str("red")))`)
}

func TestGeneratePrintKeywordErrors(t *testing.T) {
	tests := []struct {
		name string
		kws  []Keyword
		want string
	}{
		{
			name: "unknown keyword",
			kws:  []Keyword{{Arg: "color", Value: strc("red")}},
			want: "'color' is an invalid keyword argument for print()",
		},
		{
			name: "repeated keyword",
			kws:  []Keyword{{Arg: "sep", Value: strc("")}, {Arg: "sep", Value: strc("")}},
			want: "keyword argument repeated: sep",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(module(expr(kwcall("print", nil, tt.kws...))), Options{})
			var ce *CompileError
			if !errors.As(err, &ce) {
				t.Fatalf("error = %v, want *CompileError", err)
			}
			if !strings.Contains(ce.Message, tt.want) {
				t.Errorf("message = %q, want it to contain %q", ce.Message, tt.want)
			}
		})
	}
}

func TestGeneratePrintFileWarns(t *testing.T) {
	res := generate(t, module(expr(kwcall("print", nil, Keyword{Arg: "file", Value: none()}))))
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "file=") {
		t.Errorf("Warnings = %v, want one print(file=...) warning", res.Warnings)
	}
	assertContains(t, res.Code, "File: py.None")
}

func TestGenerateFactorial(t *testing.T) {
	fact := def("fact", []string{"n"},
		&If{
			Test: compare(name("n"), "LtE", num(1)),
			Body: []Stmt{ret(num(1))},
		},
		ret(binop(name("n"), "Mult", call("fact", binop(name("n"), "Sub", num(1))))),
	)
	fact.Returns = name("int")
	res := generate(t, module(fact, expr(call("print", call("fact", num(5))))))

	assertContains(t, res.Code,
		"// fact is annotated to return int.",
		"func fact(n py.Value) py.Value {",
		"if py.Truthy(py.LtE(n, py.Int(1))) {",
		"return py.Int(1)",
		"return py.Mul(n, fact(py.Sub(n, py.Int(1))))",
		"py.Print(fact(py.Int(5)))",
	)
	if strings.Contains(res.Code, "return py.None") {
		t.Errorf("function ending in return should not get a trailing return:\n%s", res.Code)
	}
	if got := res.Functions["fact"]; got != "fact" {
		t.Errorf("Functions[fact] = %q, want %q", got, "fact")
	}
}

func TestGenerateLocals(t *testing.T) {
	res := generate(t, module(def("f", nil,
		assign("x", num(1)),
		assign("y", name("x")),
		expr(call("print", name("y"))),
	)))
	assertContains(t, res.Code,
		"func f() py.Value {",
		"var x, y py.Value",
		"_, _ = x, y",
		"x = py.Int(1)",
		"y = x.Copy()",
		"py.Print(y)",
		"return py.None",
	)
}

func TestGenerateGlobals(t *testing.T) {
	res := generate(t, module(
		assign("items", list(num(1), num(2))),
		assign("type", num(3)),
		def("bump", nil,
			&Global{Names: []string{"count"}},
			&AugAssign{Target: name("count"), Op: "Add", Value: num(1)},
		),
	))
	assertContains(t, res.Code,
		"count py.Value",
		"items py.Value",
		"type_ py.Value",
		"items = py.NewList(py.Int(1), py.Int(2))",
		"type_ = py.Int(3)",
		"count = py.Add(count, py.Int(1))",
	)
	if strings.Contains(res.Code, "var count py.Value") {
		t.Errorf("global name declared as a local:\n%s", res.Code)
	}
}

func TestGenerateCopySemantics(t *testing.T) {
	res := generate(t, module(
		assign("a", list(num(1))),
		assign("b", name("a")),
		assign("c", list(name("a"), &Subscript{Value: name("a"), Index: num(0)})),
		expr(&Call{Func: &Attribute{Value: name("b"), Attr: "append"}, Args: []Expr{name("a")}}),
	))
	assertContains(t, res.Code,
		"b = a.Copy()",
		"c = py.NewList(a.Copy(), py.GetItem(a, py.Int(0)).Copy())",
		"py.Append(b, a.Copy())",
	)
}

func TestGenerateChainedAssign(t *testing.T) {
	res := generate(t, module(&Assign{
		Targets: []Expr{name("a"), name("b")},
		Value:   list(),
	}))
	assertContains(t, res.Code,
		"tmp1_ := py.NewList()",
		"a = tmp1_",
		"b = tmp1_.Copy()",
	)
}

func TestGenerateSubscriptAssign(t *testing.T) {
	res := generate(t, module(
		assign("a", list(num(0), num(0))),
		assign("i", num(0)),
		&Assign{Targets: []Expr{&Subscript{Value: name("a"), Index: num(-1)}}, Value: num(7)},
		&AugAssign{
			Target: &Subscript{Value: name("a"), Index: binop(name("i"), "Add", num(1))},
			Op:     "Mult",
			Value:  num(2),
		},
	))
	assertContains(t, res.Code,
		"py.SetItem(a, py.Int(-1), py.Int(7))",
		"tmp1_ := py.Add(i, py.Int(1))",
		"py.SetItem(a, tmp1_, py.Mul(py.GetItem(a, tmp1_), py.Int(2)))",
	)
}

func TestGenerateSubscriptAssignHoistsCalls(t *testing.T) {
	res := generate(t, module(
		def("f", nil, ret(num(1))),
		assign("a", list(num(0))),
		&Assign{Targets: []Expr{&Subscript{Value: name("a"), Index: num(0)}}, Value: call("f")},
	))
	assertContains(t, res.Code,
		"tmp1_ := f()",
		"py.SetItem(a, py.Int(0), tmp1_)",
	)
}

func TestGenerateSubscriptAssignValueFirst(t *testing.T) {
	res := generate(t, module(
		def("f", nil, ret(num(0))),
		assign("a", list(num(1))),
		assign("b", list()),
		&Assign{
			Targets: []Expr{&Subscript{Value: name("a"), Index: call("f")}},
			Value:   &Subscript{Value: name("b"), Index: num(0)},
		},
		&Assign{
			Targets: []Expr{&Subscript{Value: name("a"), Index: &Subscript{Value: name("b"), Index: num(9)}}},
			Value:   &Subscript{Value: strc("x"), Index: num(5)},
		},
	))
	assertContains(t, res.Code,
		"tmp1_ := py.GetItem(b, py.Int(0)).Copy()",
		"py.SetItem(a, f(), tmp1_)",
		"py.SetItem(a, py.GetItem(b, py.Int(9)), tmp2_)",
	)
	value := strings.Index(res.Code, `tmp2_ := py.GetItem(py.Str("x"), py.Int(5))`)
	target := strings.Index(res.Code, "py.SetItem(a, py.GetItem(b, py.Int(9)), tmp2_)")
	if value < 0 || target < 0 || value > target {
		t.Errorf("value must be evaluated before the target\n%s", res.Code)
	}
}

func TestGenerateForRange(t *testing.T) {
	res := generate(t, module(
		assign("xs", list(num(1))),
		&For{
			Target: name("i"),
			Iter:   call("range", num(10), num(0), num(-3)),
			Body:   []Stmt{&Continue{}},
		},
		&For{
			Target: name("x"),
			Iter:   name("xs"),
			Body:   []Stmt{expr(call("print", name("x")))},
		},
		assign("r", call("range", num(2))),
	))
	assertContains(t, res.Code,
		"tmp1_, tmp2_, tmp3_ := py.RangeBounds(py.Int(10), py.Int(0), py.Int(-3))",
		"i = py.Int(tmp1_)",
		"for _, tmp4_ := range py.Iter(xs) {",
		"r = py.Range(py.Int(2))",
	)
	if strings.Contains(res.Code, "py.Iter(py.Range(") {
		t.Errorf("range loop materialises the list\n%s", res.Code)
	}
}

func TestGenerateForRangeArgErrors(t *testing.T) {
	for _, args := range [][]Expr{nil, {num(1), num(2), num(3), num(4)}} {
		_, err := Generate(module(&For{Target: name("i"), Iter: call("range", args...), Body: []Stmt{&Pass{}}}), Options{})
		var ce *CompileError
		if !errors.As(err, &ce) {
			t.Errorf("range with %d args: error = %v, want *CompileError", len(args), err)
		}
	}
}

func TestGeneratePrintKeywordsAfterArgs(t *testing.T) {
	res, err := Generate(module(
		def("f", nil, ret(num(1))),
		expr(kwcall("print", []Expr{call("f")}, Keyword{Arg: "sep", Value: strc("-")})),
	), Options{Keywords: KeywordsMapping})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	assertContains(t, res.Code, `py.PrintKwargs([]py.Value{f()}, py.NewKwargs().Append("sep", py.Str("-")))`)
}

func TestGenerateLoops(t *testing.T) {
	res := generate(t, module(
		&For{
			Target: name("i"),
			Iter:   call("range", num(3)),
			Body:   []Stmt{expr(call("print", name("i")))},
		},
		&While{
			Test: &Constant{Kind: ConstBool, Bool: true},
			Body: []Stmt{&Break{}},
		},
		&While{
			Test: compare(name("i"), "Gt", num(0)),
			Body: []Stmt{&AugAssign{Target: name("i"), Op: "Sub", Value: num(1)}, &Continue{}},
		},
	))
	assertContains(t, res.Code,
		"tmp1_, tmp2_, tmp3_ := py.RangeBounds(py.Int(3)); tmp3_ > 0;",
		"i = py.Int(tmp1_)",
		"for {",
		"break",
		"for py.Truthy(py.Gt(i, py.Int(0))) {",
		"continue",
	)
}

func TestGenerateIfElif(t *testing.T) {
	res := generate(t, module(
		assign("x", num(1)),
		&If{
			Test: compare(name("x"), "Eq", num(0)),
			Body: []Stmt{expr(call("print", strc("zero")))},
			Orelse: []Stmt{&If{
				Test:   &UnaryOp{Op: "Not", Operand: name("x")},
				Body:   []Stmt{&Pass{}},
				Orelse: []Stmt{expr(call("print", strc("other")))},
			}},
		},
	))
	assertContains(t, res.Code,
		"if py.Truthy(py.Eq(x, py.Int(0))) {",
		"} else if !py.Truthy(x) {",
		"} else {",
		`py.Print(py.Str("other"))`,
	)
}

func TestGenerateExpressions(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{"negative literal", &UnaryOp{Op: "USub", Operand: num(5)}, "py.Int(-5)"},
		{"negate", &UnaryOp{Op: "USub", Operand: name("x")}, "py.Neg(x)"},
		{"not", &UnaryOp{Op: "Not", Operand: name("x")}, "py.Not(x)"},
		{"floor div", binop(name("x"), "FloorDiv", num(2)), "py.FloorDiv(x, py.Int(2))"},
		{"mod", binop(name("x"), "Mod", num(2)), "py.Mod(x, py.Int(2))"},
		{"repeat", binop(list(num(0)), "Mult", num(3)), "py.Repeat(py.NewList(py.Int(0)), py.Int(3))"},
		{"in", compare(num(1), "In", name("x")), "py.In(py.Int(1), x)"},
		{"not in", compare(num(1), "NotIn", name("x")), "py.Not(py.In(py.Int(1), x))"},
		{"is not", compare(name("x"), "IsNot", none()), "py.Not(py.Is(x, py.None))"},
		{"len", call("len", name("x")), "py.Len(x)"},
		{"str", call("str", num(4)), "py.ToStr(py.Int(4))"},
		{"range", call("range", num(1), num(9), num(2)), "py.Range(py.Int(1), py.Int(9), py.Int(2))"},
		{"pop", &Call{Func: &Attribute{Value: name("x"), Attr: "pop"}}, "py.Pop(x)"},
		{"string", strc(`say "hi"`), `py.Str("say \"hi\"")`},
		{"and", &BoolOp{Op: "And", Values: []Expr{name("x"), num(0)}}, "py.And(x.Copy(), func() py.Value {"},
		{"ifexp", &IfExp{Test: name("x"), Body: num(1), Orelse: num(2)}, "py.Cond(x, func() py.Value {"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := generate(t, module(assign("x", num(0)), assign("y", tt.expr)))
			assertContains(t, res.Code, tt.want)
		})
	}
}

func TestGenerateBoolOpCopiesOperands(t *testing.T) {
	res := generate(t, module(
		assign("a", list()),
		assign("b", &BoolOp{Op: "Or", Values: []Expr{name("a"), list(num(1))}}),
	))
	assertContains(t, res.Code, "b = py.Or(a.Copy(), func() py.Value {")
}

func TestGenerateKeywordCalls(t *testing.T) {
	f := def("f", []string{"a", "b"}, ret(binop(name("a"), "Sub", name("b"))))

	t.Run("in parameter order", func(t *testing.T) {
		res := generate(t, module(f, expr(kwcall("f", []Expr{num(1)}, Keyword{Arg: "b", Value: num(2)}))))
		assertContains(t, res.Code, "f(py.Int(1), py.Int(2))")
	})

	t.Run("reordered keywords keep source order", func(t *testing.T) {
		res := generate(t, module(f, expr(kwcall("f", nil,
			Keyword{Arg: "b", Value: num(1)},
			Keyword{Arg: "a", Value: num(2)}))))
		assertContains(t, res.Code,
			"tmp1_ := py.Int(1)",
			"tmp2_ := py.Int(2)",
			"return f(tmp2_, tmp1_)",
		)
	})
}

func TestGenerateDocstringDropped(t *testing.T) {
	res := generate(t, module(def("f", nil, expr(strc("Does nothing.")))))
	if strings.Contains(res.Code, "Does nothing.") {
		t.Errorf("docstring should not be emitted:\n%s", res.Code)
	}
}

func TestGenerateUnsupported(t *testing.T) {
	tests := []struct {
		name string
		mod  *Module
		kind string
	}{
		{"class", module(&Unsupported{Kind: "ClassDef"}), "ClassDef"},
		{"dict display", module(assign("d", &Unsupported{Kind: "Dict"})), "Dict"},
		{"float", module(assign("f", &Constant{Kind: ConstOther, Type: "float"})), "Constant"},
		{"true division", module(assign("x", binop(num(1), "Div", num(2)))), "BinOp"},
		{"power", module(assign("x", binop(num(1), "Pow", num(2)))), "BinOp"},
		{"chained comparison", module(assign("x", &Compare{
			Left: num(1), Ops: []string{"Lt", "Lt"}, Comparators: []Expr{num(2), num(3)},
		})), "Compare"},
		{"slice", module(assign("l", list()), assign("x", &Subscript{Value: name("l"), Index: &Unsupported{Kind: "Slice"}})), "Slice"},
		{"nested def", module(def("outer", nil, def("inner", nil, &Pass{}))), "FunctionDef"},
		{"conditional def", module(&If{Test: num(1), Body: []Stmt{def("f", nil, &Pass{})}}), "FunctionDef"},
		{"default parameter", module(&FunctionDef{Name: "f", Params: []Param{{Name: "a", Default: num(1)}}, Body: []Stmt{&Pass{}}}), "FunctionDef"},
		{"decorator", module(&FunctionDef{Name: "f", Decorators: []Expr{name("d")}, Body: []Stmt{&Pass{}}}), "FunctionDef"},
		{"varargs", module(&FunctionDef{Name: "f", VarArg: "args", Body: []Stmt{&Pass{}}}), "FunctionDef"},
		{"while else", module(&While{Test: num(0), Body: []Stmt{&Pass{}}, Orelse: []Stmt{&Pass{}}}), "While"},
		{"unknown method", module(assign("l", list()), expr(&Call{Func: &Attribute{Value: name("l"), Attr: "sort"}})), "Attribute"},
		{"attribute read", module(assign("l", list()), assign("x", &Attribute{Value: name("l"), Attr: "real"})), "Attribute"},
		{"tuple target", module(&Assign{Targets: []Expr{&Unsupported{Kind: "Tuple"}}, Value: num(1)}), "Tuple"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Generate(tt.mod, Options{})
			if res != nil {
				t.Errorf("Generate() returned code for an unsupported construct")
			}
			var ue *UnsupportedError
			if !errors.As(err, &ue) {
				t.Fatalf("error = %v, want *UnsupportedError", err)
			}
			if ue.Kind != tt.kind {
				t.Errorf("Kind = %q, want %q", ue.Kind, tt.kind)
			}
		})
	}
}

func TestGenerateCompileErrors(t *testing.T) {
	f := def("f", []string{"a", "b"}, &Pass{})
	tests := []struct {
		name string
		mod  *Module
		want string
	}{
		{"undefined name", module(expr(call("print", name("y")))), "name \"y\" is not defined"},
		{"too many arguments", module(f, expr(call("f", num(1), num(2), num(3)))), "f() takes 2 positional arguments but 3 were given"},
		{"missing arguments", module(f, expr(call("f"))), "f() missing 2 required positional arguments: 'a' and 'b'"},
		{"unexpected keyword", module(f, expr(kwcall("f", []Expr{num(1), num(2)}, Keyword{Arg: "c", Value: num(3)}))), "f() got an unexpected keyword argument 'c'"},
		{"multiple values", module(f, expr(kwcall("f", []Expr{num(1)}, Keyword{Arg: "a", Value: num(3)}))), "f() got multiple values for argument 'a'"},
		{"function as value", module(f, assign("g", name("f"))), "function \"f\" cannot be used as a value"},
		{"call before definition", module(expr(call("f", num(1), num(2))), f), "called before its definition"},
		{"calling a variable", module(assign("v", num(1)), expr(call("v"))), "\"v\" is a variable and cannot be called"},
		{"len arity", module(expr(call("len"))), "len() takes exactly one argument (0 given)"},
		{"range arity", module(expr(call("range"))), "range expected at least 1 argument, got 0"},
		{"return outside function", module(ret(nil)), "'return' outside function"},
		{"break outside loop", module(&Break{}), "'break' outside loop"},
		{"function and variable", module(f, assign("f", num(1))), "bound both as a function and as a variable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.mod, Options{})
			var ce *CompileError
			if !errors.As(err, &ce) {
				t.Fatalf("error = %v, want *CompileError", err)
			}
			if !strings.Contains(ce.Message, tt.want) {
				t.Errorf("message = %q, want it to contain %q", ce.Message, tt.want)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	span := Span{Start: Position{Line: 3, Column: 4}}
	ue := &UnsupportedError{Kind: "ClassDef", Span: span}
	if got, want := ue.Error(), "3:4: unsupported ClassDef"; got != want {
		t.Errorf("UnsupportedError.Error() = %q, want %q", got, want)
	}
	ue.Detail = "classes"
	if got, want := ue.Error(), "3:4: unsupported ClassDef: classes"; got != want {
		t.Errorf("UnsupportedError.Error() = %q, want %q", got, want)
	}
	ce := &CompileError{Message: "boom"}
	if got, want := ce.Error(), "<unknown>: boom"; got != want {
		t.Errorf("CompileError.Error() = %q, want %q", got, want)
	}
}

func TestParseKeywordStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    KeywordStyle
		wantErr bool
	}{
		{"", KeywordsStruct, false},
		{"struct", KeywordsStruct, false},
		{"mapping", KeywordsMapping, false},
		{"dict", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKeywordStyle(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKeywordStyle(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseKeywordStyle(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
