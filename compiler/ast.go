package compiler

import "fmt"

// ---------------------------------------------------------------------------
// AST: the Python subset compy translates
// ---------------------------------------------------------------------------
//
// The node set mirrors Python's own ast module closely enough that a frontend
// can map ast.dump output one node at a time. Node kinds the code generator
// has no rule for are carried as *Unsupported so generation can reject them.

// Position represents a source location.
type Position struct {
	Line   int // 1-based line number
	Column int // 0-based column offset, as reported by Python
}

// Span represents a range in source code.
type Span struct {
	Start Position
	End   Position
}

func (s Span) String() string {
	if s.Start.Line == 0 {
		return "<unknown>"
	}
	return fmt.Sprintf("%d:%d", s.Start.Line, s.Start.Column)
}

// Node is the interface implemented by all AST nodes.
type Node interface {
	Span() Span
	node() // marker method
}

// Stmt is the interface for statement nodes.
type Stmt interface {
	Node
	stmt() // marker method
}

// Expr is the interface for expression nodes.
type Expr interface {
	Node
	expr() // marker method
}

// ---------------------------------------------------------------------------
// Module and definitions
// ---------------------------------------------------------------------------

// Module is the root of a parsed source file.
type Module struct {
	Filename string
	Body     []Stmt
}

// Param is a function parameter.
type Param struct {
	Name       string
	Annotation Expr // may be nil
	Default    Expr // may be nil
}

// FunctionDef represents `def name(params) -> returns: body`.
type FunctionDef struct {
	SpanVal    Span
	Name       string
	Params     []Param
	PosOnly    int      // number of leading positional-only params
	KwOnly     []Param  // parameters after * or *args
	VarArg     string   // *args name, if any
	KwArg      string   // **kwargs name, if any
	Decorators []Expr
	Returns    Expr // may be nil
	Body       []Stmt
}

func (n *FunctionDef) Span() Span { return n.SpanVal }
func (n *FunctionDef) node()      {}
func (n *FunctionDef) stmt()      {}

// ---------------------------------------------------------------------------
// Statement nodes
// ---------------------------------------------------------------------------

// Return represents `return` or `return value`.
type Return struct {
	SpanVal Span
	Value   Expr // nil for a bare return
}

func (n *Return) Span() Span { return n.SpanVal }
func (n *Return) node()      {}
func (n *Return) stmt()      {}

// Assign represents `t1 = t2 = value`.
type Assign struct {
	SpanVal Span
	Targets []Expr
	Value   Expr
}

func (n *Assign) Span() Span { return n.SpanVal }
func (n *Assign) node()      {}
func (n *Assign) stmt()      {}

// AnnAssign represents `target: annotation = value`.
type AnnAssign struct {
	SpanVal    Span
	Target     Expr
	Annotation Expr
	Value      Expr // nil for a bare annotation
}

func (n *AnnAssign) Span() Span { return n.SpanVal }
func (n *AnnAssign) node()      {}
func (n *AnnAssign) stmt()      {}

// AugAssign represents `target op= value`.
type AugAssign struct {
	SpanVal Span
	Target  Expr
	Op      string // binary operator name, e.g. "Add"
	Value   Expr
}

func (n *AugAssign) Span() Span { return n.SpanVal }
func (n *AugAssign) node()      {}
func (n *AugAssign) stmt()      {}

// ExprStmt represents an expression evaluated for its side effects.
type ExprStmt struct {
	SpanVal Span
	Value   Expr
}

func (n *ExprStmt) Span() Span { return n.SpanVal }
func (n *ExprStmt) node()      {}
func (n *ExprStmt) stmt()      {}

// If represents if/elif/else. An elif is an If as the only Orelse statement.
type If struct {
	SpanVal Span
	Test    Expr
	Body    []Stmt
	Orelse  []Stmt
}

func (n *If) Span() Span { return n.SpanVal }
func (n *If) node()      {}
func (n *If) stmt()      {}

// While represents `while test: body`.
type While struct {
	SpanVal Span
	Test    Expr
	Body    []Stmt
	Orelse  []Stmt
}

func (n *While) Span() Span { return n.SpanVal }
func (n *While) node()      {}
func (n *While) stmt()      {}

// For represents `for target in iter: body`.
type For struct {
	SpanVal Span
	Target  Expr
	Iter    Expr
	Body    []Stmt
	Orelse  []Stmt
}

func (n *For) Span() Span { return n.SpanVal }
func (n *For) node()      {}
func (n *For) stmt()      {}

// Pass represents `pass`.
type Pass struct {
	SpanVal Span
}

func (n *Pass) Span() Span { return n.SpanVal }
func (n *Pass) node()      {}
func (n *Pass) stmt()      {}

// Break represents `break`.
type Break struct {
	SpanVal Span
}

func (n *Break) Span() Span { return n.SpanVal }
func (n *Break) node()      {}
func (n *Break) stmt()      {}

// Continue represents `continue`.
type Continue struct {
	SpanVal Span
}

func (n *Continue) Span() Span { return n.SpanVal }
func (n *Continue) node()      {}
func (n *Continue) stmt()      {}

// Global represents `global a, b`.
type Global struct {
	SpanVal Span
	Names   []string
}

func (n *Global) Span() Span { return n.SpanVal }
func (n *Global) node()      {}
func (n *Global) stmt()      {}

// ---------------------------------------------------------------------------
// Expression nodes
// ---------------------------------------------------------------------------

// ConstKind identifies the Python type of a constant.
type ConstKind int

const (
	ConstNone ConstKind = iota
	ConstBool
	ConstInt
	ConstStr
	ConstOther // float, bytes, complex, Ellipsis, ints beyond int64
)

// Constant represents a literal.
type Constant struct {
	SpanVal Span
	Kind    ConstKind
	Bool    bool
	Int     int64
	Str     string
	Type    string // Python type name, used in diagnostics for ConstOther
}

func (n *Constant) Span() Span { return n.SpanVal }
func (n *Constant) node()      {}
func (n *Constant) expr()      {}

// Name represents a variable reference.
type Name struct {
	SpanVal Span
	ID      string
}

func (n *Name) Span() Span { return n.SpanVal }
func (n *Name) node()      {}
func (n *Name) expr()      {}

// BinOp represents `left op right`. Op uses Python's operator class names
// ("Add", "Sub", "Mult", "FloorDiv", "Mod", "Div", ...).
type BinOp struct {
	SpanVal Span
	Left    Expr
	Op      string
	Right   Expr
}

func (n *BinOp) Span() Span { return n.SpanVal }
func (n *BinOp) node()      {}
func (n *BinOp) expr()      {}

// UnaryOp represents `op operand` ("USub", "UAdd", "Not", "Invert").
type UnaryOp struct {
	SpanVal Span
	Op      string
	Operand Expr
}

func (n *UnaryOp) Span() Span { return n.SpanVal }
func (n *UnaryOp) node()      {}
func (n *UnaryOp) expr()      {}

// BoolOp represents `a and b and c` or `a or b`.
type BoolOp struct {
	SpanVal Span
	Op      string // "And" or "Or"
	Values  []Expr
}

func (n *BoolOp) Span() Span { return n.SpanVal }
func (n *BoolOp) node()      {}
func (n *BoolOp) expr()      {}

// Compare represents `left op1 c1 op2 c2 ...`.
type Compare struct {
	SpanVal     Span
	Left        Expr
	Ops         []string // "Lt", "LtE", "Gt", "GtE", "Eq", "NotEq", "In", "NotIn", "Is", "IsNot"
	Comparators []Expr
}

func (n *Compare) Span() Span { return n.SpanVal }
func (n *Compare) node()      {}
func (n *Compare) expr()      {}

// Keyword is a `name=value` call argument. Arg is empty for `**value`.
type Keyword struct {
	Arg   string
	Value Expr
}

// Call represents `func(args, keywords)`.
type Call struct {
	SpanVal  Span
	Func     Expr
	Args     []Expr
	Keywords []Keyword
}

func (n *Call) Span() Span { return n.SpanVal }
func (n *Call) node()      {}
func (n *Call) expr()      {}

// Attribute represents `value.attr`.
type Attribute struct {
	SpanVal Span
	Value   Expr
	Attr    string
}

func (n *Attribute) Span() Span { return n.SpanVal }
func (n *Attribute) node()      {}
func (n *Attribute) expr()      {}

// ListExpr represents a list display `[a, b, c]`.
type ListExpr struct {
	SpanVal Span
	Elts    []Expr
}

func (n *ListExpr) Span() Span { return n.SpanVal }
func (n *ListExpr) node()      {}
func (n *ListExpr) expr()      {}

// Subscript represents `value[index]`.
type Subscript struct {
	SpanVal Span
	Value   Expr
	Index   Expr
}

func (n *Subscript) Span() Span { return n.SpanVal }
func (n *Subscript) node()      {}
func (n *Subscript) expr()      {}

// IfExp represents `body if test else orelse`.
type IfExp struct {
	SpanVal Span
	Test    Expr
	Body    Expr
	Orelse  Expr
}

func (n *IfExp) Span() Span { return n.SpanVal }
func (n *IfExp) node()      {}
func (n *IfExp) expr()      {}

// Starred represents `*value` in a call or display.
type Starred struct {
	SpanVal Span
	Value   Expr
}

func (n *Starred) Span() Span { return n.SpanVal }
func (n *Starred) node()      {}
func (n *Starred) expr()      {}

// ---------------------------------------------------------------------------
// Unsupported
// ---------------------------------------------------------------------------

// Unsupported stands in for any node kind the AST does not model (ClassDef,
// Dict, Lambda, ...). It is both a statement and an expression so frontends
// can place it anywhere.
type Unsupported struct {
	SpanVal Span
	Kind    string // Python node class name
}

func (n *Unsupported) Span() Span { return n.SpanVal }
func (n *Unsupported) node()      {}
func (n *Unsupported) stmt()      {}
func (n *Unsupported) expr()      {}
