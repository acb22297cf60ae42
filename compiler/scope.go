package compiler

import "sort"

// builtins are the Python built-in functions the generator translates.
var builtins = map[string]bool{
	"print": true,
	"len":   true,
	"range": true,
	"str":   true,
}

type bindingKind int

const (
	bindUndefined bindingKind = iota
	bindLocal
	bindGlobal
	bindFunction
	bindBuiltin
)

// moduleScope holds the names bound at module level.
type moduleScope struct {
	functions map[string]*FunctionDef
	order     []*FunctionDef // definition order
	globals   map[string]bool
}

// funcScope holds the names bound inside one function body.
type funcScope struct {
	def      *FunctionDef
	params   map[string]bool
	locals   map[string]bool // assigned names, params excluded
	declared map[string]bool // names listed in a global statement
}

// analyze builds the module scope. Function definitions are only accepted
// as top-level statements; everything else that binds a name at module
// level becomes a package variable.
func (g *generator) analyze(mod *Module) *moduleScope {
	s := &moduleScope{
		functions: make(map[string]*FunctionDef),
		globals:   make(map[string]bool),
	}
	for _, stmt := range mod.Body {
		fd, ok := stmt.(*FunctionDef)
		if !ok {
			collectBindings(g, stmt, s.globals, true)
			continue
		}
		if prev, dup := s.functions[fd.Name]; dup {
			g.errorf(fd, "function %q redefined (first defined at %s)", fd.Name, prev.Span())
		}
		s.functions[fd.Name] = fd
		s.order = append(s.order, fd)
	}
	// global statements inside functions introduce module names too.
	for _, fd := range s.order {
		walkStmts(fd.Body, func(st Stmt) {
			if gl, ok := st.(*Global); ok {
				for _, name := range gl.Names {
					s.globals[name] = true
				}
			}
		})
	}
	for _, name := range sortedNames(s.globals) {
		if fd, ok := s.functions[name]; ok {
			g.errorf(fd, "name %q is bound both as a function and as a variable", name)
		}
	}
	return s
}

// newFuncScope computes the locals of fd following Python's rule: a name
// assigned anywhere in the body is local unless declared global.
func (g *generator) newFuncScope(fd *FunctionDef) *funcScope {
	fs := &funcScope{
		def:      fd,
		params:   make(map[string]bool),
		locals:   make(map[string]bool),
		declared: make(map[string]bool),
	}
	for _, p := range fd.Params {
		if fs.params[p.Name] {
			g.errorf(fd, "duplicate argument %q in function definition", p.Name)
		}
		fs.params[p.Name] = true
	}
	walkStmts(fd.Body, func(st Stmt) {
		if gl, ok := st.(*Global); ok {
			for _, name := range gl.Names {
				if fs.params[name] {
					g.errorf(gl, "name %q is parameter and global", name)
				}
				fs.declared[name] = true
			}
		}
	})
	assigned := make(map[string]bool)
	for _, st := range fd.Body {
		collectBindings(g, st, assigned, false)
	}
	for name := range assigned {
		if !fs.params[name] && !fs.declared[name] {
			fs.locals[name] = true
		}
	}
	return fs
}

// resolve classifies a name read in the current context.
func (g *generator) resolve(name string) bindingKind {
	if fs := g.fn; fs != nil && !fs.declared[name] {
		if fs.params[name] || fs.locals[name] {
			return bindLocal
		}
	}
	if g.scope.globals[name] {
		return bindGlobal
	}
	if _, ok := g.scope.functions[name]; ok {
		return bindFunction
	}
	if builtins[name] {
		return bindBuiltin
	}
	return bindUndefined
}

// collectBindings records the names stmt binds. Nested function definitions
// are rejected: at module level only top-level defs are allowed, and
// functions never contain defs.
func collectBindings(g *generator, stmt Stmt, into map[string]bool, module bool) {
	target := func(e Expr) {
		if n, ok := e.(*Name); ok {
			into[n.ID] = true
		}
	}
	switch s := stmt.(type) {
	case *Assign:
		for _, t := range s.Targets {
			target(t)
		}
	case *AnnAssign:
		target(s.Target)
	case *AugAssign:
		target(s.Target)
	case *For:
		target(s.Target)
		collectAll(g, s.Body, into, module)
		collectAll(g, s.Orelse, into, module)
	case *While:
		collectAll(g, s.Body, into, module)
		collectAll(g, s.Orelse, into, module)
	case *If:
		collectAll(g, s.Body, into, module)
		collectAll(g, s.Orelse, into, module)
	case *FunctionDef:
		if module {
			g.unsupported(s, "FunctionDef", "function definitions are only supported at the top level of a module")
		}
		g.unsupported(s, "FunctionDef", "nested function definitions")
	}
}

func collectAll(g *generator, body []Stmt, into map[string]bool, module bool) {
	for _, st := range body {
		collectBindings(g, st, into, module)
	}
}

// walkStmts visits every statement in body, descending into compound
// statements but not into function definitions.
func walkStmts(body []Stmt, visit func(Stmt)) {
	for _, st := range body {
		visit(st)
		switch s := st.(type) {
		case *If:
			walkStmts(s.Body, visit)
			walkStmts(s.Orelse, visit)
		case *While:
			walkStmts(s.Body, visit)
			walkStmts(s.Orelse, visit)
		case *For:
			walkStmts(s.Body, visit)
			walkStmts(s.Orelse, visit)
		}
	}
}

func sortedNames(set map[string]bool) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
