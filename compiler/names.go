package compiler

import "strings"

// reserved lists identifiers a Python name may not take verbatim in the
// generated file: Go keywords, predeclared identifiers, and the names the
// generator itself declares.
var reserved = map[string]bool{
	// Keywords
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
	// Predeclared functions
	"append": true, "cap": true, "clear": true, "close": true, "complex": true,
	"copy": true, "delete": true, "imag": true, "len": true, "make": true,
	"max": true, "min": true, "new": true, "panic": true, "print": true,
	"println": true, "real": true, "recover": true,
	// Predeclared constants and types
	"true": true, "false": true, "nil": true, "iota": true,
	"any": true, "bool": true, "byte": true, "comparable": true, "error": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"uintptr": true, "float32": true, "float64": true, "complex64": true,
	"complex128": true, "rune": true, "string": true,
	// Generator-owned
	"py": true, "main": true, "init": true, "compyMain": true,
}

// goName maps a Python identifier to a Go identifier. Reserved names and
// names already ending in "_" get one more "_", so the mapping is injective
// and never produces a generator temporary (tmpN_) from a user name.
func goName(name string) string {
	if reserved[name] || strings.HasSuffix(name, "_") {
		return name + "_"
	}
	return name
}
