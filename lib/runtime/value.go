// Package runtime is the support library linked into every program compy
// generates. It models the slice of Python value semantics the generated code
// relies on: None, bool, int, str and list values, the print built-in, and
// Python-style runtime errors raised as Go panics and reported by Main.
package runtime

import "fmt"

// Kind identifies the active alternative of a Value.
type Kind uint8

const (
	KindNone Kind = iota
	KindBool
	KindInt
	KindStr
	KindList
)

// String returns the Python type name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "NoneType"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindStr:
		return "str"
	case KindList:
		return "list"
	default:
		panic(fmt.Sprintf("runtime: invalid kind %d", uint8(k)))
	}
}

// NoneType is the payload type of the None alternative.
type NoneType struct{}

// Value is the Go representation of a Python value. Exactly one alternative
// is active; the zero Value is None.
type Value struct {
	kind Kind
	b    bool
	i    int64
	s    string
	l    *List
}

var (
	None  = Value{}
	True  = Value{kind: KindBool, b: true}
	False = Value{kind: KindBool}
)

// Bool creates a bool value
func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

// Int creates an int value
func Int(n int64) Value {
	return Value{kind: KindInt, i: n}
}

// Str creates a str value
func Str(s string) Value {
	return Value{kind: KindStr, s: s}
}

// ListValue wraps l in a Value. The Value takes ownership of l; a nil list
// becomes an empty one.
func ListValue(l *List) Value {
	if l == nil {
		l = &List{}
	}
	return Value{kind: KindList, l: l}
}

// NewList creates a list value holding elems in order.
func NewList(elems ...Value) Value {
	return ListValue(MakeList(elems...))
}

// Kind returns the active alternative.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNone returns true if the value is None
func (v Value) IsNone() bool {
	return v.kind == KindNone
}

// TypeName returns the Python type name of the value ("int", "list", ...).
func (v Value) TypeName() string {
	return v.kind.String()
}

// Copy returns a value that shares no mutable state with v. Only lists carry
// mutable state, and they are copied deeply.
func (v Value) Copy() Value {
	if v.kind != KindList {
		return v
	}
	return ListValue(v.l.Copy())
}

// String implements fmt.Stringer using Python's str() rendering.
func (v Value) String() string {
	return Render(v)
}

func (v Value) asInt() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.i, true
	case KindBool:
		if v.b {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
