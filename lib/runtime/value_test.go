package runtime

import "testing"

// expectRaise runs fn and checks it raised an *Error of the given kind and message.
func expectRaise(t *testing.T, kind ErrorKind, message string, fn func()) {
	t.Helper()
	err := Catch(fn)
	if err == nil {
		t.Fatalf("expected %s(%q), got no error", kind, message)
	}
	if err.Kind() != kind || err.Message() != message {
		t.Fatalf("got %s(%q), want %s(%q)", err.Kind(), err.Message(), kind, message)
	}
}

func TestZeroValueIsNone(t *testing.T) {
	var v Value
	if !v.IsNone() || v.Kind() != KindNone {
		t.Errorf("zero Value kind = %v, want NoneType", v.Kind())
	}
	if v != None {
		t.Error("zero Value != None")
	}
}

func TestConstructorsKinds(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		kind Kind
		typ  string
	}{
		{"none", None, KindNone, "NoneType"},
		{"true", True, KindBool, "bool"},
		{"bool", Bool(false), KindBool, "bool"},
		{"int", Int(5), KindInt, "int"},
		{"str", Str("x"), KindStr, "str"},
		{"list", NewList(Int(1)), KindList, "list"},
		{"nil list", ListValue(nil), KindList, "list"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.v.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", tt.v.Kind(), tt.kind)
			}
			if tt.v.TypeName() != tt.typ {
				t.Errorf("TypeName() = %q, want %q", tt.v.TypeName(), tt.typ)
			}
		})
	}
}

func TestCopyDoesNotAlias(t *testing.T) {
	inner := NewList(Int(2), Int(3))
	orig := NewList(Int(1), inner)
	cp := orig.Copy()

	SetItem(GetItem(cp, Int(1)), Int(0), Int(99))
	Append(cp, Int(4))

	if got := Repr(orig); got != "[1, [2, 3]]" {
		t.Errorf("original mutated through copy: %s", got)
	}
	if got := Repr(cp); got != "[1, [99, 3], 4]" {
		t.Errorf("copy = %s, want [1, [99, 3], 4]", got)
	}
}

func TestAssertType(t *testing.T) {
	if got := AssertType[int64](Int(5), "msg"); got != 5 {
		t.Errorf("AssertType[int64](5) = %d, want 5", got)
	}
	if got := AssertType[string](Str("a"), "msg"); got != "a" {
		t.Errorf("AssertType[string] = %q", got)
	}
	if got := AssertType[bool](True, "msg"); !got {
		t.Error("AssertType[bool](True) = false")
	}
	if got := AssertType[*List](NewList(Int(1)), "msg"); got.Len() != 1 {
		t.Errorf("AssertType[*List] len = %d", got.Len())
	}
	AssertType[NoneType](None, "msg")

	expectRaise(t, TypeError, "msg", func() { AssertType[string](Int(5), "msg") })
	// no coercion between bool and int
	expectRaise(t, TypeError, "want int", func() { AssertType[int64](True, "want int") })
	expectRaise(t, TypeError, "not none", func() { AssertType[int64](None, "not none") })
}

func TestTypeOrNone(t *testing.T) {
	if got := TypeOrNone[string](None, "msg"); got != "" {
		t.Errorf("TypeOrNone[string](None) = %q, want empty", got)
	}
	if got := TypeOrNone[int64](Int(7), "msg"); got != 7 {
		t.Errorf("TypeOrNone[int64](7) = %d", got)
	}
	expectRaise(t, TypeError, "msg", func() { TypeOrNone[string](Int(5), "msg") })

	if got := TypeOrNoneDefault(None, " ", "msg"); got != " " {
		t.Errorf("TypeOrNoneDefault(None, \" \") = %q", got)
	}
	if got := TypeOrNoneDefault(Str("-"), " ", "msg"); got != "-" {
		t.Errorf("TypeOrNoneDefault(\"-\") = %q", got)
	}
	expectRaise(t, TypeError, "flush", func() { TypeOrNoneDefault(Int(1), false, "flush") })
}
