package runtime

import "testing"

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"none", None, "None"},
		{"true", True, "True"},
		{"false", False, "False"},
		{"int", Int(-42), "-42"},
		{"str", Str("it's"), "it's"},
		{"empty list", NewList(), "[]"},
		{"nested", NewList(Int(1), NewList(Int(2), Int(3)), None), "[1, [2, 3], None]"},
		{"strings in list", NewList(Str("a"), Str("it's"), Str(`say "hi"`)), `['a', "it's", 'say "hi"']`},
		{"escapes", NewList(Str("a\nb\\"), Str("\x01")), `['a\nb\\', '\x01']`},
		{"both quotes", NewList(Str(`'"`)), `['\'"']`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.v); got != tt.want {
				t.Errorf("Render = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestReprNonASCIIFailsClosed(t *testing.T) {
	defer func() {
		if _, ok := recover().(*InternalError); !ok {
			t.Error("repr of non-ASCII string should panic with *InternalError")
		}
	}()
	Repr(Str("héllo"))
}

func TestStringer(t *testing.T) {
	if got := NewList(Int(1), True).String(); got != "[1, True]" {
		t.Errorf("String() = %q", got)
	}
}
