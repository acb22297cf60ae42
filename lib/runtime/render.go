package runtime

import (
	"fmt"
	"strconv"
	"strings"
)

// Render converts v to text the way Python's str() does.
func Render(v Value) string {
	if v.kind == KindStr {
		return v.s
	}
	return Repr(v)
}

// Repr converts v to text the way Python's repr() does.
func Repr(v Value) string {
	switch v.kind {
	case KindNone:
		return "None"
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindStr:
		return reprString(v.s)
	case KindList:
		var sb strings.Builder
		sb.WriteByte('[')
		for i, elem := range v.l.elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(Repr(elem))
		}
		sb.WriteByte(']')
		return sb.String()
	default:
		panic(fmt.Sprintf("runtime: invalid kind %d", uint8(v.kind)))
	}
}

// reprString quotes s like CPython: single quotes unless s contains a single
// quote and no double quote. Only ASCII text is handled; CPython's rules for
// printable non-ASCII characters are not modeled.
func reprString(s string) string {
	quote := byte('\'')
	if strings.IndexByte(s, '\'') >= 0 && strings.IndexByte(s, '"') < 0 {
		quote = '"'
	}

	var sb strings.Builder
	sb.WriteByte(quote)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == quote || c == '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c < 0x20 || c == 0x7f:
			fmt.Fprintf(&sb, `\x%02x`, c)
		case c >= 0x80:
			notSupported("repr() of non-ASCII string %q", s)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte(quote)
	return sb.String()
}
