package runtime

// Payload is the set of Go types carried by the Value alternatives.
type Payload interface {
	NoneType | bool | int64 | string | *List
}

// payloadOf returns the T payload of v when the active alternative is exactly
// T. There is no coercion between alternatives (a bool is not an int here).
func payloadOf[T Payload](v Value) (T, bool) {
	var zero T
	var out any
	switch any(zero).(type) {
	case NoneType:
		if v.kind != KindNone {
			return zero, false
		}
		out = NoneType{}
	case bool:
		if v.kind != KindBool {
			return zero, false
		}
		out = v.b
	case int64:
		if v.kind != KindInt {
			return zero, false
		}
		out = v.i
	case string:
		if v.kind != KindStr {
			return zero, false
		}
		out = v.s
	case *List:
		if v.kind != KindList {
			return zero, false
		}
		out = v.l
	default:
		return zero, false
	}
	return out.(T), true
}

// AssertType returns the T payload of v, raising TypeError(message) when
// another alternative is active.
func AssertType[T Payload](v Value, message string) T {
	if p, ok := payloadOf[T](v); ok {
		return p
	}
	panic(NewError(TypeError, message))
}

// TypeOrNone is AssertType that maps None to the zero value of T.
func TypeOrNone[T Payload](v Value, message string) T {
	var zero T
	return TypeOrNoneDefault(v, zero, message)
}

// TypeOrNoneDefault is AssertType that maps None to def.
func TypeOrNoneDefault[T Payload](v Value, def T, message string) T {
	if p, ok := payloadOf[T](v); ok {
		return p
	}
	if v.kind == KindNone {
		return def
	}
	panic(NewError(TypeError, message))
}
