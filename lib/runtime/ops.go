package runtime

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Truthy reports whether v counts as true in a condition.
func Truthy(v Value) bool {
	switch v.kind {
	case KindNone:
		return false
	case KindBool:
		return v.b
	case KindInt:
		return v.i != 0
	case KindStr:
		return v.s != ""
	case KindList:
		return v.l.Len() > 0
	default:
		panic("runtime: invalid kind")
	}
}

// Not implements `not v`.
func Not(v Value) Value {
	return Bool(!Truthy(v))
}

// And implements `a and b`; rest is only evaluated when a is truthy.
func And(a Value, rest func() Value) Value {
	if !Truthy(a) {
		return a
	}
	return rest()
}

// Or implements `a or b`; rest is only evaluated when a is falsy.
func Or(a Value, rest func() Value) Value {
	if Truthy(a) {
		return a
	}
	return rest()
}

// Cond implements `then if test else els`, evaluating one branch only.
func Cond(test Value, then, els func() Value) Value {
	if Truthy(test) {
		return then()
	}
	return els()
}

func operandError(op string, a, b Value) {
	Raise(TypeError, "unsupported operand type(s) for %s: '%s' and '%s'", op, a.TypeName(), b.TypeName())
}

func overflow(op string) {
	notSupported("integer overflow in %s (arbitrary-precision int)", op)
}

// Neg implements unary minus.
func Neg(v Value) Value {
	n, ok := v.asInt()
	if !ok {
		Raise(TypeError, "bad operand type for unary -: '%s'", v.TypeName())
	}
	if n == math.MinInt64 {
		overflow("-")
	}
	return Int(-n)
}

// Pos implements unary plus.
func Pos(v Value) Value {
	n, ok := v.asInt()
	if !ok {
		Raise(TypeError, "bad operand type for unary +: '%s'", v.TypeName())
	}
	return Int(n)
}

// Add implements `a + b` for ints, strings and lists.
func Add(a, b Value) Value {
	switch a.kind {
	case KindStr:
		if b.kind != KindStr {
			Raise(TypeError, "can only concatenate str (not \"%s\") to str", b.TypeName())
		}
		return Str(a.s + b.s)
	case KindList:
		if b.kind != KindList {
			Raise(TypeError, "can only concatenate list (not \"%s\") to list", b.TypeName())
		}
		return ListValue(a.l.Concat(b.l))
	}
	x, okA := a.asInt()
	y, okB := b.asInt()
	if !okA || !okB {
		operandError("+", a, b)
	}
	r := x + y
	if (r > x) != (y > 0) {
		overflow("+")
	}
	return Int(r)
}

// Sub implements `a - b` for ints.
func Sub(a, b Value) Value {
	x, okA := a.asInt()
	y, okB := b.asInt()
	if !okA || !okB {
		operandError("-", a, b)
	}
	r := x - y
	if (r < x) != (y > 0) {
		overflow("-")
	}
	return Int(r)
}

// Mul implements `a * b` for ints and sequence repetition.
func Mul(a, b Value) Value {
	switch {
	case a.kind == KindList || a.kind == KindStr:
		return Repeat(a, b)
	case b.kind == KindList || b.kind == KindStr:
		return Repeat(b, a)
	}
	x, okA := a.asInt()
	y, okB := b.asInt()
	if !okA || !okB {
		operandError("*", a, b)
	}
	if x == 0 || y == 0 {
		return Int(0)
	}
	r := x * y
	if r/y != x || (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
		overflow("*")
	}
	return Int(r)
}

// Repeat implements `seq * n` for lists and strings.
func Repeat(seq, n Value) Value {
	count, ok := n.asInt()
	if !ok {
		Raise(TypeError, "can't multiply sequence by non-int of type '%s'", n.TypeName())
	}
	switch seq.kind {
	case KindList:
		return ListValue(seq.l.Repeat(count))
	case KindStr:
		if count <= 0 {
			return Str("")
		}
		if count > int64(math.MaxInt/max(len(seq.s), 1)) {
			notSupported("repeating a string of length %d %d times", len(seq.s), count)
		}
		return Str(strings.Repeat(seq.s, int(count)))
	default:
		operandError("*", seq, n)
		return None
	}
}

// FloorDiv implements `a // b`, rounding toward negative infinity.
func FloorDiv(a, b Value) Value {
	x, okA := a.asInt()
	y, okB := b.asInt()
	if !okA || !okB {
		operandError("//", a, b)
	}
	if y == 0 {
		Raise(ZeroDivisionError, "integer division or modulo by zero")
	}
	if x == math.MinInt64 && y == -1 {
		overflow("//")
	}
	q := x / y
	if (x%y != 0) && ((x < 0) != (y < 0)) {
		q--
	}
	return Int(q)
}

// Mod implements `a % b`; the result takes the sign of b.
func Mod(a, b Value) Value {
	x, okA := a.asInt()
	y, okB := b.asInt()
	if !okA || !okB {
		operandError("%", a, b)
	}
	if y == 0 {
		Raise(ZeroDivisionError, "integer division or modulo by zero")
	}
	if y == -1 {
		return Int(0)
	}
	r := x % y
	if r != 0 && ((r < 0) != (y < 0)) {
		r += y
	}
	return Int(r)
}

// compare orders a and b, returning -1, 0 or 1.
func compare(op string, a, b Value) int {
	if x, ok := a.asInt(); ok {
		if y, ok := b.asInt(); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	}
	switch {
	case a.kind == KindStr && b.kind == KindStr:
		return strings.Compare(a.s, b.s)
	case a.kind == KindList && b.kind == KindList:
		n := min(a.l.Len(), b.l.Len())
		for i := 0; i < n; i++ {
			x, y := a.l.elems[i], b.l.elems[i]
			if equal(x, y) {
				continue
			}
			return compare(op, x, y)
		}
		return compare(op, Int(int64(a.l.Len())), Int(int64(b.l.Len())))
	}
	Raise(TypeError, "'%s' not supported between instances of '%s' and '%s'", op, a.TypeName(), b.TypeName())
	return 0
}

func equal(a, b Value) bool {
	if x, ok := a.asInt(); ok {
		y, ok := b.asInt()
		return ok && x == y
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNone:
		return true
	case KindStr:
		return a.s == b.s
	case KindList:
		if a.l.Len() != b.l.Len() {
			return false
		}
		for i := range a.l.elems {
			if !equal(a.l.elems[i], b.l.elems[i]) {
				return false
			}
		}
		return true
	default:
		panic("runtime: invalid kind")
	}
}

// Lt implements `a < b`.
func Lt(a, b Value) Value { return Bool(compare("<", a, b) < 0) }

// LtE implements `a <= b`.
func LtE(a, b Value) Value { return Bool(compare("<=", a, b) <= 0) }

// Gt implements `a > b`.
func Gt(a, b Value) Value { return Bool(compare(">", a, b) > 0) }

// GtE implements `a >= b`.
func GtE(a, b Value) Value { return Bool(compare(">=", a, b) >= 0) }

// Eq implements `a == b`.
func Eq(a, b Value) Value { return Bool(equal(a, b)) }

// NotEq implements `a != b`.
func NotEq(a, b Value) Value { return Bool(!equal(a, b)) }

// Is implements `a is b`. Lists are identical only when they are the same
// list; the immutable alternatives compare by value.
func Is(a, b Value) Value {
	if a.kind != b.kind {
		return False
	}
	if a.kind == KindList {
		return Bool(a.l == b.l)
	}
	return Bool(equal(a, b))
}

// Contains implements `item in container`.
func Contains(container, item Value) Value {
	switch container.kind {
	case KindList:
		for _, v := range container.l.elems {
			if equal(v, item) {
				return True
			}
		}
		return False
	case KindStr:
		if item.kind != KindStr {
			Raise(TypeError, "'in <string>' requires string as left operand, not %s", item.TypeName())
		}
		return Bool(strings.Contains(container.s, item.s))
	default:
		Raise(TypeError, "argument of type '%s' is not iterable", container.TypeName())
		return None
	}
}

// In implements `item in container`. Operands are taken in source order so
// generated code evaluates them left to right.
func In(item, container Value) Value {
	return Contains(container, item)
}

// Len implements len(v).
func Len(v Value) Value {
	switch v.kind {
	case KindStr:
		return Int(int64(utf8.RuneCountInString(v.s)))
	case KindList:
		return Int(int64(v.l.Len()))
	default:
		Raise(TypeError, "object of type '%s' has no len()", v.TypeName())
		return None
	}
}

func asIndex(v Value) int64 {
	n, ok := v.asInt()
	if !ok {
		Raise(TypeError, "'%s' object cannot be interpreted as an integer", v.TypeName())
	}
	return n
}

// RangeBounds checks range() arguments and returns the first value, the
// step and the number of values the range yields. The i-th value is
// start + i*step, computed with wrapping int64 arithmetic; the true value
// always fits, so the wrap cancels out.
func RangeBounds(args ...Value) (start, step int64, n uint64) {
	var stop int64
	step = 1
	switch len(args) {
	case 0:
		Raise(TypeError, "range expected at least 1 argument, got 0")
	case 1:
		stop = asIndex(args[0])
	case 2:
		start, stop = asIndex(args[0]), asIndex(args[1])
	case 3:
		start, stop, step = asIndex(args[0]), asIndex(args[1]), asIndex(args[2])
	default:
		Raise(TypeError, "range expected at most 3 arguments, got %d", len(args))
	}
	if step == 0 {
		Raise(ValueError, "range() arg 3 must not be zero")
	}
	switch {
	case step > 0 && start < stop:
		n = (uint64(stop)-uint64(start)-1)/uint64(step) + 1
	case step < 0 && start > stop:
		n = (uint64(start)-uint64(stop)-1)/(-uint64(step)) + 1
	}
	return start, step, n
}

// maxPrealloc caps the capacity reserved up front for a materialised range.
const maxPrealloc = 1 << 16

// Range implements range(stop), range(start, stop) and range(start, stop,
// step) used as a value, materialised as a list. for loops over a range
// count with RangeBounds instead.
func Range(args ...Value) Value {
	start, step, n := RangeBounds(args...)
	l := &List{elems: make([]Value, 0, min(n, maxPrealloc))}
	for k := uint64(0); k < n; k++ {
		l.elems = append(l.elems, Int(start+int64(k)*step))
	}
	return ListValue(l)
}

// Iter returns the values a for loop over v visits. A list is snapshotted
// with a single copy of its element slice so the loop body may mutate it.
func Iter(v Value) []Value {
	switch v.kind {
	case KindList:
		return v.l.Values()
	case KindStr:
		out := make([]Value, 0, len(v.s))
		for _, r := range v.s {
			out = append(out, Str(string(r)))
		}
		return out
	default:
		Raise(TypeError, "'%s' object is not iterable", v.TypeName())
		return nil
	}
}

// GetItem implements x[i].
func GetItem(x, i Value) Value {
	switch x.kind {
	case KindList:
		idx, ok := i.asInt()
		if !ok {
			Raise(TypeError, "list indices must be integers or slices, not %s", i.TypeName())
		}
		return x.l.At(idx)
	case KindStr:
		idx, ok := i.asInt()
		if !ok {
			Raise(TypeError, "string indices must be integers, not '%s'", i.TypeName())
		}
		runes := []rune(x.s)
		n := int64(len(runes))
		if idx < 0 {
			idx += n
		}
		if idx < 0 || idx >= n {
			Raise(IndexError, "string index out of range")
		}
		return Str(string(runes[idx]))
	default:
		Raise(TypeError, "'%s' object is not subscriptable", x.TypeName())
		return None
	}
}

// SetItem implements x[i] = v.
func SetItem(x, i, v Value) {
	if x.kind != KindList {
		Raise(TypeError, "'%s' object does not support item assignment", x.TypeName())
	}
	idx, ok := i.asInt()
	if !ok {
		Raise(TypeError, "list indices must be integers or slices, not %s", i.TypeName())
	}
	x.l.Set(idx, v)
}

// Append implements x.append(v).
func Append(x, v Value) Value {
	if x.kind != KindList {
		Raise(AttributeError, "'%s' object has no attribute 'append'", x.TypeName())
	}
	x.l.Append(v)
	return None
}

// Pop implements x.pop() and x.pop(i).
func Pop(x Value, index ...Value) Value {
	if x.kind != KindList {
		Raise(AttributeError, "'%s' object has no attribute 'pop'", x.TypeName())
	}
	switch len(index) {
	case 0:
		return x.l.Pop(-1)
	case 1:
		return x.l.Pop(asIndex(index[0]))
	default:
		Raise(TypeError, "pop expected at most 1 argument, got %d", len(index))
		return None
	}
}

// ToStr implements str() and str(v).
func ToStr(args ...Value) Value {
	switch len(args) {
	case 0:
		return Str("")
	case 1:
		return Str(Render(args[0]))
	default:
		Raise(TypeError, "str expected at most 1 argument, got %d", len(args))
		return None
	}
}
