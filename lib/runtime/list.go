package runtime

import "math"

// List is an ordered, mutable, heterogeneous sequence of values. A list owns
// its elements: nothing outside the list holds a reference to its storage.
type List struct {
	elems []Value
}

// MakeList creates a list holding elems in order. The slice is copied; the
// values are stored as given.
func MakeList(elems ...Value) *List {
	l := &List{elems: make([]Value, len(elems))}
	copy(l.elems, elems)
	return l
}

// Len returns the number of elements
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.elems)
}

// Append adds v at the tail.
func (l *List) Append(v Value) {
	l.elems = append(l.elems, v)
}

// resolve maps a Python index onto a slice offset. Negative indices count
// from the end; anything outside [-Len, Len-1] is rejected.
func (l *List) resolve(i int64) (int, bool) {
	n := int64(l.Len())
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, false
	}
	return int(i), true
}

// At returns the element at index i, raising IndexError when i is out of range.
func (l *List) At(i int64) Value {
	idx, ok := l.resolve(i)
	if !ok {
		Raise(IndexError, "list index out of range")
	}
	return l.elems[idx]
}

// Set replaces the element at index i, raising IndexError when i is out of range.
func (l *List) Set(i int64, v Value) {
	idx, ok := l.resolve(i)
	if !ok {
		Raise(IndexError, "list assignment index out of range")
	}
	l.elems[idx] = v
}

// Pop removes and returns the element at index i.
func (l *List) Pop(i int64) Value {
	if l.Len() == 0 {
		Raise(IndexError, "pop from empty list")
	}
	idx, ok := l.resolve(i)
	if !ok {
		Raise(IndexError, "pop index out of range")
	}
	v := l.elems[idx]
	l.elems = append(l.elems[:idx], l.elems[idx+1:]...)
	return v
}

// Repeat returns a new list holding n copies of l concatenated in order.
// n <= 0 yields an empty list.
func (l *List) Repeat(n int64) *List {
	if n <= 0 || l.Len() == 0 {
		return &List{}
	}
	if n > int64(math.MaxInt/l.Len()) {
		notSupported("repeating a list of %d items %d times", l.Len(), n)
	}
	out := &List{elems: make([]Value, 0, l.Len()*int(n))}
	for ; n > 0; n-- {
		for _, v := range l.elems {
			out.elems = append(out.elems, v.Copy())
		}
	}
	return out
}

// Concat returns a new list holding the elements of l followed by those of o.
func (l *List) Concat(o *List) *List {
	out := &List{elems: make([]Value, 0, l.Len()+o.Len())}
	for _, v := range l.Values() {
		out.elems = append(out.elems, v.Copy())
	}
	for _, v := range o.Values() {
		out.elems = append(out.elems, v.Copy())
	}
	return out
}

// Copy returns a deep copy of l.
func (l *List) Copy() *List {
	out := &List{elems: make([]Value, l.Len())}
	for i, v := range l.Values() {
		out.elems[i] = v.Copy()
	}
	return out
}

// Values returns the elements as a slice. The slice is fresh; the values in it
// are not copied.
func (l *List) Values() []Value {
	if l == nil {
		return nil
	}
	out := make([]Value, len(l.elems))
	copy(out, l.elems)
	return out
}
