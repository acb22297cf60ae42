package runtime

// Kwargs carries keyword arguments into a built-in as a name -> value
// mapping. Appending an existing key replaces its value.
type Kwargs struct {
	keys   []string
	values map[string]Value
}

// NewKwargs creates an empty keyword-argument mapping.
func NewKwargs() *Kwargs {
	return &Kwargs{values: make(map[string]Value)}
}

// Append records key=v and returns k so calls can be chained.
func (k *Kwargs) Append(key string, v Value) *Kwargs {
	if _, ok := k.values[key]; !ok {
		k.keys = append(k.keys, key)
	}
	k.values[key] = v
	return k
}

// Lookup returns the value bound to key.
func (k *Kwargs) Lookup(key string) (Value, bool) {
	if k == nil {
		return None, false
	}
	v, ok := k.values[key]
	return v, ok
}

// Len returns the number of distinct keys
func (k *Kwargs) Len() int {
	if k == nil {
		return 0
	}
	return len(k.keys)
}

// Keys returns the keys in first-append order.
func (k *Kwargs) Keys() []string {
	if k == nil {
		return nil
	}
	return append([]string(nil), k.keys...)
}
