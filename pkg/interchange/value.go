// Package interchange converts between the typed AST and a neutral
// value form built from ordered objects, lists, and scalars. The value
// form survives serialization to ordered formats (YAML, canonical JSON)
// and decodes back to an AST equal to the original.
package interchange

// Value is one of *Object, List, string, int64, float64, bool, or nil.
type Value any

// List is an ordered sequence of values.
type List []Value

// Object is a string-keyed map that remembers insertion order. Key
// order is significant: encoders emit fields in declaration order and
// serializers must preserve it.
type Object struct {
	keys []string
	vals map[string]Value
}

// NewObject returns an empty ordered object.
func NewObject() *Object {
	return &Object{vals: make(map[string]Value)}
}

// Set stores key=v, appending the key on first use. Setting an existing
// key overwrites the value in place without changing its position.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Keys returns the keys in insertion order. The slice is shared; do not
// modify it.
func (o *Object) Keys() []string {
	return o.keys
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return len(o.keys)
}
