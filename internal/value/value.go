// Package value implements the TOON data model: a tagged union of Null,
// Bool, Integer, Float, String, Array and Object, where Object preserves
// the insertion order of its fields.
//
// The encoder and decoder operate exclusively on this model; neither
// package knows about JSON, reflection, or any other host representation.
package value

import "fmt"

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

// String renders the kind name, mostly useful in error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a single node of the TOON value tree. The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Value
	obj  Object
}

// Null returns the Null value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int wraps an integer.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float wraps a floating-point number.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array wraps an ordered sequence of values. The slice is retained, not
// copied; callers should not mutate it afterwards.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, arr: items}
}

// ArrayFromSlice wraps an existing slice as an Array value without copying.
func ArrayFromSlice(items []Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, arr: items}
}

// FromObject wraps an Object.
func FromObject(o Object) Value { return Value{kind: KindObject, obj: o} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsScalar reports whether v is one of Null, Bool, Int, Float or String.
func (v Value) IsScalar() bool {
	switch v.kind {
	case KindNull, KindBool, KindInt, KindFloat, KindString:
		return true
	default:
		return false
	}
}

// Bool returns the boolean payload. Only meaningful when Kind() == KindBool.
func (v Value) Bool() bool { return v.b }

// Int returns the integer payload. Only meaningful when Kind() == KindInt.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload. Only meaningful when Kind() == KindFloat.
func (v Value) Float() float64 { return v.f }

// Str returns the string payload. Only meaningful when Kind() == KindString.
func (v Value) Str() string { return v.s }

// ArraySlice returns the underlying element slice. Only meaningful when
// Kind() == KindArray. The caller must not mutate the returned slice.
func (v Value) ArraySlice() []Value { return v.arr }

// Obj returns the underlying Object. Only meaningful when Kind() == KindObject.
func (v Value) Obj() Object { return v.obj }

// Field is a single key/value pair within an Object, in encounter order.
type Field struct {
	Key   string
	Value Value
}

// Object is an insertion-ordered string-to-Value mapping.
type Object struct {
	fields []Field
	index  map[string]int
}

// NewObject builds an Object from the given fields, preserving their order.
// A later field with a key already present overwrites the earlier one in
// place, matching the decoder's non-strict duplicate-key behavior.
func NewObject(fields ...Field) Object {
	o := Object{}
	for _, f := range fields {
		o.Set(f.Key, f.Value)
	}
	return o
}

// IsEmpty reports whether the object has no fields.
func (o Object) IsEmpty() bool { return len(o.fields) == 0 }

// Len reports the number of fields.
func (o Object) Len() int { return len(o.fields) }

// Fields returns the fields in insertion order. The caller must not mutate
// the returned slice.
func (o Object) Fields() []Field { return o.fields }

// Keys returns the field keys in insertion order.
func (o Object) Keys() []string {
	keys := make([]string, len(o.fields))
	for i, f := range o.fields {
		keys[i] = f.Key
	}
	return keys
}

// Get looks up the value for key.
func (o Object) Get(key string) (Value, bool) {
	if o.index == nil {
		return Value{}, false
	}
	idx, ok := o.index[key]
	if !ok {
		return Value{}, false
	}
	return o.fields[idx].Value, true
}

// Has reports whether key is present.
func (o Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Set inserts or overwrites key with val, preserving the position of an
// existing key and appending new keys at the end.
func (o *Object) Set(key string, val Value) {
	if o.index == nil {
		o.index = make(map[string]int)
	}
	if idx, ok := o.index[key]; ok {
		o.fields[idx].Value = val
		return
	}
	o.index[key] = len(o.fields)
	o.fields = append(o.fields, Field{Key: key, Value: val})
}
