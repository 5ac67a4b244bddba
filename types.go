package toon

import "github.com/ondatra-labs/toon/internal/value"

// Kind identifies which variant a Value holds.
type Kind = value.Kind

// The Kind constants, re-exported from internal/value.
const (
	KindNull   = value.KindNull
	KindBool   = value.KindBool
	KindInt    = value.KindInt
	KindFloat  = value.KindFloat
	KindString = value.KindString
	KindArray  = value.KindArray
	KindObject = value.KindObject
)

// Value is a single node of the TOON value tree: Null, Bool, Int, Float,
// String, Array, or Object. The zero Value is Null.
type Value = value.Value

// Field is a single key/value pair within an Object, in encounter order.
type Field = value.Field

// Object is an insertion-ordered string-to-Value mapping.
type Object = value.Object

// Null returns the Null value.
func Null() Value { return value.Null() }

// Bool wraps a boolean.
func Bool(b bool) Value { return value.Bool(b) }

// Int wraps an integer.
func Int(i int64) Value { return value.Int(i) }

// Float wraps a floating-point number.
func Float(f float64) Value { return value.Float(f) }

// String wraps a string.
func String(s string) Value { return value.String(s) }

// Array wraps an ordered sequence of values. The slice is retained, not
// copied; callers should not mutate it afterwards.
func Array(items ...Value) Value { return value.Array(items...) }

// ArrayFromSlice wraps an existing slice as an Array value without copying.
func ArrayFromSlice(items []Value) Value { return value.ArrayFromSlice(items) }

// FromObject wraps an Object as a Value.
func FromObject(o Object) Value { return value.FromObject(o) }

// NewObject builds an Object from the given fields, preserving their order.
func NewObject(fields ...Field) Object { return value.NewObject(fields...) }
