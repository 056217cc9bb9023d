package toon

import "math"

// Kind identifies which case of the JSON value model a [Value] holds.
type Kind int

// The seven cases of the JSON data model TOON encodes.
const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindObject
	KindArray
)

// String returns the name of the kind, for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Value is a tagged variant over the JSON data model: null, bool, integer,
// float, string, ordered object, or array. The zero Value is [Null].
//
// Integers are represented as int64; [Int] takes an int64 directly, so a
// value outside that range cannot be constructed with it and must go
// through [Float] instead. The decoder applies this same rule when a
// number token's integer value overflows int64 but still parses as a
// float (see [go.toonfmt.dev/toon/internal/lex.ParseNumber]).
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	obj  *Object
	arr  []Value
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating-point value. NaN and infinities are accepted by
// the constructor (the codec rejects them, per spec, only at encode time)
// so intermediate computation on a Value graph is not forced to check for
// them eagerly. Negative zero is preserved until [Encode] normalizes it.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array returns an array value wrapping items, in order. The slice is
// retained, not copied; callers should not mutate it afterward.
func Array(items []Value) Value {
	if items == nil {
		items = []Value{}
	}

	return Value{kind: KindArray, arr: items}
}

// NewObject returns an empty object value ready for [Value.Set].
func NewObject() Value {
	return Value{kind: KindObject, obj: newObject()}
}

// Kind reports which case of the data model v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsPrimitive reports whether v is null, bool, int, float, or string --
// i.e. not an Object or Array.
func (v Value) IsPrimitive() bool {
	return v.kind != KindObject && v.kind != KindArray
}

// Bool returns v's boolean payload. Only meaningful when Kind() == KindBool.
func (v Value) Bool() bool { return v.b }

// Int returns v's integer payload. Only meaningful when Kind() == KindInt.
func (v Value) Int() int64 { return v.i }

// Float returns v's float payload. Only meaningful when Kind() == KindFloat.
func (v Value) Float() float64 { return v.f }

// Text returns v's string payload. Only meaningful when Kind() == KindString.
func (v Value) Text() string { return v.s }

// Object returns v's ordered object, or nil if Kind() != KindObject.
func (v Value) Object() *Object { return v.obj }

// Items returns v's array elements, or nil if Kind() != KindArray.
func (v Value) Items() []Value { return v.arr }

// Set inserts or overwrites (key, val) in v's object and returns v for
// chaining. Panics if v is not an Object (construct with [NewObject] first).
func (v Value) Set(key string, val Value) Value {
	if v.kind != KindObject {
		panic("toon: Set called on non-object Value")
	}

	v.obj.set(key, val)

	return v
}

// Object is an ordered string-keyed map from keys to [Value]s, iterating in
// insertion order. The zero Object is not usable; create one via
// [NewObject]'s Value or [NewOrderedObject].
type Object struct {
	keys []string
	vals map[string]Value
}

func newObject() *Object {
	return &Object{vals: make(map[string]Value)}
}

// NewOrderedObject creates an empty [Object] directly, for callers building
// a tree without going through [Value.Set].
func NewOrderedObject() *Object { return newObject() }

// ObjectValue wraps an [Object] built via [NewOrderedObject] as a [Value],
// for callers (such as toonyaml) that assemble an object's entries directly
// rather than chaining [Value.Set].
func ObjectValue(obj *Object) Value { return Value{kind: KindObject, obj: obj} }

// Set inserts or overwrites (key, val), preserving first-insertion order for
// new keys and leaving existing order untouched for updates.
func (o *Object) set(key string, val Value) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}

	o.vals[key] = val
}

// Set is the exported form of set, for building an [Object] obtained via
// [NewOrderedObject] directly.
func (o *Object) Set(key string, val Value) { o.set(key, val) }

// Get returns the value bound to key and whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.vals[key]

	return v, ok
}

// Len returns the number of entries in o.
func (o *Object) Len() int { return len(o.keys) }

// Keys returns o's keys in insertion order. The returned slice must not be
// mutated.
func (o *Object) Keys() []string { return o.keys }

// Range calls fn for each (key, value) pair in insertion order, stopping
// early if fn returns false.
func (o *Object) Range(fn func(key string, val Value) bool) {
	for _, k := range o.keys {
		if !fn(k, o.vals[k]) {
			return
		}
	}
}

// Equal reports whether v and other represent the same JSON value, treating
// -0.0 and 0.0 as equal and never equal to NaN (structural equality, per
// spec.md's "Equality is structural; float equality uses bit comparison
// after normalizing -0.0 to 0.0 and rejecting NaN").
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindFloat:
		if math.IsNaN(v.f) || math.IsNaN(other.f) {
			return false
		}

		return normalizeZero(v.f) == normalizeZero(other.f)
	case KindString:
		return v.s == other.s
	case KindObject:
		return v.obj.equal(other.obj)
	case KindArray:
		return equalArrays(v.arr, other.arr)
	default:
		return false
	}
}

func (o *Object) equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}

	for i, k := range o.keys {
		if other.keys[i] != k {
			return false
		}

		ov, _ := o.Get(k)
		v2, ok := other.Get(k)

		if !ok || !ov.Equal(v2) {
			return false
		}
	}

	return true
}

func equalArrays(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}

	return true
}

// normalizeZero maps -0.0 to 0.0 and leaves every other float unchanged.
func normalizeZero(f float64) float64 {
	if f == 0 {
		return 0
	}

	return f
}
