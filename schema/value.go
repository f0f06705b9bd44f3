package schema

import (
	"math"
	"strconv"
)

// ValueKind tags the payload held by a Value.
type ValueKind string

// All value kinds produced by the typed value conversion.
const (
	NullKind   ValueKind = "null"
	BoolKind   ValueKind = "bool"
	IntKind    ValueKind = "int"
	FloatKind  ValueKind = "float"
	StringKind ValueKind = "string"
)

// Value is a tagged scalar read from a free-form dump field.
// Only the payload matching Kind is meaningful.
type Value struct {
	Kind  ValueKind `json:"kind" yaml:"kind"`
	Bool  bool      `json:"bool,omitempty" yaml:"bool,omitempty"`
	Int   int64     `json:"int,omitempty" yaml:"int,omitempty"`
	Float float64   `json:"float,omitempty" yaml:"float,omitempty"`
	Str   string    `json:"str,omitempty" yaml:"str,omitempty"`
}

// NullValue returns the empty value.
func NullValue() Value { return Value{Kind: NullKind} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{Kind: BoolKind, Bool: b} }

// IntValue wraps an integer.
func IntValue(i int64) Value { return Value{Kind: IntKind, Int: i} }

// FloatValue wraps a float. Non-finite input is stored as its string spelling
// so that every Value stays serializable.
func FloatValue(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return StringValue(strconv.FormatFloat(f, 'g', -1, 64))
	}
	return Value{Kind: FloatKind, Float: f}
}

// StringValue wraps a string.
func StringValue(s string) Value { return Value{Kind: StringKind, Str: s} }

// IsNull reports whether the value carries nothing.
func (v Value) IsNull() bool {
	return v.Kind == NullKind || v.Kind == ""
}

// AsFloat returns the numeric payload of int and float values.
func (v Value) AsFloat() (float64, bool) {
	switch v.Kind {
	case IntKind:
		return float64(v.Int), true
	case FloatKind:
		return v.Float, true
	case NullKind, BoolKind, StringKind:
		return 0, false
	default:
		return 0, false
	}
}

// AsInt returns the payload of int values and of floats without a fractional part.
func (v Value) AsInt() (int64, bool) {
	switch v.Kind {
	case IntKind:
		return v.Int, true
	case FloatKind:
		if v.Float == math.Trunc(v.Float) {
			return int64(v.Float), true
		}
		return 0, false
	case NullKind, BoolKind, StringKind:
		return 0, false
	default:
		return 0, false
	}
}

// AsBool returns the payload of bool values.
func (v Value) AsBool() (bool, bool) {
	if v.Kind == BoolKind {
		return v.Bool, true
	}
	return false, false
}

// String renders the value the way it would appear in a dump.
func (v Value) String() string {
	switch v.Kind {
	case BoolKind:
		if v.Bool {
			return "YES"
		}
		return "NO"
	case IntKind:
		return strconv.FormatInt(v.Int, 10)
	case FloatKind:
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	case StringKind:
		return v.Str
	case NullKind:
		return ""
	default:
		return ""
	}
}
