package predicate

import (
	"strconv"
	"strings"
)

// Kind identifies the type of a predicate value.
type Kind int

const (
	KindInteger Kind = iota
	KindFloat
	KindText
	KindBool
	KindNull
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Value is a typed literal produced by the parser or by type coercion.
// It is immutable once constructed.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
}

// Int constructs an integer value.
func Int(v int64) Value { return Value{kind: KindInteger, i: v} }

// Float constructs a float value.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// Text constructs a text value.
func Text(v string) Value { return Value{kind: KindText, s: v} }

// Bool constructs a boolean value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Null constructs the null value.
func Null() Value { return Value{kind: KindNull} }

// Kind returns the kind tag of the value.
func (v Value) Kind() Kind { return v.kind }

// Int returns the integer payload. Only meaningful for KindInteger.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload. Only meaningful for KindFloat.
func (v Value) Float() float64 { return v.f }

// Text returns the text payload. Only meaningful for KindText.
func (v Value) Text() string { return v.s }

// Bool returns the boolean payload. Only meaningful for KindBool.
func (v Value) Bool() bool { return v.b }

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInteger:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindText:
		return v.s == o.s
	case KindBool:
		return v.b == o.b
	case KindNull:
		return true
	default:
		return false
	}
}

// String returns the canonical textual form of the value. The result is
// re-parseable as the value part of a predicate: text is single-quoted with
// quotes and backslashes escaped, floats always carry a decimal point.
func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		s := strconv.FormatFloat(v.f, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	case KindText:
		escaped := strings.ReplaceAll(v.s, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, `'`, `\'`)
		return "'" + escaped + "'"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindNull:
		return "null"
	default:
		return ""
	}
}

// raw returns the unquoted textual rendering used for structural equality
// between values of incompatible kinds.
func (v Value) raw() string {
	if v.kind == KindText {
		return v.s
	}
	return v.String()
}

// asFloat returns the numeric payload as float64 for numeric kinds.
func (v Value) asFloat() (float64, bool) {
	switch v.kind {
	case KindInteger:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// Compare compares two values of compatible kinds and returns -1, 0 or +1.
// The second result is false when the kinds have no defined ordering.
func (v Value) Compare(o Value) (int, bool) {
	return compareOrder(v, o)
}

// compareOrder compares two values of compatible kinds and returns
// -1, 0 or +1. The second result is false when the kinds have no defined
// ordering (bool, null, or mismatched kinds).
func compareOrder(a, b Value) (int, bool) {
	if a.kind == KindInteger && b.kind == KindInteger {
		switch {
		case a.i < b.i:
			return -1, true
		case a.i > b.i:
			return 1, true
		default:
			return 0, true
		}
	}

	if af, ok := a.asFloat(); ok {
		if bf, ok := b.asFloat(); ok {
			switch {
			case af < bf:
				return -1, true
			case af > bf:
				return 1, true
			default:
				return 0, true
			}
		}
	}

	if a.kind == KindText && b.kind == KindText {
		switch {
		case a.s < b.s:
			return -1, true
		case a.s > b.s:
			return 1, true
		default:
			return 0, true
		}
	}

	return 0, false
}
