package interpreter

import (
	"math"
	"strconv"
	"strings"
)

// Value is a runtime value. The set of implementations is closed:
// Int, Float, Bool, String, Array and None.
type Value interface {
	// Type names the value's type for error messages
	Type() string
	// String renders the value the way produce prints it
	String() string
	value()
}

// Int is a 64-bit integer
type Int int64

// Float is the result of division
type Float float64

// Bool is the result of comparisons
type Bool bool

// String is a text value
type String string

// Array is a heterogeneous sequence. Arrays are never mutated in place;
// operations that combine arrays build new ones.
type Array []Value

type noneValue struct{}

// None is the "no value" result of calls that do not return and of
// unsupported unary operators
var None Value = noneValue{}

func (Int) value()       {}
func (Float) value()     {}
func (Bool) value()      {}
func (String) value()    {}
func (Array) value()     {}
func (noneValue) value() {}

func (Int) Type() string       { return "integer" }
func (Float) Type() string     { return "real" }
func (Bool) Type() string      { return "boolean" }
func (String) Type() string    { return "string" }
func (Array) Type() string     { return "array" }
func (noneValue) Type() string { return "none" }

func (v Int) String() string { return strconv.FormatInt(int64(v), 10) }

// String renders reals in shortest round-trip form, always with a decimal
// point or exponent: 2.0, 2.5, 1e+16
func (v Float) String() string {
	f := float64(v)
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	if f != 0 {
		exp := math.Floor(math.Log10(math.Abs(f)))
		if exp < -4 || exp >= 16 {
			return strconv.FormatFloat(f, 'e', -1, 64)
		}
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func (v Bool) String() string {
	if v {
		return "true"
	}
	return "false"
}

func (v String) String() string { return string(v) }

func (v Array) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, elem := range v {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(repr(elem))
	}
	b.WriteByte(']')
	return b.String()
}

func (noneValue) String() string { return "none" }

// repr renders a value nested inside an array: strings are quoted
func repr(v Value) string {
	s, ok := v.(String)
	if !ok {
		return v.String()
	}
	quote := "'"
	if strings.Contains(string(s), "'") && !strings.Contains(string(s), `"`) {
		quote = `"`
	}
	r := strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\t", `\t`, "\r", `\r`, quote, `\`+quote)
	return quote + r.Replace(string(s)) + quote
}

// Truthy reports whether a value counts as true in a condition
func Truthy(v Value) bool {
	switch v := v.(type) {
	case Int:
		return v != 0
	case Float:
		return v != 0
	case Bool:
		return bool(v)
	case String:
		return v != ""
	case Array:
		return len(v) > 0
	default:
		return false
	}
}

// Equal is structural equality. Numbers compare by value across integer,
// real and boolean.
func Equal(a, b Value) bool {
	if x, ok := numeric(a); ok {
		y, ok := numeric(b)
		return ok && x.equal(y)
	}

	switch a := a.(type) {
	case String:
		b, ok := b.(String)
		return ok && a == b
	case Array:
		b, ok := b.(Array)
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !Equal(a[i], b[i]) {
				return false
			}
		}
		return true
	case noneValue:
		_, ok := b.(noneValue)
		return ok
	}
	return false
}
