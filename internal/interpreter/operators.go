package interpreter

import (
	"fmt"
	"strings"

	"anuraglang/internal/frontend/lexer"
)

// MaxSequenceLength bounds the strings and arrays that + and * may build,
// counted in bytes for strings and elements for arrays
const MaxSequenceLength = 1 << 26

// number is an operand promoted for arithmetic. Booleans count as 0 and 1.
type number struct {
	isFloat bool
	i       int64
	f       float64
}

func numeric(v Value) (number, bool) {
	switch v := v.(type) {
	case Int:
		return number{i: int64(v)}, true
	case Bool:
		if v {
			return number{i: 1}, true
		}
		return number{}, true
	case Float:
		return number{isFloat: true, f: float64(v)}, true
	}
	return number{}, false
}

func (n number) float() float64 {
	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

func (n number) equal(m number) bool {
	if n.isFloat || m.isFloat {
		return n.float() == m.float()
	}
	return n.i == m.i
}

func arith(x, y number, ints func(a, b int64) int64, floats func(a, b float64) float64) Value {
	if x.isFloat || y.isFloat {
		return Float(floats(x.float(), y.float()))
	}
	return Int(ints(x.i, y.i))
}

// applyBinary applies a binary operator to two evaluated operands
func applyBinary(op lexer.TOKEN, left, right Value) (Value, error) {
	x, xok := numeric(left)
	y, yok := numeric(right)
	both := xok && yok

	switch op {
	case lexer.PLUS_TOKEN:
		if both {
			return arith(x, y, func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b }), nil
		}
		switch l := left.(type) {
		case String:
			if r, ok := right.(String); ok {
				if err := checkLength(len(l), 1, len(r)); err != nil {
					return nil, err
				}
				return l + r, nil
			}
		case Array:
			if r, ok := right.(Array); ok {
				if err := checkLength(len(l), 1, len(r)); err != nil {
					return nil, err
				}
				out := make(Array, 0, len(l)+len(r))
				return append(append(out, l...), r...), nil
			}
		}

	case lexer.MINUS_TOKEN:
		if both {
			return arith(x, y, func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b }), nil
		}

	case lexer.MUL_TOKEN:
		if both {
			return arith(x, y, func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b }), nil
		}
		if v, ok, err := repeat(left, right); ok {
			return v, err
		}
		if v, ok, err := repeat(right, left); ok {
			return v, err
		}

	case lexer.DIV_TOKEN:
		if both {
			if y.float() == 0 {
				return nil, errDivisionByZero
			}
			return Float(x.float() / y.float()), nil
		}

	case lexer.GREATER_TOKEN, lexer.LESS_TOKEN:
		if !both {
			return nil, typeMismatchf("cannot compare '%s' between %s and %s",
				symbol(op), left.Type(), right.Type())
		}
		if op == lexer.GREATER_TOKEN {
			return Bool(compare(x, y) > 0), nil
		}
		return Bool(compare(x, y) < 0), nil

	case lexer.DOUBLE_EQUAL_TOKEN:
		return Bool(Equal(left, right)), nil

	default:
		return nil, errUnknownOperator
	}

	return nil, typeMismatchf("unsupported operand types for '%s': %s and %s",
		symbol(op), left.Type(), right.Type())
}

func compare(x, y number) int {
	if x.isFloat || y.isFloat {
		a, b := x.float(), y.float()
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	}
	switch {
	case x.i < y.i:
		return -1
	case x.i > y.i:
		return 1
	}
	return 0
}

// repeat handles sequence * count for strings and arrays. ok reports
// whether the operand types matched.
func repeat(seq, count Value) (v Value, ok bool, err error) {
	var n int64
	switch c := count.(type) {
	case Int:
		n = int64(c)
	case Bool:
		if c {
			n = 1
		}
	default:
		return nil, false, nil
	}
	if n < 0 {
		n = 0
	}

	switch s := seq.(type) {
	case String:
		if err := checkLength(len(s), n, 0); err != nil {
			return nil, true, err
		}
		return String(strings.Repeat(string(s), int(n))), true, nil
	case Array:
		if err := checkLength(len(s), n, 0); err != nil {
			return nil, true, err
		}
		out := make(Array, 0, len(s)*int(n))
		for k := int64(0); k < n; k++ {
			out = append(out, s...)
		}
		return out, true, nil
	}
	return nil, false, nil
}

// checkLength fails when size*count+extra would exceed MaxSequenceLength.
// The product is never computed so it cannot overflow.
func checkLength(size int, count int64, extra int) error {
	room := int64(MaxSequenceLength - extra)
	if room < 0 || (size > 0 && count > room/int64(size)) {
		return &RuntimeError{
			Kind:    ResultTooLarge,
			Message: fmt.Sprintf("sequence result exceeds the limit of %d items", MaxSequenceLength),
		}
	}
	return nil
}

// applyUnary negates numbers. Any operator other than MINUS yields None.
func applyUnary(op lexer.TOKEN, operand Value) (Value, error) {
	if op != lexer.MINUS_TOKEN {
		return None, nil
	}
	n, ok := numeric(operand)
	if !ok {
		return nil, typeMismatchf("bad operand type for unary '-': %s", operand.Type())
	}
	if n.isFloat {
		return Float(-n.f), nil
	}
	return Int(-n.i), nil
}

func symbol(op lexer.TOKEN) string {
	switch op {
	case lexer.PLUS_TOKEN:
		return "+"
	case lexer.MINUS_TOKEN:
		return "-"
	case lexer.MUL_TOKEN:
		return "*"
	case lexer.DIV_TOKEN:
		return "/"
	case lexer.GREATER_TOKEN:
		return ">"
	case lexer.LESS_TOKEN:
		return "<"
	case lexer.DOUBLE_EQUAL_TOKEN:
		return "=="
	}
	return string(op)
}
