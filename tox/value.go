package tox

import (
	"fmt"
	"math"
	"strconv"
)

type ValueKind int

const (
	KindNil ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindCallable
)

// String returns the kind name used in runtime error messages.
func (k ValueKind) String() string {
	switch k {
	case KindNil:
		return "Nil"
	case KindBool:
		return "Boolean"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindCallable:
		return "Callable"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is the runtime representation of every tox value.
type Value struct {
	kind ValueKind
	data any
}

// Callable is an invocable value: a native builtin or a user function
// closing over its declaring frame.
type Callable struct {
	Name  string
	Arity int
	Call  func(args []Value) (Value, error)
}

func NewNil() Value                 { return Value{kind: KindNil} }
func NewBool(b bool) Value          { return Value{kind: KindBool, data: b} }
func NewNumber(f float64) Value     { return Value{kind: KindNumber, data: f} }
func NewString(s string) Value      { return Value{kind: KindString, data: s} }
func NewCallable(c *Callable) Value { return Value{kind: KindCallable, data: c} }

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsNil() bool { return v.kind == KindNil }

func (v Value) Bool() bool {
	if v.kind == KindBool {
		return v.data.(bool)
	}
	return false
}

func (v Value) Number() float64 {
	if v.kind == KindNumber {
		return v.data.(float64)
	}
	return 0
}

// Text returns the raw string payload, without the quotes String adds for
// display.
func (v Value) Text() string {
	if v.kind == KindString {
		return v.data.(string)
	}
	return ""
}

func (v Value) Callable() *Callable {
	if v.kind != KindCallable {
		return nil
	}
	return v.data.(*Callable)
}

// String renders the value the way print does: numbers in shortest decimal
// form, strings with their surrounding quotes, callables as <fn name>/arity.
func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.data.(bool) {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.data.(float64))
	case KindString:
		return "\"" + v.data.(string) + "\""
	case KindCallable:
		c := v.data.(*Callable)
		return fmt.Sprintf("<fn %s>/%d", c.Name, c.Arity)
	default:
		return fmt.Sprintf("<%v>", v.kind)
	}
}

// Truthy applies the coercion rule used by conditionals and the logical
// operators: nil and false are falsy, a Number is falsy only at exactly 0,
// a String only when empty, everything else is truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNil:
		return false
	case KindBool:
		return v.data.(bool)
	case KindNumber:
		return v.data.(float64) != 0
	case KindString:
		return v.data.(string) != ""
	default:
		return true
	}
}

// Equal implements the == operator. Values of different kinds are never
// equal; callables compare by name and arity.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return v.data.(bool) == other.data.(bool)
	case KindNumber:
		return v.data.(float64) == other.data.(float64)
	case KindString:
		return v.data.(string) == other.data.(string)
	case KindCallable:
		a, b := v.data.(*Callable), other.data.(*Callable)
		return a.Name == b.Name && a.Arity == b.Arity
	default:
		return v.data == other.data
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
