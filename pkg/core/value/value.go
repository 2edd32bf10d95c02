package value

import (
	"strconv"
)

// Type represents the tag in the Value tagged union.
type Type uint8

const (
	TypeVoid Type = iota
	TypeInt
	TypeBool
)

func (t Type) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	}
	return "void"
}

// Value is a tagged union. Data holds the int64 bits for TypeInt and 0 or 1
// for TypeBool.
type Value struct {
	Type Type
	Data uint64
}

// IntValue wraps an int64.
func IntValue(i int64) Value {
	return Value{Type: TypeInt, Data: uint64(i)}
}

// BoolValue wraps a bool.
func BoolValue(b bool) Value {
	if b {
		return Value{Type: TypeBool, Data: 1}
	}
	return Value{Type: TypeBool}
}

// Int returns the value as int64.
func (v Value) Int() int64 {
	return int64(v.Data)
}

// Bool reports whether the value is non-zero.
func (v Value) Bool() bool {
	return v.Data != 0
}

// Format returns a string representation of the value.
func (v Value) Format() string {
	switch v.Type {
	case TypeInt:
		return strconv.FormatInt(int64(v.Data), 10)
	case TypeBool:
		return strconv.FormatBool(v.Data != 0)
	default:
		return "void"
	}
}
