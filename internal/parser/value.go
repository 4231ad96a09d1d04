package parser

import (
	"fmt"
	"math"
	"strconv"
)

type ValueType uint

const (
	ValueNilType ValueType = iota
	ValueBoolType
	ValueFloatType
	ValueStringType
)

// String implements fmt.Stringer.
func (t ValueType) String() string {
	switch t {
	case ValueNilType:
		return "nil"
	case ValueBoolType:
		return "bool"
	case ValueFloatType:
		return "number"
	case ValueStringType:
		return "string"
	}
	return fmt.Sprintf("ValueType(%d)", uint(t))
}

// Value is a runtime value: nil, boolean, number or string.
//
// The set is closed, only this package can add a kind. All kinds are
// comparable, so Go == on two Values is the language's equality.
type Value interface {
	Type() ValueType
	String() string
	value()
}

type (
	ValueNil    struct{}
	ValueBool   bool
	ValueFloat  float64
	ValueString string
)

var (
	NilValue         = ValueNil{}
	TrueValue        = ValueBool(true)
	FalseValue       = ValueBool(false)
	EmptyStringValue = ValueString("")
)

// ValueOf converts a scanned literal into a Value.
func ValueOf(literal any) (Value, bool) {
	switch v := literal.(type) {
	case nil:
		return NilValue, true
	case bool:
		return ValueBool(v), true
	case float64:
		return ValueFloat(v), true
	case string:
		return ValueString(v), true
	case Value:
		return v, true
	}
	return nil, false
}

// Type implements Value.
func (v ValueNil) Type() ValueType {
	return ValueNilType
}

// String implements fmt.Stringer.
func (v ValueNil) String() string {
	return "nil"
}

// GoString implements fmt.GoStringer.
func (v ValueNil) GoString() string {
	return v.String()
}

func (ValueNil) value() {}

// Type implements Value.
func (v ValueBool) Type() ValueType {
	return ValueBoolType
}

// String implements fmt.Stringer.
func (v ValueBool) String() string {
	return strconv.FormatBool(bool(v))
}

// GoString implements fmt.GoStringer.
func (v ValueBool) GoString() string {
	return v.String()
}

func (ValueBool) value() {}

// Type implements Value.
func (v ValueFloat) Type() ValueType {
	return ValueFloatType
}

// String implements fmt.Stringer.
// Integral numbers print without a fractional part.
func (v ValueFloat) String() string {
	f := float64(v)
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// GoString implements fmt.GoStringer.
func (v ValueFloat) GoString() string {
	return v.String()
}

func (ValueFloat) value() {}

// Type implements Value.
func (v ValueString) Type() ValueType {
	return ValueStringType
}

// String implements fmt.Stringer.
func (v ValueString) String() string {
	return string(v)
}

// GoString implements fmt.GoStringer.
func (v ValueString) GoString() string {
	return strconv.Quote(string(v))
}

func (ValueString) value() {}

var (
	_ Value = ValueNil{}
	_ Value = ValueBool(false)
	_ Value = ValueFloat(0)
	_ Value = ValueString("")

	_ fmt.GoStringer = ValueNil{}
	_ fmt.GoStringer = ValueBool(false)
	_ fmt.GoStringer = ValueFloat(0)
	_ fmt.GoStringer = ValueString("")
)
