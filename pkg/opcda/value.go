package opcda

import (
	"fmt"
	"time"
)

// Type identifies the native representation of a Value. The numeric values
// match the type tags used across the native call boundary.
type Type uint16

const (
	TypeEmpty    Type = 0
	TypeInt16    Type = 2
	TypeInt32    Type = 3
	TypeFloat32  Type = 4
	TypeFloat64  Type = 5
	TypeCurrency Type = 6
	TypeDate     Type = 7
	// TypeString is an explicit-length wide string (BSTR-style). It is the
	// canonical tag for string Values built in Go.
	TypeString  Type = 8
	TypeBool    Type = 11
	TypeDecimal Type = 14
	TypeInt8    Type = 16
	TypeUInt8   Type = 17
	TypeUInt16  Type = 18
	TypeUInt32  Type = 19
	TypeInt64   Type = 20
	TypeUInt64  Type = 21
	// TypeInt and TypeUInt are the platform-width integer tags; on the wire
	// they are 32 bits wide.
	TypeInt  Type = 22
	TypeUInt Type = 23
	// TypeANSIString is a NUL-terminated single-byte string.
	TypeANSIString Type = 30
	// TypeWideString is a NUL-terminated wide string.
	TypeWideString Type = 31

	// TypeArray marks a homogeneous safe array of the base tag.
	TypeArray Type = 0x2000
	// TypeByRef marks one extra level of pointer indirection.
	TypeByRef Type = 0x4000
)

// IsArray reports whether t carries the array modifier.
func (t Type) IsArray() bool { return t&TypeArray != 0 }

// IsByRef reports whether t carries the by-reference modifier.
func (t Type) IsByRef() bool { return t&TypeByRef != 0 }

// Elem returns the base tag with both modifiers stripped.
func (t Type) Elem() Type { return t &^ (TypeArray | TypeByRef) }

func (t Type) name() string {
	if t.IsArray() {
		return t.Elem().name() + "Array"
	}
	switch t.Elem() {
	case TypeInt8:
		return "Int8"
	case TypeUInt8:
		return "UInt8"
	case TypeInt16:
		return "Int16"
	case TypeUInt16:
		return "UInt16"
	case TypeInt32:
		return "Int32"
	case TypeUInt32:
		return "UInt32"
	case TypeInt64:
		return "Int64"
	case TypeUInt64:
		return "UInt64"
	case TypeInt:
		return "Int"
	case TypeUInt:
		return "UInt"
	case TypeFloat32:
		return "Float32"
	case TypeFloat64:
		return "Float64"
	case TypeBool:
		return "Bool"
	case TypeCurrency:
		return "Currency"
	case TypeDecimal:
		return "Decimal"
	case TypeDate:
		return "Date"
	case TypeString, TypeWideString, TypeANSIString:
		return "String"
	default:
		return fmt.Sprintf("Type(0x%04x)", uint16(t))
	}
}

func (t Type) String() string { return t.name() }

// Currency is a fixed-point monetary value: the native 64-bit integer is
// implicitly scaled by 10,000.
type Currency int64

// Float64 returns the currency as a floating-point number of whole units.
func (c Currency) Float64() float64 { return float64(c) / 10000 }

func (c Currency) String() string { return fmt.Sprintf("%.4f", c.Float64()) }

// dateEpoch is the zero point of the native date representation.
var dateEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Date is an epoch-relative day count, with fractional days for the time of
// day.
type Date float64

// Time converts the date to a time.Time in UTC.
func (d Date) Time() time.Time {
	return dateEpoch.Add(time.Duration(float64(d) * 24 * float64(time.Hour)))
}

// Value is a closed tagged union over the data-point kinds the native
// library can deliver. The constructors and the codec are the only ways to
// build one, so the tag and the payload can never disagree; the zero Value
// has TypeEmpty and no payload.
type Value struct {
	vt Type
	v  any
}

// Type returns the native type tag of the value. Array values carry the
// TypeArray modifier combined with their element tag.
func (v Value) Type() Type { return v.vt }

// TypeName returns a human-readable name for the value's kind.
func (v Value) TypeName() string { return v.vt.name() }

// Go returns the raw Go payload: a scalar for scalar kinds, a typed slice
// ([]int16, []string, ...) for arrays.
func (v Value) Go() any { return v.v }

func (v Value) String() string { return fmt.Sprintf("%s(%v)", v.TypeName(), v.v) }

func Int8Value(v int8) Value       { return Value{vt: TypeInt8, v: v} }
func UInt8Value(v uint8) Value     { return Value{vt: TypeUInt8, v: v} }
func Int16Value(v int16) Value     { return Value{vt: TypeInt16, v: v} }
func UInt16Value(v uint16) Value   { return Value{vt: TypeUInt16, v: v} }
func Int32Value(v int32) Value     { return Value{vt: TypeInt32, v: v} }
func UInt32Value(v uint32) Value   { return Value{vt: TypeUInt32, v: v} }
func Int64Value(v int64) Value     { return Value{vt: TypeInt64, v: v} }
func UInt64Value(v uint64) Value   { return Value{vt: TypeUInt64, v: v} }
func IntValue(v int) Value         { return Value{vt: TypeInt, v: v} }
func UIntValue(v uint) Value       { return Value{vt: TypeUInt, v: v} }
func Float32Value(v float32) Value { return Value{vt: TypeFloat32, v: v} }
func Float64Value(v float64) Value { return Value{vt: TypeFloat64, v: v} }
func BoolValue(v bool) Value       { return Value{vt: TypeBool, v: v} }

// CurrencyValue wraps a fixed-point currency amount.
func CurrencyValue(v Currency) Value { return Value{vt: TypeCurrency, v: v} }

// DateValue wraps an epoch-relative day count.
func DateValue(v Date) Value { return Value{vt: TypeDate, v: v} }

// StringValue wraps a UTF-8 string; it encodes as an explicit-length wide
// string on the write path.
func StringValue(v string) Value { return Value{vt: TypeString, v: v} }

func (v Value) Int8() (int8, error) {
	if n, ok := v.v.(int8); ok {
		return n, nil
	}
	return 0, typeMismatch("Int8", v.TypeName())
}

func (v Value) UInt8() (uint8, error) {
	if n, ok := v.v.(uint8); ok {
		return n, nil
	}
	return 0, typeMismatch("UInt8", v.TypeName())
}

func (v Value) Int16() (int16, error) {
	if n, ok := v.v.(int16); ok {
		return n, nil
	}
	return 0, typeMismatch("Int16", v.TypeName())
}

func (v Value) UInt16() (uint16, error) {
	if n, ok := v.v.(uint16); ok {
		return n, nil
	}
	return 0, typeMismatch("UInt16", v.TypeName())
}

func (v Value) Int32() (int32, error) {
	if n, ok := v.v.(int32); ok {
		return n, nil
	}
	return 0, typeMismatch("Int32", v.TypeName())
}

func (v Value) UInt32() (uint32, error) {
	if n, ok := v.v.(uint32); ok {
		return n, nil
	}
	return 0, typeMismatch("UInt32", v.TypeName())
}

func (v Value) Int64() (int64, error) {
	if n, ok := v.v.(int64); ok {
		return n, nil
	}
	return 0, typeMismatch("Int64", v.TypeName())
}

func (v Value) UInt64() (uint64, error) {
	if n, ok := v.v.(uint64); ok {
		return n, nil
	}
	return 0, typeMismatch("UInt64", v.TypeName())
}

func (v Value) Int() (int, error) {
	if n, ok := v.v.(int); ok {
		return n, nil
	}
	return 0, typeMismatch("Int", v.TypeName())
}

func (v Value) UInt() (uint, error) {
	if n, ok := v.v.(uint); ok {
		return n, nil
	}
	return 0, typeMismatch("UInt", v.TypeName())
}

func (v Value) Float32() (float32, error) {
	if n, ok := v.v.(float32); ok {
		return n, nil
	}
	return 0, typeMismatch("Float32", v.TypeName())
}

func (v Value) Float64() (float64, error) {
	if n, ok := v.v.(float64); ok {
		return n, nil
	}
	return 0, typeMismatch("Float64", v.TypeName())
}

func (v Value) Bool() (bool, error) {
	if n, ok := v.v.(bool); ok {
		return n, nil
	}
	return false, typeMismatch("Bool", v.TypeName())
}

func (v Value) Currency() (Currency, error) {
	if n, ok := v.v.(Currency); ok {
		return n, nil
	}
	return 0, typeMismatch("Currency", v.TypeName())
}

func (v Value) Date() (Date, error) {
	if n, ok := v.v.(Date); ok {
		return n, nil
	}
	return 0, typeMismatch("Date", v.TypeName())
}

// Decimal returns the decimal string rendering of a TypeDecimal value.
func (v Value) Decimal() (string, error) {
	if v.vt == TypeDecimal {
		return v.v.(string), nil
	}
	return "", typeMismatch("Decimal", v.TypeName())
}

// Str returns the payload of any of the three string kinds.
func (v Value) Str() (string, error) {
	switch v.vt {
	case TypeString, TypeWideString, TypeANSIString:
		return v.v.(string), nil
	}
	return "", typeMismatch("String", v.TypeName())
}

// Strings returns the payload of a string array.
func (v Value) Strings() ([]string, error) {
	if v.vt.IsArray() {
		if s, ok := v.v.([]string); ok && v.vt.Elem() != TypeDecimal {
			return s, nil
		}
	}
	return nil, typeMismatch("StringArray", v.TypeName())
}
