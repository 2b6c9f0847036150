package opcda

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValueConstructorsCarryTheirTag(t *testing.T) {
	tests := []struct {
		v    Value
		want Type
	}{
		{Int8Value(-1), TypeInt8},
		{UInt8Value(1), TypeUInt8},
		{Int16Value(-2), TypeInt16},
		{UInt16Value(2), TypeUInt16},
		{Int32Value(-3), TypeInt32},
		{UInt32Value(3), TypeUInt32},
		{Int64Value(-4), TypeInt64},
		{UInt64Value(4), TypeUInt64},
		{IntValue(-5), TypeInt},
		{UIntValue(5), TypeUInt},
		{Float32Value(1.5), TypeFloat32},
		{Float64Value(2.5), TypeFloat64},
		{BoolValue(true), TypeBool},
		{CurrencyValue(10000), TypeCurrency},
		{DateValue(1), TypeDate},
		{StringValue("x"), TypeString},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.v.Type(), "constructor for %s", tt.want)
	}
}

func TestValueAccessorsRejectWrongKind(t *testing.T) {
	v := Int32Value(7)

	n, err := v.Int32()
	require.NoError(t, err)
	require.Equal(t, int32(7), n)

	_, err = v.Int64()
	require.ErrorIs(t, err, ErrValueConversion)
	require.ErrorContains(t, err, "expected Int64, got Int32")

	_, err = v.Str()
	require.ErrorIs(t, err, ErrValueConversion)

	_, err = v.Bool()
	require.ErrorIs(t, err, ErrValueConversion)
}

func TestValueZeroValueIsEmpty(t *testing.T) {
	var v Value
	require.Equal(t, TypeEmpty, v.Type())
	require.Nil(t, v.Go())

	_, err := v.Int32()
	require.Error(t, err)
}

func TestValueStrCoversAllStringKinds(t *testing.T) {
	for _, vt := range []Type{TypeString, TypeWideString, TypeANSIString} {
		v := Value{vt: vt, v: "hello"}
		s, err := v.Str()
		require.NoError(t, err)
		require.Equal(t, "hello", s)
		require.Equal(t, "String", v.TypeName())
	}
}

func TestValueStringsRejectsDecimalArrays(t *testing.T) {
	// Decimal arrays are carried as []string but are not string arrays.
	v := arrayValue(TypeDecimal, []string{"1.5"})
	_, err := v.Strings()
	require.ErrorIs(t, err, ErrValueConversion)

	v = arrayValue(TypeString, []string{"a", "b"})
	got, err := v.Strings()
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, got)
}

func TestTypeModifiers(t *testing.T) {
	vt := TypeArray | TypeInt16
	require.True(t, vt.IsArray())
	require.False(t, vt.IsByRef())
	require.Equal(t, TypeInt16, vt.Elem())
	require.Equal(t, "Int16Array", vt.String())

	vt = TypeByRef | TypeFloat64
	require.True(t, vt.IsByRef())
	require.Equal(t, TypeFloat64, vt.Elem())

	require.Equal(t, "Type(0x03e7)", Type(999).String())
}

func TestCurrencyScaling(t *testing.T) {
	require.Equal(t, 1.2345, Currency(12345).Float64())
	require.Equal(t, "1.2345", Currency(12345).String())
	require.Equal(t, -0.5, Currency(-5000).Float64())
}

func TestDateEpoch(t *testing.T) {
	// Day zero of the native representation.
	require.Equal(t, time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC), Date(0).Time())
	// Two and a quarter days later.
	require.Equal(t, time.Date(1900, time.January, 1, 6, 0, 0, 0, time.UTC), Date(2.25).Time())
}

func TestValueStringRendering(t *testing.T) {
	require.Equal(t, "Int32(42)", Int32Value(42).String())
	require.Equal(t, "Bool(true)", BoolValue(true).String())
}

func TestTypeMismatchErrorUnwraps(t *testing.T) {
	_, err := StringValue("x").Float64()
	require.True(t, errors.Is(err, ErrValueConversion))
}
