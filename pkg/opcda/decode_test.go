package opcda

import (
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/opcda-io/opcda-go/internal/wide"
)

// countingFreer records every string-release call the codec makes.
type countingFreer struct {
	wideFreed []unsafe.Pointer
	ansiFreed []unsafe.Pointer
}

func (f *countingFreer) FreeWideString(p unsafe.Pointer) { f.wideFreed = append(f.wideFreed, p) }
func (f *countingFreer) FreeAnsiString(p unsafe.Pointer) { f.ansiFreed = append(f.ansiFreed, p) }

func TestDecodeScalars(t *testing.T) {
	t.Run("int8 boundaries", func(t *testing.T) {
		for _, want := range []int8{math.MinInt8, -1, 0, math.MaxInt8} {
			n := want
			v, err := decodeValue(unsafe.Pointer(&n), TypeInt8, nil)
			require.NoError(t, err)
			got, err := v.Int8()
			require.NoError(t, err)
			require.Equal(t, want, got)
		}
	})

	t.Run("uint64 max", func(t *testing.T) {
		n := uint64(math.MaxUint64)
		v, err := decodeValue(unsafe.Pointer(&n), TypeUInt64, nil)
		require.NoError(t, err)
		got, err := v.UInt64()
		require.NoError(t, err)
		require.Equal(t, uint64(math.MaxUint64), got)
	})

	t.Run("int32", func(t *testing.T) {
		n := int32(-123456789)
		v, err := decodeValue(unsafe.Pointer(&n), TypeInt32, nil)
		require.NoError(t, err)
		got, err := v.Int32()
		require.NoError(t, err)
		require.Equal(t, int32(-123456789), got)
	})

	t.Run("platform int is 32 bits wide on the wire", func(t *testing.T) {
		n := int32(-7)
		v, err := decodeValue(unsafe.Pointer(&n), TypeInt, nil)
		require.NoError(t, err)
		got, err := v.Int()
		require.NoError(t, err)
		require.Equal(t, -7, got)
	})

	t.Run("float32", func(t *testing.T) {
		n := float32(math.MaxFloat32)
		v, err := decodeValue(unsafe.Pointer(&n), TypeFloat32, nil)
		require.NoError(t, err)
		got, err := v.Float32()
		require.NoError(t, err)
		require.Equal(t, float32(math.MaxFloat32), got)
	})

	t.Run("float64 negative zero survives", func(t *testing.T) {
		n := math.Copysign(0, -1)
		v, err := decodeValue(unsafe.Pointer(&n), TypeFloat64, nil)
		require.NoError(t, err)
		got, err := v.Float64()
		require.NoError(t, err)
		require.True(t, math.Signbit(got))
	})

	t.Run("bool nonzero is true", func(t *testing.T) {
		for raw, want := range map[int16]bool{-1: true, 0: false, 1: true} {
			n := raw
			v, err := decodeValue(unsafe.Pointer(&n), TypeBool, nil)
			require.NoError(t, err)
			got, err := v.Bool()
			require.NoError(t, err)
			require.Equal(t, want, got, "raw %d", raw)
		}
	})

	t.Run("currency", func(t *testing.T) {
		n := int64(12345)
		v, err := decodeValue(unsafe.Pointer(&n), TypeCurrency, nil)
		require.NoError(t, err)
		got, err := v.Currency()
		require.NoError(t, err)
		require.Equal(t, 1.2345, got.Float64())
	})

	t.Run("date", func(t *testing.T) {
		n := float64(2.25)
		v, err := decodeValue(unsafe.Pointer(&n), TypeDate, nil)
		require.NoError(t, err)
		got, err := v.Date()
		require.NoError(t, err)
		require.Equal(t, Date(2.25), got)
	})
}

func TestDecodeNilScalarPointer(t *testing.T) {
	_, err := decodeValue(nil, TypeInt32, nil)
	require.ErrorIs(t, err, ErrValueConversion)
}

func TestDecodeInvalidTag(t *testing.T) {
	n := int32(1)
	_, err := decodeValue(unsafe.Pointer(&n), Type(999), nil)
	require.ErrorIs(t, err, ErrValueConversion)
	require.ErrorContains(t, err, "invalid value type")
}

func TestDecodeByRef(t *testing.T) {
	t.Run("dereferences exactly once", func(t *testing.T) {
		n := int16(-42)
		p := unsafe.Pointer(&n)
		v, err := decodeValue(unsafe.Pointer(&p), TypeByRef|TypeInt16, nil)
		require.NoError(t, err)
		got, err := v.Int16()
		require.NoError(t, err)
		require.Equal(t, int16(-42), got)
	})

	t.Run("nil outer pointer fails", func(t *testing.T) {
		_, err := decodeValue(nil, TypeByRef|TypeInt16, nil)
		require.ErrorIs(t, err, ErrValueConversion)
	})

	t.Run("nil inner pointer fails for scalars", func(t *testing.T) {
		var p unsafe.Pointer
		_, err := decodeValue(unsafe.Pointer(&p), TypeByRef|TypeInt16, nil)
		require.ErrorIs(t, err, ErrValueConversion)
	})
}

func TestDecodeStrings(t *testing.T) {
	t.Run("wide", func(t *testing.T) {
		buf := wide.Encode("héllo wörld")
		v, err := decodeValue(unsafe.Pointer(&buf[0]), TypeWideString, nil)
		require.NoError(t, err)
		s, err := v.Str()
		require.NoError(t, err)
		require.Equal(t, "héllo wörld", s)
	})

	t.Run("wide non-BMP", func(t *testing.T) {
		buf := wide.Encode("data 😀")
		v, err := decodeValue(unsafe.Pointer(&buf[0]), TypeString, nil)
		require.NoError(t, err)
		s, err := v.Str()
		require.NoError(t, err)
		require.Equal(t, "data 😀", s)
	})

	t.Run("ansi", func(t *testing.T) {
		buf := append([]byte("caf"), 0xE9, 0x00) // "café" in Windows-1252
		v, err := decodeValue(unsafe.Pointer(&buf[0]), TypeANSIString, nil)
		require.NoError(t, err)
		s, err := v.Str()
		require.NoError(t, err)
		require.Equal(t, "café", s)
	})

	t.Run("nil pointer decodes to empty string", func(t *testing.T) {
		for _, vt := range []Type{TypeString, TypeWideString, TypeANSIString} {
			v, err := decodeValue(nil, vt, nil)
			require.NoError(t, err)
			s, err := v.Str()
			require.NoError(t, err)
			require.Equal(t, "", s)
		}
	})

	t.Run("freer releases after copy", func(t *testing.T) {
		f := &countingFreer{}
		buf := wide.Encode("owned")
		p := unsafe.Pointer(&buf[0])
		v, err := decodeValue(p, TypeWideString, f)
		require.NoError(t, err)
		s, err := v.Str()
		require.NoError(t, err)
		require.Equal(t, "owned", s)
		require.Equal(t, []unsafe.Pointer{p}, f.wideFreed)
		require.Empty(t, f.ansiFreed)
	})

	t.Run("nil pointer is never released", func(t *testing.T) {
		f := &countingFreer{}
		_, err := decodeValue(nil, TypeANSIString, f)
		require.NoError(t, err)
		require.Empty(t, f.wideFreed)
		require.Empty(t, f.ansiFreed)
	})
}

func TestDecodeDecimal(t *testing.T) {
	build := func(lo uint64, hi uint32, scale, sign uint8) decimal {
		return decimal{scale: scale, sign: sign, hi32: hi, lo64: lo}
	}
	tests := []struct {
		name string
		d    decimal
		want string
	}{
		{"integer", build(12345, 0, 0, 0), "12345"},
		{"scaled", build(12345, 0, 2, 0), "123.45"},
		{"negative", build(12345, 0, 2, decimalNegative), "-123.45"},
		{"fraction needs leading zero", build(5, 0, 2, 0), "0.05"},
		{"zero ignores scale and sign", build(0, 0, 5, decimalNegative), "0"},
		{"full 96-bit magnitude", build(0xFFFFFFFFFFFFFFFF, 0xFFFFFFFF, 0, 0), "79228162514264337593543950335"},
		{"high half set", build(0, 1, 0, 0), "18446744073709551616"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.d
			v, err := decodeValue(unsafe.Pointer(&d), TypeDecimal, nil)
			require.NoError(t, err)
			got, err := v.Decimal()
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

// newDescriptor wraps raw element storage in a one-dimensional safe-array
// descriptor the way the native library lays it out.
func newDescriptor(data unsafe.Pointer, elemSize uint32, count uint32) *safeArray {
	return &safeArray{
		dims:     1,
		elemSize: elemSize,
		data:     data,
		bounds:   [1]safeArrayBound{{elements: count}},
	}
}

func TestDecodeArrays(t *testing.T) {
	t.Run("int32", func(t *testing.T) {
		data := []int32{1, -2, 3}
		sa := newDescriptor(unsafe.Pointer(&data[0]), 4, 3)
		v, err := decodeValue(unsafe.Pointer(sa), TypeArray|TypeInt32, nil)
		require.NoError(t, err)
		require.Equal(t, []int32{1, -2, 3}, v.Go())
		require.Equal(t, TypeArray|TypeInt32, v.Type())
	})

	t.Run("elements are copied out of foreign memory", func(t *testing.T) {
		data := []float64{1.5, 2.5}
		sa := newDescriptor(unsafe.Pointer(&data[0]), 8, 2)
		v, err := decodeValue(unsafe.Pointer(sa), TypeArray|TypeFloat64, nil)
		require.NoError(t, err)
		data[0] = 99 // must not affect the decoded value
		require.Equal(t, []float64{1.5, 2.5}, v.Go())
	})

	t.Run("bool elements convert elementwise", func(t *testing.T) {
		data := []int16{-1, 0, 1}
		sa := newDescriptor(unsafe.Pointer(&data[0]), 2, 3)
		v, err := decodeValue(unsafe.Pointer(sa), TypeArray|TypeBool, nil)
		require.NoError(t, err)
		require.Equal(t, []bool{true, false, true}, v.Go())
	})

	t.Run("currency elements convert elementwise", func(t *testing.T) {
		data := []int64{10000, -5000}
		sa := newDescriptor(unsafe.Pointer(&data[0]), 8, 2)
		v, err := decodeValue(unsafe.Pointer(sa), TypeArray|TypeCurrency, nil)
		require.NoError(t, err)
		require.Equal(t, []Currency{10000, -5000}, v.Go())
	})

	t.Run("decimal array decodes to strings", func(t *testing.T) {
		data := []decimal{
			{scale: 1, lo64: 25},
			{scale: 0, sign: decimalNegative, lo64: 7},
		}
		sa := newDescriptor(unsafe.Pointer(&data[0]), uint32(unsafe.Sizeof(decimal{})), 2)
		v, err := decodeValue(unsafe.Pointer(sa), TypeArray|TypeDecimal, nil)
		require.NoError(t, err)
		require.Equal(t, []string{"2.5", "-7"}, v.Go())
	})

	t.Run("wide string array releases each element", func(t *testing.T) {
		a := wide.Encode("alpha")
		b := wide.Encode("beta")
		ptrs := []unsafe.Pointer{unsafe.Pointer(&a[0]), nil, unsafe.Pointer(&b[0])}
		sa := newDescriptor(unsafe.Pointer(&ptrs[0]), 8, 3)
		f := &countingFreer{}
		v, err := decodeValue(unsafe.Pointer(sa), TypeArray|TypeString, f)
		require.NoError(t, err)
		got, err := v.Strings()
		require.NoError(t, err)
		require.Equal(t, []string{"alpha", "", "beta"}, got)
		require.Equal(t, []unsafe.Pointer{ptrs[0], ptrs[2]}, f.wideFreed)
	})

	t.Run("empty array touches no element memory", func(t *testing.T) {
		sa := newDescriptor(nil, 4, 0)
		v, err := decodeValue(unsafe.Pointer(sa), TypeArray|TypeUInt16, nil)
		require.NoError(t, err)
		require.Equal(t, []uint16{}, v.Go())
	})

	t.Run("lock count is restored", func(t *testing.T) {
		data := []int32{1}
		sa := newDescriptor(unsafe.Pointer(&data[0]), 4, 1)
		_, err := decodeValue(unsafe.Pointer(sa), TypeArray|TypeInt32, nil)
		require.NoError(t, err)
		require.Equal(t, uint32(0), sa.locks)
	})

	t.Run("nil descriptor fails", func(t *testing.T) {
		_, err := decodeValue(nil, TypeArray|TypeInt32, nil)
		require.ErrorIs(t, err, ErrValueConversion)
	})

	t.Run("multi-dimensional arrays are rejected", func(t *testing.T) {
		data := []int32{1, 2, 3, 4}
		sa := newDescriptor(unsafe.Pointer(&data[0]), 4, 4)
		sa.dims = 2
		_, err := decodeValue(unsafe.Pointer(sa), TypeArray|TypeInt32, nil)
		require.ErrorIs(t, err, ErrValueConversion)
		require.ErrorContains(t, err, "2-dimensional")
	})

	t.Run("populated array with nil data fails", func(t *testing.T) {
		sa := newDescriptor(nil, 4, 3)
		_, err := decodeValue(unsafe.Pointer(sa), TypeArray|TypeInt32, nil)
		require.ErrorIs(t, err, ErrValueConversion)
	})

	t.Run("invalid element tag fails", func(t *testing.T) {
		data := []int32{1}
		sa := newDescriptor(unsafe.Pointer(&data[0]), 4, 1)
		_, err := decodeValue(unsafe.Pointer(sa), TypeArray|Type(99), nil)
		require.ErrorIs(t, err, ErrValueConversion)
	})

	t.Run("by-reference array descriptor", func(t *testing.T) {
		data := []uint8{0, 127, 255}
		sa := newDescriptor(unsafe.Pointer(&data[0]), 1, 3)
		dp := unsafe.Pointer(sa)
		v, err := decodeValue(unsafe.Pointer(&dp), TypeByRef|TypeArray|TypeUInt8, nil)
		require.NoError(t, err)
		require.Equal(t, []uint8{0, 127, 255}, v.Go())
	})
}
