package opcda

import (
	"math/big"
	"strings"
	"unsafe"

	"github.com/opcda-io/opcda-go/internal/wide"
)

// stringFreer releases foreign-owned string buffers once their contents have
// been copied out. A nil freer means the native side keeps ownership and
// nothing is released; the synchronous read path and the asynchronous
// callback path have independently verified ownership contracts, so callers
// choose per call site.
type stringFreer interface {
	FreeWideString(p unsafe.Pointer)
	FreeAnsiString(p unsafe.Pointer)
}

// decodeValue converts a raw native payload tagged vt into a Value.
func decodeValue(p unsafe.Pointer, vt Type, freer stringFreer) (Value, error) {
	if vt.IsByRef() {
		// Dereference exactly once, then decode with the modifier stripped.
		if p == nil {
			return Value{}, conversionErrorf("nil by-reference pointer for %s", vt.name())
		}
		p = *(*unsafe.Pointer)(p)
		vt &^= TypeByRef
	}
	if vt.IsArray() {
		return decodeArray(p, vt.Elem(), freer)
	}
	return decodeScalar(p, vt, freer)
}

func decodeScalar(p unsafe.Pointer, vt Type, freer stringFreer) (Value, error) {
	switch vt {
	case TypeString, TypeWideString:
		// Null string pointers decode to the empty string.
		if p == nil {
			return Value{vt: vt, v: ""}, nil
		}
		s := wide.Decode(p)
		if freer != nil {
			freer.FreeWideString(p)
		}
		return Value{vt: vt, v: s}, nil
	case TypeANSIString:
		if p == nil {
			return Value{vt: vt, v: ""}, nil
		}
		s := wide.DecodeANSI(p)
		if freer != nil {
			freer.FreeAnsiString(p)
		}
		return Value{vt: vt, v: s}, nil
	}

	if p == nil {
		return Value{}, conversionErrorf("nil pointer for %s", vt.name())
	}

	switch vt {
	case TypeInt8:
		return Int8Value(*(*int8)(p)), nil
	case TypeUInt8:
		return UInt8Value(*(*uint8)(p)), nil
	case TypeInt16:
		return Int16Value(*(*int16)(p)), nil
	case TypeUInt16:
		return UInt16Value(*(*uint16)(p)), nil
	case TypeInt32:
		return Int32Value(*(*int32)(p)), nil
	case TypeUInt32:
		return UInt32Value(*(*uint32)(p)), nil
	case TypeInt64:
		return Int64Value(*(*int64)(p)), nil
	case TypeUInt64:
		return UInt64Value(*(*uint64)(p)), nil
	case TypeInt:
		return IntValue(int(*(*int32)(p))), nil
	case TypeUInt:
		return UIntValue(uint(*(*uint32)(p))), nil
	case TypeFloat32:
		return Float32Value(*(*float32)(p)), nil
	case TypeFloat64:
		return Float64Value(*(*float64)(p)), nil
	case TypeBool:
		return BoolValue(*(*int16)(p) != 0), nil
	case TypeCurrency:
		return CurrencyValue(Currency(*(*int64)(p))), nil
	case TypeDate:
		return DateValue(Date(*(*float64)(p))), nil
	case TypeDecimal:
		return Value{vt: TypeDecimal, v: decodeDecimal(p)}, nil
	default:
		return Value{}, invalidValueType(vt)
	}
}

// decimal mirrors the native 16-byte DECIMAL layout: a 96-bit magnitude
// split into a low 64-bit and a high 32-bit half, a scale, and a sign flag.
type decimal struct {
	reserved uint16
	scale    uint8
	sign     uint8
	hi32     uint32
	lo64     uint64
}

const decimalNegative = 0x80

func decodeDecimal(p unsafe.Pointer) string {
	d := (*decimal)(p)
	mag := new(big.Int).SetUint64(uint64(d.hi32))
	mag.Lsh(mag, 64)
	mag.Or(mag, new(big.Int).SetUint64(d.lo64))
	return formatDecimal(mag, d.scale, d.sign&decimalNegative != 0)
}

func formatDecimal(mag *big.Int, scale uint8, negative bool) string {
	if mag.Sign() == 0 {
		return "0"
	}
	digits := mag.String()
	var out string
	if scale == 0 {
		out = digits
	} else {
		if len(digits) <= int(scale) {
			digits = strings.Repeat("0", int(scale)-len(digits)+1) + digits
		}
		cut := len(digits) - int(scale)
		out = digits[:cut] + "." + digits[cut:]
	}
	if negative {
		out = "-" + out
	}
	return out
}

// safeArrayBound mirrors the native per-dimension bound record.
type safeArrayBound struct {
	elements uint32
	lbound   int32
}

// safeArray mirrors the single-dimensional prefix of the native safe-array
// descriptor. Field offsets line up with the native layout on 64-bit
// targets, so the descriptor can be read in place.
type safeArray struct {
	dims     uint16
	features uint16
	elemSize uint32
	locks    uint32
	data     unsafe.Pointer
	bounds   [1]safeArrayBound
}

func decodeArray(p unsafe.Pointer, elem Type, freer stringFreer) (Value, error) {
	if p == nil {
		return Value{}, conversionErrorf("nil safe-array descriptor for %sArray", elem.name())
	}
	sa := (*safeArray)(p)
	if sa.dims != 1 {
		return Value{}, conversionErrorf("unsupported %d-dimensional array of %s", sa.dims, elem.name())
	}
	count := int(sa.bounds[0].elements)
	if count == 0 {
		return emptyArrayValue(elem)
	}

	sa.locks++
	defer func() { sa.locks-- }()

	if sa.data == nil {
		return Value{}, conversionErrorf("safe array of %s reports %d elements but no data", elem.name(), count)
	}

	switch elem {
	case TypeInt8:
		return arrayValue(elem, copyOut[int8](sa.data, count)), nil
	case TypeUInt8:
		return arrayValue(elem, copyOut[uint8](sa.data, count)), nil
	case TypeInt16:
		return arrayValue(elem, copyOut[int16](sa.data, count)), nil
	case TypeUInt16:
		return arrayValue(elem, copyOut[uint16](sa.data, count)), nil
	case TypeInt32:
		return arrayValue(elem, copyOut[int32](sa.data, count)), nil
	case TypeUInt32:
		return arrayValue(elem, copyOut[uint32](sa.data, count)), nil
	case TypeInt64:
		return arrayValue(elem, copyOut[int64](sa.data, count)), nil
	case TypeUInt64:
		return arrayValue(elem, copyOut[uint64](sa.data, count)), nil
	case TypeInt:
		raw := copyOut[int32](sa.data, count)
		out := make([]int, count)
		for i, n := range raw {
			out[i] = int(n)
		}
		return arrayValue(elem, out), nil
	case TypeUInt:
		raw := copyOut[uint32](sa.data, count)
		out := make([]uint, count)
		for i, n := range raw {
			out[i] = uint(n)
		}
		return arrayValue(elem, out), nil
	case TypeFloat32:
		return arrayValue(elem, copyOut[float32](sa.data, count)), nil
	case TypeFloat64:
		return arrayValue(elem, copyOut[float64](sa.data, count)), nil
	case TypeBool:
		raw := copyOut[int16](sa.data, count)
		out := make([]bool, count)
		for i, n := range raw {
			out[i] = n != 0
		}
		return arrayValue(elem, out), nil
	case TypeCurrency:
		raw := copyOut[int64](sa.data, count)
		out := make([]Currency, count)
		for i, n := range raw {
			out[i] = Currency(n)
		}
		return arrayValue(elem, out), nil
	case TypeDate:
		raw := copyOut[float64](sa.data, count)
		out := make([]Date, count)
		for i, n := range raw {
			out[i] = Date(n)
		}
		return arrayValue(elem, out), nil
	case TypeDecimal:
		out := make([]string, count)
		for i := 0; i < count; i++ {
			out[i] = decodeDecimal(unsafe.Add(sa.data, i*int(unsafe.Sizeof(decimal{}))))
		}
		return arrayValue(elem, out), nil
	case TypeString, TypeWideString:
		ptrs := unsafe.Slice((*unsafe.Pointer)(sa.data), count)
		out := make([]string, count)
		for i, sp := range ptrs {
			out[i] = wide.Decode(sp)
			if freer != nil && sp != nil {
				freer.FreeWideString(sp)
			}
		}
		return arrayValue(elem, out), nil
	case TypeANSIString:
		ptrs := unsafe.Slice((*unsafe.Pointer)(sa.data), count)
		out := make([]string, count)
		for i, sp := range ptrs {
			out[i] = wide.DecodeANSI(sp)
			if freer != nil && sp != nil {
				freer.FreeAnsiString(sp)
			}
		}
		return arrayValue(elem, out), nil
	default:
		return Value{}, invalidValueType(TypeArray | elem)
	}
}

func arrayValue(elem Type, data any) Value {
	return Value{vt: TypeArray | elem, v: data}
}

// emptyArrayValue builds a zero-length array of the element's variant
// without touching any element memory.
func emptyArrayValue(elem Type) (Value, error) {
	switch elem {
	case TypeInt8:
		return arrayValue(elem, []int8{}), nil
	case TypeUInt8:
		return arrayValue(elem, []uint8{}), nil
	case TypeInt16:
		return arrayValue(elem, []int16{}), nil
	case TypeUInt16:
		return arrayValue(elem, []uint16{}), nil
	case TypeInt32:
		return arrayValue(elem, []int32{}), nil
	case TypeUInt32:
		return arrayValue(elem, []uint32{}), nil
	case TypeInt64:
		return arrayValue(elem, []int64{}), nil
	case TypeUInt64:
		return arrayValue(elem, []uint64{}), nil
	case TypeInt:
		return arrayValue(elem, []int{}), nil
	case TypeUInt:
		return arrayValue(elem, []uint{}), nil
	case TypeFloat32:
		return arrayValue(elem, []float32{}), nil
	case TypeFloat64:
		return arrayValue(elem, []float64{}), nil
	case TypeBool:
		return arrayValue(elem, []bool{}), nil
	case TypeCurrency:
		return arrayValue(elem, []Currency{}), nil
	case TypeDate:
		return arrayValue(elem, []Date{}), nil
	case TypeDecimal, TypeString, TypeWideString, TypeANSIString:
		return arrayValue(elem, []string{}), nil
	default:
		return Value{}, invalidValueType(TypeArray | elem)
	}
}

// copyOut copies count elements of T out of foreign memory into an owned
// slice.
func copyOut[T any](p unsafe.Pointer, count int) []T {
	out := make([]T, count)
	copy(out, unsafe.Slice((*T)(p), count))
	return out
}
