package opcda

import (
	"fmt"
	"unsafe"

	"github.com/opcda-io/opcda-go/internal/wide"
)

// encodeValue produces a pointer to v's native in-memory representation and
// its type tag. The pointer stays valid only while hold is reachable, so
// callers must runtime.KeepAlive(hold) after the native call returns. The
// write direction does not support arrays or decimals; both fail fast
// instead of attempting a lossy conversion.
func encodeValue(v Value) (ptr unsafe.Pointer, vt Type, hold any, err error) {
	if v.vt.IsArray() {
		return nil, 0, nil, fmt.Errorf("%w: array writes not implemented", ErrOperationFailed)
	}
	switch v.vt {
	case TypeDecimal:
		return nil, 0, nil, fmt.Errorf("%w: decimal writes not implemented", ErrOperationFailed)
	case TypeInt8:
		n := v.v.(int8)
		return unsafe.Pointer(&n), v.vt, &n, nil
	case TypeUInt8:
		n := v.v.(uint8)
		return unsafe.Pointer(&n), v.vt, &n, nil
	case TypeInt16:
		n := v.v.(int16)
		return unsafe.Pointer(&n), v.vt, &n, nil
	case TypeUInt16:
		n := v.v.(uint16)
		return unsafe.Pointer(&n), v.vt, &n, nil
	case TypeInt32:
		n := v.v.(int32)
		return unsafe.Pointer(&n), v.vt, &n, nil
	case TypeUInt32:
		n := v.v.(uint32)
		return unsafe.Pointer(&n), v.vt, &n, nil
	case TypeInt64:
		n := v.v.(int64)
		return unsafe.Pointer(&n), v.vt, &n, nil
	case TypeUInt64:
		n := v.v.(uint64)
		return unsafe.Pointer(&n), v.vt, &n, nil
	case TypeInt:
		n := int32(v.v.(int))
		return unsafe.Pointer(&n), v.vt, &n, nil
	case TypeUInt:
		n := uint32(v.v.(uint))
		return unsafe.Pointer(&n), v.vt, &n, nil
	case TypeFloat32:
		n := v.v.(float32)
		return unsafe.Pointer(&n), v.vt, &n, nil
	case TypeFloat64:
		n := v.v.(float64)
		return unsafe.Pointer(&n), v.vt, &n, nil
	case TypeBool:
		// Native boolean wire format: -1 for true, 0 for false.
		var n int16
		if v.v.(bool) {
			n = -1
		}
		return unsafe.Pointer(&n), v.vt, &n, nil
	case TypeCurrency:
		n := int64(v.v.(Currency))
		return unsafe.Pointer(&n), v.vt, &n, nil
	case TypeDate:
		n := float64(v.v.(Date))
		return unsafe.Pointer(&n), v.vt, &n, nil
	case TypeString, TypeWideString:
		buf := wide.Encode(v.v.(string))
		return unsafe.Pointer(&buf[0]), v.vt, buf, nil
	case TypeANSIString:
		buf := wide.EncodeANSI(v.v.(string))
		return unsafe.Pointer(&buf[0]), v.vt, buf, nil
	default:
		return nil, 0, nil, invalidValueType(v.vt)
	}
}
