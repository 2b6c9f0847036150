package opcda

import (
	"fmt"
	"runtime"
	"time"
	"unsafe"

	"github.com/opcda-io/opcda-go/internal/bindings"
)

// Item is a single addressable data point inside a Group. It owns exactly
// one item handle.
type Item struct {
	api    bindings.API
	handle bindings.Handle
	path   string
}

// Path returns the namespace path the item was added with.
func (it *Item) Path() string { return it.path }

// Read performs a blocking synchronous read and decodes the result. The
// scratch buffer is caller-owned but any string memory it points at stays
// owned by the backend, so nothing is released here.
func (it *Item) Read() (Value, Quality, time.Time, error) {
	if it == nil || it.handle == 0 {
		return Value{}, QualityBad, time.Time{}, fmt.Errorf("%w: item is closed", ErrOperationFailed)
	}
	var buf [64]byte
	code, quality, vt, ts := it.api.ReadSync(it.handle, &buf)
	if code != bindings.Success {
		return Value{}, QualityBad, time.Time{}, fmt.Errorf("%w: reading item %q (code %d)", ErrOperationFailed, it.path, code)
	}
	v, err := decodeValue(unsafe.Pointer(&buf[0]), Type(vt), nil)
	runtime.KeepAlive(&buf)
	if err != nil {
		return Value{}, QualityBad, time.Time{}, err
	}
	return v, QualityFromRaw(quality), time.UnixMilli(int64(ts)), nil
}

// Write performs a blocking synchronous write. Array and decimal values are
// rejected before any native call.
func (it *Item) Write(v Value) error {
	if it == nil || it.handle == 0 {
		return fmt.Errorf("%w: item is closed", ErrOperationFailed)
	}
	ptr, vt, hold, err := encodeValue(v)
	if err != nil {
		return err
	}
	code := it.api.WriteSync(it.handle, ptr, uint16(vt))
	runtime.KeepAlive(hold)
	if code != bindings.Success {
		return fmt.Errorf("%w: writing item %q (code %d)", ErrOperationFailed, it.path, code)
	}
	return nil
}

// ReadAsync requests a read whose result is observable only through a group
// subscription; the call itself is fire-and-forget.
func (it *Item) ReadAsync() error {
	if it == nil || it.handle == 0 {
		return fmt.Errorf("%w: item is closed", ErrOperationFailed)
	}
	if code := it.api.ReadAsync(it.handle); code != bindings.Success {
		return fmt.Errorf("%w: async read of item %q (code %d)", ErrOperationFailed, it.path, code)
	}
	return nil
}

// WriteAsync requests a write whose outcome is not directly observable
// through this API; the call itself is fire-and-forget.
func (it *Item) WriteAsync(v Value) error {
	if it == nil || it.handle == 0 {
		return fmt.Errorf("%w: item is closed", ErrOperationFailed)
	}
	ptr, vt, hold, err := encodeValue(v)
	if err != nil {
		return err
	}
	code := it.api.WriteAsync(it.handle, ptr, uint16(vt))
	runtime.KeepAlive(hold)
	if code != bindings.Success {
		return fmt.Errorf("%w: async write of item %q (code %d)", ErrOperationFailed, it.path, code)
	}
	return nil
}

// Close releases the item handle. Idempotent, never fails observably.
func (it *Item) Close() {
	if it == nil || it.handle == 0 {
		return
	}
	it.api.FreeItem(it.handle)
	it.handle = 0
}
