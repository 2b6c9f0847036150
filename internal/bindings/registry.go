package bindings

import (
	"sync"
	"unsafe"
)

var (
	mu   sync.Mutex
	next uintptr = 1
	reg          = map[uintptr]any{}
)

// Register stores v and returns an integer key. The key doubles as the
// opaque user-data pointer handed to the backend, so no Go pointer ever
// crosses the boundary and the GC stays unaware of foreign-held references.
func Register(v any) uintptr {
	mu.Lock()
	k := next
	next++
	reg[k] = v
	mu.Unlock()
	return k
}

// Lookup resolves an opaque pointer produced from a registry key.
func Lookup(p unsafe.Pointer) (any, bool) {
	return LookupKey(uintptr(p))
}

// LookupKey resolves a registry key.
func LookupKey(k uintptr) (any, bool) {
	mu.Lock()
	v, ok := reg[k]
	mu.Unlock()
	return v, ok
}

// Unregister drops a key. Dropping an unknown key is a no-op.
func Unregister(k uintptr) {
	mu.Lock()
	delete(reg, k)
	mu.Unlock()
}
