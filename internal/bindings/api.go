// Package bindings is the native call boundary to the OPC DA client
// library. This package should ONLY be imported by pkg/opcda. All CGO
// complexity is isolated here.
package bindings

import (
	"errors"
	"unsafe"
)

// Handle is an opaque identifier for a resource owned by the native library.
// Exactly one wrapper object owns a handle at a time; it is never duplicated.
type Handle uintptr

// Success is the shared success code of every native entry point. Any
// nonzero code is a backend-defined failure and must not be interpreted
// beyond "failed".
const Success uint32 = 0

// Failure is the generic nonzero code reported by the stub backend.
const Failure uint32 = 1

// ErrNotBuilt reports that the native OPC DA backend was not linked into the
// current binary. Callers see it indirectly: the stub backend answers every
// call with Failure so the wrapper degrades to uniform typed errors.
var ErrNotBuilt = errors.New("opcda/internal/bindings: native backend not built")

// API is the fixed native function contract. Platform returns the
// build-selected implementation: a cgo-backed one on Windows, an
// always-failing stub elsewhere. Tests may substitute their own.
type API interface {
	// Init initializes the backend. Must be called before anything else.
	Init() uint32
	// Stop shuts the backend down. No handle may be used afterwards.
	Stop()

	MakeHost(name string) (uint32, Handle)
	FreeHost(host Handle)
	ConnectServer(host Handle, name string) (uint32, Handle)
	FreeServer(server Handle)
	GetStatus(server Handle) (code uint32, state uint32, vendor string)

	MakeGroup(server Handle, name string, active bool, requestedMS uint32, deadband float64) (code uint32, actualMS uint32, group Handle)
	FreeGroup(group Handle)
	AddItem(group Handle, name string) (uint32, Handle)
	FreeItem(item Handle)

	// ReadSync fills buf with the raw value payload and reports its quality,
	// type tag and millisecond timestamp.
	ReadSync(item Handle, buf *[64]byte) (code uint32, quality int32, valueType uint16, timestampMS uint64)
	WriteSync(item Handle, value unsafe.Pointer, valueType uint16) uint32
	ReadAsync(item Handle) uint32
	WriteAsync(item Handle, value unsafe.Pointer, valueType uint16) uint32
	GroupRefresh(group Handle) uint32

	// EnableAsync registers the fixed trampoline with the backend. user is a
	// registry key (see Register) masquerading as the opaque user-data
	// pointer; the trampoline resolves it back to a DataHandler.
	EnableAsync(group Handle, user uintptr) uint32

	GetItemNames(server Handle) (code uint32, names []string)

	// FreeWideString and FreeAnsiString release string buffers the backend
	// allocated. Used by the value codec when the ownership contract says
	// the callee owns them.
	FreeWideString(p unsafe.Pointer)
	FreeAnsiString(p unsafe.Pointer)
}

// DataHandler is what the data-change trampoline dispatches to. The group
// and item names arrive already decoded; the value stays a raw pointer plus
// type tag because its ownership and decoding policy belong to the caller.
//
// Declared here (rather than importing pkg/opcda) so the packages stay
// acyclic; pkg/opcda satisfies it structurally.
type DataHandler interface {
	HandleDataChange(groupName, itemName string, value unsafe.Pointer, quality int32, valueType uint16, timestampMS uint64)
}
