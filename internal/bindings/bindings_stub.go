//go:build !windows || !cgo

package bindings

import "unsafe"

// Stub implementation for non-Windows or non-CGO builds. Every entry point
// exists with the same signature as the real backend and uniformly reports
// failure, so the wrapper degrades to typed errors instead of failing to
// build.

type stubAPI struct{}

// Platform returns the build-selected native implementation.
func Platform() API { return stubAPI{} }

func (stubAPI) Init() uint32 { return Failure }
func (stubAPI) Stop()        {}

func (stubAPI) MakeHost(string) (uint32, Handle)              { return Failure, 0 }
func (stubAPI) FreeHost(Handle)                               {}
func (stubAPI) ConnectServer(Handle, string) (uint32, Handle) { return Failure, 0 }
func (stubAPI) FreeServer(Handle)                             {}
func (stubAPI) GetStatus(Handle) (uint32, uint32, string)     { return Failure, 0, "" }

func (stubAPI) MakeGroup(Handle, string, bool, uint32, float64) (uint32, uint32, Handle) {
	return Failure, 0, 0
}
func (stubAPI) FreeGroup(Handle)                        {}
func (stubAPI) AddItem(Handle, string) (uint32, Handle) { return Failure, 0 }
func (stubAPI) FreeItem(Handle)                         {}

func (stubAPI) ReadSync(Handle, *[64]byte) (uint32, int32, uint16, uint64) {
	return Failure, 0, 0, 0
}
func (stubAPI) WriteSync(Handle, unsafe.Pointer, uint16) uint32  { return Failure }
func (stubAPI) ReadAsync(Handle) uint32                          { return Failure }
func (stubAPI) WriteAsync(Handle, unsafe.Pointer, uint16) uint32 { return Failure }
func (stubAPI) GroupRefresh(Handle) uint32                       { return Failure }
func (stubAPI) EnableAsync(Handle, uintptr) uint32               { return Failure }

func (stubAPI) GetItemNames(Handle) (uint32, []string) { return Failure, nil }

func (stubAPI) FreeWideString(unsafe.Pointer) {}
func (stubAPI) FreeAnsiString(unsafe.Pointer) {}
