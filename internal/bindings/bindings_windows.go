//go:build windows && cgo

package bindings

/*
#cgo CFLAGS: -I${SRCDIR}
#cgo LDFLAGS: -L${SRCDIR}/../../libs -lOPCClientToolKitDLL

#include <stdlib.h>

typedef void (*opc_data_change_cb)(void*, const unsigned short*, const unsigned short*, void*, int, unsigned int, unsigned long long);

extern unsigned int opc_client_init(void);
extern void opc_client_stop(void);

extern unsigned int opc_make_host(const unsigned short* hostname, void** host);
extern void opc_host_free(void* host);
extern unsigned int opc_host_connect_da_server(void* host, const unsigned short* server_name, void** server);
extern void opc_server_free(void* server);
extern unsigned int opc_server_get_status(void* server, unsigned int* state, unsigned short** vendor_info);

extern unsigned int opc_server_make_group(void* server, const unsigned short* group_name, int active,
	unsigned int req_update_rate, unsigned int* actual_update_rate, double deadband, void** group);
extern void opc_group_free(void* group);
extern unsigned int opc_group_add_item(void* group, const unsigned short* item_name, void** item);
extern void opc_item_free(void* item);

extern unsigned int opc_item_read_sync(void* item, void* value, int* quality, unsigned int* value_type, unsigned long long* timestamp_ms);
extern unsigned int opc_item_write_sync(void* item, const void* value, unsigned int value_type);
extern unsigned int opc_item_read_async(void* item);
extern unsigned int opc_item_write_async(void* item, const void* value, unsigned int value_type);
extern unsigned int opc_group_refresh(void* group);

extern unsigned int opc_group_enable_async(void* group, opc_data_change_cb callback, void* user_data);

extern unsigned int opc_server_get_item_names(void* server, unsigned short*** item_names, unsigned int* count);
extern void opc_free_string_array(unsigned short** strings, unsigned int count);
extern void opc_free_string(unsigned short* str);
extern void opc_free_string_ansi(char* str);

extern void opcdaDataChange(void* user, unsigned short* group, unsigned short* item, void* value, int quality, unsigned int vt, unsigned long long ts);

static unsigned int opc_enable_async_go(void* group, void* user) {
	return opc_group_enable_async(group, (opc_data_change_cb)opcdaDataChange, user);
}
*/
import "C"

import (
	"runtime"
	"unsafe"

	"github.com/opcda-io/opcda-go/internal/wide"
)

type nativeAPI struct{}

// Platform returns the cgo-backed native implementation.
func Platform() API { return nativeAPI{} }

//export opcdaDataChange
func opcdaDataChange(user unsafe.Pointer, group *C.ushort, item *C.ushort, value unsafe.Pointer, quality C.int, vt C.uint, ts C.ulonglong) {
	v, ok := Lookup(user)
	if !ok {
		return
	}
	h, ok := v.(DataHandler)
	if !ok {
		return
	}
	h.HandleDataChange(
		wide.Decode(unsafe.Pointer(group)),
		wide.Decode(unsafe.Pointer(item)),
		value, int32(quality), uint16(vt), uint64(ts),
	)
}

func widePtr(buf []uint16) *C.ushort {
	return (*C.ushort)(unsafe.Pointer(&buf[0]))
}

func (nativeAPI) Init() uint32 { return uint32(C.opc_client_init()) }
func (nativeAPI) Stop()        { C.opc_client_stop() }

func (nativeAPI) MakeHost(name string) (uint32, Handle) {
	w := wide.Encode(name)
	var h unsafe.Pointer
	code := C.opc_make_host(widePtr(w), &h)
	runtime.KeepAlive(w)
	return uint32(code), Handle(uintptr(h))
}

func (nativeAPI) FreeHost(host Handle) {
	if host != 0 {
		C.opc_host_free(unsafe.Pointer(host))
	}
}

func (nativeAPI) ConnectServer(host Handle, name string) (uint32, Handle) {
	w := wide.Encode(name)
	var s unsafe.Pointer
	code := C.opc_host_connect_da_server(unsafe.Pointer(host), widePtr(w), &s)
	runtime.KeepAlive(w)
	return uint32(code), Handle(uintptr(s))
}

func (nativeAPI) FreeServer(server Handle) {
	if server != 0 {
		C.opc_server_free(unsafe.Pointer(server))
	}
}

func (nativeAPI) GetStatus(server Handle) (uint32, uint32, string) {
	var state C.uint
	var vendor *C.ushort
	code := C.opc_server_get_status(unsafe.Pointer(server), &state, &vendor)
	if code != 0 {
		return uint32(code), 0, ""
	}
	var info string
	if vendor != nil {
		info = wide.Decode(unsafe.Pointer(vendor))
		C.opc_free_string(vendor)
	}
	return uint32(code), uint32(state), info
}

func (nativeAPI) MakeGroup(server Handle, name string, active bool, requestedMS uint32, deadband float64) (uint32, uint32, Handle) {
	w := wide.Encode(name)
	var actual C.uint
	var g unsafe.Pointer
	flag := C.int(0)
	if active {
		flag = 1
	}
	code := C.opc_server_make_group(unsafe.Pointer(server), widePtr(w), flag,
		C.uint(requestedMS), &actual, C.double(deadband), &g)
	runtime.KeepAlive(w)
	return uint32(code), uint32(actual), Handle(uintptr(g))
}

func (nativeAPI) FreeGroup(group Handle) {
	if group != 0 {
		C.opc_group_free(unsafe.Pointer(group))
	}
}

func (nativeAPI) AddItem(group Handle, name string) (uint32, Handle) {
	w := wide.Encode(name)
	var it unsafe.Pointer
	code := C.opc_group_add_item(unsafe.Pointer(group), widePtr(w), &it)
	runtime.KeepAlive(w)
	return uint32(code), Handle(uintptr(it))
}

func (nativeAPI) FreeItem(item Handle) {
	if item != 0 {
		C.opc_item_free(unsafe.Pointer(item))
	}
}

func (nativeAPI) ReadSync(item Handle, buf *[64]byte) (uint32, int32, uint16, uint64) {
	var quality C.int
	var vt C.uint
	var ts C.ulonglong
	code := C.opc_item_read_sync(unsafe.Pointer(item), unsafe.Pointer(&buf[0]), &quality, &vt, &ts)
	return uint32(code), int32(quality), uint16(vt), uint64(ts)
}

func (nativeAPI) WriteSync(item Handle, value unsafe.Pointer, valueType uint16) uint32 {
	return uint32(C.opc_item_write_sync(unsafe.Pointer(item), value, C.uint(valueType)))
}

func (nativeAPI) ReadAsync(item Handle) uint32 {
	return uint32(C.opc_item_read_async(unsafe.Pointer(item)))
}

func (nativeAPI) WriteAsync(item Handle, value unsafe.Pointer, valueType uint16) uint32 {
	return uint32(C.opc_item_write_async(unsafe.Pointer(item), value, C.uint(valueType)))
}

func (nativeAPI) GroupRefresh(group Handle) uint32 {
	return uint32(C.opc_group_refresh(unsafe.Pointer(group)))
}

func (nativeAPI) EnableAsync(group Handle, user uintptr) uint32 {
	return uint32(C.opc_enable_async_go(unsafe.Pointer(group), unsafe.Pointer(user)))
}

func (nativeAPI) GetItemNames(server Handle) (uint32, []string) {
	var arr **C.ushort
	var count C.uint
	code := C.opc_server_get_item_names(unsafe.Pointer(server), &arr, &count)
	if code != 0 || arr == nil {
		return uint32(code), nil
	}
	n := int(count)
	ptrs := unsafe.Slice(arr, n)
	names := make([]string, 0, n)
	for _, p := range ptrs {
		if p != nil {
			names = append(names, wide.Decode(unsafe.Pointer(p)))
		}
	}
	C.opc_free_string_array(arr, count)
	return uint32(code), names
}

func (nativeAPI) FreeWideString(p unsafe.Pointer) {
	if p != nil {
		C.opc_free_string((*C.ushort)(p))
	}
}

func (nativeAPI) FreeAnsiString(p unsafe.Pointer) {
	if p != nil {
		C.opc_free_string_ansi((*C.char)(p))
	}
}
