// Package opcda exposes a safe, typed Go API over a native OPC DA client
// library. It converts the library's untyped, pointer-based value model into
// a closed tagged union, manages the connection/server/group/item handle
// hierarchy with strict single ownership, and bridges the library's raw
// data-change callbacks into type-safe observer notifications.
//
// The exported types compile on every platform. Where the native backend is
// unavailable (any non-Windows target, or a build without cgo) every
// operation uniformly reports a typed error instead of failing to build.
package opcda
