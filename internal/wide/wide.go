// Package wide converts between Go strings and the NUL-terminated UTF-16 and
// ANSI buffers used across the native OPC DA call boundary.
package wide

import (
	"unicode/utf16"
	"unsafe"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Encode converts s to a NUL-terminated UTF-16 buffer suitable for passing
// to the native side.
func Encode(s string) []uint16 {
	return append(utf16.Encode([]rune(s)), 0)
}

// EncodeANSI converts s to a NUL-terminated Windows-1252 buffer. Runes with
// no Windows-1252 representation are replaced, never fatal.
func EncodeANSI(s string) []byte {
	enc := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())
	out, err := enc.Bytes([]byte(s))
	if err != nil {
		// ReplaceUnsupported substitutes every unmappable rune, so the
		// encoder has nothing left to fail on.
		out = []byte(s)
	}
	return append(out, 0)
}

// Decode reads a NUL-terminated UTF-16 string at p. A nil pointer decodes to
// the empty string. Invalid sequences are replaced with U+FFFD.
func Decode(p unsafe.Pointer) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*uint16)(unsafe.Add(p, n*2)) != 0 {
		n++
	}
	return DecodeSlice(unsafe.Slice((*uint16)(p), n))
}

// DecodeSlice converts UTF-16 code units (without a terminator) to a string.
func DecodeSlice(u []uint16) string {
	return string(utf16.Decode(u))
}

// DecodeANSI reads a NUL-terminated single-byte string at p, interpreting it
// as Windows-1252. A nil pointer decodes to the empty string.
func DecodeANSI(p unsafe.Pointer) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		n++
	}
	b := unsafe.Slice((*byte)(p), n)
	out, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}
