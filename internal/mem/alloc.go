// Package mem provides memory allocation utilities.
package mem

import (
	"unsafe"
)

// Alignment is the byte alignment of every device allocation (64 bytes).
const Alignment = 64

// WordSize is the width in bytes of one device word (index or value).
const WordSize = 4

// AllocAligned allocates a zeroed byte slice of the given size with 64-byte alignment.
//
// The underlying array is slightly larger than requested and is kept alive by
// the returned slice.
func AllocAligned(size int) []byte {
	if size <= 0 {
		return nil
	}

	buf := make([]byte, size+Alignment)

	addr := uintptr(unsafe.Pointer(&buf[0])) //nolint:gosec // unsafe is required for memory alignment
	offset := (Alignment - (addr & (Alignment - 1))) & (Alignment - 1)

	return buf[offset : offset+uintptr(size) : offset+uintptr(size)]
}

// AllocWords allocates n zeroed device words.
func AllocWords(n int) []byte {
	return AllocAligned(n * WordSize)
}

// Float32s reinterprets an aligned byte slice as float32 words.
// Trailing bytes that do not fill a whole word are ignored.
func Float32s(b []byte) []float32 {
	n := len(b) / WordSize
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&b[0])), n) //nolint:gosec // unsafe is required for typed views
}

// Uint32s reinterprets an aligned byte slice as uint32 words.
func Uint32s(b []byte) []uint32 {
	n := len(b) / WordSize
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(&b[0])), n) //nolint:gosec // unsafe is required for typed views
}
