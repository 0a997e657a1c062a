// Package mem provides aligned allocation for emulated device memory.
//
// # Aligned Allocation
//
// Buffers start on a 64-byte boundary so typed word views (float32, uint32)
// are always naturally aligned and blocks of a kernel never share a cache line
// at the buffer head.
package mem
