package mem

import (
	"fmt"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestAllocAligned(t *testing.T) {
	sizes := []int{1, 10, 63, 64, 65, 100, 1024}

	for _, size := range sizes {
		buf := AllocAligned(size)
		assert.Len(t, buf, size)
		assert.Equal(t, size, cap(buf))

		addr := uintptr(unsafe.Pointer(&buf[0]))
		assert.Equal(t, uintptr(0), addr%Alignment, "Address %d should be aligned to %d for size %d", addr, Alignment, size)
	}

	assert.Nil(t, AllocAligned(0))
	assert.Nil(t, AllocAligned(-1))
}

func TestAllocWords(t *testing.T) {
	buf := AllocWords(5)
	assert.Len(t, buf, 5*WordSize)
	assert.Nil(t, AllocWords(0))
}

func TestTypedViews(t *testing.T) {
	buf := AllocWords(4)

	f := Float32s(buf)
	assert.Len(t, f, 4)
	f[2] = 1.5

	u := Uint32s(buf)
	assert.Len(t, u, 4)
	assert.Equal(t, uint32(0x3fc00000), u[2])

	assert.Nil(t, Float32s(nil))
	assert.Nil(t, Uint32s(buf[:3]))
}

func BenchmarkAllocWords(b *testing.B) {
	sizes := []int{64, 256, 1024, 4096}
	for _, size := range sizes {
		b.Run(fmt.Sprintf("words=%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = AllocWords(size)
			}
		})
	}
}
