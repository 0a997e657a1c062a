package device

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/hupe1980/graphblas/internal/mem"
)

// WordSize is the fixed element width of device buffers in bytes.
const WordSize = mem.WordSize

// Buffer is a region of device memory holding 4-byte words.
//
// Typed views returned by Float32s and Uint32s alias device memory; they must
// only be touched from kernels or after Synchronize.
type Buffer struct {
	dev   *Device
	data  []byte
	words int
	freed atomic.Bool
}

// Malloc allocates a zeroed buffer of n words, charged against the device memory budget.
// A zero-length request returns an empty buffer that is not charged.
func (d *Device) Malloc(n int) (*Buffer, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative size %d", ErrAllocationFailed, n)
	}
	if n == 0 {
		return &Buffer{dev: d}, nil
	}

	bytes := int64(n) * WordSize
	if err := d.ctrl.AcquireMemory(bytes); err != nil {
		return nil, fmt.Errorf("%w: %d bytes: %w", ErrAllocationFailed, bytes, err)
	}

	d.allocations.Add(1)
	return &Buffer{
		dev:   d,
		data:  mem.AllocWords(n),
		words: n,
	}, nil
}

// Free releases b in stream order. Freeing nil or an already freed buffer is a no-op.
func (d *Device) Free(b *Buffer) {
	if b == nil || !b.freed.CompareAndSwap(false, true) {
		return
	}

	release := func() error {
		d.ctrl.ReleaseMemory(int64(b.words) * WordSize)
		d.frees.Add(1)
		return nil
	}

	// A closed stream has nothing left in flight.
	if ok, _ := d.stream.submit(context.Background(), release); !ok {
		_ = release()
	}
}

// Memcpy copies n words from src to dst in stream order.
func (d *Device) Memcpy(ctx context.Context, dst, src *Buffer, n int) error {
	if n == 0 {
		return nil
	}
	if n < 0 || n > dst.Len() || n > src.Len() {
		return fmt.Errorf("device: memcpy of %d words out of range (dst %d, src %d)", n, dst.Len(), src.Len())
	}

	ok, err := d.stream.submit(ctx, func() error {
		copy(dst.data[:n*WordSize], src.data[:n*WordSize])
		return nil
	})
	if err != nil {
		return err
	}
	if !ok {
		return ErrClosed
	}
	return nil
}

// Upload synchronizes the stream and copies host values into b starting at word 0.
func (d *Device) Upload(ctx context.Context, b *Buffer, values []float32) error {
	if len(values) > b.Len() {
		return fmt.Errorf("device: upload of %d words into buffer of %d", len(values), b.Len())
	}
	if err := d.Synchronize(ctx); err != nil {
		return err
	}
	copy(b.Float32s(), values)
	return nil
}

// UploadIndices synchronizes the stream and copies host indices into b.
func (d *Device) UploadIndices(ctx context.Context, b *Buffer, indices []uint32) error {
	if len(indices) > b.Len() {
		return fmt.Errorf("device: upload of %d words into buffer of %d", len(indices), b.Len())
	}
	if err := d.Synchronize(ctx); err != nil {
		return err
	}
	copy(b.Uint32s(), indices)
	return nil
}

// Download synchronizes the stream and copies the first len(dst) words of b to the host.
func (d *Device) Download(ctx context.Context, dst []float32, b *Buffer) error {
	if len(dst) > b.Len() {
		return fmt.Errorf("device: download of %d words from buffer of %d", len(dst), b.Len())
	}
	if err := d.Synchronize(ctx); err != nil {
		return err
	}
	copy(dst, b.Float32s())
	return nil
}

// DownloadIndices synchronizes the stream and copies indices to the host.
func (d *Device) DownloadIndices(ctx context.Context, dst []uint32, b *Buffer) error {
	if len(dst) > b.Len() {
		return fmt.Errorf("device: download of %d words from buffer of %d", len(dst), b.Len())
	}
	if err := d.Synchronize(ctx); err != nil {
		return err
	}
	copy(dst, b.Uint32s())
	return nil
}

// Len returns the buffer size in words.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return b.words
}

// Bytes returns the buffer size in bytes.
func (b *Buffer) Bytes() int64 {
	return int64(b.Len()) * WordSize
}

// Device returns the device that owns b.
func (b *Buffer) Device() *Device {
	if b == nil {
		return nil
	}
	return b.dev
}

// Float32s returns a float32 view of device memory.
func (b *Buffer) Float32s() []float32 {
	if b == nil {
		return nil
	}
	return mem.Float32s(b.data)
}

// Uint32s returns a uint32 view of device memory.
func (b *Buffer) Uint32s() []uint32 {
	if b == nil {
		return nil
	}
	return mem.Uint32s(b.data)
}
