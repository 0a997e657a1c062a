package arena

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hupe1980/graphblas/device"
)

// ErrClosed is returned when the scratch arena has been freed.
var ErrClosed = errors.New("arena: closed")

// Device is the subset of device operations the arena needs.
type Device interface {
	Malloc(n int) (*device.Buffer, error)
	Free(b *device.Buffer)
	Memcpy(ctx context.Context, dst, src *device.Buffer, n int) error
	Download(ctx context.Context, dst []float32, b *device.Buffer) error
}

// Stats tracks scratch arena growth.
//
// Note on semantics:
//   - Grows: number of reallocations performed
//   - WordsCopied: words carried forward across all growths
//   - DeviceBytes: size of the current device buffer
//   - PeakBytes: largest transient footprint (old + new buffer during a growth)
//   - HostBytes: size of the host shadow
type Stats struct {
	Grows       uint64 // Historical
	WordsCopied uint64 // Historical
	DeviceBytes int64  // Current
	PeakBytes   int64  // High-water mark
	HostBytes   int64  // Current
}

// Scratch is a growable, non-shrinking device scratch buffer plus host shadow.
// It is safe for concurrent use.
type Scratch struct {
	mu     sync.Mutex
	dev    Device
	buf    *device.Buffer
	dSize  int
	host   []float32
	hSize  int
	stats  Stats
	closed bool
}

// New creates an empty scratch arena. Nothing is allocated until the first Reserve.
func New(dev Device) *Scratch {
	return &Scratch{dev: dev}
}

// Reserve grows the device buffer to at least n words.
//
// If n <= Len() the buffer, its identity and its contents are unchanged.
// Otherwise a buffer of exactly n words replaces it, with the first Len()
// words copied forward.
func (s *Scratch) Reserve(ctx context.Context, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if n <= s.dSize {
		return nil
	}

	next, err := s.dev.Malloc(n)
	if err != nil {
		return fmt.Errorf("arena: reserve %d words: %w", n, err)
	}

	old := s.buf
	if old != nil {
		if err := s.dev.Memcpy(ctx, next, old, s.dSize); err != nil {
			s.dev.Free(next)
			return fmt.Errorf("arena: copy forward %d words: %w", s.dSize, err)
		}
		s.stats.WordsCopied += uint64(s.dSize)
	}

	if transient := old.Bytes() + next.Bytes(); transient > s.stats.PeakBytes {
		s.stats.PeakBytes = transient
	}

	s.dev.Free(old)
	s.buf = next
	s.dSize = n
	s.stats.Grows++
	s.stats.DeviceBytes = next.Bytes()

	return nil
}

// Len returns the device buffer size in words.
func (s *Scratch) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dSize
}

// HostLen returns the host shadow size in words.
func (s *Scratch) HostLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hSize
}

// Buffer returns the current device buffer, or nil before the first Reserve.
// The buffer is invalidated by the next growing Reserve.
func (s *Scratch) Buffer() *device.Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf
}

// Host refreshes and returns the host shadow of the valid device words.
// The returned slice is owned by the arena and overwritten by the next call.
func (s *Scratch) Host(ctx context.Context) ([]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}
	if s.dSize == 0 {
		return nil, nil
	}

	if s.hSize < s.dSize {
		s.host = make([]float32, s.dSize)
		s.hSize = s.dSize
		s.stats.HostBytes = int64(s.hSize) * device.WordSize
	}

	if err := s.dev.Download(ctx, s.host[:s.dSize], s.buf); err != nil {
		return nil, err
	}
	return s.host[:s.dSize], nil
}

// Stats returns a snapshot of growth statistics.
func (s *Scratch) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Free releases the host shadow and the device buffer. Freeing an arena that
// never allocated, or freeing twice, is a no-op.
func (s *Scratch) Free() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	s.host = nil
	s.hSize = 0
	if s.buf != nil {
		s.dev.Free(s.buf)
		s.buf = nil
	}
	s.dSize = 0
	s.stats.DeviceBytes = 0
	s.stats.HostBytes = 0
}
