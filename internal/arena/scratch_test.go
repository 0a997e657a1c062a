package arena

import (
	"context"
	"testing"

	"github.com/hupe1980/graphblas/device"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDevice(t *testing.T, opts ...device.Option) *device.Device {
	t.Helper()
	d := device.New(opts...)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestScratch_LazyAllocation(t *testing.T) {
	d := newDevice(t)
	s := New(d)

	assert.Zero(t, s.Len())
	assert.Nil(t, s.Buffer())
	assert.Zero(t, d.Stats().Allocations)

	host, err := s.Host(context.Background())
	require.NoError(t, err)
	assert.Nil(t, host)
}

func TestScratch_ReserveIdempotent(t *testing.T) {
	ctx := context.Background()
	d := newDevice(t)
	s := New(d)

	require.NoError(t, s.Reserve(ctx, 16))
	buf := s.Buffer()
	require.NoError(t, d.Upload(ctx, buf, []float32{1, 2, 3}))

	for _, n := range []int{0, 1, 15, 16} {
		require.NoError(t, s.Reserve(ctx, n))
		assert.Same(t, buf, s.Buffer())
		assert.Equal(t, 16, s.Len())
	}

	host, err := s.Host(ctx)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3}, host[:3])
	assert.Equal(t, uint64(1), s.Stats().Grows)
}

func TestScratch_MonotonicGrowth(t *testing.T) {
	ctx := context.Background()
	d := newDevice(t)
	s := New(d)

	require.NoError(t, s.Reserve(ctx, 4))
	require.NoError(t, d.Upload(ctx, s.Buffer(), []float32{4, 3, 2, 1}))
	first := s.Buffer()

	require.NoError(t, s.Reserve(ctx, 10))
	assert.Equal(t, 10, s.Len())
	assert.NotSame(t, first, s.Buffer())

	host, err := s.Host(ctx)
	require.NoError(t, err)
	require.Len(t, host, 10)
	assert.Equal(t, []float32{4, 3, 2, 1}, host[:4])
	assert.Equal(t, 10, s.HostLen())

	stats := s.Stats()
	assert.Equal(t, uint64(2), stats.Grows)
	assert.Equal(t, uint64(4), stats.WordsCopied)
	assert.Equal(t, int64(40), stats.DeviceBytes)
	assert.Equal(t, int64(40), stats.HostBytes)
}

func TestScratch_PeakMemory(t *testing.T) {
	ctx := context.Background()
	d := newDevice(t)
	s := New(d)

	require.NoError(t, s.Reserve(ctx, 100))
	require.NoError(t, d.Synchronize(ctx))
	d.Controller().ResetPeak()

	require.NoError(t, s.Reserve(ctx, 150))
	require.NoError(t, d.Synchronize(ctx))

	// Both buffers are live between the allocation and the stream-ordered free.
	assert.Equal(t, int64(250*device.WordSize), d.Stats().PeakMemory)
	assert.Equal(t, int64(250*device.WordSize), s.Stats().PeakBytes)
	assert.Equal(t, int64(150*device.WordSize), d.Stats().MemoryInUse)
}

func TestScratch_AllocationFailure(t *testing.T) {
	ctx := context.Background()
	d := newDevice(t, device.WithMemoryLimit(64*device.WordSize))
	s := New(d)

	require.NoError(t, s.Reserve(ctx, 40))
	buf := s.Buffer()

	// 40 + 41 words exceed the budget during the copy-forward window.
	err := s.Reserve(ctx, 41)
	assert.ErrorIs(t, err, device.ErrAllocationFailed)
	assert.Equal(t, 40, s.Len())
	assert.Same(t, buf, s.Buffer())
}

func TestScratch_Free(t *testing.T) {
	ctx := context.Background()
	d := newDevice(t)

	empty := New(d)
	empty.Free()
	empty.Free()

	s := New(d)
	require.NoError(t, s.Reserve(ctx, 8))
	_, err := s.Host(ctx)
	require.NoError(t, err)

	s.Free()
	s.Free()
	require.NoError(t, d.Synchronize(ctx))

	assert.Zero(t, d.Stats().MemoryInUse)
	assert.Zero(t, s.Len())
	assert.Zero(t, s.HostLen())
	assert.ErrorIs(t, s.Reserve(ctx, 1), ErrClosed)
	_, err = s.Host(ctx)
	assert.ErrorIs(t, err, ErrClosed)
}
