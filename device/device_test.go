package device

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMalloc(t *testing.T) {
	d := New(WithMemoryLimit(64))
	defer d.Close()

	b, err := d.Malloc(8)
	require.NoError(t, err)
	assert.Equal(t, 8, b.Len())
	assert.Equal(t, int64(32), b.Bytes())
	assert.Len(t, b.Float32s(), 8)
	assert.Len(t, b.Uint32s(), 8)
	assert.Same(t, d, b.Device())
	assert.Equal(t, int64(32), d.Stats().MemoryInUse)

	_, err = d.Malloc(16)
	assert.ErrorIs(t, err, ErrAllocationFailed)

	empty, err := d.Malloc(0)
	require.NoError(t, err)
	assert.Zero(t, empty.Len())
	assert.Nil(t, empty.Float32s())

	_, err = d.Malloc(-1)
	assert.ErrorIs(t, err, ErrAllocationFailed)

	d.Free(b)
	d.Free(b)
	d.Free(nil)
	require.NoError(t, d.Synchronize(context.Background()))

	stats := d.Stats()
	assert.Zero(t, stats.MemoryInUse)
	assert.Equal(t, int64(32), stats.PeakMemory)
	assert.Equal(t, uint64(1), stats.Allocations)
	assert.Equal(t, uint64(1), stats.Frees)
}

func TestMemcpyAndTransfer(t *testing.T) {
	ctx := context.Background()
	d := New()
	defer d.Close()

	src, err := d.Malloc(4)
	require.NoError(t, err)
	dst, err := d.Malloc(6)
	require.NoError(t, err)

	require.NoError(t, d.Upload(ctx, src, []float32{1, 2, 3, 4}))
	require.NoError(t, d.Memcpy(ctx, dst, src, 4))

	out := make([]float32, 6)
	require.NoError(t, d.Download(ctx, out, dst))
	assert.Equal(t, []float32{1, 2, 3, 4, 0, 0}, out)

	assert.Error(t, d.Memcpy(ctx, src, dst, 6))
	assert.Error(t, d.Upload(ctx, src, make([]float32, 5)))
	assert.Error(t, d.Download(ctx, make([]float32, 5), src))
	require.NoError(t, d.Memcpy(ctx, dst, src, 0))

	idx, err := d.Malloc(3)
	require.NoError(t, err)
	require.NoError(t, d.UploadIndices(ctx, idx, []uint32{7, 8, 9}))
	got := make([]uint32, 3)
	require.NoError(t, d.DownloadIndices(ctx, got, idx))
	assert.Equal(t, []uint32{7, 8, 9}, got)
}

func TestLaunch(t *testing.T) {
	ctx := context.Background()
	d := New(WithMaxConcurrentBlocks(2))
	defer d.Close()

	const n = 1000
	buf, err := d.Malloc(n)
	require.NoError(t, err)
	out := buf.Float32s()

	block := 128
	grid := (n + block - 1) / block
	require.NoError(t, d.Launch(ctx, grid, block, func(blk Block) {
		lo, hi := blk.Range(n)
		for i := lo; i < hi; i++ {
			out[i] = float32(i)
		}
	}))
	require.NoError(t, d.Synchronize(ctx))

	for i := 0; i < n; i++ {
		require.Equal(t, float32(i), out[i])
	}

	stats := d.Stats()
	assert.Equal(t, uint64(1), stats.Launches)
	assert.Equal(t, uint64(grid), stats.Blocks)
	assert.Equal(t, 2, stats.MaxBlocks)
}

func TestLaunch_Ordering(t *testing.T) {
	ctx := context.Background()
	d := New()
	defer d.Close()

	var seq []int
	for i := 0; i < 10; i++ {
		require.NoError(t, d.Launch(ctx, 1, 1, func(Block) {
			seq = append(seq, i)
		}))
	}
	require.NoError(t, d.Synchronize(ctx))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, seq)
}

func TestLaunch_Invalid(t *testing.T) {
	ctx := context.Background()
	d := New()
	defer d.Close()

	assert.ErrorIs(t, d.Launch(ctx, -1, 32, func(Block) {}), ErrInvalidLaunch)
	assert.ErrorIs(t, d.Launch(ctx, 1, 0, func(Block) {}), ErrInvalidLaunch)

	var called atomic.Bool
	require.NoError(t, d.Launch(ctx, 0, 32, func(Block) { called.Store(true) }))
	require.NoError(t, d.Synchronize(ctx))
	assert.False(t, called.Load())
	assert.Zero(t, d.Stats().Launches)
}

func TestLaunch_Fault(t *testing.T) {
	ctx := context.Background()
	d := New()
	defer d.Close()

	require.NoError(t, d.Launch(ctx, 4, 1, func(blk Block) {
		if blk.Idx == 2 {
			panic("boom")
		}
	}))
	err := d.Synchronize(ctx)
	assert.ErrorIs(t, err, ErrKernelFault)
	assert.Equal(t, uint64(1), d.Stats().KernelFaults)

	// The fault is reported once.
	require.NoError(t, d.Synchronize(ctx))
}

func TestBlockRange(t *testing.T) {
	tests := []struct {
		blk    Block
		n      int
		lo, hi int
	}{
		{Block{Idx: 0, Dim: 4}, 10, 0, 4},
		{Block{Idx: 2, Dim: 4}, 10, 8, 10},
		{Block{Idx: 3, Dim: 4}, 10, 10, 10},
	}
	for _, tt := range tests {
		lo, hi := tt.blk.Range(tt.n)
		assert.Equal(t, tt.lo, lo)
		assert.Equal(t, tt.hi, hi)
	}
}

func TestClose(t *testing.T) {
	ctx := context.Background()
	d := New()

	b, err := d.Malloc(4)
	require.NoError(t, err)

	require.NoError(t, d.Close())
	require.NoError(t, d.Close())

	assert.ErrorIs(t, d.Synchronize(ctx), ErrClosed)
	assert.ErrorIs(t, d.Launch(ctx, 1, 1, func(Block) {}), ErrClosed)

	d.Free(b)
	assert.Zero(t, d.Stats().MemoryInUse)
}

func TestLaunchCancelledContext(t *testing.T) {
	d := New()
	defer d.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Int32
	for i := 0; i < 50; i++ {
		err := d.Launch(ctx, 1, 1, func(Block) { ran.Add(1) })
		require.ErrorIs(t, err, context.Canceled)
	}

	require.NoError(t, d.Synchronize(context.Background()))
	assert.Zero(t, ran.Load())
	assert.Zero(t, d.Stats().Launches)
}
