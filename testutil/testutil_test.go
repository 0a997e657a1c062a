package testutil

import (
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
)

func TestDense(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.Dense(64)

	assert.Len(t, v, 64)
	for _, x := range v {
		assert.GreaterOrEqual(t, x, float32(1))
		assert.Less(t, x, float32(2))
	}
}

func TestSparse(t *testing.T) {
	rng := NewRNG(4711)

	ind, val := rng.Sparse(256, 0.2)

	assert.Equal(t, len(ind), len(val))
	assert.NotEmpty(t, ind)
	for j := 1; j < len(ind); j++ {
		assert.Less(t, ind[j-1], ind[j])
	}
	assert.Less(t, ind[len(ind)-1], uint32(256))
}

func TestPattern(t *testing.T) {
	rng := NewRNG(4711)

	bm := rng.Pattern(100, 1)
	assert.Equal(t, uint64(100), bm.GetCardinality())

	bm = rng.Pattern(100, 0)
	assert.True(t, bm.IsEmpty())
}

func TestReset(t *testing.T) {
	rng := NewRNG(42)
	a := rng.Dense(8)
	rng.Reset()
	b := rng.Dense(8)

	assert.Equal(t, a, b)
	assert.Equal(t, int64(42), rng.Seed())
}

func TestDenseMask(t *testing.T) {
	mask := DenseMask(4, roaring.BitmapOf(1, 3), 0)
	assert.Equal(t, []float32{0, 1, 0, 1}, mask)
}

func TestReferences(t *testing.T) {
	mul := func(a, b float32) float32 { return a * b }

	assert.Equal(t, []float32{10, 40, 90, 160}, DenseMult([]float32{1, 2, 3, 4}, []float32{10, 20, 30, 40}, mul))

	ind, val := SparseDenseMult([]uint32{1, 3}, []float32{5, 7}, []float32{2, 2, 2, 2}, mul)
	assert.Equal(t, []uint32{1, 3}, ind)
	assert.Equal(t, []float32{10, 14}, val)
}
