package ewise

import (
	"testing"

	"github.com/hupe1980/graphblas/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectVariant(t *testing.T) {
	const (
		none   = vector.Unknown
		dense  = vector.Dense
		sparse = vector.Sparse
	)

	tests := []struct {
		u, v, mask vector.Storage
		want       Plan
	}{
		{dense, dense, none, Plan{Variant: DenseDense, Output: dense, Bound: BoundDomain}},
		{dense, dense, dense, Plan{Variant: DenseDense, Output: dense, Bound: BoundDomain, Masked: true}},
		{dense, dense, sparse, Plan{Variant: DenseDenseSparseMask, Output: sparse, Bound: BoundMask}},
		{sparse, dense, none, Plan{Variant: SparseDense, Output: sparse, Bound: BoundU}},
		{sparse, dense, dense, Plan{Variant: SparseDense, Output: sparse, Bound: BoundU, Finalize: true}},
		{sparse, dense, sparse, Plan{Variant: SparseDenseSparseMask, Output: sparse, Bound: BoundMask}},
		{dense, sparse, none, Plan{Variant: SparseDense, Output: sparse, Bound: BoundU, Swapped: true}},
		{dense, sparse, dense, Plan{Variant: SparseDense, Output: sparse, Bound: BoundU, Finalize: true, Swapped: true}},
		{dense, sparse, sparse, Plan{Variant: SparseDenseSparseMask, Output: sparse, Bound: BoundMask, Swapped: true}},
		{sparse, sparse, none, Plan{Variant: SparseSparse, Output: none, Bound: BoundNone}},
		{sparse, sparse, sparse, Plan{Variant: SparseSparse, Output: none, Bound: BoundNone}},
	}

	for _, tt := range tests {
		name := tt.u.String() + "/" + tt.v.String() + "/" + tt.mask.String()
		t.Run(name, func(t *testing.T) {
			got, err := SelectVariant(tt.u, tt.v, tt.mask)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectVariantRejectsUnknown(t *testing.T) {
	_, err := SelectVariant(vector.Unknown, vector.Dense, vector.Unknown)
	assert.ErrorIs(t, err, ErrInvalidObject)

	_, err = SelectVariant(vector.Dense, vector.Dense, vector.Storage(7))
	assert.ErrorIs(t, err, ErrInvalidObject)
}

func TestVariantString(t *testing.T) {
	assert.Equal(t, "dense-dense-sparse-mask", DenseDenseSparseMask.String())
	assert.Equal(t, "sparse-sparse", SparseSparse.String())
	assert.Equal(t, "variant(9)", Variant(9).String())
}

func TestNewGeometry(t *testing.T) {
	tests := []struct {
		bound, nt, grid int
	}{
		{0, 128, 0},
		{-1, 128, 0},
		{1, 128, 1},
		{128, 128, 1},
		{129, 128, 2},
		{1000, 32, 32},
	}
	for _, tt := range tests {
		g := NewGeometry(tt.bound, tt.nt)
		assert.Equal(t, tt.grid, g.Grid, "bound=%d nt=%d", tt.bound, tt.nt)
		assert.Equal(t, tt.nt, g.Block)
		assert.Equal(t, tt.grid == 0, g.Empty())
	}
}
