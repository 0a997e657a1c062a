package testutil

import (
	"math/rand"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// FillUniformRange fills dst with values in [minVal, maxVal).
func (r *RNG) FillUniformRange(dst []float32, minVal, maxVal float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	span := maxVal - minVal
	for i := range dst {
		dst[i] = minVal + r.rand.Float32()*span
	}
}

// Dense returns n values in [1, 2). Values are never zero, so a dense
// result's nonzero pattern covers every position.
func (r *RNG) Dense(n int) []float32 {
	vals := make([]float32, n)
	r.FillUniformRange(vals, 1, 2)
	return vals
}

// Sparse returns ascending unique indices in [0, n), each present with
// probability density, with values in [1, 2).
func (r *RNG) Sparse(n int, density float64) ([]uint32, []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ind []uint32
	var val []float32
	for i := range n {
		if r.rand.Float64() < density {
			ind = append(ind, uint32(i))
			val = append(val, 1+r.rand.Float32())
		}
	}
	return ind, val
}

// Pattern returns a bitmap over [0, n) with each position set with probability density.
func (r *RNG) Pattern(n int, density float64) *roaring.Bitmap {
	r.mu.Lock()
	defer r.mu.Unlock()

	bm := roaring.New()
	for i := range n {
		if r.rand.Float64() < density {
			bm.Add(uint32(i))
		}
	}
	return bm
}

// DenseMask returns n mask values: 1 where on is set, otherwise identity.
func DenseMask(n int, on *roaring.Bitmap, identity float32) []float32 {
	mask := make([]float32, n)
	for i := range mask {
		if on.Contains(uint32(i)) {
			mask[i] = 1
		} else {
			mask[i] = identity
		}
	}
	return mask
}

// DenseMult is the host reference for element-wise multiply of two dense vectors.
func DenseMult(u, v []float32, mul func(a, b float32) float32) []float32 {
	w := make([]float32, len(u))
	for i := range u {
		w[i] = mul(u[i], v[i])
	}
	return w
}

// SparseDenseMult is the host reference for a sparse u times a dense v.
func SparseDenseMult(uInd []uint32, uVal, v []float32, mul func(a, b float32) float32) ([]uint32, []float32) {
	ind := append([]uint32(nil), uInd...)
	val := make([]float32, len(uVal))
	for j, idx := range uInd {
		val[j] = mul(uVal[j], v[idx])
	}
	return ind, val
}
