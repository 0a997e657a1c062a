package kernels

import (
	"math"
	"slices"
)

// BinaryFunc is the raw multiply callable extracted from a semiring.
type BinaryFunc = func(a, b float32) float32

// Tombstone marks a sparse output slot removed by a finalize pass.
// Host-side readers drop tombstoned slots.
const Tombstone = math.MaxUint32

// Kernel function pointers, set once at init.
var (
	kernelMulDense       = mulDenseGeneric
	kernelMulDenseMasked = mulDenseMaskedGeneric
)

func setKernels(impl Impl) {
	switch impl {
	case Unrolled:
		kernelMulDense = mulDenseUnrolled
		kernelMulDenseMasked = mulDenseMaskedUnrolled
	default:
		kernelMulDense = mulDenseGeneric
		kernelMulDenseMasked = mulDenseMaskedGeneric
	}
}

// MulDense computes w[i] = mul(u[i], v[i]) for i in [lo, hi).
func MulDense(w, u, v []float32, mul BinaryFunc, lo, hi int) {
	if lo >= hi {
		return
	}
	kernelMulDense(w[lo:hi], u[lo:hi], v[lo:hi], mul)
}

// MulDenseMasked computes w[i] = mul(u[i], v[i]) where mask[i] != identity,
// and w[i] = identity elsewhere, for i in [lo, hi).
func MulDenseMasked(w, mask, u, v []float32, identity float32, mul BinaryFunc, lo, hi int) {
	if lo >= hi {
		return
	}
	kernelMulDenseMasked(w[lo:hi], mask[lo:hi], u[lo:hi], v[lo:hi], identity, mul)
}

// MulDenseSparseMask emits one output slot per mask entry j in [lo, hi):
// wInd[j] = maskInd[j] and wVal[j] = mul(u[idx], v[idx]), or identity when the
// mask value equals identity.
func MulDenseSparseMask(wInd []uint32, wVal []float32, maskInd []uint32, maskVal []float32,
	identity float32, mul BinaryFunc, u, v []float32, lo, hi int) {
	for j := lo; j < hi; j++ {
		idx := maskInd[j]
		wInd[j] = idx
		if maskVal[j] == identity {
			wVal[j] = identity
			continue
		}
		wVal[j] = mul(u[idx], v[idx])
	}
}

// MulSparseDense emits one output slot per nonzero j of u in [lo, hi):
// wInd[j] = uInd[j] and wVal[j] = mul(uVal[j], v[uInd[j]]).
func MulSparseDense(wInd []uint32, wVal []float32, uInd []uint32, uVal []float32,
	v []float32, mul BinaryFunc, lo, hi int) {
	for j := lo; j < hi; j++ {
		idx := uInd[j]
		wInd[j] = idx
		wVal[j] = mul(uVal[j], v[idx])
	}
}

// MulSparseDenseSparseMask emits one output slot per mask entry j in [lo, hi).
// The mask index is looked up in u's ascending index array; positions absent
// from u, or gated off by the mask value, hold identity.
func MulSparseDenseSparseMask(wInd []uint32, wVal []float32, maskInd []uint32, maskVal []float32,
	identity float32, mul BinaryFunc, uInd []uint32, uVal []float32, v []float32, lo, hi int) {
	for j := lo; j < hi; j++ {
		idx := maskInd[j]
		wInd[j] = idx
		if maskVal[j] == identity {
			wVal[j] = identity
			continue
		}
		pos, found := slices.BinarySearch(uInd, idx)
		if !found {
			wVal[j] = identity
			continue
		}
		wVal[j] = mul(uVal[pos], v[idx])
	}
}

// ZeroDenseIdentity tombstones output slots j in [lo, hi) whose dense mask
// value equals identity. Tombstoned slots hold identity.
func ZeroDenseIdentity(mask []float32, identity float32, wInd []uint32, wVal []float32, lo, hi int) {
	for j := lo; j < hi; j++ {
		idx := wInd[j]
		if idx == Tombstone {
			continue
		}
		if mask[idx] == identity {
			wInd[j] = Tombstone
			wVal[j] = identity
		}
	}
}

func mulDenseGeneric(w, u, v []float32, mul BinaryFunc) {
	for i := range w {
		w[i] = mul(u[i], v[i])
	}
}

// mulDenseUnrolled processes 8 elements per iteration after hoisting bounds checks.
func mulDenseUnrolled(w, u, v []float32, mul BinaryFunc) {
	n := len(w)
	u = u[:n]
	v = v[:n]
	i := 0

	for ; i+8 <= n; i += 8 {
		w[i] = mul(u[i], v[i])
		w[i+1] = mul(u[i+1], v[i+1])
		w[i+2] = mul(u[i+2], v[i+2])
		w[i+3] = mul(u[i+3], v[i+3])
		w[i+4] = mul(u[i+4], v[i+4])
		w[i+5] = mul(u[i+5], v[i+5])
		w[i+6] = mul(u[i+6], v[i+6])
		w[i+7] = mul(u[i+7], v[i+7])
	}

	for ; i < n; i++ {
		w[i] = mul(u[i], v[i])
	}
}

func mulDenseMaskedGeneric(w, mask, u, v []float32, identity float32, mul BinaryFunc) {
	for i := range w {
		if mask[i] == identity {
			w[i] = identity
			continue
		}
		w[i] = mul(u[i], v[i])
	}
}

func mulDenseMaskedUnrolled(w, mask, u, v []float32, identity float32, mul BinaryFunc) {
	n := len(w)
	mask = mask[:n]
	u = u[:n]
	v = v[:n]
	i := 0

	for ; i+4 <= n; i += 4 {
		w[i] = gate(mask[i], identity, mul, u[i], v[i])
		w[i+1] = gate(mask[i+1], identity, mul, u[i+1], v[i+1])
		w[i+2] = gate(mask[i+2], identity, mul, u[i+2], v[i+2])
		w[i+3] = gate(mask[i+3], identity, mul, u[i+3], v[i+3])
	}

	for ; i < n; i++ {
		w[i] = gate(mask[i], identity, mul, u[i], v[i])
	}
}

func gate(m, identity float32, mul BinaryFunc, a, b float32) float32 {
	if m == identity {
		return identity
	}
	return mul(a, b)
}
