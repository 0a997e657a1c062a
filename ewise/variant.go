package ewise

import (
	"fmt"

	"github.com/hupe1980/graphblas/vector"
)

// Variant is a kernel variant of element-wise multiply.
type Variant uint8

const (
	DenseDense Variant = iota
	DenseDenseSparseMask
	SparseDense
	SparseDenseSparseMask
	SparseSparse
)

func (v Variant) String() string {
	switch v {
	case DenseDense:
		return "dense-dense"
	case DenseDenseSparseMask:
		return "dense-dense-sparse-mask"
	case SparseDense:
		return "sparse-dense"
	case SparseDenseSparseMask:
		return "sparse-dense-sparse-mask"
	case SparseSparse:
		return "sparse-sparse"
	default:
		return fmt.Sprintf("variant(%d)", uint8(v))
	}
}

// Bound names the cardinality a variant iterates over.
type Bound uint8

const (
	// BoundNone marks a variant that launches nothing.
	BoundNone Bound = iota
	// BoundDomain iterates over every position.
	BoundDomain
	// BoundU iterates over u's nonzeros, after any swap.
	BoundU
	// BoundMask iterates over the mask's nonzeros.
	BoundMask
)

// Plan is the dispatch decision for one (u, v, mask) storage triple.
type Plan struct {
	Variant Variant
	// Swapped is set when u and v trade places and the operator is flipped.
	Swapped bool
	// Output is the storage w ends up with. Unknown means w is not written.
	Output vector.Storage
	Bound  Bound
	// Finalize is set when a dense mask is applied by a second pass.
	Finalize bool
	// Masked is set when a dense mask gates a dense output.
	Masked bool
}

// SelectVariant maps operand and mask storage to a Plan. mask is Unknown when
// there is no mask.
//
//	u       v       mask          variant                  w       bound
//	dense   dense   none/dense    DenseDense               dense   N
//	dense   dense   sparse        DenseDenseSparseMask     sparse  mask.nvals
//	sparse  dense   none          SparseDense              sparse  u.nvals
//	sparse  dense   dense         SparseDense + finalize   sparse  u.nvals
//	sparse  dense   sparse        SparseDenseSparseMask    sparse  mask.nvals
//	dense   sparse  any           swapped, as sparse-dense
//	sparse  sparse  any           SparseSparse             untouched
func SelectVariant(u, v, mask vector.Storage) (Plan, error) {
	if !known(u) || !known(v) {
		return Plan{}, fmt.Errorf("%w: operand storage %s x %s", ErrInvalidObject, u, v)
	}
	if mask != vector.Unknown && !known(mask) {
		return Plan{}, fmt.Errorf("%w: mask storage %s", ErrInvalidObject, mask)
	}

	swapped := false
	if u == vector.Dense && v == vector.Sparse {
		u, v = v, u
		swapped = true
	}

	var p Plan
	switch {
	case u == vector.Dense && v == vector.Dense:
		switch mask {
		case vector.Sparse:
			p = Plan{Variant: DenseDenseSparseMask, Output: vector.Sparse, Bound: BoundMask}
		case vector.Dense:
			p = Plan{Variant: DenseDense, Output: vector.Dense, Bound: BoundDomain, Masked: true}
		default:
			p = Plan{Variant: DenseDense, Output: vector.Dense, Bound: BoundDomain}
		}
	case u == vector.Sparse && v == vector.Dense:
		switch mask {
		case vector.Sparse:
			p = Plan{Variant: SparseDenseSparseMask, Output: vector.Sparse, Bound: BoundMask}
		case vector.Dense:
			p = Plan{Variant: SparseDense, Output: vector.Sparse, Bound: BoundU, Finalize: true}
		default:
			p = Plan{Variant: SparseDense, Output: vector.Sparse, Bound: BoundU}
		}
	default:
		p = Plan{Variant: SparseSparse, Output: vector.Unknown, Bound: BoundNone}
	}

	p.Swapped = swapped
	return p, nil
}

func known(s vector.Storage) bool {
	return s == vector.Dense || s == vector.Sparse
}
