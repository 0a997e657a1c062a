// Package ewise implements masked element-wise multiply, w = u ⊙ v under an
// optional mask, on device vectors.
//
// # Variants
//
// Mult selects one of four kernel variants from the storage of u, v and the
// mask (see SelectVariant for the full table):
//
//   - DenseDense: dense output, one slot per position; a dense mask gates
//     positions to the identity
//   - DenseDenseSparseMask: sparse output over the mask's nonzeros
//   - SparseDense: sparse output over u's nonzeros; a dense mask adds a
//     finalize pass that drops gated-off slots at the next host read
//   - SparseDenseSparseMask: sparse output over the mask's nonzeros
//
// Dense u with sparse v is computed as sparse times dense with the operands
// swapped and the operator flipped. Sparse times sparse is not implemented:
// Mult reports it to the observer and logger and leaves w untouched, or
// returns ErrNotImplemented when the descriptor is strict.
//
// # Masking
//
// A mask value equal to the operator's identity counts as off. For sparse
// masks the mask's nvals is an upper bound on the output; slots whose
// position is off, or missing from a sparse u, hold the identity.
//
// The accumulator and the complement and replace descriptor settings are
// traced but not applied.
//
// # Launch Geometry
//
// Every launch uses the descriptor's thread count as block width and
// ceil(bound / NT) blocks, where bound is the variant's iteration bound. A zero
// bound launches nothing.
package ewise
