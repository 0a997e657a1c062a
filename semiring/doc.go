// Package semiring provides the combining operations consumed by element-wise
// kernels: binary operators, monoids and semirings over float32.
//
// A Semiring pairs an additive Monoid, whose identity is the semiring zero,
// with a multiplicative BinaryOp. Element-wise multiply uses the multiply
// operator and treats the additive identity as "no value".
//
//	op := semiring.PlusTimes
//	mul := semiring.ExtractMul(op) // raw callable for kernels
//	zero := op.Identity()          // 0
package semiring
