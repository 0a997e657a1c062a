// Package kernels provides the block bodies of the element-wise multiply kernels.
//
// Every kernel operates on the half-open thread range [lo, hi) of one block,
// so the same body serves any launch geometry.
//
// # Implementations
//
//   - generic: one element per loop iteration
//   - unrolled: 8x unrolled loops for the dense sweeps
//
// Runtime CPU feature detection selects the unrolled bodies when wide vector
// units are present. Set GRAPHBLAS_KERNELS=generic to force the fallback.
package kernels
