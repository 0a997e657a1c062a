// Package graphblas provides masked element-wise multiply over device-resident
// sparse and dense vectors, in the style of the GraphBLAS eWiseMult primitive.
//
// A Context bundles an emulated device (an ordered stream with a bounded block
// worker pool and a memory budget), a Descriptor with per-call settings, and
// the ambient logger and metrics.
//
// # Quick Start
//
//	ctx := context.Background()
//	gb := graphblas.New()
//	defer gb.Close()
//
//	u, _ := gb.NewDense(ctx, []float32{1, 2, 3, 4})
//	v, _ := gb.NewDense(ctx, []float32{10, 20, 30, 40})
//	w, _ := gb.NewVector(4)
//
//	_ = gb.EWiseMult(ctx, w, nil, nil, semiring.PlusTimes, u, v)
//	vals, _ := w.ExtractDense(ctx, 0) // [10 40 90 160]
//
// # Masks
//
// A mask restricts the output to its nonzero pattern. Sparse masks bound the
// output size by their nonzero count:
//
//	mask, _ := gb.NewMask(ctx, 4, roaring.BitmapOf(1, 3))
//	_ = gb.EWiseMult(ctx, w, mask, nil, semiring.PlusTimes, u, v)
//
// Mask values equal to the operator's identity are off.
//
// # Asynchrony
//
// EWiseMult enqueues kernels and returns. Host reads on a vector
// (ExtractTuples, ExtractDense, Pattern) wait for the device and refresh the
// host copy. Kernel faults surface on the next host read or Synchronize.
//
// # Observability
//
// Install a trace.Observer with WithObserver (for example
// promtrace.New(prometheus.DefaultRegisterer)) for per-variant traces, or a
// MetricsCollector with WithMetricsCollector for call counts. WithDebug writes
// every trace point to the logger at debug level.
//
// # Kernel Selection
//
// Host kernel bodies are chosen at startup from CPU features. Set
// GRAPHBLAS_KERNELS=generic or GRAPHBLAS_KERNELS=unrolled to override.
package graphblas
