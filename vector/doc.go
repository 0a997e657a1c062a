// Package vector provides device-resident vectors over an index domain of size N.
//
// # Storage
//
// A Vector carries a storage tag and holds both physical representations, of
// which the tag selects the live one:
//
//   - Dense: N values, index = position
//   - Sparse: nvals ascending, unique (index, value) pairs with nvals <= capacity
//
// A freshly created output vector (New) has Unknown storage until an operation
// writes it.
//
// # Host Mirror
//
// Operations write device memory asynchronously and set NeedUpdate. Host reads
// (ExtractTuples, ExtractDense, Pattern) call Sync, which waits for the device
// stream, copies results back and drops sparse slots removed by a finalize pass.
//
// A Vector is not safe for concurrent mutation.
package vector
