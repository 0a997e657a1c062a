// Package device provides the emulated compute device every vector and
// descriptor allocates from.
//
// # Execution Model
//
// A Device owns a single ordered stream served by one goroutine. Launch,
// Memcpy and Free enqueue work and return immediately; work items run strictly
// in submission order. The blocks of one launch run concurrently on a worker
// pool bounded by resource.Config.MaxConcurrentBlocks.
//
// Completion is observed lazily: Synchronize waits for everything submitted so
// far and reports the first kernel fault, if any.
//
// # Memory
//
// Every Malloc is charged against the device's resource.Controller. A refused
// allocation surfaces as ErrAllocationFailed and is never retried. Free is
// stream-ordered, so a buffer released while a queued kernel still reads it
// stays valid until that kernel has run.
package device
