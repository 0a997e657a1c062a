// Package arena provides the descriptor-owned scratch arena in device memory.
//
// # Growth Policy
//
// Scratch grows to exactly the requested length and never shrinks. Every growth
// allocates a new device buffer, copies the previously valid words forward in
// stream order, then frees the old buffer. Buffers obtained before a growth are
// invalid afterwards; callers must not keep them across Reserve.
//
// Growing in a loop with slowly increasing targets costs one reallocation per
// call. Compute the final size first.
//
// # Peak Memory
//
// A growth briefly holds both buffers. Stats.PeakBytes records the largest such
// transient footprint (old + new bytes), which is the figure to budget for.
//
// # Host Shadow
//
// Host returns a host-side mirror of the valid device words. The mirror is
// allocated lazily and refreshed on every call.
package arena
