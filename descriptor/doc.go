// Package descriptor holds per-call configuration for element-wise operations
// and owns a lazily grown device scratch buffer.
//
// # Fields
//
// A Descriptor stores one Value per Field. Enumerated fields (Output, Mask,
// Input0, Input1, Mode, Direction, LoadBalance, Debug) take named values;
// numeric fields (TA, TB, NT, Precision) take the number itself:
//
//	d := descriptor.New(dev)
//	_ = d.Set(descriptor.Mask, descriptor.SCMP)
//	_ = d.Set(descriptor.NT, 256)
//	nt, _ := d.Get(descriptor.NT) // 256
//
// Set rejects unknown fields with ErrInvalidField and values outside the
// field's domain with ErrInvalidValue.
//
// # Scratch
//
// Resize grows the device scratch buffer. It never shrinks; growth allocates
// exactly the requested size, copies the valid words forward and frees the old
// buffer, so device memory briefly peaks at old + new bytes. Any Buffer
// obtained from Scratch before a growing Resize is invalid afterwards.
//
// Close releases host and device memory and is idempotent.
package descriptor
