package device

import "errors"

var (
	// ErrAllocationFailed is returned when a device allocation is refused.
	ErrAllocationFailed = errors.New("device: allocation failed")
	// ErrClosed is returned when the device has been closed.
	ErrClosed = errors.New("device: closed")
	// ErrInvalidLaunch is returned for a launch with a negative grid or non-positive block.
	ErrInvalidLaunch = errors.New("device: invalid launch configuration")
	// ErrKernelFault is returned by Synchronize when a kernel block panicked.
	ErrKernelFault = errors.New("device: kernel fault")
)
