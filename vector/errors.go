package vector

import "errors"

var (
	// ErrLengthMismatch is returned when index and value slices differ in length.
	ErrLengthMismatch = errors.New("vector: index and value lengths differ")
	// ErrInvalidIndex is returned for an index outside [0, N) or out of ascending order.
	ErrInvalidIndex = errors.New("vector: invalid index")
	// ErrNilDevice is returned when a vector is created without a device.
	ErrNilDevice = errors.New("vector: nil device")
	// ErrUnknownStorage is returned when reading a vector that was never written.
	ErrUnknownStorage = errors.New("vector: unknown storage")
)
