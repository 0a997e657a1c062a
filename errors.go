package graphblas

import (
	"errors"

	"github.com/hupe1980/graphblas/descriptor"
	"github.com/hupe1980/graphblas/device"
	"github.com/hupe1980/graphblas/ewise"
	"github.com/hupe1980/graphblas/vector"
)

var (
	// ErrClosed is returned when using a Context after Close.
	ErrClosed = errors.New("graphblas: context closed")

	// ErrInvalidObject is returned for nil operands, operands with unknown
	// storage and outputs that alias an input.
	ErrInvalidObject = ewise.ErrInvalidObject
	// ErrDeviceMismatch is returned when vectors live on different devices.
	ErrDeviceMismatch = ewise.ErrDeviceMismatch
	// ErrSizeMismatch is the cause of every ErrDimensionMismatch.
	ErrSizeMismatch = ewise.ErrSizeMismatch
	// ErrNotImplemented is returned for sparse times sparse in strict mode.
	ErrNotImplemented = ewise.ErrNotImplemented
	// ErrAllocationFailed is returned when the device memory budget refuses an allocation.
	ErrAllocationFailed = device.ErrAllocationFailed
	// ErrInvalidField is returned for an unknown descriptor field.
	ErrInvalidField = descriptor.ErrInvalidField
	// ErrInvalidValue is returned for a descriptor value outside its field's domain.
	ErrInvalidValue = descriptor.ErrInvalidValue
	// ErrInvalidIndex is returned for sparse indices out of range or order.
	ErrInvalidIndex = vector.ErrInvalidIndex
	// ErrLengthMismatch is returned when index and value slices differ in length.
	ErrLengthMismatch = vector.ErrLengthMismatch
)

// ErrDimensionMismatch indicates an operand whose domain size differs from the output's.
type ErrDimensionMismatch = ewise.ErrDimensionMismatch
