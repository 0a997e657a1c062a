package ewise

import (
	"errors"
	"fmt"

	"github.com/hupe1980/graphblas/device"
)

var (
	// ErrInvalidObject is returned for a nil operand, an operand or mask with
	// unknown storage, or an output that aliases an input.
	ErrInvalidObject = errors.New("ewise: invalid object")
	// ErrDeviceMismatch is returned when vectors live on different devices.
	ErrDeviceMismatch = errors.New("ewise: device mismatch")
	// ErrNotImplemented is returned for sparse times sparse in strict mode.
	ErrNotImplemented = errors.New("ewise: variant not implemented")
	// ErrSizeMismatch is the cause carried by every ErrDimensionMismatch.
	ErrSizeMismatch = errors.New("ewise: size mismatch")
	// ErrAllocationFailed is returned when reserving output memory fails.
	ErrAllocationFailed = device.ErrAllocationFailed
)

// ErrDimensionMismatch indicates an operand whose domain size differs from the output's.
//
// The underlying error can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Operand  string
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("ewise: dimension mismatch for %s: expected %d, got %d", e.Operand, e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }
