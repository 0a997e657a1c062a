package descriptor

import "errors"

var (
	// ErrInvalidField is returned for a field identifier outside the known set.
	ErrInvalidField = errors.New("descriptor: invalid field")
	// ErrInvalidValue is returned for a value outside a field's domain.
	ErrInvalidValue = errors.New("descriptor: invalid value")
)
