package vector

// Storage tags the live physical representation of a Vector.
type Storage uint8

const (
	// Unknown marks a vector that holds no data yet.
	Unknown Storage = iota
	// Dense marks a fully materialized vector.
	Dense
	// Sparse marks a compressed (index, value) vector.
	Sparse
)

// String returns the string representation of a Storage.
func (s Storage) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case Dense:
		return "dense"
	case Sparse:
		return "sparse"
	default:
		return "invalid"
	}
}
