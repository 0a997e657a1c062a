package ewise

// Geometry is a 1-D launch shape.
type Geometry struct {
	Grid  int // number of blocks
	Block int // threads per block
	Bound int // iteration bound
}

// NewGeometry returns ceil(bound / nt) blocks of nt threads. A non-positive
// bound yields a zero grid. nt must be positive.
func NewGeometry(bound, nt int) Geometry {
	g := Geometry{Block: nt, Bound: bound}
	if bound > 0 {
		g.Grid = (bound + nt - 1) / nt
	}
	return g
}

// Empty reports whether the geometry launches nothing.
func (g Geometry) Empty() bool { return g.Grid == 0 }
