package semiring

import "math"

// BinaryFunc is a raw binary operator callable.
type BinaryFunc func(a, b float32) float32

// BinaryOp is a named binary operator.
type BinaryOp struct {
	name string
	fn   BinaryFunc
}

// NewBinaryOp creates a named binary operator.
func NewBinaryOp(name string, fn BinaryFunc) BinaryOp {
	return BinaryOp{name: name, fn: fn}
}

// Name returns the operator name.
func (op BinaryOp) Name() string { return op.name }

// Func returns the raw callable.
func (op BinaryOp) Func() BinaryFunc { return op.fn }

// Apply evaluates the operator.
func (op BinaryOp) Apply(a, b float32) float32 { return op.fn(a, b) }

// Flip returns the operator with its arguments swapped: Flip(op)(a, b) == op(b, a).
func (op BinaryOp) Flip() BinaryOp {
	fn := op.fn
	return BinaryOp{
		name: "flip(" + op.name + ")",
		fn:   func(a, b float32) float32 { return fn(b, a) },
	}
}

// Monoid is an associative binary operator with an identity element.
type Monoid struct {
	op       BinaryOp
	identity float32
}

// NewMonoid creates a monoid.
func NewMonoid(op BinaryOp, identity float32) Monoid {
	return Monoid{op: op, identity: identity}
}

// Op returns the monoid operator.
func (m Monoid) Op() BinaryOp { return m.op }

// Identity returns the monoid identity.
func (m Monoid) Identity() float32 { return m.identity }

// Semiring combines an additive monoid with a multiplicative operator.
type Semiring struct {
	name string
	add  Monoid
	mul  BinaryOp
}

// New creates a semiring.
func New(name string, add Monoid, mul BinaryOp) Semiring {
	return Semiring{name: name, add: add, mul: mul}
}

// Name returns the semiring name.
func (s Semiring) Name() string { return s.name }

// Identity returns the additive identity (the semiring zero).
func (s Semiring) Identity() float32 { return s.add.identity }

// Add returns the additive monoid.
func (s Semiring) Add() Monoid { return s.add }

// Mul returns the multiplicative operator.
func (s Semiring) Mul() BinaryOp { return s.mul }

// WithMul returns a copy of s using mul as its multiplicative operator.
func (s Semiring) WithMul(mul BinaryOp) Semiring {
	s.mul = mul
	return s
}

// Op is what element-wise kernels consume from a combining operation.
type Op interface {
	Identity() float32
	Mul() BinaryOp
}

// ExtractMul returns the raw multiply callable of op.
func ExtractMul(op Op) BinaryFunc {
	return op.Mul().Func()
}

// Binary operators.
var (
	Plus   = NewBinaryOp("plus", func(a, b float32) float32 { return a + b })
	Minus  = NewBinaryOp("minus", func(a, b float32) float32 { return a - b })
	Times  = NewBinaryOp("times", func(a, b float32) float32 { return a * b })
	Div    = NewBinaryOp("div", func(a, b float32) float32 { return a / b })
	Min    = NewBinaryOp("min", func(a, b float32) float32 { return min(a, b) })
	Max    = NewBinaryOp("max", func(a, b float32) float32 { return max(a, b) })
	First  = NewBinaryOp("first", func(a, _ float32) float32 { return a })
	Second = NewBinaryOp("second", func(_, b float32) float32 { return b })
	LOr    = NewBinaryOp("lor", func(a, b float32) float32 { return boolToFloat(a != 0 || b != 0) })
	LAnd   = NewBinaryOp("land", func(a, b float32) float32 { return boolToFloat(a != 0 && b != 0) })
)

// Monoids.
var (
	PlusMonoid  = NewMonoid(Plus, 0)
	TimesMonoid = NewMonoid(Times, 1)
	MinMonoid   = NewMonoid(Min, float32(math.Inf(1)))
	MaxMonoid   = NewMonoid(Max, float32(math.Inf(-1)))
	LOrMonoid   = NewMonoid(LOr, 0)
)

// Semirings.
var (
	PlusTimes = New("plus_times", PlusMonoid, Times)
	MinPlus   = New("min_plus", MinMonoid, Plus)
	MaxPlus   = New("max_plus", MaxMonoid, Plus)
	MaxTimes  = New("max_times", MaxMonoid, Times)
	MinTimes  = New("min_times", MinMonoid, Times)
	PlusMin   = New("plus_min", PlusMonoid, Min)
	LOrLAnd   = New("lor_land", LOrMonoid, LAnd)
)

func boolToFloat(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
