package ewise

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/graphblas/descriptor"
	"github.com/hupe1980/graphblas/device"
	"github.com/hupe1980/graphblas/internal/kernels"
	"github.com/hupe1980/graphblas/semiring"
	"github.com/hupe1980/graphblas/trace"
	"github.com/hupe1980/graphblas/vector"
)

// Mult computes w = u ⊙ v under mask, where ⊙ is op's multiply and op's
// identity marks masked-off values. mask and accum may be nil. accum is
// traced only.
//
// Kernels run asynchronously; w's host view is refreshed by its next host read.
// All validation happens before w is touched, and a cancelled ctx returns
// before any work. A launch that fails after w was reserved leaves w with
// Unknown storage.
func Mult(ctx context.Context, w, mask *vector.Vector, accum *semiring.BinaryOp, op semiring.Op,
	u, v *vector.Vector, desc *descriptor.Descriptor) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validate(w, mask, op, u, v, desc); err != nil {
		return err
	}

	maskStorage := vector.Unknown
	if mask != nil {
		maskStorage = mask.Storage()
	}

	plan, err := SelectVariant(u.Storage(), v.Storage(), maskStorage)
	if err != nil {
		return err
	}

	obs := desc.Observer()
	obs.OnDispatch(ctx, dispatchEvent(plan, mask, accum, desc))

	start := time.Now()
	defer func() {
		obs.OnComplete(ctx, plan.Variant.String(), time.Since(start), err)
	}()

	if plan.Variant == SparseSparse {
		obs.OnUnimplemented(ctx, plan.Variant.String())
		if desc.Strict() {
			return fmt.Errorf("%w: %s", ErrNotImplemented, plan.Variant)
		}
		desc.Logger().WarnContext(ctx, "ewise mult sparse-sparse not implemented; output left unchanged")
		return nil
	}

	mul := semiring.ExtractMul(op)
	if plan.Swapped {
		u, v = v, u
		mul = op.Mul().Flip().Func()
	}

	for _, x := range []*vector.Vector{u, v, mask} {
		if x == nil {
			continue
		}
		if err := x.PrepareInput(ctx); err != nil {
			return err
		}
	}

	e := &exec{
		ctx:      ctx,
		dev:      u.Device(),
		obs:      obs,
		w:        w,
		bound:    boundOf(plan.Bound, w, u, mask),
		nt:       desc.ThreadCount(),
		identity: op.Identity(),
		mul:      mul,
	}

	switch plan.Variant {
	case DenseDense:
		err = e.denseDense(mask, u, v, plan.Masked)
	case DenseDenseSparseMask:
		err = e.denseDenseSparseMask(mask, u, v)
	case SparseDense:
		err = e.sparseDense(mask, u, v, plan.Finalize)
	default:
		err = e.sparseDenseSparseMask(mask, u, v)
	}
	if err != nil {
		return err
	}

	w.MarkWritten(plan.Output, e.bound, plan.Finalize)
	return nil
}

// boundOf resolves a plan's iteration bound against the (possibly swapped)
// operands.
func boundOf(b Bound, w, u, mask *vector.Vector) int {
	switch b {
	case BoundDomain:
		return w.Size()
	case BoundU:
		return u.Sparse().Nvals()
	case BoundMask:
		return mask.Sparse().Nvals()
	default:
		return 0
	}
}

func validate(w, mask *vector.Vector, op semiring.Op, u, v *vector.Vector, desc *descriptor.Descriptor) error {
	switch {
	case w == nil || u == nil || v == nil:
		return fmt.Errorf("%w: nil vector", ErrInvalidObject)
	case op == nil:
		return fmt.Errorf("%w: nil operator", ErrInvalidObject)
	case desc == nil:
		return fmt.Errorf("%w: nil descriptor", ErrInvalidObject)
	case w == u || w == v || (mask != nil && w == mask):
		return fmt.Errorf("%w: output aliases an input", ErrInvalidObject)
	}

	n := w.Size()
	operands := []struct {
		name string
		x    *vector.Vector
	}{{"u", u}, {"v", v}, {"mask", mask}}

	for _, o := range operands {
		if o.x == nil {
			continue
		}
		if o.x.Size() != n {
			return &ErrDimensionMismatch{Operand: o.name, Expected: n, Actual: o.x.Size(), cause: ErrSizeMismatch}
		}
		if o.x.Device() != w.Device() {
			return fmt.Errorf("%w: %s", ErrDeviceMismatch, o.name)
		}
	}
	if desc.Device() != nil && desc.Device() != w.Device() {
		return fmt.Errorf("%w: descriptor", ErrDeviceMismatch)
	}
	if mask != nil && mask.Storage() == vector.Unknown {
		return fmt.Errorf("%w: mask storage %s", ErrInvalidObject, mask.Storage())
	}
	return nil
}

func dispatchEvent(plan Plan, mask *vector.Vector, accum *semiring.BinaryOp, desc *descriptor.Descriptor) trace.DispatchEvent {
	cfg := desc.Config()
	ev := trace.DispatchEvent{
		Variant:       plan.Variant.String(),
		MaskStorage:   "none",
		UseMask:       mask != nil,
		UseAccum:      accum != nil,
		UseComplement: cfg.Mask == descriptor.SCMP,
		UseReplace:    cfg.Output == descriptor.Replace,
		Swapped:       plan.Swapped,
	}
	if mask != nil {
		ev.MaskStorage = mask.Storage().String()
	}
	return ev
}

// exec carries the per-call launch state. Its methods reserve w and enqueue
// kernels; Mult records the result on w once they succeed.
type exec struct {
	ctx      context.Context
	dev      *device.Device
	obs      trace.Observer
	w        *vector.Vector
	bound    int
	nt       int
	identity float32
	mul      kernels.BinaryFunc
}

// launch enqueues body over the bound. A failed launch invalidates w, whose
// buffers were already reserved and possibly written.
func (e *exec) launch(name string, body func(lo, hi int)) error {
	g := NewGeometry(e.bound, e.nt)
	if g.Empty() {
		return nil
	}

	e.obs.OnLaunch(e.ctx, trace.LaunchEvent{Kernel: name, Grid: g.Grid, Block: g.Block, Bound: e.bound})
	bound := e.bound
	err := e.dev.Launch(e.ctx, g.Grid, g.Block, func(blk device.Block) {
		lo, hi := blk.Range(bound)
		body(lo, hi)
	})
	if err != nil {
		e.w.Invalidate()
		return fmt.Errorf("ewise: launch %s: %w", name, err)
	}
	return nil
}

func (e *exec) denseDense(mask, u, v *vector.Vector, masked bool) error {
	wd, err := e.w.ReserveDense()
	if err != nil {
		return err
	}

	wVal := wd.Values().Float32s()
	uVal := u.Dense().Values().Float32s()
	vVal := v.Dense().Values().Float32s()
	mul, identity := e.mul, e.identity

	if masked {
		mVal := mask.Dense().Values().Float32s()
		return e.launch("mul_dense_masked", func(lo, hi int) {
			kernels.MulDenseMasked(wVal, mVal, uVal, vVal, identity, mul, lo, hi)
		})
	}
	return e.launch("mul_dense", func(lo, hi int) {
		kernels.MulDense(wVal, uVal, vVal, mul, lo, hi)
	})
}

func (e *exec) denseDenseSparseMask(mask, u, v *vector.Vector) error {
	ws, err := e.w.ReserveSparse(e.bound)
	if err != nil {
		return err
	}

	ms := mask.Sparse()
	wInd, wVal := ws.Indices().Uint32s(), ws.Values().Float32s()
	mInd, mVal := ms.Indices().Uint32s(), ms.Values().Float32s()
	uVal := u.Dense().Values().Float32s()
	vVal := v.Dense().Values().Float32s()
	mul, identity := e.mul, e.identity

	return e.launch("mul_dense_sparse_mask", func(lo, hi int) {
		kernels.MulDenseSparseMask(wInd, wVal, mInd, mVal, identity, mul, uVal, vVal, lo, hi)
	})
}

func (e *exec) sparseDense(mask, u, v *vector.Vector, finalize bool) error {
	ws, err := e.w.ReserveSparse(e.bound)
	if err != nil {
		return err
	}

	us := u.Sparse()
	wInd, wVal := ws.Indices().Uint32s(), ws.Values().Float32s()
	uInd, uVal := us.Indices().Uint32s(), us.Values().Float32s()
	vVal := v.Dense().Values().Float32s()
	mul, identity := e.mul, e.identity

	err = e.launch("mul_sparse_dense", func(lo, hi int) {
		kernels.MulSparseDense(wInd, wVal, uInd, uVal, vVal, mul, lo, hi)
	})
	if err != nil || !finalize {
		return err
	}

	mVal := mask.Dense().Values().Float32s()
	return e.launch("zero_dense_identity", func(lo, hi int) {
		kernels.ZeroDenseIdentity(mVal, identity, wInd, wVal, lo, hi)
	})
}

func (e *exec) sparseDenseSparseMask(mask, u, v *vector.Vector) error {
	ws, err := e.w.ReserveSparse(e.bound)
	if err != nil {
		return err
	}

	ms := mask.Sparse()
	us := u.Sparse()
	wInd, wVal := ws.Indices().Uint32s(), ws.Values().Float32s()
	mInd, mVal := ms.Indices().Uint32s(), ms.Values().Float32s()
	uInd := us.Indices().Uint32s()[:us.Nvals()]
	uVal := us.Values().Float32s()
	vVal := v.Dense().Values().Float32s()
	mul, identity := e.mul, e.identity

	return e.launch("mul_sparse_dense_sparse_mask", func(lo, hi int) {
		kernels.MulSparseDenseSparseMask(wInd, wVal, mInd, mVal, identity, mul, uInd, uVal, vVal, lo, hi)
	})
}
