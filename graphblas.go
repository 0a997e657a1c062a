package graphblas

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/graphblas/descriptor"
	"github.com/hupe1980/graphblas/device"
	"github.com/hupe1980/graphblas/ewise"
	"github.com/hupe1980/graphblas/semiring"
	"github.com/hupe1980/graphblas/vector"
)

// Context is a computation context: one device, one descriptor and the
// ambient logger and metrics shared by every call.
//
// Vectors created by a Context live on its device. Calls writing the same
// output vector must not run concurrently.
type Context struct {
	dev        *device.Device
	desc       *descriptor.Descriptor
	logger     *Logger
	metrics    MetricsCollector
	ownsDevice bool
	closed     atomic.Bool
}

// New creates a Context.
func New(optFns ...Option) *Context {
	opts := options{
		descriptor:       descriptor.DefaultConfig(),
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	dev := opts.device
	owns := false
	if dev == nil {
		dev = device.New(opts.deviceOptions...)
		owns = true
	}

	desc := descriptor.New(dev,
		descriptor.WithConfig(opts.descriptor),
		descriptor.WithObserver(opts.observer),
		descriptor.WithLogger(opts.logger.Logger),
		descriptor.WithStrict(opts.strict),
	)

	return &Context{
		dev:        dev,
		desc:       desc,
		logger:     opts.logger,
		metrics:    opts.metricsCollector,
		ownsDevice: owns,
	}
}

// Device returns the context's device.
func (c *Context) Device() *device.Device { return c.dev }

// Descriptor returns the context's descriptor. Settings changed on it apply
// to every following call.
func (c *Context) Descriptor() *descriptor.Descriptor { return c.desc }

// NewVector creates an empty output vector of size n.
func (c *Context) NewVector(n int) (*vector.Vector, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	return vector.New(c.dev, n)
}

// NewDense uploads a dense vector.
func (c *Context) NewDense(ctx context.Context, values []float32) (*vector.Vector, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	x, err := vector.NewDense(ctx, c.dev, values)
	c.recordCreate(ctx, vector.Dense, len(values), len(values), err)
	return x, err
}

// NewSparse uploads a sparse vector of size n from ascending unique indices.
func (c *Context) NewSparse(ctx context.Context, n int, indices []uint32, values []float32) (*vector.Vector, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	x, err := vector.NewSparse(ctx, c.dev, n, indices, values)
	c.recordCreate(ctx, vector.Sparse, n, len(indices), err)
	return x, err
}

// NewMask uploads a sparse structural mask with the nonzero pattern of pattern.
func (c *Context) NewMask(ctx context.Context, n int, pattern *roaring.Bitmap) (*vector.Vector, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	x, err := vector.NewMask(ctx, c.dev, n, pattern)
	nvals := 0
	if x != nil {
		nvals = x.Nvals()
	}
	c.recordCreate(ctx, vector.Sparse, n, nvals, err)
	return x, err
}

func (c *Context) recordCreate(ctx context.Context, storage vector.Storage, n, nvals int, err error) {
	c.metrics.RecordVectorCreate(nvals, err)
	c.logger.LogVectorCreate(ctx, storage.String(), n, nvals, err)
}

// EWiseMult computes w = u ⊙ v under mask with op's multiply. mask and accum
// may be nil; accum is not applied. See ewise.Mult.
//
// Sparse times sparse is not implemented: it succeeds without writing w and
// reports a warning through the logger and the observer. With the default
// NoopLogger and no observer that report is silent; use WithLogger,
// WithObserver or WithStrict to surface it.
func (c *Context) EWiseMult(ctx context.Context, w, mask *vector.Vector, accum *semiring.BinaryOp,
	op semiring.Op, u, v *vector.Vector) error {
	if c.closed.Load() {
		return ErrClosed
	}

	start := time.Now()
	err := ewise.Mult(ctx, w, mask, accum, op, u, v, c.desc)
	c.metrics.RecordEWiseMult(time.Since(start), err)

	size := 0
	output := vector.Unknown
	if w != nil {
		size = w.Size()
		output = w.Storage()
	}
	c.logger.WithSize(size).LogEWiseMult(ctx, output.String(), err)
	return err
}

// Synchronize waits for all enqueued device work.
func (c *Context) Synchronize(ctx context.Context) error {
	if c.closed.Load() {
		return ErrClosed
	}
	return c.dev.Synchronize(ctx)
}

// Stats returns the device activity counters.
func (c *Context) Stats() device.Stats { return c.dev.Stats() }

// Close releases the descriptor and, if the context created it, the device.
// Closing twice is a no-op.
func (c *Context) Close() error {
	if c == nil || !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	var firstErr error
	if err := c.desc.Close(); err != nil {
		firstErr = err
	}
	if c.ownsDevice {
		if err := c.dev.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	c.logger.LogClose(context.Background(), c.dev.Stats().PeakMemory, firstErr)
	return firstErr
}
