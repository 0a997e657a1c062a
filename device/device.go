package device

import (
	"context"
	"sync/atomic"

	"github.com/hupe1980/graphblas/resource"
)

// DefaultQueueDepth is the number of work items the stream buffers before
// submission blocks.
const DefaultQueueDepth = 64

// Stats is a snapshot of device activity counters.
type Stats struct {
	Launches     uint64 // Historical: kernels launched
	Blocks       uint64 // Historical: blocks executed
	Allocations  uint64 // Historical: successful Malloc calls
	Frees        uint64 // Historical: buffers released
	MemoryInUse  int64  // Current: bytes charged to the controller
	PeakMemory   int64  // High-water mark of MemoryInUse
	MemoryLimit  int64  // Configured limit (0 if unlimited)
	MaxBlocks    int    // Block worker limit
	PendingWork  int64  // Current: work items queued or running
	KernelFaults uint64 // Historical: blocks that panicked
}

type options struct {
	ctrl       *resource.Controller
	cfg        resource.Config
	queueDepth int
}

// Option configures a Device.
type Option func(*options)

// WithMemoryLimit caps device memory in bytes (0 means unlimited).
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.cfg.MemoryLimitBytes = bytes
	}
}

// WithMaxConcurrentBlocks bounds how many blocks of a launch run at once.
func WithMaxConcurrentBlocks(n int) Option {
	return func(o *options) {
		o.cfg.MaxConcurrentBlocks = n
	}
}

// WithLaunchRate throttles kernel launches per second (0 means unlimited).
func WithLaunchRate(perSecond float64) Option {
	return func(o *options) {
		o.cfg.LaunchesPerSecond = perSecond
	}
}

// WithController shares an existing resource controller between devices.
// It takes precedence over the individual limit options.
func WithController(c *resource.Controller) Option {
	return func(o *options) {
		o.ctrl = c
	}
}

// WithQueueDepth sets how many work items the stream buffers.
func WithQueueDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.queueDepth = n
		}
	}
}

// Device is an emulated compute device with its own memory budget and stream.
type Device struct {
	ctrl   *resource.Controller
	stream *stream

	launches    atomic.Uint64
	blocks      atomic.Uint64
	allocations atomic.Uint64
	frees       atomic.Uint64
	faults      atomic.Uint64
}

// New creates a Device and starts its stream.
func New(optFns ...Option) *Device {
	o := options{
		queueDepth: DefaultQueueDepth,
	}
	for _, fn := range optFns {
		fn(&o)
	}

	ctrl := o.ctrl
	if ctrl == nil {
		ctrl = resource.NewController(o.cfg)
	}

	d := &Device{ctrl: ctrl}
	d.stream = newStream(o.queueDepth)
	return d
}

// Controller returns the resource controller charged by this device.
func (d *Device) Controller() *resource.Controller {
	return d.ctrl
}

// Synchronize blocks until all work submitted so far has completed.
// It returns the first kernel fault observed since the previous Synchronize.
func (d *Device) Synchronize(ctx context.Context) error {
	return d.stream.synchronize(ctx)
}

// Stats returns a snapshot of device counters.
func (d *Device) Stats() Stats {
	return Stats{
		Launches:     d.launches.Load(),
		Blocks:       d.blocks.Load(),
		Allocations:  d.allocations.Load(),
		Frees:        d.frees.Load(),
		MemoryInUse:  d.ctrl.MemoryUsage(),
		PeakMemory:   d.ctrl.PeakMemoryUsage(),
		MemoryLimit:  d.ctrl.MemoryLimit(),
		MaxBlocks:    d.ctrl.MaxConcurrentBlocks(),
		PendingWork:  d.stream.pending.Load(),
		KernelFaults: d.faults.Load(),
	}
}

// Close drains the stream and stops it. Buffers freed afterwards are released
// immediately. Close is idempotent.
func (d *Device) Close() error {
	return d.stream.close()
}
