package trace

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// DispatchEvent describes the variant selected for one call and the masking
// state read from the descriptor.
type DispatchEvent struct {
	Variant       string
	MaskStorage   string
	UseMask       bool
	UseAccum      bool
	UseComplement bool
	UseReplace    bool
	Swapped       bool // operands were swapped and the operator flipped
}

// LaunchEvent describes one kernel launch.
type LaunchEvent struct {
	Kernel string
	Grid   int
	Block  int
	Bound  int // iteration bound the grid was derived from
}

// Observer receives trace points from the dispatcher.
type Observer interface {
	OnDispatch(ctx context.Context, ev DispatchEvent)
	OnLaunch(ctx context.Context, ev LaunchEvent)
	OnUnimplemented(ctx context.Context, variant string)
	OnComplete(ctx context.Context, variant string, duration time.Duration, err error)
}

// NoopObserver is a no-op implementation of Observer.
type NoopObserver struct{}

func (NoopObserver) OnDispatch(context.Context, DispatchEvent)                 {}
func (NoopObserver) OnLaunch(context.Context, LaunchEvent)                     {}
func (NoopObserver) OnUnimplemented(context.Context, string)                   {}
func (NoopObserver) OnComplete(context.Context, string, time.Duration, error) {}

// Multi fans trace points out to several observers. Nil observers are skipped.
func Multi(observers ...Observer) Observer {
	var out multi
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	switch len(out) {
	case 0:
		return NoopObserver{}
	case 1:
		return out[0]
	default:
		return out
	}
}

type multi []Observer

func (m multi) OnDispatch(ctx context.Context, ev DispatchEvent) {
	for _, o := range m {
		o.OnDispatch(ctx, ev)
	}
}

func (m multi) OnLaunch(ctx context.Context, ev LaunchEvent) {
	for _, o := range m {
		o.OnLaunch(ctx, ev)
	}
}

func (m multi) OnUnimplemented(ctx context.Context, variant string) {
	for _, o := range m {
		o.OnUnimplemented(ctx, variant)
	}
}

func (m multi) OnComplete(ctx context.Context, variant string, d time.Duration, err error) {
	for _, o := range m {
		o.OnComplete(ctx, variant, d, err)
	}
}

// LogObserver writes trace points to a structured logger.
// Dispatch and launch traces are logged at Debug, diagnostics at Warn.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates a LogObserver. A nil logger uses slog.Default().
func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger}
}

// OnDispatch implements Observer.
func (o *LogObserver) OnDispatch(ctx context.Context, ev DispatchEvent) {
	o.logger.DebugContext(ctx, "executing ewise mult",
		"variant", ev.Variant,
		"mask_storage", ev.MaskStorage,
		"mask", ev.UseMask,
		"accum", ev.UseAccum,
		"scmp", ev.UseComplement,
		"repl", ev.UseReplace,
		"swapped", ev.Swapped,
	)
}

// OnLaunch implements Observer.
func (o *LogObserver) OnLaunch(ctx context.Context, ev LaunchEvent) {
	o.logger.DebugContext(ctx, "kernel launch",
		"kernel", ev.Kernel,
		"grid", ev.Grid,
		"block", ev.Block,
		"bound", ev.Bound,
	)
}

// OnUnimplemented implements Observer.
func (o *LogObserver) OnUnimplemented(ctx context.Context, variant string) {
	o.logger.WarnContext(ctx, "ewise mult variant not implemented",
		"variant", variant,
	)
}

// OnComplete implements Observer.
func (o *LogObserver) OnComplete(ctx context.Context, variant string, d time.Duration, err error) {
	if err != nil {
		o.logger.ErrorContext(ctx, "ewise mult failed",
			"variant", variant,
			"duration", d,
			"error", err,
		)
		return
	}
	o.logger.DebugContext(ctx, "ewise mult completed",
		"variant", variant,
		"duration", d,
	)
}

// BasicObserver counts trace points in memory.
// Useful for debugging and tests without external dependencies.
type BasicObserver struct {
	Dispatches    atomic.Int64
	Launches      atomic.Int64
	Blocks        atomic.Int64
	Unimplemented atomic.Int64
	Errors        atomic.Int64
	TotalNanos    atomic.Int64
	MaskedCalls   atomic.Int64
}

// OnDispatch implements Observer.
func (b *BasicObserver) OnDispatch(_ context.Context, ev DispatchEvent) {
	b.Dispatches.Add(1)
	if ev.UseMask {
		b.MaskedCalls.Add(1)
	}
}

// OnLaunch implements Observer.
func (b *BasicObserver) OnLaunch(_ context.Context, ev LaunchEvent) {
	b.Launches.Add(1)
	b.Blocks.Add(int64(ev.Grid))
}

// OnUnimplemented implements Observer.
func (b *BasicObserver) OnUnimplemented(context.Context, string) {
	b.Unimplemented.Add(1)
}

// OnComplete implements Observer.
func (b *BasicObserver) OnComplete(_ context.Context, _ string, d time.Duration, err error) {
	b.TotalNanos.Add(d.Nanoseconds())
	if err != nil {
		b.Errors.Add(1)
	}
}

// BasicStats is a snapshot of BasicObserver counters.
type BasicStats struct {
	Dispatches    int64
	Launches      int64
	Blocks        int64
	Unimplemented int64
	Errors        int64
	MaskedCalls   int64
	AvgNanos      int64
}

// GetStats returns a snapshot of current counters.
func (b *BasicObserver) GetStats() BasicStats {
	s := BasicStats{
		Dispatches:    b.Dispatches.Load(),
		Launches:      b.Launches.Load(),
		Blocks:        b.Blocks.Load(),
		Unimplemented: b.Unimplemented.Load(),
		Errors:        b.Errors.Load(),
		MaskedCalls:   b.MaskedCalls.Load(),
	}
	if s.Dispatches > 0 {
		s.AvgNanos = b.TotalNanos.Load() / s.Dispatches
	}
	return s
}
