package descriptor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hupe1980/graphblas/device"
	"github.com/hupe1980/graphblas/internal/arena"
	"github.com/hupe1980/graphblas/trace"
)

type options struct {
	config   Config
	observer trace.Observer
	logger   *slog.Logger
	strict   bool
}

// Option configures a Descriptor.
type Option func(*options)

// WithConfig replaces the default settings. New panics if cfg does not validate.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithObserver installs a trace observer. If nil, trace.NoopObserver is used.
func WithObserver(obs trace.Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithLogger sets the logger used for diagnostics and debug traces.
// If nil, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithDebug is shorthand for Set(Debug, On).
func WithDebug(enabled bool) Option {
	return func(o *options) {
		o.config.Debug = enabled
	}
}

// WithStrict makes unimplemented dispatch variants return an error instead of
// succeeding with a diagnostic.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// Descriptor is the per-context configuration consumed by every dispatch.
//
// Settings are safe for concurrent access. The scratch buffer is owned by the
// descriptor and lives until Close.
type Descriptor struct {
	mu       sync.RWMutex
	cfg      Config
	dev      *device.Device
	scratch  *arena.Scratch
	observer trace.Observer
	logger   *slog.Logger
	strict   bool
}

// New creates a Descriptor bound to dev with default settings. dev must not be nil.
func New(dev *device.Device, optFns ...Option) *Descriptor {
	opts := options{config: DefaultConfig()}
	for _, fn := range optFns {
		fn(&opts)
	}

	if err := opts.config.Validate(); err != nil {
		panic(fmt.Sprintf("descriptor: %v", err))
	}
	if opts.observer == nil {
		opts.observer = trace.NoopObserver{}
	}
	if opts.logger == nil {
		opts.logger = slog.Default()
	}

	return &Descriptor{
		cfg:      opts.config,
		dev:      dev,
		scratch:  arena.New(dev),
		observer: opts.observer,
		logger:   opts.logger,
		strict:   opts.strict,
	}
}

// Set writes value into field.
func (d *Descriptor) Set(field Field, value Value) error {
	if err := validate(field, value); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.cfg.set(field, value)
	return nil
}

// Get reads field.
func (d *Descriptor) Get(field Field) (Value, error) {
	if field >= numFields {
		return 0, fmt.Errorf("%w: %s", ErrInvalidField, field)
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cfg.get(field), nil
}

// ToggleTranspose flips an input field between Default and Transpose.
func (d *Descriptor) ToggleTranspose(field Field) error {
	if field != Input0 && field != Input1 {
		return fmt.Errorf("%w: %s is not an input field", ErrInvalidField, field)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cfg.get(field) != Default {
		d.cfg.set(field, Default)
	} else {
		d.cfg.set(field, Transpose)
	}
	return nil
}

// Config returns a snapshot of the settings.
func (d *Descriptor) Config() Config {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cfg
}

// Debug reports whether trace logging is enabled.
func (d *Descriptor) Debug() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cfg.Debug
}

// ThreadCount returns the NT setting.
func (d *Descriptor) ThreadCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cfg.NT
}

// Strict reports whether unimplemented variants are errors.
func (d *Descriptor) Strict() bool { return d.strict }

// Device returns the device the descriptor allocates scratch on.
func (d *Descriptor) Device() *device.Device { return d.dev }

// Logger returns the diagnostics logger.
func (d *Descriptor) Logger() *slog.Logger { return d.logger }

// Observer returns the trace observer for a dispatch. With Debug on, traces are
// also written to the logger at debug level.
func (d *Descriptor) Observer() trace.Observer {
	if d.Debug() {
		return trace.Multi(d.observer, trace.NewLogObserver(d.logger))
	}
	return d.observer
}

// Resize grows the device scratch buffer to at least target words.
func (d *Descriptor) Resize(ctx context.Context, target int) error {
	if err := d.scratch.Reserve(ctx, target); err != nil {
		return fmt.Errorf("descriptor: resize: %w", err)
	}
	return nil
}

// Scratch returns the device scratch buffer, or nil before the first Resize.
func (d *Descriptor) Scratch() *device.Buffer { return d.scratch.Buffer() }

// ScratchLen returns the device scratch size in words.
func (d *Descriptor) ScratchLen() int { return d.scratch.Len() }

// ScratchHost refreshes and returns the host shadow of the scratch buffer.
func (d *Descriptor) ScratchHost(ctx context.Context) ([]float32, error) {
	return d.scratch.Host(ctx)
}

// ScratchStats tracks scratch growth.
type ScratchStats = arena.Stats

// ScratchStats returns scratch growth statistics.
func (d *Descriptor) ScratchStats() ScratchStats { return d.scratch.Stats() }

// Close releases the scratch buffer. Closing twice is a no-op.
func (d *Descriptor) Close() error {
	d.scratch.Free()
	return nil
}
