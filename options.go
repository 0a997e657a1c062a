package graphblas

import (
	"github.com/hupe1980/graphblas/descriptor"
	"github.com/hupe1980/graphblas/device"
	"github.com/hupe1980/graphblas/trace"
)

type options struct {
	device           *device.Device
	deviceOptions    []device.Option
	descriptor       descriptor.Config
	observer         trace.Observer
	metricsCollector MetricsCollector
	logger           *Logger
	strict           bool
}

// Option configures a Context.
type Option func(*options)

// WithDevice runs the context on an existing device. The context does not
// close a device it did not create.
func WithDevice(dev *device.Device) Option {
	return func(o *options) {
		o.device = dev
	}
}

// WithDeviceOptions configures the device the context creates.
// Ignored when WithDevice is given.
//
// Example:
//
//	gb := graphblas.New(graphblas.WithDeviceOptions(
//	    device.WithMemoryLimit(1<<30),
//	    device.WithMaxConcurrentBlocks(8),
//	))
func WithDeviceOptions(opts ...device.Option) Option {
	return func(o *options) {
		o.deviceOptions = append(o.deviceOptions, opts...)
	}
}

// WithDescriptorConfig replaces the default descriptor settings.
// New panics if cfg does not validate.
func WithDescriptorConfig(cfg descriptor.Config) Option {
	return func(o *options) {
		o.descriptor = cfg
	}
}

// WithObserver installs a dispatch trace observer.
func WithObserver(obs trace.Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithMetricsCollector sets a metrics collector.
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger sets the logger.
// If nil is passed, NoopLogger is used.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithDebug enables debug traces through the logger.
func WithDebug(enabled bool) Option {
	return func(o *options) {
		o.descriptor.Debug = enabled
	}
}

// WithStrict makes unimplemented variants return ErrNotImplemented.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}
