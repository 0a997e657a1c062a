// Package promtrace exports dispatcher trace points as Prometheus metrics.
//
//	reg := prometheus.NewRegistry()
//	obs := promtrace.New(reg)
//	desc := descriptor.New(dev, descriptor.WithObserver(obs))
package promtrace

import (
	"context"
	"time"

	"github.com/hupe1980/graphblas/trace"
	"github.com/prometheus/client_golang/prometheus"
)

// Observer implements trace.Observer with Prometheus collectors.
type Observer struct {
	dispatches    *prometheus.CounterVec
	launches      *prometheus.CounterVec
	blocks        *prometheus.CounterVec
	unimplemented *prometheus.CounterVec
	latency       *prometheus.HistogramVec
}

var _ trace.Observer = (*Observer)(nil)

// New creates an Observer and registers its collectors with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Observer {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	o := &Observer{
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "graphblas_ewise_dispatches_total",
			Help: "Element-wise calls by selected variant and mask storage",
		}, []string{"variant", "mask"}),
		launches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "graphblas_kernel_launches_total",
			Help: "Kernel launches by kernel name",
		}, []string{"kernel"}),
		blocks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "graphblas_kernel_blocks_total",
			Help: "Grid blocks launched by kernel name",
		}, []string{"kernel"}),
		unimplemented: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "graphblas_ewise_unimplemented_total",
			Help: "Calls that hit a variant without a kernel",
		}, []string{"variant"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "graphblas_ewise_duration_seconds",
			Help:    "Host-side duration of element-wise calls (launch, not completion)",
			Buckets: prometheus.DefBuckets,
		}, []string{"variant", "status"}),
	}

	reg.MustRegister(o.dispatches, o.launches, o.blocks, o.unimplemented, o.latency)
	return o
}

// OnDispatch implements trace.Observer.
func (o *Observer) OnDispatch(_ context.Context, ev trace.DispatchEvent) {
	mask := ev.MaskStorage
	if !ev.UseMask {
		mask = "none"
	}
	o.dispatches.WithLabelValues(ev.Variant, mask).Inc()
}

// OnLaunch implements trace.Observer.
func (o *Observer) OnLaunch(_ context.Context, ev trace.LaunchEvent) {
	o.launches.WithLabelValues(ev.Kernel).Inc()
	o.blocks.WithLabelValues(ev.Kernel).Add(float64(ev.Grid))
}

// OnUnimplemented implements trace.Observer.
func (o *Observer) OnUnimplemented(_ context.Context, variant string) {
	o.unimplemented.WithLabelValues(variant).Inc()
}

// OnComplete implements trace.Observer.
func (o *Observer) OnComplete(_ context.Context, variant string, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	o.latency.WithLabelValues(variant, status).Observe(d.Seconds())
}
