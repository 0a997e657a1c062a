// Package resource manages device-wide resource budgets: device memory,
// block-level concurrency and kernel launch rate.
package resource

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrMemoryLimitExceeded is returned when memory limit would be exceeded.
var ErrMemoryLimitExceeded = errors.New("memory limit exceeded")

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for device memory.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// MaxConcurrentBlocks is the maximum number of kernel blocks executing at once.
	// If 0, defaults to GOMAXPROCS.
	MaxConcurrentBlocks int

	// LaunchesPerSecond throttles kernel launches on a shared device.
	// If 0, unlimited.
	LaunchesPerSecond float64
}

// Controller manages device resources (memory, concurrency, launch rate).
type Controller struct {
	cfg Config

	// Memory
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64
	memPeak atomic.Int64

	// Launch
	launchLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentBlocks <= 0 {
		cfg.MaxConcurrentBlocks = runtime.GOMAXPROCS(0)
	}

	c := &Controller{
		cfg: cfg,
	}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.LaunchesPerSecond > 0 {
		burst := int(cfg.LaunchesPerSecond)
		if burst < 1 {
			burst = 1
		}
		c.launchLimiter = rate.NewLimiter(rate.Limit(cfg.LaunchesPerSecond), burst)
	}

	return c
}

// AcquireMemory attempts to reserve memory.
// Returns ErrMemoryLimitExceeded if limit would be exceeded.
// Non-blocking: device allocation is never retried.
func (c *Controller) AcquireMemory(bytes int64) error {
	if c == nil {
		return nil
	}
	if bytes <= 0 {
		return nil
	}

	if c.memSem != nil {
		if !c.memSem.TryAcquire(bytes) {
			return ErrMemoryLimitExceeded
		}
	}

	used := c.memUsed.Add(bytes)
	for {
		peak := c.memPeak.Load()
		if used <= peak || c.memPeak.CompareAndSwap(peak, used) {
			break
		}
	}
	return nil
}

// ReleaseMemory releases reserved memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil {
		return
	}
	if bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the current memory usage in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// PeakMemoryUsage returns the high-water mark of memory usage in bytes.
func (c *Controller) PeakMemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memPeak.Load()
}

// ResetPeak sets the high-water mark to the current usage.
func (c *Controller) ResetPeak() {
	if c == nil {
		return
	}
	c.memPeak.Store(c.memUsed.Load())
}

// MemoryLimit returns the configured memory limit in bytes (0 if unlimited).
func (c *Controller) MemoryLimit() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MemoryLimitBytes
}

// MaxConcurrentBlocks returns the block worker limit.
func (c *Controller) MaxConcurrentBlocks() int {
	if c == nil {
		return runtime.GOMAXPROCS(0)
	}
	return c.cfg.MaxConcurrentBlocks
}

// AcquireLaunch waits until the launch limit allows one more kernel launch.
func (c *Controller) AcquireLaunch(ctx context.Context) error {
	if c == nil || c.launchLimiter == nil {
		return nil
	}
	return c.launchLimiter.Wait(ctx)
}

// TryAcquireLaunch attempts to acquire a launch token without blocking.
func (c *Controller) TryAcquireLaunch() bool {
	if c == nil || c.launchLimiter == nil {
		return true
	}
	return c.launchLimiter.AllowN(time.Now(), 1)
}
