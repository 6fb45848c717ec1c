// Package resource gates the byte-rate at which the disk tier is
// allowed to read and write, independent of the LRU tiers' own
// byte-budget accounting.
package resource

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds the resource limits a Controller enforces.
type Config struct {
	// MemoryLimitBytes hard-caps AcquireMemory/TryAcquireMemory
	// reservations, independent of the memory tiers' own LRU byte
	// budgets. 0 means tracking only, no blocking.
	MemoryLimitBytes int64

	// MaxBackgroundWorkers bounds concurrent background work (e.g. a
	// caller running disk enumeration or warm-up passes off the
	// request path). 0 defaults to 1.
	MaxBackgroundWorkers int64

	// IOLimitBytesPerSec caps disk tier throughput when the Controller
	// is installed as a Store's IOLimiter. 0 means unlimited.
	IOLimitBytesPerSec int64
}

// Controller enforces a Config's memory, background-concurrency, and
// disk-throughput budgets. A zero Controller struct is not usable (build
// one with NewController); every method treats a nil *Controller as "no
// limiting" so an optional *Controller field can be left unset.
type Controller struct {
	cfg Config

	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	bgSem *semaphore.Weighted

	ioLimiter *rate.Limiter // nil if unlimited
}

// NewController builds a Controller from cfg.
func NewController(cfg Config) *Controller {
	if cfg.MaxBackgroundWorkers <= 0 {
		cfg.MaxBackgroundWorkers = 1
	}

	c := &Controller{
		cfg:   cfg,
		bgSem: semaphore.NewWeighted(cfg.MaxBackgroundWorkers),
	}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// AcquireMemory reserves bytes against the configured hard limit,
// blocking until available or ctx is canceled. A nil Controller or a
// non-positive byte count is always a no-op success.
func (c *Controller) AcquireMemory(ctx context.Context, bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}

	if c.memSem != nil {
		if err := c.memSem.Acquire(ctx, bytes); err != nil {
			return err
		}
	}

	c.memUsed.Add(bytes)
	return nil
}

// TryAcquireMemory reserves bytes without blocking, reporting whether
// the reservation succeeded.
func (c *Controller) TryAcquireMemory(bytes int64) bool {
	if c == nil || bytes <= 0 {
		return true
	}

	if c.memSem != nil {
		if !c.memSem.TryAcquire(bytes) {
			return false
		}
	}

	c.memUsed.Add(bytes)
	return true
}

// ReleaseMemory returns a prior reservation.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the currently reserved byte total.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// AcquireBackground reserves a background-worker slot, blocking while
// all slots are busy.
func (c *Controller) AcquireBackground(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.bgSem.Acquire(ctx, 1)
}

// ReleaseBackground releases a background-worker slot.
func (c *Controller) ReleaseBackground() {
	if c == nil {
		return
	}
	c.bgSem.Release(1)
}

// TryAcquireBackground reserves a background-worker slot without
// blocking.
func (c *Controller) TryAcquireBackground() bool {
	if c == nil {
		return true
	}
	return c.bgSem.TryAcquire(1)
}

// AcquireIO blocks until the disk-throughput budget allows bytes more
// IO. A nil Controller or an unconfigured IO limit is a no-op. Requests
// larger than one second's budget are admitted in budget-sized steps.
// If the wait would outlast ctx's deadline, the returned error wraps
// context.DeadlineExceeded.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil || c.ioLimiter == nil {
		return nil
	}
	burst := c.ioLimiter.Burst()
	for bytes > 0 {
		n := bytes
		if n > burst {
			n = burst
		}
		if err := c.ioLimiter.WaitN(ctx, n); err != nil {
			if _, ok := ctx.Deadline(); ok && ctx.Err() == nil {
				return fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
			}
			return err
		}
		bytes -= n
	}
	return nil
}
