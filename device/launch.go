package device

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Block identifies one block of a 1-D launch.
type Block struct {
	Idx int // block index within the grid
	Dim int // threads per block
}

// Range returns the half-open thread range [lo, hi) this block covers for an
// iteration space of n elements. hi never exceeds n.
func (b Block) Range(n int) (lo, hi int) {
	lo = b.Idx * b.Dim
	hi = lo + b.Dim
	if lo > n {
		lo = n
	}
	if hi > n {
		hi = n
	}
	return lo, hi
}

// Kernel is the body of one block. Every thread of the block is executed by
// the single call, typically by looping over Block.Range.
type Kernel func(blk Block)

// Launch enqueues kernel over grid blocks of block threads each and returns
// without waiting for it to run. A zero grid enqueues nothing.
func (d *Device) Launch(ctx context.Context, grid, block int, kernel Kernel) error {
	if grid < 0 || block <= 0 {
		return fmt.Errorf("%w: grid=%d block=%d", ErrInvalidLaunch, grid, block)
	}
	if grid == 0 {
		return nil
	}
	if err := d.ctrl.AcquireLaunch(ctx); err != nil {
		return err
	}

	ok, err := d.stream.submit(ctx, func() error {
		return d.run(grid, block, kernel)
	})
	if err != nil {
		return err
	}
	if !ok {
		return ErrClosed
	}

	d.launches.Add(1)
	return nil
}

func (d *Device) run(grid, block int, kernel Kernel) error {
	var g errgroup.Group
	g.SetLimit(d.ctrl.MaxConcurrentBlocks())

	for idx := 0; idx < grid; idx++ {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					d.faults.Add(1)
					err = fmt.Errorf("%w: block %d: %v", ErrKernelFault, idx, r)
				}
			}()
			kernel(Block{Idx: idx, Dim: block})
			d.blocks.Add(1)
			return nil
		})
	}

	return g.Wait()
}
