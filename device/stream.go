package device

import (
	"context"
	"sync"
	"sync/atomic"
)

type work func() error

// stream executes work items one at a time in submission order.
type stream struct {
	mu     sync.RWMutex
	closed bool
	ops    chan work
	done   chan struct{}

	errMu sync.Mutex
	err   error

	pending atomic.Int64
}

func newStream(depth int) *stream {
	s := &stream{
		ops:  make(chan work, depth),
		done: make(chan struct{}),
	}
	go s.loop()
	return s
}

func (s *stream) loop() {
	defer close(s.done)
	for op := range s.ops {
		if err := op(); err != nil {
			s.errMu.Lock()
			if s.err == nil {
				s.err = err
			}
			s.errMu.Unlock()
		}
		s.pending.Add(-1)
	}
}

// submit enqueues op. It returns false if the stream is closed.
func (s *stream) submit(ctx context.Context, op work) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, nil
	}
	// A ready send would otherwise win the select at random.
	if err := ctx.Err(); err != nil {
		return true, err
	}

	s.pending.Add(1)
	select {
	case s.ops <- op:
		return true, nil
	case <-ctx.Done():
		s.pending.Add(-1)
		return true, ctx.Err()
	}
}

func (s *stream) synchronize(ctx context.Context) error {
	fence := make(chan struct{})
	ok, err := s.submit(ctx, func() error {
		close(fence)
		return nil
	})
	if err != nil {
		return err
	}
	if !ok {
		return ErrClosed
	}

	select {
	case <-fence:
	case <-ctx.Done():
		return ctx.Err()
	}

	s.errMu.Lock()
	defer s.errMu.Unlock()
	err = s.err
	s.err = nil
	return err
}

func (s *stream) close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.ops)
	s.mu.Unlock()

	<-s.done
	return nil
}
