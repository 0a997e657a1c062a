package trace

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMulti(t *testing.T) {
	assert.IsType(t, NoopObserver{}, Multi())
	assert.IsType(t, NoopObserver{}, Multi(nil, nil))

	a := &BasicObserver{}
	assert.Same(t, a, Multi(nil, a))

	b := &BasicObserver{}
	m := Multi(a, b)

	ctx := context.Background()
	m.OnDispatch(ctx, DispatchEvent{Variant: "dense-dense", UseMask: true})
	m.OnLaunch(ctx, LaunchEvent{Kernel: "k", Grid: 3, Block: 128, Bound: 300})
	m.OnUnimplemented(ctx, "sparse-sparse")
	m.OnComplete(ctx, "dense-dense", time.Millisecond, errors.New("x"))

	for _, o := range []*BasicObserver{a, b} {
		s := o.GetStats()
		assert.Equal(t, int64(1), s.Dispatches)
		assert.Equal(t, int64(1), s.Launches)
		assert.Equal(t, int64(3), s.Blocks)
		assert.Equal(t, int64(1), s.Unimplemented)
		assert.Equal(t, int64(1), s.Errors)
		assert.Equal(t, int64(1), s.MaskedCalls)
		assert.Equal(t, time.Millisecond.Nanoseconds(), s.AvgNanos)
	}
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	o := NewLogObserver(logger)

	ctx := context.Background()
	o.OnDispatch(ctx, DispatchEvent{Variant: "sparse-dense", MaskStorage: "dense", UseMask: true})
	o.OnLaunch(ctx, LaunchEvent{Kernel: "ewise_mult_sparse_dense", Grid: 1, Block: 128, Bound: 2})
	o.OnUnimplemented(ctx, "sparse-sparse")
	o.OnComplete(ctx, "sparse-dense", time.Microsecond, nil)
	o.OnComplete(ctx, "sparse-dense", time.Microsecond, errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "executing ewise mult")
	assert.Contains(t, out, "variant=sparse-dense")
	assert.Contains(t, out, "mask_storage=dense")
	assert.Contains(t, out, "kernel=ewise_mult_sparse_dense")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "variant=sparse-sparse")
	assert.Contains(t, out, "ewise mult completed")
	assert.Contains(t, out, "error=boom")
}

func TestLogObserver_DefaultLogger(t *testing.T) {
	assert.NotNil(t, NewLogObserver(nil).logger)
}
