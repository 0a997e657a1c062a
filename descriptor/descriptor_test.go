package descriptor

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/hupe1980/graphblas/device"
	"github.com/hupe1980/graphblas/internal/arena"
	"github.com/hupe1980/graphblas/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDescriptor(t *testing.T, devOpts []device.Option, opts ...Option) (*Descriptor, *device.Device) {
	t.Helper()
	dev := device.New(devOpts...)
	d := New(dev, opts...)
	t.Cleanup(func() {
		_ = d.Close()
		_ = dev.Close()
	})
	return d, dev
}

func TestDefaults(t *testing.T) {
	d, _ := newDescriptor(t, nil)

	want := map[Field]Value{
		Output:      Default,
		Mask:        Default,
		Input0:      Default,
		Input1:      Default,
		Mode:        FixedRow,
		TA:          32,
		TB:          32,
		NT:          128,
		Direction:   PushPull,
		LoadBalance: Apspie,
		Precision:   16,
		Debug:       Default,
	}
	for field, value := range want {
		got, err := d.Get(field)
		require.NoError(t, err, field.String())
		assert.Equal(t, value, got, field.String())
	}

	assert.Equal(t, 128, d.ThreadCount())
	assert.False(t, d.Debug())
	assert.False(t, d.Strict())
	assert.Zero(t, d.ScratchLen())
	assert.Nil(t, d.Scratch())
	assert.NoError(t, DefaultConfig().Validate())
}

func TestSetGet(t *testing.T) {
	d, _ := newDescriptor(t, nil)

	require.NoError(t, d.Set(Mask, SCMP))
	require.NoError(t, d.Set(Output, Replace))
	require.NoError(t, d.Set(NT, 256))
	require.NoError(t, d.Set(LoadBalance, MergePath))
	require.NoError(t, d.Set(Debug, On))

	v, err := d.Get(Mask)
	require.NoError(t, err)
	assert.Equal(t, SCMP, v)

	assert.Equal(t, 256, d.ThreadCount())
	assert.True(t, d.Debug())

	cfg := d.Config()
	assert.Equal(t, Replace, cfg.Output)
	assert.Equal(t, MergePath, cfg.LoadBalance)
}

func TestSetRejectsInvalid(t *testing.T) {
	d, _ := newDescriptor(t, nil)

	tests := []struct {
		name  string
		field Field
		value Value
		err   error
	}{
		{"unknown field", Field(200), Default, ErrInvalidField},
		{"mask transpose", Mask, Transpose, ErrInvalidValue},
		{"zero threads", NT, 0, ErrInvalidValue},
		{"negative tile", TA, -4, ErrInvalidValue},
		{"odd precision", Precision, 24, ErrInvalidValue},
		{"mode twc", Mode, TWC, ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, d.Set(tt.field, tt.value), tt.err)
		})
	}

	_, err := d.Get(Field(200))
	assert.ErrorIs(t, err, ErrInvalidField)

	// Rejected writes leave settings untouched.
	assert.Equal(t, DefaultConfig(), d.Config())
}

func TestToggleTranspose(t *testing.T) {
	d, _ := newDescriptor(t, nil)

	require.NoError(t, d.ToggleTranspose(Input0))
	v, _ := d.Get(Input0)
	assert.Equal(t, Transpose, v)

	require.NoError(t, d.ToggleTranspose(Input0))
	v, _ = d.Get(Input0)
	assert.Equal(t, Default, v)

	assert.ErrorIs(t, d.ToggleTranspose(Mask), ErrInvalidField)
}

func TestWithConfigPanicsOnInvalid(t *testing.T) {
	dev := device.New()
	defer dev.Close()

	cfg := DefaultConfig()
	cfg.NT = 0
	assert.Panics(t, func() { New(dev, WithConfig(cfg)) })
}

func TestResize(t *testing.T) {
	ctx := context.Background()
	d, dev := newDescriptor(t, nil)

	require.NoError(t, d.Resize(ctx, 4))
	buf := d.Scratch()
	require.NoError(t, dev.Upload(ctx, buf, []float32{1, 2, 3, 4}))

	// Not larger: no-op, same buffer.
	require.NoError(t, d.Resize(ctx, 4))
	require.NoError(t, d.Resize(ctx, 2))
	assert.Same(t, buf, d.Scratch())
	assert.Equal(t, 4, d.ScratchLen())

	require.NoError(t, d.Resize(ctx, 10))
	assert.NotSame(t, buf, d.Scratch())
	assert.Equal(t, 10, d.ScratchLen())

	host, err := d.ScratchHost(ctx)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3, 4, 0, 0, 0, 0, 0, 0}, host)

	stats := d.ScratchStats()
	assert.Equal(t, uint64(2), stats.Grows)
	assert.Equal(t, int64((4+10)*device.WordSize), stats.PeakBytes)
	assert.GreaterOrEqual(t, dev.Stats().PeakMemory, int64((4+10)*device.WordSize))
}

func TestResizeAllocationFailure(t *testing.T) {
	ctx := context.Background()
	d, _ := newDescriptor(t, []device.Option{device.WithMemoryLimit(8 * device.WordSize)})

	require.NoError(t, d.Resize(ctx, 4))
	buf := d.Scratch()

	// 4 + 6 words exceed the budget while both buffers are live.
	err := d.Resize(ctx, 6)
	require.ErrorIs(t, err, device.ErrAllocationFailed)
	assert.Same(t, buf, d.Scratch())
	assert.Equal(t, 4, d.ScratchLen())
}

func TestClose(t *testing.T) {
	ctx := context.Background()
	d, dev := newDescriptor(t, nil)

	require.NoError(t, d.Close()) // nothing allocated

	d2 := New(dev)
	require.NoError(t, d2.Resize(ctx, 16))
	require.NoError(t, d2.Close())
	require.NoError(t, d2.Close())
	require.NoError(t, dev.Synchronize(ctx))
	assert.Zero(t, dev.Stats().MemoryInUse)

	assert.ErrorIs(t, d2.Resize(ctx, 32), arena.ErrClosed)
}

func TestObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	basic := &trace.BasicObserver{}

	d, _ := newDescriptor(t, nil, WithObserver(basic), WithLogger(logger))
	assert.Same(t, logger, d.Logger())
	assert.Equal(t, basic, d.Observer())

	d.Observer().OnDispatch(context.Background(), trace.DispatchEvent{Variant: "dense-dense"})
	assert.Empty(t, buf.String())

	require.NoError(t, d.Set(Debug, On))
	d.Observer().OnDispatch(context.Background(), trace.DispatchEvent{Variant: "dense-dense"})
	assert.Contains(t, buf.String(), "dense-dense")
	assert.Equal(t, int64(2), basic.GetStats().Dispatches)
}

func TestStrictAndDebugOptions(t *testing.T) {
	d, _ := newDescriptor(t, nil, WithStrict(true), WithDebug(true))
	assert.True(t, d.Strict())
	assert.True(t, d.Debug())
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "load_balance", LoadBalance.String())
	assert.Equal(t, "field(99)", Field(99).String())
	assert.Equal(t, "scmp", SCMP.String())
	assert.Equal(t, "128", Value(128).String())
}
