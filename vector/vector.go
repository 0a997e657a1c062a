package vector

import (
	"context"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/graphblas/device"
	"github.com/hupe1980/graphblas/internal/kernels"
)

// DenseVector is the dense representation: N device values.
type DenseVector struct {
	val  *device.Buffer
	host []float32
}

// Values returns the device value buffer (nil if never allocated).
func (d *DenseVector) Values() *device.Buffer { return d.val }

// SparseVector is the sparse representation: parallel device index and value
// buffers of equal capacity, of which the first nvals slots are valid.
type SparseVector struct {
	ind      *device.Buffer
	val      *device.Buffer
	nvals    int
	hostInd  []uint32
	hostVal  []float32
	capacity int
}

// Indices returns the device index buffer.
func (s *SparseVector) Indices() *device.Buffer { return s.ind }

// Values returns the device value buffer.
func (s *SparseVector) Values() *device.Buffer { return s.val }

// Nvals returns the number of valid slots.
func (s *SparseVector) Nvals() int { return s.nvals }

// Capacity returns the number of slots the buffers can hold.
func (s *SparseVector) Capacity() int { return s.capacity }

// Vector is a device-resident vector with tagged storage.
type Vector struct {
	dev     *device.Device
	size    int
	storage Storage
	dense   DenseVector
	sparse  SparseVector

	needUpdate bool
	// tombstones is set when a finalize pass may have removed sparse slots.
	tombstones bool
}

// New creates an empty vector of size n with Unknown storage. Use it for outputs.
func New(dev *device.Device, n int) (*Vector, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative size %d", ErrInvalidIndex, n)
	}
	return &Vector{dev: dev, size: n}, nil
}

// NewDense creates a dense vector holding a copy of values.
func NewDense(ctx context.Context, dev *device.Device, values []float32) (*Vector, error) {
	x, err := New(dev, len(values))
	if err != nil {
		return nil, err
	}

	d, err := x.ReserveDense()
	if err != nil {
		return nil, err
	}
	if err := dev.Upload(ctx, d.val, values); err != nil {
		x.Free()
		return nil, err
	}

	d.host = append([]float32(nil), values...)
	x.storage = Dense
	return x, nil
}

// NewSparse creates a sparse vector of size n from ascending, unique indices
// and their values.
func NewSparse(ctx context.Context, dev *device.Device, n int, indices []uint32, values []float32) (*Vector, error) {
	if len(indices) != len(values) {
		return nil, fmt.Errorf("%w: %d indices, %d values", ErrLengthMismatch, len(indices), len(values))
	}
	if err := validateIndices(n, indices); err != nil {
		return nil, err
	}

	x, err := New(dev, n)
	if err != nil {
		return nil, err
	}

	s, err := x.ReserveSparse(len(indices))
	if err != nil {
		return nil, err
	}
	if err := dev.UploadIndices(ctx, s.ind, indices); err != nil {
		x.Free()
		return nil, err
	}
	if err := dev.Upload(ctx, s.val, values); err != nil {
		x.Free()
		return nil, err
	}

	s.nvals = len(indices)
	s.hostInd = append([]uint32(nil), indices...)
	s.hostVal = append([]float32(nil), values...)
	x.storage = Sparse
	return x, nil
}

// NewMask creates a sparse structural mask of size n whose nonzero pattern is
// pattern; every stored value is 1.
func NewMask(ctx context.Context, dev *device.Device, n int, pattern *roaring.Bitmap) (*Vector, error) {
	var indices []uint32
	if pattern != nil {
		indices = pattern.ToArray()
	}
	values := make([]float32, len(indices))
	for i := range values {
		values[i] = 1
	}
	return NewSparse(ctx, dev, n, indices, values)
}

func validateIndices(n int, indices []uint32) error {
	for i, idx := range indices {
		if int64(idx) >= int64(n) {
			return fmt.Errorf("%w: %d outside [0, %d)", ErrInvalidIndex, idx, n)
		}
		if i > 0 && idx <= indices[i-1] {
			return fmt.Errorf("%w: %d after %d is not ascending", ErrInvalidIndex, idx, indices[i-1])
		}
	}
	return nil
}

// Device returns the device the vector lives on.
func (x *Vector) Device() *device.Device { return x.dev }

// Size returns the index domain size N.
func (x *Vector) Size() int { return x.size }

// Storage returns the storage tag.
func (x *Vector) Storage() Storage { return x.storage }

// Nvals returns the number of stored values: N for dense, the slot count for
// sparse (an upper bound until the next Sync), 0 for unknown.
func (x *Vector) Nvals() int {
	switch x.storage {
	case Dense:
		return x.size
	case Sparse:
		return x.sparse.nvals
	default:
		return 0
	}
}

// NeedUpdate reports whether the host mirror is stale.
func (x *Vector) NeedUpdate() bool { return x.needUpdate }

// Dense returns the dense representation.
func (x *Vector) Dense() *DenseVector { return &x.dense }

// Sparse returns the sparse representation.
func (x *Vector) Sparse() *SparseVector { return &x.sparse }

// ReserveDense ensures the dense buffer holds N values.
// It does not change the storage tag.
func (x *Vector) ReserveDense() (*DenseVector, error) {
	if x.dense.val != nil && x.dense.val.Len() >= x.size {
		return &x.dense, nil
	}

	val, err := x.dev.Malloc(x.size)
	if err != nil {
		return nil, fmt.Errorf("vector: reserve dense %d: %w", x.size, err)
	}
	x.dev.Free(x.dense.val)
	x.dense.val = val
	return &x.dense, nil
}

// ReserveSparse ensures the sparse buffers can hold n slots. Growing discards
// the previous contents. It does not change the storage tag.
func (x *Vector) ReserveSparse(n int) (*SparseVector, error) {
	if x.sparse.ind != nil && x.sparse.capacity >= n {
		return &x.sparse, nil
	}

	ind, err := x.dev.Malloc(n)
	if err != nil {
		return nil, fmt.Errorf("vector: reserve sparse %d: %w", n, err)
	}
	val, err := x.dev.Malloc(n)
	if err != nil {
		x.dev.Free(ind)
		return nil, fmt.Errorf("vector: reserve sparse %d: %w", n, err)
	}

	x.dev.Free(x.sparse.ind)
	x.dev.Free(x.sparse.val)
	x.sparse.ind = ind
	x.sparse.val = val
	x.sparse.capacity = n
	x.sparse.nvals = 0
	return &x.sparse, nil
}

// MarkWritten records that device kernels wrote the vector: it sets the storage
// tag, the sparse slot count (ignored for dense) and NeedUpdate. finalized
// reports that a finalize pass may have tombstoned sparse slots.
func (x *Vector) MarkWritten(storage Storage, nvals int, finalized bool) {
	x.storage = storage
	if storage == Sparse {
		x.sparse.nvals = nvals
	}
	x.needUpdate = true
	x.tombstones = finalized && storage == Sparse
}

// Invalidate reverts the vector to Unknown storage after a write that did not
// complete. Device buffers are kept for reuse; their contents are undefined.
func (x *Vector) Invalidate() {
	x.storage = Unknown
	x.sparse.nvals = 0
	x.sparse.hostInd = nil
	x.sparse.hostVal = nil
	x.dense.host = nil
	x.needUpdate = false
	x.tombstones = false
}

// Sync brings the host mirror up to date. For sparse vectors it drops slots
// tombstoned by a finalize pass, on the host and on the device, so Nvals
// becomes exact.
func (x *Vector) Sync(ctx context.Context) error {
	if !x.needUpdate {
		return nil
	}

	switch x.storage {
	case Dense:
		if len(x.dense.host) != x.size {
			x.dense.host = make([]float32, x.size)
		}
		if err := x.dev.Download(ctx, x.dense.host, x.dense.val); err != nil {
			return err
		}
	case Sparse:
		if err := x.syncSparse(ctx); err != nil {
			return err
		}
	}

	x.needUpdate = false
	x.tombstones = false
	return nil
}

func (x *Vector) syncSparse(ctx context.Context) error {
	s := &x.sparse
	ind := make([]uint32, s.nvals)
	val := make([]float32, s.nvals)
	if err := x.dev.DownloadIndices(ctx, ind, s.ind); err != nil {
		return err
	}
	if err := x.dev.Download(ctx, val, s.val); err != nil {
		return err
	}

	if x.tombstones {
		k := 0
		for j := range ind {
			if ind[j] == kernels.Tombstone {
				continue
			}
			ind[k] = ind[j]
			val[k] = val[j]
			k++
		}
		if k < len(ind) {
			ind = ind[:k]
			val = val[:k]
			if err := x.dev.UploadIndices(ctx, s.ind, ind); err != nil {
				return err
			}
			if err := x.dev.Upload(ctx, s.val, val); err != nil {
				return err
			}
			s.nvals = k
		}
	}

	s.hostInd = ind
	s.hostVal = val
	return nil
}

// PrepareInput syncs a vector that still carries tombstoned slots so kernels
// reading it only see valid indices.
func (x *Vector) PrepareInput(ctx context.Context) error {
	if x.tombstones {
		return x.Sync(ctx)
	}
	return nil
}

// ExtractTuples returns copies of the stored (index, value) pairs in ascending
// index order. Dense vectors return every position.
func (x *Vector) ExtractTuples(ctx context.Context) ([]uint32, []float32, error) {
	if err := x.Sync(ctx); err != nil {
		return nil, nil, err
	}

	switch x.storage {
	case Dense:
		ind := make([]uint32, x.size)
		for i := range ind {
			ind[i] = uint32(i)
		}
		return ind, append([]float32(nil), x.dense.host...), nil
	case Sparse:
		return append([]uint32(nil), x.sparse.hostInd...), append([]float32(nil), x.sparse.hostVal...), nil
	default:
		return nil, nil, ErrUnknownStorage
	}
}

// ExtractDense returns the vector as N host values, using fill for positions a
// sparse vector does not store.
func (x *Vector) ExtractDense(ctx context.Context, fill float32) ([]float32, error) {
	if err := x.Sync(ctx); err != nil {
		return nil, err
	}

	switch x.storage {
	case Dense:
		return append([]float32(nil), x.dense.host...), nil
	case Sparse:
		out := make([]float32, x.size)
		for i := range out {
			out[i] = fill
		}
		for j, idx := range x.sparse.hostInd {
			out[idx] = x.sparse.hostVal[j]
		}
		return out, nil
	default:
		return nil, ErrUnknownStorage
	}
}

// Pattern returns the nonzero pattern: stored indices for sparse vectors,
// positions holding a value other than zero for dense vectors.
func (x *Vector) Pattern(ctx context.Context) (*roaring.Bitmap, error) {
	if err := x.Sync(ctx); err != nil {
		return nil, err
	}

	bm := roaring.New()
	switch x.storage {
	case Dense:
		for i, v := range x.dense.host {
			if v != 0 {
				bm.Add(uint32(i))
			}
		}
	case Sparse:
		bm.AddMany(x.sparse.hostInd)
	default:
		return nil, ErrUnknownStorage
	}
	return bm, nil
}

// Free releases the device buffers. The vector reverts to Unknown storage.
func (x *Vector) Free() {
	x.dev.Free(x.dense.val)
	x.dev.Free(x.sparse.ind)
	x.dev.Free(x.sparse.val)
	x.dense = DenseVector{}
	x.sparse = SparseVector{}
	x.storage = Unknown
	x.needUpdate = false
	x.tombstones = false
}
