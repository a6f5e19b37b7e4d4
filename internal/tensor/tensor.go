package tensor

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/born-ml/tensorcore/internal/logger"
)

// smallTensorSize is the element count below which String includes values.
const smallTensorSize = 30

// lastID issues identity tokens. It only grows, so tokens are never reused
// within a process. Concurrent constructors get distinct tokens in no
// particular order.
var lastID atomic.Uint64

func makeID() string {
	return "T" + strconv.FormatUint(lastID.Add(1), 10)
}

// pkgLogger holds the package logger. It may be replaced while tensors are
// in use on other goroutines.
var pkgLogger atomic.Pointer[loggerBox]

type loggerBox struct{ logger.Logger }

func init() {
	SetLogger(logger.Default())
}

// SetLogger replaces the logger used by the package. It is safe to call
// concurrently with tensor operations.
func SetLogger(l logger.Logger) {
	pkgLogger.Store(&loggerBox{l})
}

func log() logger.Logger {
	return pkgLogger.Load().Logger
}

// Tensor is a multi-dimensional array: element type and shape metadata plus
// a shared Storage holding the values.
//
// Copies share storage. Operations that change the element type install a
// new Storage on the receiver and leave the old one to its other holders.
// A Tensor is not safe for concurrent mutation.
type Tensor struct {
	Meta

	data     Storage
	initFlag bool
	dirty    bool
	id       string
	device   DeviceAddress
}

// NewWithStorage wraps an existing storage. The storage must not be nil.
func NewWithStorage(dtype DataType, shape Shape, data Storage) *Tensor {
	if data == nil {
		panic("tensor: nil storage")
	}
	return &Tensor{
		Meta: NewMeta(dtype, shape),
		data: data,
		id:   makeID(),
	}
}

// Copy returns a tensor sharing t's storage, metadata, flags, identity token
// and device address.
func (t *Tensor) Copy() *Tensor {
	c := *t
	c.shape = t.shape.Clone()
	return &c
}

// CopyAs returns a copy of t whose storage holds t's values cast to dtype.
// The new storage is independent of t's.
func (t *Tensor) CopyAs(dtype DataType) (*Tensor, error) {
	data, err := NewStorageConverted(dtype, t.shape, t.data.Data(), t.dtype)
	if err != nil {
		return nil, err
	}
	c := t.Copy()
	c.dtype = dtype
	c.data = data
	return c, nil
}

// Storage returns the shared storage.
func (t *Tensor) Storage() Storage {
	return t.data
}

// Data returns the host buffer, allocating it on first use.
func (t *Tensor) Data() []byte {
	return t.data.Data()
}

// NBytes returns the byte size of the host buffer.
func (t *Tensor) NBytes() int {
	return t.data.NBytes()
}

// ID returns the identity token.
func (t *Tensor) ID() string {
	return t.id
}

// Dirty reports whether the host buffer may be stale relative to the device.
func (t *Tensor) Dirty() bool {
	return t.dirty
}

// SetDirty sets the dirty flag.
func (t *Tensor) SetDirty(dirty bool) {
	t.dirty = dirty
}

// InitFlag reports whether the tensor still needs parameter initialization.
func (t *Tensor) InitFlag() bool {
	return t.initFlag
}

// SetInitFlag sets the init flag.
func (t *Tensor) SetInitFlag(flag bool) {
	t.initFlag = flag
}

// Equal reports whether t and other are the same tensor, or have equal
// metadata and share the same storage.
func (t *Tensor) Equal(other *Tensor) bool {
	if t == other {
		return true
	}
	if other == nil {
		return false
	}
	return t.MetaEqual(&other.Meta) && t.data == other.data
}

// ValueEqual reports whether t and other are the same tensor, or have equal
// metadata and equal contents.
func (t *Tensor) ValueEqual(other *Tensor) bool {
	if t == other {
		return true
	}
	if other == nil {
		return false
	}
	return t.MetaEqual(&other.Meta) && t.data.Equals(other.data)
}

// AssignValue makes t take over other's metadata, flags, storage, identity
// token and device address. The storage is shared, not copied.
func (t *Tensor) AssignValue(other *Tensor) *Tensor {
	if t != other {
		t.Meta = NewMeta(other.dtype, other.shape)
		t.dirty = other.dirty
		t.device = other.device
		t.data = other.data
		t.id = other.id
	}
	return t
}

// SetDataType converts the values to dtype, replacing the storage. It is a
// no-op when dtype is already the element type.
func (t *Tensor) SetDataType(dtype DataType) (DataType, error) {
	if dtype == t.dtype {
		return dtype, nil
	}
	data, err := NewStorageConverted(dtype, t.shape, t.data.Data(), t.dtype)
	if err != nil {
		return t.dtype, err
	}
	log().Debug("replace storage", "tensor", t.id, "from", t.dtype, "to", dtype)
	t.data = data
	return t.setMetaDataType(dtype), nil
}

// ShapeAndTypeInfo returns the metadata only, e.g. "Tensor shape:[2, 3]float32".
func (t *Tensor) ShapeAndTypeInfo() string {
	return fmt.Sprintf("Tensor shape:[%s]%s", t.shape, t.dtype)
}

// String returns the metadata, plus the values for tensors with fewer than
// 30 elements.
func (t *Tensor) String() string {
	s := t.ShapeAndTypeInfo()
	if t.ElementsNum() < smallTensorSize {
		s += ", value:" + t.data.Render(t.dtype, t.shape)
	}
	return s
}

// StringVerbose returns the metadata followed by the summarized values.
func (t *Tensor) StringVerbose() string {
	return t.ShapeAndTypeInfo() + "\nvalue:" + t.data.Render(t.dtype, t.shape)
}
