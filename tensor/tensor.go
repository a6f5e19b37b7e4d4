// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"log/slog"

	"github.com/born-ml/tensorcore/internal/logger"
	"github.com/born-ml/tensorcore/internal/tensor"
)

// Type aliases for public API

// DataType represents the element type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Unknown DataType = tensor.Unknown
	Bool    DataType = tensor.Bool
	Int8    DataType = tensor.Int8
	Int16   DataType = tensor.Int16
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
	Uint16  DataType = tensor.Uint16
	Uint32  DataType = tensor.Uint32
	Uint64  DataType = tensor.Uint64
	Float16 DataType = tensor.Float16
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	String  DataType = tensor.String
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// DeviceAddress is device memory mirroring a tensor's host buffer.
type DeviceAddress = tensor.DeviceAddress

// Errors returned by construction and type changes.
var (
	ErrUnsupportedType = tensor.ErrUnsupportedType
	ErrLengthMismatch  = tensor.ErrLengthMismatch
	ErrShapeMismatch   = tensor.ErrShapeMismatch
	ErrDeviceSync      = tensor.ErrDeviceSync
)

// ParseDataType parses a type name such as "float32" or "half".
func ParseDataType(name string) (DataType, error) {
	return tensor.ParseDataType(name)
}

// SetLogHandler routes tensor diagnostics to h.
func SetLogHandler(h slog.Handler) {
	tensor.SetLogger(logger.New(h))
}

// Tensor is the public handle on a tensor entity. Every method requires a
// wrapped entity and panics otherwise.
type Tensor struct {
	impl *tensor.Tensor
}

// New creates a tensor of dtype and shape. It panics if dtype has no storage
// kind; use NewE to get an error instead.
func New(dtype DataType, shape Shape) *Tensor {
	t, err := NewE(dtype, shape)
	if err != nil {
		panic(err)
	}
	return t
}

// NewE creates a tensor of dtype and shape.
func NewE(dtype DataType, shape Shape) (*Tensor, error) {
	impl, err := tensor.New(dtype, shape)
	if err != nil {
		return nil, err
	}
	return &Tensor{impl: impl}, nil
}

// FromBytes creates a tensor by copying buf, which must hold exactly
// shape.NumElements() elements of dtype.
func FromBytes(dtype DataType, shape Shape, buf []byte) (*Tensor, error) {
	impl, err := tensor.NewFromBytes(dtype, shape, buf)
	if err != nil {
		return nil, err
	}
	return &Tensor{impl: impl}, nil
}

// Wrap returns a public handle on an existing entity. impl may be nil, in
// which case every method call panics.
func Wrap(impl *tensor.Tensor) *Tensor {
	return &Tensor{impl: impl}
}

// Unwrap returns the wrapped entity.
func (t *Tensor) Unwrap() *tensor.Tensor {
	return t.mustImpl()
}

func (t *Tensor) mustImpl() *tensor.Tensor {
	if t == nil || t.impl == nil {
		panic("tensor: nil tensor")
	}
	return t.impl
}

// DataType returns the element type.
func (t *Tensor) DataType() DataType {
	return t.mustImpl().DataType()
}

// SetDataType converts the values to dtype and returns the resulting type.
// On error the tensor is unchanged.
func (t *Tensor) SetDataType(dtype DataType) (DataType, error) {
	return t.mustImpl().SetDataType(dtype)
}

// Shape returns the dimensions.
func (t *Tensor) Shape() Shape {
	return t.mustImpl().Shape()
}

// SetShape replaces the dimensions and returns the new element count.
// The storage is not resized.
func (t *Tensor) SetShape(shape Shape) int {
	return t.mustImpl().SetShape(shape)
}

// DimensionSize returns the size of dimension i, or -1 if out of range.
func (t *Tensor) DimensionSize(i int) int {
	return t.mustImpl().DimensionSize(i)
}

// ElementsNum returns the number of elements described by the shape.
func (t *Tensor) ElementsNum() int {
	return t.mustImpl().ElementsNum()
}

// Hash returns a structural hash of the element type and shape.
func (t *Tensor) Hash() uint64 {
	return t.mustImpl().Hash()
}

// Size returns the byte size of the host buffer.
func (t *Tensor) Size() int {
	return t.mustImpl().NBytes()
}

// MutableData returns the host buffer, allocating it on first use.
// Writes through the slice are visible to every tensor sharing the storage.
func (t *Tensor) MutableData() []byte {
	impl := t.mustImpl()
	return impl.Data()[:impl.NBytes()]
}

// String returns the shape, type and, for small tensors, the values.
func (t *Tensor) String() string {
	return t.mustImpl().String()
}
