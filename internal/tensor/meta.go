package tensor

import (
	"encoding/binary"
	"hash/fnv"
)

// Meta carries the shape and element type shared by every tensor-like value.
// It holds no data.
type Meta struct {
	dtype DataType
	shape Shape
}

// NewMeta returns metadata for dtype and shape. The shape is copied.
func NewMeta(dtype DataType, shape Shape) Meta {
	return Meta{dtype: dtype, shape: shape.Clone()}
}

// DataType returns the element type.
func (m *Meta) DataType() DataType {
	return m.dtype
}

// setMetaDataType replaces the element type without touching any data.
func (m *Meta) setMetaDataType(dtype DataType) DataType {
	m.dtype = dtype
	return dtype
}

// Shape returns the tensor's shape.
func (m *Meta) Shape() Shape {
	return m.shape
}

// SetShape replaces the shape and returns the new element count.
func (m *Meta) SetShape(shape Shape) int {
	m.shape = shape.Clone()
	return m.ElementsNum()
}

// DimensionSize returns the size of dimension index, or -1 when index is
// out of range.
func (m *Meta) DimensionSize(index int) int {
	if index < 0 || index >= len(m.shape) {
		return -1
	}
	return m.shape[index]
}

// ElementsNum returns the number of elements described by the shape.
func (m *Meta) ElementsNum() int {
	return m.shape.NumElements()
}

// MetaEqual reports whether both values describe the same type and shape.
func (m *Meta) MetaEqual(other *Meta) bool {
	return m.dtype == other.dtype && m.shape.Equal(other.shape)
}

// Hash returns a structural hash over the element type and shape.
func (m *Meta) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(m.dtype))
	h.Write(buf[:])
	for _, dim := range m.shape {
		binary.LittleEndian.PutUint64(buf[:], uint64(dim))
		h.Write(buf[:])
	}
	return h.Sum64()
}
