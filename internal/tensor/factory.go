package tensor

import (
	"fmt"

	"github.com/x448/float16"
)

// filler is implemented by every typed storage so the factory can populate
// a freshly dispatched storage without knowing its element type.
type filler interface {
	Storage
	fillBytes(buf []byte) error
	fillConverted(buf []byte, src DataType) error
}

func (s *typedStorage[T]) fillBytes(buf []byte) error {
	if want := s.NBytes(); len(buf) != want {
		return fmt.Errorf("%w %d, expect %d item size %d", ErrLengthMismatch, len(buf), want, s.ItemSize())
	}
	s.setData(decode[T](buf, s.size))
	return nil
}

func (s *typedStorage[T]) fillConverted(buf []byte, src DataType) error {
	if !src.IsNumber() {
		return fmt.Errorf("cannot construct tensor from source type %s: %w", src, ErrUnsupportedType)
	}
	if want := s.size * src.Size(); len(buf) < want {
		return fmt.Errorf("%w %d, expect at least %d for %d %s elements", ErrLengthMismatch, len(buf), want, s.size, src)
	}
	data, err := convertFrom[T](buf, src, s.size)
	if err != nil {
		return fmt.Errorf("cannot construct tensor from source type %s: %w", src, err)
	}
	s.setData(data)
	return nil
}

// dispatch maps a data type to its typed storage. The mapping is total over
// NumberTypes; Bool and Uint8 share the uint8 storage.
func dispatch(dtype DataType, shape Shape) (filler, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	switch dtype {
	case Bool, Uint8:
		return newTypedStorage[uint8](shape), nil
	case Int8:
		return newTypedStorage[int8](shape), nil
	case Int16:
		return newTypedStorage[int16](shape), nil
	case Int32:
		return newTypedStorage[int32](shape), nil
	case Int64:
		return newTypedStorage[int64](shape), nil
	case Uint16:
		return newTypedStorage[uint16](shape), nil
	case Uint32:
		return newTypedStorage[uint32](shape), nil
	case Uint64:
		return newTypedStorage[uint64](shape), nil
	case Float16:
		return newTypedStorage[float16.Float16](shape), nil
	case Float32:
		return newTypedStorage[float32](shape), nil
	case Float64:
		return newTypedStorage[float64](shape), nil
	default:
		return nil, fmt.Errorf("cannot construct tensor because of %w: %s", ErrUnsupportedType, dtype)
	}
}

// NewStorage returns an unpopulated storage for dtype and shape. The buffer
// is allocated on the first Data call.
func NewStorage(dtype DataType, shape Shape) (Storage, error) {
	return dispatch(dtype, shape)
}

// NewStorageFromBytes copies shape.NumElements() elements of dtype out of
// buf. len(buf) must equal the storage byte size exactly.
func NewStorageFromBytes(dtype DataType, shape Shape, buf []byte) (Storage, error) {
	s, err := dispatch(dtype, shape)
	if err != nil {
		return nil, err
	}
	if err := s.fillBytes(buf); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStorageConverted interprets buf as elements of src and casts each one
// to dtype.
func NewStorageConverted(dtype DataType, shape Shape, buf []byte, src DataType) (Storage, error) {
	s, err := dispatch(dtype, shape)
	if err != nil {
		return nil, err
	}
	if err := s.fillConverted(buf, src); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStorageFromValues copies values, cast to dtype. len(values) must equal
// shape.NumElements().
func NewStorageFromValues[V Number](dtype DataType, shape Shape, values []V) (Storage, error) {
	if len(values) != shape.NumElements() {
		return nil, fmt.Errorf("%w: shape %v requires %d elements, but got %d",
			ErrShapeMismatch, shape, shape.NumElements(), len(values))
	}
	buf, src := sourceOf(values)
	return NewStorageConverted(dtype, shape, buf, src)
}

// NewStorageFromScalar returns a single-element storage holding v cast to
// dtype. shape must describe exactly one element.
func NewStorageFromScalar[V Number](dtype DataType, shape Shape, v V) (Storage, error) {
	if shape.NumElements() != 1 {
		return nil, fmt.Errorf("%w: scalar storage needs one element, shape %v has %d",
			ErrShapeMismatch, shape, shape.NumElements())
	}
	return NewStorageFromValues(dtype, shape, []V{v})
}

// sourceOf exposes values as a raw buffer plus the data type describing it.
// Types without an exact storage kind (int, uint, named types) are widened
// to 64 bits first.
func sourceOf[V Number](values []V) ([]byte, DataType) {
	switch vs := any(values).(type) {
	case []uint8:
		return bytesOf(vs), Uint8
	case []int8:
		return bytesOf(vs), Int8
	case []int16:
		return bytesOf(vs), Int16
	case []int32:
		return bytesOf(vs), Int32
	case []int64:
		return bytesOf(vs), Int64
	case []uint16:
		return bytesOf(vs), Uint16
	case []uint32:
		return bytesOf(vs), Uint32
	case []uint64:
		return bytesOf(vs), Uint64
	case []float32:
		return bytesOf(vs), Float32
	case []float64:
		return bytesOf(vs), Float64
	}

	half, minusOne := 0.5, -1
	switch {
	case V(half) != 0:
		return bytesOf(widen[float64](values)), Float64
	case V(minusOne) < 0:
		return bytesOf(widen[int64](values)), Int64
	default:
		return bytesOf(widen[uint64](values)), Uint64
	}
}

func widen[W int64 | uint64 | float64, V Number](values []V) []W {
	out := make([]W, len(values))
	for i, v := range values {
		out[i] = W(v)
	}
	return out
}
