package tensor

import (
	"slices"
	"unsafe"

	"github.com/x448/float16"
)

// AllocState reports whether a storage buffer has been materialized.
type AllocState int

// Allocation states. A storage built from shape only starts Unallocated and
// moves to Allocated on the first Data call; it never moves back.
const (
	Unallocated AllocState = iota
	Allocated
)

// String returns a human-readable allocation state.
func (s AllocState) String() string {
	if s == Allocated {
		return "allocated"
	}
	return "unallocated"
}

// Storage is the type-erased buffer backing a Tensor.
//
// The set of implementations is closed: one typed storage per Element type.
// Storages are shared between tensors; operations that change the element
// type build a new Storage instead of mutating a shared one.
type Storage interface {
	// Size returns the number of elements.
	Size() int
	// ItemSize returns the byte size of one element.
	ItemSize() int
	// NBytes returns Size() * ItemSize().
	NBytes() int
	// NDim returns the number of dimensions the storage was built for.
	NDim() int
	// State reports whether the buffer has been allocated.
	State() AllocState

	// Data returns the buffer as raw bytes, allocating it (zero filled) on
	// first access. An empty storage returns a one-element placeholder so the
	// result is never nil; it must not be written.
	Data() []byte

	// Equals reports whether other holds the same element type, dimension
	// count, element count and contents.
	Equals(other Storage) bool

	// Render returns the summarized text form of the values.
	Render(dtype DataType, shape Shape) string

	sealed()
}

// emptyData backs Data() for zero-element storages.
var emptyData [8]byte

// typedStorage is the Storage implementation for element type T.
type typedStorage[T Element] struct {
	ndim  int
	size  int
	data  []T
	state AllocState
}

func newTypedStorage[T Element](shape Shape) *typedStorage[T] {
	return &typedStorage[T]{
		ndim: len(shape),
		size: shape.NumElements(),
	}
}

// setData installs a populated buffer.
func (s *typedStorage[T]) setData(data []T) {
	s.data = data
	s.state = Allocated
}

func (s *typedStorage[T]) Size() int { return s.size }

func (s *typedStorage[T]) ItemSize() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

func (s *typedStorage[T]) NBytes() int { return s.size * s.ItemSize() }

func (s *typedStorage[T]) NDim() int { return s.ndim }

func (s *typedStorage[T]) State() AllocState { return s.state }

func (s *typedStorage[T]) Data() []byte {
	if s.size == 0 {
		return emptyData[:s.ItemSize()]
	}
	if s.state == Unallocated {
		s.setData(make([]T, s.size))
	}
	return bytesOf(s.data)
}

func (s *typedStorage[T]) Equals(other Storage) bool {
	o, ok := other.(*typedStorage[T])
	if !ok {
		return false
	}
	if o == s {
		return true
	}
	return s.ndim == o.ndim && s.size == o.size && slices.Equal(s.data, o.data)
}

func (s *typedStorage[T]) sealed() {}

// Values returns the typed elements of s, allocating the buffer if needed.
// The slice aliases the storage. It reports false when s does not hold T.
func Values[T Element](s Storage) ([]T, bool) {
	ts, ok := s.(*typedStorage[T])
	if !ok {
		return nil, false
	}
	if ts.size == 0 {
		return []T{}, true
	}
	ts.Data()
	return ts.data, true
}

// bytesOf reinterprets a typed slice as its backing bytes.
func bytesOf[T Element](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	//nolint:gosec // unsafe.Slice for zero-copy view, length derived from len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(data))), len(data)*int(unsafe.Sizeof(zero)))
}

// decode copies the first n elements of buf into a new typed slice.
// buf must hold at least n elements.
func decode[T Element](buf []byte, n int) []T {
	out := make([]T, n)
	copy(bytesOf(out), buf)
	return out
}

// castSlice converts every element of src to D with numeric cast semantics.
// Half precision values go through float32 in both directions.
func castSlice[D, S Element](src []S) []D {
	out := make([]D, len(src))
	if half, ok := any(src).([]float16.Float16); ok {
		for i, v := range half {
			out[i] = fromFloat32[D](v.Float32())
		}
		return out
	}
	if half, ok := any(out).([]float16.Float16); ok {
		for i, v := range src {
			half[i] = float16.Fromfloat32(float32(v))
		}
		return out
	}
	for i, v := range src {
		out[i] = D(v)
	}
	return out
}

func fromFloat32[D Element](f float32) D {
	var zero D
	if _, ok := any(zero).(float16.Float16); ok {
		return any(float16.Fromfloat32(f)).(D)
	}
	return D(f)
}

// convertFrom reads n elements of type src out of buf and casts them to D.
func convertFrom[D Element](buf []byte, src DataType, n int) ([]D, error) {
	switch src {
	case Bool, Uint8:
		return castSlice[D](decode[uint8](buf, n)), nil
	case Int8:
		return castSlice[D](decode[int8](buf, n)), nil
	case Int16:
		return castSlice[D](decode[int16](buf, n)), nil
	case Int32:
		return castSlice[D](decode[int32](buf, n)), nil
	case Int64:
		return castSlice[D](decode[int64](buf, n)), nil
	case Uint16:
		return castSlice[D](decode[uint16](buf, n)), nil
	case Uint32:
		return castSlice[D](decode[uint32](buf, n)), nil
	case Uint64:
		return castSlice[D](decode[uint64](buf, n)), nil
	case Float16:
		return castSlice[D](decode[float16.Float16](buf, n)), nil
	case Float32:
		return castSlice[D](decode[float32](buf, n)), nil
	case Float64:
		return castSlice[D](decode[float64](buf, n)), nil
	default:
		return nil, ErrUnsupportedType
	}
}
