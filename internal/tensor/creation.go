package tensor

// New creates a tensor of dtype and shape whose buffer is allocated lazily.
//
// Example:
//
//	t, err := tensor.New(tensor.Float32, tensor.Shape{3, 4})
func New(dtype DataType, shape Shape) (*Tensor, error) {
	data, err := NewStorage(dtype, shape)
	if err != nil {
		return nil, err
	}
	return NewWithStorage(dtype, shape, data), nil
}

// NewFromBytes creates a tensor by copying buf, which must hold exactly
// shape.NumElements() elements of dtype.
func NewFromBytes(dtype DataType, shape Shape, buf []byte) (*Tensor, error) {
	data, err := NewStorageFromBytes(dtype, shape, buf)
	if err != nil {
		return nil, err
	}
	return NewWithStorage(dtype, shape, data), nil
}

// NewConverted creates a tensor of dtype from buf holding elements of src.
//
// Example:
//
//	raw := []byte{...} // little-endian int32 values
//	t, err := tensor.NewConverted(tensor.Float32, tensor.Shape{3}, raw, tensor.Int32)
func NewConverted(dtype DataType, shape Shape, buf []byte, src DataType) (*Tensor, error) {
	data, err := NewStorageConverted(dtype, shape, buf, src)
	if err != nil {
		return nil, err
	}
	return NewWithStorage(dtype, shape, data), nil
}

// FromSlice creates a tensor of dtype from a Go slice.
// The slice is copied and each value cast to dtype.
func FromSlice[V Number](dtype DataType, shape Shape, values []V) (*Tensor, error) {
	data, err := NewStorageFromValues(dtype, shape, values)
	if err != nil {
		return nil, err
	}
	return NewWithStorage(dtype, shape, data), nil
}

// NewFromInts creates a 1-D tensor from values. Unknown selects Int32.
func NewFromInts(values []int64, dtype DataType) (*Tensor, error) {
	if dtype == Unknown {
		dtype = Int32
	}
	return FromSlice(dtype, Shape{len(values)}, values)
}

// NewFromFloats creates a 1-D tensor from values. Unknown selects Float32.
func NewFromFloats(values []float64, dtype DataType) (*Tensor, error) {
	if dtype == Unknown {
		dtype = Float32
	}
	return FromSlice(dtype, Shape{len(values)}, values)
}

// NewScalarInt creates a 0-D tensor holding v. Unknown selects Int32.
func NewScalarInt(v int64, dtype DataType) (*Tensor, error) {
	if dtype == Unknown {
		dtype = Int32
	}
	return newScalar(dtype, v)
}

// NewScalarFloat creates a 0-D tensor holding v. Unknown selects Float32.
func NewScalarFloat(v float64, dtype DataType) (*Tensor, error) {
	if dtype == Unknown {
		dtype = Float32
	}
	return newScalar(dtype, v)
}

func newScalar[V Number](dtype DataType, v V) (*Tensor, error) {
	data, err := NewStorageFromScalar(dtype, Shape{}, v)
	if err != nil {
		return nil, err
	}
	return NewWithStorage(dtype, Shape{}, data), nil
}

// MustNew is like New but panics on error.
func MustNew(dtype DataType, shape Shape) *Tensor {
	t, err := New(dtype, shape)
	if err != nil {
		panic(err)
	}
	return t
}

// MustFromSlice is like FromSlice but panics on error.
func MustFromSlice[V Number](dtype DataType, shape Shape, values []V) *Tensor {
	t, err := FromSlice(dtype, shape, values)
	if err != nil {
		panic(err)
	}
	return t
}
