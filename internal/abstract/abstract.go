// Package abstract holds the graph-level abstract values produced from
// concrete tensors for type inference.
package abstract

import (
	"fmt"

	"github.com/born-ml/tensorcore/internal/tensor"
)

// Tensor is the abstract value of a tensor: its element type and shape,
// plus the concrete tensor it was built from when one is known.
type Tensor struct {
	DType tensor.DataType
	Shape tensor.Shape
	Value *tensor.Tensor
}

// FromTensor builds the abstract value of t. It fails when t's element type
// is not a number.
func FromTensor(t *tensor.Tensor) (*Tensor, error) {
	dtype := t.DataType()
	if !dtype.IsNumber() {
		return nil, fmt.Errorf("%w but got: %s", tensor.ErrNotNumber, dtype)
	}
	return &Tensor{
		DType: dtype,
		Shape: t.Shape().Clone(),
		Value: t,
	}, nil
}

// Broaden drops the concrete value, keeping type and shape only.
func (a *Tensor) Broaden() *Tensor {
	return &Tensor{DType: a.DType, Shape: a.Shape.Clone()}
}

// String returns e.g. "Tensor(float32)[2, 3]".
func (a *Tensor) String() string {
	return fmt.Sprintf("Tensor(%s)[%s]", a.DType, a.Shape)
}
