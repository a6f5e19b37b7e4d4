// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tensorcore/internal/tensor"
)

func TestNew(t *testing.T) {
	x := New(Float32, Shape{2, 3})
	assert.Equal(t, Float32, x.DataType())
	assert.Equal(t, Shape{2, 3}, x.Shape())
	assert.Equal(t, 6, x.ElementsNum())
	assert.Equal(t, 24, x.Size())
	assert.Equal(t, 3, x.DimensionSize(1))
	assert.Equal(t, -1, x.DimensionSize(5))

	buf := x.MutableData()
	assert.Len(t, buf, 24)
	assert.Equal(t, make([]byte, 24), buf)

	assert.Panics(t, func() { New(String, Shape{1}) })
	_, err := NewE(String, Shape{1})
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestSetDataTypeAndShape(t *testing.T) {
	x, err := FromBytes(Int8, Shape{4}, []byte{1, 2, 3, 0xff})
	require.NoError(t, err)

	dt, err := x.SetDataType(Int32)
	require.NoError(t, err)
	assert.Equal(t, Int32, dt)
	assert.Equal(t, 16, x.Size())

	v, ok := tensor.Values[int32](x.Unwrap().Storage())
	require.True(t, ok)
	assert.Equal(t, []int32{1, 2, 3, -1}, v)

	assert.Equal(t, 4, x.SetShape(Shape{2, 2}))
	assert.Equal(t, Shape{2, 2}, x.Shape())
}

func TestHash(t *testing.T) {
	a := New(Float64, Shape{3, 4})
	b := New(Float64, Shape{3, 4})
	c := New(Float64, Shape{4, 3})
	assert.Equal(t, a.Hash(), b.Hash())
	assert.NotEqual(t, a.Hash(), c.Hash())
}

func TestMutableDataIsShared(t *testing.T) {
	impl := tensor.MustNew(Uint8, Shape{2})
	x := Wrap(impl)
	y := Wrap(impl.Copy())

	x.MutableData()[1] = 7
	assert.Equal(t, []byte{0, 7}, y.MutableData())
	assert.Equal(t, "Tensor shape:[2]uint8, value:[0 7]", y.String())
}

func TestNilTensorPanics(t *testing.T) {
	x := Wrap(nil)
	assert.Panics(t, func() { x.DataType() })
	assert.Panics(t, func() { x.Shape() })
	assert.Panics(t, func() { x.ElementsNum() })
	assert.Panics(t, func() { x.MutableData() })

	var nilHandle *Tensor
	assert.Panics(t, func() { nilHandle.Size() })
}

func TestParseDataType(t *testing.T) {
	dt, err := ParseDataType("half")
	require.NoError(t, err)
	assert.Equal(t, Float16, dt)
}
