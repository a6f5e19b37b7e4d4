package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tensorcore/internal/tensor"
)

func TestMirrorAndSync(t *testing.T) {
	src := tensor.MustFromSlice(tensor.Int32, tensor.Shape{3}, []int32{4, -5, 6})
	addr := Mirror(src)
	assert.Equal(t, tensor.Int32, addr.DataType())
	assert.Equal(t, 12, addr.Len())

	dst := tensor.MustNew(tensor.Int32, tensor.Shape{3})
	dst.SetDeviceAddress(addr)
	require.NoError(t, dst.DataSync())
	assert.True(t, src.ValueEqual(dst))
	assert.Equal(t, tensor.Allocated, dst.Storage().State())
}

func TestSyncConvertsElementType(t *testing.T) {
	src := tensor.MustFromSlice(tensor.Int16, tensor.Shape{2, 2}, []int16{1, -2, 3, -4})
	addr := Mirror(src)

	dst := tensor.MustNew(tensor.Float32, tensor.Shape{2, 2})
	dst.SetDeviceAddress(addr)
	require.NoError(t, dst.DataSync())

	v, ok := tensor.Values[float32](dst.Storage())
	require.True(t, ok)
	assert.Equal(t, []float32{1, -2, 3, -4}, v)
}

func TestSyncAfterWrite(t *testing.T) {
	addr := New(tensor.Uint8, []byte{1, 2})
	dst := tensor.MustNew(tensor.Uint8, tensor.Shape{2})
	dst.SetDeviceAddress(addr)

	addr.Write(tensor.Uint8, []byte{9, 8})
	require.NoError(t, dst.DataSync())
	assert.Equal(t, []byte{9, 8}, dst.Data())
}

func TestSyncOutOfRange(t *testing.T) {
	addr := New(tensor.Float64, make([]byte, 8))
	dst := tensor.MustNew(tensor.Float64, tensor.Shape{4})
	dst.SetDeviceAddress(addr)

	err := dst.DataSync()
	require.ErrorIs(t, err, ErrOutOfRange)
	assert.ErrorIs(t, err, tensor.ErrDeviceSync)
}

func TestSyncUnconvertible(t *testing.T) {
	addr := New(tensor.String, make([]byte, 8))
	err := addr.SyncDeviceToHost(tensor.Shape{2}, 8, tensor.Int32, make([]byte, 8))
	assert.ErrorIs(t, err, tensor.ErrUnsupportedType)
}

func TestNewCopiesInput(t *testing.T) {
	buf := []byte{1, 2, 3, 4}
	addr := New(tensor.Int8, buf)
	buf[0] = 42

	out := make([]byte, 4)
	require.NoError(t, addr.SyncDeviceToHost(tensor.Shape{4}, 4, tensor.Int8, out))
	assert.Equal(t, []byte{1, 2, 3, 4}, out)
}
