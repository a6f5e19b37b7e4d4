//go:build windows

package webgpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tensorcore/internal/tensor"
)

func openOrSkip(t *testing.T) *Context {
	t.Helper()
	ctx, err := Open()
	if err != nil {
		t.Skipf("WebGPU not available: %v", err)
	}
	t.Cleanup(ctx.Release)
	return ctx
}

func TestAddressRoundTrip(t *testing.T) {
	ctx := openOrSkip(t)

	// 3 int8 values exercise the padded copy path.
	src := tensor.MustFromSlice(tensor.Int8, tensor.Shape{3}, []int8{-1, 2, -3})
	addr := ctx.Mirror(src)
	defer addr.Release()

	dst := tensor.MustNew(tensor.Int8, tensor.Shape{3})
	dst.SetDeviceAddress(addr)
	require.NoError(t, dst.DataSync())
	assert.True(t, src.ValueEqual(dst))
}

func TestAddressTypeMismatch(t *testing.T) {
	ctx := openOrSkip(t)

	addr := ctx.Upload(tensor.Int32, make([]byte, 8))
	defer addr.Release()

	err := addr.SyncDeviceToHost(tensor.Shape{2}, 8, tensor.Float32, make([]byte, 8))
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestAlignedSize(t *testing.T) {
	assert.Equal(t, uint64(0), alignedSize(0))
	assert.Equal(t, uint64(4), alignedSize(1))
	assert.Equal(t, uint64(4), alignedSize(4))
	assert.Equal(t, uint64(8), alignedSize(5))
}
