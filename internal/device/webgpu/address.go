//go:build windows

package webgpu

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/born-ml/tensorcore/internal/tensor"
	"github.com/go-webgpu/webgpu/wgpu"
)

// ErrTypeMismatch is returned when a sync asks for a different element type
// than the buffer holds. Conversion happens on the host, never on the GPU.
var ErrTypeMismatch = errors.New("webgpu: element type mismatch")

// Context owns a WebGPU device and its queue.
type Context struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	mu sync.Mutex // serializes queue submissions and buffer maps
}

// Open acquires the default high-performance adapter and a device on it.
// Returns an error if WebGPU is not available.
func Open() (ctx *Context, err error) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			ctx = nil
			err = fmt.Errorf("webgpu: native library not available: %v", r)
		}
	}()

	instance := wgpu.CreateInstance(nil)
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request adapter: %w", err)
	}

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request device: %w", err)
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to get queue")
	}

	return &Context{instance: instance, adapter: adapter, device: device, queue: queue}, nil
}

// Release frees the device, adapter and instance.
func (c *Context) Release() {
	c.queue.Release()
	c.device.Release()
	c.adapter.Release()
	c.instance.Release()
}

// Address is a storage buffer holding one tensor's bytes.
type Address struct {
	ctx    *Context
	buffer *wgpu.Buffer
	dtype  tensor.DataType
	size   uint64 // payload bytes; the buffer itself is padded to 4
}

// Upload copies buf into a new storage buffer.
func (c *Context) Upload(dtype tensor.DataType, buf []byte) *Address {
	size := uint64(len(buf))
	padded := alignedSize(size)

	buffer := c.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		Size:             padded,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, padded)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), padded)
	copy(mappedSlice, buf)
	buffer.Unmap()

	return &Address{ctx: c, buffer: buffer, dtype: dtype, size: size}
}

// Mirror uploads t's current host values.
func (c *Context) Mirror(t *tensor.Tensor) *Address {
	return c.Upload(t.DataType(), t.Data()[:t.NBytes()])
}

// Release frees the storage buffer.
func (a *Address) Release() {
	a.buffer.Release()
}

// SyncDeviceToHost reads size bytes back through a staging buffer, since
// storage buffers can't be mapped directly. It blocks until the map completes.
func (a *Address) SyncDeviceToHost(_ tensor.Shape, size int, dtype tensor.DataType, dst []byte) error {
	if dtype != a.dtype {
		return fmt.Errorf("%w: buffer holds %s, want %s", ErrTypeMismatch, a.dtype, dtype)
	}
	if uint64(size) > a.size || size > len(dst) {
		return fmt.Errorf("webgpu: transfer of %d bytes exceeds buffer %d or destination %d", size, a.size, len(dst))
	}
	if size == 0 {
		return nil
	}

	c := a.ctx
	c.mu.Lock()
	defer c.mu.Unlock()

	padded := alignedSize(uint64(size))
	staging := c.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  padded,
	})
	defer staging.Release()

	encoder := c.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(a.buffer, 0, staging, 0, padded)
	cmdBuffer := encoder.Finish(nil)
	c.queue.Submit(cmdBuffer)

	if err := staging.MapAsync(c.device, wgpu.MapModeRead, 0, padded); err != nil {
		return fmt.Errorf("webgpu: failed to map staging buffer: %w", err)
	}
	mappedPtr := staging.GetMappedRange(0, padded)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	copy(dst[:size], unsafe.Slice((*byte)(mappedPtr), size))
	staging.Unmap()

	return nil
}

// alignedSize rounds n up to the 4-byte copy alignment.
func alignedSize(n uint64) uint64 {
	return (n + 3) &^ 3
}
