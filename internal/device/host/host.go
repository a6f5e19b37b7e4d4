// Package host provides a DeviceAddress backed by ordinary host memory.
//
// It stands in for accelerator memory wherever a tensor needs a device copy
// but no accelerator is present, and it is what the tests sync against.
package host

import (
	"errors"
	"fmt"
	"sync"

	"github.com/born-ml/tensorcore/internal/tensor"
)

// ErrOutOfRange is returned when a sync asks for more bytes than the address holds.
var ErrOutOfRange = errors.New("host: transfer exceeds device buffer")

// Address is a device buffer living in host memory. It records the element
// type of its contents and converts on sync when the tensor's type differs.
type Address struct {
	mu    sync.RWMutex
	dtype tensor.DataType
	buf   []byte
}

// New returns an Address holding a copy of buf, interpreted as dtype.
func New(dtype tensor.DataType, buf []byte) *Address {
	return &Address{dtype: dtype, buf: append([]byte(nil), buf...)}
}

// Mirror returns an Address holding a snapshot of t's current host values.
func Mirror(t *tensor.Tensor) *Address {
	return New(t.DataType(), t.Data()[:t.NBytes()])
}

// DataType returns the element type of the device contents.
func (a *Address) DataType() tensor.DataType {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.dtype
}

// Len returns the device buffer size in bytes.
func (a *Address) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.buf)
}

// Write replaces the device contents, as a kernel writing its output would.
func (a *Address) Write(dtype tensor.DataType, buf []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dtype = dtype
	a.buf = append(a.buf[:0], buf...)
}

// SyncDeviceToHost copies the device contents into dst. When dtype differs
// from the stored type the values are converted element by element.
func (a *Address) SyncDeviceToHost(shape tensor.Shape, size int, dtype tensor.DataType, dst []byte) error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if size > len(dst) {
		return fmt.Errorf("host: destination holds %d bytes, need %d", len(dst), size)
	}
	if dtype == a.dtype {
		if size > len(a.buf) {
			return fmt.Errorf("%w: %d > %d", ErrOutOfRange, size, len(a.buf))
		}
		copy(dst, a.buf[:size])
		return nil
	}

	converted, err := tensor.NewStorageConverted(dtype, shape, a.buf, a.dtype)
	if err != nil {
		return fmt.Errorf("host: convert %s to %s: %w", a.dtype, dtype, err)
	}
	n := copy(dst[:size], converted.Data())
	if n < size {
		return fmt.Errorf("%w: %d > %d", ErrOutOfRange, size, n)
	}
	return nil
}
