package tensor

import "fmt"

// DeviceAddress is a region of device memory that mirrors a tensor.
// Tensors hold it without owning it; the device allocator manages its life.
type DeviceAddress interface {
	// SyncDeviceToHost copies size bytes describing a tensor of the given
	// shape and type from the device into dst. It blocks until the transfer
	// has finished.
	SyncDeviceToHost(shape Shape, size int, dtype DataType, dst []byte) error
}

// DeviceAddress returns the device memory mirrored by t, or nil.
func (t *Tensor) DeviceAddress() DeviceAddress {
	return t.device
}

// SetDeviceAddress associates t with device memory. Passing nil detaches it.
func (t *Tensor) SetDeviceAddress(addr DeviceAddress) {
	t.device = addr
}

// DataSync copies the device copy of t into its host buffer. Tensors without
// a device address are left untouched.
func (t *Tensor) DataSync() error {
	if t.device == nil {
		return nil
	}
	size := t.data.NBytes()
	log().Debug("sync device to host", "tensor", t.id, "dtype", t.DataType(), "shape", t.Shape(), "bytes", size)
	if err := t.device.SyncDeviceToHost(t.Shape(), size, t.DataType(), t.data.Data()); err != nil {
		log().Error("sync device to host failed", "tensor", t.id, "error", err)
		return fmt.Errorf("tensor %s: %w: %w", t.id, ErrDeviceSync, err)
	}
	return nil
}
