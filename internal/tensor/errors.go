package tensor

import "errors"

// Tensor construction and synchronization errors.
// All of them are contract violations: callers are not expected to retry.
var (
	ErrUnsupportedType = errors.New("unsupported data type")
	ErrLengthMismatch  = errors.New("incorrect tensor input data length")
	ErrShapeMismatch   = errors.New("shape does not match element count")
	ErrDeviceSync      = errors.New("device to host sync failed")
	ErrNotNumber       = errors.New("expect tensor type number")
)
