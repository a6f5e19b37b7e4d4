// Package webgpu provides a DeviceAddress backed by a WebGPU storage buffer.
//
// It uses go-webgpu (github.com/go-webgpu/webgpu) zero-CGO bindings, which
// are only wired on Windows for now. On other platforms the package is empty
// and callers fall back to host memory.
package webgpu
