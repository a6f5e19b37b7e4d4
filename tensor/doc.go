// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public tensor API for embedding applications.
//
// # Overview
//
// A Tensor is a typed, shaped, multi-dimensional array whose values live in
// a shared, type-erased storage. This package exposes:
//   - Construction by element type and shape
//   - Get/set of element type and shape
//   - Dimension sizes, element counts and a structural hash
//   - Raw access to the host bytes
//
// # Basic Usage
//
//	import "github.com/born-ml/tensorcore/tensor"
//
//	func main() {
//	    x := tensor.New(tensor.Float32, tensor.Shape{2, 3})
//	    buf := x.MutableData() // 24 zero bytes
//	    fmt.Println(x.ElementsNum(), len(buf))
//	    fmt.Println(x) // Tensor shape:[2, 3]float32, value:[[ 0.00000000e+00 ...
//	}
//
// # Supported Data Types
//
//   - bool, uint8, uint16, uint32, uint64
//   - int8, int16, int32, int64
//   - float16, float32, float64
//
// Bool and uint8 share one storage layout; they differ only in metadata.
//
// # Rendering
//
// String renders values NumPy style: any dimension longer than 6 is
// summarized as its first 3 and last 3 entries with an ellipsis between.
// One-dimensional tensors are always printed in full.
package tensor
