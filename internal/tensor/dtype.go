// Package tensor provides the core tensor data types: runtime type tags,
// shapes, typed storage, and the Tensor entity.
package tensor

import (
	"fmt"
	"strings"

	"github.com/x448/float16"
)

// Element is the closed set of physical element types a Storage can hold.
// Bool tensors are stored as uint8.
type Element interface {
	uint8 | int8 | int16 | int32 | int64 |
		uint16 | uint32 | uint64 |
		float16.Float16 | float32 | float64
}

// Number is the set of Go values accepted as construction sources.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
const (
	Unknown DataType = iota
	Bool
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float16
	Float32
	Float64

	// String is not a number type. Tensors never hold it, but it can reach
	// metadata through NewWithStorage.
	String
)

// NumberTypes lists every data type backed by a typed storage.
var NumberTypes = []DataType{
	Bool, Int8, Int16, Int32, Int64,
	Uint8, Uint16, Uint32, Uint64,
	Float16, Float32, Float64,
}

// Size returns the byte size of the data type.
// Returns 0 for types without a fixed element size.
func (dt DataType) Size() int {
	switch dt {
	case Bool, Int8, Uint8:
		return 1
	case Int16, Uint16, Float16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	default:
		return 0
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Bool:
		return "bool"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Float16:
		return "float16"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case String:
		return "string"
	default:
		return fmt.Sprintf("unknown(%d)", int(dt))
	}
}

// IsNumber reports whether dt is one of the numeric kinds, bool included.
func (dt DataType) IsNumber() bool {
	return dt >= Bool && dt <= Float64
}

// IsFloat reports whether dt is a floating point kind.
func (dt DataType) IsFloat() bool {
	return dt == Float16 || dt == Float32 || dt == Float64
}

// IsSigned reports whether dt is a signed integer kind.
func (dt DataType) IsSigned() bool {
	return dt >= Int8 && dt <= Int64
}

// ParseDataType maps a name such as "float32" or "uint8" to its DataType.
func ParseDataType(name string) (DataType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "half":
		return Float16, nil
	case "float":
		return Float32, nil
	case "double":
		return Float64, nil
	}
	for _, dt := range NumberTypes {
		if dt.String() == name {
			return dt, nil
		}
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnsupportedType, name)
}

// dataTypeOf returns the physical data type for an element type.
// uint8 maps to Uint8; Bool shares that storage.
func dataTypeOf[T Element]() DataType {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return Uint8
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint16:
		return Uint16
	case uint32:
		return Uint32
	case uint64:
		return Uint64
	case float16.Float16:
		return Float16
	case float32:
		return Float32
	case float64:
		return Float64
	default:
		panic("unsupported element type")
	}
}
