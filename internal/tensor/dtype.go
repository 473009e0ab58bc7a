// Package tensor provides the native tensor values hooked by syft: dense
// row-major tensors, mutable variables and the free functions that operate
// on them.
package tensor

import (
	"fmt"
	"math"
)

// DataType represents runtime type information for tensors.
//
// Storage is always float64; the data type decides how values are rounded
// when they are written into a tensor.
type DataType int

// Supported data types for tensors.
const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	default:
		return "unknown"
	}
}

// IsFloat reports whether the data type is a floating-point type.
func (dt DataType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

// ParseDataType returns the DataType named by s.
func ParseDataType(s string) (DataType, error) {
	switch s {
	case "float32":
		return Float32, nil
	case "float64":
		return Float64, nil
	case "int32":
		return Int32, nil
	case "int64":
		return Int64, nil
	default:
		return 0, fmt.Errorf("unknown data type %q", s)
	}
}

// normalize rounds v to the precision of the data type.
func (dt DataType) normalize(v float64) float64 {
	switch dt {
	case Float32:
		return float64(float32(v))
	case Int32:
		return float64(int32(math.Trunc(v)))
	case Int64:
		return float64(int64(math.Trunc(v)))
	default:
		return v
	}
}
