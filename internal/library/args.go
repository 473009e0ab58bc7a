package library

import (
	"errors"
	"fmt"

	"github.com/born-ml/syft/internal/registry"
	"github.com/born-ml/syft/internal/tensor"
)

// ErrBadArgument indicates an argument of an unsupported type or count.
var ErrBadArgument = errors.New("library: bad argument")

func badArg(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBadArgument, fmt.Sprintf(format, args...))
}

// AsTensor converts v to a native tensor.
//
// Accepted: *tensor.Tensor, *tensor.Variable (its current value), objects
// wrapping either, float64/float32/int scalars and []float64 vectors.
func AsTensor(v any) (*tensor.Tensor, error) {
	switch x := v.(type) {
	case *tensor.Tensor:
		if x == nil {
			return nil, badArg("nil tensor")
		}
		return x, nil
	case *tensor.Variable:
		return x.Value(), nil
	case *registry.Object:
		return AsTensor(x.Value())
	case float64:
		return tensor.Scalar(x, tensor.Float64), nil
	case float32:
		return tensor.Scalar(float64(x), tensor.Float32), nil
	case int:
		return tensor.Scalar(float64(x), tensor.Int64), nil
	case []float64:
		return tensor.New(x, tensor.Shape{len(x)}, tensor.Float64)
	default:
		return nil, badArg("cannot convert %T to tensor", v)
	}
}

func asShape(v any) (tensor.Shape, error) {
	switch x := v.(type) {
	case tensor.Shape:
		return x.Clone(), nil
	case []int:
		return tensor.Shape(x).Clone(), nil
	case int:
		return tensor.Shape{x}, nil
	default:
		return nil, badArg("cannot convert %T to shape", v)
	}
}

func asDType(v any) (tensor.DataType, error) {
	switch x := v.(type) {
	case tensor.DataType:
		return x, nil
	case string:
		return tensor.ParseDataType(x)
	default:
		return 0, badArg("cannot convert %T to data type", v)
	}
}

func asFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	default:
		return 0, badArg("cannot convert %T to number", v)
	}
}

func asInt(v any) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int32:
		return int(x), nil
	case int64:
		return int(x), nil
	case uint64:
		return int(x), nil
	default:
		return 0, badArg("cannot convert %T to int", v)
	}
}

// optional returns args[i] converted with conv, or def when absent.
func optional[T any](args []any, i int, def T, conv func(any) (T, error)) (T, error) {
	if len(args) <= i || args[i] == nil {
		return def, nil
	}
	return conv(args[i])
}

func want(args []any, n int, name string) error {
	if len(args) < n {
		return badArg("%s expects at least %d arguments, got %d", name, n, len(args))
	}
	return nil
}
