package sparse

import (
	"strconv"
)

// Element is the capability set every matrix element type must satisfy:
// copyable, zero-valued-as-absent, and formattable as a text field. The
// engine is written once against this constraint and instantiated per
// concrete type; runtime dispatch on the container's type tag happens
// exactly once, at load time.
type Element interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// SupportedTypes returns the canonical names of the ten supported element
// types, in width order. Used by error messages and the CLI types listing.
func SupportedTypes() []string {
	return []string{
		"int8", "int16", "int32", "int64",
		"uint8", "uint16", "uint32", "uint64",
		"float32", "float64",
	}
}

// FormatValue renders a matrix element as a text field. Integers use
// base-10; floats use the shortest non-scientific representation that
// round-trips.
func FormatValue[T Element](v T) string {
	switch x := any(v).(type) {
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		// Named types with an Element underlying type. The converter only
		// instantiates the ten builtin types, so precision loss beyond
		// 2^53 cannot occur on any dispatched path.
		return strconv.FormatFloat(float64(v), 'f', -1, 64)
	}
}
