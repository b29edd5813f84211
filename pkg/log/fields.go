package log

import (
	"time"

	"go.uber.org/zap"
)

// Field is an alias for zap.Field. Aliasing this type dramatically
// improves the navigability of this package's API documentation.
type Field = zap.Field

// Skip constructs a no-op field, which is often useful when handling invalid
// inputs in other Field constructors.
func Skip() Field {
	return zap.Skip()
}

// Bool constructs a field that carries a bool.
func Bool(key string, val bool) Field {
	return zap.Bool(key, val)
}

// Int constructs a field with the given key and value.
func Int(key string, val int) Field {
	return zap.Int(key, val)
}

// Int64 constructs a field with the given key and value.
func Int64(key string, val int64) Field {
	return zap.Int64(key, val)
}

// Float64 constructs a field that carries a float64.
func Float64(key string, val float64) Field {
	return zap.Float64(key, val)
}

// String constructs a field with the given key and value.
func String(key string, val string) Field {
	return zap.String(key, val)
}

// Strings constructs a field that carries a slice of strings.
func Strings(key string, val []string) Field {
	return zap.Strings(key, val)
}

// ByteString constructs a field that carries UTF-8 encoded text as a []byte.
func ByteString(key string, val []byte) Field {
	return zap.ByteString(key, val)
}

// Duration constructs a field with the given key and value. The encoder
// controls how the duration is serialized.
func Duration(key string, val time.Duration) Field {
	return zap.Duration(key, val)
}

// Time constructs a Field with the given key and value. The encoder
// controls how the time is serialized.
func Time(key string, val time.Time) Field {
	return zap.Time(key, val)
}

// Err is shorthand for the common idiom NamedError("error", err).
func Err(err error) Field {
	return zap.Error(err)
}

// NamedError constructs a field that lazily stores err.Error() under the
// provided key. Errors which also implement fmt.Formatter (like those produced
// by github.com/pkg/errors) will also have their verbose representation stored
// under key+"Verbose". If passed a nil error, the field is a no-op.
func NamedError(key string, err error) Field {
	return zap.NamedError(key, err)
}

// Any takes a key and an arbitrary value and chooses the best way to represent
// them as a field, falling back to a reflection-based approach only if
// necessary.
func Any(key string, value any) Field {
	return zap.Any(key, value)
}
