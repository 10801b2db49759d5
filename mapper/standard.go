// mapper/standard.go
package mapper

import (
	"context"
	"database/sql/driver"
	"math"
	"reflect"
	"time"

	"github.com/spf13/cast"

	"github.com/chmenegatti/sqlx/pkg/dialects"
)

// Semantic type tags understood by Standard.
const (
	TypeInt     = "int"
	TypeInt8    = "int8"
	TypeInt16   = "int16"
	TypeInt32   = "int32"
	TypeInt64   = "int64"
	TypeUint    = "uint"
	TypeUint8   = "uint8"
	TypeUint16  = "uint16"
	TypeUint32  = "uint32"
	TypeUint64  = "uint64"
	TypeFloat32 = "float32"
	TypeFloat64 = "float64"
	TypeString  = "string"
	TypeBool    = "bool"
	TypeTime    = "time.Time"
	TypeBytes   = "[]uint8"
)

// DateTimeLayout is the datetime layout of MySQL and PostgreSQL.
const DateTimeLayout = "2006-01-02 15:04:05"

// DriverTimeFormat returns the default datetime layout of a dialect.
func DriverTimeFormat(driver string) string {
	switch driver {
	case dialects.MySQLName, dialects.PostgresName:
		return DateTimeLayout
	}
	return time.RFC3339
}

// Standard is the terminal mapper. It converts scalars by the type hint
// found in the context and handles time.Time in both directions.
type Standard struct{}

var _ Mapper = Standard{}

func (Standard) Name() string { return "standard" }

func (Standard) ToApplication(ctx context.Context, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	hint := TypeFrom(ctx)
	if hint == "" {
		return value, nil
	}
	if b, ok := value.([]byte); ok && hint != TypeBytes {
		value = string(b)
	}

	var (
		out any
		err error
	)
	switch hint {
	case TypeInt, TypeInt8, TypeInt16, TypeInt32, TypeInt64:
		var n int64
		if n, err = cast.ToInt64E(value); err == nil {
			var ok bool
			if out, ok = sizedInt(hint, n); !ok {
				return nil, Errorf(nil, "Cannot map database value %v to %s type", value, hint)
			}
		}
	case TypeUint, TypeUint8, TypeUint16, TypeUint32, TypeUint64:
		var n uint64
		if n, err = cast.ToUint64E(value); err == nil {
			var ok bool
			if out, ok = sizedUint(hint, n); !ok {
				return nil, Errorf(nil, "Cannot map database value %v to %s type", value, hint)
			}
		}
	case TypeFloat32:
		var f float32
		f, err = cast.ToFloat32E(value)
		out = f
	case TypeFloat64:
		out, err = cast.ToFloat64E(value)
	case TypeString:
		out, err = cast.ToStringE(value)
	case TypeBool:
		return truthy(value), nil
	case TypeBytes:
		switch v := value.(type) {
		case []byte:
			return v, nil
		case string:
			return []byte(v), nil
		}
		return nil, Errorf(nil, "Cannot map database value of type %T to %s", value, hint)
	case TypeTime:
		return toTime(ctx, value)
	default:
		return nil, Errorf(nil, "Cannot map database value to %s type", hint)
	}
	if err != nil {
		return nil, Errorf(err, "Cannot map database value %v to %s type", value, hint)
	}
	return out, nil
}

func (Standard) ToDatabase(ctx context.Context, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	if valuer, ok := value.(driver.Valuer); ok {
		v, err := valuer.Value()
		if err != nil {
			return nil, Errorf(err, "Could not obtain the database value of %T", value)
		}
		if v == nil {
			return nil, nil
		}
		value = v
	}

	switch v := value.(type) {
	case bool, string, []byte,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v, nil
	case time.Time:
		return v.Format(dbTimeFormat(ctx)), nil
	}

	// Named scalar types such as `type Status string`.
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, nil
		}
		return Standard{}.ToDatabase(ctx, rv.Elem().Interface())
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	}
	return nil, Errorf(nil, "Cannot map value of type %T to a database value", value)
}

// truthy accepts true, the integer 1 and the strings "true" and "1".
func truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "1"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		n, err := cast.ToInt64E(v)
		return err == nil && n == 1
	}
	return false
}

func toTime(ctx context.Context, value any) (any, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		layout := appTimeFormat(ctx)
		t, err := time.Parse(layout, v)
		if err != nil {
			return nil, Errorf(err, "Could not map date value %q using format %q", v, layout)
		}
		return t, nil
	}
	return nil, Errorf(nil, "Could not map date value of type %T", value)
}

// sizedInt narrows n to the integer type named by hint. It reports false
// when n does not fit.
func sizedInt(hint string, n int64) (any, bool) {
	switch hint {
	case TypeInt8:
		return int8(n), n >= math.MinInt8 && n <= math.MaxInt8
	case TypeInt16:
		return int16(n), n >= math.MinInt16 && n <= math.MaxInt16
	case TypeInt32:
		return int32(n), n >= math.MinInt32 && n <= math.MaxInt32
	case TypeInt64:
		return n, true
	}
	return int(n), n >= math.MinInt && n <= math.MaxInt
}

func sizedUint(hint string, n uint64) (any, bool) {
	switch hint {
	case TypeUint8:
		return uint8(n), n <= math.MaxUint8
	case TypeUint16:
		return uint16(n), n <= math.MaxUint16
	case TypeUint32:
		return uint32(n), n <= math.MaxUint32
	case TypeUint64:
		return n, true
	}
	return uint(n), n <= math.MaxUint
}
