package plural

import (
	"database/sql/driver"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// ParseCount is the single coercion boundary in front of a Rule.
//
// It accepts any Go integer kind (or a pointer to one), whole-valued floats,
// base-10 integer strings, and driver.Valuer types such as sql.NullInt64 or
// pgtype.Int8. Absent, malformed and negative values report ok == false.
func ParseCount(v any) (n int, ok bool) {
	if v == nil {
		return 0, false
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return 0, false
	}

	switch x := v.(type) {
	case string:
		return parseString(x)
	case []byte:
		return parseString(string(x))
	case interface{ Int64() (int64, error) }:
		i, err := x.Int64()
		if err != nil {
			return 0, false
		}
		return fromInt64(i)
	case driver.Valuer:
		val, err := x.Value()
		if err != nil {
			return 0, false
		}
		if _, nested := val.(driver.Valuer); nested {
			return 0, false
		}
		return ParseCount(val)
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return 0, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fromInt64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt {
			return 0, false
		}
		return int(u), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f > math.MaxInt {
			return 0, false
		}
		return fromInt64(int64(f))
	case reflect.String:
		return parseString(rv.String())
	default:
		return 0, false
	}
}

func parseString(s string) (int, bool) {
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return fromInt64(i)
}

func fromInt64(i int64) (int, bool) {
	if i < 0 || i > math.MaxInt {
		return 0, false
	}
	return int(i), true
}
