package model

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var errCoerce = errors.New("model: cannot coerce value")

// timeLayouts are tried in order when parsing time input.
var timeLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// coerce converts loosely typed input (request strings, JSON numbers) into a
// value assignable to attr.
func coerce(attr *attribute, value any) (reflect.Value, error) {
	if attr.kind != KindStrings && attr.kind != KindInts {
		value = lastScalar(value)
	}

	var (
		out any
		err error
	)
	switch attr.kind {
	case KindString:
		out = scalarString(value)
	case KindBool:
		out, err = toBool(value)
	case KindInt:
		var n int64
		n, err = toInt(value)
		if err == nil && reflect.Zero(attr.typ).OverflowInt(n) {
			err = fmt.Errorf("%w: %d overflows %s", errCoerce, n, attr.typ)
		}
		if err == nil {
			return reflect.ValueOf(n).Convert(attr.typ), nil
		}
	case KindUint:
		var n uint64
		n, err = toUint(value)
		if err == nil && reflect.Zero(attr.typ).OverflowUint(n) {
			err = fmt.Errorf("%w: %d overflows %s", errCoerce, n, attr.typ)
		}
		if err == nil {
			return reflect.ValueOf(n).Convert(attr.typ), nil
		}
	case KindFloat:
		out, err = toFloat(value)
	case KindStrings:
		out = toStrings(value)
	case KindInts:
		out, err = toInts(value)
	case KindTime:
		out, err = toTime(value)
	default:
		err = fmt.Errorf("%w: unknown kind %q", errCoerce, attr.kind)
	}
	if err != nil {
		return reflect.Zero(attr.typ), err
	}

	rv := reflect.ValueOf(out)
	if attr.kind == KindInts {
		converted := reflect.MakeSlice(attr.typ, rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			converted.Index(i).Set(rv.Index(i).Convert(attr.typ.Elem()))
		}
		return converted, nil
	}
	return rv.Convert(attr.typ), nil
}

// lastScalar picks the last submitted value so a checkbox overrides the hidden
// unchecked input rendered before it.
func lastScalar(value any) any {
	switch v := value.(type) {
	case []string:
		if len(v) == 0 {
			return ""
		}
		return v[len(v)-1]
	case []any:
		if len(v) == 0 {
			return nil
		}
		return v[len(v)-1]
	default:
		return value
	}
}

func scalarString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}

func toBool(value any) (bool, error) {
	switch v := value.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "0", "false", "off", "no":
			return false, nil
		case "1", "true", "on", "yes":
			return true, nil
		}
		return false, fmt.Errorf("%w: %q is not a boolean", errCoerce, v)
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0, nil
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0, nil
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.String:
		return toBool(rv.String())
	}
	return false, fmt.Errorf("%w: %T is not a boolean", errCoerce, value)
}

func toInt(value any) (int64, error) {
	if value == nil {
		return 0, nil
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != float64(int64(f)) {
			return 0, fmt.Errorf("%w: %v is not an integer", errCoerce, f)
		}
		return int64(f), nil
	case reflect.Bool:
		if rv.Bool() {
			return 1, nil
		}
		return 0, nil
	case reflect.String:
		trimmed := strings.TrimSpace(rv.String())
		if trimmed == "" {
			return 0, nil
		}
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an integer", errCoerce, trimmed)
		}
		return n, nil
	}
	return 0, fmt.Errorf("%w: %T is not an integer", errCoerce, value)
}

func toUint(value any) (uint64, error) {
	n, err := toInt(value)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d is negative", errCoerce, n)
	}
	return uint64(n), nil
}

func toFloat(value any) (float64, error) {
	if value == nil {
		return 0, nil
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.String:
		trimmed := strings.TrimSpace(rv.String())
		if trimmed == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", errCoerce, trimmed)
		}
		return f, nil
	}
	return 0, fmt.Errorf("%w: %T is not a number", errCoerce, value)
}

func toStrings(value any) []string {
	switch v := value.(type) {
	case nil:
		return []string{}
	case []string:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if item == "" {
				continue
			}
			out = append(out, item)
		}
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s := scalarString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return []string{}
		}
		return []string{v}
	default:
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Slice {
			return []string{scalarString(v)}
		}
		out := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			if s := scalarString(rv.Index(i).Interface()); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
}

func toInts(value any) ([]int, error) {
	items := toStrings(value)
	out := make([]int, 0, len(items))
	for _, item := range items {
		n, err := toInt(item)
		if err != nil {
			return nil, err
		}
		out = append(out, int(n))
	}
	return out, nil
}

func toTime(value any) (time.Time, error) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return v, nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return time.Time{}, nil
		}
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, trimmed); err == nil {
				return parsed, nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: %q is not a date", errCoerce, trimmed)
	}
	return time.Time{}, fmt.Errorf("%w: %T is not a date", errCoerce, value)
}
