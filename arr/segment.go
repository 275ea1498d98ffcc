package arr

import (
	"reflect"
	"strconv"
	"strings"
)

// segment applies a single path segment to v.
func segment(v any, seg string) (any, bool) {
	switch m := v.(type) {
	case nil:
		return nil, false
	case map[string]any:
		val, ok := m[seg]
		return val, ok
	case map[string]string:
		val, ok := m[seg]
		return val, ok
	case []any:
		return index(reflect.ValueOf(m), seg)
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		key, ok := mapKey(rv.Type().Key(), seg)
		if !ok {
			return nil, false
		}
		val := rv.MapIndex(key)
		if !val.IsValid() {
			return nil, false
		}
		return val.Interface(), true
	case reflect.Struct:
		return field(rv, seg)
	case reflect.Slice, reflect.Array:
		return index(rv, seg)
	}
	return nil, false
}

func index(rv reflect.Value, seg string) (any, bool) {
	i, err := strconv.Atoi(seg)
	if err != nil || i < 0 || i >= rv.Len() {
		return nil, false
	}
	return rv.Index(i).Interface(), true
}

func mapKey(t reflect.Type, seg string) (reflect.Value, bool) {
	switch t.Kind() {
	case reflect.String:
		return reflect.ValueOf(seg).Convert(t), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(seg, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(n).Convert(t), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(seg, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(n).Convert(t), true
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return reflect.ValueOf(seg), true
		}
	}
	return reflect.Value{}, false
}

// field matches an exported struct field by name, then by json tag.
func field(rv reflect.Value, seg string) (any, bool) {
	t := rv.Type()
	if f, ok := t.FieldByName(seg); ok && f.IsExported() {
		fv, err := rv.FieldByIndexErr(f.Index)
		if err != nil {
			return nil, false
		}
		return fv.Interface(), true
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == seg {
			return rv.Field(i).Interface(), true
		}
	}
	return nil, false
}
