package collections

import (
	"fmt"
	"reflect"
	"time"

	"github.com/emirpasic/gods/utils"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/exp/constraints"
)

// Number is satisfied by every built-in integer and floating-point type.
type Number interface {
	constraints.Integer | constraints.Float
}

// sequentialKey converts i into K when K can hold integers (int or any).
func sequentialKey[K comparable](i int) (K, bool) {
	k, ok := any(i).(K)
	return k, ok
}

// mustSequentialKey is sequentialKey for operations that cannot return an
// error without breaking method chaining.
func mustSequentialKey[K comparable](i int) K {
	k, ok := sequentialKey[K](i)
	if !ok {
		var zero K
		panic(fmt.Errorf("%w: %T", ErrKeyType, zero))
	}
	return k
}

// naturalCompare orders two scalars the way a human would expect: numbers
// numerically, strings lexically, times chronologically. Values of
// different or unknown types fall back to comparing their %v rendering.
func naturalCompare(a, b any) int {
	if c := comparatorFor(a, b); c != nil {
		return c(a, b)
	}
	return utils.StringComparator(fmt.Sprint(a), fmt.Sprint(b))
}

func comparatorFor(a, b any) utils.Comparator {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return nil
	}
	switch a.(type) {
	case int:
		return utils.IntComparator
	case int8:
		return utils.Int8Comparator
	case int16:
		return utils.Int16Comparator
	case int32:
		return utils.Int32Comparator
	case int64:
		return utils.Int64Comparator
	case uint:
		return utils.UIntComparator
	case uint8:
		return utils.UInt8Comparator
	case uint16:
		return utils.UInt16Comparator
	case uint32:
		return utils.UInt32Comparator
	case uint64:
		return utils.UInt64Comparator
	case float32:
		return utils.Float32Comparator
	case float64:
		return utils.Float64Comparator
	case string:
		return utils.StringComparator
	case time.Time:
		return utils.TimeComparator
	}
	return nil
}

// strictEqual reports whether a and b have the same dynamic type and value.
// Comparable types use ==; slices, maps and funcs fall back to deep equality.
func strictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if hashable(a) {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// hashable reports whether v can be compared with == or used as a map key
// without panicking.
func hashable(v any) bool {
	t := reflect.TypeOf(v)
	return t == nil || t.Comparable() && comparableValue(reflect.ValueOf(v))
}

// comparableValue reports whether == on v is safe, i.e. no interface inside
// a struct or array holds an incomparable dynamic value.
func comparableValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return true
		}
		e := v.Elem()
		return e.Type().Comparable() && comparableValue(e)
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if !comparableValue(v.Field(i)) {
				return false
			}
		}
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if !comparableValue(v.Index(i)) {
				return false
			}
		}
	}
	return true
}

// fingerprint is a fixed-size identity for any value, used as a set key by
// Unique and Duplicates. Pointers fingerprint by address.
type fingerprint [blake2b.Size256]byte

func fingerprintOf(v any) fingerprint {
	return blake2b.Sum256(fmt.Appendf(nil, "%T\x00%#v", v, v))
}
