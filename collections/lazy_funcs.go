package collections

import "fmt"

// Package-level LazySequence operations that change the key or value type.

// LazyMap replaces every value with fn(value, key), deferred.
//
//	labels := collections.LazyMap(collections.LazyRange(1, 3),
//	    func(n, _ int) string { return strconv.Itoa(n) })
func LazyMap[K comparable, V, U any](s *LazySequence[K, V], fn func(V, K) U) *LazySequence[K, U] {
	return &LazySequence[K, U]{source: func() Iterator[K, U] {
		return &mapIter[K, V, U]{source: s.source(), fn: fn}
	}}
}

// LazyFlatMap expands every entry into zero or more values, keyed 0, 1, 2, …
// across the whole output.
func LazyFlatMap[K comparable, V, U any](s *LazySequence[K, V], fn func(V, K) []U) *LazySequence[int, U] {
	return &LazySequence[int, U]{source: func() Iterator[int, U] {
		return &flatMapIter[K, V, U]{source: s.source(), fn: fn}
	}}
}

// LazyMapInto passes every value to the single-argument constructor ctor.
func LazyMapInto[K comparable, V, U any](s *LazySequence[K, V], ctor func(V) U) *LazySequence[K, U] {
	return LazyMap(s, func(v V, _ K) U { return ctor(v) })
}

// LazyGroupBy runs s and groups its entries by the key extracted by fn; see
// [GroupBy].
func LazyGroupBy[K comparable, V any, G comparable](s *LazySequence[K, V], fn func(V, K) G) (*Collection[G, *Collection[K, V]], error) {
	return groupOf[K, V, G](s, fn)
}

// LazyGroupByField runs s and groups its entries by the value at path; see
// [GroupByField].
func LazyGroupByField[K comparable, V any](s *LazySequence[K, V], path string) (*Collection[any, *Collection[K, V]], error) {
	return groupOf[K, V](s, fieldKey[K, V](path))
}

// LazyChunk groups consecutive entries of s into collections of at most size
// entries. A size <= 0 makes the terminal call fail with
// [ErrInvalidChunkSize].
func LazyChunk[K comparable, V any](s *LazySequence[K, V], size int) *LazySequence[int, *Collection[K, V]] {
	if size <= 0 {
		return failed[int, *Collection[K, V]](fmt.Errorf("%w: got %d", ErrInvalidChunkSize, size))
	}
	return &LazySequence[int, *Collection[K, V]]{source: func() Iterator[int, *Collection[K, V]] {
		return &chunkIter[K, V]{source: s.source(), size: size}
	}}
}

// LazyZip pairs the values of s and other positionally into two-element
// collections, ending with the shorter of the two.
func LazyZip[K1, K2 comparable, V any](s *LazySequence[K1, V], other Source[K2, V]) *LazySequence[int, *Collection[int, V]] {
	return &LazySequence[int, *Collection[int, V]]{source: func() Iterator[int, *Collection[int, V]] {
		return &zipIter[K1, K2, V]{left: s.source(), right: other.Iter()}
	}}
}
