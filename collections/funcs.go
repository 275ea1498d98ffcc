package collections

import (
	"cmp"
	"fmt"
	"slices"
)

// This file contains package-level generic functions for operations that
// transform a Collection[K, V] into a collection of another key or value type.
//
// Go generics do not allow methods to introduce their own type parameters, so
// these operations must be stand-alone functions. They are designed to be
// composable with method-chaining calls:
//
//	result := collections.Map(
//	    collections.New(1, 2, 3, 4, 5).Filter(func(n, _ int) bool { return n%2 == 0 }),
//	    func(n, _ int) string { return strconv.Itoa(n) },
//	)

// Map applies fn to every value and returns a new collection with the same
// keys in the same order.
//
//	labels := collections.Map(collections.New(1, 2, 3),
//	    func(n, _ int) string { return strconv.Itoa(n * 2) })
func Map[K comparable, V, U any](c *Collection[K, V], fn func(V, K) U) *Collection[K, U] {
	out, _ := collect[K, U](&mapIter[K, V, U]{source: c.Iter(), fn: fn})
	return out
}

// FlatMap applies fn to every value (producing a []U per value) and flattens
// the results into a single re-indexed list-like collection.
//
//	words := collections.FlatMap(collections.New("hello world", "foo bar"),
//	    func(s string, _ int) []string { return strings.Fields(s) })
//	// → ["hello", "world", "foo", "bar"]
func FlatMap[K comparable, V, U any](c *Collection[K, V], fn func(V, K) []U) *Collection[int, U] {
	out, _ := collect[int, U](&flatMapIter[K, V, U]{source: c.Iter(), fn: fn})
	return out
}

// MapInto passes every value to the single-argument constructor ctor.
//
//	ids := collections.MapInto(collections.New(1, 2), NewUserID)
func MapInto[K comparable, V, U any](c *Collection[K, V], ctor func(V) U) *Collection[K, U] {
	return Map(c, func(v V, _ K) U { return ctor(v) })
}

// MapToGroups calls fn for every entry; fn returns a group key and the value
// to file under it. Groups appear in first-seen order as list-like collections.
//
//	byDept := collections.MapToGroups(users, func(u User, _ int) (string, string) {
//	    return u.Department, u.Name
//	})
func MapToGroups[K comparable, V any, G comparable, U any](c *Collection[K, V], fn func(V, K) (G, U)) *Collection[G, *Collection[int, U]] {
	groups := Empty[G, *Collection[int, U]]()
	for i, k := range c.keys {
		g, u := fn(c.values[i], k)
		members, ok := groups.Get(g)
		if !ok {
			members = Empty[int, U]()
			groups.put(g, members)
		}
		members.Push(u)
	}
	return groups
}

// Reduce folds c into a value of another type, starting from initial.
//
//	sum := collections.Reduce(collections.New(1, 2, 3, 4),
//	    func(acc int, n, _ int) int { return acc + n }, 0)
func Reduce[K comparable, V, U any](c *Collection[K, V], fn func(U, V, K) U, initial U) U {
	out, _ := foldOf[K, V, U](c, fn, initial)
	return out
}

// Fold is [Reduce] over any Source. Unlike Reduce it reports the error that
// stopped a lazy source.
func Fold[K comparable, V, U any](src Source[K, V], fn func(U, V, K) U, initial U) (U, error) {
	return foldOf(src, fn, initial)
}

// GroupBy groups entries by the comparable key extracted by fn. Groups appear
// in first-seen order and keep member order and original keys.
//
//	byDept := collections.GroupBy(employees,
//	    func(e Employee, _ int) string { return e.Department })
func GroupBy[K comparable, V any, G comparable](c *Collection[K, V], fn func(V, K) G) *Collection[G, *Collection[K, V]] {
	out, _ := groupOf[K, V, G](c, fn)
	return out
}

// GroupByField groups entries by the value found at path (dot notation).
// Groups appear in first-seen order and keep member order and keys.
// Entries lacking the path are grouped under nil.
//
//	byCity := collections.GroupByField(users, "address.city")
func GroupByField[K comparable, V any](c *Collection[K, V], path string) *Collection[any, *Collection[K, V]] {
	out, _ := groupOf[K, V](c, fieldKey[K, V](path))
	return out
}

// KeyBy re-keys c by the value extracted by fn.
// When several values share a key, the last one wins and takes the position
// of the first.
//
//	byID := collections.KeyBy(users, func(u User, _ int) int { return u.ID })
func KeyBy[K comparable, V any, G comparable](c *Collection[K, V], fn func(V, K) G) *Collection[G, V] {
	out := withCapacity[G, V](len(c.keys))
	for i, k := range c.keys {
		out.put(fn(c.values[i], k), c.values[i])
	}
	return out
}

// CountBy counts entries per key extracted by fn, in first-seen order.
//
//	collections.CountBy(collections.New("a", "b", "a"),
//	    func(s string, _ int) string { return s }) // {"a": 2, "b": 1}
func CountBy[K comparable, V any, G comparable](c *Collection[K, V], fn func(V, K) G) *Collection[G, int] {
	out := Empty[G, int]()
	for i, k := range c.keys {
		g := fn(c.values[i], k)
		n, _ := out.Get(g)
		out.put(g, n+1)
	}
	return out
}

// Zip pairs the values of a and b positionally. Each entry of the result is
// a two-element collection [a[i], b[i]]; the result is as long as the
// shorter input.
//
// To zip collections of different value types use [ZipPairs].
func Zip[K1, K2 comparable, V any](a *Collection[K1, V], b *Collection[K2, V]) *Collection[int, *Collection[int, V]] {
	out, _ := collect[int, *Collection[int, V]](&zipIter[K1, K2, V]{left: a.Iter(), right: b.Iter()})
	return out
}

// ZipPairs combines two collections of different value types
// element-by-element into Pairs. Stops at the shorter of the two.
//
//	pairs := collections.ZipPairs(
//	    collections.New("a", "b", "c"),
//	    collections.New(1, 2, 3),
//	) // → [(a,1), (b,2), (c,3)]
func ZipPairs[K1, K2 comparable, A, B any](a *Collection[K1, A], b *Collection[K2, B]) *Collection[int, Pair[A, B]] {
	n := min(len(a.values), len(b.values))
	out := withCapacity[int, Pair[A, B]](n)
	for i := 0; i < n; i++ {
		out.put(i, Pair[A, B]{First: a.values[i], Second: b.values[i]})
	}
	return out
}

// Combine uses the values of keys as keys for the values of values, matched
// by position. The result is as long as the shorter input. Keys are used
// exactly as given.
//
//	c := collections.Combine(collections.New("name", "age"), collections.New[any]("Ada", 36))
//	// → {"name": "Ada", "age": 36}
func Combine[K1, K2, G comparable, V any](keys *Collection[K1, G], values *Collection[K2, V]) *Collection[G, V] {
	n := min(len(keys.values), len(values.values))
	out := withCapacity[G, V](n)
	for i := 0; i < n; i++ {
		out.put(keys.values[i], values.values[i])
	}
	return out
}

// Chunk splits c into consecutive collections of at most size entries.
// Entries keep their original keys inside each chunk.
// Returns [ErrInvalidChunkSize] if size <= 0.
//
//	pages, _ := collections.Chunk(collections.Range(1, 10), 3)
//	// → [[1 2 3] [4 5 6] [7 8 9] [10]]
func Chunk[K comparable, V any](c *Collection[K, V], size int) (*Collection[int, *Collection[K, V]], error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidChunkSize, size)
	}
	return collect[int, *Collection[K, V]](&chunkIter[K, V]{source: c.Iter(), size: size})
}

// Collapse flattens a collection of collections one level, outer then
// inner, into a re-indexed list-like collection.
//
//	flat := collections.Collapse(collections.New(collections.New(1, 2), collections.New(3)))
//	// → [1, 2, 3]
func Collapse[K, J comparable, V any](c *Collection[K, *Collection[J, V]]) *Collection[int, V] {
	return FlatMap(c, func(inner *Collection[J, V], _ K) []V {
		if inner == nil {
			return nil
		}
		return inner.values
	})
}

// CollapseSlices flattens a collection of slices one level.
//
//	flat := collections.CollapseSlices(collections.New([]int{1, 2}, []int{3, 4}))
//	// → [1, 2, 3, 4]
func CollapseSlices[K comparable, V any](c *Collection[K, []V]) *Collection[int, V] {
	return FlatMap(c, func(inner []V, _ K) []V { return inner })
}

// ─────────────────────────────────────────────────────────────────────────────
// Ordered values
// ─────────────────────────────────────────────────────────────────────────────

// Sort returns a new collection with values in ascending natural order.
// The sort is stable and keys stay attached to their values.
func Sort[K comparable, V cmp.Ordered](c *Collection[K, V]) *Collection[K, V] {
	return c.SortFunc(cmp.Compare[V])
}

// SortDesc returns a new collection with values in descending natural order.
func SortDesc[K comparable, V cmp.Ordered](c *Collection[K, V]) *Collection[K, V] {
	return c.SortFunc(func(a, b V) int { return cmp.Compare(b, a) })
}

// Sum returns the sum of all values. Zero for an empty collection.
func Sum[K comparable, V Number](c *Collection[K, V]) V {
	var sum V
	for _, v := range c.values {
		sum += v
	}
	return sum
}

// Avg returns the arithmetic mean of all values.
// Returns [ErrEmptyCollection] for an empty collection.
func Avg[K comparable, V Number](c *Collection[K, V]) (float64, error) {
	if len(c.values) == 0 {
		return 0, ErrEmptyCollection
	}
	return float64(Sum(c)) / float64(len(c.values)), nil
}

// Min returns the smallest value.
// Returns [ErrEmptyCollection] for an empty collection.
func Min[K comparable, V cmp.Ordered](c *Collection[K, V]) (V, error) {
	if len(c.values) == 0 {
		var zero V
		return zero, ErrEmptyCollection
	}
	return slices.Min(c.values), nil
}

// Max returns the largest value.
// Returns [ErrEmptyCollection] for an empty collection.
func Max[K comparable, V cmp.Ordered](c *Collection[K, V]) (V, error) {
	if len(c.values) == 0 {
		var zero V
		return zero, ErrEmptyCollection
	}
	return slices.Max(c.values), nil
}
