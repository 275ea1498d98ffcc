package collections

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/hasbyte1/go-collections/arr"
)

// ─────────────────────────────────────────────────────────────────────────────
// Search & Lookup
// ─────────────────────────────────────────────────────────────────────────────

// First returns the first value, optionally the first one matching fns[0].
// Returns [ErrEmptyCollection] for an empty collection and
// [ErrNoMatchingItems] when no value satisfies the predicate.
func (c *Collection[K, V]) First(fns ...Predicate[K, V]) (V, error) {
	_, v, err := firstOf[K, V](c, fns)
	return v, err
}

// FirstOr is [Collection.First] returning def instead of an error.
func (c *Collection[K, V]) FirstOr(def V, fns ...Predicate[K, V]) V {
	if v, err := c.First(fns...); err == nil {
		return v
	}
	return def
}

// Last returns the last value, optionally the last one matching fns[0].
// Errors as [Collection.First].
func (c *Collection[K, V]) Last(fns ...Predicate[K, V]) (V, error) {
	var zero V
	if len(fns) == 0 {
		if len(c.values) == 0 {
			return zero, ErrEmptyCollection
		}
		return c.values[len(c.values)-1], nil
	}
	for i := len(c.keys) - 1; i >= 0; i-- {
		if fns[0](c.values[i], c.keys[i]) {
			return c.values[i], nil
		}
	}
	return zero, ErrNoMatchingItems
}

// LastOr is [Collection.Last] returning def instead of an error.
func (c *Collection[K, V]) LastOr(def V, fns ...Predicate[K, V]) V {
	if v, err := c.Last(fns...); err == nil {
		return v
	}
	return def
}

// Contains reports whether at least one entry satisfies fn.
func (c *Collection[K, V]) Contains(fn Predicate[K, V]) bool {
	_, ok := c.Search(fn)
	return ok
}

// ContainsValue reports whether any value is strictly equal to value: same
// dynamic type and ==, or deep equality for slices, maps and similar.
func (c *Collection[K, V]) ContainsValue(value V) bool {
	return c.Contains(func(v V, _ K) bool { return strictEqual(v, value) })
}

// Every reports whether every entry satisfies fn. True for an empty collection.
func (c *Collection[K, V]) Every(fn Predicate[K, V]) bool {
	return !c.Contains(not(fn))
}

// Search returns the key of the first entry satisfying fn.
func (c *Collection[K, V]) Search(fn Predicate[K, V]) (K, bool) {
	for i, k := range c.keys {
		if fn(c.values[i], k) {
			return k, true
		}
	}
	var zero K
	return zero, false
}

// Random returns one value chosen uniformly at random.
// Returns [ErrEmptyCollection] if the collection is empty.
func (c *Collection[K, V]) Random() (V, error) {
	if len(c.values) == 0 {
		var zero V
		return zero, ErrEmptyCollection
	}
	return c.values[rand.IntN(len(c.values))], nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Transformation (type-preserving)
// ─────────────────────────────────────────────────────────────────────────────

// Map returns a new collection with each value replaced by fn(value, key).
// Keys and order are preserved.
//
// To change the value type use the package-level [Map] function.
func (c *Collection[K, V]) Map(fn func(V, K) V) *Collection[K, V] {
	return Map(c, fn)
}

// Filter returns a new collection with only the entries for which fn
// returns true. Original keys are kept, so list keys may have gaps; call
// [Collection.Values] to re-index.
func (c *Collection[K, V]) Filter(fn Predicate[K, V]) *Collection[K, V] {
	return c.through(func(src Iterator[K, V]) Iterator[K, V] {
		return &filterIter[K, V]{source: src, fn: fn}
	})
}

// Reject returns a new collection with entries for which fn returns true
// removed. It is the complement of [Collection.Filter].
func (c *Collection[K, V]) Reject(fn Predicate[K, V]) *Collection[K, V] {
	return c.Filter(not(fn))
}

// Where keeps entries whose value has path (dot notation, see package arr)
// strictly equal to value.
//
//	collections.New(users...).Where("department", "IT")
func (c *Collection[K, V]) Where(path string, value any) *Collection[K, V] {
	return c.Filter(func(v V, _ K) bool {
		got, ok := arr.Lookup(v, path)
		return ok && strictEqual(got, value)
	})
}

// Pluck extracts the value at path (dot notation) from every entry.
// Entries lacking the path yield nil.
func (c *Collection[K, V]) Pluck(path string) *Collection[K, any] {
	return Map(c, func(v V, _ K) any { return arr.Get(v, path) })
}

// Unique returns a new collection keeping the first entry of each distinct
// value. fns[0], when given, extracts the identity to compare instead.
func (c *Collection[K, V]) Unique(fns ...func(V, K) any) *Collection[K, V] {
	return c.through(func(src Iterator[K, V]) Iterator[K, V] {
		return newUniqueIter(src, fns)
	})
}

// Duplicates returns the entries whose value (or fns[0] identity) already
// appeared earlier in the collection.
func (c *Collection[K, V]) Duplicates(fns ...func(V, K) any) *Collection[K, V] {
	id := identity[K, V](fns)
	seen := make(map[fingerprint]struct{}, len(c.keys))
	return c.Filter(func(v V, k K) bool {
		fp := fingerprintOf(id(v, k))
		if _, dup := seen[fp]; dup {
			return true
		}
		seen[fp] = struct{}{}
		return false
	})
}

// Reverse returns a new collection with entries in reverse order.
// Keys stay attached to their values.
func (c *Collection[K, V]) Reverse() *Collection[K, V] {
	out := withCapacity[K, V](len(c.keys))
	for i := len(c.keys) - 1; i >= 0; i-- {
		out.put(c.keys[i], c.values[i])
	}
	return out
}

// Shuffle returns a new collection with entries in random order.
func (c *Collection[K, V]) Shuffle() *Collection[K, V] {
	order := rand.Perm(len(c.keys))
	return c.reorder(order)
}

// ─────────────────────────────────────────────────────────────────────────────
// Sorting
// ─────────────────────────────────────────────────────────────────────────────

// SortFunc returns a new collection sorted by cmp (negative when a < b).
// The sort is stable and keys stay attached to their values.
func (c *Collection[K, V]) SortFunc(cmp func(a, b V) int) *Collection[K, V] {
	order := c.positions()
	slices.SortStableFunc(order, func(i, j int) int { return cmp(c.values[i], c.values[j]) })
	return c.reorder(order)
}

// SortBy returns a new collection sorted in ascending order by the float64
// value extracted by fn.
func (c *Collection[K, V]) SortBy(fn func(V) float64) *Collection[K, V] {
	return c.SortFunc(func(a, b V) int { return compareFloat(fn(a), fn(b)) })
}

// SortByDesc returns a new collection sorted in descending order by fn.
func (c *Collection[K, V]) SortByDesc(fn func(V) float64) *Collection[K, V] {
	return c.SortFunc(func(a, b V) int { return compareFloat(fn(b), fn(a)) })
}

// SortKeys returns a new collection ordered by key in natural order.
func (c *Collection[K, V]) SortKeys() *Collection[K, V] {
	order := c.positions()
	slices.SortStableFunc(order, func(i, j int) int { return naturalCompare(c.keys[i], c.keys[j]) })
	return c.reorder(order)
}

// SortKeysDesc returns a new collection ordered by key, descending.
func (c *Collection[K, V]) SortKeysDesc() *Collection[K, V] {
	order := c.positions()
	slices.SortStableFunc(order, func(i, j int) int { return naturalCompare(c.keys[j], c.keys[i]) })
	return c.reorder(order)
}

func (c *Collection[K, V]) positions() []int {
	order := make([]int, len(c.keys))
	for i := range order {
		order[i] = i
	}
	return order
}

func (c *Collection[K, V]) reorder(order []int) *Collection[K, V] {
	out := withCapacity[K, V](len(order))
	for _, i := range order {
		out.put(c.keys[i], c.values[i])
	}
	return out
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// ─────────────────────────────────────────────────────────────────────────────
// Combining
// ─────────────────────────────────────────────────────────────────────────────

// Concat returns a new collection with the entries of other appended.
// Integer keys from other are re-sequenced after c's highest integer key, so
// list-like collections keep every element. Other keys overwrite entries
// with the same key.
func (c *Collection[K, V]) Concat(other *Collection[K, V]) *Collection[K, V] {
	out := c.clone()
	for i, k := range other.keys {
		if _, isInt := any(k).(int); isInt {
			out.put(mustSequentialKey[K](out.next), other.values[i])
			continue
		}
		out.put(k, other.values[i])
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Add / Remove (non-mutating)
// ─────────────────────────────────────────────────────────────────────────────

// Prepend returns a new list-like collection with values inserted at the
// front and every integer key re-sequenced.
func (c *Collection[K, V]) Prepend(values ...V) *Collection[K, V] {
	out := withCapacity[K, V](len(values) + len(c.keys))
	for _, v := range values {
		out.put(mustSequentialKey[K](out.next), v)
	}
	return out.Concat(c)
}

// ─────────────────────────────────────────────────────────────────────────────
// Slicing & Pagination
// ─────────────────────────────────────────────────────────────────────────────

// Slice returns the entries starting at offset, keys preserved.
// A negative offset counts from the end. length[0], when given, limits the
// result: a negative length stops that many entries before the end.
func (c *Collection[K, V]) Slice(offset int, length ...int) *Collection[K, V] {
	total := len(c.keys)
	start := offset
	if start < 0 {
		start = max(total+start, 0)
	}
	start = min(start, total)
	end := total
	if len(length) > 0 {
		if l := length[0]; l >= 0 {
			end = min(start+l, total)
		} else {
			end = max(total+l, start)
		}
	}
	return c.sub(start, end)
}

// Take returns the first n entries, or the last -n entries when n < 0.
func (c *Collection[K, V]) Take(n int) *Collection[K, V] {
	if n < 0 {
		return c.Slice(n)
	}
	return c.Slice(0, n)
}

// TakeUntil returns entries from the start until fn returns true (exclusive).
func (c *Collection[K, V]) TakeUntil(fn Predicate[K, V]) *Collection[K, V] {
	return c.TakeWhile(not(fn))
}

// TakeWhile returns entries from the start while fn returns true.
func (c *Collection[K, V]) TakeWhile(fn Predicate[K, V]) *Collection[K, V] {
	return c.through(func(src Iterator[K, V]) Iterator[K, V] {
		return &takeWhileIter[K, V]{source: src, fn: fn}
	})
}

// Skip returns a new collection without the first n entries.
// A negative n behaves like Slice(n), keeping the last -n entries.
func (c *Collection[K, V]) Skip(n int) *Collection[K, V] {
	return c.Slice(n)
}

// SkipUntil skips entries until fn returns true, then returns the rest.
func (c *Collection[K, V]) SkipUntil(fn Predicate[K, V]) *Collection[K, V] {
	return c.SkipWhile(not(fn))
}

// SkipWhile skips entries while fn returns true, then returns the rest.
func (c *Collection[K, V]) SkipWhile(fn Predicate[K, V]) *Collection[K, V] {
	return c.through(func(src Iterator[K, V]) Iterator[K, V] {
		return &skipWhileIter[K, V]{source: src, fn: fn, skipping: true}
	})
}

// ─────────────────────────────────────────────────────────────────────────────
// Aggregation
// ─────────────────────────────────────────────────────────────────────────────

// SumBy returns the sum of the values extracted by fn. Zero for an empty
// collection.
func (c *Collection[K, V]) SumBy(fn func(V) float64) float64 {
	var sum float64
	for _, v := range c.values {
		sum += fn(v)
	}
	return sum
}

// AvgBy returns the arithmetic mean of the values extracted by fn.
// Returns [ErrEmptyCollection] for an empty collection.
func (c *Collection[K, V]) AvgBy(fn func(V) float64) (float64, error) {
	if len(c.values) == 0 {
		return 0, ErrEmptyCollection
	}
	return c.SumBy(fn) / float64(len(c.values)), nil
}

// MinBy returns the value with the smallest number extracted by fn.
// Returns [ErrEmptyCollection] for an empty collection.
func (c *Collection[K, V]) MinBy(fn func(V) float64) (V, error) {
	return extreme[K, V](c, fn, -1)
}

// MaxBy returns the value with the largest number extracted by fn.
// Returns [ErrEmptyCollection] for an empty collection.
func (c *Collection[K, V]) MaxBy(fn func(V) float64) (V, error) {
	return extreme[K, V](c, fn, 1)
}

// Reduce folds the values from left to right. Without an initial value the
// first value seeds the accumulator and folding starts at the second.
// Returns [ErrEmptyCollection] when there is neither an initial value nor
// any value to seed from.
//
// To fold into a different type use the package-level [Reduce] function.
func (c *Collection[K, V]) Reduce(fn func(carry, value V, key K) V, initial ...V) (V, error) {
	return reduceOf[K, V](c, fn, initial)
}

// ─────────────────────────────────────────────────────────────────────────────
// Grouping / Partitioning
// ─────────────────────────────────────────────────────────────────────────────

// Partition splits the collection into two: entries for which fn returns
// true, then the rest. Both keep original keys and order.
func (c *Collection[K, V]) Partition(fn Predicate[K, V]) (*Collection[K, V], *Collection[K, V]) {
	pass, fail, _ := partitionOf[K, V](c, fn)
	return pass, fail
}

// ─────────────────────────────────────────────────────────────────────────────
// String helpers
// ─────────────────────────────────────────────────────────────────────────────

// Join concatenates the values' %v renderings with sep. When last[0] is
// given and there are at least two values, it is used before the final value:
//
//	New("A", "B", "C").Join(", ", " and ") // "A, B and C"
func (c *Collection[K, V]) Join(sep string, last ...string) string {
	parts := make([]string, len(c.values))
	for i, v := range c.values {
		parts[i] = fmt.Sprint(v)
	}
	return joinParts(parts, sep, last)
}

// Implode joins all values into a string using sep, converting each with fn.
func (c *Collection[K, V]) Implode(sep string, fn func(V) string) string {
	parts := make([]string, len(c.values))
	for i, v := range c.values {
		parts[i] = fn(v)
	}
	return strings.Join(parts, sep)
}

func joinParts(parts []string, sep string, last []string) string {
	if len(last) == 0 || len(parts) < 2 {
		return strings.Join(parts, sep)
	}
	n := len(parts) - 1
	return strings.Join(parts[:n], sep) + last[0] + parts[n]
}

// ─────────────────────────────────────────────────────────────────────────────
// Conditional pipeline
// ─────────────────────────────────────────────────────────────────────────────

// When calls fn(c) if condition is true and returns the result.
// Otherwise returns c unchanged.
func (c *Collection[K, V]) When(condition bool, fn func(*Collection[K, V]) *Collection[K, V]) *Collection[K, V] {
	if condition {
		return fn(c)
	}
	return c
}

// Unless calls fn(c) if condition is false; otherwise returns c.
func (c *Collection[K, V]) Unless(condition bool, fn func(*Collection[K, V]) *Collection[K, V]) *Collection[K, V] {
	return c.When(!condition, fn)
}

// WhenEmpty calls fn(c) if c is empty; otherwise returns c.
func (c *Collection[K, V]) WhenEmpty(fn func(*Collection[K, V]) *Collection[K, V]) *Collection[K, V] {
	return c.When(c.IsEmpty(), fn)
}

// WhenNotEmpty calls fn(c) if c is not empty; otherwise returns c.
func (c *Collection[K, V]) WhenNotEmpty(fn func(*Collection[K, V]) *Collection[K, V]) *Collection[K, V] {
	return c.When(c.IsNotEmpty(), fn)
}
