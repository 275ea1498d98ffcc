package collections

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"slices"
)

// Collection is a generic, ordered, keyed container of values.
//
// Keys are unique and keep their insertion order. List-like collections are
// Collection[int, V] values keyed 0, 1, 2, …; map-like collections use
// caller-assigned keys. Every method that transforms the collection returns a *new*
// Collection and leaves the receiver unchanged. The only in-place mutators
// are [Collection.Push], [Collection.Pop] and [Collection.Put].
//
// # Creating a collection
//
//	c := collections.New(1, 2, 3, 4, 5)                    // *Collection[int, int]
//	c := collections.From([]string{"a", "b", "c"})         // *Collection[int, string]
//	c := collections.FromMap(map[string]int{"a": 1})       // *Collection[string, int]
//	c := collections.Empty[string, float64]()
//
// # Method chaining
//
//	result := collections.New(1, 2, 3, 4, 5, 6).
//	    Filter(func(n, _ int) bool { return n%2 == 0 }).
//	    Take(2)
//
// # Type-transforming operations
//
// Go generics do not allow methods to introduce new type parameters.
// Operations that change the key or value type are exposed as package-level
// functions:
//
//	labels := collections.Map(c, func(n, _ int) string { return strconv.Itoa(n) })
//	groups := collections.GroupBy(c, func(n, _ int) string {
//	    if n%2 == 0 { return "even" }
//	    return "odd"
//	})
//
// # Laravel equivalents
//
// The method names map 1-to-1 to Laravel's Collection methods where possible.
// Differences:
//   - Callbacks receive (value, key).
//   - Operations that can fail return an error instead of null.
//   - Type-transforming operations (Map, GroupBy, …) are package-level functions.
type Collection[K comparable, V any] struct {
	keys   []K
	values []V
	index  map[K]int
	next   int // next sequential integer key handed out by Push
}

// ─────────────────────────────────────────────────────────────────────────────
// Constructors
// ─────────────────────────────────────────────────────────────────────────────

// New creates a list-like collection from a variadic list of values (copied).
func New[V any](values ...V) *Collection[int, V] {
	return From(values)
}

// From creates a list-like collection from a slice (the slice is copied).
func From[V any](values []V) *Collection[int, V] {
	c := withCapacity[int, V](len(values))
	for i, v := range values {
		c.put(i, v)
	}
	return c
}

// Empty creates an empty Collection.
func Empty[K comparable, V any]() *Collection[K, V] {
	return withCapacity[K, V](0)
}

// FromEntries creates a Collection from key/value entries in the given order.
// A repeated key overwrites the earlier value but keeps its position.
func FromEntries[K comparable, V any](entries ...Entry[K, V]) *Collection[K, V] {
	c := withCapacity[K, V](len(entries))
	for _, e := range entries {
		c.put(e.Key, e.Value)
	}
	return c
}

// FromMap creates a Collection from a Go map. Go maps are unordered, so keys
// are placed in natural order (numbers numerically, strings lexically) to
// keep the result deterministic.
func FromMap[K comparable, V any](m map[K]V) *Collection[K, V] {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b K) int { return naturalCompare(a, b) })
	c := withCapacity[K, V](len(m))
	for _, k := range keys {
		c.put(k, m[k])
	}
	return c
}

// Collect materializes every entry of src into a new Collection.
// Collecting an infinite source never returns.
func Collect[K comparable, V any](src Source[K, V]) (*Collection[K, V], error) {
	return collect(src.Iter())
}

// Range creates a list-like collection of the integers from start to end inclusive,
// counting down when start > end.
func Range(start, end int) *Collection[int, int] {
	step := 1
	if start > end {
		step = -1
	}
	c := withCapacity[int, int](abs(end-start) + 1)
	for n, i := start, 0; ; n, i = n+step, i+1 {
		c.put(i, n)
		if n == end {
			break
		}
	}
	return c
}

// Times creates a list-like collection by calling fn with 1 … n.
// n <= 0 yields an empty collection.
func Times[V any](n int, fn func(int) V) *Collection[int, V] {
	c := withCapacity[int, V](max(n, 0))
	for i := 1; i <= n; i++ {
		c.put(i-1, fn(i))
	}
	return c
}

func withCapacity[K comparable, V any](n int) *Collection[K, V] {
	return &Collection[K, V]{
		keys:   make([]K, 0, n),
		values: make([]V, 0, n),
		index:  make(map[K]int, n),
	}
}

func collect[K comparable, V any](it Iterator[K, V]) (*Collection[K, V], error) {
	defer it.Close()
	c := withCapacity[K, V](0)
	for k, v, ok := it.Next(); ok; k, v, ok = it.Next() {
		c.put(k, v)
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

// through runs c's entries through a stage that cannot fail and
// materializes the output.
func (c *Collection[K, V]) through(stage func(Iterator[K, V]) Iterator[K, V]) *Collection[K, V] {
	out, _ := collect(stage(c.Iter()))
	return out
}

// put inserts or overwrites a single entry.
func (c *Collection[K, V]) put(k K, v V) {
	if c.index == nil {
		c.index = make(map[K]int)
	}
	if i, ok := c.index[k]; ok {
		c.values[i] = v
		return
	}
	c.index[k] = len(c.keys)
	c.keys = append(c.keys, k)
	c.values = append(c.values, v)
	if n, ok := any(k).(int); ok && n >= c.next {
		c.next = n + 1
	}
}

func (c *Collection[K, V]) clone() *Collection[K, V] {
	out := withCapacity[K, V](len(c.keys))
	for i, k := range c.keys {
		out.put(k, c.values[i])
	}
	out.next = max(out.next, c.next)
	return out
}

// sub copies the entries in positions [start, end).
func (c *Collection[K, V]) sub(start, end int) *Collection[K, V] {
	out := withCapacity[K, V](end - start)
	for i := start; i < end; i++ {
		out.put(c.keys[i], c.values[i])
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Accessors
// ─────────────────────────────────────────────────────────────────────────────

// All returns a copy of every value in insertion order.
func (c *Collection[K, V]) All() []V {
	return slices.Clone(c.values)
}

// ToSlice is an alias for [Collection.All].
func (c *Collection[K, V]) ToSlice() []V { return c.All() }

// Keys returns the keys in insertion order.
func (c *Collection[K, V]) Keys() []K {
	return slices.Clone(c.keys)
}

// Values returns the values with keys reset to 0 … Count()-1.
// Useful after Filter / Forget to drop gaps in the key sequence.
func (c *Collection[K, V]) Values() *Collection[int, V] { return From(c.values) }

// Entries returns every key/value pair in insertion order.
func (c *Collection[K, V]) Entries() []Entry[K, V] {
	out := make([]Entry[K, V], len(c.keys))
	for i, k := range c.keys {
		out[i] = Entry[K, V]{Key: k, Value: c.values[i]}
	}
	return out
}

// ToMap returns the entries as a Go map. Order is lost.
func (c *Collection[K, V]) ToMap() map[K]V {
	out := make(map[K]V, len(c.keys))
	for i, k := range c.keys {
		out[k] = c.values[i]
	}
	return out
}

// Count returns the number of entries.
func (c *Collection[K, V]) Count() int { return len(c.keys) }

// IsEmpty reports whether the collection contains no entries.
func (c *Collection[K, V]) IsEmpty() bool { return len(c.keys) == 0 }

// IsNotEmpty reports whether the collection has at least one entry.
func (c *Collection[K, V]) IsNotEmpty() bool { return len(c.keys) > 0 }

// Get returns the value stored under key together with a presence flag.
func (c *Collection[K, V]) Get(key K) (V, bool) {
	if i, ok := c.index[key]; ok {
		return c.values[i], true
	}
	var zero V
	return zero, false
}

// Has reports whether key is present.
func (c *Collection[K, V]) Has(key K) bool {
	_, ok := c.index[key]
	return ok
}

// Nth returns the value at position i (0-based, insertion order) regardless
// of its key. Returns [ErrIndexOutOfRange] when i is outside the collection.
func (c *Collection[K, V]) Nth(i int) (V, error) {
	if i < 0 || i >= len(c.values) {
		var zero V
		return zero, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(c.values))
	}
	return c.values[i], nil
}

// Iter returns an iterator over a snapshot of the entries present when Iter
// is called; later Put, Pop or Push calls on c are not observed by it.
// It implements [Source]; every call starts from the first entry.
func (c *Collection[K, V]) Iter() Iterator[K, V] {
	return &sliceIter[K, V]{keys: slices.Clone(c.keys), values: slices.Clone(c.values)}
}

// Seq returns a range-over-func view of the entries.
//
//	for k, v := range c.Seq() { … }
func (c *Collection[K, V]) Seq() iter.Seq2[K, V] { return seqOf[K, V](c) }

// Lazy wraps the collection in a [LazySequence].
func (c *Collection[K, V]) Lazy() *LazySequence[K, V] { return LazyFrom[K, V](c) }

// ─────────────────────────────────────────────────────────────────────────────
// In-place mutators
// ─────────────────────────────────────────────────────────────────────────────

// Push appends values in argument order under the next sequential integer
// keys and returns c. Push mutates c.
//
// Push panics with [ErrKeyType] when K cannot hold int keys (for example a
// Collection[string, V]); use [Collection.Put] there.
func (c *Collection[K, V]) Push(values ...V) *Collection[K, V] {
	for _, v := range values {
		c.put(mustSequentialKey[K](c.next), v)
	}
	return c
}

// Put stores value under key, overwriting any existing value in place, and
// returns c. Put mutates c.
func (c *Collection[K, V]) Put(key K, value V) *Collection[K, V] {
	c.put(key, value)
	return c
}

// Pop removes and returns the last value. Pop mutates c.
// Returns [ErrEmptyCollection] if the collection is empty.
func (c *Collection[K, V]) Pop() (V, error) {
	n := len(c.keys)
	if n == 0 {
		var zero V
		return zero, ErrEmptyCollection
	}
	k, v := c.keys[n-1], c.values[n-1]
	delete(c.index, k)
	c.keys, c.values = c.keys[:n-1], c.values[:n-1]
	if i, ok := any(k).(int); ok && i == c.next-1 {
		c.next--
	}
	return v, nil
}

// Forget returns a new collection without the given keys.
func (c *Collection[K, V]) Forget(keys ...K) *Collection[K, V] {
	drop := make(map[K]struct{}, len(keys))
	for _, k := range keys {
		drop[k] = struct{}{}
	}
	return c.Filter(func(_ V, k K) bool {
		_, gone := drop[k]
		return !gone
	})
}

// ─────────────────────────────────────────────────────────────────────────────
// Iteration & debugging
// ─────────────────────────────────────────────────────────────────────────────

// Each calls fn(value, key) for every entry.
func (c *Collection[K, V]) Each(fn func(V, K)) {
	for i, k := range c.keys {
		fn(c.values[i], k)
	}
}

// Tap calls fn(c) for side-effects (e.g. logging or debugging) and returns
// c unchanged for further chaining.
func (c *Collection[K, V]) Tap(fn func(*Collection[K, V])) *Collection[K, V] {
	fn(c)
	return c
}

// Dump writes the collection to the configured logger at debug level and
// returns c for chaining.
func (c *Collection[K, V]) Dump() *Collection[K, V] {
	ev := logger().Debug().Int("count", c.Count())
	if b, err := c.ToJSON(); err == nil {
		ev = ev.RawJSON("collection", b)
	} else {
		ev = ev.Str("collection", c.String()).AnErr("encode", err)
	}
	ev.Msg("dump")
	return c
}

// ─────────────────────────────────────────────────────────────────────────────
// Serialization
// ─────────────────────────────────────────────────────────────────────────────

// MarshalJSON encodes list-like collections (keys 0 … n-1 in order) as a
// JSON array and every other collection as a JSON object whose members keep
// insertion order. Member names are the keys' %v renderings; two keys with
// the same rendering fail with [ErrJSONKeyCollision].
func (c *Collection[K, V]) MarshalJSON() ([]byte, error) {
	if c.isList() {
		if c.values == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(c.values)
	}
	var buf bytes.Buffer
	seen := make(map[string]K, len(c.keys))
	buf.WriteByte('{')
	for i, k := range c.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		member := fmt.Sprint(k)
		if prev, dup := seen[member]; dup {
			return nil, fmt.Errorf("%w: %v and %v both encode as %q", ErrJSONKeyCollision, prev, k, member)
		}
		seen[member] = k
		name, err := json.Marshal(member)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ToJSON serialises the collection; see [Collection.MarshalJSON].
func (c *Collection[K, V]) ToJSON() ([]byte, error) {
	return c.MarshalJSON()
}

// String returns a JSON representation of the collection.
// It implements [fmt.Stringer].
func (c *Collection[K, V]) String() string {
	b, err := c.ToJSON()
	if err != nil {
		return fmt.Sprintf("%v", c.Entries())
	}
	return string(b)
}

func (c *Collection[K, V]) isList() bool {
	for i, k := range c.keys {
		if n, ok := any(k).(int); !ok || n != i {
			return false
		}
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
