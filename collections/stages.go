package collections

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// This file contains the operator stages shared by Collection and
// LazySequence. Each stage wraps an upstream Iterator and is itself an
// Iterator, so stages compose into chains. A stage pulls from upstream only
// when it is pulled, and closes upstream as soon as it knows no further
// entries are needed.

// Predicate is the callback shape used by filtering and searching operators.
type Predicate[K comparable, V any] func(value V, key K) bool

func not[K comparable, V any](fn Predicate[K, V]) Predicate[K, V] {
	return func(v V, k K) bool { return !fn(v, k) }
}

func zero[K comparable, V any]() (K, V, bool) {
	var (
		zk K
		zv V
	)
	return zk, zv, false
}

// ─────────────────────────────────────────────────────────────────────────────
// Cardinality-preserving stages
// ─────────────────────────────────────────────────────────────────────────────

type mapIter[K comparable, V, U any] struct {
	source Iterator[K, V]
	fn     func(V, K) U
}

func (it *mapIter[K, V, U]) Next() (K, U, bool) {
	k, v, ok := it.source.Next()
	if !ok {
		return zero[K, U]()
	}
	return k, it.fn(v, k), true
}

func (it *mapIter[K, V, U]) Err() error { return it.source.Err() }
func (it *mapIter[K, V, U]) Close()     { it.source.Close() }

// tryMapIter is mapIter for callbacks that can fail. The first failure ends
// iteration and is reported by Err.
type tryMapIter[K comparable, V, U any] struct {
	source Iterator[K, V]
	fn     func(V, K) (U, error)
	err    error
}

func (it *tryMapIter[K, V, U]) Next() (K, U, bool) {
	if it.err != nil {
		return zero[K, U]()
	}
	k, v, ok := it.source.Next()
	if !ok {
		return zero[K, U]()
	}
	u, err := it.fn(v, k)
	if err != nil {
		it.err = err
		it.source.Close()
		return zero[K, U]()
	}
	return k, u, true
}

func (it *tryMapIter[K, V, U]) Err() error {
	if it.err != nil {
		return it.err
	}
	return it.source.Err()
}

func (it *tryMapIter[K, V, U]) Close() { it.source.Close() }

type tapIter[K comparable, V any] struct {
	source Iterator[K, V]
	fn     func(V, K)
}

func (it *tapIter[K, V]) Next() (K, V, bool) {
	k, v, ok := it.source.Next()
	if ok {
		it.fn(v, k)
	}
	return k, v, ok
}

func (it *tapIter[K, V]) Err() error { return it.source.Err() }
func (it *tapIter[K, V]) Close()     { it.source.Close() }

// reindexIter replaces upstream keys with 0, 1, 2, …
type reindexIter[K comparable, V any] struct {
	source Iterator[K, V]
	pos    int
}

func (it *reindexIter[K, V]) Next() (int, V, bool) {
	_, v, ok := it.source.Next()
	if !ok {
		return zero[int, V]()
	}
	i := it.pos
	it.pos++
	return i, v, true
}

func (it *reindexIter[K, V]) Err() error { return it.source.Err() }
func (it *reindexIter[K, V]) Close()     { it.source.Close() }

// keysIter yields upstream keys as values of a list.
type keysIter[K comparable, V any] struct {
	source Iterator[K, V]
	pos    int
}

func (it *keysIter[K, V]) Next() (int, K, bool) {
	k, _, ok := it.source.Next()
	if !ok {
		return zero[int, K]()
	}
	i := it.pos
	it.pos++
	return i, k, true
}

func (it *keysIter[K, V]) Err() error { return it.source.Err() }
func (it *keysIter[K, V]) Close()     { it.source.Close() }

// ─────────────────────────────────────────────────────────────────────────────
// Filtering stages
// ─────────────────────────────────────────────────────────────────────────────

type filterIter[K comparable, V any] struct {
	source Iterator[K, V]
	fn     Predicate[K, V]
}

func (it *filterIter[K, V]) Next() (K, V, bool) {
	for {
		k, v, ok := it.source.Next()
		if !ok || it.fn(v, k) {
			return k, v, ok
		}
	}
}

func (it *filterIter[K, V]) Err() error { return it.source.Err() }
func (it *filterIter[K, V]) Close()     { it.source.Close() }

// uniqueIter drops entries whose identity was already seen. The seen set
// holds fixed-size fingerprints, not the values themselves.
type uniqueIter[K comparable, V any] struct {
	source Iterator[K, V]
	id     func(V, K) any
	seen   map[fingerprint]struct{}
}

func (it *uniqueIter[K, V]) Next() (K, V, bool) {
	for {
		k, v, ok := it.source.Next()
		if !ok {
			return k, v, false
		}
		fp := fingerprintOf(it.id(v, k))
		if _, dup := it.seen[fp]; dup {
			continue
		}
		it.seen[fp] = struct{}{}
		return k, v, true
	}
}

func (it *uniqueIter[K, V]) Err() error { return it.source.Err() }
func (it *uniqueIter[K, V]) Close()     { it.source.Close() }

// ─────────────────────────────────────────────────────────────────────────────
// Positional stages
// ─────────────────────────────────────────────────────────────────────────────

// takeIter yields at most limit entries. Upstream is closed as soon as the
// limit is reached so an infinite producer is never resumed again.
type takeIter[K comparable, V any] struct {
	source Iterator[K, V]
	limit  int
	taken  int
}

func (it *takeIter[K, V]) Next() (K, V, bool) {
	if it.taken >= it.limit {
		it.source.Close()
		return zero[K, V]()
	}
	k, v, ok := it.source.Next()
	if !ok {
		return k, v, false
	}
	it.taken++
	if it.taken == it.limit {
		it.source.Close()
	}
	return k, v, true
}

func (it *takeIter[K, V]) Err() error { return it.source.Err() }
func (it *takeIter[K, V]) Close()     { it.source.Close() }

// takeWhileIter yields entries until fn first fails, then stops for good.
type takeWhileIter[K comparable, V any] struct {
	source Iterator[K, V]
	fn     Predicate[K, V]
	done   bool
}

func (it *takeWhileIter[K, V]) Next() (K, V, bool) {
	if it.done {
		return zero[K, V]()
	}
	k, v, ok := it.source.Next()
	if !ok {
		return k, v, false
	}
	if !it.fn(v, k) {
		it.done = true
		it.source.Close()
		return zero[K, V]()
	}
	return k, v, true
}

func (it *takeWhileIter[K, V]) Err() error { return it.source.Err() }
func (it *takeWhileIter[K, V]) Close()     { it.source.Close() }

type skipIter[K comparable, V any] struct {
	source Iterator[K, V]
	count  int
}

func (it *skipIter[K, V]) Next() (K, V, bool) {
	for ; it.count > 0; it.count-- {
		if _, _, ok := it.source.Next(); !ok {
			it.count = 0
			return zero[K, V]()
		}
	}
	return it.source.Next()
}

func (it *skipIter[K, V]) Err() error { return it.source.Err() }
func (it *skipIter[K, V]) Close()     { it.source.Close() }

// skipWhileIter drops entries while fn holds, then passes everything through.
type skipWhileIter[K comparable, V any] struct {
	source   Iterator[K, V]
	fn       Predicate[K, V]
	skipping bool
}

func (it *skipWhileIter[K, V]) Next() (K, V, bool) {
	for {
		k, v, ok := it.source.Next()
		if !ok {
			return k, v, false
		}
		if it.skipping && it.fn(v, k) {
			continue
		}
		it.skipping = false
		return k, v, true
	}
}

func (it *skipWhileIter[K, V]) Err() error { return it.source.Err() }
func (it *skipWhileIter[K, V]) Close()     { it.source.Close() }

// ring is a fixed-capacity FIFO of entries.
type ring[K comparable, V any] struct {
	buf  []Entry[K, V]
	head int
	size int
}

func newRing[K comparable, V any](capacity int) *ring[K, V] {
	return &ring[K, V]{buf: make([]Entry[K, V], capacity)}
}

// push appends e and, when full, returns the evicted oldest entry.
func (r *ring[K, V]) push(e Entry[K, V]) (Entry[K, V], bool) {
	if len(r.buf) == 0 {
		return e, true
	}
	if r.size < len(r.buf) {
		r.buf[(r.head+r.size)%len(r.buf)] = e
		r.size++
		return Entry[K, V]{}, false
	}
	old := r.buf[r.head]
	r.buf[r.head] = e
	r.head = (r.head + 1) % len(r.buf)
	return old, true
}

func (r *ring[K, V]) pop() (Entry[K, V], bool) {
	if r.size == 0 {
		return Entry[K, V]{}, false
	}
	e := r.buf[r.head]
	r.head = (r.head + 1) % len(r.buf)
	r.size--
	return e, true
}

// takeLastIter yields the final n entries. It must exhaust upstream before
// it can yield anything, so it only terminates on finite sources.
type takeLastIter[K comparable, V any] struct {
	source Iterator[K, V]
	window *ring[K, V]
	filled bool
}

func (it *takeLastIter[K, V]) Next() (K, V, bool) {
	if !it.filled {
		it.filled = true
		for k, v, ok := it.source.Next(); ok; k, v, ok = it.source.Next() {
			it.window.push(Entry[K, V]{Key: k, Value: v})
		}
		if it.source.Err() != nil {
			return zero[K, V]()
		}
	}
	e, ok := it.window.pop()
	return e.Key, e.Value, ok
}

func (it *takeLastIter[K, V]) Err() error { return it.source.Err() }
func (it *takeLastIter[K, V]) Close()     { it.source.Close() }

// dropLastIter withholds the final n entries, buffering exactly n.
type dropLastIter[K comparable, V any] struct {
	source Iterator[K, V]
	window *ring[K, V]
}

func (it *dropLastIter[K, V]) Next() (K, V, bool) {
	for {
		k, v, ok := it.source.Next()
		if !ok {
			return k, v, false
		}
		if e, full := it.window.push(Entry[K, V]{Key: k, Value: v}); full {
			return e.Key, e.Value, true
		}
	}
}

func (it *dropLastIter[K, V]) Err() error { return it.source.Err() }
func (it *dropLastIter[K, V]) Close()     { it.source.Close() }

// ─────────────────────────────────────────────────────────────────────────────
// Restructuring stages
// ─────────────────────────────────────────────────────────────────────────────

// chunkIter groups consecutive entries into collections of at most size
// entries. Each chunk keeps the original keys of its members.
type chunkIter[K comparable, V any] struct {
	source Iterator[K, V]
	size   int
	pos    int
}

func (it *chunkIter[K, V]) Next() (int, *Collection[K, V], bool) {
	chunk := withCapacity[K, V](it.size)
	for chunk.Count() < it.size {
		k, v, ok := it.source.Next()
		if !ok {
			break
		}
		chunk.put(k, v)
	}
	if chunk.IsEmpty() || it.source.Err() != nil {
		return zero[int, *Collection[K, V]]()
	}
	i := it.pos
	it.pos++
	return i, chunk, true
}

func (it *chunkIter[K, V]) Err() error { return it.source.Err() }
func (it *chunkIter[K, V]) Close()     { it.source.Close() }

// flatMapIter expands every upstream entry into zero or more values, keyed
// sequentially across the whole output.
type flatMapIter[K comparable, V, U any] struct {
	source  Iterator[K, V]
	fn      func(V, K) []U
	pending []U
	pos     int
}

func (it *flatMapIter[K, V, U]) Next() (int, U, bool) {
	for len(it.pending) == 0 {
		k, v, ok := it.source.Next()
		if !ok {
			return zero[int, U]()
		}
		it.pending = it.fn(v, k)
	}
	u := it.pending[0]
	it.pending = it.pending[1:]
	i := it.pos
	it.pos++
	return i, u, true
}

func (it *flatMapIter[K, V, U]) Err() error { return it.source.Err() }
func (it *flatMapIter[K, V, U]) Close()     { it.source.Close() }

// concatIter yields every source in turn. Integer keys are re-sequenced
// after the highest integer key seen so far; other keys pass through.
type concatIter[K comparable, V any] struct {
	iters   []Iterator[K, V]
	current int
	next    int
	err     error
}

func (it *concatIter[K, V]) Next() (K, V, bool) {
	for it.current < len(it.iters) {
		src := it.iters[it.current]
		k, v, ok := src.Next()
		if !ok {
			if err := src.Err(); err != nil {
				it.err = err
				it.Close()
				return zero[K, V]()
			}
			src.Close()
			it.current++
			continue
		}
		if n, isInt := any(k).(int); isInt {
			if it.current > 0 {
				k = mustSequentialKey[K](it.next)
				n = it.next
			}
			if n >= it.next {
				it.next = n + 1
			}
		}
		return k, v, true
	}
	return zero[K, V]()
}

func (it *concatIter[K, V]) Err() error { return it.err }

func (it *concatIter[K, V]) Close() {
	for _, src := range it.iters[it.current:] {
		src.Close()
	}
	it.current = len(it.iters)
}

// zipIter pairs entries of two sources positionally until either ends.
type zipIter[K1, K2 comparable, V any] struct {
	left  Iterator[K1, V]
	right Iterator[K2, V]
	pos   int
	err   error
}

func (it *zipIter[K1, K2, V]) Next() (int, *Collection[int, V], bool) {
	_, a, okA := it.left.Next()
	if !okA {
		it.finish()
		return zero[int, *Collection[int, V]]()
	}
	_, b, okB := it.right.Next()
	if !okB {
		it.finish()
		return zero[int, *Collection[int, V]]()
	}
	i := it.pos
	it.pos++
	return i, New(a, b), true
}

func (it *zipIter[K1, K2, V]) finish() {
	if err := it.left.Err(); err != nil {
		it.err = err
	} else if err := it.right.Err(); err != nil {
		it.err = err
	}
	it.Close()
}

func (it *zipIter[K1, K2, V]) Err() error { return it.err }

func (it *zipIter[K1, K2, V]) Close() {
	it.left.Close()
	it.right.Close()
}

// ─────────────────────────────────────────────────────────────────────────────
// Time-based stages
// ─────────────────────────────────────────────────────────────────────────────

// deadlineIter stops once the clock reaches deadline.
type deadlineIter[K comparable, V any] struct {
	source   Iterator[K, V]
	clock    clockwork.Clock
	deadline time.Time
}

func (it *deadlineIter[K, V]) Next() (K, V, bool) {
	if !it.clock.Now().Before(it.deadline) {
		it.source.Close()
		return zero[K, V]()
	}
	return it.source.Next()
}

func (it *deadlineIter[K, V]) Err() error { return it.source.Err() }
func (it *deadlineIter[K, V]) Close()     { it.source.Close() }

// throttleIter spaces entries at least interval apart.
type throttleIter[K comparable, V any] struct {
	source   Iterator[K, V]
	clock    clockwork.Clock
	interval time.Duration
	last     time.Time
}

func (it *throttleIter[K, V]) Next() (K, V, bool) {
	if !it.last.IsZero() {
		if wait := it.interval - it.clock.Since(it.last); wait > 0 {
			it.clock.Sleep(wait)
		}
	}
	k, v, ok := it.source.Next()
	if ok {
		it.last = it.clock.Now()
	}
	return k, v, ok
}

func (it *throttleIter[K, V]) Err() error { return it.source.Err() }
func (it *throttleIter[K, V]) Close()     { it.source.Close() }

// ─────────────────────────────────────────────────────────────────────────────
// Logging stage
// ─────────────────────────────────────────────────────────────────────────────

type dumpIter[K comparable, V any] struct {
	source Iterator[K, V]
	label  string
}

func (it *dumpIter[K, V]) Next() (K, V, bool) {
	k, v, ok := it.source.Next()
	if ok {
		logger().Debug().
			Str("sequence", it.label).
			Str("key", fmt.Sprint(k)).
			Interface("value", v).
			Msg("entry")
	}
	return k, v, ok
}

func (it *dumpIter[K, V]) Err() error { return it.source.Err() }
func (it *dumpIter[K, V]) Close()     { it.source.Close() }
