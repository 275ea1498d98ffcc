package collections

import (
	"iter"
	"time"
)

// LazySequence is a deferred, possibly infinite pipeline of entries.
//
// A LazySequence only describes work: operators wrap the iterator factory of
// the sequence they are called on and return a new LazySequence without
// pulling a single entry. Entries flow only when a terminal operation (All,
// Collect, First, Reduce, …) runs, and they flow one at a time through every
// stage before the next one is pulled.
//
// Every terminal call starts a fresh run: the producer is invoked again from
// its initial state. Use [LazySequence.Remember] to replay a single run
// instead.
//
//	naturals := collections.Lazy(func() iter.Seq[int] {
//	    return func(yield func(int) bool) {
//	        for i := 0; yield(i); i++ {
//	        }
//	    }
//	})
//	first, _ := naturals.Filter(func(n, _ int) bool { return n%2 == 0 }).Take(3).All()
//	// → [0, 2, 4]
//
// A LazySequence is immutable and may be shared; concurrent terminal calls
// are safe whenever the underlying producer is.
type LazySequence[K comparable, V any] struct {
	source func() Iterator[K, V]
}

// ─────────────────────────────────────────────────────────────────────────────
// Constructors
// ─────────────────────────────────────────────────────────────────────────────

// Lazy creates a LazySequence from a producer factory. producer is called
// once per terminal operation and its values are keyed 0, 1, 2, …
//
// The producer runs as a coroutine: it is suspended after each yield and
// resumed only when the next entry is pulled. When the consumer stops early
// the yield call returns false, so deferred cleanup in the producer runs.
func Lazy[V any](producer func() iter.Seq[V]) *LazySequence[int, V] {
	return &LazySequence[int, V]{source: func() Iterator[int, V] {
		return pull(indexed(producer()))
	}}
}

// Generate creates a LazySequence ranging over seq on every run. seq must be
// re-iterable (most iter.Seq values are, e.g. slices.Values or maps.Keys).
func Generate[V any](seq iter.Seq[V]) *LazySequence[int, V] {
	return Lazy(func() iter.Seq[V] { return seq })
}

// LazyKeyed creates a LazySequence from a producer of key/value pairs.
func LazyKeyed[K comparable, V any](producer func() iter.Seq2[K, V]) *LazySequence[K, V] {
	return &LazySequence[K, V]{source: func() Iterator[K, V] {
		return pull(producer())
	}}
}

// LazyFrom wraps any Source.
func LazyFrom[K comparable, V any](src Source[K, V]) *LazySequence[K, V] {
	return &LazySequence[K, V]{source: src.Iter}
}

// LazyRange yields the integers from start to end inclusive, counting down
// when start > end.
func LazyRange(start, end int) *LazySequence[int, int] {
	step := 1
	if start > end {
		step = -1
	}
	return Lazy(func() iter.Seq[int] {
		return func(yield func(int) bool) {
			for n := start; ; n += step {
				if !yield(n) || n == end {
					return
				}
			}
		}
	})
}

// LazyTimes yields fn(1) … fn(n). n <= 0 yields nothing.
func LazyTimes[V any](n int, fn func(int) V) *LazySequence[int, V] {
	return Lazy(func() iter.Seq[V] {
		return func(yield func(V) bool) {
			for i := 1; i <= n; i++ {
				if !yield(fn(i)) {
					return
				}
			}
		}
	})
}

// failed returns a sequence whose every run fails with err.
func failed[K comparable, V any](err error) *LazySequence[K, V] {
	return &LazySequence[K, V]{source: func() Iterator[K, V] {
		return &errIter[K, V]{err: err}
	}}
}

func (s *LazySequence[K, V]) then(stage func(Iterator[K, V]) Iterator[K, V]) *LazySequence[K, V] {
	return &LazySequence[K, V]{source: func() Iterator[K, V] {
		return stage(s.source())
	}}
}

// Iter starts a new run of the pipeline. It implements [Source].
func (s *LazySequence[K, V]) Iter() Iterator[K, V] { return s.source() }

// Seq returns a range-over-func view of a new run. A stage failure ends the
// loop silently; use an error-returning terminal to observe it.
func (s *LazySequence[K, V]) Seq() iter.Seq2[K, V] { return seqOf[K, V](s) }

// ─────────────────────────────────────────────────────────────────────────────
// Operators (deferred)
// ─────────────────────────────────────────────────────────────────────────────

// Map replaces every value with fn(value, key).
//
// To change the value type use the package-level [LazyMap] function.
func (s *LazySequence[K, V]) Map(fn func(V, K) V) *LazySequence[K, V] {
	return LazyMap(s, fn)
}

// Filter keeps entries for which fn returns true. Keys are preserved.
func (s *LazySequence[K, V]) Filter(fn Predicate[K, V]) *LazySequence[K, V] {
	return s.then(func(src Iterator[K, V]) Iterator[K, V] {
		return &filterIter[K, V]{source: src, fn: fn}
	})
}

// Reject drops entries for which fn returns true.
func (s *LazySequence[K, V]) Reject(fn Predicate[K, V]) *LazySequence[K, V] {
	return s.Filter(not(fn))
}

// Take yields the first n entries and then closes the upstream producer.
// A negative n yields the last -n entries; that form buffers -n entries and
// only terminates on finite sequences.
func (s *LazySequence[K, V]) Take(n int) *LazySequence[K, V] {
	if n < 0 {
		return s.takeLast(-n)
	}
	return s.then(func(src Iterator[K, V]) Iterator[K, V] {
		return &takeIter[K, V]{source: src, limit: n}
	})
}

func (s *LazySequence[K, V]) takeLast(n int) *LazySequence[K, V] {
	return s.then(func(src Iterator[K, V]) Iterator[K, V] {
		return &takeLastIter[K, V]{source: src, window: newRing[K, V](n)}
	})
}

func (s *LazySequence[K, V]) dropLast(n int) *LazySequence[K, V] {
	return s.then(func(src Iterator[K, V]) Iterator[K, V] {
		return &dropLastIter[K, V]{source: src, window: newRing[K, V](n)}
	})
}

// TakeUntil yields entries until fn first returns true.
func (s *LazySequence[K, V]) TakeUntil(fn Predicate[K, V]) *LazySequence[K, V] {
	return s.TakeWhile(not(fn))
}

// TakeWhile yields entries while fn returns true, then closes upstream.
func (s *LazySequence[K, V]) TakeWhile(fn Predicate[K, V]) *LazySequence[K, V] {
	return s.then(func(src Iterator[K, V]) Iterator[K, V] {
		return &takeWhileIter[K, V]{source: src, fn: fn}
	})
}

// TakeUntilTimeout yields entries until the configured clock reaches
// deadline.
func (s *LazySequence[K, V]) TakeUntilTimeout(deadline time.Time) *LazySequence[K, V] {
	return s.then(func(src Iterator[K, V]) Iterator[K, V] {
		return &deadlineIter[K, V]{source: src, clock: config().Clock, deadline: deadline}
	})
}

// Skip drops the first n entries. A negative n keeps the last -n entries,
// like Slice(n).
func (s *LazySequence[K, V]) Skip(n int) *LazySequence[K, V] {
	if n < 0 {
		return s.takeLast(-n)
	}
	return s.then(func(src Iterator[K, V]) Iterator[K, V] {
		return &skipIter[K, V]{source: src, count: n}
	})
}

// SkipUntil drops entries until fn first returns true.
func (s *LazySequence[K, V]) SkipUntil(fn Predicate[K, V]) *LazySequence[K, V] {
	return s.SkipWhile(not(fn))
}

// SkipWhile drops entries while fn returns true.
func (s *LazySequence[K, V]) SkipWhile(fn Predicate[K, V]) *LazySequence[K, V] {
	return s.then(func(src Iterator[K, V]) Iterator[K, V] {
		return &skipWhileIter[K, V]{source: src, fn: fn, skipping: true}
	})
}

// Slice has the semantics of [Collection.Slice]. Negative offsets and
// lengths buffer as many entries as they count.
func (s *LazySequence[K, V]) Slice(offset int, length ...int) *LazySequence[K, V] {
	out := s.Skip(offset)
	if len(length) == 0 {
		return out
	}
	if l := length[0]; l < 0 {
		return out.dropLast(-l)
	}
	return out.Take(length[0])
}

// Concat yields s followed by each of others. Integer keys of the appended
// sources continue the sequence; other keys pass through unchanged.
func (s *LazySequence[K, V]) Concat(others ...Source[K, V]) *LazySequence[K, V] {
	return &LazySequence[K, V]{source: func() Iterator[K, V] {
		iters := make([]Iterator[K, V], 0, len(others)+1)
		iters = append(iters, s.source())
		for _, o := range others {
			iters = append(iters, o.Iter())
		}
		return &concatIter[K, V]{iters: iters}
	}}
}

// Unique drops entries whose value (or fns[0] identity) was already
// yielded during the current run.
func (s *LazySequence[K, V]) Unique(fns ...func(V, K) any) *LazySequence[K, V] {
	return s.then(func(src Iterator[K, V]) Iterator[K, V] {
		return newUniqueIter(src, fns)
	})
}

// Values re-keys the sequence 0, 1, 2, …
func (s *LazySequence[K, V]) Values() *LazySequence[int, V] {
	return &LazySequence[int, V]{source: func() Iterator[int, V] {
		return &reindexIter[K, V]{source: s.source()}
	}}
}

// Keys yields the keys of s as values.
func (s *LazySequence[K, V]) Keys() *LazySequence[int, K] {
	return &LazySequence[int, K]{source: func() Iterator[int, K] {
		return &keysIter[K, V]{source: s.source()}
	}}
}

// TapEach calls fn for every entry as it flows past.
func (s *LazySequence[K, V]) TapEach(fn func(V, K)) *LazySequence[K, V] {
	return s.then(func(src Iterator[K, V]) Iterator[K, V] {
		return &tapIter[K, V]{source: src, fn: fn}
	})
}

// Throttle spaces entries at least interval apart on the configured clock.
func (s *LazySequence[K, V]) Throttle(interval time.Duration) *LazySequence[K, V] {
	return s.then(func(src Iterator[K, V]) Iterator[K, V] {
		return &throttleIter[K, V]{source: src, clock: config().Clock, interval: interval}
	})
}

// Dump logs every entry at debug level as it flows past.
func (s *LazySequence[K, V]) Dump(label string) *LazySequence[K, V] {
	return s.then(func(src Iterator[K, V]) Iterator[K, V] {
		return &dumpIter[K, V]{source: src, label: label}
	})
}

// When applies fn to s if condition is true.
func (s *LazySequence[K, V]) When(condition bool, fn func(*LazySequence[K, V]) *LazySequence[K, V]) *LazySequence[K, V] {
	if condition {
		return fn(s)
	}
	return s
}

// Eager runs the pipeline once and returns a sequence over the materialized
// entries.
func (s *LazySequence[K, V]) Eager() (*LazySequence[K, V], error) {
	c, err := s.Collect()
	if err != nil {
		return nil, err
	}
	return c.Lazy(), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Terminal operations
// ─────────────────────────────────────────────────────────────────────────────

// Collect runs the pipeline and materializes it into a Collection.
func (s *LazySequence[K, V]) Collect() (*Collection[K, V], error) {
	return collect(s.source())
}

// All runs the pipeline and returns every value in order.
func (s *LazySequence[K, V]) All() ([]V, error) {
	c, err := s.Collect()
	if err != nil {
		return nil, err
	}
	return c.values, nil
}

// First returns the first value, optionally the first matching fns[0].
// Only as many entries as needed are pulled.
func (s *LazySequence[K, V]) First(fns ...Predicate[K, V]) (V, error) {
	_, v, err := firstOf[K, V](s, fns)
	return v, err
}

// Last returns the last value, optionally the last matching fns[0].
func (s *LazySequence[K, V]) Last(fns ...Predicate[K, V]) (V, error) {
	return lastOf[K, V](s, fns)
}

// Reduce folds the values from left to right; see [Collection.Reduce].
func (s *LazySequence[K, V]) Reduce(fn func(carry, value V, key K) V, initial ...V) (V, error) {
	return reduceOf[K, V](s, fn, initial)
}

// Count runs the pipeline and returns the number of entries.
func (s *LazySequence[K, V]) Count() (int, error) {
	n := 0
	err := drain[K, V](s, func(K, V) bool {
		n++
		return true
	})
	return n, err
}

// Contains reports whether any entry satisfies fn, stopping at the first.
func (s *LazySequence[K, V]) Contains(fn Predicate[K, V]) (bool, error) {
	found := false
	err := drain[K, V](s, func(k K, v V) bool {
		found = fn(v, k)
		return !found
	})
	return found, err
}

// ContainsValue reports whether any value is strictly equal to value.
func (s *LazySequence[K, V]) ContainsValue(value V) (bool, error) {
	return s.Contains(func(v V, _ K) bool { return strictEqual(v, value) })
}

// Every reports whether all entries satisfy fn, stopping at the first that
// does not.
func (s *LazySequence[K, V]) Every(fn Predicate[K, V]) (bool, error) {
	found, err := s.Contains(not(fn))
	return !found, err
}

// IsEmpty reports whether the pipeline yields no entries. At most one entry
// is pulled.
func (s *LazySequence[K, V]) IsEmpty() (bool, error) {
	found, err := s.Contains(func(V, K) bool { return true })
	return !found, err
}

// IsNotEmpty is the negation of [LazySequence.IsEmpty].
func (s *LazySequence[K, V]) IsNotEmpty() (bool, error) {
	empty, err := s.IsEmpty()
	return !empty, err
}

// Join concatenates the values' %v renderings; see [Collection.Join].
func (s *LazySequence[K, V]) Join(sep string, last ...string) (string, error) {
	c, err := s.Collect()
	if err != nil {
		return "", err
	}
	return c.Join(sep, last...), nil
}

// Each calls fn for every entry until fn returns false.
func (s *LazySequence[K, V]) Each(fn func(V, K) bool) error {
	return drain[K, V](s, func(k K, v V) bool { return fn(v, k) })
}

// Partition splits the entries into those satisfying fn and the rest.
func (s *LazySequence[K, V]) Partition(fn Predicate[K, V]) (*Collection[K, V], *Collection[K, V], error) {
	return partitionOf[K, V](s, fn)
}

// SumBy sums the numbers extracted by fn.
func (s *LazySequence[K, V]) SumBy(fn func(V) float64) (float64, error) {
	sum, _, err := sumOf[K, V](s, fn)
	return sum, err
}

// AvgBy averages the numbers extracted by fn.
// Returns [ErrEmptyCollection] when the pipeline yields nothing.
func (s *LazySequence[K, V]) AvgBy(fn func(V) float64) (float64, error) {
	sum, n, err := sumOf[K, V](s, fn)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrEmptyCollection
	}
	return sum / float64(n), nil
}

// MinBy returns the value with the smallest number extracted by fn.
func (s *LazySequence[K, V]) MinBy(fn func(V) float64) (V, error) {
	return extreme[K, V](s, fn, -1)
}

// MaxBy returns the value with the largest number extracted by fn.
func (s *LazySequence[K, V]) MaxBy(fn func(V) float64) (V, error) {
	return extreme[K, V](s, fn, 1)
}
