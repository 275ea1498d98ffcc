package collections

import "iter"

// ─────────────────────────────────────────────────────────────────────────────
// Iteration protocol
// ─────────────────────────────────────────────────────────────────────────────

// Iterator provides pull-based sequential access to the entries of a Source.
type Iterator[K comparable, V any] interface {
	// Next returns the next entry. It returns ok == false when the sequence
	// is exhausted or a stage failed; Err tells the two apart.
	Next() (key K, value V, ok bool)

	// Err returns the error that stopped iteration, if any.
	Err() error

	// Close releases the producer behind the iterator. Close is idempotent
	// and must be called on every exit path, including early termination.
	Close()
}

// Source produces entries on demand. Every call to Iter starts a fresh,
// independent run from the initial state of the underlying producer.
//
// Portability note: this is the Iterable side of an Iterable/Iterator pair;
// Iter is the restart mechanism.
type Source[K comparable, V any] interface {
	Iter() Iterator[K, V]
}

// SourceFunc adapts an iterator factory to [Source].
type SourceFunc[K comparable, V any] func() Iterator[K, V]

// Iter calls f.
func (f SourceFunc[K, V]) Iter() Iterator[K, V] { return f() }

// ─────────────────────────────────────────────────────────────────────────────
// Built-in iterators
// ─────────────────────────────────────────────────────────────────────────────

// sliceIter walks a snapshot of materialized keys and values.
type sliceIter[K comparable, V any] struct {
	keys   []K
	values []V
	pos    int
}

func (it *sliceIter[K, V]) Next() (K, V, bool) {
	if it.pos >= len(it.keys) {
		var (
			zk K
			zv V
		)
		return zk, zv, false
	}
	k, v := it.keys[it.pos], it.values[it.pos]
	it.pos++
	return k, v, true
}

func (it *sliceIter[K, V]) Err() error { return nil }
func (it *sliceIter[K, V]) Close()     { it.pos = len(it.keys) }

// pullIter drives an iter.Seq2 producer one entry at a time. The producer is
// suspended between pulls; stop unwinds it so its deferred cleanup runs.
type pullIter[K comparable, V any] struct {
	next func() (K, V, bool)
	stop func()
}

func pull[K comparable, V any](seq iter.Seq2[K, V]) *pullIter[K, V] {
	next, stop := iter.Pull2(seq)
	return &pullIter[K, V]{next: next, stop: stop}
}

func (it *pullIter[K, V]) Next() (K, V, bool) {
	k, v, ok := it.next()
	if !ok {
		it.stop()
	}
	return k, v, ok
}

func (it *pullIter[K, V]) Err() error { return nil }
func (it *pullIter[K, V]) Close()     { it.stop() }

// errIter fails on the first pull. Operators whose arguments are invalid use
// it so that lazy pipelines report the failure at the terminal call.
type errIter[K comparable, V any] struct {
	err error
}

func (it *errIter[K, V]) Next() (K, V, bool) {
	var (
		zk K
		zv V
	)
	return zk, zv, false
}

func (it *errIter[K, V]) Err() error { return it.err }
func (it *errIter[K, V]) Close()     {}

// ─────────────────────────────────────────────────────────────────────────────
// Adapters
// ─────────────────────────────────────────────────────────────────────────────

// indexed assigns sequential integer keys, starting at 0, to the values of seq.
func indexed[V any](seq iter.Seq[V]) iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		i := 0
		for v := range seq {
			if !yield(i, v) {
				return
			}
			i++
		}
	}
}

// seqOf exposes src as a range-over-func sequence. Iteration stops silently
// if a stage fails; use an error-returning terminal to observe failures.
func seqOf[K comparable, V any](src Source[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		it := src.Iter()
		defer it.Close()
		for k, v, ok := it.Next(); ok; k, v, ok = it.Next() {
			if !yield(k, v) {
				return
			}
		}
	}
}

// drain feeds every entry of src to fn until fn returns false, then closes
// the iterator and reports the iterator's error.
func drain[K comparable, V any](src Source[K, V], fn func(K, V) bool) error {
	it := src.Iter()
	defer it.Close()
	for k, v, ok := it.Next(); ok; k, v, ok = it.Next() {
		if !fn(k, v) {
			return nil
		}
	}
	return it.Err()
}
