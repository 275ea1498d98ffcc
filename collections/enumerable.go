package collections

import "iter"

// Enumerable is the read-side contract shared by [Collection] and
// [LazySequence].
//
// Accept Enumerable in your own functions so that callers can pass either a
// materialized collection or a lazy pipeline. Helpers that only need to
// pull entries, such as [Collect] and [Fold], accept the narrower [Source].
//
// Portability note: this maps to an Iterable protocol in Python
// (__iter__) or Iterable<T> in Java/TypeScript.
type Enumerable[K comparable, V any] interface {
	Source[K, V]

	// Seq returns a range-over-func view of the entries.
	Seq() iter.Seq2[K, V]
}

var (
	_ Enumerable[int, int] = (*Collection[int, int])(nil)
	_ Enumerable[int, int] = (*LazySequence[int, int])(nil)
)
