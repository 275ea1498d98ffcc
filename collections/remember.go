package collections

import "sync"

// Remember returns a sequence that caches entries as they are enumerated.
// The first run pulls from s; later and concurrent runs replay the cache and
// pull from s only past its end, so the producer sees each entry once and is
// never restarted.
//
// A producer built with [Lazy], [Generate] or [LazyKeyed] runs as a
// coroutine with its own goroutine. Until some run exhausts it, that
// goroutine stays parked for as long as the remembered sequence is
// reachable, and deferred cleanup in the producer does not run. Bound
// infinite producers (Take, TakeWhile) before calling Remember when that
// matters; a bounded producer is closed as soon as the cache is complete.
func (s *LazySequence[K, V]) Remember() *LazySequence[K, V] {
	m := &memo[K, V]{factory: s.source}
	return &LazySequence[K, V]{source: func() Iterator[K, V] {
		return &rememberIter[K, V]{memo: m}
	}}
}

// memo is the cache shared by every run of a remembered sequence.
type memo[K comparable, V any] struct {
	mu      sync.Mutex
	factory func() Iterator[K, V]
	source  Iterator[K, V]
	entries []Entry[K, V]
	done    bool
	err     error
}

// at returns the i-th entry, pulling from the producer as needed.
func (m *memo[K, V]) at(i int) (Entry[K, V], bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for len(m.entries) <= i && !m.done {
		if m.source == nil {
			m.source = m.factory()
		}
		k, v, ok := m.source.Next()
		if !ok {
			m.done = true
			m.err = m.source.Err()
			m.source.Close()
			break
		}
		m.entries = append(m.entries, Entry[K, V]{Key: k, Value: v})
	}
	if i < len(m.entries) {
		return m.entries[i], true, nil
	}
	return Entry[K, V]{}, false, m.err
}

type rememberIter[K comparable, V any] struct {
	memo *memo[K, V]
	pos  int
	err  error
}

func (it *rememberIter[K, V]) Next() (K, V, bool) {
	e, ok, err := it.memo.at(it.pos)
	if !ok {
		it.err = err
		return zero[K, V]()
	}
	it.pos++
	return e.Key, e.Value, true
}

func (it *rememberIter[K, V]) Err() error { return it.err }

// Close ends this run only; the shared producer is left for other runs.
func (it *rememberIter[K, V]) Close() {}
