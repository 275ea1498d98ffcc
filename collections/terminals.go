package collections

import (
	"fmt"

	"github.com/hasbyte1/go-collections/arr"
)

// Terminal helpers shared by Collection methods, package-level functions and
// LazySequence terminals. Each one drains a Source exactly once and reports
// the error that stopped it, if any.

func firstOf[K comparable, V any](src Source[K, V], fns []Predicate[K, V]) (K, V, error) {
	var (
		fk    K
		fv    V
		found bool
	)
	err := drain(src, func(k K, v V) bool {
		if len(fns) > 0 && !fns[0](v, k) {
			return true
		}
		fk, fv, found = k, v, true
		return false
	})
	switch {
	case err != nil:
		return fk, fv, err
	case found:
		return fk, fv, nil
	case len(fns) > 0:
		return fk, fv, ErrNoMatchingItems
	}
	return fk, fv, ErrEmptyCollection
}

func lastOf[K comparable, V any](src Source[K, V], fns []Predicate[K, V]) (V, error) {
	var (
		last  V
		found bool
	)
	err := drain(src, func(k K, v V) bool {
		if len(fns) == 0 || fns[0](v, k) {
			last, found = v, true
		}
		return true
	})
	switch {
	case err != nil:
		return last, err
	case found:
		return last, nil
	case len(fns) > 0:
		return last, ErrNoMatchingItems
	}
	return last, ErrEmptyCollection
}

func reduceOf[K comparable, V any](src Source[K, V], fn func(V, V, K) V, initial []V) (V, error) {
	var carry V
	seeded := len(initial) > 0
	if seeded {
		carry = initial[0]
	}
	err := drain(src, func(k K, v V) bool {
		if !seeded {
			carry, seeded = v, true
			return true
		}
		carry = fn(carry, v, k)
		return true
	})
	if err != nil {
		return carry, err
	}
	if !seeded {
		return carry, ErrEmptyCollection
	}
	return carry, nil
}

func foldOf[K comparable, V, U any](src Source[K, V], fn func(U, V, K) U, initial U) (U, error) {
	carry := initial
	err := drain(src, func(k K, v V) bool {
		carry = fn(carry, v, k)
		return true
	})
	return carry, err
}

// extreme returns the value whose fn score is lowest (sign < 0) or highest
// (sign > 0). The earliest value wins ties.
func extreme[K comparable, V any](src Source[K, V], fn func(V) float64, sign int) (V, error) {
	var (
		best  V
		score float64
		found bool
	)
	err := drain(src, func(_ K, v V) bool {
		if s := fn(v); !found || compareFloat(s, score)*sign > 0 {
			best, score, found = v, s, true
		}
		return true
	})
	if err != nil {
		return best, err
	}
	if !found {
		return best, ErrEmptyCollection
	}
	return best, nil
}

func sumOf[K comparable, V any](src Source[K, V], fn func(V) float64) (float64, int, error) {
	var (
		sum float64
		n   int
	)
	err := drain(src, func(_ K, v V) bool {
		sum += fn(v)
		n++
		return true
	})
	return sum, n, err
}

func partitionOf[K comparable, V any](src Source[K, V], fn Predicate[K, V]) (*Collection[K, V], *Collection[K, V], error) {
	pass, fail := Empty[K, V](), Empty[K, V]()
	err := drain(src, func(k K, v V) bool {
		if fn(v, k) {
			pass.put(k, v)
		} else {
			fail.put(k, v)
		}
		return true
	})
	if err != nil {
		return nil, nil, err
	}
	return pass, fail, nil
}

// groupOf collects entries into groups in first-seen group order. Each group
// keeps member order and original keys.
func groupOf[K comparable, V any, G comparable](src Source[K, V], fn func(V, K) G) (*Collection[G, *Collection[K, V]], error) {
	groups := Empty[G, *Collection[K, V]]()
	err := drain(src, func(k K, v V) bool {
		g := fn(v, k)
		members, ok := groups.Get(g)
		if !ok {
			members = Empty[K, V]()
			groups.put(g, members)
		}
		members.put(k, v)
		return true
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// fieldKey resolves path on every value for use as a group key. Values that
// cannot be map keys (slices, maps, funcs, or structs holding them behind an
// interface) are grouped by their %v rendering.
func fieldKey[K comparable, V any](path string) func(V, K) any {
	return func(v V, _ K) any {
		g := arr.Get(v, path)
		if !hashable(g) {
			return fmt.Sprint(g)
		}
		return g
	}
}

func identity[K comparable, V any](fns []func(V, K) any) func(V, K) any {
	if len(fns) > 0 && fns[0] != nil {
		return fns[0]
	}
	return func(v V, _ K) any { return v }
}

func newUniqueIter[K comparable, V any](src Iterator[K, V], fns []func(V, K) any) Iterator[K, V] {
	return &uniqueIter[K, V]{source: src, id: identity(fns), seen: make(map[fingerprint]struct{})}
}
