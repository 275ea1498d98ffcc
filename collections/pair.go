package collections

import "fmt"

// Entry is a single key/value pair held by a Collection or produced by a
// LazySequence.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// String returns a human-readable representation: "key => value".
func (e Entry[K, V]) String() string {
	return fmt.Sprintf("%v => %v", e.Key, e.Value)
}

// Pair holds two values of possibly different types.
// It is the element type produced by [ZipPairs].
type Pair[A, B any] struct {
	First  A
	Second B
}

// String returns a human-readable representation: "(first, second)".
func (p Pair[A, B]) String() string {
	return fmt.Sprintf("(%v, %v)", p.First, p.Second)
}
